package service

import (
	"context"
	"fmt"

	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"github.com/xuri/excelize/v2"
)

const pointHistorySheet = "포인트 이력"

// ExportHistory 회원 포인트 이력을 xlsx 로 내보낸다
func (s *pointService) ExportHistory(ctx context.Context, memberID uint) ([]byte, error) {
	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}

	entries, _, err := s.historyRepo.ListByMember(ctx, memberID, 0, 0)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", pointHistorySheet); err != nil {
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	header := []interface{}{"이력 ID", "리뷰 ID", "메뉴명", "포인트", "유형", "생성일", "수정일"}
	if err := f.SetSheetRow(pointHistorySheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}

	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}

		var reviewID interface{}
		if e.ReviewID != nil {
			reviewID = *e.ReviewID
		}
		var menuName string
		if e.MenuName != nil {
			menuName = *e.MenuName
		}

		row := []interface{}{
			e.PointHistoryID,
			reviewID,
			menuName,
			e.NewPoint,
			string(e.PointType),
			e.CreatedDate.Format("2006-01-02 15:04:05"),
			e.UpdatedDate.Format("2006-01-02 15:04:05"),
		}
		if err := f.SetSheetRow(pointHistorySheet, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to render workbook: %w", err)
	}

	logger.Info("Point history exported", map[string]interface{}{
		"member_id": memberID,
		"rows":      len(entries),
	})
	return buf.Bytes(), nil
}

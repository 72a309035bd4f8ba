package service

import (
	"context"
	"time"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/internal/db"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
)

// 관리자 이력 조회 최소 페이지 크기
const minAdminHistoryPageSize = 20

type PointMutationResult struct {
	MemberID   uint `json:"memberId"`
	Delta      int  `json:"point"`
	TotalPoint int  `json:"totalPoint"`
}

type PointSummary struct {
	ThisMonthPoint int `json:"thisMonthPoint"`
	TotalPoint     int `json:"totalPoint"`
}

type PointHistoryPage struct {
	PageNo     int                       `json:"pageNo"`
	TotalCount int64                     `json:"totalCount"`
	LimitSize  int                       `json:"limitSize"`
	Items      []model.PointHistoryEntry `json:"items"`
}

// MemberPointHistoryItem 마이페이지 포인트 내역 한 줄
type MemberPointHistoryItem struct {
	MenuName    *string `json:"menuName"`
	Point       int     `json:"point"`
	CreatedDate string  `json:"createdDate"` // YYYY-MM-DD
}

type PointService interface {
	SavePoint(ctx context.Context, memberID uint, raw string) (*PointMutationResult, error)
	RecallPoint(ctx context.Context, memberID uint, raw string) (*PointMutationResult, error)
	GetSummary(ctx context.Context, memberID uint) (*PointSummary, error)
	ListHistory(ctx context.Context, memberID uint, pageNo, size int) (*PointHistoryPage, error)
	ListMemberHistory(ctx context.Context, memberID uint) ([]MemberPointHistoryItem, error)
	ExportHistory(ctx context.Context, memberID uint) ([]byte, error)
}

type pointService struct {
	db          *gorm.DB
	ledger      PointLedger
	pointRepo   repository.PointRepository
	historyRepo repository.PointHistoryRepository
	memberRepo  repository.MemberRepository
	now         func() time.Time
}

func NewPointService(
	conn *gorm.DB,
	ledger PointLedger,
	pointRepo repository.PointRepository,
	historyRepo repository.PointHistoryRepository,
	memberRepo repository.MemberRepository,
) PointService {
	return &pointService{
		db:          conn,
		ledger:      ledger,
		pointRepo:   pointRepo,
		historyRepo: historyRepo,
		memberRepo:  memberRepo,
		now:         time.Now,
	}
}

// SavePoint 관리자 포인트 지급
func (s *pointService) SavePoint(ctx context.Context, memberID uint, raw string) (*PointMutationResult, error) {
	v, err := ParsePointValue(raw)
	if err != nil {
		return nil, err
	}
	amount, err := ToSavePoint(v)
	if err != nil {
		return nil, err
	}
	return s.applyAdminAmount(ctx, memberID, amount)
}

// RecallPoint 관리자 포인트 회수
func (s *pointService) RecallPoint(ctx context.Context, memberID uint, raw string) (*PointMutationResult, error) {
	v, err := ParsePointValue(raw)
	if err != nil {
		return nil, err
	}
	amount, err := ToRecallPoint(v)
	if err != nil {
		return nil, err
	}
	return s.applyAdminAmount(ctx, memberID, amount)
}

func (s *pointService) applyAdminAmount(ctx context.Context, memberID uint, amount PointAmount) (*PointMutationResult, error) {
	logger.Info("Applying admin point change", map[string]interface{}{
		"member_id": memberID,
		"delta":     amount.Delta(),
	})

	var balance int
	err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.memberRepo.WithTx(tx).FindByID(ctx, memberID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrMemberNotFound
		}

		balance, err = s.ledger.AccrueOrRecall(ctx, tx, memberID, amount, model.PointTypeAdmin, nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	return &PointMutationResult{MemberID: memberID, Delta: amount.Delta(), TotalPoint: balance}, nil
}

// GetSummary 이번 달 적립 합계와 총 보유 포인트
func (s *pointService) GetSummary(ctx context.Context, memberID uint) (*PointSummary, error) {
	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}

	summary := &PointSummary{}
	point, err := s.pointRepo.FindByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if point != nil {
		summary.TotalPoint = point.TotalPoint
	}

	now := s.now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	summary.ThisMonthPoint, err = s.historyRepo.SumSince(ctx, memberID, monthStart)
	if err != nil {
		return nil, err
	}
	return summary, nil
}

// ListHistory 관리자용 포인트 이력 (페이지 크기는 최소 20)
func (s *pointService) ListHistory(ctx context.Context, memberID uint, pageNo, size int) (*PointHistoryPage, error) {
	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}
	if pageNo < 1 {
		pageNo = 1
	}
	if size < minAdminHistoryPageSize {
		size = minAdminHistoryPageSize
	}

	items, total, err := s.historyRepo.ListByMember(ctx, memberID, (pageNo-1)*size, size)
	if err != nil {
		logger.Error("Failed to list point history", err, map[string]interface{}{
			"member_id": memberID,
		})
		return nil, err
	}

	return &PointHistoryPage{PageNo: pageNo, TotalCount: total, LimitSize: size, Items: items}, nil
}

// ListMemberHistory 마이페이지 포인트 내역 (최신순)
func (s *pointService) ListMemberHistory(ctx context.Context, memberID uint) ([]MemberPointHistoryItem, error) {
	if err := s.requireMember(ctx, memberID); err != nil {
		return nil, err
	}

	entries, _, err := s.historyRepo.ListByMember(ctx, memberID, 0, 0)
	if err != nil {
		return nil, err
	}

	items := make([]MemberPointHistoryItem, 0, len(entries))
	for _, e := range entries {
		items = append(items, MemberPointHistoryItem{
			MenuName:    e.MenuName,
			Point:       e.NewPoint,
			CreatedDate: e.CreatedDate.Format("2006-01-02"),
		})
	}
	return items, nil
}

func (s *pointService) requireMember(ctx context.Context, memberID uint) error {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		return ErrMemberNotFound
	}
	return nil
}

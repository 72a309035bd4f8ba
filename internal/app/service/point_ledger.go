package service

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/internal/metrics"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
)

// PointLedger 회원 포인트 잔액 관리
// 잔액 변경과 이력 기록은 항상 호출자가 넘긴 같은 트랜잭션(tx) 안에서 일어난다.
type PointLedger interface {
	AccrueOrRecall(ctx context.Context, tx *gorm.DB, memberID uint, amount PointAmount, pointType model.PointType, reviewID *uint) (int, error)
}

type pointLedger struct {
	pointRepo repository.PointRepository
	history   PointHistoryStore
}

func NewPointLedger(pointRepo repository.PointRepository, history PointHistoryStore) PointLedger {
	return &pointLedger{
		pointRepo: pointRepo,
		history:   history,
	}
}

// AccrueOrRecall 잔액 증감 후 이력 기록, 변경된 잔액 반환
// reviewID 가 없으면 이력 행을 추가하고 있으면 해당 리뷰의 이력 행을 갱신한다.
func (l *pointLedger) AccrueOrRecall(ctx context.Context, tx *gorm.DB, memberID uint, amount PointAmount, pointType model.PointType, reviewID *uint) (int, error) {
	delta := amount.Delta()
	if delta == 0 || !inAmountRange(delta) {
		metrics.RecordPointRejection("invalid_amount")
		return 0, ErrInvalidAmount
	}

	pointRepo := l.pointRepo.WithTx(tx)

	current, err := pointRepo.FindByMemberForUpdate(ctx, memberID)
	if err != nil {
		logger.Error("Failed to load point balance", err, map[string]interface{}{
			"member_id": memberID,
		})
		return 0, err
	}

	if delta < 0 && (current == nil || current.TotalPoint < -delta) {
		available := 0
		if current != nil {
			available = current.TotalPoint
		}
		logger.Warn("Point recall exceeds balance", map[string]interface{}{
			"member_id": memberID,
			"required":  -delta,
			"available": available,
		})
		metrics.RecordPointRejection("insufficient_balance")
		return 0, &InsufficientBalanceError{Required: -delta, Available: available}
	}

	if delta > 0 && current != nil && current.TotalPoint > MaxPointBalance-delta {
		logger.Warn("Point accrual exceeds balance limit", map[string]interface{}{
			"member_id": memberID,
			"delta":     delta,
			"balance":   current.TotalPoint,
		})
		metrics.RecordPointRejection("balance_overflow")
		return 0, ErrBalanceOverflow
	}

	var balance int
	if current == nil {
		balance = delta
		if err := pointRepo.Create(ctx, &model.Point{MemberID: memberID, TotalPoint: balance}); err != nil {
			return 0, err
		}
	} else {
		balance = current.TotalPoint + delta
		if err := pointRepo.UpdateTotal(ctx, current.PointID, balance); err != nil {
			return 0, err
		}
	}

	if reviewID == nil {
		err = l.history.Insert(ctx, tx, memberID, delta, pointType, nil)
	} else {
		err = l.history.UpsertByReview(ctx, tx, memberID, *reviewID, delta, pointType)
	}
	if err != nil {
		logger.Error("Failed to write point history", err, map[string]interface{}{
			"member_id": memberID,
			"review_id": reviewID,
			"delta":     delta,
		})
		return 0, err
	}

	metrics.RecordPointMutation(delta, string(pointType))
	logger.Info("Point balance changed", map[string]interface{}{
		"member_id":  memberID,
		"review_id":  reviewID,
		"delta":      delta,
		"point_type": pointType,
		"balance":    balance,
	})
	return balance, nil
}

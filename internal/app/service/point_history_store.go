package service

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
)

// PointHistoryStore 포인트 이력 기록
// 리뷰가 없는 이벤트는 항상 새 행을 추가하고, 리뷰 이벤트는 (회원, 리뷰) 당 한 행을 갱신한다.
type PointHistoryStore interface {
	Insert(ctx context.Context, tx *gorm.DB, memberID uint, delta int, pointType model.PointType, reviewID *uint) error
	UpsertByReview(ctx context.Context, tx *gorm.DB, memberID, reviewID uint, delta int, pointType model.PointType) error
}

type pointHistoryStore struct {
	historyRepo repository.PointHistoryRepository
	memberRepo  repository.MemberRepository
	reviewRepo  repository.ReviewRepository
}

func NewPointHistoryStore(
	historyRepo repository.PointHistoryRepository,
	memberRepo repository.MemberRepository,
	reviewRepo repository.ReviewRepository,
) PointHistoryStore {
	return &pointHistoryStore{
		historyRepo: historyRepo,
		memberRepo:  memberRepo,
		reviewRepo:  reviewRepo,
	}
}

func (s *pointHistoryStore) Insert(ctx context.Context, tx *gorm.DB, memberID uint, delta int, pointType model.PointType, reviewID *uint) error {
	return s.historyRepo.WithTx(tx).Insert(ctx, &model.PointHistory{
		MemberID:  memberID,
		ReviewID:  reviewID,
		NewPoint:  delta,
		PointType: pointType,
	})
}

func (s *pointHistoryStore) UpsertByReview(ctx context.Context, tx *gorm.DB, memberID, reviewID uint, delta int, pointType model.PointType) error {
	historyRepo := s.historyRepo.WithTx(tx)

	existing, err := historyRepo.FindByMemberAndReview(ctx, memberID, reviewID)
	if err != nil {
		return err
	}
	if existing != nil {
		return historyRepo.Overwrite(ctx, existing.PointHistoryID, delta, pointType)
	}

	member, err := s.memberRepo.WithTx(tx).FindByID(ctx, memberID)
	if err != nil {
		return err
	}
	if member == nil {
		logger.Warn("Point history target member not found", map[string]interface{}{
			"member_id": memberID,
			"review_id": reviewID,
		})
		return ErrMemberNotFound
	}
	review, err := s.reviewRepo.WithTx(tx).FindByID(ctx, reviewID)
	if err != nil {
		return err
	}
	if review == nil {
		logger.Warn("Point history target review not found", map[string]interface{}{
			"member_id": memberID,
			"review_id": reviewID,
		})
		return ErrReviewNotFound
	}

	rid := reviewID
	return historyRepo.Insert(ctx, &model.PointHistory{
		MemberID:  memberID,
		ReviewID:  &rid,
		NewPoint:  delta,
		PointType: pointType,
	})
}

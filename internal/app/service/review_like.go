package service

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/db"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
)

// SetLike 좋아요 설정/해제
// 해제할 좋아요가 없거나 이미 좋아요한 경우는 아무 것도 바꾸지 않는다.
func (s *reviewService) SetLike(ctx context.Context, memberID, reviewID uint, isLike bool) error {
	return db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		likeRepo := s.likeRepo.WithTx(tx)
		reviewRepo := s.reviewRepo.WithTx(tx)

		existing, err := likeRepo.Find(ctx, memberID, reviewID)
		if err != nil {
			return err
		}

		if !isLike {
			if existing == nil {
				return nil
			}
			if err := likeRepo.Delete(ctx, existing.LikeID); err != nil {
				return err
			}
			return reviewRepo.AdjustLikeCount(ctx, reviewID, -1)
		}

		member, err := s.memberRepo.WithTx(tx).FindByID(ctx, memberID)
		if err != nil {
			return err
		}
		review, err := reviewRepo.FindByID(ctx, reviewID)
		if err != nil {
			return err
		}
		if member == nil || review == nil {
			return ErrLikeTargetNotFound
		}
		if existing != nil {
			return nil
		}

		if err := likeRepo.Create(ctx, &model.Like{MemberID: memberID, ReviewID: reviewID}); err != nil {
			return err
		}
		if err := reviewRepo.AdjustLikeCount(ctx, reviewID, 1); err != nil {
			return err
		}

		logger.Debug("Review liked", map[string]interface{}{
			"member_id": memberID,
			"review_id": reviewID,
		})
		return nil
	})
}

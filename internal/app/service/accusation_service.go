package service

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/internal/cache"
	"github.com/ikkim/dessert-review-backend/internal/db"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
)

type ReportInput struct {
	Reason      model.AccusationReason `json:"reason" binding:"required"`
	Content     string                 `json:"content"`
	BlockAuthor bool                   `json:"blockAuthor"` // 신고와 함께 작성자 차단
}

type ReportResult struct {
	AccusationID uint `json:"accusationId"`
	ReviewHidden bool `json:"reviewHidden"`
}

type AccusationReasonItem struct {
	Code model.AccusationReason `json:"code"`
	Text string                 `json:"text"`
}

type AccusationService interface {
	Report(ctx context.Context, memberID, reviewID uint, input ReportInput) (*ReportResult, error)
	HasReported(ctx context.Context, memberID, reviewID uint) (bool, error)
	ReasonList() []AccusationReasonItem
}

type accusationService struct {
	db             *gorm.DB
	accusationRepo repository.AccusationRepository
	reviewRepo     repository.ReviewRepository
	blockRepo      repository.BlockedMemberRepository
	feedCache      cache.FeedCache
}

func NewAccusationService(
	conn *gorm.DB,
	accusationRepo repository.AccusationRepository,
	reviewRepo repository.ReviewRepository,
	blockRepo repository.BlockedMemberRepository,
	feedCache cache.FeedCache,
) AccusationService {
	return &accusationService{
		db:             conn,
		accusationRepo: accusationRepo,
		reviewRepo:     reviewRepo,
		blockRepo:      blockRepo,
		feedCache:      feedCache,
	}
}

// Report 리뷰 신고
// 같은 회원의 중복 신고도 모두 기록하고 전체 건수로 판단한다.
// 누적 신고가 3건 이상이면 리뷰를 숨긴다. 포인트는 회수하지 않는다.
func (s *accusationService) Report(ctx context.Context, memberID, reviewID uint, input ReportInput) (*ReportResult, error) {
	if !input.Reason.Valid() {
		return nil, ErrInvalidAccusationReason
	}

	result := &ReportResult{}
	blockedAuthor := false
	err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		reviewRepo := s.reviewRepo.WithTx(tx)
		accusationRepo := s.accusationRepo.WithTx(tx)

		review, err := reviewRepo.FindByIDForUpdate(ctx, reviewID)
		if err != nil {
			return err
		}
		if review == nil {
			return ErrReviewNotFound
		}

		accusation := &model.Accusation{
			MemberID: memberID,
			ReviewID: reviewID,
			Reason:   input.Reason,
			Content:  input.Content,
		}
		if err := accusationRepo.Create(ctx, accusation); err != nil {
			return err
		}
		result.AccusationID = accusation.AccusationID

		if input.BlockAuthor && review.MemberID != memberID {
			if err := s.blockRepo.WithTx(tx).Create(ctx, memberID, review.MemberID); err != nil {
				return err
			}
			blockedAuthor = true
		}

		count, err := accusationRepo.CountByReview(ctx, reviewID)
		if err != nil {
			return err
		}
		if count >= model.AccusationHideThreshold && review.IsUsable {
			if err := reviewRepo.Hide(ctx, reviewID); err != nil {
				return err
			}
			result.ReviewHidden = true
			logger.Info("Review hidden by accusations", map[string]interface{}{
				"review_id":        reviewID,
				"accusation_count": count,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if blockedAuthor {
		invalidateCategoryFeed(ctx, s.feedCache, memberID)
	}
	return result, nil
}

// HasReported 중복 신고 여부 조회 (신고 자체를 막지는 않는다)
func (s *accusationService) HasReported(ctx context.Context, memberID, reviewID uint) (bool, error) {
	return s.accusationRepo.ExistsByMemberAndReview(ctx, memberID, reviewID)
}

func (s *accusationService) ReasonList() []AccusationReasonItem {
	items := make([]AccusationReasonItem, 0, len(model.AccusationReasons))
	for _, r := range model.AccusationReasons {
		items = append(items, AccusationReasonItem{Code: r, Text: r.Text()})
	}
	return items
}

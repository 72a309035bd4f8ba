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

// 리뷰 작성 보상 기본값
const defaultReviewAward = 5

type SubmitReviewInput struct {
	MenuName          string  `json:"menuName" binding:"required"`
	StoreName         string  `json:"storeName"`
	Content           string  `json:"content" binding:"required"`
	Score             float64 `json:"score" binding:"min=0,max=5"`
	DessertCategoryID uint    `json:"dessertCategoryId" binding:"required"`
	IngredientIDs     []uint  `json:"ingredientIds"`
}

type SubmitReviewResult struct {
	ReviewID     uint               `json:"reviewId"`
	Status       model.ReviewStatus `json:"status"`
	AwardedPoint int                `json:"awardedPoint"` // 재작성이면 0
}

// GenerableReviewList 작성 가능한 리뷰 목록
type GenerableReviewList struct {
	Count   int64          `json:"count"`
	Reviews []model.Review `json:"reviews"`
}

// GenerableReview 작성 화면 상세
type GenerableReview struct {
	ReviewID          uint               `json:"reviewId"`
	MenuName          string             `json:"menuName"`
	StoreName         string             `json:"storeName"`
	Content           string             `json:"content"`
	Score             float64            `json:"score"`
	Status            model.ReviewStatus `json:"status"`
	CreatedDate       time.Time          `json:"createdDate"`
	DessertCategoryID *uint              `json:"dessertCategoryId"`
	DessertName       string             `json:"dessertName"`
	IngredientIDs     []uint             `json:"ingredientIds"`
	ReviewImg         []model.ReviewImg  `json:"reviewImg"`
}

type ReviewService interface {
	SubmitReview(ctx context.Context, memberID, reviewID uint, input SubmitReviewInput) (*SubmitReviewResult, error)
	DeleteReview(ctx context.Context, memberID, reviewID uint) error
	ListGenerableReviews(ctx context.Context, memberID uint) (*GenerableReviewList, error)
	GetGenerableReview(ctx context.Context, memberID, reviewID uint) (*GenerableReview, error)
	AttachImage(ctx context.Context, memberID, reviewID uint, input AttachImageInput) (*model.ReviewImg, error)
	DetachImage(ctx context.Context, memberID, reviewID, imageID uint) error
	ListIngredients(ctx context.Context) ([]model.Ingredient, error)
	SetLike(ctx context.Context, memberID, reviewID uint, isLike bool) error
}

type reviewService struct {
	db             *gorm.DB
	ledger         PointLedger
	history        PointHistoryStore
	reviewRepo     repository.ReviewRepository
	imageRepo      repository.ReviewImageRepository
	memberRepo     repository.MemberRepository
	categoryRepo   repository.CategoryRepository
	ingredientRepo repository.IngredientRepository
	likeRepo       repository.LikeRepository
	storage        ObjectStorage
	award          int
	now            func() time.Time
}

func NewReviewService(
	conn *gorm.DB,
	ledger PointLedger,
	history PointHistoryStore,
	reviewRepo repository.ReviewRepository,
	imageRepo repository.ReviewImageRepository,
	memberRepo repository.MemberRepository,
	categoryRepo repository.CategoryRepository,
	ingredientRepo repository.IngredientRepository,
	likeRepo repository.LikeRepository,
	storage ObjectStorage,
	award int,
) ReviewService {
	if award < 1 {
		award = defaultReviewAward
	}
	return &reviewService{
		db:             conn,
		ledger:         ledger,
		history:        history,
		reviewRepo:     reviewRepo,
		imageRepo:      imageRepo,
		memberRepo:     memberRepo,
		categoryRepo:   categoryRepo,
		ingredientRepo: ingredientRepo,
		likeRepo:       likeRepo,
		storage:        storage,
		award:          award,
		now:            time.Now,
	}
}

// SubmitReview 리뷰 작성 완료 처리
// 작성 전(INIT/WAIT) 리뷰가 SAVED 로 바뀔 때만 잔액이 적립되고,
// 이미 SAVED 인 리뷰를 다시 제출하면 해당 리뷰의 이력 행만 같은 보상값으로 갱신된다.
func (s *reviewService) SubmitReview(ctx context.Context, memberID, reviewID uint, input SubmitReviewInput) (*SubmitReviewResult, error) {
	logger.Info("Submitting review", map[string]interface{}{
		"member_id": memberID,
		"review_id": reviewID,
	})

	award, err := ToSavePoint(s.award)
	if err != nil {
		return nil, err
	}

	result := &SubmitReviewResult{ReviewID: reviewID, Status: model.ReviewStatusSaved}
	err = db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		member, err := s.memberRepo.WithTx(tx).FindByID(ctx, memberID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrMemberNotFound
		}

		reviewRepo := s.reviewRepo.WithTx(tx)
		review, err := s.loadOwnedReview(ctx, reviewRepo, memberID, reviewID, true)
		if err != nil {
			return err
		}
		if !review.IsUsable {
			return ErrReviewNotFound
		}

		category, err := s.categoryRepo.WithTx(tx).FindByID(ctx, input.DessertCategoryID)
		if err != nil {
			return err
		}
		if category == nil || !category.IsLeaf() {
			return ErrCategoryNotFound
		}

		ingredientIDs := uniqueIDs(input.IngredientIDs)
		found, err := s.ingredientRepo.WithTx(tx).FindUsableByIDs(ctx, ingredientIDs)
		if err != nil {
			return err
		}
		if len(found) != len(ingredientIDs) {
			return ErrIngredientNotFound
		}

		if err := reviewRepo.ReplaceIngredients(ctx, reviewID, ingredientIDs); err != nil {
			return err
		}

		wasSaved := review.Status == model.ReviewStatusSaved
		categoryID := category.DessertCategoryID
		review.MenuName = input.MenuName
		review.StoreName = input.StoreName
		review.Content = input.Content
		review.Score = input.Score
		review.DessertCategoryID = &categoryID
		review.Status = model.ReviewStatusSaved
		if err := reviewRepo.SaveContent(ctx, review); err != nil {
			return err
		}

		if wasSaved {
			return s.history.UpsertByReview(ctx, tx, memberID, reviewID, award.Delta(), model.PointTypeReview)
		}
		if _, err := s.ledger.AccrueOrRecall(ctx, tx, memberID, award, model.PointTypeReview, &reviewID); err != nil {
			return err
		}
		result.AwardedPoint = award.Delta()
		return nil
	})
	if err != nil {
		logger.Error("Failed to submit review", err, map[string]interface{}{
			"member_id": memberID,
			"review_id": reviewID,
		})
		return nil, err
	}

	return result, nil
}

// DeleteReview 본인 리뷰 삭제 (숨김 처리)
// 작성 완료된 리뷰면 보상 포인트를 회수하며, 잔액이 부족하면 전체 롤백된다.
func (s *reviewService) DeleteReview(ctx context.Context, memberID, reviewID uint) error {
	recall, err := ToRecallPoint(s.award)
	if err != nil {
		return err
	}

	return db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		reviewRepo := s.reviewRepo.WithTx(tx)
		review, err := s.loadOwnedReview(ctx, reviewRepo, memberID, reviewID, true)
		if err != nil {
			return err
		}
		if !review.IsUsable {
			logger.Debug("Review already hidden", map[string]interface{}{
				"review_id": reviewID,
			})
			return nil
		}

		if err := reviewRepo.Hide(ctx, reviewID); err != nil {
			return err
		}

		if review.Status == model.ReviewStatusSaved {
			if _, err := s.ledger.AccrueOrRecall(ctx, tx, memberID, recall, model.PointTypeReview, &reviewID); err != nil {
				return err
			}
		}

		logger.Info("Review deleted by owner", map[string]interface{}{
			"member_id": memberID,
			"review_id": reviewID,
			"status":    review.Status,
		})
		return nil
	})
}

func (s *reviewService) ListGenerableReviews(ctx context.Context, memberID uint) (*GenerableReviewList, error) {
	reviews, err := s.reviewRepo.ListGenerable(ctx, memberID)
	if err != nil {
		return nil, err
	}
	count, err := s.reviewRepo.CountGenerable(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if reviews == nil {
		reviews = []model.Review{}
	}
	return &GenerableReviewList{Count: count, Reviews: reviews}, nil
}

func (s *reviewService) GetGenerableReview(ctx context.Context, memberID, reviewID uint) (*GenerableReview, error) {
	review, err := s.reviewRepo.FindGenerable(ctx, memberID, reviewID)
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}

	out := &GenerableReview{
		ReviewID:          review.ReviewID,
		MenuName:          review.MenuName,
		StoreName:         review.StoreName,
		Content:           review.Content,
		Score:             review.Score,
		Status:            review.Status,
		CreatedDate:       review.CreatedDate,
		DessertCategoryID: review.DessertCategoryID,
		IngredientIDs:     make([]uint, 0, len(review.ReviewIngredients)),
		ReviewImg:         review.ReviewImgs,
	}
	if review.DessertCategory != nil {
		out.DessertName = review.DessertCategory.DessertName
	}
	for _, ri := range review.ReviewIngredients {
		out.IngredientIDs = append(out.IngredientIDs, ri.IngredientID)
	}
	if out.ReviewImg == nil {
		out.ReviewImg = []model.ReviewImg{}
	}
	return out, nil
}

func (s *reviewService) ListIngredients(ctx context.Context) ([]model.Ingredient, error) {
	ingredients, err := s.ingredientRepo.ListUsable(ctx)
	if err != nil {
		return nil, err
	}
	if ingredients == nil {
		ingredients = []model.Ingredient{}
	}
	return ingredients, nil
}

// loadOwnedReview 리뷰 조회 후 작성자 확인
func (s *reviewService) loadOwnedReview(ctx context.Context, repo repository.ReviewRepository, memberID, reviewID uint, forUpdate bool) (*model.Review, error) {
	var (
		review *model.Review
		err    error
	)
	if forUpdate {
		review, err = repo.FindByIDForUpdate(ctx, reviewID)
	} else {
		review, err = repo.FindByID(ctx, reviewID)
	}
	if err != nil {
		return nil, err
	}
	if review == nil {
		return nil, ErrReviewNotFound
	}
	if review.MemberID != memberID {
		return nil, ErrReviewNotOwned
	}
	return review, nil
}

// uniqueIDs 순서를 유지하며 중복 제거
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

package repository

import (
	"context"
	"time"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ReviewRepository interface {
	WithTx(tx *gorm.DB) ReviewRepository
	FindByID(ctx context.Context, reviewID uint) (*model.Review, error)
	FindByIDForUpdate(ctx context.Context, reviewID uint) (*model.Review, error)
	SaveContent(ctx context.Context, review *model.Review) error
	Hide(ctx context.Context, reviewID uint) error
	ReplaceIngredients(ctx context.Context, reviewID uint, ingredientIDs []uint) error
	AdjustLikeCount(ctx context.Context, reviewID uint, delta int) error
	ListGenerable(ctx context.Context, memberID uint) ([]model.Review, error)
	CountGenerable(ctx context.Context, memberID uint) (int64, error)
	FindGenerable(ctx context.Context, memberID, reviewID uint) (*model.Review, error)
	FindHiddenWithImagesBefore(ctx context.Context, cutoff time.Time) ([]uint, error)
}

type reviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) ReviewRepository {
	return &reviewRepository{db: db}
}

func (r *reviewRepository) WithTx(tx *gorm.DB) ReviewRepository {
	return &reviewRepository{db: tx}
}

// FindByID 리뷰 조회 (없으면 nil)
func (r *reviewRepository) FindByID(ctx context.Context, reviewID uint) (*model.Review, error) {
	return firstOrNil[model.Review](r.db.WithContext(ctx).Where("review_id = ?", reviewID))
}

// FindByIDForUpdate 리뷰 행 잠금 조회 (트랜잭션 안에서 사용)
func (r *reviewRepository) FindByIDForUpdate(ctx context.Context, reviewID uint) (*model.Review, error) {
	return firstOrNil[model.Review](r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("review_id = ?", reviewID))
}

// SaveContent 작성 내용과 상태 저장
func (r *reviewRepository) SaveContent(ctx context.Context, review *model.Review) error {
	logger.Debug("Saving review content in database", map[string]interface{}{
		"review_id": review.ReviewID,
		"status":    review.Status,
	})

	return r.db.WithContext(ctx).Model(&model.Review{}).
		Where("review_id = ?", review.ReviewID).
		Updates(map[string]interface{}{
			"menu_name":           review.MenuName,
			"store_name":          review.StoreName,
			"content":             review.Content,
			"score":               review.Score,
			"dessert_category_id": review.DessertCategoryID,
			"status":              review.Status,
		}).Error
}

// Hide 리뷰 숨김 처리 (행은 삭제하지 않음)
func (r *reviewRepository) Hide(ctx context.Context, reviewID uint) error {
	logger.Debug("Hiding review in database", map[string]interface{}{
		"review_id": reviewID,
	})
	return r.db.WithContext(ctx).Model(&model.Review{}).
		Where("review_id = ?", reviewID).
		Updates(map[string]interface{}{"is_usable": false}).Error
}

// ReplaceIngredients 리뷰 재료 전체 교체 (삭제 후 재등록)
func (r *reviewRepository) ReplaceIngredients(ctx context.Context, reviewID uint, ingredientIDs []uint) error {
	db := r.db.WithContext(ctx)
	if err := db.Where("review_id = ?", reviewID).Delete(&model.ReviewIngredient{}).Error; err != nil {
		return err
	}
	if len(ingredientIDs) == 0 {
		return nil
	}

	links := make([]model.ReviewIngredient, 0, len(ingredientIDs))
	for _, id := range ingredientIDs {
		links = append(links, model.ReviewIngredient{ReviewID: reviewID, IngredientID: id})
	}
	return db.Create(&links).Error
}

// AdjustLikeCount 좋아요 수 증감
func (r *reviewRepository) AdjustLikeCount(ctx context.Context, reviewID uint, delta int) error {
	return r.db.WithContext(ctx).Model(&model.Review{}).
		Where("review_id = ?", reviewID).
		UpdateColumn("total_liked_num", gorm.Expr("total_liked_num + ?", delta)).Error
}

// ListGenerable 작성 가능한(INIT/WAIT) 리뷰 목록
func (r *reviewRepository) ListGenerable(ctx context.Context, memberID uint) ([]model.Review, error) {
	var reviews []model.Review
	err := r.db.WithContext(ctx).
		Select("review_id", "member_id", "menu_name", "store_name", "status", "created_date").
		Where("member_id = ? AND is_usable = ? AND status IN ?", memberID, true,
			[]model.ReviewStatus{model.ReviewStatusInit, model.ReviewStatusWait}).
		Order("created_date ASC").
		Order("menu_name ASC").
		Find(&reviews).Error
	return reviews, err
}

func (r *reviewRepository) CountGenerable(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("member_id = ? AND is_usable = ? AND status IN ?", memberID, true,
			[]model.ReviewStatus{model.ReviewStatusInit, model.ReviewStatusWait}).
		Count(&count).Error
	return count, err
}

// FindGenerable 작성 화면용 리뷰 상세 (카테고리, 이미지, 재료 포함)
func (r *reviewRepository) FindGenerable(ctx context.Context, memberID, reviewID uint) (*model.Review, error) {
	return firstOrNil[model.Review](r.db.WithContext(ctx).
		Preload("DessertCategory").
		Preload("ReviewImgs", func(db *gorm.DB) *gorm.DB {
			return db.Order("num ASC")
		}).
		Preload("ReviewIngredients.Ingredient").
		Where("review_id = ? AND member_id = ? AND is_usable = ?", reviewID, memberID, true))
}

// FindHiddenWithImagesBefore cutoff 이전에 숨김 처리되었고 이미지가 남아 있는 리뷰 ID
func (r *reviewRepository) FindHiddenWithImagesBefore(ctx context.Context, cutoff time.Time) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("is_usable = ? AND update_date < ?", false, cutoff).
		Where("EXISTS (SELECT 1 FROM review_imgs WHERE review_imgs.review_id = reviews.review_id)").
		Order("review_id ASC").
		Pluck("review_id", &ids).Error
	return ids, err
}

package repository

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"gorm.io/gorm"
)

type ReviewImageRepository interface {
	WithTx(tx *gorm.DB) ReviewImageRepository
	CountByReview(ctx context.Context, reviewID uint) (int64, error)
	Create(ctx context.Context, img *model.ReviewImg) error
	FindByID(ctx context.Context, reviewID, imageID uint) (*model.ReviewImg, error)
	FindByReviewIDs(ctx context.Context, reviewIDs []uint) ([]model.ReviewImg, error)
	ClearMain(ctx context.Context, reviewID uint) error
	Delete(ctx context.Context, imageIDs ...uint) error
}

type reviewImageRepository struct {
	db *gorm.DB
}

func NewReviewImageRepository(db *gorm.DB) ReviewImageRepository {
	return &reviewImageRepository{db: db}
}

func (r *reviewImageRepository) WithTx(tx *gorm.DB) ReviewImageRepository {
	return &reviewImageRepository{db: tx}
}

func (r *reviewImageRepository) CountByReview(ctx context.Context, reviewID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.ReviewImg{}).
		Where("review_id = ?", reviewID).
		Count(&count).Error
	return count, err
}

func (r *reviewImageRepository) Create(ctx context.Context, img *model.ReviewImg) error {
	return r.db.WithContext(ctx).Create(img).Error
}

func (r *reviewImageRepository) FindByID(ctx context.Context, reviewID, imageID uint) (*model.ReviewImg, error) {
	return firstOrNil[model.ReviewImg](r.db.WithContext(ctx).
		Where("review_img_id = ? AND review_id = ?", imageID, reviewID))
}

func (r *reviewImageRepository) FindByReviewIDs(ctx context.Context, reviewIDs []uint) ([]model.ReviewImg, error) {
	var imgs []model.ReviewImg
	if len(reviewIDs) == 0 {
		return imgs, nil
	}
	err := r.db.WithContext(ctx).
		Where("review_id IN ?", reviewIDs).
		Order("review_img_id ASC").
		Find(&imgs).Error
	return imgs, err
}

// ClearMain 리뷰의 대표 이미지 지정 해제
func (r *reviewImageRepository) ClearMain(ctx context.Context, reviewID uint) error {
	return r.db.WithContext(ctx).Model(&model.ReviewImg{}).
		Where("review_id = ? AND is_main = ?", reviewID, true).
		Update("is_main", false).Error
}

func (r *reviewImageRepository) Delete(ctx context.Context, imageIDs ...uint) error {
	if len(imageIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("review_img_id IN ?", imageIDs).Delete(&model.ReviewImg{}).Error
}

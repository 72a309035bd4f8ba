package repository

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"gorm.io/gorm"
)

type AccusationRepository interface {
	WithTx(tx *gorm.DB) AccusationRepository
	Create(ctx context.Context, accusation *model.Accusation) error
	CountByReview(ctx context.Context, reviewID uint) (int64, error)
	ExistsByMemberAndReview(ctx context.Context, memberID, reviewID uint) (bool, error)
}

type accusationRepository struct {
	db *gorm.DB
}

func NewAccusationRepository(db *gorm.DB) AccusationRepository {
	return &accusationRepository{db: db}
}

func (r *accusationRepository) WithTx(tx *gorm.DB) AccusationRepository {
	return &accusationRepository{db: tx}
}

func (r *accusationRepository) Create(ctx context.Context, accusation *model.Accusation) error {
	return r.db.WithContext(ctx).Create(accusation).Error
}

func (r *accusationRepository) CountByReview(ctx context.Context, reviewID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Accusation{}).
		Where("review_id = ?", reviewID).
		Count(&count).Error
	return count, err
}

func (r *accusationRepository) ExistsByMemberAndReview(ctx context.Context, memberID, reviewID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Accusation{}).
		Where("member_id = ? AND review_id = ?", memberID, reviewID).
		Count(&count).Error
	return count > 0, err
}

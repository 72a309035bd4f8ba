package repository

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"gorm.io/gorm"
)

type LikeRepository interface {
	WithTx(tx *gorm.DB) LikeRepository
	Find(ctx context.Context, memberID, reviewID uint) (*model.Like, error)
	Create(ctx context.Context, like *model.Like) error
	Delete(ctx context.Context, likeID uint) error
}

type likeRepository struct {
	db *gorm.DB
}

func NewLikeRepository(db *gorm.DB) LikeRepository {
	return &likeRepository{db: db}
}

func (r *likeRepository) WithTx(tx *gorm.DB) LikeRepository {
	return &likeRepository{db: tx}
}

func (r *likeRepository) Find(ctx context.Context, memberID, reviewID uint) (*model.Like, error) {
	return firstOrNil[model.Like](r.db.WithContext(ctx).
		Where("member_id = ? AND review_id = ?", memberID, reviewID))
}

func (r *likeRepository) Create(ctx context.Context, like *model.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}

func (r *likeRepository) Delete(ctx context.Context, likeID uint) error {
	return r.db.WithContext(ctx).Where("like_id = ?", likeID).Delete(&model.Like{}).Error
}

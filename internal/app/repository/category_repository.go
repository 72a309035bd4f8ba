package repository

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"gorm.io/gorm"
)

type CategoryRepository interface {
	WithTx(tx *gorm.DB) CategoryRepository
	FindByID(ctx context.Context, categoryID uint) (*model.DessertCategory, error)
	FindByIDs(ctx context.Context, categoryIDs []uint) ([]model.DessertCategory, error)
	FindInterestLeafIDs(ctx context.Context, memberID uint) ([]uint, error)
	ListBySession(ctx context.Context, sessionNum int) ([]model.DessertCategory, error)
	BulkCreate(categories []model.DessertCategory, batchSize int) error
}

type categoryRepository struct {
	db *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

func (r *categoryRepository) WithTx(tx *gorm.DB) CategoryRepository {
	return &categoryRepository{db: tx}
}

func (r *categoryRepository) FindByID(ctx context.Context, categoryID uint) (*model.DessertCategory, error) {
	return firstOrNil[model.DessertCategory](r.db.WithContext(ctx).Where("dessert_category_id = ?", categoryID))
}

func (r *categoryRepository) FindByIDs(ctx context.Context, categoryIDs []uint) ([]model.DessertCategory, error) {
	categories := []model.DessertCategory{}
	if len(categoryIDs) == 0 {
		return categories, nil
	}
	err := r.db.WithContext(ctx).
		Where("dessert_category_id IN ?", categoryIDs).
		Order("dessert_category_id ASC").
		Find(&categories).Error
	return categories, err
}

// FindInterestLeafIDs 회원이 고른 1차 카테고리에 속한 2차 카테고리 ID 목록
func (r *categoryRepository) FindInterestLeafIDs(ctx context.Context, memberID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Table("dessert_categories").
		Joins("JOIN user_interest_desserts ON user_interest_desserts.dessert_category_id = dessert_categories.parent_dc_id").
		Where("user_interest_desserts.member_id = ? AND dessert_categories.session_num = ?", memberID, model.CategorySessionLeaf).
		Order("dessert_categories.dessert_category_id ASC").
		Pluck("dessert_categories.dessert_category_id", &ids).Error
	return ids, err
}

func (r *categoryRepository) ListBySession(ctx context.Context, sessionNum int) ([]model.DessertCategory, error) {
	var categories []model.DessertCategory
	err := r.db.WithContext(ctx).
		Where("session_num = ?", sessionNum).
		Order("dessert_category_id ASC").
		Find(&categories).Error
	return categories, err
}

// BulkCreate 카테고리 일괄 등록 (seed 용)
func (r *categoryRepository) BulkCreate(categories []model.DessertCategory, batchSize int) error {
	return r.db.CreateInBatches(categories, batchSize).Error
}

package repository

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"gorm.io/gorm"
)

type IngredientRepository interface {
	WithTx(tx *gorm.DB) IngredientRepository
	FindUsableByIDs(ctx context.Context, ids []uint) ([]model.Ingredient, error)
	ListUsable(ctx context.Context) ([]model.Ingredient, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) WithTx(tx *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: tx}
}

func (r *ingredientRepository) FindUsableByIDs(ctx context.Context, ids []uint) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	if len(ids) == 0 {
		return ingredients, nil
	}
	err := r.db.WithContext(ctx).
		Where("ingredient_id IN ? AND usable = ?", ids, true).
		Find(&ingredients).Error
	return ingredients, err
}

// ListUsable 사용 가능한 재료 목록 (ID 오름차순)
func (r *ingredientRepository) ListUsable(ctx context.Context) ([]model.Ingredient, error) {
	var ingredients []model.Ingredient
	err := r.db.WithContext(ctx).
		Where("usable = ?", true).
		Order("ingredient_id ASC").
		Find(&ingredients).Error
	return ingredients, err
}

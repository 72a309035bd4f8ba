package db

import (
	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
)

// Models 마이그레이션 대상 모델 목록
func Models() []interface{} {
	return []interface{}{
		&model.Member{},
		&model.ProfileImg{},
		&model.DessertCategory{},
		&model.UserInterestDessert{},
		&model.Ingredient{},
		&model.Review{},
		&model.ReviewImg{},
		&model.ReviewIngredient{},
		&model.Like{},
		&model.Point{},
		&model.PointHistory{},
		&model.BlockedMember{},
		&model.Accusation{},
	}
}

// Migrate runs database migrations
func Migrate() error {
	logger.Info("Running database migrations...")

	if err := DB.AutoMigrate(Models()...); err != nil {
		logger.Error("Failed to run migrations", err)
		return err
	}

	logger.Info("Database migrations completed successfully")

	return SeedIngredients(DB)
}

// DefaultIngredients 기본 재료 태그
var DefaultIngredients = []string{
	"과일",
	"견과류",
	"채소/향신료",
	"초콜릿/캐러맬",
	"커피/차/시럽류",
	"크림/치즈/유제품",
	"기타",
}

// SeedIngredients 재료 기본 데이터 생성 (이미 있으면 건너뜀)
func SeedIngredients(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&model.Ingredient{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		logger.Info("Ingredients already seeded, skipping...", map[string]interface{}{
			"existing_count": count,
		})
		return nil
	}

	ingredients := make([]model.Ingredient, 0, len(DefaultIngredients))
	for _, name := range DefaultIngredients {
		ingredients = append(ingredients, model.Ingredient{IngredientName: name, Usable: true})
	}

	if err := conn.Create(&ingredients).Error; err != nil {
		logger.Error("Failed to seed ingredients", err)
		return err
	}

	logger.Info("Ingredients seeded successfully", map[string]interface{}{
		"total_ingredients": len(ingredients),
	})
	return nil
}

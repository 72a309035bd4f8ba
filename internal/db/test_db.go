package db

import (
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
// 테스트마다 이름이 다른 메모리 DB 를 쓰고, 트랜잭션 안팎이 같은 커넥션을 보도록 커넥션은 1개로 제한한다.
func SetupTestDB() (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to test database: %w", err)
	}

	sqlDB, err := conn.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get test database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := conn.AutoMigrate(Models()...); err != nil {
		return nil, fmt.Errorf("failed to migrate test database: %w", err)
	}

	return conn, nil
}

// CleanupTestDB cleans up the test database
func CleanupTestDB(conn *gorm.DB) {
	sqlDB, err := conn.DB()
	if err != nil {
		log.Printf("Failed to get DB instance: %v", err)
		return
	}
	sqlDB.Close()
}

// TruncateAllTables removes all data from tables
func TruncateAllTables(conn *gorm.DB) error {
	tables := []string{
		model.Accusation{}.TableName(),
		model.BlockedMember{}.TableName(),
		model.PointHistory{}.TableName(),
		model.Point{}.TableName(),
		model.Like{}.TableName(),
		model.ReviewIngredient{}.TableName(),
		model.ReviewImg{}.TableName(),
		model.Review{}.TableName(),
		model.Ingredient{}.TableName(),
		model.UserInterestDessert{}.TableName(),
		model.DessertCategory{}.TableName(),
		model.ProfileImg{}.TableName(),
		model.Member{}.TableName(),
	}
	for _, table := range tables {
		if err := conn.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			return err
		}
	}
	return nil
}

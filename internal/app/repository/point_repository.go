package repository

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PointRepository interface {
	WithTx(tx *gorm.DB) PointRepository
	FindByMember(ctx context.Context, memberID uint) (*model.Point, error)
	FindByMemberForUpdate(ctx context.Context, memberID uint) (*model.Point, error)
	Create(ctx context.Context, point *model.Point) error
	UpdateTotal(ctx context.Context, pointID uint, total int) error
}

type pointRepository struct {
	db *gorm.DB
}

func NewPointRepository(db *gorm.DB) PointRepository {
	return &pointRepository{db: db}
}

func (r *pointRepository) WithTx(tx *gorm.DB) PointRepository {
	return &pointRepository{db: tx}
}

// FindByMember 회원 포인트 조회 (적립 이력이 없으면 nil)
func (r *pointRepository) FindByMember(ctx context.Context, memberID uint) (*model.Point, error) {
	return firstOrNil[model.Point](r.db.WithContext(ctx).Where("member_id = ?", memberID))
}

// FindByMemberForUpdate 잔액 행 잠금 조회
// 같은 회원의 동시 적립/회수는 이 행 잠금으로 직렬화된다.
func (r *pointRepository) FindByMemberForUpdate(ctx context.Context, memberID uint) (*model.Point, error) {
	return firstOrNil[model.Point](r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("member_id = ?", memberID))
}

func (r *pointRepository) Create(ctx context.Context, point *model.Point) error {
	logger.Debug("Creating point balance in database", map[string]interface{}{
		"member_id":   point.MemberID,
		"total_point": point.TotalPoint,
	})
	return r.db.WithContext(ctx).Create(point).Error
}

func (r *pointRepository) UpdateTotal(ctx context.Context, pointID uint, total int) error {
	logger.Debug("Updating point balance in database", map[string]interface{}{
		"point_id":    pointID,
		"total_point": total,
	})
	return r.db.WithContext(ctx).Model(&model.Point{}).
		Where("point_id = ?", pointID).
		Update("total_point", total).Error
}

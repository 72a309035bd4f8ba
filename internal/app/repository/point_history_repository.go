package repository

import (
	"context"
	"time"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
)

type PointHistoryRepository interface {
	WithTx(tx *gorm.DB) PointHistoryRepository
	Insert(ctx context.Context, history *model.PointHistory) error
	FindByMemberAndReview(ctx context.Context, memberID, reviewID uint) (*model.PointHistory, error)
	Overwrite(ctx context.Context, historyID uint, delta int, pointType model.PointType) error
	ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]model.PointHistoryEntry, int64, error)
	SumSince(ctx context.Context, memberID uint, since time.Time) (int, error)
}

type pointHistoryRepository struct {
	db *gorm.DB
}

func NewPointHistoryRepository(db *gorm.DB) PointHistoryRepository {
	return &pointHistoryRepository{db: db}
}

func (r *pointHistoryRepository) WithTx(tx *gorm.DB) PointHistoryRepository {
	return &pointHistoryRepository{db: tx}
}

// Insert 이력 행 추가
func (r *pointHistoryRepository) Insert(ctx context.Context, history *model.PointHistory) error {
	logger.Debug("Inserting point history in database", map[string]interface{}{
		"member_id":  history.MemberID,
		"review_id":  history.ReviewID,
		"new_point":  history.NewPoint,
		"point_type": history.PointType,
	})
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *pointHistoryRepository) FindByMemberAndReview(ctx context.Context, memberID, reviewID uint) (*model.PointHistory, error) {
	return firstOrNil[model.PointHistory](r.db.WithContext(ctx).
		Where("member_id = ? AND review_id = ?", memberID, reviewID))
}

// Overwrite 기존 이력 행의 값과 유형을 갱신 (updated_date 갱신)
func (r *pointHistoryRepository) Overwrite(ctx context.Context, historyID uint, delta int, pointType model.PointType) error {
	logger.Debug("Overwriting point history in database", map[string]interface{}{
		"point_history_id": historyID,
		"new_point":        delta,
		"point_type":       pointType,
	})
	return r.db.WithContext(ctx).Model(&model.PointHistory{}).
		Where("point_history_id = ?", historyID).
		Updates(map[string]interface{}{
			"new_point":    delta,
			"point_type":   pointType,
			"updated_date": time.Now(),
		}).Error
}

// ListByMember 회원 포인트 이력 (최신순, 리뷰 메뉴명 포함)
func (r *pointHistoryRepository) ListByMember(ctx context.Context, memberID uint, offset, limit int) ([]model.PointHistoryEntry, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.PointHistory{}).
		Where("member_id = ?", memberID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	entries := []model.PointHistoryEntry{}
	if total == 0 {
		return entries, 0, nil
	}

	q := r.db.WithContext(ctx).Table("point_histories").
		Select("point_histories.point_history_id, point_histories.review_id, reviews.menu_name, " +
			"point_histories.new_point, point_histories.point_type, point_histories.created_date, point_histories.updated_date").
		Joins("LEFT JOIN reviews ON reviews.review_id = point_histories.review_id").
		Where("point_histories.member_id = ?", memberID).
		Order("point_histories.created_date DESC").
		Order("point_histories.point_history_id DESC").
		Offset(offset)
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(&entries).Error; err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// SumSince since 이후 생성된 이력의 합계 (없으면 0)
func (r *pointHistoryRepository) SumSince(ctx context.Context, memberID uint, since time.Time) (int, error) {
	var sum int
	err := r.db.WithContext(ctx).Model(&model.PointHistory{}).
		Select("COALESCE(SUM(new_point), 0)").
		Where("member_id = ? AND created_date >= ?", memberID, since).
		Scan(&sum).Error
	return sum, err
}

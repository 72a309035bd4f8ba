package repository

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlockedMemberRepository interface {
	WithTx(tx *gorm.DB) BlockedMemberRepository
	FindBlockedIDs(ctx context.Context, primaryMemberID uint) ([]uint, error)
	ListByPrimary(ctx context.Context, primaryMemberID uint) ([]model.BlockedMember, error)
	Create(ctx context.Context, primaryMemberID, blockedMemberID uint) error
	Delete(ctx context.Context, primaryMemberID, blockedMemberID uint) (int64, error)
}

type blockedMemberRepository struct {
	db *gorm.DB
}

func NewBlockedMemberRepository(db *gorm.DB) BlockedMemberRepository {
	return &blockedMemberRepository{db: db}
}

func (r *blockedMemberRepository) WithTx(tx *gorm.DB) BlockedMemberRepository {
	return &blockedMemberRepository{db: tx}
}

// FindBlockedIDs primary 회원이 차단한 회원 ID 목록
func (r *blockedMemberRepository) FindBlockedIDs(ctx context.Context, primaryMemberID uint) ([]uint, error) {
	ids := []uint{}
	err := r.db.WithContext(ctx).Model(&model.BlockedMember{}).
		Where("primary_member_id = ?", primaryMemberID).
		Order("blocked_member_id ASC").
		Pluck("blocked_member_id", &ids).Error
	return ids, err
}

func (r *blockedMemberRepository) ListByPrimary(ctx context.Context, primaryMemberID uint) ([]model.BlockedMember, error) {
	var rows []model.BlockedMember
	err := r.db.WithContext(ctx).
		Where("primary_member_id = ?", primaryMemberID).
		Order("created_date DESC").
		Find(&rows).Error
	return rows, err
}

// Create 차단 등록 (이미 있으면 무시)
func (r *blockedMemberRepository) Create(ctx context.Context, primaryMemberID, blockedMemberID uint) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&model.BlockedMember{PrimaryMemberID: primaryMemberID, BlockedMemberID: blockedMemberID}).Error
}

func (r *blockedMemberRepository) Delete(ctx context.Context, primaryMemberID, blockedMemberID uint) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("primary_member_id = ? AND blocked_member_id = ?", primaryMemberID, blockedMemberID).
		Delete(&model.BlockedMember{})
	return res.RowsAffected, res.Error
}

package repository

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
)

type MemberRepository interface {
	WithTx(tx *gorm.DB) MemberRepository
	FindByID(ctx context.Context, memberID uint) (*model.Member, error)
	ExistsByNickName(ctx context.Context, nickName string) (bool, error)
	CountSavedReviews(ctx context.Context, memberID uint) (int64, error)
	FindProfileRows(ctx context.Context, memberID uint) ([]model.MemberProfileRow, error)
	FindConsent(ctx context.Context, memberID uint) (*model.ConsentStatus, error)
	UpdateFields(ctx context.Context, memberID uint, fields map[string]interface{}) error
	ReplaceInterests(ctx context.Context, memberID uint, categoryIDs []uint) error
}

type memberRepository struct {
	db *gorm.DB
}

func NewMemberRepository(db *gorm.DB) MemberRepository {
	return &memberRepository{db: db}
}

func (r *memberRepository) WithTx(tx *gorm.DB) MemberRepository {
	return &memberRepository{db: tx}
}

// FindByID 회원 조회 (없으면 nil)
func (r *memberRepository) FindByID(ctx context.Context, memberID uint) (*model.Member, error) {
	logger.Debug("Finding member by ID in database", map[string]interface{}{
		"member_id": memberID,
	})
	return firstOrNil[model.Member](r.db.WithContext(ctx).Where("member_id = ?", memberID))
}

func (r *memberRepository) ExistsByNickName(ctx context.Context, nickName string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Member{}).
		Where("nick_name = ?", nickName).
		Count(&count).Error
	return count > 0, err
}

// CountSavedReviews 작성 완료된(숨김 제외) 리뷰 수
func (r *memberRepository) CountSavedReviews(ctx context.Context, memberID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Where("member_id = ? AND status = ? AND is_usable = ?", memberID, model.ReviewStatusSaved, true).
		Count(&count).Error
	return count, err
}

// FindProfileRows 회원 정보 + 프로필 이미지 + 관심 디저트 조인 행
// 관심 디저트가 없으면 카테고리 컬럼이 NULL 인 한 행, 회원이 없으면 빈 목록이다.
func (r *memberRepository) FindProfileRows(ctx context.Context, memberID uint) ([]model.MemberProfileRow, error) {
	rows := []model.MemberProfileRow{}
	err := r.db.WithContext(ctx).Table("members").
		Select("members.member_id, members.nick_name, members.gender, members.birth_year, "+
			"members.first_city, members.second_city, members.third_city, "+
			"profile_imgs.profile_img_id, profile_imgs.middle_path AS profile_middle_path, "+
			"profile_imgs.path AS profile_path, profile_imgs.extension AS profile_extension, "+
			"dessert_categories.dessert_category_id, dessert_categories.dessert_name").
		Joins("LEFT JOIN profile_imgs ON profile_imgs.member_id = members.member_id AND profile_imgs.is_usable = ?", true).
		Joins("LEFT JOIN user_interest_desserts ON user_interest_desserts.member_id = members.member_id").
		Joins("LEFT JOIN dessert_categories ON dessert_categories.dessert_category_id = user_interest_desserts.dessert_category_id").
		Where("members.member_id = ? AND members.deleted_at IS NULL", memberID).
		Order("dessert_categories.dessert_category_id ASC").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to find member profile", err, map[string]interface{}{
			"member_id": memberID,
		})
		return nil, err
	}
	return rows, nil
}

// FindConsent 광고/알림 수신 동의 상태 (없으면 nil)
func (r *memberRepository) FindConsent(ctx context.Context, memberID uint) (*model.ConsentStatus, error) {
	var consents []model.ConsentStatus
	err := r.db.WithContext(ctx).Model(&model.Member{}).
		Select("is_agree_ad, is_agree_alarm").
		Where("member_id = ?", memberID).
		Limit(1).
		Scan(&consents).Error
	if err != nil || len(consents) == 0 {
		return nil, err
	}
	return &consents[0], nil
}

func (r *memberRepository) UpdateFields(ctx context.Context, memberID uint, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	logger.Debug("Updating member in database", map[string]interface{}{
		"member_id": memberID,
		"fields":    len(fields),
	})
	return r.db.WithContext(ctx).Model(&model.Member{}).
		Where("member_id = ?", memberID).
		Updates(fields).Error
}

// ReplaceInterests 관심 디저트 전체 교체 (삭제 후 재등록)
func (r *memberRepository) ReplaceInterests(ctx context.Context, memberID uint, categoryIDs []uint) error {
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Delete(&model.UserInterestDessert{}).Error; err != nil {
		return err
	}
	if len(categoryIDs) == 0 {
		return nil
	}

	interests := make([]model.UserInterestDessert, 0, len(categoryIDs))
	for _, id := range categoryIDs {
		interests = append(interests, model.UserInterestDessert{MemberID: memberID, DessertCategoryID: id})
	}
	return r.db.WithContext(ctx).Create(&interests).Error
}

package service

import (
	"context"
	"strings"
	"time"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/internal/cache"
	"github.com/ikkim/dessert-review-backend/internal/db"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"gorm.io/gorm"
)

const minBirthYear = 1900

// MyPage 마이페이지 요약
type MyPage struct {
	NickName         string `json:"nickName"`
	UsersReviewCount int64  `json:"usersReviewCount"`
	UsersTotalPoint  int    `json:"usersTotalPoint"`
}

// UpdateProfileInput 회원 정보 수정 요청 (nil 인 항목은 그대로 둔다)
type UpdateProfileInput struct {
	NickName    *string `json:"nickName"`
	Gender      *string `json:"gender"`
	BirthYear   *int    `json:"birthYear"`
	FirstCity   *string `json:"firstCity"`
	SecondCity  *string `json:"secondCity"`
	ThirdCity   *string `json:"thirdCity"`
	InterestIDs *[]uint `json:"interestDessertIds"` // 1차 카테고리 ID, 빈 목록이면 전부 해제
}

type MemberService interface {
	MyPage(ctx context.Context, memberID uint) (*MyPage, error)
	IsUsableNickName(ctx context.Context, nickName string) (bool, error)
	GetProfile(ctx context.Context, memberID uint) (*model.MemberProfile, error)
	UpdateProfile(ctx context.Context, memberID uint, input UpdateProfileInput) (*model.MemberProfile, error)
	GetConsent(ctx context.Context, memberID uint) (*model.ConsentStatus, error)
	SetAlarmConsent(ctx context.Context, memberID uint, agreed bool) (*model.ConsentStatus, error)
	SetADConsent(ctx context.Context, memberID uint, agreed bool) (*model.ConsentStatus, error)
}

type memberService struct {
	db           *gorm.DB
	memberRepo   repository.MemberRepository
	categoryRepo repository.CategoryRepository
	pointRepo    repository.PointRepository
	feedCache    cache.FeedCache
	now          func() time.Time
}

func NewMemberService(
	conn *gorm.DB,
	memberRepo repository.MemberRepository,
	categoryRepo repository.CategoryRepository,
	pointRepo repository.PointRepository,
	feedCache cache.FeedCache,
) MemberService {
	return &memberService{
		db:           conn,
		memberRepo:   memberRepo,
		categoryRepo: categoryRepo,
		pointRepo:    pointRepo,
		feedCache:    feedCache,
		now:          time.Now,
	}
}

func (s *memberService) MyPage(ctx context.Context, memberID uint) (*MyPage, error) {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrMemberNotFound
	}

	count, err := s.memberRepo.CountSavedReviews(ctx, memberID)
	if err != nil {
		return nil, err
	}

	page := &MyPage{NickName: member.NickName, UsersReviewCount: count}
	point, err := s.pointRepo.FindByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if point != nil {
		page.UsersTotalPoint = point.TotalPoint
	}
	return page, nil
}

// IsUsableNickName 사용 가능한 닉네임인지 (빈 값은 사용 불가)
func (s *memberService) IsUsableNickName(ctx context.Context, nickName string) (bool, error) {
	nickName = strings.TrimSpace(nickName)
	if nickName == "" {
		return false, nil
	}
	exists, err := s.memberRepo.ExistsByNickName(ctx, nickName)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// GetProfile 회원 정보 조회
func (s *memberService) GetProfile(ctx context.Context, memberID uint) (*model.MemberProfile, error) {
	rows, err := s.memberRepo.FindProfileRows(ctx, memberID)
	if err != nil {
		return nil, err
	}
	profile := GroupMemberProfile(rows)
	if profile == nil {
		return nil, ErrMemberNotFound
	}
	return profile, nil
}

// GroupMemberProfile 관심 디저트마다 나뉜 조인 행을 회원 한 명으로 합친다.
// 회원 정보는 첫 행에서 가져오고 카테고리가 NULL 인 행은 건너뛴다.
func GroupMemberProfile(rows []model.MemberProfileRow) *model.MemberProfile {
	if len(rows) == 0 {
		return nil
	}

	first := rows[0]
	profile := &model.MemberProfile{
		MemberID:   first.MemberID,
		NickName:   first.NickName,
		Gender:     first.Gender,
		BirthYear:  first.BirthYear,
		FirstCity:  first.FirstCity,
		SecondCity: first.SecondCity,
		ThirdCity:  first.ThirdCity,
		Desserts:   []model.InterestDessert{},
	}
	if first.ProfileImgID != nil {
		profile.ProfileImg = &model.MemberProfileImg{
			ProfileImgID: *first.ProfileImgID,
			MiddlePath:   deref(first.ProfileMiddlePath),
			Path:         deref(first.ProfilePath),
			Extension:    deref(first.ProfileExtension),
		}
	}

	seen := make(map[uint]struct{}, len(rows))
	for _, row := range rows {
		if row.DessertCategoryID == nil {
			continue
		}
		if _, ok := seen[*row.DessertCategoryID]; ok {
			continue
		}
		seen[*row.DessertCategoryID] = struct{}{}
		profile.Desserts = append(profile.Desserts, model.InterestDessert{
			DessertCategoryID: *row.DessertCategoryID,
			DessertName:       deref(row.DessertName),
		})
	}
	return profile
}

// UpdateProfile 회원 정보와 관심 디저트 수정
// 관심 디저트가 바뀌면 홈 추천 캐시를 지운다.
func (s *memberService) UpdateProfile(ctx context.Context, memberID uint, input UpdateProfileInput) (*model.MemberProfile, error) {
	interestsChanged := false
	err := db.RunInTx(ctx, s.db, func(tx *gorm.DB) error {
		memberRepo := s.memberRepo.WithTx(tx)

		member, err := memberRepo.FindByID(ctx, memberID)
		if err != nil {
			return err
		}
		if member == nil {
			return ErrMemberNotFound
		}

		fields, err := s.profileFields(ctx, memberRepo, member, input)
		if err != nil {
			return err
		}
		if err := memberRepo.UpdateFields(ctx, memberID, fields); err != nil {
			return err
		}

		if input.InterestIDs == nil {
			return nil
		}
		interestIDs, err := s.validateInterests(ctx, s.categoryRepo.WithTx(tx), *input.InterestIDs)
		if err != nil {
			return err
		}
		if err := memberRepo.ReplaceInterests(ctx, memberID, interestIDs); err != nil {
			return err
		}
		interestsChanged = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	if interestsChanged {
		invalidateCategoryFeed(ctx, s.feedCache, memberID)
	}
	logger.Info("Member profile updated", map[string]interface{}{
		"member_id":         memberID,
		"interests_changed": interestsChanged,
	})
	return s.GetProfile(ctx, memberID)
}

// profileFields 변경할 컬럼 목록 (검증 포함)
func (s *memberService) profileFields(ctx context.Context, memberRepo repository.MemberRepository, member *model.Member, input UpdateProfileInput) (map[string]interface{}, error) {
	fields := map[string]interface{}{}

	if input.NickName != nil {
		nickName := strings.TrimSpace(*input.NickName)
		if nickName == "" {
			return nil, ErrInvalidProfile
		}
		if nickName != member.NickName {
			exists, err := memberRepo.ExistsByNickName(ctx, nickName)
			if err != nil {
				return nil, err
			}
			if exists {
				return nil, ErrNickNameTaken
			}
			fields["nick_name"] = nickName
		}
	}
	if input.Gender != nil {
		gender := strings.ToUpper(strings.TrimSpace(*input.Gender))
		if gender != "M" && gender != "F" {
			return nil, ErrInvalidProfile
		}
		fields["gender"] = gender
	}
	if input.BirthYear != nil {
		if *input.BirthYear < minBirthYear || *input.BirthYear > s.now().Year() {
			return nil, ErrInvalidProfile
		}
		fields["birth_year"] = *input.BirthYear
	}
	if input.FirstCity != nil {
		fields["first_city"] = strings.TrimSpace(*input.FirstCity)
	}
	if input.SecondCity != nil {
		fields["second_city"] = strings.TrimSpace(*input.SecondCity)
	}
	if input.ThirdCity != nil {
		fields["third_city"] = strings.TrimSpace(*input.ThirdCity)
	}
	return fields, nil
}

// validateInterests 중복을 제거하고 모두 존재하는 1차 카테고리인지 확인
func (s *memberService) validateInterests(ctx context.Context, categoryRepo repository.CategoryRepository, ids []uint) ([]uint, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	categories, err := categoryRepo.FindByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(unique) {
		return nil, ErrInvalidInterest
	}
	for _, c := range categories {
		if c.SessionNum != model.CategorySessionTop {
			return nil, ErrInvalidInterest
		}
	}
	return unique, nil
}

func (s *memberService) GetConsent(ctx context.Context, memberID uint) (*model.ConsentStatus, error) {
	consent, err := s.memberRepo.FindConsent(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if consent == nil {
		return nil, ErrMemberNotFound
	}
	return consent, nil
}

// SetAlarmConsent 알림 수신 동의 변경
func (s *memberService) SetAlarmConsent(ctx context.Context, memberID uint, agreed bool) (*model.ConsentStatus, error) {
	return s.setConsent(ctx, memberID, "is_agree_alarm", agreed)
}

// SetADConsent 광고 수신 동의 변경
func (s *memberService) SetADConsent(ctx context.Context, memberID uint, agreed bool) (*model.ConsentStatus, error) {
	return s.setConsent(ctx, memberID, "is_agree_ad", agreed)
}

func (s *memberService) setConsent(ctx context.Context, memberID uint, column string, agreed bool) (*model.ConsentStatus, error) {
	if _, err := s.GetConsent(ctx, memberID); err != nil {
		return nil, err
	}
	if err := s.memberRepo.UpdateFields(ctx, memberID, map[string]interface{}{column: agreed}); err != nil {
		return nil, err
	}
	return s.GetConsent(ctx, memberID)
}

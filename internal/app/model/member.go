package model

import (
	"time"

	"gorm.io/gorm"
)

type MemberRole string // 회원 권한 타입

const (
	RoleMember MemberRole = "member" // 일반 회원
	RoleAdmin  MemberRole = "admin"  // 관리자
)

// Member 회원 모델
type Member struct {
	MemberID     uint           `gorm:"primaryKey;column:member_id" json:"memberId"`
	SnsID        string         `gorm:"column:sns_id;uniqueIndex;not null" json:"snsId"`       // SNS 고유 ID
	SignInSns    string         `gorm:"column:sign_in_sns;type:varchar(20)" json:"signInSns"`  // 가입 SNS (K: 카카오, A: 애플 ...)
	MemberEmail  string         `gorm:"column:member_email" json:"memberEmail"`                // 이메일
	MemberName   string         `gorm:"column:member_name" json:"memberName"`                  // 이름
	NickName     string         `gorm:"column:nick_name;uniqueIndex;not null" json:"nickName"` // 닉네임 (수정 가능)
	BirthYear    *int           `gorm:"column:birth_year" json:"birthYear,omitempty"`          // 출생연도
	Gender       *string        `gorm:"column:gender;type:varchar(1)" json:"gender,omitempty"` // 성별 (M/F)
	FirstCity    string         `gorm:"column:first_city" json:"firstCity"`
	SecondCity   string         `gorm:"column:second_city" json:"secondCity"`
	ThirdCity    string         `gorm:"column:third_city" json:"thirdCity"`
	IsHavingImg  bool           `gorm:"column:is_having_img;default:false" json:"isHavingImg"` // 프로필 이미지 보유 여부
	IsUsable     bool           `gorm:"column:is_usable;default:true" json:"isUsable"`
	IsAgreeAD    bool           `gorm:"column:is_agree_ad;default:false" json:"isAgreeAD"`       // 광고 수신 동의
	IsAgreeAlarm bool           `gorm:"column:is_agree_alarm;default:false" json:"isAgreeAlarm"` // 알림 수신 동의
	Role         MemberRole     `gorm:"column:role;type:varchar(20);default:'member'" json:"role"`
	CreatedDate  time.Time      `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
	UpdateDate   time.Time      `gorm:"column:update_date;autoUpdateTime" json:"updateDate"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"` // 탈퇴 기록 (소프트 삭제)

	ProfileImg *ProfileImg           `gorm:"foreignKey:MemberID;references:MemberID" json:"profileImg,omitempty"`
	Interests  []UserInterestDessert `gorm:"foreignKey:MemberID;references:MemberID" json:"-"`
}

func (Member) TableName() string {
	return "members"
}

// ProfileImg 회원 프로필 이미지 (회원당 1개)
type ProfileImg struct {
	ProfileImgID uint   `gorm:"primaryKey;column:profile_img_id" json:"profileImgId"`
	MemberID     uint   `gorm:"column:member_id;uniqueIndex;not null" json:"memberId"`
	MiddlePath   string `gorm:"column:middle_path" json:"middlePath"`
	Path         string `gorm:"column:path" json:"path"`
	Extension    string `gorm:"column:extension;type:varchar(10)" json:"extension"`
	ImgName      string `gorm:"column:img_name" json:"imgName"`
	IsUsable     bool   `gorm:"column:is_usable;default:true" json:"isUsable"`
}

func (ProfileImg) TableName() string {
	return "profile_imgs"
}

// UserInterestDessert 회원이 선택한 관심 디저트 (1차 카테고리)
type UserInterestDessert struct {
	ID                uint `gorm:"primarykey" json:"id"`
	MemberID          uint `gorm:"column:member_id;not null;index:idx_member_interest,unique" json:"memberId"`
	DessertCategoryID uint `gorm:"column:dessert_category_id;not null;index:idx_member_interest,unique" json:"dessertCategoryId"`
}

func (UserInterestDessert) TableName() string {
	return "user_interest_desserts"
}

// MemberProfileRow 회원 정보 조회 조인 행 (관심 디저트마다 한 행)
type MemberProfileRow struct {
	MemberID          uint    `gorm:"column:member_id"`
	NickName          string  `gorm:"column:nick_name"`
	Gender            *string `gorm:"column:gender"`
	BirthYear         *int    `gorm:"column:birth_year"`
	FirstCity         string  `gorm:"column:first_city"`
	SecondCity        string  `gorm:"column:second_city"`
	ThirdCity         string  `gorm:"column:third_city"`
	ProfileImgID      *uint   `gorm:"column:profile_img_id"`
	ProfileMiddlePath *string `gorm:"column:profile_middle_path"`
	ProfilePath       *string `gorm:"column:profile_path"`
	ProfileExtension  *string `gorm:"column:profile_extension"`
	DessertCategoryID *uint   `gorm:"column:dessert_category_id"`
	DessertName       *string `gorm:"column:dessert_name"`
}

type InterestDessert struct {
	DessertCategoryID uint   `json:"dessertCategoryId"`
	DessertName       string `json:"dessertName"`
}

type MemberProfileImg struct {
	ProfileImgID uint   `json:"profileImgId"`
	MiddlePath   string `json:"middlePath"`
	Path         string `json:"path"`
	Extension    string `json:"extension"`
}

// MemberProfile 회원 정보 (관심 디저트 목록 포함)
type MemberProfile struct {
	MemberID   uint              `json:"memberId"`
	NickName   string            `json:"nickName"`
	Gender     *string           `json:"gender"`
	BirthYear  *int              `json:"birthYear"`
	FirstCity  string            `json:"firstCity"`
	SecondCity string            `json:"secondCity"`
	ThirdCity  string            `json:"thirdCity"`
	ProfileImg *MemberProfileImg `json:"profileImg"`
	Desserts   []InterestDessert `json:"desserts"`
}

// ConsentStatus 광고/알림 수신 동의 상태
type ConsentStatus struct {
	IsAgreeAD    bool `gorm:"column:is_agree_ad" json:"isAgreeAD"`
	IsAgreeAlarm bool `gorm:"column:is_agree_alarm" json:"isAgreeAlarm"`
}

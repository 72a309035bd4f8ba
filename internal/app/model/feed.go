package model

import "time"

type FeedSort string // 리뷰 목록 정렬 기준

const (
	FeedSortDate  FeedSort = "D" // 작성일 최신순
	FeedSortLikes FeedSort = "L" // 좋아요 많은순
)

// ParseFeedSort 알 수 없는 값은 최신순으로 처리
func ParseFeedSort(s string) FeedSort {
	if FeedSort(s) == FeedSortLikes {
		return FeedSortLikes
	}
	return FeedSortDate
}

// ReviewRow 리뷰 x 이미지 x 재료 x 프로필 조인 결과 한 행
type ReviewRow struct {
	ReviewID          uint      `gorm:"column:review_id"`
	TotalLikedNum     int       `gorm:"column:total_liked_num"`
	MenuName          string    `gorm:"column:menu_name"`
	Content           string    `gorm:"column:content"`
	StoreName         string    `gorm:"column:store_name"`
	Score             float64   `gorm:"column:score"`
	CreatedDate       time.Time `gorm:"column:created_date"`
	DessertCategoryID *uint     `gorm:"column:dessert_category_id"`
	MemberID          uint      `gorm:"column:member_id"`
	MemberNickName    string    `gorm:"column:member_nick_name"`
	MemberIsHavingImg bool      `gorm:"column:member_is_having_img"`
	IsLiked           int       `gorm:"column:is_liked"`

	ProfileMiddlePath *string `gorm:"column:profile_middle_path"`
	ProfilePath       *string `gorm:"column:profile_path"`
	ProfileExtension  *string `gorm:"column:profile_extension"`

	ReviewImgID         *uint   `gorm:"column:review_img_id"`
	ReviewImgIsMain     *bool   `gorm:"column:review_img_is_main"`
	ReviewImgNum        *int    `gorm:"column:review_img_num"`
	ReviewImgMiddlePath *string `gorm:"column:review_img_middle_path"`
	ReviewImgPath       *string `gorm:"column:review_img_path"`
	ReviewImgExtension  *string `gorm:"column:review_img_extension"`

	IngredientName *string `gorm:"column:ingredient_name"`
}

type IngredientEntry struct {
	IngredientName string `json:"ingredientName"`
}

type ReviewImgEntry struct {
	ReviewImgID uint   `json:"reviewImgId"`
	IsMain      bool   `json:"isMain"`
	Num         int    `json:"num"`
	MiddlePath  string `json:"middlePath"`
	Path        string `json:"path"`
	Extension   string `json:"extension"`
}

type ProfileImgEntry struct {
	MiddlePath string `json:"middlePath"`
	Path       string `json:"path"`
	Extension  string `json:"extension"`
}

// ReviewFeedItem 피드 응답의 리뷰 한 건
type ReviewFeedItem struct {
	ReviewID          uint              `json:"reviewId"`
	TotalLikedNum     int               `json:"totalLikedNum"`
	MenuName          string            `json:"menuName"`
	Content           string            `json:"content"`
	StoreName         string            `json:"storeName"`
	Score             float64           `json:"score"`
	CreatedDate       time.Time         `json:"createdDate"`
	DessertCategoryID *uint             `json:"dessertCategoryId"`
	MemberID          uint              `json:"memberId"`
	MemberNickName    string            `json:"memberNickName"`
	MemberIsHavingImg bool              `json:"memberIsHavingImg"`
	IsLiked           int               `json:"isLiked"`
	Ingredient        []IngredientEntry `json:"ingredient"`
	ReviewImg         []ReviewImgEntry  `json:"reviewImg"`
	ProfileImg        []ProfileImgEntry `json:"profileImg"`
}

// CategoryCount 카테고리별 리뷰 수 집계
type CategoryCount struct {
	DessertCategoryID uint   `gorm:"column:dessert_category_id"`
	DessertName       string `gorm:"column:dessert_name"`
	ReviewCount       int64  `gorm:"column:review_count"`
}

// CategoryImage 홈 카테고리 카드에 노출되는 대표 이미지
type CategoryImage struct {
	ReviewID    uint      `gorm:"column:review_id" json:"reviewId"`
	ReviewImgID uint      `gorm:"column:review_img_id" json:"reviewImgId"`
	MiddlePath  string    `gorm:"column:middle_path" json:"middlePath"`
	Path        string    `gorm:"column:path" json:"path"`
	Extension   string    `gorm:"column:extension" json:"extension"`
	ImgName     string    `gorm:"column:img_name" json:"imgName"`
	CreatedDate time.Time `gorm:"column:created_date" json:"createdDate"`
	IsNew       bool      `gorm:"-" json:"isNew"`
}

// CategoryFeed 추천 카테고리 한 건
type CategoryFeed struct {
	CategoryID   uint            `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Images       []CategoryImage `json:"images"`
}

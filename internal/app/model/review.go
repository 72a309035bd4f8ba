package model

import "time"

type ReviewStatus string // 리뷰 작성 상태

const (
	ReviewStatusInit  ReviewStatus = "INIT"  // 생성만 된 상태
	ReviewStatusWait  ReviewStatus = "WAIT"  // 작성 대기
	ReviewStatusSaved ReviewStatus = "SAVED" // 작성 완료
)

// MaxReviewImages 리뷰당 최대 이미지 수
const MaxReviewImages = 4

// Review 리뷰 모델
type Review struct {
	ReviewID          uint         `gorm:"primaryKey;column:review_id" json:"reviewId"`
	MemberID          uint         `gorm:"column:member_id;not null;index" json:"memberId"`
	DessertCategoryID *uint        `gorm:"column:dessert_category_id;index" json:"dessertCategoryId"`
	MenuName          string       `gorm:"column:menu_name" json:"menuName"`
	StoreName         string       `gorm:"column:store_name" json:"storeName"`
	Content           string       `gorm:"column:content;type:text" json:"content"`
	Score             float64      `gorm:"column:score;default:0" json:"score"`
	Status            ReviewStatus `gorm:"column:status;type:varchar(10);default:'INIT';index" json:"status"`
	IsUsable          bool         `gorm:"column:is_usable;default:true" json:"isUsable"` // false: 숨김 (신고 누적/본인 삭제)
	TotalLikedNum     int          `gorm:"column:total_liked_num;default:0" json:"totalLikedNum"`
	CreatedDate       time.Time    `gorm:"column:created_date;autoCreateTime;index" json:"createdDate"`
	UpdateDate        time.Time    `gorm:"column:update_date;autoUpdateTime" json:"updateDate"`

	DessertCategory   *DessertCategory   `gorm:"foreignKey:DessertCategoryID;references:DessertCategoryID" json:"dessertCategory,omitempty"`
	ReviewImgs        []ReviewImg        `gorm:"foreignKey:ReviewID;references:ReviewID" json:"reviewImg,omitempty"`
	ReviewIngredients []ReviewIngredient `gorm:"foreignKey:ReviewID;references:ReviewID" json:"-"`
}

func (Review) TableName() string {
	return "reviews"
}

// IsGenerable 작성 전 상태(INIT/WAIT) 여부
func (r Review) IsGenerable() bool {
	return r.Status == ReviewStatusInit || r.Status == ReviewStatusWait
}

// ReviewImg 리뷰 이미지
type ReviewImg struct {
	ReviewImgID uint      `gorm:"primaryKey;column:review_img_id" json:"reviewImgId"`
	ReviewID    uint      `gorm:"column:review_id;not null;index" json:"reviewId"`
	IsMain      bool      `gorm:"column:is_main;default:false" json:"isMain"`
	Num         int       `gorm:"column:num;default:0" json:"num"` // 노출 순서
	MiddlePath  string    `gorm:"column:middle_path" json:"middlePath"`
	Path        string    `gorm:"column:path" json:"path"`
	Extension   string    `gorm:"column:extension;type:varchar(10)" json:"extension"`
	ImgName     string    `gorm:"column:img_name" json:"imgName"`
	CreatedDate time.Time `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
}

func (ReviewImg) TableName() string {
	return "review_imgs"
}

// ObjectKey 저장소 객체 키
func (i ReviewImg) ObjectKey() string {
	return i.MiddlePath + "/" + i.Path + i.Extension
}

// Ingredient 재료 태그
type Ingredient struct {
	IngredientID   uint   `gorm:"primaryKey;column:ingredient_id" json:"ingredientId"`
	IngredientName string `gorm:"column:ingredient_name;uniqueIndex;not null" json:"ingredientName"`
	Usable         bool   `gorm:"column:usable;default:true" json:"usable"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// ReviewIngredient 리뷰-재료 연결 (리뷰 수정 시 전체 교체)
type ReviewIngredient struct {
	ID           uint `gorm:"primarykey" json:"id"`
	ReviewID     uint `gorm:"column:review_id;not null;index" json:"reviewId"`
	IngredientID uint `gorm:"column:ingredient_id;not null;index" json:"ingredientId"`

	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;references:IngredientID" json:"ingredient,omitempty"`
}

func (ReviewIngredient) TableName() string {
	return "review_ingredients"
}

// Like 리뷰 좋아요
type Like struct {
	LikeID      uint      `gorm:"primaryKey;column:like_id" json:"likeId"`
	MemberID    uint      `gorm:"column:member_id;not null;index:idx_review_member_like,unique" json:"memberId"`
	ReviewID    uint      `gorm:"column:review_id;not null;index:idx_review_member_like,unique" json:"reviewId"`
	CreatedDate time.Time `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
}

func (Like) TableName() string {
	return "review_likes"
}

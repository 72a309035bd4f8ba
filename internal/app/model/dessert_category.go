package model

const (
	CategorySessionTop  = 1 // 1차 카테고리
	CategorySessionLeaf = 2 // 2차 카테고리 (리뷰 연결 대상)
)

// DessertCategory 디저트 카테고리 (2단계 계층)
type DessertCategory struct {
	DessertCategoryID uint   `gorm:"primaryKey;column:dessert_category_id" json:"dessertCategoryId"`
	DessertName       string `gorm:"column:dessert_name;not null" json:"dessertName"`
	ParentDCID        uint   `gorm:"column:parent_dc_id;default:0;index" json:"parentDCId"` // 상위 카테고리 (1차는 0)
	SessionNum        int    `gorm:"column:session_num;not null" json:"sessionNum"`
}

func (DessertCategory) TableName() string {
	return "dessert_categories"
}

func (c DessertCategory) IsLeaf() bool {
	return c.SessionNum == CategorySessionLeaf
}

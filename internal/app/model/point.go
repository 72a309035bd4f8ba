package model

import "time"

type PointType string // 포인트 발생 유형

const (
	PointTypeReview PointType = "R" // 리뷰 작성/삭제
	PointTypeAdmin  PointType = "A" // 관리자 지급/회수
)

// Point 회원 포인트 잔액 (회원당 1행, 최초 적립 시 생성)
type Point struct {
	PointID     uint      `gorm:"primaryKey;column:point_id" json:"pointId"`
	MemberID    uint      `gorm:"column:member_id;uniqueIndex;not null" json:"memberId"`
	TotalPoint  int       `gorm:"column:total_point;not null;default:0" json:"totalPoint"`
	CreatedDate time.Time `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
	UpdatedDate time.Time `gorm:"column:updated_date;autoUpdateTime" json:"updatedDate"`
}

func (Point) TableName() string {
	return "points"
}

// PointHistory 포인트 변동 이력
// 리뷰로 발생한 이력은 (member, review) 당 1행만 유지된다.
type PointHistory struct {
	PointHistoryID uint      `gorm:"primaryKey;column:point_history_id" json:"pointHistoryId"`
	MemberID       uint      `gorm:"column:member_id;not null;index;uniqueIndex:idx_point_history_member_review" json:"memberId"`
	ReviewID       *uint     `gorm:"column:review_id;uniqueIndex:idx_point_history_member_review" json:"reviewId"`
	NewPoint       int       `gorm:"column:new_point;not null" json:"newPoint"`
	PointType      PointType `gorm:"column:point_type;type:varchar(1);not null" json:"pointType"`
	CreatedDate    time.Time `gorm:"column:created_date;autoCreateTime;index" json:"createdDate"`
	UpdatedDate    time.Time `gorm:"column:updated_date;autoUpdateTime" json:"updatedDate"`
}

func (PointHistory) TableName() string {
	return "point_histories"
}

// PointHistoryEntry 이력 조회 결과 (리뷰 메뉴명 포함)
type PointHistoryEntry struct {
	PointHistoryID uint      `gorm:"column:point_history_id" json:"pointHistoryId"`
	ReviewID       *uint     `gorm:"column:review_id" json:"reviewId"`
	MenuName       *string   `gorm:"column:menu_name" json:"menuName"`
	NewPoint       int       `gorm:"column:new_point" json:"point"`
	PointType      PointType `gorm:"column:point_type" json:"pointType"`
	CreatedDate    time.Time `gorm:"column:created_date" json:"createdDate"`
	UpdatedDate    time.Time `gorm:"column:updated_date" json:"updatedDate"`
}

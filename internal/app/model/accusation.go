package model

import "time"

type AccusationReason string // 신고 사유 코드

const (
	AccusationAbuse     AccusationReason = "ABUSE"
	AccusationSpam      AccusationReason = "SPAM"
	AccusationObscene   AccusationReason = "OBSCENE"
	AccusationFalseInfo AccusationReason = "FALSE_INFO"
	AccusationEtc       AccusationReason = "ETC"
)

// AccusationHideThreshold 누적 신고 수가 이 값에 도달하면 리뷰 숨김
const AccusationHideThreshold = 3

var accusationReasonText = map[AccusationReason]string{
	AccusationAbuse:     "욕설/비방",
	AccusationSpam:      "광고/도배",
	AccusationObscene:   "음란성/선정성",
	AccusationFalseInfo: "허위 정보",
	AccusationEtc:       "기타",
}

// AccusationReasons 노출 순서대로 정렬된 사유 목록
var AccusationReasons = []AccusationReason{
	AccusationAbuse, AccusationSpam, AccusationObscene, AccusationFalseInfo, AccusationEtc,
}

func (r AccusationReason) Text() string {
	return accusationReasonText[r]
}

func (r AccusationReason) Valid() bool {
	_, ok := accusationReasonText[r]
	return ok
}

// Accusation 리뷰 신고
type Accusation struct {
	AccusationID uint             `gorm:"primaryKey;column:accusation_id" json:"accusationId"`
	MemberID     uint             `gorm:"column:member_id;not null;index" json:"memberId"`
	ReviewID     uint             `gorm:"column:review_id;not null;index" json:"reviewId"`
	Reason       AccusationReason `gorm:"column:reason;type:varchar(20);not null" json:"reason"`
	Content      string           `gorm:"column:content;type:text" json:"content"`
	CreatedDate  time.Time        `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
}

func (Accusation) TableName() string {
	return "accusations"
}

package model

import "time"

// BlockedMember 회원 차단 (primary 가 blocked 를 차단, 단방향)
type BlockedMember struct {
	ID              uint      `gorm:"primarykey" json:"id"`
	PrimaryMemberID uint      `gorm:"column:primary_member_id;not null;index:idx_blocked_pair,unique" json:"primaryMemberId"`
	BlockedMemberID uint      `gorm:"column:blocked_member_id;not null;index:idx_blocked_pair,unique" json:"blockedMemberId"`
	CreatedDate     time.Time `gorm:"column:created_date;autoCreateTime" json:"createdDate"`
}

func (BlockedMember) TableName() string {
	return "blocked_members"
}

package repository

import (
	"errors"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"gorm.io/gorm"
)

// visibleReviews 노출 가능한 리뷰 조건 (작성 완료, 숨김 아님, 차단 작성자 제외)
// 차단 조건은 집계/정렬/limit 이전에 적용되어야 한다.
func visibleReviews(blocked []uint) func(*gorm.DB) *gorm.DB {
	return func(q *gorm.DB) *gorm.DB {
		q = q.Where("reviews.is_usable = ? AND reviews.status = ?", true, model.ReviewStatusSaved)
		if len(blocked) > 0 {
			q = q.Where("reviews.member_id NOT IN ?", blocked)
		}
		return q
	}
}

// firstOrNil 조회 결과가 없으면 (nil, nil)
func firstOrNil[T any](q *gorm.DB) (*T, error) {
	var out T
	if err := q.First(&out).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &out, nil
}

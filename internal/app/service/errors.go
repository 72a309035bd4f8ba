package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/dessert-review-backend/pkg/pagination"
)

var (
	ErrMemberNotFound          = errors.New("회원을 찾을 수 없습니다")
	ErrReviewNotFound          = errors.New("리뷰를 찾을 수 없습니다")
	ErrCategoryNotFound        = errors.New("디저트 카테고리를 찾을 수 없습니다")
	ErrIngredientNotFound      = errors.New("재료를 찾을 수 없습니다")
	ErrReviewImageNotFound     = errors.New("리뷰 이미지를 찾을 수 없습니다")
	ErrReviewNotOwned          = errors.New("본인이 작성한 리뷰가 아닙니다")
	ErrImageCapacityExceeded   = errors.New("리뷰 이미지는 최대 4장까지 등록할 수 있습니다")
	ErrInvalidImage            = errors.New("허용되지 않는 이미지 파일입니다")
	ErrLikeTargetNotFound      = errors.New("좋아요 대상 회원 또는 리뷰가 없습니다")
	ErrInsufficientBalance     = errors.New("대상자의 보유 포인트가 부족해 포인트 회수에 실패했습니다")
	ErrInvalidAmount           = errors.New("포인트 값이 올바르지 않습니다")
	ErrBalanceOverflow         = errors.New("보유 포인트 한도를 초과합니다")
	ErrSelfBlock               = errors.New("본인은 차단할 수 없습니다")
	ErrNickNameTaken           = errors.New("이미 사용 중인 닉네임입니다")
	ErrInvalidProfile          = errors.New("회원 정보 값이 올바르지 않습니다")
	ErrInvalidInterest         = errors.New("관심 디저트는 존재하는 1차 카테고리여야 합니다")
	ErrInvalidAccusationReason = errors.New("신고 사유가 올바르지 않습니다")
	ErrStorageFailure          = errors.New("이미지 저장소 처리에 실패했습니다")
	ErrInvalidCursor           = pagination.ErrInvalidCursor
)

// InsufficientBalanceError 회수할 포인트가 잔액보다 클 때
type InsufficientBalanceError struct {
	Required  int
	Available int
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("%s (필요: %d, 보유: %d)", ErrInsufficientBalance.Error(), e.Required, e.Available)
}

func (e *InsufficientBalanceError) Is(target error) bool {
	return target == ErrInsufficientBalance
}

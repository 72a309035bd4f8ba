package controller

import (
	stderrors "errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dessert-review-backend/internal/app/service"
	apperrors "github.com/ikkim/dessert-review-backend/internal/errors"
	"github.com/ikkim/dessert-review-backend/internal/middleware"
)

type errorMapping struct {
	target error
	status int
	code   string
}

// 서비스 에러 → HTTP 응답. 메시지는 서비스 에러 문구를 그대로 사용
var serviceErrorMappings = []errorMapping{
	{service.ErrMemberNotFound, http.StatusNotFound, apperrors.MemberNotFound},
	{service.ErrReviewNotFound, http.StatusNotFound, apperrors.ReviewNotFound},
	{service.ErrCategoryNotFound, http.StatusNotFound, apperrors.ReviewCategoryNotFound},
	{service.ErrIngredientNotFound, http.StatusNotFound, apperrors.ReviewIngredientNotFound},
	{service.ErrReviewImageNotFound, http.StatusNotFound, apperrors.ReviewImageNotFound},
	{service.ErrReviewNotOwned, http.StatusForbidden, apperrors.AuthzOwnerOnly},
	{service.ErrLikeTargetNotFound, http.StatusBadRequest, apperrors.ReviewLikeTargetNotFound},
	{service.ErrImageCapacityExceeded, http.StatusConflict, apperrors.ReviewImageCapacity},
	{service.ErrInvalidImage, http.StatusBadRequest, apperrors.ReviewImageInvalid},
	{service.ErrInvalidAmount, http.StatusBadRequest, apperrors.PointInvalidAmount},
	{service.ErrBalanceOverflow, http.StatusConflict, apperrors.PointBalanceOverflow},
	{service.ErrInvalidCursor, http.StatusBadRequest, apperrors.ValidationInvalidCursor},
	{service.ErrSelfBlock, http.StatusBadRequest, apperrors.MemberSelfBlock},
	{service.ErrNickNameTaken, http.StatusConflict, apperrors.MemberNicknameUsed},
	{service.ErrInvalidProfile, http.StatusBadRequest, apperrors.MemberProfileInvalid},
	{service.ErrInvalidInterest, http.StatusBadRequest, apperrors.MemberInterestInvalid},
	{service.ErrInvalidAccusationReason, http.StatusBadRequest, apperrors.ReviewAccusationInvalid},
	{service.ErrStorageFailure, http.StatusInternalServerError, apperrors.InternalStorageError},
}

// respondServiceError 서비스 에러를 표준 에러 응답으로 변환
// 알 수 없는 에러는 ParseError 로 DB 에러 여부를 판단한다.
func respondServiceError(c *gin.Context, err error, action string) {
	log := middleware.GetLoggerFromContext(c)

	var balanceErr *service.InsufficientBalanceError
	if stderrors.As(err, &balanceErr) {
		apperrors.RespondWithDetails(c, http.StatusConflict, apperrors.PointInsufficientBalance,
			service.ErrInsufficientBalance.Error(), map[string]interface{}{
				"required":  balanceErr.Required,
				"available": balanceErr.Available,
			})
		return
	}

	for _, m := range serviceErrorMappings {
		if stderrors.Is(err, m.target) {
			if m.status >= http.StatusInternalServerError {
				log.Error(action+" failed", err)
			}
			apperrors.RespondWithError(c, m.status, m.code, m.target.Error())
			return
		}
	}

	log.Error(action+" failed", err)
	info := apperrors.ParseError(err, action)
	apperrors.RespondWithError(c, info.Status(), info.Code, info.Message)
}

// currentMemberID 인증된 회원 ID, 없으면 401 응답 후 false
func currentMemberID(c *gin.Context) (uint, bool) {
	memberID, ok := middleware.GetMemberID(c)
	if !ok {
		apperrors.Unauthorized(c, "로그인이 필요합니다")
		return 0, false
	}
	return memberID, true
}

// parseIDParam 경로 파라미터 ID 파싱, 실패 시 400 응답 후 false
func parseIDParam(c *gin.Context, name, message string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, message)
		return 0, false
	}
	return uint(id), true
}

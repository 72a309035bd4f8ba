package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/service"
	apperrors "github.com/ikkim/dessert-review-backend/internal/errors"
)

type MemberController struct {
	memberService service.MemberService
	pointService  service.PointService
}

func NewMemberController(memberService service.MemberService, pointService service.PointService) *MemberController {
	return &MemberController{
		memberService: memberService,
		pointService:  pointService,
	}
}

// MyPage 마이페이지 요약
// GET /api/v1/members/me
func (ctrl *MemberController) MyPage(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	page, err := ctrl.memberService.MyPage(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, err, "get my page")
		return
	}

	c.JSON(http.StatusOK, page)
}

// PointSummary 이번 달/누적 포인트
// GET /api/v1/members/me/points
func (ctrl *MemberController) PointSummary(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	summary, err := ctrl.pointService.GetSummary(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, err, "get point summary")
		return
	}

	c.JSON(http.StatusOK, summary)
}

// PointHistory 내 포인트 내역
// GET /api/v1/members/me/points/history
func (ctrl *MemberController) PointHistory(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	items, err := ctrl.pointService.ListMemberHistory(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, err, "list point history")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count": len(items),
		"items": items,
	})
}

// CheckNickName 닉네임 사용 가능 여부
// GET /api/v1/members/nickname/check?nickName=
func (ctrl *MemberController) CheckNickName(c *gin.Context) {
	nickName := c.Query("nickName")
	if nickName == "" {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "닉네임을 입력해주세요")
		return
	}

	usable, err := ctrl.memberService.IsUsableNickName(c.Request.Context(), nickName)
	if err != nil {
		respondServiceError(c, err, "check nickname")
		return
	}

	c.JSON(http.StatusOK, gin.H{"isUsable": usable})
}

// GetProfile 회원 정보 (관심 디저트 포함)
// GET /api/v1/members/me/profile
func (ctrl *MemberController) GetProfile(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	profile, err := ctrl.memberService.GetProfile(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, err, "get member profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

// UpdateProfile 회원 정보/관심 디저트 수정
// PATCH /api/v1/members/me/profile
func (ctrl *MemberController) UpdateProfile(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	var input service.UpdateProfileInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	profile, err := ctrl.memberService.UpdateProfile(c.Request.Context(), memberID, input)
	if err != nil {
		respondServiceError(c, err, "update member profile")
		return
	}

	c.JSON(http.StatusOK, profile)
}

type consentRequest struct {
	Agreed *bool `json:"agreed" binding:"required"`
}

// GetConsent 광고/알림 수신 동의 상태
// GET /api/v1/members/me/consents
func (ctrl *MemberController) GetConsent(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	consent, err := ctrl.memberService.GetConsent(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, err, "get consent")
		return
	}

	c.JSON(http.StatusOK, consent)
}

// SetAlarmConsent PATCH /api/v1/members/me/consents/alarm
func (ctrl *MemberController) SetAlarmConsent(c *gin.Context) {
	ctrl.setConsent(c, ctrl.memberService.SetAlarmConsent)
}

// SetADConsent PATCH /api/v1/members/me/consents/ad
func (ctrl *MemberController) SetADConsent(c *gin.Context) {
	ctrl.setConsent(c, ctrl.memberService.SetADConsent)
}

func (ctrl *MemberController) setConsent(c *gin.Context, set func(ctx context.Context, memberID uint, agreed bool) (*model.ConsentStatus, error)) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	var req consentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "동의 여부를 입력해주세요")
		return
	}

	consent, err := set(c.Request.Context(), memberID, *req.Agreed)
	if err != nil {
		respondServiceError(c, err, "update consent")
		return
	}

	c.JSON(http.StatusOK, consent)
}

package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dessert-review-backend/internal/app/service"
	apperrors "github.com/ikkim/dessert-review-backend/internal/errors"
)

type AccusationController struct {
	accusationService service.AccusationService
}

func NewAccusationController(accusationService service.AccusationService) *AccusationController {
	return &AccusationController{
		accusationService: accusationService,
	}
}

// Report 리뷰 신고
// POST /api/v1/reviews/:id/accusations
func (ctrl *AccusationController) Report(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "id", "잘못된 리뷰 ID입니다")
	if !ok {
		return
	}

	var input service.ReportInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	result, err := ctrl.accusationService.Report(c.Request.Context(), memberID, reviewID, input)
	if err != nil {
		respondServiceError(c, err, "report review")
		return
	}

	c.JSON(http.StatusCreated, result)
}

// HasReported 신고 여부
// GET /api/v1/reviews/:id/accusations/me
func (ctrl *AccusationController) HasReported(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "id", "잘못된 리뷰 ID입니다")
	if !ok {
		return
	}

	reported, err := ctrl.accusationService.HasReported(c.Request.Context(), memberID, reviewID)
	if err != nil {
		respondServiceError(c, err, "check accusation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"isReported": reported})
}

// ReasonList 신고 사유 목록
// GET /api/v1/accusations/reasons
func (ctrl *AccusationController) ReasonList(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"reasons": ctrl.accusationService.ReasonList()})
}

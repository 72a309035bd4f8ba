package controller

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dessert-review-backend/internal/app/service"
	apperrors "github.com/ikkim/dessert-review-backend/internal/errors"
	"github.com/ikkim/dessert-review-backend/internal/middleware"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// PointController 관리자 포인트 관리
type PointController struct {
	pointService service.PointService
}

func NewPointController(pointService service.PointService) *PointController {
	return &PointController{
		pointService: pointService,
	}
}

// adminPointRequest point 는 숫자 또는 숫자 문자열
type adminPointRequest struct {
	Point json.RawMessage `json:"point"`
}

func (r adminPointRequest) raw() string {
	return strings.Trim(strings.TrimSpace(string(r.Point)), `"`)
}

// SavePoint 포인트 지급
// POST /api/v1/admin/points/:memberId/save
func (ctrl *PointController) SavePoint(c *gin.Context) {
	ctrl.mutate(c, "save point", ctrl.pointService.SavePoint)
}

// RecallPoint 포인트 회수
// POST /api/v1/admin/points/:memberId/recall
func (ctrl *PointController) RecallPoint(c *gin.Context) {
	ctrl.mutate(c, "recall point", ctrl.pointService.RecallPoint)
}

type pointMutation func(ctx context.Context, memberID uint, raw string) (*service.PointMutationResult, error)

func (ctrl *PointController) mutate(c *gin.Context, action string, apply pointMutation) {
	memberID, ok := parseIDParam(c, "memberId", "잘못된 회원 ID입니다")
	if !ok {
		return
	}

	var req adminPointRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.PointInvalidAmount, service.ErrInvalidAmount.Error())
		return
	}

	result, err := apply(c.Request.Context(), memberID, req.raw())
	if err != nil {
		respondServiceError(c, err, action)
		return
	}

	adminID, _ := middleware.GetMemberID(c)
	middleware.GetLoggerFromContext(c).Info("Admin point mutation", map[string]interface{}{
		"admin_id":    adminID,
		"member_id":   memberID,
		"delta":       result.Delta,
		"total_point": result.TotalPoint,
	})

	c.JSON(http.StatusOK, result)
}

// ListHistory 회원 포인트 이력
// GET /api/v1/admin/points/:memberId/history?pageNo=&limitSize=
func (ctrl *PointController) ListHistory(c *gin.Context) {
	memberID, ok := parseIDParam(c, "memberId", "잘못된 회원 ID입니다")
	if !ok {
		return
	}

	pageNo, _ := strconv.Atoi(c.DefaultQuery("pageNo", "1"))
	limitSize, _ := strconv.Atoi(c.DefaultQuery("limitSize", "20"))

	page, err := ctrl.pointService.ListHistory(c.Request.Context(), memberID, pageNo, limitSize)
	if err != nil {
		respondServiceError(c, err, "list point history")
		return
	}

	c.JSON(http.StatusOK, page)
}

// ExportHistory 회원 포인트 이력 엑셀 다운로드
// GET /api/v1/admin/points/:memberId/history/export
func (ctrl *PointController) ExportHistory(c *gin.Context) {
	memberID, ok := parseIDParam(c, "memberId", "잘못된 회원 ID입니다")
	if !ok {
		return
	}

	data, err := ctrl.pointService.ExportHistory(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, err, "export point history")
		return
	}

	filename := fmt.Sprintf("point_history_%d.xlsx", memberID)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

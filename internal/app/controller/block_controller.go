package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dessert-review-backend/internal/app/service"
	apperrors "github.com/ikkim/dessert-review-backend/internal/errors"
)

type BlockController struct {
	blockService service.BlockService
}

func NewBlockController(blockService service.BlockService) *BlockController {
	return &BlockController{
		blockService: blockService,
	}
}

type blockRequest struct {
	BlockedMemberID uint `json:"blockedMemberId" binding:"required"`
}

// Block 회원 차단
// POST /api/v1/members/blocks
func (ctrl *BlockController) Block(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	var req blockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	if err := ctrl.blockService.Block(c.Request.Context(), memberID, req.BlockedMemberID); err != nil {
		respondServiceError(c, err, "block member")
		return
	}

	c.Status(http.StatusNoContent)
}

// Unblock 차단 해제
// DELETE /api/v1/members/blocks/:blockedId
func (ctrl *BlockController) Unblock(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	blockedID, ok := parseIDParam(c, "blockedId", "잘못된 회원 ID입니다")
	if !ok {
		return
	}

	if err := ctrl.blockService.Unblock(c.Request.Context(), memberID, blockedID); err != nil {
		respondServiceError(c, err, "unblock member")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListBlocked 차단 목록
// GET /api/v1/members/blocks
func (ctrl *BlockController) ListBlocked(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	blocks, err := ctrl.blockService.ListBlocked(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, err, "list blocked members")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":  len(blocks),
		"blocks": blocks,
	})
}

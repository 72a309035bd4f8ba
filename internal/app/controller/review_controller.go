package controller

import (
	"io"
	"net/http"
	"path/filepath"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dessert-review-backend/internal/app/service"
	apperrors "github.com/ikkim/dessert-review-backend/internal/errors"
	"github.com/ikkim/dessert-review-backend/internal/middleware"
	"github.com/ikkim/dessert-review-backend/internal/storage"
)

type ReviewController struct {
	reviewService service.ReviewService
}

func NewReviewController(reviewService service.ReviewService) *ReviewController {
	return &ReviewController{
		reviewService: reviewService,
	}
}

// ListGenerableReviews 작성 가능한 리뷰 목록
// GET /api/v1/reviews/generable
func (ctrl *ReviewController) ListGenerableReviews(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}

	list, err := ctrl.reviewService.ListGenerableReviews(c.Request.Context(), memberID)
	if err != nil {
		respondServiceError(c, err, "list generable reviews")
		return
	}

	c.JSON(http.StatusOK, list)
}

// GetGenerableReview 작성 화면 상세
// GET /api/v1/reviews/generable/:id
func (ctrl *ReviewController) GetGenerableReview(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "id", "잘못된 리뷰 ID입니다")
	if !ok {
		return
	}

	review, err := ctrl.reviewService.GetGenerableReview(c.Request.Context(), memberID, reviewID)
	if err != nil {
		respondServiceError(c, err, "get generable review")
		return
	}

	c.JSON(http.StatusOK, review)
}

// SubmitReview 리뷰 작성 완료
// PUT /api/v1/reviews/:id
func (ctrl *ReviewController) SubmitReview(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "id", "잘못된 리뷰 ID입니다")
	if !ok {
		return
	}

	var input service.SubmitReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	result, err := ctrl.reviewService.SubmitReview(c.Request.Context(), memberID, reviewID, input)
	if err != nil {
		respondServiceError(c, err, "submit review")
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteReview 본인 리뷰 삭제 (숨김)
// DELETE /api/v1/reviews/:id
func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "id", "잘못된 리뷰 ID입니다")
	if !ok {
		return
	}

	if err := ctrl.reviewService.DeleteReview(c.Request.Context(), memberID, reviewID); err != nil {
		respondServiceError(c, err, "delete review")
		return
	}

	c.Status(http.StatusNoContent)
}

// UploadImage 리뷰 이미지 업로드 (multipart: file, isMain, num)
// POST /api/v1/reviews/:id/images
func (ctrl *ReviewController) UploadImage(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "id", "잘못된 리뷰 ID입니다")
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationRequired, "이미지 파일이 필요합니다")
		return
	}
	if err := storage.ValidateFileSize(fileHeader.Size, storage.MaxImageSize); err != nil {
		apperrors.BadRequest(c, apperrors.ReviewImageInvalid, "이미지 크기가 올바르지 않습니다")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "이미지 파일을 읽을 수 없습니다")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, storage.MaxImageSize+1))
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "이미지 파일을 읽을 수 없습니다")
		return
	}

	isMain, _ := strconv.ParseBool(c.DefaultPostForm("isMain", "false"))
	num, _ := strconv.Atoi(c.DefaultPostForm("num", "0"))

	img, err := ctrl.reviewService.AttachImage(c.Request.Context(), memberID, reviewID, service.AttachImageInput{
		Data:      data,
		Extension: filepath.Ext(fileHeader.Filename),
		ImgName:   fileHeader.Filename,
		IsMain:    isMain,
		Num:       num,
	})
	if err != nil {
		respondServiceError(c, err, "upload review image")
		return
	}

	c.JSON(http.StatusCreated, img)
}

// DeleteImage 리뷰 이미지 삭제
// DELETE /api/v1/reviews/:id/images/:imageId
func (ctrl *ReviewController) DeleteImage(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "id", "잘못된 리뷰 ID입니다")
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "imageId", "잘못된 이미지 ID입니다")
	if !ok {
		return
	}

	if err := ctrl.reviewService.DetachImage(c.Request.Context(), memberID, reviewID, imageID); err != nil {
		respondServiceError(c, err, "delete review image")
		return
	}

	c.Status(http.StatusNoContent)
}

type setLikeRequest struct {
	IsLike *bool `json:"isLike" binding:"required"`
}

// SetLike 좋아요 설정/해제
// POST /api/v1/reviews/:id/like
func (ctrl *ReviewController) SetLike(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "id", "잘못된 리뷰 ID입니다")
	if !ok {
		return
	}

	var req setLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "입력값이 올바르지 않습니다")
		return
	}

	if err := ctrl.reviewService.SetLike(c.Request.Context(), memberID, reviewID, *req.IsLike); err != nil {
		respondServiceError(c, err, "set like")
		return
	}

	middleware.GetLoggerFromContext(c).Debug("Like updated", map[string]interface{}{
		"review_id": reviewID,
		"is_like":   *req.IsLike,
	})
	c.JSON(http.StatusOK, gin.H{"reviewId": reviewID, "isLike": *req.IsLike})
}

// ListIngredients 선택 가능한 재료 목록
// GET /api/v1/ingredients
func (ctrl *ReviewController) ListIngredients(c *gin.Context) {
	ingredients, err := ctrl.reviewService.ListIngredients(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "list ingredients")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":       len(ingredients),
		"ingredients": ingredients,
	})
}

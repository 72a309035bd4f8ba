package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/service"
	apperrors "github.com/ikkim/dessert-review-backend/internal/errors"
	"github.com/ikkim/dessert-review-backend/internal/middleware"
)

type FeedController struct {
	feedService service.FeedService
}

func NewFeedController(feedService service.FeedService) *FeedController {
	return &FeedController{
		feedService: feedService,
	}
}

// pageQuery sort/cursor/limit 쿼리 파싱
func pageQuery(c *gin.Context) (sort model.FeedSort, cursor string, limit int, ok bool) {
	sort = model.ParseFeedSort(c.DefaultQuery("sort", string(model.FeedSortDate)))
	cursor = c.Query("cursor")
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			apperrors.BadRequest(c, apperrors.ValidationInvalidInput, "limit 값이 올바르지 않습니다")
			return "", "", 0, false
		}
		limit = n
	}
	return sort, cursor, limit, true
}

// RecommendCategories 메인 화면 추천 카테고리
// GET /api/v1/feed/categories
func (ctrl *FeedController) RecommendCategories(c *gin.Context) {
	feeds, err := ctrl.feedService.RecommendCategories(c.Request.Context(), middleware.GetOptionalMemberID(c))
	if err != nil {
		respondServiceError(c, err, "recommend categories")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"count":      len(feeds),
		"categories": feeds,
	})
}

// ListCategoryReviews 카테고리별 리뷰 목록
// GET /api/v1/reviews/category/:dessertCategoryId
func (ctrl *FeedController) ListCategoryReviews(c *gin.Context) {
	categoryID, ok := parseIDParam(c, "dessertCategoryId", "잘못된 카테고리 ID입니다")
	if !ok {
		return
	}
	sort, cursor, limit, ok := pageQuery(c)
	if !ok {
		return
	}

	page, err := ctrl.feedService.ListCategoryReviews(c.Request.Context(), service.CategoryReviewQuery{
		CategoryID: categoryID,
		ViewerID:   middleware.GetOptionalMemberID(c),
		Sort:       sort,
		Cursor:     cursor,
		Limit:      limit,
	})
	if err != nil {
		respondServiceError(c, err, "list category reviews")
		return
	}

	c.JSON(http.StatusOK, page)
}

// ListLikedReviews 내가 좋아요한 리뷰 목록
// GET /api/v1/reviews/liked
func (ctrl *FeedController) ListLikedReviews(c *gin.Context) {
	memberID, ok := currentMemberID(c)
	if !ok {
		return
	}
	sort, cursor, limit, ok := pageQuery(c)
	if !ok {
		return
	}

	page, err := ctrl.feedService.ListLikedReviews(c.Request.Context(), service.LikedReviewQuery{
		MemberID: memberID,
		Sort:     sort,
		Cursor:   cursor,
		Limit:    limit,
	})
	if err != nil {
		respondServiceError(c, err, "list liked reviews")
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetReview 리뷰 단건 조회
// GET /api/v1/reviews/:id
func (ctrl *FeedController) GetReview(c *gin.Context) {
	reviewID, ok := parseIDParam(c, "id", "잘못된 리뷰 ID입니다")
	if !ok {
		return
	}

	item, err := ctrl.feedService.GetReview(c.Request.Context(), reviewID, middleware.GetOptionalMemberID(c))
	if err != nil {
		respondServiceError(c, err, "get review")
		return
	}

	c.JSON(http.StatusOK, item)
}

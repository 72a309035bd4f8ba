package service

import (
	"context"
	"errors"
	"time"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/internal/cache"
	"github.com/ikkim/dessert-review-backend/internal/metrics"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"github.com/ikkim/dessert-review-backend/pkg/pagination"
)

const (
	recommendCategoryLimit = 25             // 추천 카테고리 최대 수
	personalizedMinReviews = 5              // 관심 카테고리 노출 최소 리뷰 수
	categoryImageLimit     = 10             // 카테고리당 대표 이미지 수
	categoryImageNewWindow = 24 * time.Hour // isNew 기준
)

type CategoryReviewQuery struct {
	CategoryID uint
	ViewerID   *uint
	Sort       model.FeedSort
	Cursor     string
	Limit      int
}

type LikedReviewQuery struct {
	MemberID uint
	Sort     model.FeedSort
	Cursor   string
	Limit    int
}

type FeedService interface {
	RecommendCategories(ctx context.Context, viewerID *uint) ([]model.CategoryFeed, error)
	ListCategoryReviews(ctx context.Context, q CategoryReviewQuery) (pagination.Page[model.ReviewFeedItem], error)
	ListLikedReviews(ctx context.Context, q LikedReviewQuery) (pagination.Page[model.ReviewFeedItem], error)
	GetReview(ctx context.Context, reviewID uint, viewerID *uint) (*model.ReviewFeedItem, error)
}

type feedService struct {
	feedRepo     repository.FeedRepository
	categoryRepo repository.CategoryRepository
	blocked      BlockedMemberFilter
	feedCache    cache.FeedCache
	cacheTTL     time.Duration
	now          func() time.Time
}

func NewFeedService(
	feedRepo repository.FeedRepository,
	categoryRepo repository.CategoryRepository,
	blocked BlockedMemberFilter,
	feedCache cache.FeedCache,
	cacheTTL time.Duration,
) FeedService {
	return &feedService{
		feedRepo:     feedRepo,
		categoryRepo: categoryRepo,
		blocked:      blocked,
		feedCache:    feedCache,
		cacheTTL:     cacheTTL,
		now:          time.Now,
	}
}

// RecommendCategories 홈 추천 카테고리
// 관심 카테고리(리뷰 5개 이상, 리뷰 수 순)를 먼저 채우고 남은 자리는 관심 외 카테고리로 채운다.
func (s *feedService) RecommendCategories(ctx context.Context, viewerID *uint) ([]model.CategoryFeed, error) {
	key := cache.CategoryFeedKey(viewerID)
	if s.cacheEnabled() {
		var cached []model.CategoryFeed
		hit, err := s.feedCache.Get(ctx, key, &cached)
		if err == nil && hit {
			metrics.RecordFeedCache(true)
			return cached, nil
		}
		metrics.RecordFeedCache(false)
	}

	blocked, err := s.blocked.BlockedAuthorsOf(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	var interests []uint
	selected := []model.CategoryCount{}
	if viewerID != nil {
		interests, err = s.categoryRepo.FindInterestLeafIDs(ctx, *viewerID)
		if err != nil {
			return nil, err
		}
		if interests == nil {
			interests = []uint{}
		}
		selected, err = s.feedRepo.CountReviewsByCategory(ctx, repository.CategoryCountQuery{
			Include:  interests,
			Blocked:  blocked,
			MinCount: personalizedMinReviews,
			Limit:    recommendCategoryLimit,
		})
		if err != nil {
			return nil, err
		}
	}

	if remaining := recommendCategoryLimit - len(selected); remaining > 0 {
		fallback, err := s.feedRepo.CountReviewsByCategory(ctx, repository.CategoryCountQuery{
			Exclude: interests,
			Blocked: blocked,
			Limit:   remaining,
		})
		if err != nil {
			return nil, err
		}
		selected = append(selected, fallback...)
	}

	now := s.now()
	feeds := make([]model.CategoryFeed, 0, len(selected))
	for _, c := range selected {
		images, err := s.feedRepo.FindMainImages(ctx, c.DessertCategoryID, blocked, categoryImageLimit)
		if err != nil {
			logger.Error("Failed to load category images", err, map[string]interface{}{
				"dessert_category_id": c.DessertCategoryID,
			})
			return nil, err
		}
		for i := range images {
			images[i].IsNew = now.Sub(images[i].CreatedDate) <= categoryImageNewWindow
		}
		feeds = append(feeds, model.CategoryFeed{
			CategoryID:   c.DessertCategoryID,
			CategoryName: c.DessertName,
			Images:       images,
		})
	}

	if s.cacheEnabled() {
		if err := s.feedCache.Set(ctx, key, feeds, s.cacheTTL); err != nil {
			logger.Warn("Failed to store category feed cache", map[string]interface{}{
				"key":   key,
				"error": err.Error(),
			})
		}
	}
	return feeds, nil
}

func (s *feedService) cacheEnabled() bool {
	return s.feedCache != nil && s.cacheTTL > 0
}

// ListCategoryReviews 카테고리 리뷰 목록 (커서 페이지)
func (s *feedService) ListCategoryReviews(ctx context.Context, q CategoryReviewQuery) (pagination.Page[model.ReviewFeedItem], error) {
	category, err := s.categoryRepo.FindByID(ctx, q.CategoryID)
	if err != nil {
		return pagination.Page[model.ReviewFeedItem]{}, err
	}
	if category == nil {
		return pagination.Page[model.ReviewFeedItem]{}, ErrCategoryNotFound
	}

	blocked, err := s.blocked.BlockedAuthorsOf(ctx, q.ViewerID)
	if err != nil {
		return pagination.Page[model.ReviewFeedItem]{}, err
	}

	var viewer uint
	if q.ViewerID != nil {
		viewer = *q.ViewerID
	}
	categoryID := q.CategoryID
	return s.listPage(ctx, repository.ReviewIDQuery{
		CategoryID: &categoryID,
		Blocked:    blocked,
		Sort:       q.Sort,
	}, q.Cursor, q.Limit, viewer)
}

// ListLikedReviews 회원이 좋아요한 리뷰 목록 (커서 페이지)
func (s *feedService) ListLikedReviews(ctx context.Context, q LikedReviewQuery) (pagination.Page[model.ReviewFeedItem], error) {
	memberID := q.MemberID
	blocked, err := s.blocked.BlockedAuthorsOf(ctx, &memberID)
	if err != nil {
		return pagination.Page[model.ReviewFeedItem]{}, err
	}

	return s.listPage(ctx, repository.ReviewIDQuery{
		LikedByMember: &memberID,
		Blocked:       blocked,
		Sort:          q.Sort,
	}, q.Cursor, q.Limit, memberID)
}

// listPage 1단계 ID 조회 후 2단계 상세 조회
func (s *feedService) listPage(ctx context.Context, q repository.ReviewIDQuery, cursor string, limit int, viewerID uint) (pagination.Page[model.ReviewFeedItem], error) {
	window, err := pagination.ParseRequest(cursor, limit)
	if err != nil {
		return pagination.Page[model.ReviewFeedItem]{}, err
	}
	q.Window = window

	ids, err := s.feedRepo.FindReviewIDs(ctx, q)
	if err != nil {
		return pagination.Page[model.ReviewFeedItem]{}, err
	}

	pageIDs, hasNext, next := window.Trim(ids)
	if len(pageIDs) == 0 {
		return pagination.Empty[model.ReviewFeedItem](), nil
	}

	rows, err := s.feedRepo.FindReviewRows(ctx, pageIDs, viewerID)
	if err != nil {
		return pagination.Page[model.ReviewFeedItem]{}, err
	}

	return pagination.Page[model.ReviewFeedItem]{
		Items:       OrderByIDs(FlattenReviewRows(rows), pageIDs),
		HasNextPage: hasNext,
		NextCursor:  next,
	}, nil
}

// GetReview 리뷰 단건 (숨김, 미작성, 차단 작성자 리뷰는 없는 것으로 처리)
func (s *feedService) GetReview(ctx context.Context, reviewID uint, viewerID *uint) (*model.ReviewFeedItem, error) {
	blocked, err := s.blocked.BlockedAuthorsOf(ctx, viewerID)
	if err != nil {
		return nil, err
	}

	ids, err := s.feedRepo.FilterVisibleIDs(ctx, []uint{reviewID}, blocked)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, ErrReviewNotFound
	}

	var viewer uint
	if viewerID != nil {
		viewer = *viewerID
	}
	rows, err := s.feedRepo.FindReviewRows(ctx, ids, viewer)
	if err != nil {
		return nil, err
	}
	items := FlattenReviewRows(rows)
	if len(items) == 0 {
		return nil, errors.New("review rows missing for visible review")
	}
	return &items[0], nil
}

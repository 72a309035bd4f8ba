package repository

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"github.com/ikkim/dessert-review-backend/pkg/pagination"
	"gorm.io/gorm"
)

// ReviewIDQuery 1단계(리뷰 ID) 조회 조건
type ReviewIDQuery struct {
	CategoryID    *uint // 카테고리 목록
	LikedByMember *uint // 좋아요 목록
	Blocked       []uint
	Sort          model.FeedSort
	Window        pagination.Window
}

// CategoryCountQuery 카테고리별 리뷰 수 집계 조건
type CategoryCountQuery struct {
	Include  []uint // nil 이면 전체 2차 카테고리
	Exclude  []uint
	Blocked  []uint
	MinCount int
	Limit    int
}

type FeedRepository interface {
	FindReviewIDs(ctx context.Context, q ReviewIDQuery) ([]uint, error)
	FilterVisibleIDs(ctx context.Context, ids []uint, blocked []uint) ([]uint, error)
	FindReviewRows(ctx context.Context, ids []uint, viewerID uint) ([]model.ReviewRow, error)
	CountReviewsByCategory(ctx context.Context, q CategoryCountQuery) ([]model.CategoryCount, error)
	FindMainImages(ctx context.Context, categoryID uint, blocked []uint, limit int) ([]model.CategoryImage, error)
}

type feedRepository struct {
	db *gorm.DB
}

func NewFeedRepository(db *gorm.DB) FeedRepository {
	return &feedRepository{db: db}
}

// FindReviewIDs 필터/정렬/커서 조건에 맞는 리뷰 ID 를 Window.Fetch 개까지 조회
func (r *feedRepository) FindReviewIDs(ctx context.Context, q ReviewIDQuery) ([]uint, error) {
	query := r.db.WithContext(ctx).Model(&model.Review{}).Scopes(visibleReviews(q.Blocked))

	if q.CategoryID != nil {
		query = query.Where("reviews.dessert_category_id = ?", *q.CategoryID)
	}
	if q.LikedByMember != nil {
		query = query.
			Joins("JOIN review_likes ON review_likes.review_id = reviews.review_id").
			Where("review_likes.member_id = ?", *q.LikedByMember)
	}

	query, err := r.applyKeyset(ctx, query, q.Sort, q.Window)
	if err != nil {
		return nil, err
	}

	ids := []uint{}
	if err := query.Limit(q.Window.Fetch).Pluck("reviews.review_id", &ids).Error; err != nil {
		logger.Error("Failed to find feed review ids", err, map[string]interface{}{
			"sort": q.Sort,
		})
		return nil, err
	}
	return ids, nil
}

// applyKeyset 정렬과 커서 조건 적용
// 최신순은 review_id < cursor, 좋아요순은 (좋아요 수, review_id) 쌍으로 커서 이후만 조회한다.
func (r *feedRepository) applyKeyset(ctx context.Context, query *gorm.DB, sort model.FeedSort, w pagination.Window) (*gorm.DB, error) {
	if sort != model.FeedSortLikes {
		if w.After != nil {
			query = query.Where("reviews.review_id < ?", *w.After)
		}
		return query.Order("reviews.created_date DESC").Order("reviews.review_id DESC"), nil
	}

	if w.After != nil {
		var likes []int
		if err := r.db.WithContext(ctx).Model(&model.Review{}).
			Where("review_id = ?", *w.After).
			Limit(1).
			Pluck("total_liked_num", &likes).Error; err != nil {
			return nil, err
		}
		if len(likes) == 0 {
			query = query.Where("reviews.review_id < ?", *w.After)
		} else {
			query = query.Where(
				"(reviews.total_liked_num < ? OR (reviews.total_liked_num = ? AND reviews.review_id < ?))",
				likes[0], likes[0], *w.After,
			)
		}
	}
	return query.Order("reviews.total_liked_num DESC").Order("reviews.review_id DESC"), nil
}

// FilterVisibleIDs ids 중 노출 가능한 리뷰만 반환
func (r *feedRepository) FilterVisibleIDs(ctx context.Context, ids []uint, blocked []uint) ([]uint, error) {
	out := []uint{}
	if len(ids) == 0 {
		return out, nil
	}
	err := r.db.WithContext(ctx).Model(&model.Review{}).
		Scopes(visibleReviews(blocked)).
		Where("reviews.review_id IN ?", ids).
		Pluck("reviews.review_id", &out).Error
	return out, err
}

const reviewRowColumns = "reviews.review_id, reviews.total_liked_num, reviews.menu_name, reviews.content, " +
	"reviews.store_name, reviews.score, reviews.created_date, reviews.dessert_category_id, " +
	"members.member_id AS member_id, members.nick_name AS member_nick_name, members.is_having_img AS member_is_having_img, " +
	"profile_imgs.middle_path AS profile_middle_path, profile_imgs.path AS profile_path, profile_imgs.extension AS profile_extension, " +
	"review_imgs.review_img_id AS review_img_id, review_imgs.is_main AS review_img_is_main, review_imgs.num AS review_img_num, " +
	"review_imgs.middle_path AS review_img_middle_path, review_imgs.path AS review_img_path, review_imgs.extension AS review_img_extension, " +
	"ingredients.ingredient_name AS ingredient_name, " +
	"CASE WHEN EXISTS (SELECT 1 FROM review_likes rl WHERE rl.review_id = reviews.review_id AND rl.member_id = ?) THEN 1 ELSE 0 END AS is_liked"

// FindReviewRows 2단계: ids 에 해당하는 리뷰의 전체 조인 행 조회
// viewerID 가 0 이면 is_liked 는 항상 0 이다.
func (r *feedRepository) FindReviewRows(ctx context.Context, ids []uint, viewerID uint) ([]model.ReviewRow, error) {
	rows := []model.ReviewRow{}
	if len(ids) == 0 {
		return rows, nil
	}

	err := r.db.WithContext(ctx).Table("reviews").
		Select(reviewRowColumns, viewerID).
		Joins("JOIN members ON members.member_id = reviews.member_id").
		Joins("LEFT JOIN profile_imgs ON profile_imgs.member_id = members.member_id AND profile_imgs.is_usable = ?", true).
		Joins("LEFT JOIN review_imgs ON review_imgs.review_id = reviews.review_id").
		Joins("LEFT JOIN review_ingredients ON review_ingredients.review_id = reviews.review_id").
		Joins("LEFT JOIN ingredients ON ingredients.ingredient_id = review_ingredients.ingredient_id").
		Where("reviews.review_id IN ?", ids).
		Order("reviews.review_id DESC").
		Order("review_imgs.num ASC").
		Order("review_ingredients.id ASC").
		Scan(&rows).Error
	if err != nil {
		logger.Error("Failed to find feed review rows", err, map[string]interface{}{
			"review_ids": ids,
		})
		return nil, err
	}
	return rows, nil
}

// CountReviewsByCategory 2차 카테고리별 노출 가능 리뷰 수 (많은 순)
func (r *feedRepository) CountReviewsByCategory(ctx context.Context, q CategoryCountQuery) ([]model.CategoryCount, error) {
	counts := []model.CategoryCount{}
	if q.Include != nil && len(q.Include) == 0 {
		return counts, nil
	}
	if q.Limit <= 0 {
		return counts, nil
	}

	query := r.db.WithContext(ctx).Table("reviews").
		Select("dessert_categories.dessert_category_id, dessert_categories.dessert_name, COUNT(reviews.review_id) AS review_count").
		Joins("JOIN dessert_categories ON dessert_categories.dessert_category_id = reviews.dessert_category_id").
		Where("dessert_categories.session_num = ?", model.CategorySessionLeaf).
		Scopes(visibleReviews(q.Blocked))

	if q.Include != nil {
		query = query.Where("dessert_categories.dessert_category_id IN ?", q.Include)
	}
	if len(q.Exclude) > 0 {
		query = query.Where("dessert_categories.dessert_category_id NOT IN ?", q.Exclude)
	}

	query = query.Group("dessert_categories.dessert_category_id, dessert_categories.dessert_name")
	if q.MinCount > 0 {
		query = query.Having("COUNT(reviews.review_id) >= ?", q.MinCount)
	}

	err := query.
		Order("review_count DESC").
		Order("dessert_categories.dessert_category_id ASC").
		Limit(q.Limit).
		Scan(&counts).Error
	return counts, err
}

// FindMainImages 카테고리의 최신 리뷰 대표 이미지
func (r *feedRepository) FindMainImages(ctx context.Context, categoryID uint, blocked []uint, limit int) ([]model.CategoryImage, error) {
	images := []model.CategoryImage{}
	err := r.db.WithContext(ctx).Table("reviews").
		Select("reviews.review_id, review_imgs.review_img_id, review_imgs.middle_path, review_imgs.path, "+
			"review_imgs.extension, review_imgs.img_name, reviews.created_date").
		Joins("JOIN review_imgs ON review_imgs.review_id = reviews.review_id AND review_imgs.is_main = ?", true).
		Scopes(visibleReviews(blocked)).
		Where("reviews.dessert_category_id = ?", categoryID).
		Order("reviews.created_date DESC").
		Order("reviews.review_id DESC").
		Limit(limit).
		Scan(&images).Error
	return images, err
}

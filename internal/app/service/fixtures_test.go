package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// testAward 테스트에서 사용하는 리뷰 작성 보상
const testAward = 5

type testRepos struct {
	member     repository.MemberRepository
	category   repository.CategoryRepository
	ingredient repository.IngredientRepository
	review     repository.ReviewRepository
	image      repository.ReviewImageRepository
	like       repository.LikeRepository
	point      repository.PointRepository
	history    repository.PointHistoryRepository
	block      repository.BlockedMemberRepository
	accusation repository.AccusationRepository
	feed       repository.FeedRepository
}

func setupTestDB(t *testing.T) (*gorm.DB, testRepos) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	return testDB, testRepos{
		member:     repository.NewMemberRepository(testDB),
		category:   repository.NewCategoryRepository(testDB),
		ingredient: repository.NewIngredientRepository(testDB),
		review:     repository.NewReviewRepository(testDB),
		image:      repository.NewReviewImageRepository(testDB),
		like:       repository.NewLikeRepository(testDB),
		point:      repository.NewPointRepository(testDB),
		history:    repository.NewPointHistoryRepository(testDB),
		block:      repository.NewBlockedMemberRepository(testDB),
		accusation: repository.NewAccusationRepository(testDB),
		feed:       repository.NewFeedRepository(testDB),
	}
}

func newLedger(r testRepos) (PointLedger, PointHistoryStore) {
	history := NewPointHistoryStore(r.history, r.member, r.review)
	return NewPointLedger(r.point, history), history
}

func createMember(t *testing.T, conn *gorm.DB, nickName string) *model.Member {
	member := &model.Member{
		SnsID:     "sns-" + nickName,
		SignInSns: "K",
		NickName:  nickName,
		Role:      model.RoleMember,
	}
	require.NoError(t, conn.Create(member).Error)
	return member
}

func createCategoryTree(t *testing.T, conn *gorm.DB, parentName string, leafNames ...string) (*model.DessertCategory, []model.DessertCategory) {
	parent := &model.DessertCategory{DessertName: parentName, SessionNum: model.CategorySessionTop}
	require.NoError(t, conn.Create(parent).Error)

	leaves := make([]model.DessertCategory, 0, len(leafNames))
	for _, name := range leafNames {
		leaf := model.DessertCategory{DessertName: name, ParentDCID: parent.DessertCategoryID, SessionNum: model.CategorySessionLeaf}
		require.NoError(t, conn.Create(&leaf).Error)
		leaves = append(leaves, leaf)
	}
	return parent, leaves
}

func createReview(t *testing.T, conn *gorm.DB, memberID uint, status model.ReviewStatus, categoryID *uint) *model.Review {
	review := &model.Review{
		MemberID:          memberID,
		DessertCategoryID: categoryID,
		MenuName:          "마카롱",
		StoreName:         "디저트가게",
		Status:            status,
	}
	require.NoError(t, conn.Create(review).Error)
	return review
}

// createSavedReviewAt 작성일을 지정한 SAVED 리뷰
func createSavedReviewAt(t *testing.T, conn *gorm.DB, memberID, categoryID uint, createdAt time.Time, likes int) *model.Review {
	review := createReview(t, conn, memberID, model.ReviewStatusSaved, &categoryID)
	require.NoError(t, conn.Model(&model.Review{}).
		Where("review_id = ?", review.ReviewID).
		Updates(map[string]interface{}{"created_date": createdAt, "total_liked_num": likes}).Error)
	review.CreatedDate = createdAt
	review.TotalLikedNum = likes
	return review
}

func hideReview(t *testing.T, conn *gorm.DB, reviewID uint) {
	require.NoError(t, conn.Model(&model.Review{}).
		Where("review_id = ?", reviewID).
		Update("is_usable", false).Error)
}

func addMainImage(t *testing.T, conn *gorm.DB, reviewID uint) *model.ReviewImg {
	img := &model.ReviewImg{
		ReviewID:   reviewID,
		IsMain:     true,
		Num:        1,
		MiddlePath: "review/20240101",
		Path:       fmt.Sprintf("img-%d", reviewID),
		Extension:  ".jpg",
	}
	require.NoError(t, conn.Create(img).Error)
	return img
}

func loadReview(t *testing.T, conn *gorm.DB, reviewID uint) model.Review {
	var review model.Review
	require.NoError(t, conn.First(&review, "review_id = ?", reviewID).Error)
	return review
}

func balanceOf(t *testing.T, conn *gorm.DB, memberID uint) (int, bool) {
	var point model.Point
	err := conn.Where("member_id = ?", memberID).First(&point).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false
	}
	require.NoError(t, err)
	return point.TotalPoint, true
}

func historyOf(t *testing.T, conn *gorm.DB, memberID uint) []model.PointHistory {
	var rows []model.PointHistory
	require.NoError(t, conn.Where("member_id = ?", memberID).Order("point_history_id ASC").Find(&rows).Error)
	return rows
}

func ingredientIDs(t *testing.T, conn *gorm.DB) []uint {
	require.NoError(t, db.SeedIngredients(conn))
	var ids []uint
	require.NoError(t, conn.Model(&model.Ingredient{}).Order("ingredient_id ASC").Pluck("ingredient_id", &ids).Error)
	return ids
}

// fakeStorage 메모리 객체 저장소
type fakeStorage struct {
	mu        sync.Mutex
	objects   map[string][]byte
	uploadErr error
	deleteErr error
	deleted   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: make(map[string][]byte)}
}

func (f *fakeStorage) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	f.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (f *fakeStorage) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, key)
	f.deleted = append(f.deleted, key)
	return nil
}

func (f *fakeStorage) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.objects)
}

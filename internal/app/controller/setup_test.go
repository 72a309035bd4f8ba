package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/internal/app/service"
	"github.com/ikkim/dessert-review-backend/internal/cache"
	"github.com/ikkim/dessert-review-backend/internal/db"
	"github.com/ikkim/dessert-review-backend/internal/middleware"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testMemberHeader = "X-Test-Member"

type fakeStorage struct {
	mu      sync.Mutex
	objects map[string][]byte
}

func (s *fakeStorage) Upload(_ context.Context, key, _ string, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return "https://cdn.test/" + key, nil
}

func (s *fakeStorage) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}

func (s *fakeStorage) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.objects)
}

type testApp struct {
	db      *gorm.DB
	router  *gin.Engine
	storage *fakeStorage
}

// asMember 헤더의 회원 ID 를 인증 정보로 넣는 테스트용 미들웨어
func asMember() gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := c.GetHeader(testMemberHeader); raw != "" {
			id, _ := strconv.ParseUint(raw, 10, 32)
			c.Set(middleware.MemberIDKey, uint(id))
			c.Set(middleware.MemberRoleKey, model.RoleAdmin)
		}
		c.Next()
	}
}

func setupControllerTest(t *testing.T) *testApp {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})

	memberRepo := repository.NewMemberRepository(testDB)
	categoryRepo := repository.NewCategoryRepository(testDB)
	reviewRepo := repository.NewReviewRepository(testDB)
	pointRepo := repository.NewPointRepository(testDB)
	historyRepo := repository.NewPointHistoryRepository(testDB)
	blockRepo := repository.NewBlockedMemberRepository(testDB)

	feedCache, err := cache.NewLocalFeedCache(16)
	require.NoError(t, err)
	storage := &fakeStorage{objects: make(map[string][]byte)}

	historyStore := service.NewPointHistoryStore(historyRepo, memberRepo, reviewRepo)
	ledger := service.NewPointLedger(pointRepo, historyStore)
	pointService := service.NewPointService(testDB, ledger, pointRepo, historyRepo, memberRepo)
	reviewService := service.NewReviewService(
		testDB, ledger, historyStore, reviewRepo,
		repository.NewReviewImageRepository(testDB), memberRepo, categoryRepo,
		repository.NewIngredientRepository(testDB), repository.NewLikeRepository(testDB),
		storage, 5,
	)
	blockService := service.NewBlockService(blockRepo, memberRepo, feedCache)
	feedService := service.NewFeedService(repository.NewFeedRepository(testDB), categoryRepo, blockService, feedCache, time.Minute)
	accusationService := service.NewAccusationService(testDB, repository.NewAccusationRepository(testDB), reviewRepo, blockRepo, feedCache)

	feedCtrl := NewFeedController(feedService)
	reviewCtrl := NewReviewController(reviewService)
	accusationCtrl := NewAccusationController(accusationService)
	blockCtrl := NewBlockController(blockService)
	memberCtrl := NewMemberController(service.NewMemberService(testDB, memberRepo, categoryRepo, pointRepo, feedCache), pointService)
	pointCtrl := NewPointController(pointService)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(asMember())

	router.GET("/reviews/category/:dessertCategoryId", feedCtrl.ListCategoryReviews)
	router.GET("/reviews/liked", feedCtrl.ListLikedReviews)
	router.GET("/reviews/:id", feedCtrl.GetReview)
	router.PUT("/reviews/:id", reviewCtrl.SubmitReview)
	router.DELETE("/reviews/:id", reviewCtrl.DeleteReview)
	router.POST("/reviews/:id/images", reviewCtrl.UploadImage)
	router.POST("/reviews/:id/like", reviewCtrl.SetLike)
	router.POST("/reviews/:id/accusations", accusationCtrl.Report)
	router.GET("/reviews/:id/accusations/me", accusationCtrl.HasReported)
	router.POST("/members/blocks", blockCtrl.Block)
	router.GET("/members/me", memberCtrl.MyPage)
	router.GET("/members/me/profile", memberCtrl.GetProfile)
	router.PATCH("/members/me/profile", memberCtrl.UpdateProfile)
	router.GET("/members/me/consents", memberCtrl.GetConsent)
	router.PATCH("/members/me/consents/alarm", memberCtrl.SetAlarmConsent)
	router.PATCH("/members/me/consents/ad", memberCtrl.SetADConsent)
	router.POST("/admin/points/:memberId/save", pointCtrl.SavePoint)
	router.POST("/admin/points/:memberId/recall", pointCtrl.RecallPoint)
	router.GET("/admin/points/:memberId/history/export", pointCtrl.ExportHistory)

	return &testApp{db: testDB, router: router, storage: storage}
}

func (a *testApp) do(t *testing.T, method, path string, memberID uint, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if memberID != 0 {
		req.Header.Set(testMemberHeader, fmt.Sprint(memberID))
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func (a *testApp) createMember(t *testing.T, nickName string) *model.Member {
	member := &model.Member{SnsID: "sns-" + nickName, SignInSns: "K", NickName: nickName, Role: model.RoleMember}
	require.NoError(t, a.db.Create(member).Error)
	return member
}

func (a *testApp) createLeafCategory(t *testing.T, name string) *model.DessertCategory {
	parent := &model.DessertCategory{DessertName: name + " 상위", SessionNum: model.CategorySessionTop}
	require.NoError(t, a.db.Create(parent).Error)
	leaf := &model.DessertCategory{DessertName: name, ParentDCID: parent.DessertCategoryID, SessionNum: model.CategorySessionLeaf}
	require.NoError(t, a.db.Create(leaf).Error)
	return leaf
}

func (a *testApp) createReview(t *testing.T, memberID uint, status model.ReviewStatus, categoryID *uint) *model.Review {
	review := &model.Review{MemberID: memberID, DessertCategoryID: categoryID, MenuName: "마카롱", Status: status}
	require.NoError(t, a.db.Create(review).Error)
	return review
}

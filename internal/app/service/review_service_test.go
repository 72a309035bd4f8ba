package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type reviewFixture struct {
	svc         ReviewService
	conn        *gorm.DB
	storage     *fakeStorage
	member      *model.Member
	leaf        model.DessertCategory
	parent      *model.DessertCategory
	ingredients []uint
}

func setupReviewServiceTest(t *testing.T) *reviewFixture {
	conn, repos := setupTestDB(t)
	ledger, history := newLedger(repos)
	storage := newFakeStorage()
	svc := NewReviewService(conn, ledger, history, repos.review, repos.image, repos.member,
		repos.category, repos.ingredient, repos.like, storage, testAward)

	parent, leaves := createCategoryTree(t, conn, "케이크", "치즈케이크")
	return &reviewFixture{
		svc:         svc,
		conn:        conn,
		storage:     storage,
		member:      createMember(t, conn, "리뷰작성자"),
		leaf:        leaves[0],
		parent:      parent,
		ingredients: ingredientIDs(t, conn),
	}
}

func (f *reviewFixture) input() SubmitReviewInput {
	return SubmitReviewInput{
		MenuName:          "바스크 치즈케이크",
		StoreName:         "동네빵집",
		Content:           "꾸덕하고 맛있어요",
		Score:             4.5,
		DessertCategoryID: f.leaf.DessertCategoryID,
		IngredientIDs:     []uint{f.ingredients[0], f.ingredients[5], f.ingredients[0]},
	}
}

func TestReviewService_SubmitAwardsOnce(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusWait, nil)

	res, err := f.svc.SubmitReview(ctx, f.member.MemberID, review.ReviewID, f.input())
	require.NoError(t, err)
	assert.Equal(t, testAward, res.AwardedPoint)

	saved := loadReview(t, f.conn, review.ReviewID)
	assert.Equal(t, model.ReviewStatusSaved, saved.Status)
	assert.Equal(t, "바스크 치즈케이크", saved.MenuName)
	require.NotNil(t, saved.DessertCategoryID)
	assert.Equal(t, f.leaf.DessertCategoryID, *saved.DessertCategoryID)

	var links []model.ReviewIngredient
	require.NoError(t, f.conn.Where("review_id = ?", review.ReviewID).Find(&links).Error)
	assert.Len(t, links, 2)

	total, _ := balanceOf(t, f.conn, f.member.MemberID)
	assert.Equal(t, testAward, total)

	// 재작성: 이력 행은 하나로 유지되고 잔액은 그대로
	in := f.input()
	in.IngredientIDs = []uint{f.ingredients[2]}
	in.Content = "다시 먹어도 맛있어요"
	res, err = f.svc.SubmitReview(ctx, f.member.MemberID, review.ReviewID, in)
	require.NoError(t, err)
	assert.Equal(t, 0, res.AwardedPoint)

	total, _ = balanceOf(t, f.conn, f.member.MemberID)
	assert.Equal(t, testAward, total)

	rows := historyOf(t, f.conn, f.member.MemberID)
	require.Len(t, rows, 1)
	assert.Equal(t, testAward, rows[0].NewPoint)
	assert.Equal(t, model.PointTypeReview, rows[0].PointType)

	require.NoError(t, f.conn.Where("review_id = ?", review.ReviewID).Find(&links).Error)
	require.Len(t, links, 1)
	assert.Equal(t, f.ingredients[2], links[0].IngredientID)
}

func TestReviewService_SubmitValidation(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusInit, nil)

	in := f.input()
	in.DessertCategoryID = f.parent.DessertCategoryID
	_, err := f.svc.SubmitReview(ctx, f.member.MemberID, review.ReviewID, in)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	in = f.input()
	in.IngredientIDs = []uint{9999}
	_, err = f.svc.SubmitReview(ctx, f.member.MemberID, review.ReviewID, in)
	assert.ErrorIs(t, err, ErrIngredientNotFound)

	other := createMember(t, f.conn, "다른회원")
	_, err = f.svc.SubmitReview(ctx, other.MemberID, review.ReviewID, f.input())
	assert.ErrorIs(t, err, ErrReviewNotOwned)

	_, err = f.svc.SubmitReview(ctx, f.member.MemberID, 9999, f.input())
	assert.ErrorIs(t, err, ErrReviewNotFound)

	_, err = f.svc.SubmitReview(ctx, 9999, review.ReviewID, f.input())
	assert.ErrorIs(t, err, ErrMemberNotFound)

	// 실패한 제출은 아무 것도 남기지 않는다
	unchanged := loadReview(t, f.conn, review.ReviewID)
	assert.Equal(t, model.ReviewStatusInit, unchanged.Status)
	_, ok := balanceOf(t, f.conn, f.member.MemberID)
	assert.False(t, ok)
	assert.Empty(t, historyOf(t, f.conn, f.member.MemberID))
}

func TestReviewService_DeleteRecallsOnce(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusInit, nil)

	_, err := f.svc.SubmitReview(ctx, f.member.MemberID, review.ReviewID, f.input())
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteReview(ctx, f.member.MemberID, review.ReviewID))

	hidden := loadReview(t, f.conn, review.ReviewID)
	assert.False(t, hidden.IsUsable)
	assert.Equal(t, model.ReviewStatusSaved, hidden.Status)

	total, _ := balanceOf(t, f.conn, f.member.MemberID)
	assert.Equal(t, 0, total)
	rows := historyOf(t, f.conn, f.member.MemberID)
	require.Len(t, rows, 1)
	assert.Equal(t, -testAward, rows[0].NewPoint)

	// 두 번 삭제해도 다시 회수하지 않는다
	require.NoError(t, f.svc.DeleteReview(ctx, f.member.MemberID, review.ReviewID))
	total, _ = balanceOf(t, f.conn, f.member.MemberID)
	assert.Equal(t, 0, total)
	assert.Len(t, historyOf(t, f.conn, f.member.MemberID), 1)
}

func TestReviewService_DeleteUnsavedHasNoLedgerEffect(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusWait, nil)

	require.NoError(t, f.svc.DeleteReview(ctx, f.member.MemberID, review.ReviewID))
	assert.False(t, loadReview(t, f.conn, review.ReviewID).IsUsable)
	assert.Empty(t, historyOf(t, f.conn, f.member.MemberID))
}

func TestReviewService_DeleteRollsBackOnInsufficientBalance(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusInit, nil)

	_, err := f.svc.SubmitReview(ctx, f.member.MemberID, review.ReviewID, f.input())
	require.NoError(t, err)
	// 적립된 포인트를 이미 사용한 상태
	require.NoError(t, f.conn.Model(&model.Point{}).
		Where("member_id = ?", f.member.MemberID).
		Update("total_point", 2).Error)

	err = f.svc.DeleteReview(ctx, f.member.MemberID, review.ReviewID)
	assert.ErrorIs(t, err, ErrInsufficientBalance)
	assert.True(t, loadReview(t, f.conn, review.ReviewID).IsUsable)
}

func TestReviewService_DeleteNotOwned(t *testing.T) {
	f := setupReviewServiceTest(t)
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusSaved, nil)
	other := createMember(t, f.conn, "남의리뷰")

	err := f.svc.DeleteReview(context.Background(), other.MemberID, review.ReviewID)
	assert.ErrorIs(t, err, ErrReviewNotOwned)
	assert.True(t, loadReview(t, f.conn, review.ReviewID).IsUsable)
}

func TestReviewService_Generable(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	createReview(t, f.conn, f.member.MemberID, model.ReviewStatusInit, nil)
	wait := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusWait, nil)
	createReview(t, f.conn, f.member.MemberID, model.ReviewStatusSaved, nil)
	hidden := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusInit, nil)
	hideReview(t, f.conn, hidden.ReviewID)

	list, err := f.svc.ListGenerableReviews(ctx, f.member.MemberID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), list.Count)
	assert.Len(t, list.Reviews, 2)

	addMainImage(t, f.conn, wait.ReviewID)
	require.NoError(t, f.conn.Create(&model.ReviewIngredient{ReviewID: wait.ReviewID, IngredientID: f.ingredients[1]}).Error)

	detail, err := f.svc.GetGenerableReview(ctx, f.member.MemberID, wait.ReviewID)
	require.NoError(t, err)
	assert.Equal(t, []uint{f.ingredients[1]}, detail.IngredientIDs)
	assert.Len(t, detail.ReviewImg, 1)

	_, err = f.svc.GetGenerableReview(ctx, f.member.MemberID, hidden.ReviewID)
	assert.ErrorIs(t, err, ErrReviewNotFound)
}

func TestReviewService_ListIngredients(t *testing.T) {
	f := setupReviewServiceTest(t)

	ingredients, err := f.svc.ListIngredients(context.Background())
	require.NoError(t, err)
	assert.Len(t, ingredients, len(f.ingredients))
	assert.Equal(t, "과일", ingredients[0].IngredientName)
}

func TestReviewService_AttachImage(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusWait, nil)

	first, err := f.svc.AttachImage(ctx, f.member.MemberID, review.ReviewID, AttachImageInput{
		Data: []byte("jpeg"), Extension: ".jpg", IsMain: true, Num: 1,
	})
	require.NoError(t, err)
	assert.True(t, first.IsMain)

	second, err := f.svc.AttachImage(ctx, f.member.MemberID, review.ReviewID, AttachImageInput{
		Data: []byte("png"), Extension: ".png", IsMain: true, Num: 2,
	})
	require.NoError(t, err)

	var mains int64
	require.NoError(t, f.conn.Model(&model.ReviewImg{}).
		Where("review_id = ? AND is_main = ?", review.ReviewID, true).
		Count(&mains).Error)
	assert.Equal(t, int64(1), mains)

	var reloaded model.ReviewImg
	require.NoError(t, f.conn.First(&reloaded, "review_img_id = ?", second.ReviewImgID).Error)
	assert.True(t, reloaded.IsMain)
	assert.Equal(t, 2, f.storage.count())

	for i := 0; i < 2; i++ {
		_, err := f.svc.AttachImage(ctx, f.member.MemberID, review.ReviewID, AttachImageInput{
			Data: []byte("jpeg"), Extension: ".jpg", Num: 3 + i,
		})
		require.NoError(t, err)
	}

	_, err = f.svc.AttachImage(ctx, f.member.MemberID, review.ReviewID, AttachImageInput{
		Data: []byte("jpeg"), Extension: ".jpg", Num: 5,
	})
	assert.ErrorIs(t, err, ErrImageCapacityExceeded)
	assert.Equal(t, model.MaxReviewImages, f.storage.count())
}

func TestReviewService_AttachImageRejects(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusWait, nil)

	_, err := f.svc.AttachImage(ctx, f.member.MemberID, review.ReviewID, AttachImageInput{Data: []byte("x"), Extension: ".exe"})
	assert.ErrorIs(t, err, ErrInvalidImage)

	_, err = f.svc.AttachImage(ctx, f.member.MemberID, review.ReviewID, AttachImageInput{Extension: ".jpg"})
	assert.ErrorIs(t, err, ErrInvalidImage)

	f.storage.uploadErr = errors.New("s3 down")
	_, err = f.svc.AttachImage(ctx, f.member.MemberID, review.ReviewID, AttachImageInput{Data: []byte("x"), Extension: ".jpg"})
	assert.ErrorIs(t, err, ErrStorageFailure)

	var count int64
	require.NoError(t, f.conn.Model(&model.ReviewImg{}).Where("review_id = ?", review.ReviewID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestReviewService_DetachImage(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusWait, nil)

	img, err := f.svc.AttachImage(ctx, f.member.MemberID, review.ReviewID, AttachImageInput{Data: []byte("x"), Extension: ".jpg"})
	require.NoError(t, err)

	require.NoError(t, f.svc.DetachImage(ctx, f.member.MemberID, review.ReviewID, img.ReviewImgID))
	assert.Equal(t, 0, f.storage.count())
	assert.Equal(t, []string{img.ObjectKey()}, f.storage.deleted)

	err = f.svc.DetachImage(ctx, f.member.MemberID, review.ReviewID, img.ReviewImgID)
	assert.ErrorIs(t, err, ErrReviewImageNotFound)
}

func TestReviewService_DetachImageKeepsRowOnStorageFailure(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusWait, nil)

	img, err := f.svc.AttachImage(ctx, f.member.MemberID, review.ReviewID, AttachImageInput{Data: []byte("x"), Extension: ".jpg"})
	require.NoError(t, err)

	f.storage.deleteErr = errors.New("s3 unavailable")
	err = f.svc.DetachImage(ctx, f.member.MemberID, review.ReviewID, img.ReviewImgID)
	assert.ErrorIs(t, err, ErrStorageFailure)

	var count int64
	require.NoError(t, f.conn.Model(&model.ReviewImg{}).Where("review_img_id = ?", img.ReviewImgID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, 1, f.storage.count())

	// 저장소가 복구되면 다시 삭제할 수 있다
	f.storage.deleteErr = nil
	require.NoError(t, f.svc.DetachImage(ctx, f.member.MemberID, review.ReviewID, img.ReviewImgID))
	require.NoError(t, f.conn.Model(&model.ReviewImg{}).Where("review_img_id = ?", img.ReviewImgID).Count(&count).Error)
	assert.Zero(t, count)
	assert.Equal(t, 0, f.storage.count())
}

func TestReviewService_SetLike(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusSaved, nil)
	fan := createMember(t, f.conn, "좋아요회원")

	require.NoError(t, f.svc.SetLike(ctx, fan.MemberID, review.ReviewID, true))
	require.NoError(t, f.svc.SetLike(ctx, fan.MemberID, review.ReviewID, true))
	assert.Equal(t, 1, loadReview(t, f.conn, review.ReviewID).TotalLikedNum)

	require.NoError(t, f.svc.SetLike(ctx, fan.MemberID, review.ReviewID, false))
	require.NoError(t, f.svc.SetLike(ctx, fan.MemberID, review.ReviewID, false))
	assert.Equal(t, 0, loadReview(t, f.conn, review.ReviewID).TotalLikedNum)

	err := f.svc.SetLike(ctx, fan.MemberID, 9999, true)
	assert.ErrorIs(t, err, ErrLikeTargetNotFound)
	err = f.svc.SetLike(ctx, 9999, review.ReviewID, true)
	assert.ErrorIs(t, err, ErrLikeTargetNotFound)

	// 없는 대상의 해제는 조용히 무시
	assert.NoError(t, f.svc.SetLike(ctx, fan.MemberID, 9999, false))
}

func TestReviewService_ConcurrentSubmitAwardsOnce(t *testing.T) {
	f := setupReviewServiceTest(t)
	ctx := context.Background()
	review := createReview(t, f.conn, f.member.MemberID, model.ReviewStatusInit, nil)

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.svc.SubmitReview(ctx, f.member.MemberID, review.ReviewID, f.input())
		}()
	}
	wg.Wait()

	total, _ := balanceOf(t, f.conn, f.member.MemberID)
	assert.Equal(t, testAward, total)
	assert.Len(t, historyOf(t, f.conn, f.member.MemberID), 1)
}

package repository

import (
	"context"
	"testing"
	"time"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFeedRepository_FindReviewIDs_DateKeyset(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewFeedRepository(testDB)
	ctx := context.Background()
	author := seedMember(t, testDB, "작성자")
	leaf := seedLeaf(t, testDB, "마카롱")

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var ids []uint
	for i := 0; i < 4; i++ {
		r := seedSavedReview(t, testDB, author.MemberID, leaf.DessertCategoryID, base.Add(time.Duration(i)*time.Hour), 0)
		ids = append(ids, r.ReviewID)
	}

	categoryID := leaf.DessertCategoryID
	w, err := pagination.ParseRequest("", 2)
	require.NoError(t, err)
	got, err := repo.FindReviewIDs(ctx, ReviewIDQuery{CategoryID: &categoryID, Sort: model.FeedSortDate, Window: w})
	require.NoError(t, err)
	assert.Equal(t, []uint{ids[3], ids[2], ids[1]}, got)

	w, err = pagination.ParseRequest("", 2)
	require.NoError(t, err)
	after := ids[2]
	w.After = &after
	got, err = repo.FindReviewIDs(ctx, ReviewIDQuery{CategoryID: &categoryID, Sort: model.FeedSortDate, Window: w})
	require.NoError(t, err)
	assert.Equal(t, []uint{ids[1], ids[0]}, got)
}

func TestFeedRepository_FindReviewIDs_LikesKeyset(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewFeedRepository(testDB)
	ctx := context.Background()
	author := seedMember(t, testDB, "작성자")
	leaf := seedLeaf(t, testDB, "케이크")
	now := time.Now()

	low := seedSavedReview(t, testDB, author.MemberID, leaf.DessertCategoryID, now, 1)
	tieA := seedSavedReview(t, testDB, author.MemberID, leaf.DessertCategoryID, now, 3)
	tieB := seedSavedReview(t, testDB, author.MemberID, leaf.DessertCategoryID, now, 3)
	top := seedSavedReview(t, testDB, author.MemberID, leaf.DessertCategoryID, now, 9)

	categoryID := leaf.DessertCategoryID
	w, err := pagination.ParseRequest("", 10)
	require.NoError(t, err)
	got, err := repo.FindReviewIDs(ctx, ReviewIDQuery{CategoryID: &categoryID, Sort: model.FeedSortLikes, Window: w})
	require.NoError(t, err)
	assert.Equal(t, []uint{top.ReviewID, tieB.ReviewID, tieA.ReviewID, low.ReviewID}, got)

	// 같은 좋아요 수 안에서 커서 이후만
	after := tieB.ReviewID
	w.After = &after
	got, err = repo.FindReviewIDs(ctx, ReviewIDQuery{CategoryID: &categoryID, Sort: model.FeedSortLikes, Window: w})
	require.NoError(t, err)
	assert.Equal(t, []uint{tieA.ReviewID, low.ReviewID}, got)
}

func TestFeedRepository_BlockedAndHiddenExcluded(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewFeedRepository(testDB)
	reviewRepo := NewReviewRepository(testDB)
	ctx := context.Background()
	author := seedMember(t, testDB, "작성자")
	blocked := seedMember(t, testDB, "차단됨")
	leaf := seedLeaf(t, testDB, "푸딩")
	now := time.Now()

	visible := seedSavedReview(t, testDB, author.MemberID, leaf.DessertCategoryID, now, 0)
	hidden := seedSavedReview(t, testDB, author.MemberID, leaf.DessertCategoryID, now, 0)
	require.NoError(t, reviewRepo.Hide(ctx, hidden.ReviewID))
	fromBlocked := seedSavedReview(t, testDB, blocked.MemberID, leaf.DessertCategoryID, now, 0)

	got, err := repo.FilterVisibleIDs(ctx, []uint{visible.ReviewID, hidden.ReviewID, fromBlocked.ReviewID}, []uint{blocked.MemberID})
	require.NoError(t, err)
	assert.Equal(t, []uint{visible.ReviewID}, got)
}

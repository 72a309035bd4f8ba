package repository

import (
	"context"
	"testing"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberRepository_FindByID(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewMemberRepository(testDB)
	member := seedMember(t, testDB, "찾기")

	tests := []struct {
		name     string
		memberID uint
		wantNil  bool
	}{
		{name: "Existing member", memberID: member.MemberID},
		{name: "Missing member", memberID: 9999, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByID(context.Background(), tt.memberID)
			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, found)
				return
			}
			require.NotNil(t, found)
			assert.Equal(t, "찾기", found.NickName)
		})
	}
}

func TestMemberRepository_ExistsByNickName(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewMemberRepository(testDB)
	seedMember(t, testDB, "마카롱러버")

	exists, err := repo.ExistsByNickName(context.Background(), "마카롱러버")
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.ExistsByNickName(context.Background(), "없는닉네임")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestMemberRepository_CountSavedReviews(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewMemberRepository(testDB)
	reviewRepo := NewReviewRepository(testDB)
	member := seedMember(t, testDB, "카운트")

	require.NoError(t, testDB.Create(&model.Review{MemberID: member.MemberID, Status: model.ReviewStatusSaved}).Error)
	require.NoError(t, testDB.Create(&model.Review{MemberID: member.MemberID, Status: model.ReviewStatusWait}).Error)
	hidden := &model.Review{MemberID: member.MemberID, Status: model.ReviewStatusSaved}
	require.NoError(t, testDB.Create(hidden).Error)
	require.NoError(t, reviewRepo.Hide(context.Background(), hidden.ReviewID))

	count, err := repo.CountSavedReviews(context.Background(), member.MemberID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestMemberRepository_FindProfileRows(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewMemberRepository(testDB)
	ctx := context.Background()

	member := seedMember(t, testDB, "프로필")
	cake := seedLeaf(t, testDB, "치즈케이크")
	tart := seedLeaf(t, testDB, "에그타르트")
	require.NoError(t, repo.ReplaceInterests(ctx, member.MemberID, []uint{tart.ParentDCID, cake.ParentDCID}))
	require.NoError(t, testDB.Create(&model.ProfileImg{MemberID: member.MemberID, MiddlePath: "profile", Path: "me", Extension: ".png"}).Error)

	rows, err := repo.FindProfileRows(ctx, member.MemberID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	require.NotNil(t, rows[0].DessertCategoryID)
	assert.Equal(t, cake.ParentDCID, *rows[0].DessertCategoryID)
	assert.Equal(t, "치즈케이크 상위", *rows[0].DessertName)
	require.NotNil(t, rows[1].ProfilePath)
	assert.Equal(t, "me", *rows[1].ProfilePath)

	plain := seedMember(t, testDB, "빈프로필")
	rows, err = repo.FindProfileRows(ctx, plain.MemberID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].DessertCategoryID)
	assert.Nil(t, rows[0].ProfileImgID)

	require.NoError(t, testDB.Delete(plain).Error)
	rows, err = repo.FindProfileRows(ctx, plain.MemberID)
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestMemberRepository_ReplaceInterests(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewMemberRepository(testDB)
	categoryRepo := NewCategoryRepository(testDB)
	ctx := context.Background()

	member := seedMember(t, testDB, "관심")
	cake := seedLeaf(t, testDB, "치즈케이크")
	tart := seedLeaf(t, testDB, "에그타르트")

	require.NoError(t, repo.ReplaceInterests(ctx, member.MemberID, []uint{cake.ParentDCID}))
	leafIDs, err := categoryRepo.FindInterestLeafIDs(ctx, member.MemberID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{cake.DessertCategoryID}, leafIDs)

	require.NoError(t, repo.ReplaceInterests(ctx, member.MemberID, []uint{tart.ParentDCID}))
	leafIDs, err = categoryRepo.FindInterestLeafIDs(ctx, member.MemberID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{tart.DessertCategoryID}, leafIDs)

	require.NoError(t, repo.ReplaceInterests(ctx, member.MemberID, nil))
	leafIDs, err = categoryRepo.FindInterestLeafIDs(ctx, member.MemberID)
	require.NoError(t, err)
	assert.Empty(t, leafIDs)
}

func TestMemberRepository_ConsentFields(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewMemberRepository(testDB)
	ctx := context.Background()
	member := seedMember(t, testDB, "동의")

	consent, err := repo.FindConsent(ctx, member.MemberID)
	require.NoError(t, err)
	require.NotNil(t, consent)
	assert.False(t, consent.IsAgreeAlarm)

	require.NoError(t, repo.UpdateFields(ctx, member.MemberID, map[string]interface{}{}))
	require.NoError(t, repo.UpdateFields(ctx, member.MemberID, map[string]interface{}{"is_agree_alarm": true}))

	consent, err = repo.FindConsent(ctx, member.MemberID)
	require.NoError(t, err)
	assert.True(t, consent.IsAgreeAlarm)
	assert.False(t, consent.IsAgreeAD)

	missing, err := repo.FindConsent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestCategoryRepository_FindByIDs(t *testing.T) {
	testDB := setupRepoTest(t)
	repo := NewCategoryRepository(testDB)
	ctx := context.Background()
	leaf := seedLeaf(t, testDB, "마들렌")

	found, err := repo.FindByIDs(ctx, []uint{leaf.DessertCategoryID, leaf.ParentDCID, 9999})
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, model.CategorySessionTop, found[0].SessionNum)
	assert.Equal(t, model.CategorySessionLeaf, found[1].SessionNum)

	found, err = repo.FindByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, found)
}

package repository

import (
	"fmt"
	"testing"
	"time"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/db"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupRepoTest(t *testing.T) *gorm.DB {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)
	t.Cleanup(func() {
		db.CleanupTestDB(testDB)
	})
	return testDB
}

func seedMember(t *testing.T, conn *gorm.DB, nickName string) *model.Member {
	member := &model.Member{SnsID: "sns-" + nickName, SignInSns: "K", NickName: nickName, Role: model.RoleMember}
	require.NoError(t, conn.Create(member).Error)
	return member
}

func seedLeaf(t *testing.T, conn *gorm.DB, name string) *model.DessertCategory {
	top := &model.DessertCategory{DessertName: name + " 상위", SessionNum: model.CategorySessionTop}
	require.NoError(t, conn.Create(top).Error)
	leaf := &model.DessertCategory{DessertName: name, ParentDCID: top.DessertCategoryID, SessionNum: model.CategorySessionLeaf}
	require.NoError(t, conn.Create(leaf).Error)
	return leaf
}

// seedSavedReview 작성일과 좋아요 수를 지정한 SAVED 리뷰
func seedSavedReview(t *testing.T, conn *gorm.DB, memberID, categoryID uint, createdAt time.Time, likes int) *model.Review {
	review := &model.Review{
		MemberID:          memberID,
		DessertCategoryID: &categoryID,
		MenuName:          fmt.Sprintf("메뉴-%d", likes),
		Status:            model.ReviewStatusSaved,
	}
	require.NoError(t, conn.Create(review).Error)
	require.NoError(t, conn.Model(&model.Review{}).
		Where("review_id = ?", review.ReviewID).
		Updates(map[string]interface{}{"created_date": createdAt, "total_liked_num": likes}).Error)
	return review
}

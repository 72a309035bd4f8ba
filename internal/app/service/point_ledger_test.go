package service

import (
	"context"
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPointAmount(t *testing.T) {
	save, err := ToSavePoint(-7)
	require.NoError(t, err)
	assert.Equal(t, 7, save.Delta())

	recall, err := ToRecallPoint(7)
	require.NoError(t, err)
	assert.Equal(t, -7, recall.Delta())

	_, err = ToSavePoint(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	_, err = ToRecallPoint(0)
	assert.ErrorIs(t, err, ErrInvalidAmount)
}

func TestPointAmount_Range(t *testing.T) {
	tests := []struct {
		name    string
		x       int
		wantErr bool
	}{
		{name: "Max amount", x: MaxPointAmount},
		{name: "Negative max amount", x: -MaxPointAmount},
		{name: "Above max", x: MaxPointAmount + 1, wantErr: true},
		{name: "Below negative max", x: -MaxPointAmount - 1, wantErr: true},
		{name: "MinInt", x: math.MinInt, wantErr: true},
		{name: "MaxInt", x: math.MaxInt, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			save, err := ToSavePoint(tt.x)
			recall, recallErr := ToRecallPoint(tt.x)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidAmount)
				assert.ErrorIs(t, recallErr, ErrInvalidAmount)
				return
			}
			require.NoError(t, err)
			require.NoError(t, recallErr)
			assert.Equal(t, MaxPointAmount, save.Delta())
			assert.Equal(t, -MaxPointAmount, recall.Delta())
		})
	}
}

func TestParsePointValue(t *testing.T) {
	v, err := ParsePointValue(" 30 ")
	require.NoError(t, err)
	assert.Equal(t, 30, v)

	tooLarge := []string{
		strconv.Itoa(MaxPointAmount + 1),
		strconv.Itoa(-MaxPointAmount - 1),
		"-9223372036854775808",
		"9223372036854775807",
	}
	for _, raw := range append([]string{"", "  ", "abc", "1.5", "null"}, tooLarge...) {
		_, err := ParsePointValue(raw)
		assert.ErrorIs(t, err, ErrInvalidAmount, raw)
	}
}

func TestPointLedger_FirstAccrualCreatesBalance(t *testing.T) {
	conn, repos := setupTestDB(t)
	ledger, _ := newLedger(repos)
	member := createMember(t, conn, "첫적립")
	ctx := context.Background()

	amount, _ := ToSavePoint(10)
	var balance int
	err := db.RunInTx(ctx, conn, func(tx *gorm.DB) error {
		var err error
		balance, err = ledger.AccrueOrRecall(ctx, tx, member.MemberID, amount, model.PointTypeAdmin, nil)
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, 10, balance)

	total, ok := balanceOf(t, conn, member.MemberID)
	require.True(t, ok)
	assert.Equal(t, 10, total)

	rows := historyOf(t, conn, member.MemberID)
	require.Len(t, rows, 1)
	assert.Equal(t, 10, rows[0].NewPoint)
	assert.Equal(t, model.PointTypeAdmin, rows[0].PointType)
	assert.Nil(t, rows[0].ReviewID)
}

func TestPointLedger_AdminEventsAppend(t *testing.T) {
	conn, repos := setupTestDB(t)
	ledger, _ := newLedger(repos)
	member := createMember(t, conn, "관리자지급")
	ctx := context.Background()

	for _, v := range []int{3, 4} {
		amount, _ := ToSavePoint(v)
		require.NoError(t, db.RunInTx(ctx, conn, func(tx *gorm.DB) error {
			_, err := ledger.AccrueOrRecall(ctx, tx, member.MemberID, amount, model.PointTypeAdmin, nil)
			return err
		}))
	}

	total, _ := balanceOf(t, conn, member.MemberID)
	assert.Equal(t, 7, total)
	assert.Len(t, historyOf(t, conn, member.MemberID), 2)
}

func TestPointLedger_InsufficientRecallLeavesStateUnchanged(t *testing.T) {
	conn, repos := setupTestDB(t)
	ledger, _ := newLedger(repos)
	member := createMember(t, conn, "잔액부족")
	ctx := context.Background()

	save, _ := ToSavePoint(3)
	require.NoError(t, db.RunInTx(ctx, conn, func(tx *gorm.DB) error {
		_, err := ledger.AccrueOrRecall(ctx, tx, member.MemberID, save, model.PointTypeAdmin, nil)
		return err
	}))

	recall, _ := ToRecallPoint(5)
	err := db.RunInTx(ctx, conn, func(tx *gorm.DB) error {
		_, err := ledger.AccrueOrRecall(ctx, tx, member.MemberID, recall, model.PointTypeAdmin, nil)
		return err
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	var insufficient *InsufficientBalanceError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, 5, insufficient.Required)
	assert.Equal(t, 3, insufficient.Available)

	total, _ := balanceOf(t, conn, member.MemberID)
	assert.Equal(t, 3, total)
	assert.Len(t, historyOf(t, conn, member.MemberID), 1)
}

func TestPointLedger_RecallWithoutBalanceRow(t *testing.T) {
	conn, repos := setupTestDB(t)
	ledger, _ := newLedger(repos)
	member := createMember(t, conn, "잔액없음")
	ctx := context.Background()

	recall, _ := ToRecallPoint(1)
	err := db.RunInTx(ctx, conn, func(tx *gorm.DB) error {
		_, err := ledger.AccrueOrRecall(ctx, tx, member.MemberID, recall, model.PointTypeAdmin, nil)
		return err
	})
	assert.ErrorIs(t, err, ErrInsufficientBalance)

	_, ok := balanceOf(t, conn, member.MemberID)
	assert.False(t, ok)
	assert.Empty(t, historyOf(t, conn, member.MemberID))
}

func TestPointLedger_ReviewEventUpserts(t *testing.T) {
	conn, repos := setupTestDB(t)
	ledger, _ := newLedger(repos)
	member := createMember(t, conn, "리뷰적립")
	review := createReview(t, conn, member.MemberID, model.ReviewStatusInit, nil)
	ctx := context.Background()

	save, _ := ToSavePoint(5)
	recall, _ := ToRecallPoint(5)
	for _, amount := range []PointAmount{save, recall} {
		require.NoError(t, db.RunInTx(ctx, conn, func(tx *gorm.DB) error {
			_, err := ledger.AccrueOrRecall(ctx, tx, member.MemberID, amount, model.PointTypeReview, &review.ReviewID)
			return err
		}))
	}

	total, _ := balanceOf(t, conn, member.MemberID)
	assert.Equal(t, 0, total)

	rows := historyOf(t, conn, member.MemberID)
	require.Len(t, rows, 1)
	assert.Equal(t, -5, rows[0].NewPoint)
	assert.Equal(t, model.PointTypeReview, rows[0].PointType)
}

func TestPointHistoryStore_UpsertRequiresReferences(t *testing.T) {
	conn, repos := setupTestDB(t)
	_, history := newLedger(repos)
	member := createMember(t, conn, "참조확인")
	ctx := context.Background()

	err := db.RunInTx(ctx, conn, func(tx *gorm.DB) error {
		return history.UpsertByReview(ctx, tx, member.MemberID, 9999, 5, model.PointTypeReview)
	})
	assert.ErrorIs(t, err, ErrReviewNotFound)

	review := createReview(t, conn, member.MemberID, model.ReviewStatusInit, nil)
	err = db.RunInTx(ctx, conn, func(tx *gorm.DB) error {
		return history.UpsertByReview(ctx, tx, 9999, review.ReviewID, 5, model.PointTypeReview)
	})
	assert.ErrorIs(t, err, ErrMemberNotFound)
	assert.Empty(t, historyOf(t, conn, member.MemberID))
}

func TestPointLedger_HistoryFailureRollsBackBalance(t *testing.T) {
	conn, repos := setupTestDB(t)
	ledger, _ := newLedger(repos)
	member := createMember(t, conn, "롤백")
	ctx := context.Background()

	missingReview := uint(4242)
	save, _ := ToSavePoint(5)
	err := db.RunInTx(ctx, conn, func(tx *gorm.DB) error {
		_, err := ledger.AccrueOrRecall(ctx, tx, member.MemberID, save, model.PointTypeReview, &missingReview)
		return err
	})
	assert.ErrorIs(t, err, ErrReviewNotFound)

	_, ok := balanceOf(t, conn, member.MemberID)
	assert.False(t, ok)
}

func TestPointLedger_AccrualBeyondBalanceLimit(t *testing.T) {
	conn, repos := setupTestDB(t)
	ledger, _ := newLedger(repos)
	member := createMember(t, conn, "한도초과")
	ctx := context.Background()
	require.NoError(t, conn.Create(&model.Point{MemberID: member.MemberID, TotalPoint: MaxPointBalance - 1}).Error)

	save, _ := ToSavePoint(2)
	err := db.RunInTx(ctx, conn, func(tx *gorm.DB) error {
		_, err := ledger.AccrueOrRecall(ctx, tx, member.MemberID, save, model.PointTypeAdmin, nil)
		return err
	})
	assert.ErrorIs(t, err, ErrBalanceOverflow)

	total, _ := balanceOf(t, conn, member.MemberID)
	assert.Equal(t, MaxPointBalance-1, total)
	assert.Empty(t, historyOf(t, conn, member.MemberID))

	exact, _ := ToSavePoint(1)
	require.NoError(t, db.RunInTx(ctx, conn, func(tx *gorm.DB) error {
		_, err := ledger.AccrueOrRecall(ctx, tx, member.MemberID, exact, model.PointTypeAdmin, nil)
		return err
	}))
	total, _ = balanceOf(t, conn, member.MemberID)
	assert.Equal(t, MaxPointBalance, total)
}

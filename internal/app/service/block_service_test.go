package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockService_BlockAndUnblock(t *testing.T) {
	conn, repos := setupTestDB(t)
	svc := NewBlockService(repos.block, repos.member, nil)
	ctx := context.Background()

	me := createMember(t, conn, "나")
	other := createMember(t, conn, "상대")

	ids, err := svc.BlockedAuthorsOf(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, svc.Block(ctx, me.MemberID, other.MemberID))
	require.NoError(t, svc.Block(ctx, me.MemberID, other.MemberID))

	ids, err = svc.BlockedAuthorsOf(ctx, &me.MemberID)
	require.NoError(t, err)
	assert.Equal(t, []uint{other.MemberID}, ids)

	rows, err := svc.ListBlocked(ctx, me.MemberID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	// 차단은 단방향
	ids, err = svc.BlockedAuthorsOf(ctx, &other.MemberID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	require.NoError(t, svc.Unblock(ctx, me.MemberID, other.MemberID))
	require.NoError(t, svc.Unblock(ctx, me.MemberID, other.MemberID))
	ids, err = svc.BlockedAuthorsOf(ctx, &me.MemberID)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestBlockService_BlockRejects(t *testing.T) {
	conn, repos := setupTestDB(t)
	svc := NewBlockService(repos.block, repos.member, nil)
	ctx := context.Background()
	me := createMember(t, conn, "나")

	assert.ErrorIs(t, svc.Block(ctx, me.MemberID, me.MemberID), ErrSelfBlock)
	assert.ErrorIs(t, svc.Block(ctx, me.MemberID, 9999), ErrMemberNotFound)
}

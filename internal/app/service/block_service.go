package service

import (
	"context"

	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/internal/cache"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
)

// BlockedMemberFilter 조회자가 차단한 작성자 목록
type BlockedMemberFilter interface {
	BlockedAuthorsOf(ctx context.Context, viewerID *uint) ([]uint, error)
}

type BlockService interface {
	BlockedMemberFilter
	Block(ctx context.Context, primaryMemberID, blockedMemberID uint) error
	Unblock(ctx context.Context, primaryMemberID, blockedMemberID uint) error
	ListBlocked(ctx context.Context, primaryMemberID uint) ([]model.BlockedMember, error)
}

type blockService struct {
	blockRepo  repository.BlockedMemberRepository
	memberRepo repository.MemberRepository
	feedCache  cache.FeedCache
}

func NewBlockService(
	blockRepo repository.BlockedMemberRepository,
	memberRepo repository.MemberRepository,
	feedCache cache.FeedCache,
) BlockService {
	return &blockService{
		blockRepo:  blockRepo,
		memberRepo: memberRepo,
		feedCache:  feedCache,
	}
}

// BlockedAuthorsOf 비회원이면 빈 목록
func (s *blockService) BlockedAuthorsOf(ctx context.Context, viewerID *uint) ([]uint, error) {
	if viewerID == nil {
		return []uint{}, nil
	}
	return s.blockRepo.FindBlockedIDs(ctx, *viewerID)
}

// Block 회원 차단 (이미 차단했으면 그대로 성공)
func (s *blockService) Block(ctx context.Context, primaryMemberID, blockedMemberID uint) error {
	if primaryMemberID == blockedMemberID {
		return ErrSelfBlock
	}

	target, err := s.memberRepo.FindByID(ctx, blockedMemberID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrMemberNotFound
	}

	if err := s.blockRepo.Create(ctx, primaryMemberID, blockedMemberID); err != nil {
		logger.Error("Failed to block member", err, map[string]interface{}{
			"primary_member_id": primaryMemberID,
			"blocked_member_id": blockedMemberID,
		})
		return err
	}

	logger.Info("Member blocked", map[string]interface{}{
		"primary_member_id": primaryMemberID,
		"blocked_member_id": blockedMemberID,
	})
	invalidateCategoryFeed(ctx, s.feedCache, primaryMemberID)
	return nil
}

func (s *blockService) Unblock(ctx context.Context, primaryMemberID, blockedMemberID uint) error {
	removed, err := s.blockRepo.Delete(ctx, primaryMemberID, blockedMemberID)
	if err != nil {
		return err
	}
	if removed > 0 {
		invalidateCategoryFeed(ctx, s.feedCache, primaryMemberID)
	}
	return nil
}

func (s *blockService) ListBlocked(ctx context.Context, primaryMemberID uint) ([]model.BlockedMember, error) {
	rows, err := s.blockRepo.ListByPrimary(ctx, primaryMemberID)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []model.BlockedMember{}
	}
	return rows, nil
}

// invalidateCategoryFeed 차단 목록이나 관심 디저트가 바뀐 회원의 추천 캐시 제거
func invalidateCategoryFeed(ctx context.Context, feedCache cache.FeedCache, memberID uint) {
	if feedCache == nil {
		return
	}
	if err := feedCache.Delete(ctx, cache.CategoryFeedKey(&memberID)); err != nil {
		logger.Warn("Failed to invalidate category feed cache", map[string]interface{}{
			"member_id": memberID,
			"error":     err.Error(),
		})
	}
}

package service

import (
	"context"
	"time"

	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
)

// ReviewImageCleanupService 숨김 리뷰 이미지 정리
type ReviewImageCleanupService interface {
	PurgeHiddenReviewImages(ctx context.Context, retention time.Duration) (int, error)
}

type reviewImageCleanupService struct {
	reviewRepo repository.ReviewRepository
	imageRepo  repository.ReviewImageRepository
	storage    ObjectStorage
	now        func() time.Time
}

func NewReviewImageCleanupService(
	reviewRepo repository.ReviewRepository,
	imageRepo repository.ReviewImageRepository,
	storage ObjectStorage,
) ReviewImageCleanupService {
	return &reviewImageCleanupService{
		reviewRepo: reviewRepo,
		imageRepo:  imageRepo,
		storage:    storage,
		now:        time.Now,
	}
}

// PurgeHiddenReviewImages retention 보다 오래 숨겨진 리뷰의 이미지 객체와 행을 지운다.
// 객체 삭제에 실패한 이미지는 행을 남겨 다음 실행에서 다시 시도한다.
func (s *reviewImageCleanupService) PurgeHiddenReviewImages(ctx context.Context, retention time.Duration) (int, error) {
	cutoff := s.now().Add(-retention)
	reviewIDs, err := s.reviewRepo.FindHiddenWithImagesBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}
	if len(reviewIDs) == 0 {
		return 0, nil
	}

	images, err := s.imageRepo.FindByReviewIDs(ctx, reviewIDs)
	if err != nil {
		return 0, err
	}

	purged := make([]uint, 0, len(images))
	for _, img := range images {
		if err := s.storage.Delete(ctx, img.ObjectKey()); err != nil {
			logger.Warn("Failed to delete hidden review image object", map[string]interface{}{
				"review_id":     img.ReviewID,
				"review_img_id": img.ReviewImgID,
				"error":         err.Error(),
			})
			continue
		}
		purged = append(purged, img.ReviewImgID)
	}

	if err := s.imageRepo.Delete(ctx, purged...); err != nil {
		return 0, err
	}

	logger.Info("Hidden review images purged", map[string]interface{}{
		"reviews": len(reviewIDs),
		"images":  len(purged),
		"cutoff":  cutoff,
	})
	return len(purged), nil
}

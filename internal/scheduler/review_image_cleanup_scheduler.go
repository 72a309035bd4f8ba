package scheduler

import (
	"context"
	"time"

	"github.com/ikkim/dessert-review-backend/internal/app/service"
	"github.com/ikkim/dessert-review-backend/internal/metrics"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"github.com/robfig/cron/v3"
)

// 한 번 실행에 허용하는 최대 시간
const cleanupTimeout = 10 * time.Minute

// ReviewImageCleanupScheduler 숨김 리뷰 이미지 정리 스케줄러
type ReviewImageCleanupScheduler struct {
	cron      *cron.Cron
	cleanup   service.ReviewImageCleanupService
	spec      string
	retention time.Duration
}

// NewReviewImageCleanupScheduler spec 은 5필드 cron 표현식 (예: "0 4 * * *" 매일 4시)
func NewReviewImageCleanupScheduler(cleanup service.ReviewImageCleanupService, spec string, retention time.Duration) *ReviewImageCleanupScheduler {
	return &ReviewImageCleanupScheduler{
		cron:      cron.New(),
		cleanup:   cleanup,
		spec:      spec,
		retention: retention,
	}
}

// Start 스케줄러 시작
func (s *ReviewImageCleanupScheduler) Start() error {
	_, err := s.cron.AddFunc(s.spec, s.RunOnce)
	if err != nil {
		logger.Error("Failed to add cron job for review image cleanup", err, map[string]interface{}{
			"spec": s.spec,
		})
		return err
	}

	s.cron.Start()
	logger.Info("Review image cleanup scheduler started", map[string]interface{}{
		"spec":      s.spec,
		"retention": s.retention.String(),
	})
	return nil
}

// RunOnce 정리 작업 1회 실행
func (s *ReviewImageCleanupScheduler) RunOnce() {
	logger.Info("Starting scheduled review image cleanup")

	ctx, cancel := context.WithTimeout(context.Background(), cleanupTimeout)
	defer cancel()

	purged, err := s.cleanup.PurgeHiddenReviewImages(ctx, s.retention)
	metrics.RecordImageCleanup(err == nil)
	if err != nil {
		logger.Error("Failed to clean up hidden review images", err)
		return
	}

	logger.Info("Review image cleanup finished", map[string]interface{}{
		"purged": purged,
	})
}

// Stop 스케줄러 중지 (실행 중인 작업은 끝날 때까지 기다린다)
func (s *ReviewImageCleanupScheduler) Stop() {
	logger.Info("Stopping review image cleanup scheduler...")
	<-s.cron.Stop().Done()
	logger.Info("Review image cleanup scheduler stopped")
}

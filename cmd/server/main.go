package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/ikkim/dessert-review-backend/config"
	"github.com/ikkim/dessert-review-backend/internal/app/controller"
	"github.com/ikkim/dessert-review-backend/internal/app/repository"
	"github.com/ikkim/dessert-review-backend/internal/app/service"
	"github.com/ikkim/dessert-review-backend/internal/cache"
	"github.com/ikkim/dessert-review-backend/internal/db"
	"github.com/ikkim/dessert-review-backend/internal/middleware"
	"github.com/ikkim/dessert-review-backend/internal/router"
	"github.com/ikkim/dessert-review-backend/internal/scheduler"
	"github.com/ikkim/dessert-review-backend/internal/storage"
	"github.com/ikkim/dessert-review-backend/pkg/logger"
	"github.com/ikkim/dessert-review-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting Dessert Review Backend Server", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}

	feedCache := newFeedCache(cfg)
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	s3Storage := storage.NewS3Storage(
		cfg.S3.Region,
		cfg.S3.Bucket,
		cfg.S3.AccessKeyID,
		cfg.S3.SecretAccessKey,
		cfg.S3.BaseURL,
	)

	conn := db.GetDB()

	// Repositories
	memberRepo := repository.NewMemberRepository(conn)
	categoryRepo := repository.NewCategoryRepository(conn)
	ingredientRepo := repository.NewIngredientRepository(conn)
	reviewRepo := repository.NewReviewRepository(conn)
	imageRepo := repository.NewReviewImageRepository(conn)
	likeRepo := repository.NewLikeRepository(conn)
	pointRepo := repository.NewPointRepository(conn)
	historyRepo := repository.NewPointHistoryRepository(conn)
	blockRepo := repository.NewBlockedMemberRepository(conn)
	accusationRepo := repository.NewAccusationRepository(conn)
	feedRepo := repository.NewFeedRepository(conn)

	// Services
	historyStore := service.NewPointHistoryStore(historyRepo, memberRepo, reviewRepo)
	ledger := service.NewPointLedger(pointRepo, historyStore)
	pointService := service.NewPointService(conn, ledger, pointRepo, historyRepo, memberRepo)
	reviewService := service.NewReviewService(
		conn,
		ledger,
		historyStore,
		reviewRepo,
		imageRepo,
		memberRepo,
		categoryRepo,
		ingredientRepo,
		likeRepo,
		s3Storage,
		cfg.Point.ReviewAward,
	)
	blockService := service.NewBlockService(blockRepo, memberRepo, feedCache)
	feedService := service.NewFeedService(feedRepo, categoryRepo, blockService, feedCache, cfg.Feed.CacheTTL)
	accusationService := service.NewAccusationService(conn, accusationRepo, reviewRepo, blockRepo, feedCache)
	memberService := service.NewMemberService(conn, memberRepo, categoryRepo, pointRepo, feedCache)
	cleanupService := service.NewReviewImageCleanupService(reviewRepo, imageRepo, s3Storage)

	// Controllers
	feedController := controller.NewFeedController(feedService)
	reviewController := controller.NewReviewController(reviewService)
	accusationController := controller.NewAccusationController(accusationService)
	blockController := controller.NewBlockController(blockService)
	memberController := controller.NewMemberController(memberService, pointService)
	pointController := controller.NewPointController(pointService)

	// Middleware
	authMiddleware := middleware.NewAuthMiddleware(cfg.JWT.Secret)
	rateLimiter, err := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	if err != nil {
		logger.Fatal("Failed to create rate limiter", err)
	}

	r := router.NewRouter(
		feedController,
		reviewController,
		accusationController,
		blockController,
		memberController,
		pointController,
		authMiddleware,
		rateLimiter,
		cfg,
	)
	engine := r.Setup()

	cleanupScheduler := scheduler.NewReviewImageCleanupScheduler(
		cleanupService,
		cfg.Scheduler.ImageCleanupSpec,
		cfg.Scheduler.ImageCleanupRetention,
	)
	if err := cleanupScheduler.Start(); err != nil {
		logger.Fatal("Failed to start image cleanup scheduler", err)
	}

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: engine,
	}

	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...", map[string]interface{}{
		"timeout": cfg.Server.ShutdownTimeout.String(),
	})

	cleanupScheduler.Stop()

	// 진행 중인 요청(트랜잭션 포함)이 끝난 뒤 DB 를 닫는다
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}

// newFeedCache Redis 사용 설정이면 Redis, 아니면(또는 연결 실패 시) 프로세스 로컬 LRU
func newFeedCache(cfg *config.Config) cache.FeedCache {
	if cfg.Redis.Enabled {
		if err := redis.Init(&cfg.Redis); err == nil {
			return cache.NewRedisFeedCache(redis.GetClient())
		}
		logger.Warn("Redis unavailable, falling back to local feed cache")
	}

	local, err := cache.NewLocalFeedCache(cfg.Feed.LocalCacheMax)
	if err != nil {
		logger.Fatal("Failed to create local feed cache", err)
	}
	return local
}

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/dessert-review-backend/config"
	"github.com/ikkim/dessert-review-backend/internal/app/controller"
	"github.com/ikkim/dessert-review-backend/internal/app/model"
	"github.com/ikkim/dessert-review-backend/internal/metrics"
	"github.com/ikkim/dessert-review-backend/internal/middleware"
)

type Router struct {
	feedController       *controller.FeedController
	reviewController     *controller.ReviewController
	accusationController *controller.AccusationController
	blockController      *controller.BlockController
	memberController     *controller.MemberController
	pointController      *controller.PointController
	authMiddleware       *middleware.AuthMiddleware
	rateLimiter          *middleware.RateLimiter
	config               *config.Config
}

func NewRouter(
	feedController *controller.FeedController,
	reviewController *controller.ReviewController,
	accusationController *controller.AccusationController,
	blockController *controller.BlockController,
	memberController *controller.MemberController,
	pointController *controller.PointController,
	authMiddleware *middleware.AuthMiddleware,
	rateLimiter *middleware.RateLimiter,
	cfg *config.Config,
) *Router {
	return &Router{
		feedController:       feedController,
		reviewController:     reviewController,
		accusationController: accusationController,
		blockController:      blockController,
		memberController:     memberController,
		pointController:      pointController,
		authMiddleware:       authMiddleware,
		rateLimiter:          rateLimiter,
		config:               cfg,
	}
}

func (r *Router) Setup() *gin.Engine {
	gin.SetMode(r.config.Server.GinMode)

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(middleware.LoggingMiddleware())
	router.Use(metrics.Middleware())
	router.Use(corsMiddleware(r.config.CORS.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"message": "Dessert Review API is running",
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.Handler()))

	auth := r.authMiddleware.Authenticate()
	optionalAuth := r.authMiddleware.OptionalAuthenticate()
	limit := r.rateLimiter.Handler()

	v1 := router.Group("/api/v1")
	{
		v1.GET("/feed/categories", optionalAuth, r.feedController.RecommendCategories)
		v1.GET("/ingredients", r.reviewController.ListIngredients)
		v1.GET("/accusations/reasons", r.accusationController.ReasonList)

		reviews := v1.Group("/reviews")
		{
			reviews.GET("/category/:dessertCategoryId", optionalAuth, r.feedController.ListCategoryReviews)
			reviews.GET("/liked", auth, r.feedController.ListLikedReviews)
			reviews.GET("/generable", auth, r.reviewController.ListGenerableReviews)
			reviews.GET("/generable/:id", auth, r.reviewController.GetGenerableReview)
			reviews.GET("/:id", optionalAuth, r.feedController.GetReview)
			reviews.PUT("/:id", auth, r.reviewController.SubmitReview)
			reviews.DELETE("/:id", auth, r.reviewController.DeleteReview)
			reviews.POST("/:id/images", auth, r.reviewController.UploadImage)
			reviews.DELETE("/:id/images/:imageId", auth, r.reviewController.DeleteImage)
			reviews.POST("/:id/like", auth, limit, r.reviewController.SetLike)
			reviews.POST("/:id/accusations", auth, limit, r.accusationController.Report)
			reviews.GET("/:id/accusations/me", auth, r.accusationController.HasReported)
		}

		members := v1.Group("/members")
		{
			members.GET("/nickname/check", r.memberController.CheckNickName)

			me := members.Group("/me")
			me.Use(auth)
			{
				me.GET("", r.memberController.MyPage)
				me.GET("/points", r.memberController.PointSummary)
				me.GET("/points/history", r.memberController.PointHistory)
				me.GET("/profile", r.memberController.GetProfile)
				me.PATCH("/profile", r.memberController.UpdateProfile)
				me.GET("/consents", r.memberController.GetConsent)
				me.PATCH("/consents/alarm", r.memberController.SetAlarmConsent)
				me.PATCH("/consents/ad", r.memberController.SetADConsent)
			}

			blocks := members.Group("/blocks")
			blocks.Use(auth)
			{
				blocks.POST("", r.blockController.Block)
				blocks.GET("", r.blockController.ListBlocked)
				blocks.DELETE("/:blockedId", r.blockController.Unblock)
			}
		}

		admin := v1.Group("/admin")
		admin.Use(auth, r.authMiddleware.RequireRole(model.RoleAdmin))
		{
			admin.POST("/points/:memberId/save", r.pointController.SavePoint)
			admin.POST("/points/:memberId/recall", r.pointController.RecallPoint)
			admin.GET("/points/:memberId/history", r.pointController.ListHistory)
			admin.GET("/points/:memberId/history/export", r.pointController.ExportHistory)
		}
	}

	return router
}

func corsMiddleware(allowedOrigins []string) gin.HandlerFunc {
	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")

		allowed := false
		for _, allowedOrigin := range allowedOrigins {
			if origin == allowedOrigin || allowedOrigin == "*" {
				allowed = true
				break
			}
		}

		if allowed {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

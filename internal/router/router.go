// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/projektfabrik/pf-backend/internal/cache"
	"github.com/projektfabrik/pf-backend/internal/config"
	"github.com/projektfabrik/pf-backend/internal/events"
	"github.com/projektfabrik/pf-backend/internal/handlers"
	"github.com/projektfabrik/pf-backend/internal/middleware"
	"github.com/projektfabrik/pf-backend/internal/scheduler"
	"github.com/projektfabrik/pf-backend/internal/services"
	"github.com/projektfabrik/pf-backend/internal/utils"
)

func Initialize(db *gorm.DB, mongoDB *mongo.Database, appCache *cache.Cache, cfg *config.Config) (*gin.Engine, *scheduler.Sweeper, *events.Dispatcher) {
	// Initialize services
	notificationService := services.NewNotificationService(cfg)
	discordService := services.NewDiscordService(cfg.Discord)
	reviewService := services.NewAIReviewService(cfg.Review)

	notifier := services.NewNotifier(notificationService, discordService)
	dispatcher := events.NewDispatcher(notifier)

	projectService := services.NewProjectService(db, appCache, dispatcher)
	restorationService := services.NewRestorationService(db, appCache, dispatcher, reviewService)
	contactService := services.NewContactService(db, dispatcher)
	statusCheckService := services.NewStatusCheckService(mongoDB)

	sweeper := scheduler.NewSweeper(projectService, cfg.Sweep)

	// Initialize handlers
	projectHandler := handlers.NewProjectHandler(projectService)
	restorationHandler := handlers.NewRestorationHandler(restorationService)
	contactHandler := handlers.NewContactHandler(contactService)
	statusCheckHandler := handlers.NewStatusCheckHandler(statusCheckService)
	adminHandler := handlers.NewAdminHandler(sweeper)

	// Set JWT secret
	utils.SetJWTSecret(cfg.JWT.SecretKey)

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.GeneralRateLimit())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"version": "1.0.0",
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		// Contact form
		v1.POST("/contact", middleware.SubmitRateLimit(), contactHandler.SubmitContactMessage)

		// Project requests
		projects := v1.Group("/project-requests")
		{
			projects.POST("", middleware.SubmitRateLimit(), projectHandler.CreateProjectRequest)

			// Requester actions; the auth provider token identifies the owner
			authed := projects.Group("")
			authed.Use(middleware.AuthRequired())
			{
				authed.GET("/:id", projectHandler.GetProjectRequest)
				authed.POST("/:id/remove", projectHandler.RemoveProject)
				authed.POST("/:id/request-restoration", restorationHandler.RequestRestoration)
				authed.POST("/:id/extend", projectHandler.ExtendProject)
			}

			// Admin actions
			admin := projects.Group("")
			admin.Use(middleware.AuthRequired(), middleware.AdminRequired())
			{
				admin.GET("", projectHandler.GetProjectRequests)
				admin.PATCH("/:id", projectHandler.UpdateProjectStatus)
				admin.POST("/:id/block", projectHandler.BlockProject)
				admin.POST("/:id/unblock", projectHandler.UnblockProject)
				admin.POST("/:id/approve-restoration", restorationHandler.ApproveRestoration)
				admin.POST("/:id/reject-restoration", restorationHandler.RejectRestoration)
			}
		}

		// Public listing
		v1.GET("/projects/approved", projectHandler.GetApprovedProjects)

		// Restoration reviews
		v1.GET("/restoration-reviews/:id", middleware.OptionalAuth(), restorationHandler.GetRestorationReview)

		// Diagnostic status checks
		v1.POST("/status", statusCheckHandler.RecordStatusCheck)
		v1.GET("/status", statusCheckHandler.ListStatusChecks)

		// Admin maintenance
		adminGroup := v1.Group("/admin")
		adminGroup.Use(middleware.AuthRequired(), middleware.AdminRequired())
		{
			adminGroup.POST("/sweep/pending", adminHandler.SweepPending)
			adminGroup.POST("/sweep/expirations", adminHandler.SweepExpirations)
		}
	}

	return r, sweeper, dispatcher
}

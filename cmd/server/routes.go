package main

import (
	"github.com/gin-gonic/gin"

	"github.com/trackflow/trackflow/backend/internal/handlers"
	"github.com/trackflow/trackflow/backend/internal/middleware"
	"github.com/trackflow/trackflow/backend/internal/services"
	"github.com/trackflow/trackflow/backend/pkg/logger"
)

// registerRoutes sets up all HTTP routes on the given Gin engine.
func registerRoutes(r *gin.Engine, svc *appServices) {
	// Middleware
	r.Use(logger.GinLogger(), logger.GinRecovery())
	r.RedirectTrailingSlash = false
	r.RedirectFixedPath = false
	r.Use(middleware.CORS())

	// Throttle for mutating routes
	writeLimiter := middleware.NewWriteThrottle(svc.cfg.Server.WriteRPS, svc.cfg.Server.WriteBurst)

	// Services
	issueService := services.NewIssueService(svc.store.Issues)
	commentService := services.NewCommentService(svc.store.Comments, svc.store.Issues)
	dashboardService := services.NewDashboardService(svc.store.Issues, nil)
	userService := services.NewUserService(svc.store.Users)
	projectService := services.NewProjectService(svc.store.Projects)

	// Handlers
	issueHandler := handlers.NewIssueHandler(issueService)
	commentHandler := handlers.NewCommentHandler(commentService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	userHandler := handlers.NewUserHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService)
	eventsHandler := handlers.NewEventsHandler(services.GetEventHub())
	healthHandler := handlers.NewHealthHandler(svc.cfg.Store.Driver)

	// Health check
	r.GET("/health", healthHandler.CheckHealth)

	// API routes
	api := r.Group("/api")
	{
		api.GET("/health", healthHandler.CheckHealth)

		// SSE events
		api.GET("/events", eventsHandler.Stream)

		// Dashboard
		api.GET("/dashboard/stats", dashboardHandler.GetStats)

		// Issues
		api.GET("/issues", issueHandler.List)
		api.GET("/issues/search", issueHandler.Search)
		api.GET("/issues/counts", issueHandler.Counts)
		api.GET("/issues/:id", issueHandler.GetByID)
		api.GET("/issues/:id/comments", commentHandler.ListByIssue)

		// Users and projects (read only)
		api.GET("/users", userHandler.List)
		api.GET("/users/:id", userHandler.GetByID)
		api.GET("/projects", projectHandler.List)
		api.GET("/projects/:id", projectHandler.GetByID)

		// Mutating routes (rate limited)
		write := api.Group("", writeLimiter.Middleware())
		{
			write.POST("/issues", issueHandler.Create)
			write.PUT("/issues/:id", issueHandler.Update)
			write.PATCH("/issues/:id/status", issueHandler.UpdateStatus)
			write.DELETE("/issues/:id", issueHandler.Delete)

			write.POST("/comments", commentHandler.Create)
			write.PUT("/comments/:id", commentHandler.Update)
			write.DELETE("/comments/:id", commentHandler.Delete)
		}

		// Activity log (database mode only)
		if svc.logService != nil {
			activityHandler := handlers.NewActivityLogHandler(svc.logService)
			api.GET("/activity", activityHandler.List)
		}
	}
}

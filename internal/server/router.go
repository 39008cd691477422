package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yungbote/canonkeeper-backend/internal/handlers"
	"github.com/yungbote/canonkeeper-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler         *handlers.AuthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	UserHandler         *handlers.UserHandler
	UniverseHandler     *handlers.UniverseHandler
	ContentHandler      *handlers.ContentHandler
	RelationshipHandler *handlers.RelationshipHandler
	ProgressHandler     *handlers.ProgressHandler
	FavoriteHandler     *handlers.FavoriteHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// Public
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// Protected
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())

	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)

	api := protected.Group("/api")

	// User
	api.GET("/user", cfg.UserHandler.GetMe)
	api.DELETE("/user", cfg.UserHandler.DeleteMe)

	// Universes
	api.POST("/universes", cfg.UniverseHandler.Create)
	api.GET("/universes", cfg.UniverseHandler.List)
	api.GET("/universes/:id", cfg.UniverseHandler.Get)
	api.PATCH("/universes/:id", cfg.UniverseHandler.Update)
	api.DELETE("/universes/:id", cfg.UniverseHandler.Delete)
	api.GET("/universes/:id/content", cfg.ContentHandler.ListForUniverse)
	api.GET("/universes/:id/relationships", cfg.RelationshipHandler.ListForUniverse)
	api.GET("/universes/:id/hierarchy", cfg.RelationshipHandler.UniverseHierarchy)
	api.GET("/universes/:id/progress", cfg.ProgressHandler.GetUniverseProgress)
	api.GET("/universes/:id/favorites", cfg.FavoriteHandler.ListForUniverse)

	// Content
	api.POST("/content", cfg.ContentHandler.Create)
	api.GET("/content/:id", cfg.ContentHandler.Get)
	api.PATCH("/content/:id", cfg.ContentHandler.Update)
	api.DELETE("/content/:id", cfg.ContentHandler.Delete)
	api.GET("/content/:id/path", cfg.RelationshipHandler.ContentPath)
	api.GET("/content/:id/progress", cfg.ProgressHandler.GetContentProgress)
	api.PUT("/content/:id/progress", cfg.ProgressHandler.SetContentProgress)
	api.POST("/content/:id/favorite", cfg.FavoriteHandler.Toggle)

	// Relationships
	api.POST("/relationships", cfg.RelationshipHandler.Create)
	api.DELETE("/relationships", cfg.RelationshipHandler.Delete)
	api.POST("/relationships/check-cycle", cfg.RelationshipHandler.CheckCycle)

	// Progress
	api.POST("/progress/bulk", cfg.ProgressHandler.BulkUpdate)
	api.GET("/progress/summary", cfg.ProgressHandler.Summary)

	// Favorites
	api.GET("/favorites", cfg.FavoriteHandler.List)

	return router
}

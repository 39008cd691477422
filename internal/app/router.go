package app

import (
	"github.com/gin-gonic/gin"

	"github.com/yungbote/canonkeeper-backend/internal/server"
)

func wireRouter(handlers Handlers, middleware Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:         handlers.Auth,
		AuthMiddleware:      middleware.Auth,
		UserHandler:         handlers.User,
		UniverseHandler:     handlers.Universe,
		ContentHandler:      handlers.Content,
		RelationshipHandler: handlers.Relationship,
		ProgressHandler:     handlers.Progress,
		FavoriteHandler:     handlers.Favorite,
	})
}

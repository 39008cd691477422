package app

import (
	"github.com/yungbote/canonkeeper-backend/internal/handlers"
	"github.com/yungbote/canonkeeper-backend/internal/logger"
)

type Handlers struct {
	Auth         *handlers.AuthHandler
	User         *handlers.UserHandler
	Universe     *handlers.UniverseHandler
	Content      *handlers.ContentHandler
	Relationship *handlers.RelationshipHandler
	Progress     *handlers.ProgressHandler
	Favorite     *handlers.FavoriteHandler
}

func wireHandlers(log *logger.Logger, services Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:         handlers.NewAuthHandler(services.Auth),
		User:         handlers.NewUserHandler(services.User),
		Universe:     handlers.NewUniverseHandler(services.Universe),
		Content:      handlers.NewContentHandler(services.Content),
		Relationship: handlers.NewRelationshipHandler(services.Relationship),
		Progress:     handlers.NewProgressHandler(services.Progress, services.Relationship, services.Content),
		Favorite:     handlers.NewFavoriteHandler(services.Favorite),
	}
}

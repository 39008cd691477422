package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
	"github.com/yungbote/canonkeeper-backend/internal/services"
)

type Services struct {
	Auth         services.AuthService
	User         services.UserService
	Universe     services.UniverseService
	Content      services.ContentService
	Relationship services.RelationshipService
	Progress     services.ProgressService
	Favorite     services.FavoriteService
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, r Repos) Services {
	log.Info("Wiring services...")
	return Services{
		Auth:         services.NewAuthService(db, log, r.User, r.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:         services.NewUserService(db, log, r.User, r.UserToken, r.Universe, r.Content, r.ContentRelationship, r.UserProgress, r.Favorite),
		Universe:     services.NewUniverseService(db, log, r.Universe, r.Content, r.ContentRelationship, r.UserProgress, r.Favorite),
		Content:      services.NewContentService(db, log, r.Universe, r.Content, r.ContentRelationship, r.UserProgress, r.Favorite),
		Relationship: services.NewRelationshipService(db, log, r.ContentRelationship, r.Content),
		Progress:     services.NewProgressService(db, log, r.UserProgress, r.Content),
		Favorite:     services.NewFavoriteService(db, log, r.Favorite, r.Content),
	}
}

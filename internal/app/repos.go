package app

import (
	"gorm.io/gorm"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
	"github.com/yungbote/canonkeeper-backend/internal/repos"
)

type Repos struct {
	User                repos.UserRepo
	UserToken           repos.UserTokenRepo
	Universe            repos.UniverseRepo
	Content             repos.ContentRepo
	ContentRelationship repos.ContentRelationshipRepo
	UserProgress        repos.UserProgressRepo
	Favorite            repos.FavoriteRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:                repos.NewUserRepo(db, log),
		UserToken:           repos.NewUserTokenRepo(db, log),
		Universe:            repos.NewUniverseRepo(db, log),
		Content:             repos.NewContentRepo(db, log),
		ContentRelationship: repos.NewContentRelationshipRepo(db, log),
		UserProgress:        repos.NewUserProgressRepo(db, log),
		Favorite:            repos.NewFavoriteRepo(db, log),
	}
}

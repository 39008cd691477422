package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
	"github.com/yungbote/canonkeeper-backend/internal/repos"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

type FavoriteService interface {
	// ToggleFavorite flips the favorite state and reports the new state.
	ToggleFavorite(ctx context.Context, userID, contentID uuid.UUID) (bool, error)
	GetUserFavorites(ctx context.Context, userID uuid.UUID) ([]*types.Favorite, error)
	GetUniverseFavorites(ctx context.Context, userID, universeID uuid.UUID) ([]*types.Favorite, error)
}

type favoriteService struct {
	db           *gorm.DB
	log          *logger.Logger
	favoriteRepo repos.FavoriteRepo
	contentRepo  repos.ContentRepo
}

func NewFavoriteService(
	db *gorm.DB,
	baseLog *logger.Logger,
	favoriteRepo repos.FavoriteRepo,
	contentRepo repos.ContentRepo,
) FavoriteService {
	serviceLog := baseLog.With("service", "FavoriteService")
	return &favoriteService{
		db:           db,
		log:          serviceLog,
		favoriteRepo: favoriteRepo,
		contentRepo:  contentRepo,
	}
}

func (fs *favoriteService) ToggleFavorite(ctx context.Context, userID, contentID uuid.UUID) (bool, error) {
	existing, err := fs.favoriteRepo.GetByUserAndContentIDs(ctx, nil, userID, []uuid.UUID{contentID})
	if err != nil {
		fs.log.Error("ToggleFavorite lookup failed", "error", err, "content_id", contentID)
		return false, fmt.Errorf("check favorite: %w", err)
	}
	if len(existing) > 0 {
		if err := fs.favoriteRepo.FullDeleteByUserAndContentIDs(ctx, nil, userID, []uuid.UUID{contentID}); err != nil {
			return false, fmt.Errorf("remove favorite: %w", err)
		}
		return false, nil
	}

	contents, err := fs.contentRepo.GetByIDs(ctx, nil, []uuid.UUID{contentID})
	if err != nil {
		return false, fmt.Errorf("load content for favorite: %w", err)
	}
	if len(contents) == 0 {
		return false, fmt.Errorf("content not found")
	}

	now := time.Now()
	favorite := &types.Favorite{
		ID:         uuid.New(),
		UserID:     userID,
		ContentID:  contentID,
		UniverseID: contents[0].UniverseID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := fs.favoriteRepo.Create(ctx, nil, []*types.Favorite{favorite}); err != nil {
		fs.log.Error("ToggleFavorite create failed", "error", err, "content_id", contentID)
		return false, fmt.Errorf("create favorite: %w", err)
	}
	return true, nil
}

func (fs *favoriteService) GetUserFavorites(ctx context.Context, userID uuid.UUID) ([]*types.Favorite, error) {
	favorites, err := fs.favoriteRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		fs.log.Error("GetUserFavorites failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("get user favorites: %w", err)
	}
	return favorites, nil
}

func (fs *favoriteService) GetUniverseFavorites(ctx context.Context, userID, universeID uuid.UUID) ([]*types.Favorite, error) {
	favorites, err := fs.favoriteRepo.GetByUserAndUniverseID(ctx, nil, userID, universeID)
	if err != nil {
		fs.log.Error("GetUniverseFavorites failed", "error", err, "universe_id", universeID)
		return nil, fmt.Errorf("get universe favorites: %w", err)
	}
	return favorites, nil
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
	"github.com/yungbote/canonkeeper-backend/internal/normalization"
	"github.com/yungbote/canonkeeper-backend/internal/repos"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

type UniverseService interface {
	CreateUniverse(ctx context.Context, userID uuid.UUID, name, description string) (*types.Universe, error)
	GetUserUniverses(ctx context.Context, userID uuid.UUID) ([]*types.Universe, error)
	GetUniverse(ctx context.Context, userID, universeID uuid.UUID) (*types.Universe, error)
	UpdateUniverse(ctx context.Context, userID, universeID uuid.UUID, updates map[string]interface{}) (*types.Universe, error)
	DeleteUniverse(ctx context.Context, userID, universeID uuid.UUID) error
}

type universeService struct {
	db               *gorm.DB
	log              *logger.Logger
	universeRepo     repos.UniverseRepo
	contentRepo      repos.ContentRepo
	relationshipRepo repos.ContentRelationshipRepo
	progressRepo     repos.UserProgressRepo
	favoriteRepo     repos.FavoriteRepo
}

func NewUniverseService(
	db *gorm.DB,
	baseLog *logger.Logger,
	universeRepo repos.UniverseRepo,
	contentRepo repos.ContentRepo,
	relationshipRepo repos.ContentRelationshipRepo,
	progressRepo repos.UserProgressRepo,
	favoriteRepo repos.FavoriteRepo,
) UniverseService {
	serviceLog := baseLog.With("service", "UniverseService")
	return &universeService{
		db:               db,
		log:              serviceLog,
		universeRepo:     universeRepo,
		contentRepo:      contentRepo,
		relationshipRepo: relationshipRepo,
		progressRepo:     progressRepo,
		favoriteRepo:     favoriteRepo,
	}
}

func (us *universeService) CreateUniverse(ctx context.Context, userID uuid.UUID, name, description string) (*types.Universe, error) {
	name = normalization.TrimInputString(name)
	if name == "" {
		return nil, fmt.Errorf("a universe name is required")
	}

	now := time.Now()
	universe := &types.Universe{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        name,
		Description: normalization.TrimInputString(description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if _, err := us.universeRepo.Create(ctx, nil, []*types.Universe{universe}); err != nil {
		us.log.Error("CreateUniverse failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("create universe: %w", err)
	}
	return universe, nil
}

func (us *universeService) GetUserUniverses(ctx context.Context, userID uuid.UUID) ([]*types.Universe, error) {
	universes, err := us.universeRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		us.log.Error("GetUserUniverses failed", "error", err, "user_id", userID)
		return nil, fmt.Errorf("get user universes: %w", err)
	}
	return universes, nil
}

func (us *universeService) GetUniverse(ctx context.Context, userID, universeID uuid.UUID) (*types.Universe, error) {
	universes, err := us.universeRepo.GetByIDs(ctx, nil, []uuid.UUID{universeID})
	if err != nil {
		us.log.Error("GetUniverse failed", "error", err, "universe_id", universeID)
		return nil, fmt.Errorf("get universe: %w", err)
	}
	if len(universes) == 0 || universes[0].UserID != userID {
		return nil, fmt.Errorf("universe not found")
	}
	return universes[0], nil
}

func (us *universeService) UpdateUniverse(ctx context.Context, userID, universeID uuid.UUID, updates map[string]interface{}) (*types.Universe, error) {
	if _, err := us.GetUniverse(ctx, userID, universeID); err != nil {
		return nil, err
	}
	if err := us.universeRepo.Update(ctx, nil, universeID, updates); err != nil {
		us.log.Error("UpdateUniverse failed", "error", err, "universe_id", universeID)
		return nil, fmt.Errorf("update universe: %w", err)
	}
	return us.GetUniverse(ctx, userID, universeID)
}

// DeleteUniverse removes the universe and everything scoped to it in one
// transaction: progress, favorites and relationships first, then content,
// then the universe row.
func (us *universeService) DeleteUniverse(ctx context.Context, userID, universeID uuid.UUID) error {
	if _, err := us.GetUniverse(ctx, userID, universeID); err != nil {
		return err
	}
	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		ids := []uuid.UUID{universeID}
		if err := us.progressRepo.FullDeleteByUniverseIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete universe progress: %w", err)
		}
		if err := us.favoriteRepo.FullDeleteByUniverseIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete universe favorites: %w", err)
		}
		if err := us.relationshipRepo.FullDeleteByUniverseIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete universe relationships: %w", err)
		}
		if err := us.contentRepo.FullDeleteByUniverseIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete universe content: %w", err)
		}
		if err := us.universeRepo.FullDeleteByIDs(ctx, tx, ids); err != nil {
			return fmt.Errorf("delete universe: %w", err)
		}
		return nil
	})
}

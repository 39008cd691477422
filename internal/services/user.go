package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
	"github.com/yungbote/canonkeeper-backend/internal/repos"
	"github.com/yungbote/canonkeeper-backend/internal/requestdata"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

type UserService interface {
	GetMe(ctx context.Context) (*types.User, error)
	DeleteMe(ctx context.Context) error
}

type userService struct {
	db               *gorm.DB
	log              *logger.Logger
	userRepo         repos.UserRepo
	userTokenRepo    repos.UserTokenRepo
	universeRepo     repos.UniverseRepo
	contentRepo      repos.ContentRepo
	relationshipRepo repos.ContentRelationshipRepo
	progressRepo     repos.UserProgressRepo
	favoriteRepo     repos.FavoriteRepo
}

func NewUserService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	universeRepo repos.UniverseRepo,
	contentRepo repos.ContentRepo,
	relationshipRepo repos.ContentRelationshipRepo,
	progressRepo repos.UserProgressRepo,
	favoriteRepo repos.FavoriteRepo,
) UserService {
	serviceLog := baseLog.With("service", "UserService")
	return &userService{
		db:               db,
		log:              serviceLog,
		userRepo:         userRepo,
		userTokenRepo:    userTokenRepo,
		universeRepo:     universeRepo,
		contentRepo:      contentRepo,
		relationshipRepo: relationshipRepo,
		progressRepo:     progressRepo,
		favoriteRepo:     favoriteRepo,
	}
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return nil, fmt.Errorf("request data not set in context")
	}
	users, err := us.userRepo.GetByIDs(ctx, nil, []uuid.UUID{rd.UserID})
	if err != nil {
		us.log.Error("GetMe failed", "error", err, "user_id", rd.UserID)
		return nil, fmt.Errorf("get user: %w", err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("user not found")
	}
	return users[0], nil
}

// DeleteMe removes the authenticated user's account in one transaction:
// everything scoped to their universes, then any progress and tokens keyed
// directly on the user, then the user row.
func (us *userService) DeleteMe(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return fmt.Errorf("request data not set in context")
	}
	userID := rd.UserID

	universes, err := us.universeRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		us.log.Error("DeleteMe failed loading universes", "error", err, "user_id", userID)
		return fmt.Errorf("load user universes: %w", err)
	}
	universeIDs := make([]uuid.UUID, 0, len(universes))
	for _, u := range universes {
		universeIDs = append(universeIDs, u.ID)
	}

	return us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := us.progressRepo.FullDeleteByUniverseIDs(ctx, tx, universeIDs); err != nil {
			return fmt.Errorf("delete universe progress: %w", err)
		}
		if err := us.favoriteRepo.FullDeleteByUniverseIDs(ctx, tx, universeIDs); err != nil {
			return fmt.Errorf("delete universe favorites: %w", err)
		}
		if err := us.relationshipRepo.FullDeleteByUniverseIDs(ctx, tx, universeIDs); err != nil {
			return fmt.Errorf("delete universe relationships: %w", err)
		}
		if err := us.contentRepo.FullDeleteByUniverseIDs(ctx, tx, universeIDs); err != nil {
			return fmt.Errorf("delete universe content: %w", err)
		}
		if err := us.universeRepo.FullDeleteByIDs(ctx, tx, universeIDs); err != nil {
			return fmt.Errorf("delete universes: %w", err)
		}
		if err := us.progressRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{userID}); err != nil {
			return fmt.Errorf("delete user progress: %w", err)
		}
		if err := us.userTokenRepo.FullDeleteByUserIDs(ctx, tx, []uuid.UUID{userID}); err != nil {
			return fmt.Errorf("delete user tokens: %w", err)
		}
		if err := us.userRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{userID}); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

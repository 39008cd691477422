package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

type FavoriteRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.Favorite) ([]*types.Favorite, error)
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Favorite, error)
	GetByUserAndContentIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, contentIDs []uuid.UUID) ([]*types.Favorite, error)
	GetByUserAndUniverseID(ctx context.Context, tx *gorm.DB, userID, universeID uuid.UUID) ([]*types.Favorite, error)
	FullDeleteByUserAndContentIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, contentIDs []uuid.UUID) error
	FullDeleteByContentIDs(ctx context.Context, tx *gorm.DB, contentIDs []uuid.UUID) error
	FullDeleteByUniverseIDs(ctx context.Context, tx *gorm.DB, universeIDs []uuid.UUID) error
}

type favoriteRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavoriteRepo(db *gorm.DB, baseLog *logger.Logger) FavoriteRepo {
	repoLog := baseLog.With("repo", "FavoriteRepo")
	return &favoriteRepo{db: db, log: repoLog}
}

func (r *favoriteRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.Favorite) ([]*types.Favorite, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.Favorite{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *favoriteRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Favorite, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Favorite
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *favoriteRepo) GetByUserAndContentIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, contentIDs []uuid.UUID) ([]*types.Favorite, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Favorite
	if userID == uuid.Nil || len(contentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND content_id IN ?", userID, contentIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *favoriteRepo) GetByUserAndUniverseID(ctx context.Context, tx *gorm.DB, userID, universeID uuid.UUID) ([]*types.Favorite, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Favorite
	if userID == uuid.Nil || universeID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND universe_id = ?", userID, universeID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *favoriteRepo) FullDeleteByUserAndContentIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, contentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if userID == uuid.Nil || len(contentIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND content_id IN ?", userID, contentIDs).
		Delete(&types.Favorite{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *favoriteRepo) FullDeleteByContentIDs(ctx context.Context, tx *gorm.DB, contentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(contentIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("content_id IN ?", contentIDs).
		Delete(&types.Favorite{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *favoriteRepo) FullDeleteByUniverseIDs(ctx context.Context, tx *gorm.DB, universeIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(universeIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("universe_id IN ?", universeIDs).
		Delete(&types.Favorite{}).Error; err != nil {
		return err
	}
	return nil
}

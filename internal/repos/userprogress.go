package repos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

type UserProgressRepo interface {
	Upsert(ctx context.Context, tx *gorm.DB, row *types.UserProgress) error
	GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserProgress, error)
	GetByUserAndContentIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, contentIDs []uuid.UUID) ([]*types.UserProgress, error)
	GetByUserAndUniverseID(ctx context.Context, tx *gorm.DB, userID, universeID uuid.UUID) ([]*types.UserProgress, error)
	FullDeleteByContentIDs(ctx context.Context, tx *gorm.DB, contentIDs []uuid.UUID) error
	FullDeleteByUniverseIDs(ctx context.Context, tx *gorm.DB, universeIDs []uuid.UUID) error
	FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error
}

type userProgressRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewUserProgressRepo(db *gorm.DB, baseLog *logger.Logger) UserProgressRepo {
	repoLog := baseLog.With("repo", "UserProgressRepo")
	return &userProgressRepo{db: db, log: repoLog}
}

func (r *userProgressRepo) Upsert(ctx context.Context, tx *gorm.DB, row *types.UserProgress) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if row == nil {
		return nil
	}

	// Upsert by unique user_id + content_id. The lookup struct must carry a
	// zero primary key, otherwise the find adds it to the conditions and an
	// existing row is never matched.
	row.ID = uuid.Nil
	if err := transaction.WithContext(ctx).
		Where("user_id = ? AND content_id = ?", row.UserID, row.ContentID).
		Attrs(map[string]interface{}{"id": uuid.New(), "created_at": time.Now()}).
		Assign(map[string]interface{}{"progress": row.Progress, "universe_id": row.UniverseID}).
		FirstOrCreate(row).Error; err != nil {
		return err
	}
	return nil
}

func (r *userProgressRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserProgress
	if userID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *userProgressRepo) GetByUserAndContentIDs(ctx context.Context, tx *gorm.DB, userID uuid.UUID, contentIDs []uuid.UUID) ([]*types.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserProgress
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

func (r *userProgressRepo) GetByUserAndUniverseID(ctx context.Context, tx *gorm.DB, userID, universeID uuid.UUID) ([]*types.UserProgress, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.UserProgress
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

func (r *userProgressRepo) FullDeleteByContentIDs(ctx context.Context, tx *gorm.DB, contentIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(contentIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("content_id IN ?", contentIDs).
		Delete(&types.UserProgress{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *userProgressRepo) FullDeleteByUniverseIDs(ctx context.Context, tx *gorm.DB, universeIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(universeIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("universe_id IN ?", universeIDs).
		Delete(&types.UserProgress{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *userProgressRepo) FullDeleteByUserIDs(ctx context.Context, tx *gorm.DB, userIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(userIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("user_id IN ?", userIDs).
		Delete(&types.UserProgress{}).Error; err != nil {
		return err
	}
	return nil
}

package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

type ContentRelationshipRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rows []*types.ContentRelationship) ([]*types.ContentRelationship, error)
	GetByUniverseID(ctx context.Context, tx *gorm.DB, universeID uuid.UUID) ([]*types.ContentRelationship, error)
	GetByParentIDs(ctx context.Context, tx *gorm.DB, parentIDs []uuid.UUID) ([]*types.ContentRelationship, error)
	GetByChildIDs(ctx context.Context, tx *gorm.DB, childIDs []uuid.UUID) ([]*types.ContentRelationship, error)
	DeleteByPair(ctx context.Context, tx *gorm.DB, parentID, childID uuid.UUID) error
	DeleteAllForContent(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error
	FullDeleteByUniverseIDs(ctx context.Context, tx *gorm.DB, universeIDs []uuid.UUID) error
}

type contentRelationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewContentRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) ContentRelationshipRepo {
	repoLog := baseLog.With("repo", "ContentRelationshipRepo")
	return &contentRelationshipRepo{db: db, log: repoLog}
}

func (r *contentRelationshipRepo) Create(ctx context.Context, tx *gorm.DB, rows []*types.ContentRelationship) ([]*types.ContentRelationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(rows) == 0 {
		return []*types.ContentRelationship{}, nil
	}

	if err := transaction.WithContext(ctx).Create(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *contentRelationshipRepo) GetByUniverseID(ctx context.Context, tx *gorm.DB, universeID uuid.UUID) ([]*types.ContentRelationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContentRelationship
	if universeID == uuid.Nil {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("universe_id = ?", universeID).
		Order("created_at ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByChildIDs orders by edge creation time so the first row for a child is
// its canonical primary parent when multiple parents exist.
func (r *contentRelationshipRepo) GetByChildIDs(ctx context.Context, tx *gorm.DB, childIDs []uuid.UUID) ([]*types.ContentRelationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContentRelationship
	if len(childIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("child_id IN ?", childIDs).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentRelationshipRepo) GetByParentIDs(ctx context.Context, tx *gorm.DB, parentIDs []uuid.UUID) ([]*types.ContentRelationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.ContentRelationship
	if len(parentIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("parent_id IN ?", parentIDs).
		Order("created_at ASC, id ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *contentRelationshipRepo) DeleteByPair(ctx context.Context, tx *gorm.DB, parentID, childID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if parentID == uuid.Nil || childID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("parent_id = ? AND child_id = ?", parentID, childID).
		Delete(&types.ContentRelationship{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *contentRelationshipRepo) DeleteAllForContent(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if contentID == uuid.Nil {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("parent_id = ? OR child_id = ?", contentID, contentID).
		Delete(&types.ContentRelationship{}).Error; err != nil {
		return err
	}
	return nil
}

func (r *contentRelationshipRepo) FullDeleteByUniverseIDs(ctx context.Context, tx *gorm.DB, universeIDs []uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	if len(universeIDs) == 0 {
		return nil
	}

	if err := transaction.WithContext(ctx).
		Where("universe_id IN ?", universeIDs).
		Delete(&types.ContentRelationship{}).Error; err != nil {
		return err
	}
	return nil
}

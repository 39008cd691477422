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

type CreateContentInput struct {
	UniverseID   uuid.UUID `json:"universe_id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	IsViewable   bool      `json:"is_viewable"`
	DisplayOrder *int      `json:"display_order,omitempty"`
}

type ContentService interface {
	CreateContent(ctx context.Context, userID uuid.UUID, input CreateContentInput) (*types.Content, error)
	GetContent(ctx context.Context, userID, contentID uuid.UUID) (*types.Content, error)
	GetUniverseContent(ctx context.Context, userID, universeID uuid.UUID) ([]*types.Content, error)
	UpdateContent(ctx context.Context, userID, contentID uuid.UUID, updates map[string]interface{}) (*types.Content, error)
	DeleteContent(ctx context.Context, userID, contentID uuid.UUID) error
}

type contentService struct {
	db               *gorm.DB
	log              *logger.Logger
	universeRepo     repos.UniverseRepo
	contentRepo      repos.ContentRepo
	relationshipRepo repos.ContentRelationshipRepo
	progressRepo     repos.UserProgressRepo
	favoriteRepo     repos.FavoriteRepo
}

func NewContentService(
	db *gorm.DB,
	baseLog *logger.Logger,
	universeRepo repos.UniverseRepo,
	contentRepo repos.ContentRepo,
	relationshipRepo repos.ContentRelationshipRepo,
	progressRepo repos.UserProgressRepo,
	favoriteRepo repos.FavoriteRepo,
) ContentService {
	serviceLog := baseLog.With("service", "ContentService")
	return &contentService{
		db:               db,
		log:              serviceLog,
		universeRepo:     universeRepo,
		contentRepo:      contentRepo,
		relationshipRepo: relationshipRepo,
		progressRepo:     progressRepo,
		favoriteRepo:     favoriteRepo,
	}
}

func (cs *contentService) CreateContent(ctx context.Context, userID uuid.UUID, input CreateContentInput) (*types.Content, error) {
	title := normalization.TrimInputString(input.Title)
	if title == "" {
		return nil, fmt.Errorf("a content title is required")
	}

	universes, err := cs.universeRepo.GetByIDs(ctx, nil, []uuid.UUID{input.UniverseID})
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}
	if len(universes) == 0 || universes[0].UserID != userID {
		return nil, fmt.Errorf("universe not found")
	}

	now := time.Now()
	content := &types.Content{
		ID:           uuid.New(),
		UniverseID:   input.UniverseID,
		UserID:       userID,
		Title:        title,
		Description:  normalization.TrimInputString(input.Description),
		IsViewable:   input.IsViewable,
		DisplayOrder: input.DisplayOrder,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := cs.contentRepo.Create(ctx, nil, []*types.Content{content}); err != nil {
		cs.log.Error("CreateContent failed", "error", err, "universe_id", input.UniverseID)
		return nil, fmt.Errorf("create content: %w", err)
	}
	return content, nil
}

func (cs *contentService) GetContent(ctx context.Context, userID, contentID uuid.UUID) (*types.Content, error) {
	contents, err := cs.contentRepo.GetByIDs(ctx, nil, []uuid.UUID{contentID})
	if err != nil {
		cs.log.Error("GetContent failed", "error", err, "content_id", contentID)
		return nil, fmt.Errorf("get content: %w", err)
	}
	if len(contents) == 0 || contents[0].UserID != userID {
		return nil, fmt.Errorf("content not found")
	}
	return contents[0], nil
}

func (cs *contentService) GetUniverseContent(ctx context.Context, userID, universeID uuid.UUID) ([]*types.Content, error) {
	universes, err := cs.universeRepo.GetByIDs(ctx, nil, []uuid.UUID{universeID})
	if err != nil {
		return nil, fmt.Errorf("load universe: %w", err)
	}
	if len(universes) == 0 || universes[0].UserID != userID {
		return nil, fmt.Errorf("universe not found")
	}
	contents, err := cs.contentRepo.GetByUniverseID(ctx, nil, universeID)
	if err != nil {
		cs.log.Error("GetUniverseContent failed", "error", err, "universe_id", universeID)
		return nil, fmt.Errorf("get universe content: %w", err)
	}
	return contents, nil
}

func (cs *contentService) UpdateContent(ctx context.Context, userID, contentID uuid.UUID, updates map[string]interface{}) (*types.Content, error) {
	if _, err := cs.GetContent(ctx, userID, contentID); err != nil {
		return nil, err
	}
	if err := cs.contentRepo.Update(ctx, nil, contentID, updates); err != nil {
		cs.log.Error("UpdateContent failed", "error", err, "content_id", contentID)
		return nil, fmt.Errorf("update content: %w", err)
	}
	return cs.GetContent(ctx, userID, contentID)
}

// DeleteContent removes the content row together with every edge touching it
// and its progress and favorite rows, in one transaction, so no dangling
// references survive the delete.
func (cs *contentService) DeleteContent(ctx context.Context, userID, contentID uuid.UUID) error {
	if _, err := cs.GetContent(ctx, userID, contentID); err != nil {
		return err
	}
	return cs.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := cs.relationshipRepo.DeleteAllForContent(ctx, tx, contentID); err != nil {
			return fmt.Errorf("delete content relationships: %w", err)
		}
		if err := cs.progressRepo.FullDeleteByContentIDs(ctx, tx, []uuid.UUID{contentID}); err != nil {
			return fmt.Errorf("delete content progress: %w", err)
		}
		if err := cs.favoriteRepo.FullDeleteByContentIDs(ctx, tx, []uuid.UUID{contentID}); err != nil {
			return fmt.Errorf("delete content favorites: %w", err)
		}
		if err := cs.contentRepo.FullDeleteByIDs(ctx, tx, []uuid.UUID{contentID}); err != nil {
			return fmt.Errorf("delete content: %w", err)
		}
		return nil
	})
}

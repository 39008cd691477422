package services

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
	"github.com/yungbote/canonkeeper-backend/internal/repos"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

// ProgressUpdateInput is one progress write: the percentage is clamped to
// [0,100] at the service boundary before it is persisted.
type ProgressUpdateInput struct {
	ContentID  uuid.UUID `json:"content_id"`
	UniverseID uuid.UUID `json:"universe_id"`
	Progress   int       `json:"progress"`
}

type ProgressSummary struct {
	TotalContent       int `json:"total_content"`
	CompletedContent   int `json:"completed_content"`
	TotalUniverses     int `json:"total_universes"`
	CompletedUniverses int `json:"completed_universes"`
}

// ProgressService resolves completion percentages: directly stored for
// viewable content, recursively derived for organisational content. Reads
// never fail upward, they default to zero values; writes return errors.
type ProgressService interface {
	GetUserProgress(ctx context.Context, userID, contentID uuid.UUID) int
	GetUserProgressByUniverse(ctx context.Context, userID, universeID uuid.UUID) map[uuid.UUID]int
	SetUserProgress(ctx context.Context, tx *gorm.DB, userID uuid.UUID, input ProgressUpdateInput) (*types.UserProgress, error)
	CalculateOrganizationalProgress(ctx context.Context, parentID, userID uuid.UUID, allContent []*types.Content, relationships []*types.ContentRelationship) int
	GetProgressSummary(ctx context.Context, userID uuid.UUID) *ProgressSummary
	BulkUpdateProgress(ctx context.Context, userID uuid.UUID, updates []ProgressUpdateInput) error
}

type progressService struct {
	db           *gorm.DB
	log          *logger.Logger
	progressRepo repos.UserProgressRepo
	contentRepo  repos.ContentRepo
}

func NewProgressService(
	db *gorm.DB,
	baseLog *logger.Logger,
	progressRepo repos.UserProgressRepo,
	contentRepo repos.ContentRepo,
) ProgressService {
	serviceLog := baseLog.With("service", "ProgressService")
	return &progressService{
		db:           db,
		log:          serviceLog,
		progressRepo: progressRepo,
		contentRepo:  contentRepo,
	}
}

// GetUserProgress returns the stored percentage for one content item, 0 when
// no row exists or the lookup fails.
func (ps *progressService) GetUserProgress(ctx context.Context, userID, contentID uuid.UUID) int {
	rows, err := ps.progressRepo.GetByUserAndContentIDs(ctx, nil, userID, []uuid.UUID{contentID})
	if err != nil {
		ps.log.Error("GetUserProgress failed, defaulting to 0", "error", err, "user_id", userID, "content_id", contentID)
		return 0
	}
	if len(rows) == 0 || rows[0] == nil {
		return 0
	}
	return clampProgress(rows[0].Progress)
}

func (ps *progressService) GetUserProgressByUniverse(ctx context.Context, userID, universeID uuid.UUID) map[uuid.UUID]int {
	result := map[uuid.UUID]int{}
	rows, err := ps.progressRepo.GetByUserAndUniverseID(ctx, nil, userID, universeID)
	if err != nil {
		ps.log.Error("GetUserProgressByUniverse failed, returning empty map", "error", err, "user_id", userID, "universe_id", universeID)
		return result
	}
	for _, row := range rows {
		if row == nil {
			continue
		}
		result[row.ContentID] = clampProgress(row.Progress)
	}
	return result
}

func (ps *progressService) SetUserProgress(ctx context.Context, tx *gorm.DB, userID uuid.UUID, input ProgressUpdateInput) (*types.UserProgress, error) {
	if userID == uuid.Nil || input.ContentID == uuid.Nil {
		return nil, fmt.Errorf("user and content ids are required")
	}

	// no id here: the repo matches the existing (user_id, content_id) row and
	// assigns one only when it inserts
	row := &types.UserProgress{
		UserID:     userID,
		ContentID:  input.ContentID,
		UniverseID: input.UniverseID,
		Progress:   clampProgress(input.Progress),
	}
	if err := ps.progressRepo.Upsert(ctx, tx, row); err != nil {
		ps.log.Error("SetUserProgress failed", "error", err, "user_id", userID, "content_id", input.ContentID)
		return nil, fmt.Errorf("set user progress: %w", err)
	}
	return row, nil
}

// CalculateOrganizationalProgress derives an organisational node's completion
// as the arithmetic mean, rounded to the nearest integer, of its children's
// resolved percentages: stored progress for viewable children, a recursive
// derivation for organisational ones. A node with no resolvable children is
// 0. The computation never errors upward; it degrades to 0.
func (ps *progressService) CalculateOrganizationalProgress(ctx context.Context, parentID, userID uuid.UUID, allContent []*types.Content, relationships []*types.ContentRelationship) int {
	byID := make(map[uuid.UUID]*types.Content, len(allContent))
	for _, c := range allContent {
		byID[c.ID] = c
	}
	childIDsByParent := make(map[uuid.UUID][]uuid.UUID, len(relationships))
	for _, edge := range relationships {
		childIDsByParent[edge.ParentID] = append(childIDsByParent[edge.ParentID], edge.ChildID)
	}

	onPath := map[uuid.UUID]bool{}
	return ps.resolveProgress(ctx, parentID, userID, byID, childIDsByParent, onPath)
}

// resolveProgress pools every resolved child percentage into one mean.
// onPath tracks the current ancestor chain: a child already on the chain is
// skipped so cyclic edge data terminates instead of recursing unbounded.
func (ps *progressService) resolveProgress(ctx context.Context, parentID, userID uuid.UUID, byID map[uuid.UUID]*types.Content, childIDsByParent map[uuid.UUID][]uuid.UUID, onPath map[uuid.UUID]bool) int {
	childIDs := childIDsByParent[parentID]
	if len(childIDs) == 0 {
		return 0
	}

	onPath[parentID] = true
	defer delete(onPath, parentID)

	sum := 0
	count := 0
	for _, childID := range childIDs {
		child, ok := byID[childID]
		if !ok || onPath[childID] {
			// missing content record or cyclic data, treat as non-existent
			continue
		}
		if child.IsViewable {
			sum += ps.GetUserProgress(ctx, userID, childID)
		} else {
			sum += ps.resolveProgress(ctx, childID, userID, byID, childIDsByParent, onPath)
		}
		count++
	}
	if count == 0 {
		return 0
	}
	return clampProgress(int(math.Round(float64(sum) / float64(count))))
}

// GetProgressSummary aggregates the user's direct progress rows. A universe
// counts as completed only when it has at least one viewable content item and
// every viewable item is at exactly 100. All fields default to 0 on failure.
func (ps *progressService) GetProgressSummary(ctx context.Context, userID uuid.UUID) *ProgressSummary {
	summary := &ProgressSummary{}

	rows, err := ps.progressRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		ps.log.Error("GetProgressSummary failed, returning zero summary", "error", err, "user_id", userID)
		return summary
	}

	progressByContent := make(map[uuid.UUID]int, len(rows))
	universeSet := map[uuid.UUID]bool{}
	for _, row := range rows {
		if row == nil {
			continue
		}
		summary.TotalContent++
		if row.Progress == 100 {
			summary.CompletedContent++
		}
		progressByContent[row.ContentID] = row.Progress
		universeSet[row.UniverseID] = true
	}
	summary.TotalUniverses = len(universeSet)

	for universeID := range universeSet {
		viewable, err := ps.contentRepo.GetViewableByUniverseID(ctx, nil, universeID)
		if err != nil {
			ps.log.Error("GetProgressSummary failed loading viewable content", "error", err, "universe_id", universeID)
			continue
		}
		if len(viewable) == 0 {
			// no vacuous completion
			continue
		}
		complete := true
		for _, c := range viewable {
			if progressByContent[c.ID] != 100 {
				complete = false
				break
			}
		}
		if complete {
			summary.CompletedUniverses++
		}
	}
	return summary
}

// BulkUpdateProgress applies the updates sequentially. The first failure
// aborts the batch with a wrapping error; earlier writes stay persisted, the
// batch is not transactional.
func (ps *progressService) BulkUpdateProgress(ctx context.Context, userID uuid.UUID, updates []ProgressUpdateInput) error {
	if len(updates) == 0 {
		return nil
	}
	for i, update := range updates {
		if _, err := ps.SetUserProgress(ctx, nil, userID, update); err != nil {
			return fmt.Errorf("bulk progress update failed at entry %d: %w", i, err)
		}
	}
	return nil
}

func clampProgress(progress int) int {
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

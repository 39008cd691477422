package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/canonkeeper-backend/internal/repos"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

func newProgressFixture(t *testing.T) (ProgressService, *gorm.DB, *types.User, *types.Universe) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	svc := NewProgressService(db, log, repos.NewUserProgressRepo(db, log), repos.NewContentRepo(db, log))
	user := seedUser(t, db)
	universe := seedUniverse(t, db, user.ID)
	return svc, db, user, universe
}

func TestSetUserProgressClamps(t *testing.T) {
	svc, db, user, universe := newProgressFixture(t)
	ctx := context.Background()
	content := seedContent(t, db, universe.ID, user.ID, "episode", true)

	cases := []struct {
		name  string
		input int
		want  int
	}{
		{name: "above_range", input: 150, want: 100},
		{name: "below_range", input: -25, want: 0},
		{name: "in_range", input: 42, want: 42},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			row, err := svc.SetUserProgress(ctx, nil, user.ID, ProgressUpdateInput{
				ContentID:  content.ID,
				UniverseID: universe.ID,
				Progress:   tc.input,
			})
			if err != nil {
				t.Fatalf("SetUserProgress(%d): %v", tc.input, err)
			}
			if row.Progress != tc.want {
				t.Fatalf("returned progress = %d, want %d", row.Progress, tc.want)
			}
			if got := svc.GetUserProgress(ctx, user.ID, content.ID); got != tc.want {
				t.Fatalf("stored progress = %d, want %d", got, tc.want)
			}
		})
	}

	// upsert keeps a single row per (user, content)
	var count int64
	if err := db.Model(&types.UserProgress{}).Where("user_id = ? AND content_id = ?", user.ID, content.ID).Count(&count).Error; err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if count != 1 {
		t.Fatalf("progress rows = %d, want 1", count)
	}
}

func TestSetUserProgressOverwritesExisting(t *testing.T) {
	svc, db, user, universe := newProgressFixture(t)
	ctx := context.Background()
	content := seedContent(t, db, universe.ID, user.ID, "episode", true)

	if _, err := svc.SetUserProgress(ctx, nil, user.ID, ProgressUpdateInput{ContentID: content.ID, UniverseID: universe.ID, Progress: 80}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	var before types.UserProgress
	if err := db.Where("user_id = ? AND content_id = ?", user.ID, content.ID).First(&before).Error; err != nil {
		t.Fatalf("load first row: %v", err)
	}

	if _, err := svc.SetUserProgress(ctx, nil, user.ID, ProgressUpdateInput{ContentID: content.ID, UniverseID: universe.ID, Progress: 150}); err != nil {
		t.Fatalf("second write to same pair: %v", err)
	}
	if got := svc.GetUserProgress(ctx, user.ID, content.ID); got != 100 {
		t.Fatalf("progress after overwrite = %d, want 100", got)
	}

	var rows []types.UserProgress
	if err := db.Where("user_id = ? AND content_id = ?", user.ID, content.ID).Find(&rows).Error; err != nil {
		t.Fatalf("load rows: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("progress rows = %d, want 1", len(rows))
	}
	if rows[0].ID != before.ID {
		t.Fatalf("overwrite replaced the row: id %s -> %s", before.ID, rows[0].ID)
	}
}

func TestGetUserProgressDefaults(t *testing.T) {
	svc, _, user, _ := newProgressFixture(t)
	if got := svc.GetUserProgress(context.Background(), user.ID, uuid.New()); got != 0 {
		t.Fatalf("missing row progress = %d, want 0", got)
	}
}

func TestCalculateOrganizationalProgress(t *testing.T) {
	svc, db, user, universe := newProgressFixture(t)
	ctx := context.Background()

	parent := seedContent(t, db, universe.ID, user.ID, "season", false)
	b := seedContent(t, db, universe.ID, user.ID, "ep1", true)
	c := seedContent(t, db, universe.ID, user.ID, "ep2", true)

	for contentID, progress := range map[uuid.UUID]int{b.ID: 80, c.ID: 60} {
		if _, err := svc.SetUserProgress(ctx, nil, user.ID, ProgressUpdateInput{ContentID: contentID, UniverseID: universe.ID, Progress: progress}); err != nil {
			t.Fatalf("seed progress: %v", err)
		}
	}

	allContent := []*types.Content{parent, b, c}
	edges := []*types.ContentRelationship{
		{ID: uuid.New(), ParentID: parent.ID, ChildID: b.ID},
		{ID: uuid.New(), ParentID: parent.ID, ChildID: c.ID},
	}

	if got := svc.CalculateOrganizationalProgress(ctx, parent.ID, user.ID, allContent, edges); got != 70 {
		t.Fatalf("parent progress = %d, want 70", got)
	}
}

func TestCalculateOrganizationalProgressMultiLevel(t *testing.T) {
	svc, db, user, universe := newProgressFixture(t)
	ctx := context.Background()

	root := seedContent(t, db, universe.ID, user.ID, "franchise", false)
	mid := seedContent(t, db, universe.ID, user.ID, "series", false)
	leaf := seedContent(t, db, universe.ID, user.ID, "movie", true)

	if _, err := svc.SetUserProgress(ctx, nil, user.ID, ProgressUpdateInput{ContentID: leaf.ID, UniverseID: universe.ID, Progress: 100}); err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	allContent := []*types.Content{root, mid, leaf}
	edges := []*types.ContentRelationship{
		{ID: uuid.New(), ParentID: root.ID, ChildID: mid.ID},
		{ID: uuid.New(), ParentID: mid.ID, ChildID: leaf.ID},
	}

	if got := svc.CalculateOrganizationalProgress(ctx, mid.ID, user.ID, allContent, edges); got != 100 {
		t.Fatalf("mid progress = %d, want 100", got)
	}
	if got := svc.CalculateOrganizationalProgress(ctx, root.ID, user.ID, allContent, edges); got != 100 {
		t.Fatalf("root progress = %d, want 100", got)
	}
}

func TestCalculateOrganizationalProgressEdgeCases(t *testing.T) {
	svc, db, user, universe := newProgressFixture(t)
	ctx := context.Background()

	parent := seedContent(t, db, universe.ID, user.ID, "empty", false)

	// no edges at all
	if got := svc.CalculateOrganizationalProgress(ctx, parent.ID, user.ID, []*types.Content{parent}, nil); got != 0 {
		t.Fatalf("childless progress = %d, want 0", got)
	}

	// child id with no matching content record is skipped
	ghost := uuid.New()
	real := seedContent(t, db, universe.ID, user.ID, "real", true)
	if _, err := svc.SetUserProgress(ctx, nil, user.ID, ProgressUpdateInput{ContentID: real.ID, UniverseID: universe.ID, Progress: 50}); err != nil {
		t.Fatalf("seed progress: %v", err)
	}
	edges := []*types.ContentRelationship{
		{ID: uuid.New(), ParentID: parent.ID, ChildID: ghost},
		{ID: uuid.New(), ParentID: parent.ID, ChildID: real.ID},
	}
	if got := svc.CalculateOrganizationalProgress(ctx, parent.ID, user.ID, []*types.Content{parent, real}, edges); got != 50 {
		t.Fatalf("progress with dangling child = %d, want 50", got)
	}
}

func TestCalculateOrganizationalProgressTerminatesOnCyclicData(t *testing.T) {
	svc, _, user, universe := newProgressFixture(t)
	ctx := context.Background()

	a := &types.Content{ID: uuid.New(), UniverseID: universe.ID, UserID: user.ID, Title: "a"}
	b := &types.Content{ID: uuid.New(), UniverseID: universe.ID, UserID: user.ID, Title: "b"}
	edges := []*types.ContentRelationship{
		{ID: uuid.New(), ParentID: a.ID, ChildID: b.ID},
		{ID: uuid.New(), ParentID: b.ID, ChildID: a.ID},
	}

	done := make(chan int, 1)
	go func() {
		done <- svc.CalculateOrganizationalProgress(ctx, a.ID, user.ID, []*types.Content{a, b}, edges)
	}()
	select {
	case got := <-done:
		if got != 0 {
			t.Fatalf("cyclic progress = %d, want 0", got)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("aggregation did not terminate on cyclic data")
	}
}

func TestGetProgressSummary(t *testing.T) {
	svc, db, user, universe := newProgressFixture(t)
	ctx := context.Background()

	empty := svc.GetProgressSummary(ctx, user.ID)
	if empty.TotalContent != 0 || empty.CompletedContent != 0 || empty.TotalUniverses != 0 || empty.CompletedUniverses != 0 {
		t.Fatalf("summary for fresh user = %+v, want all zero", empty)
	}

	done := seedContent(t, db, universe.ID, user.ID, "done", true)
	if _, err := svc.SetUserProgress(ctx, nil, user.ID, ProgressUpdateInput{ContentID: done.ID, UniverseID: universe.ID, Progress: 100}); err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	partial := seedUniverse(t, db, user.ID)
	half := seedContent(t, db, partial.ID, user.ID, "half", true)
	seedContent(t, db, partial.ID, user.ID, "unseen", true)
	if _, err := svc.SetUserProgress(ctx, nil, user.ID, ProgressUpdateInput{ContentID: half.ID, UniverseID: partial.ID, Progress: 100}); err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	summary := svc.GetProgressSummary(ctx, user.ID)
	if summary.TotalContent != 2 {
		t.Fatalf("TotalContent = %d, want 2", summary.TotalContent)
	}
	if summary.CompletedContent != 2 {
		t.Fatalf("CompletedContent = %d, want 2", summary.CompletedContent)
	}
	if summary.TotalUniverses != 2 {
		t.Fatalf("TotalUniverses = %d, want 2", summary.TotalUniverses)
	}
	// only the universe whose every viewable item is at 100 counts
	if summary.CompletedUniverses != 1 {
		t.Fatalf("CompletedUniverses = %d, want 1", summary.CompletedUniverses)
	}
}

func TestBulkUpdateProgress(t *testing.T) {
	svc, db, user, universe := newProgressFixture(t)
	ctx := context.Background()

	if err := svc.BulkUpdateProgress(ctx, user.ID, nil); err != nil {
		t.Fatalf("empty bulk update: %v", err)
	}

	a := seedContent(t, db, universe.ID, user.ID, "a", true)
	b := seedContent(t, db, universe.ID, user.ID, "b", true)
	updates := []ProgressUpdateInput{
		{ContentID: a.ID, UniverseID: universe.ID, Progress: 30},
		{ContentID: b.ID, UniverseID: universe.ID, Progress: 130},
	}
	if err := svc.BulkUpdateProgress(ctx, user.ID, updates); err != nil {
		t.Fatalf("bulk update: %v", err)
	}
	if got := svc.GetUserProgress(ctx, user.ID, a.ID); got != 30 {
		t.Fatalf("a progress = %d, want 30", got)
	}
	if got := svc.GetUserProgress(ctx, user.ID, b.ID); got != 100 {
		t.Fatalf("b progress = %d, want 100", got)
	}

	// a nil content id fails the batch
	bad := []ProgressUpdateInput{{ContentID: uuid.Nil, UniverseID: universe.ID, Progress: 10}}
	if err := svc.BulkUpdateProgress(ctx, user.ID, bad); err == nil {
		t.Fatal("bulk update with nil content id succeeded, want error")
	}
}

func TestGetUserProgressByUniverse(t *testing.T) {
	svc, db, user, universe := newProgressFixture(t)
	ctx := context.Background()

	a := seedContent(t, db, universe.ID, user.ID, "a", true)
	b := seedContent(t, db, universe.ID, user.ID, "b", true)
	if _, err := svc.SetUserProgress(ctx, nil, user.ID, ProgressUpdateInput{ContentID: a.ID, UniverseID: universe.ID, Progress: 25}); err != nil {
		t.Fatalf("seed progress: %v", err)
	}

	got := svc.GetUserProgressByUniverse(ctx, user.ID, universe.ID)
	if len(got) != 1 {
		t.Fatalf("map size = %d, want 1", len(got))
	}
	if got[a.ID] != 25 {
		t.Fatalf("a progress = %d, want 25", got[a.ID])
	}
	if _, ok := got[b.ID]; ok {
		t.Fatal("content without progress appeared in map")
	}
}

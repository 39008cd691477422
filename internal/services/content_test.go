package services

import (
	"context"
	"testing"
	"time"

	"github.com/yungbote/canonkeeper-backend/internal/repos"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

func TestDeleteContentCascades(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger()
	ctx := context.Background()

	universeRepo := repos.NewUniverseRepo(db, log)
	contentRepo := repos.NewContentRepo(db, log)
	relationshipRepo := repos.NewContentRelationshipRepo(db, log)
	progressRepo := repos.NewUserProgressRepo(db, log)
	favoriteRepo := repos.NewFavoriteRepo(db, log)

	contentSvc := NewContentService(db, log, universeRepo, contentRepo, relationshipRepo, progressRepo, favoriteRepo)
	progressSvc := NewProgressService(db, log, progressRepo, contentRepo)
	favoriteSvc := NewFavoriteService(db, log, favoriteRepo, contentRepo)

	user := seedUser(t, db)
	universe := seedUniverse(t, db, user.ID)

	parent := seedContent(t, db, universe.ID, user.ID, "parent", false)
	victim := seedContent(t, db, universe.ID, user.ID, "victim", true)
	sibling := seedContent(t, db, universe.ID, user.ID, "sibling", true)

	base := time.Now()
	seedEdge(t, db, universe.ID, user.ID, parent.ID, victim.ID, base)
	seedEdge(t, db, universe.ID, user.ID, parent.ID, sibling.ID, base.Add(time.Second))

	if _, err := progressSvc.SetUserProgress(ctx, nil, user.ID, ProgressUpdateInput{ContentID: victim.ID, UniverseID: universe.ID, Progress: 40}); err != nil {
		t.Fatalf("seed progress: %v", err)
	}
	if _, err := favoriteSvc.ToggleFavorite(ctx, user.ID, victim.ID); err != nil {
		t.Fatalf("seed favorite: %v", err)
	}

	if err := contentSvc.DeleteContent(ctx, user.ID, victim.ID); err != nil {
		t.Fatalf("DeleteContent: %v", err)
	}

	if _, err := contentSvc.GetContent(ctx, user.ID, victim.ID); err == nil {
		t.Fatal("deleted content still retrievable")
	}
	edges, err := relationshipRepo.GetByUniverseID(ctx, nil, universe.ID)
	if err != nil {
		t.Fatalf("load edges: %v", err)
	}
	if len(edges) != 1 || edges[0].ChildID != sibling.ID {
		t.Fatalf("edges after delete = %d, want only parent->sibling", len(edges))
	}
	if got := progressSvc.GetUserProgress(ctx, user.ID, victim.ID); got != 0 {
		t.Fatalf("progress survived delete: %d", got)
	}
	favorites, err := favoriteSvc.GetUserFavorites(ctx, user.ID)
	if err != nil {
		t.Fatalf("load favorites: %v", err)
	}
	if len(favorites) != 0 {
		t.Fatalf("favorites survived delete: %d", len(favorites))
	}
}

func TestToggleFavorite(t *testing.T) {
	db := newTestDB(t)
	log := newTestLogger()
	ctx := context.Background()

	favoriteSvc := NewFavoriteService(db, log, repos.NewFavoriteRepo(db, log), repos.NewContentRepo(db, log))

	user := seedUser(t, db)
	universe := seedUniverse(t, db, user.ID)
	content := seedContent(t, db, universe.ID, user.ID, "content", true)

	favorited, err := favoriteSvc.ToggleFavorite(ctx, user.ID, content.ID)
	if err != nil {
		t.Fatalf("first toggle: %v", err)
	}
	if !favorited {
		t.Fatal("first toggle = false, want true")
	}
	favorited, err = favoriteSvc.ToggleFavorite(ctx, user.ID, content.ID)
	if err != nil {
		t.Fatalf("second toggle: %v", err)
	}
	if favorited {
		t.Fatal("second toggle = true, want false")
	}

	var count int64
	if err := db.Model(&types.Favorite{}).Count(&count).Error; err != nil {
		t.Fatalf("count favorites: %v", err)
	}
	if count != 0 {
		t.Fatalf("favorite rows = %d, want 0", count)
	}
}

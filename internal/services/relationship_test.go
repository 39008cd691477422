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

func newRelationshipFixture(t *testing.T) (RelationshipService, *gorm.DB, *types.User, *types.Universe) {
	t.Helper()
	db := newTestDB(t)
	log := newTestLogger()
	svc := NewRelationshipService(db, log, repos.NewContentRelationshipRepo(db, log), repos.NewContentRepo(db, log))
	user := seedUser(t, db)
	universe := seedUniverse(t, db, user.ID)
	return svc, db, user, universe
}

func TestWouldCreateCircularDependency(t *testing.T) {
	svc, db, user, universe := newRelationshipFixture(t)
	ctx := context.Background()

	a := seedContent(t, db, universe.ID, user.ID, "a", false)
	b := seedContent(t, db, universe.ID, user.ID, "b", false)
	c := seedContent(t, db, universe.ID, user.ID, "c", true)
	d := seedContent(t, db, universe.ID, user.ID, "d", true)

	base := time.Now()
	seedEdge(t, db, universe.ID, user.ID, a.ID, b.ID, base)
	seedEdge(t, db, universe.ID, user.ID, b.ID, c.ID, base.Add(time.Second))

	cases := []struct {
		name     string
		parentID uuid.UUID
		childID  uuid.UUID
		want     bool
	}{
		{name: "self_loop", parentID: a.ID, childID: a.ID, want: true},
		{name: "direct_cycle", parentID: b.ID, childID: a.ID, want: true},
		{name: "transitive_cycle", parentID: c.ID, childID: a.ID, want: true},
		{name: "forward_edge_ok", parentID: a.ID, childID: c.ID, want: false},
		{name: "unrelated_ok", parentID: a.ID, childID: d.ID, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := svc.WouldCreateCircularDependency(ctx, tc.parentID, tc.childID)
			if got != tc.want {
				t.Fatalf("WouldCreateCircularDependency(%s, %s)=%v, want %v", tc.parentID, tc.childID, got, tc.want)
			}
		})
	}
}

func TestCreateRejectsCyclesAndCrossUniverse(t *testing.T) {
	svc, db, user, universe := newRelationshipFixture(t)
	ctx := context.Background()

	a := seedContent(t, db, universe.ID, user.ID, "a", false)
	b := seedContent(t, db, universe.ID, user.ID, "b", true)

	other := seedUniverse(t, db, user.ID)
	foreign := seedContent(t, db, other.ID, user.ID, "foreign", true)

	if _, err := svc.Create(ctx, nil, a.ID, b.ID, universe.ID, user.ID); err != nil {
		t.Fatalf("valid create failed: %v", err)
	}
	if _, err := svc.Create(ctx, nil, a.ID, a.ID, universe.ID, user.ID); err == nil {
		t.Fatal("self-loop create succeeded, want error")
	}
	if _, err := svc.Create(ctx, nil, b.ID, a.ID, universe.ID, user.ID); err == nil {
		t.Fatal("cyclic create succeeded, want error")
	}
	if _, err := svc.Create(ctx, nil, a.ID, foreign.ID, universe.ID, user.ID); err == nil {
		t.Fatal("cross-universe create succeeded, want error")
	}
	// duplicate pair hits the storage-level unique index
	if _, err := svc.Create(ctx, nil, a.ID, b.ID, universe.ID, user.ID); err == nil {
		t.Fatal("duplicate create succeeded, want error")
	}
}

func TestCreateSeesPendingEdgesInTransaction(t *testing.T) {
	svc, db, user, universe := newRelationshipFixture(t)
	ctx := context.Background()

	a := seedContent(t, db, universe.ID, user.ID, "a", false)
	b := seedContent(t, db, universe.ID, user.ID, "b", false)
	c := seedContent(t, db, universe.ID, user.ID, "c", true)

	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := svc.Create(ctx, tx, a.ID, b.ID, universe.ID, user.ID); err != nil {
			t.Fatalf("create a->b in transaction: %v", err)
		}
		if _, err := svc.Create(ctx, tx, b.ID, c.ID, universe.ID, user.ID); err != nil {
			t.Fatalf("create b->c in transaction: %v", err)
		}
		// both edges are still uncommitted; the cycle check must see them
		if _, err := svc.Create(ctx, tx, c.ID, a.ID, universe.ID, user.ID); err == nil {
			t.Fatal("cyclic create against pending edges succeeded, want error")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("transaction: %v", err)
	}
}

func TestBuildHierarchyTree(t *testing.T) {
	svc, db, user, universe := newRelationshipFixture(t)

	if got := svc.BuildHierarchyTree(nil, nil); len(got) != 0 {
		t.Fatalf("empty inputs produced %d roots, want 0", len(got))
	}

	a := seedContent(t, db, universe.ID, user.ID, "a", false)
	b := seedContent(t, db, universe.ID, user.ID, "b", true)
	c := seedContent(t, db, universe.ID, user.ID, "c", true)
	lone := seedContent(t, db, universe.ID, user.ID, "lone", true)

	base := time.Now()
	edges := []*types.ContentRelationship{
		seedEdge(t, db, universe.ID, user.ID, a.ID, b.ID, base),
		seedEdge(t, db, universe.ID, user.ID, a.ID, c.ID, base.Add(time.Second)),
		// dangling child reference, must be tolerated by exclusion
		{ID: uuid.New(), UniverseID: universe.ID, UserID: user.ID, ParentID: a.ID, ChildID: uuid.New()},
	}
	contents := []*types.Content{a, b, c, lone}

	roots := svc.BuildHierarchyTree(contents, edges)
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}

	byTitle := map[string]*types.HierarchyNode{}
	for _, root := range roots {
		byTitle[root.Content.Title] = root
	}
	aNode, ok := byTitle["a"]
	if !ok {
		t.Fatal("root a missing from hierarchy")
	}
	if len(aNode.Children) != 2 {
		t.Fatalf("node a has %d children, want 2", len(aNode.Children))
	}
	if _, ok := byTitle["lone"]; !ok {
		t.Fatal("isolated content missing from roots")
	}
}

func TestBuildHierarchyTreeTerminatesOnCyclicData(t *testing.T) {
	svc, _, user, universe := newRelationshipFixture(t)

	a := &types.Content{ID: uuid.New(), UniverseID: universe.ID, UserID: user.ID, Title: "a"}
	b := &types.Content{ID: uuid.New(), UniverseID: universe.ID, UserID: user.ID, Title: "b"}
	// a->b and b->a: both are children, so neither is a root
	edges := []*types.ContentRelationship{
		{ID: uuid.New(), ParentID: a.ID, ChildID: b.ID},
		{ID: uuid.New(), ParentID: b.ID, ChildID: a.ID},
	}
	roots := svc.BuildHierarchyTree([]*types.Content{a, b}, edges)
	if len(roots) != 0 {
		t.Fatalf("cyclic data produced %d roots, want 0", len(roots))
	}
}

func TestGetContentPath(t *testing.T) {
	svc, db, user, universe := newRelationshipFixture(t)
	ctx := context.Background()

	root := seedContent(t, db, universe.ID, user.ID, "root", false)
	mid := seedContent(t, db, universe.ID, user.ID, "mid", false)
	leaf := seedContent(t, db, universe.ID, user.ID, "leaf", true)

	if got := svc.GetContentPath(ctx, root.ID); len(got) != 1 || got[0] != root.ID {
		t.Fatalf("path of parentless node = %v, want [%s]", got, root.ID)
	}

	base := time.Now()
	seedEdge(t, db, universe.ID, user.ID, root.ID, mid.ID, base)
	seedEdge(t, db, universe.ID, user.ID, mid.ID, leaf.ID, base.Add(time.Second))

	got := svc.GetContentPath(ctx, leaf.ID)
	want := []uuid.UUID{root.ID, mid.ID, leaf.ID}
	if len(got) != len(want) {
		t.Fatalf("path length = %d, want %d (%v)", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("path[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestGetContentPathPicksEarliestParent(t *testing.T) {
	svc, db, user, universe := newRelationshipFixture(t)
	ctx := context.Background()

	first := seedContent(t, db, universe.ID, user.ID, "first", false)
	second := seedContent(t, db, universe.ID, user.ID, "second", false)
	shared := seedContent(t, db, universe.ID, user.ID, "shared", true)

	base := time.Now()
	seedEdge(t, db, universe.ID, user.ID, second.ID, shared.ID, base.Add(time.Hour))
	seedEdge(t, db, universe.ID, user.ID, first.ID, shared.ID, base)

	got := svc.GetContentPath(ctx, shared.ID)
	if len(got) != 2 || got[0] != first.ID {
		t.Fatalf("path = %v, want earliest-created parent %s first", got, first.ID)
	}
}

func TestDeleteAllForContent(t *testing.T) {
	svc, db, user, universe := newRelationshipFixture(t)
	ctx := context.Background()

	a := seedContent(t, db, universe.ID, user.ID, "a", false)
	b := seedContent(t, db, universe.ID, user.ID, "b", false)
	c := seedContent(t, db, universe.ID, user.ID, "c", true)

	base := time.Now()
	seedEdge(t, db, universe.ID, user.ID, a.ID, b.ID, base)
	seedEdge(t, db, universe.ID, user.ID, b.ID, c.ID, base.Add(time.Second))

	if err := svc.DeleteAllForContent(ctx, nil, b.ID); err != nil {
		t.Fatalf("DeleteAllForContent: %v", err)
	}
	edges, err := svc.GetByUniverse(ctx, universe.ID)
	if err != nil {
		t.Fatalf("GetByUniverse: %v", err)
	}
	if len(edges) != 0 {
		t.Fatalf("%d edges survived, want 0", len(edges))
	}
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/canonkeeper-backend/internal/logger"
	"github.com/yungbote/canonkeeper-backend/internal/repos"
	"github.com/yungbote/canonkeeper-backend/internal/types"
)

// RelationshipService owns the parent->child edge set for content within a
// universe. Mutations return errors; derivation paths (cycle check, hierarchy
// build, content path) degrade to safe defaults because they run on
// read-heavy display paths where partial results beat a hard failure.
type RelationshipService interface {
	GetByUniverse(ctx context.Context, universeID uuid.UUID) ([]*types.ContentRelationship, error)
	GetParents(ctx context.Context, contentID uuid.UUID) ([]*types.ContentRelationship, error)
	GetChildren(ctx context.Context, contentID uuid.UUID) ([]*types.ContentRelationship, error)
	Create(ctx context.Context, tx *gorm.DB, parentID, childID, universeID, userID uuid.UUID) (*types.ContentRelationship, error)
	Delete(ctx context.Context, tx *gorm.DB, parentID, childID uuid.UUID) error
	DeleteAllForContent(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error
	WouldCreateCircularDependency(ctx context.Context, parentID, childID uuid.UUID) bool
	BuildHierarchyTree(contents []*types.Content, relationships []*types.ContentRelationship) []*types.HierarchyNode
	GetUniverseHierarchy(ctx context.Context, universeID uuid.UUID) []*types.HierarchyNode
	GetContentPath(ctx context.Context, contentID uuid.UUID) []uuid.UUID
}

type relationshipService struct {
	db               *gorm.DB
	log              *logger.Logger
	relationshipRepo repos.ContentRelationshipRepo
	contentRepo      repos.ContentRepo
}

func NewRelationshipService(
	db *gorm.DB,
	baseLog *logger.Logger,
	relationshipRepo repos.ContentRelationshipRepo,
	contentRepo repos.ContentRepo,
) RelationshipService {
	serviceLog := baseLog.With("service", "RelationshipService")
	return &relationshipService{
		db:               db,
		log:              serviceLog,
		relationshipRepo: relationshipRepo,
		contentRepo:      contentRepo,
	}
}

func (rs *relationshipService) GetByUniverse(ctx context.Context, universeID uuid.UUID) ([]*types.ContentRelationship, error) {
	edges, err := rs.relationshipRepo.GetByUniverseID(ctx, nil, universeID)
	if err != nil {
		rs.log.Error("GetByUniverse failed", "error", err, "universe_id", universeID)
		return nil, fmt.Errorf("get relationships for universe: %w", err)
	}
	return edges, nil
}

func (rs *relationshipService) GetParents(ctx context.Context, contentID uuid.UUID) ([]*types.ContentRelationship, error) {
	edges, err := rs.relationshipRepo.GetByChildIDs(ctx, nil, []uuid.UUID{contentID})
	if err != nil {
		rs.log.Error("GetParents failed", "error", err, "content_id", contentID)
		return nil, fmt.Errorf("get parent relationships: %w", err)
	}
	return edges, nil
}

func (rs *relationshipService) GetChildren(ctx context.Context, contentID uuid.UUID) ([]*types.ContentRelationship, error) {
	edges, err := rs.relationshipRepo.GetByParentIDs(ctx, nil, []uuid.UUID{contentID})
	if err != nil {
		rs.log.Error("GetChildren failed", "error", err, "content_id", contentID)
		return nil, fmt.Errorf("get child relationships: %w", err)
	}
	return edges, nil
}

// Create links parent->child. It validates that both endpoints exist in the
// given universe and that the new edge closes no cycle; duplicate pairs are
// rejected by the unique (parent_id, child_id) index at the storage layer.
func (rs *relationshipService) Create(ctx context.Context, tx *gorm.DB, parentID, childID, universeID, userID uuid.UUID) (*types.ContentRelationship, error) {
	if parentID == uuid.Nil || childID == uuid.Nil {
		return nil, fmt.Errorf("parent and child ids are required")
	}
	if parentID == childID {
		return nil, fmt.Errorf("content cannot be its own parent")
	}

	contents, err := rs.contentRepo.GetByIDs(ctx, tx, []uuid.UUID{parentID, childID})
	if err != nil {
		return nil, fmt.Errorf("load relationship endpoints: %w", err)
	}
	var parent, child *types.Content
	for _, c := range contents {
		switch c.ID {
		case parentID:
			parent = c
		case childID:
			child = c
		}
	}
	if parent == nil || child == nil {
		return nil, fmt.Errorf("parent or child content not found")
	}
	if parent.UniverseID != universeID || child.UniverseID != universeID {
		return nil, fmt.Errorf("parent and child must belong to the same universe")
	}

	if rs.wouldCreateCycle(ctx, tx, parentID, childID) {
		return nil, fmt.Errorf("relationship would create a circular dependency")
	}

	now := time.Now()
	edge := &types.ContentRelationship{
		ID:         uuid.New(),
		UniverseID: universeID,
		UserID:     userID,
		ParentID:   parentID,
		ChildID:    childID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := rs.relationshipRepo.Create(ctx, tx, []*types.ContentRelationship{edge}); err != nil {
		rs.log.Error("Create relationship failed", "error", err, "parent_id", parentID, "child_id", childID)
		return nil, fmt.Errorf("create relationship: %w", err)
	}
	return edge, nil
}

func (rs *relationshipService) Delete(ctx context.Context, tx *gorm.DB, parentID, childID uuid.UUID) error {
	if err := rs.relationshipRepo.DeleteByPair(ctx, tx, parentID, childID); err != nil {
		rs.log.Error("Delete relationship failed", "error", err, "parent_id", parentID, "child_id", childID)
		return fmt.Errorf("delete relationship: %w", err)
	}
	return nil
}

func (rs *relationshipService) DeleteAllForContent(ctx context.Context, tx *gorm.DB, contentID uuid.UUID) error {
	if err := rs.relationshipRepo.DeleteAllForContent(ctx, tx, contentID); err != nil {
		rs.log.Error("DeleteAllForContent failed", "error", err, "content_id", contentID)
		return fmt.Errorf("delete relationships for content: %w", err)
	}
	return nil
}

// WouldCreateCircularDependency reports whether linking parent->child would
// close a cycle: true for self-loops and whenever child is already a
// transitive ancestor of parent.
func (rs *relationshipService) WouldCreateCircularDependency(ctx context.Context, parentID, childID uuid.UUID) bool {
	return rs.wouldCreateCycle(ctx, nil, parentID, childID)
}

// wouldCreateCycle runs the ancestor walk on the caller's transaction when
// one is given, so edges pending in that transaction are visible to the check.
func (rs *relationshipService) wouldCreateCycle(ctx context.Context, tx *gorm.DB, parentID, childID uuid.UUID) bool {
	if parentID == childID {
		return true
	}
	visited := map[uuid.UUID]bool{}
	return rs.isAncestor(ctx, tx, childID, parentID, visited)
}

// isAncestor walks up the parent chains of node looking for candidate. The
// visited set bounds the walk even when stored data is accidentally cyclic.
// A repo failure mid-walk fails safe to "not an ancestor": callers keep a
// storage-level uniqueness backstop.
func (rs *relationshipService) isAncestor(ctx context.Context, tx *gorm.DB, candidateID, nodeID uuid.UUID, visited map[uuid.UUID]bool) bool {
	if visited[nodeID] {
		return false
	}
	visited[nodeID] = true

	parents, err := rs.relationshipRepo.GetByChildIDs(ctx, tx, []uuid.UUID{nodeID})
	if err != nil {
		rs.log.Error("Ancestor check failed, treating as non-ancestor", "error", err, "node_id", nodeID)
		return false
	}
	for _, edge := range parents {
		if edge.ParentID == candidateID {
			return true
		}
		if rs.isAncestor(ctx, tx, candidateID, edge.ParentID, visited) {
			return true
		}
	}
	return false
}

// BuildHierarchyTree materializes content rows and edges into a rooted
// forest. Adjacency maps are precomputed so construction is O(N+E). Edges
// whose child has no matching content row are skipped rather than failing
// the build; a node is a root when no edge lists it as a child.
func (rs *relationshipService) BuildHierarchyTree(contents []*types.Content, relationships []*types.ContentRelationship) []*types.HierarchyNode {
	byID := make(map[uuid.UUID]*types.Content, len(contents))
	for _, c := range contents {
		byID[c.ID] = c
	}

	childIDsByParent := make(map[uuid.UUID][]uuid.UUID, len(relationships))
	isChild := make(map[uuid.UUID]bool, len(relationships))
	for _, edge := range relationships {
		if _, ok := byID[edge.ChildID]; !ok {
			// dangling reference, tolerate by exclusion
			continue
		}
		childIDsByParent[edge.ParentID] = append(childIDsByParent[edge.ParentID], edge.ChildID)
		isChild[edge.ChildID] = true
	}

	var roots []*types.HierarchyNode
	onPath := map[uuid.UUID]bool{}
	for _, c := range contents {
		if isChild[c.ID] {
			continue
		}
		roots = append(roots, rs.buildNode(c, byID, childIDsByParent, onPath))
	}
	if roots == nil {
		roots = []*types.HierarchyNode{}
	}
	return roots
}

// buildNode attaches children depth-first. onPath tracks the current ancestor
// chain so accidentally-cyclic edge data terminates instead of recursing
// forever; a node referenced by multiple parents still appears under each.
func (rs *relationshipService) buildNode(content *types.Content, byID map[uuid.UUID]*types.Content, childIDsByParent map[uuid.UUID][]uuid.UUID, onPath map[uuid.UUID]bool) *types.HierarchyNode {
	node := &types.HierarchyNode{Content: content, Children: []*types.HierarchyNode{}}
	onPath[content.ID] = true
	for _, childID := range childIDsByParent[content.ID] {
		child, ok := byID[childID]
		if !ok || onPath[childID] {
			continue
		}
		node.Children = append(node.Children, rs.buildNode(child, byID, childIDsByParent, onPath))
	}
	delete(onPath, content.ID)
	return node
}

// GetUniverseHierarchy composes the universe's edge and content reads with
// BuildHierarchyTree. Degrades to an empty forest on failure.
func (rs *relationshipService) GetUniverseHierarchy(ctx context.Context, universeID uuid.UUID) []*types.HierarchyNode {
	edges, err := rs.relationshipRepo.GetByUniverseID(ctx, nil, universeID)
	if err != nil {
		rs.log.Error("GetUniverseHierarchy failed loading relationships", "error", err, "universe_id", universeID)
		return []*types.HierarchyNode{}
	}
	contents, err := rs.contentRepo.GetByUniverseID(ctx, nil, universeID)
	if err != nil {
		rs.log.Error("GetUniverseHierarchy failed loading content", "error", err, "universe_id", universeID)
		return []*types.HierarchyNode{}
	}
	return rs.BuildHierarchyTree(contents, edges)
}

// GetContentPath returns the ancestor chain of a content item, root first,
// ending with the item itself. When a node has several parents the
// earliest-created edge wins (the repo orders parent edges by creation time).
// Never fails: the minimum result is the item's own id.
func (rs *relationshipService) GetContentPath(ctx context.Context, contentID uuid.UUID) []uuid.UUID {
	path := []uuid.UUID{contentID}
	visited := map[uuid.UUID]bool{contentID: true}

	current := contentID
	for {
		parents, err := rs.relationshipRepo.GetByChildIDs(ctx, nil, []uuid.UUID{current})
		if err != nil {
			rs.log.Error("GetContentPath failed mid-walk, returning partial path", "error", err, "content_id", contentID)
			return path
		}
		if len(parents) == 0 {
			return path
		}
		next := parents[0].ParentID
		if visited[next] {
			rs.log.Warn("Cycle detected while resolving content path", "content_id", contentID, "at", next)
			return path
		}
		visited[next] = true
		path = append([]uuid.UUID{next}, path...)
		current = next
	}
}

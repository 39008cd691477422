package types

// HierarchyNode is the derived, transient tree view of a content item and its
// children. It is rebuilt per request from the universe's content and
// relationship rows, never persisted.
type HierarchyNode struct {
	Content  *Content         `json:"content"`
	Children []*HierarchyNode `json:"children"`
}

package types

import (
	"time"

	"github.com/google/uuid"
)

// ContentRelationship is a directed parent->child edge between two content
// items of the same universe. The (parent_id, child_id) pair is unique.
type ContentRelationship struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UniverseID uuid.UUID `gorm:"type:uuid;not null;index" json:"universe_id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	ParentID   uuid.UUID `gorm:"type:uuid;not null;index:idx_parent_child,unique" json:"parent_id"`
	Parent     *Content  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ParentID;references:ID" json:"parent,omitempty"`
	ChildID    uuid.UUID `gorm:"type:uuid;not null;index:idx_parent_child,unique;index" json:"child_id"`
	Child      *Content  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ChildID;references:ID" json:"child,omitempty"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (ContentRelationship) TableName() string { return "content_relationship" }

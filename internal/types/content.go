package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content is a node in a universe's hierarchy. IsViewable is an explicit
// stored flag: viewable content is a trackable leaf, everything else is an
// organisational container whose completion is derived from descendants.
type Content struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UniverseID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"universe_id"`
	Universe     *Universe      `gorm:"constraint:OnDelete:CASCADE;foreignKey:UniverseID;references:ID" json:"universe,omitempty"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string         `gorm:"column:title;not null" json:"title"`
	Description  string         `gorm:"column:description" json:"description"`
	IsViewable   bool           `gorm:"column:is_viewable;not null" json:"is_viewable"`
	DisplayOrder *int           `gorm:"column:display_order" json:"display_order,omitempty"`
	Metadata     datatypes.JSON `gorm:"column:metadata" json:"metadata"`
	CreatedAt    time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Content) TableName() string { return "content" }

package types

import (
	"time"

	"github.com/google/uuid"
)

// UserProgress is the directly-tracked completion percentage for one user on
// one viewable content item. Organisational content never has a row here; its
// percentage is always computed on demand.
type UserProgress struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index:idx_user_content,unique" json:"user_id"`
	User       *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	ContentID  uuid.UUID `gorm:"type:uuid;not null;index:idx_user_content,unique" json:"content_id"`
	Content    *Content  `gorm:"constraint:OnDelete:CASCADE;foreignKey:ContentID;references:ID" json:"content,omitempty"`
	UniverseID uuid.UUID `gorm:"type:uuid;not null;index" json:"universe_id"`
	Progress   int       `gorm:"column:progress;not null;default:0" json:"progress"`
	CreatedAt  time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null" json:"updated_at"`
}

func (UserProgress) TableName() string { return "user_progress" }

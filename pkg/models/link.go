package models

import (
	"time"
)

// PublicLink is a capability token granting anonymous access to a resource.
// Links are immutable once minted; changing terms means revoke and recreate.
type PublicLink struct {
	Token        string       `gorm:"type:text;primaryKey"`
	ResourceType ResourceType `gorm:"type:text;not null"`
	ResourceID   string       `gorm:"type:uuid;not null;index"`
	ExpiresAt    *time.Time   `gorm:"type:timestamp"`
	PasswordHash *string      `gorm:"type:text"`
	CreatedAt    time.Time    `gorm:"not null"`
}

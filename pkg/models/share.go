package models

import (
	"time"
)

// Share grants a user a role on a single resource. One grant per
// (resource, user) pair; the resource owner is denormalized onto the grant
// so role updates do not need a second resource lookup.
type Share struct {
	ID           string       `gorm:"type:uuid;primaryKey"`
	ResourceType ResourceType `gorm:"type:text;not null;uniqueIndex:idx_shares_resource_user"`
	ResourceID   string       `gorm:"type:uuid;not null;uniqueIndex:idx_shares_resource_user"`
	UserID       int64        `gorm:"type:bigint;not null;uniqueIndex:idx_shares_resource_user;index"`
	Role         Role         `gorm:"type:text;not null"`
	OwnerID      int64        `gorm:"type:bigint;not null"`
	CreatedAt    time.Time    `gorm:"not null"`
	UpdatedAt    time.Time    `gorm:"not null"`
}

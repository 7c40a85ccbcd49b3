package models

import (
	"time"
)

type Folder struct {
	ID        string     `gorm:"type:uuid;primaryKey"`
	Name      string     `gorm:"type:text;not null"`
	OwnerID   int64      `gorm:"type:bigint;not null;index"`
	ParentID  *string    `gorm:"type:uuid;index"`
	IsDeleted bool       `gorm:"not null;default:false"`
	DeletedAt *time.Time `gorm:"type:timestamp"`
	CreatedAt time.Time  `gorm:"not null"`
	UpdatedAt time.Time  `gorm:"not null"`
}

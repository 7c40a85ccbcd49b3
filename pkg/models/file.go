package models

import (
	"time"
)

type File struct {
	ID       string  `gorm:"type:uuid;primaryKey"`
	Name     string  `gorm:"type:text;not null"`
	OwnerID  int64   `gorm:"type:bigint;not null;index"`
	FolderID *string `gorm:"type:uuid;index"`
	MimeType string  `gorm:"type:text"`
	Size     int64   `gorm:"type:bigint"`
	// StoragePath is assigned once the blob upload completes; a row with an
	// empty path is an upload that never finished.
	StoragePath string     `gorm:"type:text"`
	IsDeleted   bool       `gorm:"not null;default:false"`
	DeletedAt   *time.Time `gorm:"type:timestamp"`
	CreatedAt   time.Time  `gorm:"not null"`
	UpdatedAt   time.Time  `gorm:"not null"`
}

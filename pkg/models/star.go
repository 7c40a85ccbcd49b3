package models

import (
	"time"
)

type Star struct {
	UserID       int64        `gorm:"type:bigint;primaryKey;autoIncrement:false"`
	ResourceType ResourceType `gorm:"type:text;primaryKey"`
	ResourceID   string       `gorm:"type:uuid;primaryKey"`
	CreatedAt    time.Time    `gorm:"not null"`
}

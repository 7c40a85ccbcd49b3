package schemas

import (
	"io"
	"time"

	"github.com/concavehq/concave/pkg/models"
)

type FolderCreate struct {
	Name     string  `json:"name" validate:"required,min=3,max=60"`
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
}

type Rename struct {
	Name string `json:"name" validate:"required,min=3,max=255"`
}

type FolderMove struct {
	ParentID *string `json:"parent_id" validate:"omitempty,uuid"`
}

type FileMove struct {
	FolderID *string `json:"folder_id" validate:"omitempty,uuid"`
}

// FileUpload carries the metadata and content of an incoming file.
type FileUpload struct {
	Name     string
	MimeType string
	Size     int64
	FolderID *string
	Content  io.Reader
}

type ShareCreate struct {
	ResourceType models.ResourceType `json:"resource_type" validate:"required,oneof=file folder"`
	ResourceID   string              `json:"resource_id" validate:"required,uuid"`
	Email        string              `json:"email" validate:"required,email"`
	Role         models.Role         `json:"role" validate:"required,oneof=viewer editor"`
}

type ShareRoleUpdate struct {
	Role models.Role `json:"role" validate:"required,oneof=viewer editor"`
}

type LinkCreate struct {
	ResourceType models.ResourceType `json:"resource_type" validate:"required,oneof=file folder"`
	ResourceID   string              `json:"resource_id" validate:"required,uuid"`
	ExpiresAt    *time.Time          `json:"expires_at"`
	Password     string              `json:"password"`
}

type LinkAccess struct {
	Password string `json:"password"`
}

type StarRequest struct {
	ResourceType models.ResourceType `json:"resource_type" validate:"required,oneof=file folder"`
	ResourceID   string              `json:"resource_id" validate:"required,uuid"`
}

type SearchQuery struct {
	Query string              `json:"q"`
	Type  models.ResourceType `json:"type" validate:"omitempty,oneof=file folder"`
	Sort  string              `json:"sort" validate:"omitempty,oneof=name created_at updated_at"`
	Order string              `json:"order" validate:"omitempty,oneof=asc desc"`
}

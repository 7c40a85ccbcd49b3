package schemas

import (
	"time"

	"github.com/concavehq/concave/pkg/models"
)

type FolderOut struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	OwnerID   int64      `json:"owner_id"`
	ParentID  *string    `json:"parent_id"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type FileOut struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	OwnerID   int64      `json:"owner_id"`
	FolderID  *string    `json:"folder_id"`
	MimeType  string     `json:"mime_type"`
	Size      int64      `json:"size_bytes"`
	IsDeleted bool       `json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// PathEntry is one breadcrumb segment; the drive root has a nil id.
type PathEntry struct {
	ID   *string `json:"id"`
	Name string  `json:"name"`
}

type FolderDetail struct {
	Folder   FolderOut   `json:"folder"`
	Children []FolderOut `json:"children"`
	Path     []PathEntry `json:"path"`
}

type ShareOut struct {
	ID           string              `json:"id"`
	ResourceType models.ResourceType `json:"resource_type"`
	ResourceID   string              `json:"resource_id"`
	UserID       int64               `json:"user_id"`
	UserEmail    string              `json:"user_email,omitempty"`
	Role         models.Role         `json:"role"`
	CreatedAt    time.Time           `json:"created_at"`
}

type LinkOut struct {
	Token        string              `json:"token"`
	ResourceType models.ResourceType `json:"resource_type"`
	ResourceID   string              `json:"resource_id"`
	ExpiresAt    *time.Time          `json:"expires_at,omitempty"`
	Protected    bool                `json:"protected"`
	CreatedAt    time.Time           `json:"created_at"`
}

// LinkFileEntry is a child file exposed through a public folder link. URL is
// empty when signing that file failed.
type LinkFileEntry struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size_bytes"`
	URL      string `json:"url,omitempty"`
}

type LinkFolderEntry struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// LinkContent is what an anonymous visitor sees behind a link. For file
// links URL is set; for folder links the direct children are listed one
// level deep.
type LinkContent struct {
	Type    models.ResourceType `json:"type"`
	Name    string              `json:"name"`
	URL     string              `json:"url,omitempty"`
	Folders []LinkFolderEntry   `json:"folders,omitempty"`
	Files   []LinkFileEntry     `json:"files,omitempty"`
}

type DownloadOut struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

type TrashOut struct {
	Folders []FolderOut `json:"folders"`
	Files   []FileOut   `json:"files"`
}

type SearchOut struct {
	Folders []FolderOut `json:"folders"`
	Files   []FileOut   `json:"files"`
}

type StarOut struct {
	ResourceType models.ResourceType `json:"resource_type"`
	ResourceID   string              `json:"resource_id"`
	CreatedAt    time.Time           `json:"created_at"`
}

type UserOut struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

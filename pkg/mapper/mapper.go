package mapper

import (
	"github.com/concavehq/concave/pkg/models"
	"github.com/concavehq/concave/pkg/schemas"
)

func ToFolderOut(folder models.Folder) *schemas.FolderOut {
	return &schemas.FolderOut{
		ID:        folder.ID,
		Name:      folder.Name,
		OwnerID:   folder.OwnerID,
		ParentID:  folder.ParentID,
		IsDeleted: folder.IsDeleted,
		DeletedAt: folder.DeletedAt,
		CreatedAt: folder.CreatedAt,
		UpdatedAt: folder.UpdatedAt,
	}
}

func ToFolderOuts(folders []models.Folder) []schemas.FolderOut {
	out := make([]schemas.FolderOut, 0, len(folders))
	for _, folder := range folders {
		out = append(out, *ToFolderOut(folder))
	}
	return out
}

func ToFileOut(file models.File) *schemas.FileOut {
	return &schemas.FileOut{
		ID:        file.ID,
		Name:      file.Name,
		OwnerID:   file.OwnerID,
		FolderID:  file.FolderID,
		MimeType:  file.MimeType,
		Size:      file.Size,
		IsDeleted: file.IsDeleted,
		DeletedAt: file.DeletedAt,
		CreatedAt: file.CreatedAt,
		UpdatedAt: file.UpdatedAt,
	}
}

func ToFileOuts(files []models.File) []schemas.FileOut {
	out := make([]schemas.FileOut, 0, len(files))
	for _, file := range files {
		out = append(out, *ToFileOut(file))
	}
	return out
}

func ToShareOut(share models.Share, email string) *schemas.ShareOut {
	return &schemas.ShareOut{
		ID:           share.ID,
		ResourceType: share.ResourceType,
		ResourceID:   share.ResourceID,
		UserID:       share.UserID,
		UserEmail:    email,
		Role:         share.Role,
		CreatedAt:    share.CreatedAt,
	}
}

func ToLinkOut(link models.PublicLink) *schemas.LinkOut {
	return &schemas.LinkOut{
		Token:        link.Token,
		ResourceType: link.ResourceType,
		ResourceID:   link.ResourceID,
		ExpiresAt:    link.ExpiresAt,
		Protected:    link.PasswordHash != nil,
		CreatedAt:    link.CreatedAt,
	}
}

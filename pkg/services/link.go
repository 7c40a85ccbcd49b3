package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"net/http"
	"time"

	"github.com/concavehq/concave/internal/cache"
	"github.com/concavehq/concave/internal/database"
	"github.com/concavehq/concave/pkg/mapper"
	"github.com/concavehq/concave/pkg/models"
	"github.com/concavehq/concave/pkg/schemas"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrLinkNotFound    = errors.New("link not found")
	ErrLinkExpired     = errors.New("link has expired")
	ErrInvalidPassword = errors.New("invalid password")
)

const (
	// fileLinkTTL bounds a direct file link URL; folder links sign child
	// files with the longer TTL since the listing is browsed, not fetched
	// immediately.
	fileLinkTTL   = time.Minute
	folderLinkTTL = time.Hour

	linkCacheTTL = 5 * time.Minute
)

// CreatePublicLink mints a capability token for a resource. The creator
// needs edit-level access; after that the token alone grants access.
func (a *ApiService) CreatePublicLink(ctx context.Context, userID int64, req *schemas.LinkCreate) (*schemas.LinkOut, error) {
	if err := validate.Struct(req); err != nil {
		return nil, &apiError{err: err, code: http.StatusBadRequest}
	}

	if _, err := a.resolveAccess(ctx, userID, req.ResourceType, req.ResourceID, true); err != nil {
		return nil, err
	}

	var passwordHash *string
	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, &apiError{err: err}
		}
		s := string(hashed)
		passwordHash = &s
	}

	link := models.PublicLink{
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		ExpiresAt:    req.ExpiresAt,
		PasswordHash: passwordHash,
	}

	// token collisions are effectively impossible, but an insert conflict
	// is cheap to retry
	for attempt := 0; ; attempt++ {
		link.Token = newLinkToken()
		err := a.db.WithContext(ctx).Create(&link).Error
		if err == nil {
			break
		}
		if database.IsKeyConflictErr(err) && attempt < 2 {
			continue
		}
		return nil, &apiError{err: err}
	}

	return mapper.ToLinkOut(link), nil
}

// AccessPublicLink resolves a token into the shared content. No principal
// is involved: the token is the capability, optionally guarded by a
// password and an expiry.
func (a *ApiService) AccessPublicLink(ctx context.Context, token, password string) (*schemas.LinkContent, error) {
	link, err := a.linkByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now().UTC()) {
		return nil, &apiError{err: ErrLinkExpired, code: http.StatusForbidden}
	}

	if link.PasswordHash != nil {
		if err := bcrypt.CompareHashAndPassword([]byte(*link.PasswordHash), []byte(password)); err != nil {
			return nil, &apiError{err: ErrInvalidPassword, code: http.StatusForbidden}
		}
	}

	switch link.ResourceType {
	case models.ResourceFile:
		return a.linkFileContent(ctx, link)
	case models.ResourceFolder:
		return a.linkFolderContent(ctx, link)
	default:
		return nil, &apiError{err: ErrLinkNotFound, code: http.StatusNotFound}
	}
}

// RevokePublicLink deletes a link. The caller needs edit-level access on
// the linked resource.
func (a *ApiService) RevokePublicLink(ctx context.Context, userID int64, token string) error {
	link, err := a.linkByToken(ctx, token)
	if err != nil {
		return err
	}

	if _, err := a.resolveAccess(ctx, userID, link.ResourceType, link.ResourceID, true); err != nil {
		return err
	}

	if err := a.db.WithContext(ctx).Delete(&models.PublicLink{}, "token = ?", token).Error; err != nil {
		return &apiError{err: err}
	}
	a.cache.Delete(cache.KeyLink(token))
	return nil
}

// ListPublicLinks returns the links minted for a resource, for owners and
// editors managing what they have shared.
func (a *ApiService) ListPublicLinks(ctx context.Context, userID int64, resourceType models.ResourceType, resourceID string) ([]schemas.LinkOut, error) {
	if _, err := a.resolveAccess(ctx, userID, resourceType, resourceID, true); err != nil {
		return nil, err
	}

	var links []models.PublicLink
	if err := a.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Find(&links).Error; err != nil {
		return nil, &apiError{err: err}
	}

	out := make([]schemas.LinkOut, 0, len(links))
	for _, link := range links {
		out = append(out, *mapper.ToLinkOut(link))
	}
	return out, nil
}

func (a *ApiService) linkFileContent(ctx context.Context, link *models.PublicLink) (*schemas.LinkContent, error) {
	var files []models.File
	if err := a.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", link.ResourceID, false).
		Limit(1).Find(&files).Error; err != nil {
		return nil, &apiError{err: err}
	}
	if len(files) == 0 {
		return nil, &apiError{err: database.ErrNotFound, code: http.StatusNotFound}
	}

	url, err := a.blob.SignedURL(ctx, files[0].StoragePath, fileLinkTTL)
	if err != nil {
		return nil, &apiError{err: err}
	}

	return &schemas.LinkContent{
		Type: models.ResourceFile,
		Name: files[0].Name,
		URL:  url,
	}, nil
}

// linkFolderContent lists the direct children of a shared folder, one level
// only: nested subfolders show as bare placeholders, which bounds both the
// exposure of a single link and the signing cost for large trees.
func (a *ApiService) linkFolderContent(ctx context.Context, link *models.PublicLink) (*schemas.LinkContent, error) {
	var folders []models.Folder
	if err := a.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", link.ResourceID, false).
		Limit(1).Find(&folders).Error; err != nil {
		return nil, &apiError{err: err}
	}
	if len(folders) == 0 {
		return nil, &apiError{err: database.ErrNotFound, code: http.StatusNotFound}
	}
	folder := folders[0]

	var childFolders []models.Folder
	if err := a.db.WithContext(ctx).
		Where("parent_id = ? AND is_deleted = ?", folder.ID, false).
		Order("name asc").Find(&childFolders).Error; err != nil {
		return nil, &apiError{err: err}
	}

	var childFiles []models.File
	if err := a.db.WithContext(ctx).
		Where("folder_id = ? AND is_deleted = ?", folder.ID, false).
		Order("name asc").Find(&childFiles).Error; err != nil {
		return nil, &apiError{err: err}
	}

	paths := make([]string, 0, len(childFiles))
	for _, f := range childFiles {
		if f.StoragePath != "" {
			paths = append(paths, f.StoragePath)
		}
	}
	urls, err := a.blob.SignedURLs(ctx, paths, folderLinkTTL)
	if err != nil {
		return nil, &apiError{err: err}
	}

	content := &schemas.LinkContent{
		Type:    models.ResourceFolder,
		Name:    folder.Name,
		Folders: make([]schemas.LinkFolderEntry, 0, len(childFolders)),
		Files:   make([]schemas.LinkFileEntry, 0, len(childFiles)),
	}
	for _, f := range childFolders {
		content.Folders = append(content.Folders, schemas.LinkFolderEntry{ID: f.ID, Name: f.Name})
	}
	for _, f := range childFiles {
		content.Files = append(content.Files, schemas.LinkFileEntry{
			ID:       f.ID,
			Name:     f.Name,
			MimeType: f.MimeType,
			Size:     f.Size,
			URL:      urls[f.StoragePath],
		})
	}
	return content, nil
}

func (a *ApiService) linkByToken(ctx context.Context, token string) (*models.PublicLink, error) {
	link, err := cache.Fetch(a.cache, cache.KeyLink(token), linkCacheTTL, func() (*models.PublicLink, error) {
		var links []models.PublicLink
		if err := a.db.WithContext(ctx).Where("token = ?", token).
			Limit(1).Find(&links).Error; err != nil {
			return nil, err
		}
		if len(links) == 0 {
			return nil, database.ErrNotFound
		}
		return &links[0], nil
	})
	if err != nil {
		if database.IsRecordNotFoundErr(err) {
			return nil, &apiError{err: ErrLinkNotFound, code: http.StatusNotFound}
		}
		return nil, &apiError{err: err}
	}
	return link, nil
}

func newLinkToken() string {
	buf := make([]byte, 32)
	rand.Read(buf)
	return hex.EncodeToString(buf)
}

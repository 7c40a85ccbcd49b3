package services

import (
	"context"
	"errors"
	"net/http"

	"github.com/concavehq/concave/pkg/models"
)

var ErrAccessDenied = errors.New("access denied")

// resolveAccess decides the effective role of a principal on a resource.
// Ownership is checked first and short-circuits, so a stale or conflicting
// share row can never override true ownership. A missing resource and a
// missing grant both come back as denied, which keeps resource existence
// from leaking to non-owners.
func (a *ApiService) resolveAccess(ctx context.Context, userID int64, resourceType models.ResourceType, resourceID string, requireEdit bool) (models.Role, error) {
	ownerID, found, err := a.resourceOwner(ctx, resourceType, resourceID)
	if err != nil {
		return "", &apiError{err: err}
	}

	if found && ownerID == userID {
		return models.RoleOwner, nil
	}

	var shares []models.Share
	if err := a.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ? AND user_id = ?", resourceType, resourceID, userID).
		Limit(1).Find(&shares).Error; err != nil {
		return "", &apiError{err: err}
	}

	if len(shares) == 0 {
		return "", &apiError{err: ErrAccessDenied, code: http.StatusForbidden}
	}

	role := shares[0].Role
	if requireEdit && role != models.RoleEditor {
		return "", &apiError{err: ErrAccessDenied, code: http.StatusForbidden}
	}
	return role, nil
}

// resourceOwner looks up the owner of a file or folder through the typed
// accessor for each variant.
func (a *ApiService) resourceOwner(ctx context.Context, resourceType models.ResourceType, resourceID string) (int64, bool, error) {
	switch resourceType {
	case models.ResourceFolder:
		var folders []models.Folder
		if err := a.db.WithContext(ctx).Select("id", "owner_id").
			Where("id = ?", resourceID).Limit(1).Find(&folders).Error; err != nil {
			return 0, false, err
		}
		if len(folders) == 0 {
			return 0, false, nil
		}
		return folders[0].OwnerID, true, nil
	case models.ResourceFile:
		var files []models.File
		if err := a.db.WithContext(ctx).Select("id", "owner_id").
			Where("id = ?", resourceID).Limit(1).Find(&files).Error; err != nil {
			return 0, false, err
		}
		if len(files) == 0 {
			return 0, false, nil
		}
		return files[0].OwnerID, true, nil
	default:
		return 0, false, nil
	}
}

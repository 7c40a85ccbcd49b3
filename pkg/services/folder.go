package services

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/concavehq/concave/internal/database"
	"github.com/concavehq/concave/pkg/mapper"
	"github.com/concavehq/concave/pkg/models"
	"github.com/concavehq/concave/pkg/schemas"
	"github.com/google/uuid"
)

var ErrInvalidDestination = errors.New("invalid destination folder")

const rootFolderName = "My Drive"

func (a *ApiService) CreateFolder(ctx context.Context, userID int64, req *schemas.FolderCreate) (*schemas.FolderOut, error) {
	if err := validate.Struct(req); err != nil {
		return nil, &apiError{err: err, code: http.StatusBadRequest}
	}

	if req.ParentID != nil {
		if err := a.checkDestination(ctx, userID, *req.ParentID); err != nil {
			return nil, err
		}
	}

	folder := models.Folder{
		ID:       uuid.New().String(),
		Name:     req.Name,
		OwnerID:  userID,
		ParentID: req.ParentID,
	}
	if err := a.db.WithContext(ctx).Create(&folder).Error; err != nil {
		return nil, &apiError{err: err}
	}
	return mapper.ToFolderOut(folder), nil
}

// ListFolders returns the principal's live folders directly under parentID,
// or under the root when parentID is nil.
func (a *ApiService) ListFolders(ctx context.Context, userID int64, parentID *string) ([]schemas.FolderOut, error) {
	query := a.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", userID, false)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var folders []models.Folder
	if err := query.Order("created_at asc").Find(&folders).Error; err != nil {
		return nil, &apiError{err: err}
	}
	return mapper.ToFolderOuts(folders), nil
}

// GetFolder returns a folder with its direct child folders and the
// breadcrumb path up to the drive root. Any resolved role may read it.
func (a *ApiService) GetFolder(ctx context.Context, userID int64, folderID string) (*schemas.FolderDetail, error) {
	folder, err := a.folderByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if folder.IsDeleted {
		return nil, &apiError{err: database.ErrNotFound, code: http.StatusNotFound}
	}

	if _, err := a.resolveAccess(ctx, userID, models.ResourceFolder, folderID, false); err != nil {
		return nil, err
	}

	var children []models.Folder
	if err := a.db.WithContext(ctx).
		Where("parent_id = ? AND is_deleted = ?", folderID, false).
		Order("name asc").Find(&children).Error; err != nil {
		return nil, &apiError{err: err}
	}

	path := []schemas.PathEntry{{ID: &folder.ID, Name: folder.Name}}
	parentID := folder.ParentID
	for parentID != nil {
		var parents []models.Folder
		if err := a.db.WithContext(ctx).Where("id = ?", *parentID).
			Limit(1).Find(&parents).Error; err != nil {
			return nil, &apiError{err: err}
		}
		if len(parents) == 0 {
			break
		}
		parent := parents[0]
		path = append([]schemas.PathEntry{{ID: &parent.ID, Name: parent.Name}}, path...)
		parentID = parent.ParentID
	}
	path = append([]schemas.PathEntry{{Name: rootFolderName}}, path...)

	return &schemas.FolderDetail{
		Folder:   *mapper.ToFolderOut(*folder),
		Children: mapper.ToFolderOuts(children),
		Path:     path,
	}, nil
}

func (a *ApiService) RenameFolder(ctx context.Context, userID int64, folderID string, req *schemas.Rename) (*schemas.FolderOut, error) {
	if err := validate.Struct(req); err != nil {
		return nil, &apiError{err: err, code: http.StatusBadRequest}
	}

	folder, err := a.folderByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if _, err := a.resolveAccess(ctx, userID, models.ResourceFolder, folderID, true); err != nil {
		return nil, err
	}

	if err := a.db.WithContext(ctx).Model(&models.Folder{}).
		Where("id = ? AND is_deleted = ?", folderID, false).
		Updates(map[string]interface{}{"name": req.Name, "updated_at": time.Now().UTC()}).Error; err != nil {
		return nil, &apiError{err: err}
	}

	folder.Name = req.Name
	return mapper.ToFolderOut(*folder), nil
}

// MoveFolder reparents a folder. The destination must be a live folder of
// the same owner and must not sit inside the moved folder's own subtree,
// which would disconnect it into a cycle.
func (a *ApiService) MoveFolder(ctx context.Context, userID int64, folderID string, req *schemas.FolderMove) (*schemas.FolderOut, error) {
	if err := validate.Struct(req); err != nil {
		return nil, &apiError{err: err, code: http.StatusBadRequest}
	}

	folder, err := a.folderByID(ctx, folderID)
	if err != nil {
		return nil, err
	}
	if _, err := a.resolveAccess(ctx, userID, models.ResourceFolder, folderID, true); err != nil {
		return nil, err
	}

	if req.ParentID != nil {
		if err := a.checkDestination(ctx, folder.OwnerID, *req.ParentID); err != nil {
			return nil, err
		}

		ids, err := a.descendantFolderIDs(ctx, folderID, folder.OwnerID)
		if err != nil {
			return nil, &apiError{err: err}
		}
		if contains(ids, *req.ParentID) {
			return nil, &apiError{err: ErrInvalidDestination, code: http.StatusBadRequest}
		}
	}

	if err := a.db.WithContext(ctx).Model(&models.Folder{}).
		Where("id = ?", folderID).
		Updates(map[string]interface{}{"parent_id": req.ParentID, "updated_at": time.Now().UTC()}).Error; err != nil {
		return nil, &apiError{err: err}
	}

	folder.ParentID = req.ParentID
	return mapper.ToFolderOut(*folder), nil
}

// checkDestination verifies a prospective parent folder: it must exist, be
// live, and belong to ownerID. A resource tree never spans two owners.
func (a *ApiService) checkDestination(ctx context.Context, ownerID int64, parentID string) error {
	var parents []models.Folder
	if err := a.db.WithContext(ctx).
		Where("id = ? AND owner_id = ? AND is_deleted = ?", parentID, ownerID, false).
		Limit(1).Find(&parents).Error; err != nil {
		return &apiError{err: err}
	}
	if len(parents) == 0 {
		return &apiError{err: ErrInvalidDestination, code: http.StatusBadRequest}
	}
	return nil
}

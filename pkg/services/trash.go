package services

import (
	"context"
	"net/http"
	"time"

	"github.com/concavehq/concave/internal/database"
	"github.com/concavehq/concave/pkg/mapper"
	"github.com/concavehq/concave/pkg/models"
	"github.com/concavehq/concave/pkg/schemas"
	"golang.org/x/sync/errgroup"
)

// TrashFolder soft-deletes a folder together with every descendant folder
// and all files contained anywhere in that subtree. Folders are marked
// before files so a crash in between leaves files individually reachable
// instead of silently dropped. Re-trashing an already trashed subtree is a
// no-op.
func (a *ApiService) TrashFolder(ctx context.Context, userID int64, folderID string) error {
	folder, err := a.folderByID(ctx, folderID)
	if err != nil {
		return err
	}

	if _, err := a.resolveAccess(ctx, userID, models.ResourceFolder, folderID, true); err != nil {
		return err
	}

	ids, err := a.descendantFolderIDs(ctx, folderID, folder.OwnerID)
	if err != nil {
		return &apiError{err: err}
	}

	now := time.Now().UTC()
	patch := map[string]interface{}{"is_deleted": true, "deleted_at": now}

	if err := a.db.WithContext(ctx).Model(&models.Folder{}).
		Where("id IN ? AND owner_id = ? AND is_deleted = ?", ids, folder.OwnerID, false).
		Updates(patch).Error; err != nil {
		return &apiError{err: err}
	}

	if err := a.db.WithContext(ctx).Model(&models.File{}).
		Where("folder_id IN ? AND owner_id = ? AND is_deleted = ?", ids, folder.OwnerID, false).
		Updates(patch).Error; err != nil {
		return &apiError{err: err}
	}

	return nil
}

// RestoreFolder un-deletes the whole previously trashed subtree, even parts
// that were trashed independently: there is no delete generation tracking,
// the most recent restored ancestor wins. The folder and file batches are
// independent and run concurrently.
func (a *ApiService) RestoreFolder(ctx context.Context, userID int64, folderID string) error {
	folder, err := a.folderByID(ctx, folderID)
	if err != nil {
		return err
	}

	if _, err := a.resolveAccess(ctx, userID, models.ResourceFolder, folderID, true); err != nil {
		return err
	}

	ids, err := a.descendantFolderIDs(ctx, folderID, folder.OwnerID)
	if err != nil {
		return &apiError{err: err}
	}

	patch := map[string]interface{}{"is_deleted": false, "deleted_at": nil}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return a.db.WithContext(gctx).Model(&models.Folder{}).
			Where("id IN ? AND owner_id = ? AND is_deleted = ?", ids, folder.OwnerID, true).
			Updates(patch).Error
	})
	g.Go(func() error {
		return a.db.WithContext(gctx).Model(&models.File{}).
			Where("folder_id IN ? AND owner_id = ? AND is_deleted = ?", ids, folder.OwnerID, true).
			Updates(patch).Error
	})
	if err := g.Wait(); err != nil {
		return &apiError{err: err}
	}

	return nil
}

// ListTrash returns every trashed folder and file of the principal.
func (a *ApiService) ListTrash(ctx context.Context, userID int64) (*schemas.TrashOut, error) {
	var folders []models.Folder
	if err := a.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", userID, true).
		Find(&folders).Error; err != nil {
		return nil, &apiError{err: err}
	}

	var files []models.File
	if err := a.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", userID, true).
		Find(&files).Error; err != nil {
		return nil, &apiError{err: err}
	}

	return &schemas.TrashOut{
		Folders: mapper.ToFolderOuts(folders),
		Files:   mapper.ToFileOuts(files),
	}, nil
}

func (a *ApiService) folderByID(ctx context.Context, folderID string) (*models.Folder, error) {
	var folders []models.Folder
	if err := a.db.WithContext(ctx).Where("id = ?", folderID).
		Limit(1).Find(&folders).Error; err != nil {
		return nil, &apiError{err: err}
	}
	if len(folders) == 0 {
		return nil, &apiError{err: database.ErrNotFound, code: http.StatusNotFound}
	}
	return &folders[0], nil
}

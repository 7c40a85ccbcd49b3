package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/concavehq/concave/internal/database"
	"github.com/concavehq/concave/internal/logging"
	"github.com/concavehq/concave/pkg/mapper"
	"github.com/concavehq/concave/pkg/models"
	"github.com/concavehq/concave/pkg/schemas"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const downloadTTL = time.Minute

// UploadFile stores a file in two phases: the metadata row first, then the
// blob. There is no transaction spanning both stores, so a failed upload
// compensates by deleting the row again; a crash in between leaves a row
// without a blob, which the trash purge eventually sweeps.
func (a *ApiService) UploadFile(ctx context.Context, userID int64, upload *schemas.FileUpload) (*schemas.FileOut, error) {
	if upload.Name == "" {
		return nil, &apiError{err: fmt.Errorf("file name required"), code: http.StatusBadRequest}
	}
	if upload.FolderID != nil {
		if err := a.checkDestination(ctx, userID, *upload.FolderID); err != nil {
			return nil, err
		}
	}

	file := models.File{
		ID:       uuid.New().String(),
		Name:     upload.Name,
		OwnerID:  userID,
		FolderID: upload.FolderID,
		MimeType: upload.MimeType,
		Size:     upload.Size,
	}
	if err := a.db.WithContext(ctx).Create(&file).Error; err != nil {
		return nil, &apiError{err: err}
	}

	storagePath := fmt.Sprintf("users/%d/files/%s", userID, file.ID)

	if err := a.blob.Put(ctx, storagePath, upload.Content, upload.Size, upload.MimeType); err != nil {
		if derr := a.db.WithContext(ctx).Delete(&models.File{}, "id = ?", file.ID).Error; derr != nil {
			logging.FromContext(ctx).Error("failed to clean up file row after upload failure",
				zap.String("file_id", file.ID), zap.Error(derr))
		}
		return nil, &apiError{err: err}
	}

	if err := a.db.WithContext(ctx).Model(&models.File{}).
		Where("id = ?", file.ID).
		Update("storage_path", storagePath).Error; err != nil {
		return nil, &apiError{err: err}
	}

	file.StoragePath = storagePath
	return mapper.ToFileOut(file), nil
}

// ListFiles returns the principal's live files directly inside folderID, or
// at the root when folderID is nil.
func (a *ApiService) ListFiles(ctx context.Context, userID int64, folderID *string) ([]schemas.FileOut, error) {
	query := a.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", userID, false)
	if folderID == nil {
		query = query.Where("folder_id IS NULL")
	} else {
		query = query.Where("folder_id = ?", *folderID)
	}

	var files []models.File
	if err := query.Order("created_at asc").Find(&files).Error; err != nil {
		return nil, &apiError{err: err}
	}
	return mapper.ToFileOuts(files), nil
}

// GetDownloadURL resolves read access on the file and mints a short-lived
// signed URL for it. Viewers may download.
func (a *ApiService) GetDownloadURL(ctx context.Context, userID int64, fileID string) (*schemas.DownloadOut, error) {
	file, err := a.fileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if file.IsDeleted || file.StoragePath == "" {
		return nil, &apiError{err: database.ErrNotFound, code: http.StatusNotFound}
	}

	if _, err := a.resolveAccess(ctx, userID, models.ResourceFile, fileID, false); err != nil {
		return nil, err
	}

	url, err := a.blob.SignedURL(ctx, file.StoragePath, downloadTTL)
	if err != nil {
		return nil, &apiError{err: err}
	}
	return &schemas.DownloadOut{Name: file.Name, URL: url}, nil
}

func (a *ApiService) RenameFile(ctx context.Context, userID int64, fileID string, req *schemas.Rename) (*schemas.FileOut, error) {
	if err := validate.Struct(req); err != nil {
		return nil, &apiError{err: err, code: http.StatusBadRequest}
	}

	file, err := a.fileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if _, err := a.resolveAccess(ctx, userID, models.ResourceFile, fileID, true); err != nil {
		return nil, err
	}

	if err := a.db.WithContext(ctx).Model(&models.File{}).
		Where("id = ? AND is_deleted = ?", fileID, false).
		Updates(map[string]interface{}{"name": req.Name, "updated_at": time.Now().UTC()}).Error; err != nil {
		return nil, &apiError{err: err}
	}

	file.Name = req.Name
	return mapper.ToFileOut(*file), nil
}

// MoveFile reparents a file into another live folder of the same owner, or
// to the root when folderID is nil.
func (a *ApiService) MoveFile(ctx context.Context, userID int64, fileID string, req *schemas.FileMove) (*schemas.FileOut, error) {
	if err := validate.Struct(req); err != nil {
		return nil, &apiError{err: err, code: http.StatusBadRequest}
	}

	file, err := a.fileByID(ctx, fileID)
	if err != nil {
		return nil, err
	}
	if _, err := a.resolveAccess(ctx, userID, models.ResourceFile, fileID, true); err != nil {
		return nil, err
	}

	if req.FolderID != nil {
		if err := a.checkDestination(ctx, file.OwnerID, *req.FolderID); err != nil {
			return nil, err
		}
	}

	if err := a.db.WithContext(ctx).Model(&models.File{}).
		Where("id = ?", fileID).
		Updates(map[string]interface{}{"folder_id": req.FolderID, "updated_at": time.Now().UTC()}).Error; err != nil {
		return nil, &apiError{err: err}
	}

	file.FolderID = req.FolderID
	return mapper.ToFileOut(*file), nil
}

// TrashFile soft-deletes a single file. Already trashed files are a no-op.
func (a *ApiService) TrashFile(ctx context.Context, userID int64, fileID string) error {
	if _, err := a.fileByID(ctx, fileID); err != nil {
		return err
	}
	if _, err := a.resolveAccess(ctx, userID, models.ResourceFile, fileID, true); err != nil {
		return err
	}

	now := time.Now().UTC()
	if err := a.db.WithContext(ctx).Model(&models.File{}).
		Where("id = ? AND is_deleted = ?", fileID, false).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": now}).Error; err != nil {
		return &apiError{err: err}
	}
	return nil
}

// RestoreFile clears the soft-delete mark on a single file.
func (a *ApiService) RestoreFile(ctx context.Context, userID int64, fileID string) error {
	if _, err := a.fileByID(ctx, fileID); err != nil {
		return err
	}
	if _, err := a.resolveAccess(ctx, userID, models.ResourceFile, fileID, true); err != nil {
		return err
	}

	if err := a.db.WithContext(ctx).Model(&models.File{}).
		Where("id = ? AND is_deleted = ?", fileID, true).
		Updates(map[string]interface{}{"is_deleted": false, "deleted_at": nil}).Error; err != nil {
		return &apiError{err: err}
	}
	return nil
}

func (a *ApiService) fileByID(ctx context.Context, fileID string) (*models.File, error) {
	var files []models.File
	if err := a.db.WithContext(ctx).Where("id = ?", fileID).
		Limit(1).Find(&files).Error; err != nil {
		return nil, &apiError{err: err}
	}
	if len(files) == 0 {
		return nil, &apiError{err: database.ErrNotFound, code: http.StatusNotFound}
	}
	return &files[0], nil
}

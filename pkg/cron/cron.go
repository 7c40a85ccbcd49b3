package cron

import (
	"context"
	"time"

	"github.com/concavehq/concave/internal/blob"
	"github.com/concavehq/concave/internal/config"
	"github.com/concavehq/concave/internal/logging"
	"github.com/concavehq/concave/pkg/models"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CronService struct {
	db     *gorm.DB
	store  blob.Store
	cnf    *config.ServerCmdConfig
	logger *zap.SugaredLogger
}

func StartCronJobs(ctx context.Context, db *gorm.DB, store blob.Store, cnf *config.ServerCmdConfig) {
	if !cnf.CronJobs.Enable {
		return
	}

	svc := CronService{db: db, store: store, cnf: cnf, logger: logging.DefaultLogger().Sugar()}

	scheduler := cron.New()
	scheduler.Schedule(cron.Every(cnf.CronJobs.TrashPurgeInterval), cron.FuncJob(func() {
		svc.PurgeTrash(ctx)
	}))
	scheduler.Start()

	go func() {
		<-ctx.Done()
		scheduler.Stop()
	}()
}

// PurgeTrash permanently removes resources that have been in the trash
// longer than the configured retention. Blobs go first; a file row is
// kept for the next run when its blob could not be deleted.
func (c *CronService) PurgeTrash(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-c.cnf.CronJobs.TrashRetention)

	var files []models.File
	if err := c.db.Where("is_deleted = ? AND deleted_at < ?", true, cutoff).
		Find(&files).Error; err != nil {
		c.logger.Errorw("trash purge: list files", "err", err)
		return
	}

	purged := []string{}
	for _, file := range files {
		if file.StoragePath != "" {
			if err := c.store.Delete(ctx, file.StoragePath); err != nil {
				c.logger.Errorw("trash purge: delete blob", "file", file.ID, "err", err)
				continue
			}
		}
		purged = append(purged, file.ID)
	}
	if len(purged) > 0 {
		if err := c.db.Where("id IN ?", purged).Delete(&models.File{}).Error; err != nil {
			c.logger.Errorw("trash purge: delete file rows", "err", err)
			return
		}
		c.cleanupResourceRows(models.ResourceFile, purged)
	}

	var folderIDs []string
	if err := c.db.Model(&models.Folder{}).
		Where("is_deleted = ? AND deleted_at < ?", true, cutoff).
		Pluck("id", &folderIDs).Error; err != nil {
		c.logger.Errorw("trash purge: list folders", "err", err)
		return
	}
	if len(folderIDs) > 0 {
		if err := c.db.Where("id IN ?", folderIDs).Delete(&models.Folder{}).Error; err != nil {
			c.logger.Errorw("trash purge: delete folder rows", "err", err)
			return
		}
		c.cleanupResourceRows(models.ResourceFolder, folderIDs)
	}

	if len(purged) > 0 || len(folderIDs) > 0 {
		c.logger.Infow("trash purge complete", "files", len(purged), "folders", len(folderIDs))
	}
}

func (c *CronService) cleanupResourceRows(resourceType models.ResourceType, ids []string) {
	if err := c.db.Where("resource_type = ? AND resource_id IN ?", resourceType, ids).
		Delete(&models.Share{}).Error; err != nil {
		c.logger.Errorw("trash purge: delete shares", "err", err)
	}
	if err := c.db.Where("resource_type = ? AND resource_id IN ?", resourceType, ids).
		Delete(&models.PublicLink{}).Error; err != nil {
		c.logger.Errorw("trash purge: delete links", "err", err)
	}
	if err := c.db.Where("resource_type = ? AND resource_id IN ?", resourceType, ids).
		Delete(&models.Star{}).Error; err != nil {
		c.logger.Errorw("trash purge: delete stars", "err", err)
	}
}

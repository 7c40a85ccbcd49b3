package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/concavehq/concave/pkg/mapper"
	"github.com/concavehq/concave/pkg/models"
	"github.com/concavehq/concave/pkg/schemas"
)

const recentLimit = 10

// Search matches the principal's live files and folders by name, case
// insensitive substring.
func (a *ApiService) Search(ctx context.Context, userID int64, req *schemas.SearchQuery) (*schemas.SearchOut, error) {
	if err := validate.Struct(req); err != nil {
		return nil, &apiError{err: err, code: http.StatusBadRequest}
	}

	sort := req.Sort
	if sort == "" {
		sort = "created_at"
	}
	order := req.Order
	if order == "" {
		order = "desc"
	}
	pattern := "%" + strings.ToLower(req.Query) + "%"

	out := &schemas.SearchOut{}

	if req.Type == "" || req.Type == models.ResourceFile {
		var files []models.File
		if err := a.db.WithContext(ctx).
			Where("owner_id = ? AND is_deleted = ? AND LOWER(name) LIKE ?", userID, false, pattern).
			Order(sort + " " + order).Find(&files).Error; err != nil {
			return nil, &apiError{err: err}
		}
		out.Files = mapper.ToFileOuts(files)
	}

	if req.Type == "" || req.Type == models.ResourceFolder {
		var folders []models.Folder
		if err := a.db.WithContext(ctx).
			Where("owner_id = ? AND is_deleted = ? AND LOWER(name) LIKE ?", userID, false, pattern).
			Order(sort + " " + order).Find(&folders).Error; err != nil {
			return nil, &apiError{err: err}
		}
		out.Folders = mapper.ToFolderOuts(folders)
	}

	return out, nil
}

// Recent returns the principal's most recently touched live files.
func (a *ApiService) Recent(ctx context.Context, userID int64) ([]schemas.FileOut, error) {
	var files []models.File
	if err := a.db.WithContext(ctx).
		Where("owner_id = ? AND is_deleted = ?", userID, false).
		Order("updated_at desc").Limit(recentLimit).Find(&files).Error; err != nil {
		return nil, &apiError{err: err}
	}
	return mapper.ToFileOuts(files), nil
}

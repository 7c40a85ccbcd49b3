package services

import (
	"context"
	"net/http"

	"github.com/concavehq/concave/pkg/models"
	"github.com/concavehq/concave/pkg/schemas"
	"gorm.io/gorm/clause"
)

// StarResource marks a resource for the principal. Anyone who can currently
// see a resource may star it; starring twice is a no-op.
func (a *ApiService) StarResource(ctx context.Context, userID int64, req *schemas.StarRequest) error {
	if err := validate.Struct(req); err != nil {
		return &apiError{err: err, code: http.StatusBadRequest}
	}

	if _, err := a.resolveAccess(ctx, userID, req.ResourceType, req.ResourceID, false); err != nil {
		return err
	}

	star := models.Star{
		UserID:       userID,
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
	}
	if err := a.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).
		Create(&star).Error; err != nil {
		return &apiError{err: err}
	}
	return nil
}

func (a *ApiService) UnstarResource(ctx context.Context, userID int64, req *schemas.StarRequest) error {
	if err := validate.Struct(req); err != nil {
		return &apiError{err: err, code: http.StatusBadRequest}
	}

	if err := a.db.WithContext(ctx).
		Delete(&models.Star{}, "user_id = ? AND resource_type = ? AND resource_id = ?",
			userID, req.ResourceType, req.ResourceID).Error; err != nil {
		return &apiError{err: err}
	}
	return nil
}

func (a *ApiService) ListStarred(ctx context.Context, userID int64) ([]schemas.StarOut, error) {
	var stars []models.Star
	if err := a.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").Find(&stars).Error; err != nil {
		return nil, &apiError{err: err}
	}

	out := make([]schemas.StarOut, 0, len(stars))
	for _, star := range stars {
		out = append(out, schemas.StarOut{
			ResourceType: star.ResourceType,
			ResourceID:   star.ResourceID,
			CreatedAt:    star.CreatedAt,
		})
	}
	return out, nil
}

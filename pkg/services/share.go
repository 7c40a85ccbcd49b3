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

var (
	ErrShareNotFound = errors.New("share not found")
	ErrAlreadyShared = errors.New("user already has access")
	ErrSelfShare     = errors.New("cannot share with yourself")
	ErrUserNotFound  = errors.New("user not found")
)

// CreateShare invites a user, resolved by email, as a collaborator on a
// resource. The inviter needs edit-level access; the owner cannot be
// invited and a user holds at most one role per resource.
func (a *ApiService) CreateShare(ctx context.Context, userID int64, req *schemas.ShareCreate) (*schemas.ShareOut, error) {
	if err := validate.Struct(req); err != nil {
		return nil, &apiError{err: err, code: http.StatusBadRequest}
	}

	if _, err := a.resolveAccess(ctx, userID, req.ResourceType, req.ResourceID, true); err != nil {
		return nil, err
	}

	invitee, err := a.identity.FindByEmail(ctx, req.Email)
	if err != nil {
		return nil, &apiError{err: err}
	}
	if invitee == nil {
		return nil, &apiError{err: ErrUserNotFound, code: http.StatusNotFound}
	}

	ownerID, _, err := a.resourceOwner(ctx, req.ResourceType, req.ResourceID)
	if err != nil {
		return nil, &apiError{err: err}
	}
	if invitee.ID == ownerID {
		return nil, &apiError{err: ErrSelfShare, code: http.StatusBadRequest}
	}

	var existing []models.Share
	if err := a.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ? AND user_id = ?", req.ResourceType, req.ResourceID, invitee.ID).
		Limit(1).Find(&existing).Error; err != nil {
		return nil, &apiError{err: err}
	}
	if len(existing) > 0 {
		return nil, &apiError{err: ErrAlreadyShared, code: http.StatusBadRequest}
	}

	share := models.Share{
		ID:           uuid.New().String(),
		ResourceType: req.ResourceType,
		ResourceID:   req.ResourceID,
		UserID:       invitee.ID,
		Role:         req.Role,
		OwnerID:      ownerID,
	}
	if err := a.db.WithContext(ctx).Create(&share).Error; err != nil {
		if database.IsKeyConflictErr(err) {
			return nil, &apiError{err: ErrAlreadyShared, code: http.StatusBadRequest}
		}
		return nil, &apiError{err: err}
	}

	return mapper.ToShareOut(share, invitee.Email), nil
}

// UpdateShareRole changes a grant's role. Only the resource owner recorded
// on the grant may do this; an editor cannot reassign other collaborators.
func (a *ApiService) UpdateShareRole(ctx context.Context, userID int64, shareID string, req *schemas.ShareRoleUpdate) error {
	if err := validate.Struct(req); err != nil {
		return &apiError{err: err, code: http.StatusBadRequest}
	}

	share, err := a.shareByID(ctx, shareID)
	if err != nil {
		return err
	}
	if share.OwnerID != userID {
		return &apiError{err: ErrAccessDenied, code: http.StatusForbidden}
	}

	if err := a.db.WithContext(ctx).Model(&models.Share{}).
		Where("id = ?", shareID).
		Updates(map[string]interface{}{"role": req.Role, "updated_at": time.Now().UTC()}).Error; err != nil {
		return &apiError{err: err}
	}
	return nil
}

// RevokeShare removes a grant. Only the resource owner recorded on the
// grant may revoke it.
func (a *ApiService) RevokeShare(ctx context.Context, userID int64, shareID string) error {
	share, err := a.shareByID(ctx, shareID)
	if err != nil {
		return err
	}
	if share.OwnerID != userID {
		return &apiError{err: ErrAccessDenied, code: http.StatusForbidden}
	}

	if err := a.db.WithContext(ctx).Delete(&models.Share{}, "id = ?", shareID).Error; err != nil {
		return &apiError{err: err}
	}
	return nil
}

// LeaveShare lets a collaborator drop their own access. The delete is
// filtered on both the share id and the calling user so nobody can remove
// someone else's grant by guessing ids.
func (a *ApiService) LeaveShare(ctx context.Context, userID int64, shareID string) error {
	res := a.db.WithContext(ctx).Delete(&models.Share{}, "id = ? AND user_id = ?", shareID, userID)
	if res.Error != nil {
		return &apiError{err: res.Error}
	}
	if res.RowsAffected == 0 {
		return &apiError{err: ErrShareNotFound, code: http.StatusNotFound}
	}
	return nil
}

// ListShares returns the grants on a resource, enriched with each grantee's
// email from the identity directory.
func (a *ApiService) ListShares(ctx context.Context, resourceType models.ResourceType, resourceID string) ([]schemas.ShareOut, error) {
	var shares []models.Share
	if err := a.db.WithContext(ctx).
		Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Find(&shares).Error; err != nil {
		return nil, &apiError{err: err}
	}

	ids := make([]int64, 0, len(shares))
	for _, share := range shares {
		ids = append(ids, share.UserID)
	}
	users, err := a.identity.FindByIDs(ctx, ids)
	if err != nil {
		return nil, &apiError{err: err}
	}
	emails := make(map[int64]string, len(users))
	for _, user := range users {
		emails[user.ID] = user.Email
	}

	out := make([]schemas.ShareOut, 0, len(shares))
	for _, share := range shares {
		out = append(out, *mapper.ToShareOut(share, emails[share.UserID]))
	}
	return out, nil
}

func (a *ApiService) shareByID(ctx context.Context, shareID string) (*models.Share, error) {
	var shares []models.Share
	if err := a.db.WithContext(ctx).Where("id = ?", shareID).
		Limit(1).Find(&shares).Error; err != nil {
		return nil, &apiError{err: err}
	}
	if len(shares) == 0 {
		return nil, &apiError{err: ErrShareNotFound, code: http.StatusNotFound}
	}
	return &shares[0], nil
}

package services

import (
	"context"
	"net/http"
	"testing"

	"github.com/concavehq/concave/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AccessSuite struct {
	ServiceSuite
}

func TestAccessSuite(t *testing.T) {
	suite.Run(t, new(AccessSuite))
}

func (s *AccessSuite) TestOwnerResolvesOwner() {
	owner := s.newUser(1, "owner@example.com")
	folder := s.newFolder(owner.ID, "docs", nil)

	role, err := s.srv.resolveAccess(context.Background(), owner.ID, models.ResourceFolder, folder.ID, false)
	s.NoError(err)
	s.Equal(models.RoleOwner, role)
}

func (s *AccessSuite) TestOwnerBeatsConflictingShare() {
	owner := s.newUser(1, "owner@example.com")
	file := s.newFile(owner.ID, "notes.txt", nil)
	// a grant for the owner should never demote true ownership
	s.newShare(models.ResourceFile, file.ID, owner.ID, models.RoleViewer, owner.ID)

	role, err := s.srv.resolveAccess(context.Background(), owner.ID, models.ResourceFile, file.ID, true)
	s.NoError(err)
	s.Equal(models.RoleOwner, role)
}

func (s *AccessSuite) TestSharedRoleResolves() {
	owner := s.newUser(1, "owner@example.com")
	viewer := s.newUser(2, "viewer@example.com")
	editor := s.newUser(3, "editor@example.com")
	folder := s.newFolder(owner.ID, "shared", nil)
	s.newShare(models.ResourceFolder, folder.ID, viewer.ID, models.RoleViewer, owner.ID)
	s.newShare(models.ResourceFolder, folder.ID, editor.ID, models.RoleEditor, owner.ID)

	role, err := s.srv.resolveAccess(context.Background(), viewer.ID, models.ResourceFolder, folder.ID, false)
	s.NoError(err)
	s.Equal(models.RoleViewer, role)

	role, err = s.srv.resolveAccess(context.Background(), editor.ID, models.ResourceFolder, folder.ID, true)
	s.NoError(err)
	s.Equal(models.RoleEditor, role)
}

func (s *AccessSuite) TestViewerDeniedEdit() {
	owner := s.newUser(1, "owner@example.com")
	viewer := s.newUser(2, "viewer@example.com")
	file := s.newFile(owner.ID, "notes.txt", nil)
	s.newShare(models.ResourceFile, file.ID, viewer.ID, models.RoleViewer, owner.ID)

	_, err := s.srv.resolveAccess(context.Background(), viewer.ID, models.ResourceFile, file.ID, true)
	s.ErrorIs(err, ErrAccessDenied)
	s.Equal(http.StatusForbidden, Code(err))
}

func (s *AccessSuite) TestStrangerDenied() {
	owner := s.newUser(1, "owner@example.com")
	stranger := s.newUser(2, "stranger@example.com")
	folder := s.newFolder(owner.ID, "private", nil)

	_, err := s.srv.resolveAccess(context.Background(), stranger.ID, models.ResourceFolder, folder.ID, false)
	s.ErrorIs(err, ErrAccessDenied)
	s.Equal(http.StatusForbidden, Code(err))
}

func (s *AccessSuite) TestMissingResourceDenied() {
	user := s.newUser(1, "user@example.com")

	// a missing resource reads the same as a missing grant
	_, err := s.srv.resolveAccess(context.Background(), user.ID, models.ResourceFile, uuid.New().String(), false)
	s.ErrorIs(err, ErrAccessDenied)
	s.Equal(http.StatusForbidden, Code(err))
}

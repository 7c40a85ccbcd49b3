package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/concavehq/concave/pkg/models"
	"github.com/concavehq/concave/pkg/schemas"
	"github.com/stretchr/testify/suite"
)

type LinkSuite struct {
	ServiceSuite
}

func TestLinkSuite(t *testing.T) {
	suite.Run(t, new(LinkSuite))
}

func (s *LinkSuite) TestFileLinkRoundTrip() {
	owner := s.newUser(1, "owner@example.com")
	file := s.newFile(owner.ID, "report.pdf", nil)

	link, err := s.srv.CreatePublicLink(context.Background(), owner.ID, &schemas.LinkCreate{
		ResourceType: models.ResourceFile,
		ResourceID:   file.ID,
	})
	s.NoError(err)
	s.Len(link.Token, 64)
	s.False(link.Protected)

	content, err := s.srv.AccessPublicLink(context.Background(), link.Token, "")
	s.NoError(err)
	s.Equal(models.ResourceFile, content.Type)
	s.Equal("report.pdf", content.Name)
	s.Equal("https://blobs.test/"+file.StoragePath, content.URL)
}

func (s *LinkSuite) TestFolderLinkListsOneLevel() {
	owner := s.newUser(1, "owner@example.com")
	root := s.newFolder(owner.ID, "photos", nil)
	sub := s.newFolder(owner.ID, "2025", &root.ID)
	top := s.newFile(owner.ID, "cover.jpg", &root.ID)
	s.newFile(owner.ID, "deep.jpg", &sub.ID)

	link, err := s.srv.CreatePublicLink(context.Background(), owner.ID, &schemas.LinkCreate{
		ResourceType: models.ResourceFolder,
		ResourceID:   root.ID,
	})
	s.NoError(err)

	content, err := s.srv.AccessPublicLink(context.Background(), link.Token, "")
	s.NoError(err)
	s.Equal(models.ResourceFolder, content.Type)
	s.Equal("photos", content.Name)

	// direct children only: the nested file stays hidden
	s.Len(content.Folders, 1)
	s.Equal(sub.ID, content.Folders[0].ID)
	s.Len(content.Files, 1)
	s.Equal(top.ID, content.Files[0].ID)
	s.Equal("https://blobs.test/"+top.StoragePath, content.Files[0].URL)
}

func (s *LinkSuite) TestPasswordProtectedLink() {
	owner := s.newUser(1, "owner@example.com")
	file := s.newFile(owner.ID, "secret.txt", nil)

	link, err := s.srv.CreatePublicLink(context.Background(), owner.ID, &schemas.LinkCreate{
		ResourceType: models.ResourceFile,
		ResourceID:   file.ID,
		Password:     "hunter2",
	})
	s.NoError(err)
	s.True(link.Protected)

	_, err = s.srv.AccessPublicLink(context.Background(), link.Token, "wrong")
	s.ErrorIs(err, ErrInvalidPassword)
	s.Equal(http.StatusForbidden, Code(err))

	_, err = s.srv.AccessPublicLink(context.Background(), link.Token, "")
	s.ErrorIs(err, ErrInvalidPassword)

	content, err := s.srv.AccessPublicLink(context.Background(), link.Token, "hunter2")
	s.NoError(err)
	s.Equal("secret.txt", content.Name)
}

func (s *LinkSuite) TestExpiryBeatsPassword() {
	owner := s.newUser(1, "owner@example.com")
	file := s.newFile(owner.ID, "old.txt", nil)
	expired := time.Now().UTC().Add(-time.Hour)

	link, err := s.srv.CreatePublicLink(context.Background(), owner.ID, &schemas.LinkCreate{
		ResourceType: models.ResourceFile,
		ResourceID:   file.ID,
		ExpiresAt:    &expired,
		Password:     "hunter2",
	})
	s.NoError(err)

	// the correct password does not resurrect an expired link
	_, err = s.srv.AccessPublicLink(context.Background(), link.Token, "hunter2")
	s.ErrorIs(err, ErrLinkExpired)
	s.Equal(http.StatusForbidden, Code(err))
}

func (s *LinkSuite) TestUnknownToken() {
	_, err := s.srv.AccessPublicLink(context.Background(), "deadbeef", "")
	s.ErrorIs(err, ErrLinkNotFound)
	s.Equal(http.StatusNotFound, Code(err))
}

func (s *LinkSuite) TestTrashedFileBehindLink() {
	owner := s.newUser(1, "owner@example.com")
	file := s.newFile(owner.ID, "gone.txt", nil)

	link, err := s.srv.CreatePublicLink(context.Background(), owner.ID, &schemas.LinkCreate{
		ResourceType: models.ResourceFile,
		ResourceID:   file.ID,
	})
	s.NoError(err)

	s.NoError(s.srv.TrashFile(context.Background(), owner.ID, file.ID))

	_, err = s.srv.AccessPublicLink(context.Background(), link.Token, "")
	s.Error(err)
	s.Equal(http.StatusNotFound, Code(err))
}

func (s *LinkSuite) TestCreateRequiresEditAccess() {
	owner := s.newUser(1, "owner@example.com")
	viewer := s.newUser(2, "viewer@example.com")
	file := s.newFile(owner.ID, "notes.txt", nil)
	s.newShare(models.ResourceFile, file.ID, viewer.ID, models.RoleViewer, owner.ID)

	_, err := s.srv.CreatePublicLink(context.Background(), viewer.ID, &schemas.LinkCreate{
		ResourceType: models.ResourceFile,
		ResourceID:   file.ID,
	})
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *LinkSuite) TestRevokeKillsToken() {
	owner := s.newUser(1, "owner@example.com")
	file := s.newFile(owner.ID, "notes.txt", nil)

	link, err := s.srv.CreatePublicLink(context.Background(), owner.ID, &schemas.LinkCreate{
		ResourceType: models.ResourceFile,
		ResourceID:   file.ID,
	})
	s.NoError(err)

	// warm the cache so revoke has to invalidate it
	_, err = s.srv.AccessPublicLink(context.Background(), link.Token, "")
	s.NoError(err)

	s.NoError(s.srv.RevokePublicLink(context.Background(), owner.ID, link.Token))

	_, err = s.srv.AccessPublicLink(context.Background(), link.Token, "")
	s.ErrorIs(err, ErrLinkNotFound)
}

func (s *LinkSuite) TestRevokeRequiresEditAccess() {
	owner := s.newUser(1, "owner@example.com")
	viewer := s.newUser(2, "viewer@example.com")
	file := s.newFile(owner.ID, "notes.txt", nil)
	s.newShare(models.ResourceFile, file.ID, viewer.ID, models.RoleViewer, owner.ID)

	link, err := s.srv.CreatePublicLink(context.Background(), owner.ID, &schemas.LinkCreate{
		ResourceType: models.ResourceFile,
		ResourceID:   file.ID,
	})
	s.NoError(err)

	err = s.srv.RevokePublicLink(context.Background(), viewer.ID, link.Token)
	s.ErrorIs(err, ErrAccessDenied)
}

func (s *LinkSuite) TestListPublicLinks() {
	owner := s.newUser(1, "owner@example.com")
	file := s.newFile(owner.ID, "notes.txt", nil)

	for i := 0; i < 2; i++ {
		_, err := s.srv.CreatePublicLink(context.Background(), owner.ID, &schemas.LinkCreate{
			ResourceType: models.ResourceFile,
			ResourceID:   file.ID,
		})
		s.NoError(err)
	}

	out, err := s.srv.ListPublicLinks(context.Background(), owner.ID, models.ResourceFile, file.ID)
	s.NoError(err)
	s.Len(out, 2)
}

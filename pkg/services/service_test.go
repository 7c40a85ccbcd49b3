package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/concavehq/concave/internal/cache"
	"github.com/concavehq/concave/internal/config"
	"github.com/concavehq/concave/pkg/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/concavehq/concave/internal/database"
)

// fakeBlobStore records writes and signs predictable URLs so tests can
// assert on them without a real object store.
type fakeBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	failPut bool
}

func newFakeBlobStore() *fakeBlobStore {
	return &fakeBlobStore{objects: make(map[string][]byte)}
}

func (f *fakeBlobStore) Put(ctx context.Context, path string, r io.Reader, size int64, contentType string) error {
	if f.failPut {
		return fmt.Errorf("blob store unavailable")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[path] = data
	return nil
}

func (f *fakeBlobStore) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objects, path)
	return nil
}

func (f *fakeBlobStore) SignedURL(ctx context.Context, path string, ttl time.Duration) (string, error) {
	return "https://blobs.test/" + path, nil
}

func (f *fakeBlobStore) SignedURLs(ctx context.Context, paths []string, ttl time.Duration) (map[string]string, error) {
	urls := make(map[string]string, len(paths))
	for _, p := range paths {
		urls[p] = "https://blobs.test/" + p
	}
	return urls, nil
}

// ServiceSuite is the shared fixture: an in-memory database, a memory
// cache and a fake blob store behind a fully wired ApiService.
type ServiceSuite struct {
	suite.Suite
	db   *gorm.DB
	blob *fakeBlobStore
	srv  *ApiService
}

func (s *ServiceSuite) SetupSuite() {
	s.db = database.NewTestDatabase(s.T(), true)
}

func (s *ServiceSuite) SetupTest() {
	for _, model := range []interface{}{
		&models.Star{}, &models.PublicLink{}, &models.Share{},
		&models.File{}, &models.Folder{}, &models.User{},
	} {
		s.db.Where("1 = 1").Delete(model)
	}
	s.blob = newFakeBlobStore()
	cacher := cache.NewCache(context.Background(), &config.CacheConfig{MaxSize: 1024 * 1024})
	s.srv = NewApiService(s.db, &config.ServerCmdConfig{}, cacher, s.blob, nil)
}

func (s *ServiceSuite) newUser(id int64, email string) *models.User {
	user := &models.User{ID: id, Email: email}
	s.Require().NoError(s.db.Create(user).Error)
	return user
}

func (s *ServiceSuite) newFolder(ownerID int64, name string, parentID *string) *models.Folder {
	folder := &models.Folder{
		ID:       uuid.New().String(),
		Name:     name,
		OwnerID:  ownerID,
		ParentID: parentID,
	}
	s.Require().NoError(s.db.Create(folder).Error)
	return folder
}

func (s *ServiceSuite) newFile(ownerID int64, name string, folderID *string) *models.File {
	file := &models.File{
		ID:          uuid.New().String(),
		Name:        name,
		OwnerID:     ownerID,
		FolderID:    folderID,
		MimeType:    "text/plain",
		Size:        42,
		StoragePath: fmt.Sprintf("users/%d/files/%s", ownerID, name),
	}
	s.Require().NoError(s.db.Create(file).Error)
	return file
}

func (s *ServiceSuite) newShare(resourceType models.ResourceType, resourceID string, userID int64, role models.Role, ownerID int64) *models.Share {
	share := &models.Share{
		ID:           uuid.New().String(),
		ResourceType: resourceType,
		ResourceID:   resourceID,
		UserID:       userID,
		Role:         role,
		OwnerID:      ownerID,
	}
	s.Require().NoError(s.db.Create(share).Error)
	return share
}

func (s *ServiceSuite) folderState(id string) *models.Folder {
	var folder models.Folder
	s.Require().NoError(s.db.First(&folder, "id = ?", id).Error)
	return &folder
}

func (s *ServiceSuite) fileState(id string) *models.File {
	var file models.File
	s.Require().NoError(s.db.First(&file, "id = ?", id).Error)
	return &file
}

func reader(content string) io.Reader {
	return bytes.NewReader([]byte(content))
}

package services

import (
	"context"
	"strings"

	"github.com/concavehq/concave/pkg/models"
	"gorm.io/gorm"
)

// Directory resolves principals from the identity backing store. It is the
// only way the engine reaches user records, so tests can swap it out.
type Directory interface {
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []int64) ([]models.User, error)
}

type gormDirectory struct {
	db *gorm.DB
}

func NewDirectory(db *gorm.DB) Directory {
	return &gormDirectory{db: db}
}

func (d *gormDirectory) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var users []models.User
	if err := d.db.WithContext(ctx).Where("LOWER(email) = ?", strings.ToLower(email)).
		Limit(1).Find(&users).Error; err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

func (d *gormDirectory) FindByIDs(ctx context.Context, ids []int64) ([]models.User, error) {
	var users []models.User
	if len(ids) == 0 {
		return users, nil
	}
	if err := d.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

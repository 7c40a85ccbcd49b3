// Package services implements the drive engine: access resolution, the
// folder hierarchy walk, trash cascades, collaboration shares and public
// capability links, plus the file and folder operations built on them.
package services

import (
	"net/http"

	"github.com/concavehq/concave/internal/blob"
	"github.com/concavehq/concave/internal/cache"
	"github.com/concavehq/concave/internal/config"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

type ApiService struct {
	db       *gorm.DB
	cnf      *config.ServerCmdConfig
	cache    cache.Cacher
	blob     blob.Store
	identity Directory
}

func NewApiService(db *gorm.DB, cnf *config.ServerCmdConfig, cacher cache.Cacher, store blob.Store, identity Directory) *ApiService {
	if identity == nil {
		identity = NewDirectory(db)
	}
	return &ApiService{db: db, cnf: cnf, cache: cacher, blob: store, identity: identity}
}

var validate = validator.New()

type apiError struct {
	err  error
	code int
}

func (a *apiError) Error() string {
	return a.err.Error()
}

func (a *apiError) Code() int {
	if a.code == 0 {
		return http.StatusInternalServerError
	}
	return a.code
}

func (a *apiError) Unwrap() error {
	return a.err
}

// Code extracts the HTTP status carried by a service error.
func Code(err error) int {
	if apiErr, ok := err.(*apiError); ok {
		return apiErr.Code()
	}
	return http.StatusInternalServerError
}

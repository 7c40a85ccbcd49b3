package api

import (
	"net/http"
	"time"

	"github.com/concavehq/concave/internal/auth"
	"github.com/concavehq/concave/internal/cache"
	"github.com/concavehq/concave/internal/chizap"
	"github.com/concavehq/concave/internal/config"
	"github.com/concavehq/concave/internal/middleware"
	"github.com/concavehq/concave/pkg/controller"
	"github.com/concavehq/concave/pkg/httputil"
	"github.com/concavehq/concave/pkg/services"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewRouter(cfg *config.ServerCmdConfig, srv *services.ApiService, db *gorm.DB, cacher cache.Cacher, lg *zap.Logger) http.Handler {
	c := controller.NewController(srv)
	authn := auth.Middleware(db, cacher, &cfg.JWT)

	mux := chi.NewRouter()

	mux.Use(chimiddleware.Recoverer)
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH", "HEAD"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         86400,
	}))
	mux.Use(chimiddleware.RealIP)
	mux.Use(middleware.InjectLogger(lg))
	mux.Use(chizap.ChizapWithConfig(lg, &chizap.Config{
		TimeFormat: time.RFC3339,
		UTC:        true,
		SkipPaths:  []string{"/health"},
	}))

	mux.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		httputil.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	mux.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authn)

			r.Get("/me", c.Me)

			r.Route("/folders", func(r chi.Router) {
				r.Post("/", c.CreateFolder)
				r.Get("/", c.ListFolders)
				r.Get("/{folderID}", c.GetFolder)
				r.Patch("/{folderID}", c.RenameFolder)
				r.Post("/{folderID}/move", c.MoveFolder)
				r.Post("/{folderID}/trash", c.TrashFolder)
				r.Post("/{folderID}/restore", c.RestoreFolder)
			})

			r.Route("/files", func(r chi.Router) {
				r.Post("/", c.UploadFile)
				r.Get("/", c.ListFiles)
				r.Get("/{fileID}/download", c.DownloadFile)
				r.Patch("/{fileID}", c.RenameFile)
				r.Post("/{fileID}/move", c.MoveFile)
				r.Post("/{fileID}/trash", c.TrashFile)
				r.Post("/{fileID}/restore", c.RestoreFile)
			})

			r.Route("/shares", func(r chi.Router) {
				r.Post("/", c.CreateShare)
				r.Get("/{resourceType}/{resourceID}", c.ListShares)
				r.Patch("/{shareID}", c.UpdateShareRole)
				r.Delete("/{shareID}", c.RevokeShare)
				r.Post("/{shareID}/leave", c.LeaveShare)
			})

			r.Route("/public-links", func(r chi.Router) {
				r.Post("/", c.CreatePublicLink)
				r.Get("/", c.ListPublicLinks)
				r.Delete("/{token}", c.RevokePublicLink)
			})

			r.Route("/stars", func(r chi.Router) {
				r.Post("/", c.StarResource)
				r.Delete("/", c.UnstarResource)
				r.Get("/", c.ListStarred)
			})

			r.Get("/trash", c.ListTrash)
			r.Get("/recent", c.Recent)
			r.Get("/search", c.Search)
		})

		// token-bearing requests need no principal
		r.Get("/public-links/{token}", c.AccessPublicLink)
		r.Post("/public-links/{token}", c.AccessPublicLink)
	})

	return mux
}

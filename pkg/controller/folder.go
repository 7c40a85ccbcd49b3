package controller

import (
	"net/http"

	"github.com/concavehq/concave/internal/auth"
	"github.com/concavehq/concave/pkg/httputil"
	"github.com/concavehq/concave/pkg/schemas"
	"github.com/go-chi/chi/v5"
)

func (c *Controller) CreateFolder(w http.ResponseWriter, r *http.Request) {
	var req schemas.FolderCreate
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := c.srv.CreateFolder(r.Context(), auth.GetUser(r.Context()), &req)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, res)
}

func (c *Controller) ListFolders(w http.ResponseWriter, r *http.Request) {
	var parentID *string
	if v := r.URL.Query().Get("parentId"); v != "" {
		parentID = &v
	}
	res, err := c.srv.ListFolders(r.Context(), auth.GetUser(r.Context()), parentID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) GetFolder(w http.ResponseWriter, r *http.Request) {
	res, err := c.srv.GetFolder(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "folderID"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) RenameFolder(w http.ResponseWriter, r *http.Request) {
	var req schemas.Rename
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := c.srv.RenameFolder(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "folderID"), &req)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) MoveFolder(w http.ResponseWriter, r *http.Request) {
	var req schemas.FolderMove
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := c.srv.MoveFolder(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "folderID"), &req)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) TrashFolder(w http.ResponseWriter, r *http.Request) {
	if err := c.srv.TrashFolder(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "folderID")); err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *Controller) RestoreFolder(w http.ResponseWriter, r *http.Request) {
	if err := c.srv.RestoreFolder(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "folderID")); err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *Controller) ListTrash(w http.ResponseWriter, r *http.Request) {
	res, err := c.srv.ListTrash(r.Context(), auth.GetUser(r.Context()))
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

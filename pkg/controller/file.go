package controller

import (
	"net/http"

	"github.com/concavehq/concave/internal/auth"
	"github.com/concavehq/concave/pkg/httputil"
	"github.com/concavehq/concave/pkg/schemas"
	"github.com/go-chi/chi/v5"
)

const maxUploadSize = 1 << 30 // 1 GiB

func (c *Controller) UploadFile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		httputil.NewError(w, r, http.StatusBadRequest, err)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		httputil.NewError(w, r, http.StatusBadRequest, err)
		return
	}
	defer file.Close()

	var folderID *string
	if v := r.FormValue("folder_id"); v != "" {
		folderID = &v
	}

	upload := &schemas.FileUpload{
		Name:     header.Filename,
		MimeType: header.Header.Get("Content-Type"),
		Size:     header.Size,
		FolderID: folderID,
		Content:  file,
	}
	res, err := c.srv.UploadFile(r.Context(), auth.GetUser(r.Context()), upload)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, res)
}

func (c *Controller) ListFiles(w http.ResponseWriter, r *http.Request) {
	var folderID *string
	if v := r.URL.Query().Get("folderId"); v != "" {
		folderID = &v
	}
	res, err := c.srv.ListFiles(r.Context(), auth.GetUser(r.Context()), folderID)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) DownloadFile(w http.ResponseWriter, r *http.Request) {
	res, err := c.srv.GetDownloadURL(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "fileID"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) RenameFile(w http.ResponseWriter, r *http.Request) {
	var req schemas.Rename
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := c.srv.RenameFile(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "fileID"), &req)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) MoveFile(w http.ResponseWriter, r *http.Request) {
	var req schemas.FileMove
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := c.srv.MoveFile(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "fileID"), &req)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) TrashFile(w http.ResponseWriter, r *http.Request) {
	if err := c.srv.TrashFile(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "fileID")); err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *Controller) RestoreFile(w http.ResponseWriter, r *http.Request) {
	if err := c.srv.RestoreFile(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "fileID")); err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

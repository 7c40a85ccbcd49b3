package controller

import (
	"net/http"

	"github.com/concavehq/concave/internal/auth"
	"github.com/concavehq/concave/pkg/httputil"
	"github.com/concavehq/concave/pkg/models"
	"github.com/concavehq/concave/pkg/schemas"
	"github.com/go-chi/chi/v5"
)

func (c *Controller) CreateShare(w http.ResponseWriter, r *http.Request) {
	var req schemas.ShareCreate
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := c.srv.CreateShare(r.Context(), auth.GetUser(r.Context()), &req)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, res)
}

func (c *Controller) ListShares(w http.ResponseWriter, r *http.Request) {
	res, err := c.srv.ListShares(r.Context(),
		models.ResourceType(chi.URLParam(r, "resourceType")), chi.URLParam(r, "resourceID"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) UpdateShareRole(w http.ResponseWriter, r *http.Request) {
	var req schemas.ShareRoleUpdate
	if !decodeBody(w, r, &req) {
		return
	}
	if err := c.srv.UpdateShareRole(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "shareID"), &req); err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *Controller) RevokeShare(w http.ResponseWriter, r *http.Request) {
	if err := c.srv.RevokeShare(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "shareID")); err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *Controller) LeaveShare(w http.ResponseWriter, r *http.Request) {
	if err := c.srv.LeaveShare(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "shareID")); err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

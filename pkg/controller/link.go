package controller

import (
	"net/http"

	"github.com/concavehq/concave/internal/auth"
	"github.com/concavehq/concave/pkg/httputil"
	"github.com/concavehq/concave/pkg/models"
	"github.com/concavehq/concave/pkg/schemas"
	"github.com/go-chi/chi/v5"
)

func (c *Controller) CreatePublicLink(w http.ResponseWriter, r *http.Request) {
	var req schemas.LinkCreate
	if !decodeBody(w, r, &req) {
		return
	}
	res, err := c.srv.CreatePublicLink(r.Context(), auth.GetUser(r.Context()), &req)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusCreated, res)
}

// AccessPublicLink is anonymous: the token in the path is the capability.
// The optional password arrives in the body so it stays out of access logs.
func (c *Controller) AccessPublicLink(w http.ResponseWriter, r *http.Request) {
	var req schemas.LinkAccess
	if r.Body != nil && r.ContentLength > 0 {
		if !decodeBody(w, r, &req) {
			return
		}
	}
	res, err := c.srv.AccessPublicLink(r.Context(), chi.URLParam(r, "token"), req.Password)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) RevokePublicLink(w http.ResponseWriter, r *http.Request) {
	if err := c.srv.RevokePublicLink(r.Context(), auth.GetUser(r.Context()), chi.URLParam(r, "token")); err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *Controller) ListPublicLinks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	res, err := c.srv.ListPublicLinks(r.Context(), auth.GetUser(r.Context()),
		models.ResourceType(q.Get("resourceType")), q.Get("resourceId"))
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

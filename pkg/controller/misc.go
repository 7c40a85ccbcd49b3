package controller

import (
	"net/http"

	"github.com/concavehq/concave/internal/auth"
	"github.com/concavehq/concave/pkg/httputil"
	"github.com/concavehq/concave/pkg/models"
	"github.com/concavehq/concave/pkg/schemas"
)

func (c *Controller) StarResource(w http.ResponseWriter, r *http.Request) {
	var req schemas.StarRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := c.srv.StarResource(r.Context(), auth.GetUser(r.Context()), &req); err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *Controller) UnstarResource(w http.ResponseWriter, r *http.Request) {
	var req schemas.StarRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if err := c.srv.UnstarResource(r.Context(), auth.GetUser(r.Context()), &req); err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (c *Controller) ListStarred(w http.ResponseWriter, r *http.Request) {
	res, err := c.srv.ListStarred(r.Context(), auth.GetUser(r.Context()))
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) Recent(w http.ResponseWriter, r *http.Request) {
	res, err := c.srv.Recent(r.Context(), auth.GetUser(r.Context()))
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := schemas.SearchQuery{
		Query: q.Get("q"),
		Type:  models.ResourceType(q.Get("type")),
		Sort:  q.Get("sort"),
		Order: q.Get("order"),
	}
	res, err := c.srv.Search(r.Context(), auth.GetUser(r.Context()), &req)
	if err != nil {
		renderError(w, r, err)
		return
	}
	httputil.JSON(w, http.StatusOK, res)
}

func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetClaims(r.Context())
	httputil.JSON(w, http.StatusOK, schemas.UserOut{
		ID:    auth.GetUser(r.Context()),
		Email: claims.Email,
	})
}

package controller

import (
	"encoding/json"
	"net/http"

	"github.com/concavehq/concave/pkg/httputil"
	"github.com/concavehq/concave/pkg/services"
)

type Controller struct {
	srv *services.ApiService
}

func NewController(srv *services.ApiService) *Controller {
	return &Controller{srv: srv}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		httputil.NewError(w, r, http.StatusBadRequest, err)
		return false
	}
	return true
}

func renderError(w http.ResponseWriter, r *http.Request, err error) {
	httputil.NewError(w, r, services.Code(err), err)
}

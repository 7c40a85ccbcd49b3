package httputil

import (
	"encoding/json"
	"net/http"

	"github.com/concavehq/concave/internal/logging"
	"go.uber.org/zap"
)

type HTTPError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func NewError(w http.ResponseWriter, r *http.Request, status int, err error) {
	logging.FromContext(r.Context()).Error("request failed",
		zap.Int("status", status), zap.Error(err))
	if status == 0 {
		status = http.StatusInternalServerError
	}
	message := err.Error()
	if status == http.StatusInternalServerError {
		// internal details stay in the logs
		message = http.StatusText(status)
	}
	JSON(w, status, HTTPError{Code: status, Message: message})
}

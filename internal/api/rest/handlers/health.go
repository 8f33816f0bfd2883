package handlers

import (
	"net/http"

	"github.com/bmccool/aws-transfer-project/internal/api/rest/response"
	"github.com/bmccool/aws-transfer-project/internal/version"
)

// HealthHandler reports liveness and the running version.
type HealthHandler struct{}

func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, _ *http.Request) {
	response.JSONResponse(w, http.StatusOK, map[string]string{"status": "ok", "version": version.Version})
}

func NewHealthHandler() http.Handler {
	return &HealthHandler{}
}

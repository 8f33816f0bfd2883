package rest

import (
	"net/http"

	"github.com/bmccool/aws-transfer-project/internal/api/rest/middlewares"
)

type RouterConfig struct {
	UserConfigHandler http.Handler
	HealthHandler     http.Handler
	RequestMiddleware middlewares.Middleware
}

// NewMuxWithHandlers initializes a new HTTP mux with routes defined by the given RouterConfig.
func NewMuxWithHandlers(cfg *RouterConfig) *http.ServeMux {
	router := http.NewServeMux()

	router.Handle("GET /servers/{serverId}/users/{username}/config", cfg.RequestMiddleware.Handle(cfg.UserConfigHandler))
	router.Handle("GET /healthz", cfg.HealthHandler)

	return router
}

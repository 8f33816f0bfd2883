package handlers

import (
	"context"
	"log/slog"
	"net"
	"net/http"

	"github.com/bmccool/aws-transfer-project/internal/api/rest/response"
	"github.com/bmccool/aws-transfer-project/internal/identityprovider"
)

const (
	PasswordHeader = "Password"
	ProtocolHeader = "Protocol"
	SourceIPHeader = "SourceIp"

	internalServerErrorMessage = "internal server error"
)

// Authorizer evaluates a single authentication event.
type Authorizer interface {
	Handle(ctx context.Context, event identityprovider.AuthEvent) (identityprovider.AuthResponse, error)
}

// UserConfigHandler serves the user configuration lookup performed by a Transfer Family
// server backed by an API Gateway identity provider.
type UserConfigHandler struct {
	authorizer Authorizer
	logger     *slog.Logger
}

// ServeHTTP always answers 200 for a completed evaluation. A failed login is the empty object.
func (h *UserConfigHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	event := identityprovider.AuthEvent{
		Username: r.PathValue("username"),
		ServerID: r.PathValue("serverId"),
		Password: r.Header.Get(PasswordHeader),
		Protocol: r.Header.Get(ProtocolHeader),
		SourceIP: r.Header.Get(SourceIPHeader),
	}
	if event.SourceIP == "" {
		event.SourceIP = remoteIP(r.RemoteAddr)
	}

	resp, err := h.authorizer.Handle(r.Context(), event)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to evaluate authentication event", "error", err)
		response.JSONErrorResponse(w, http.StatusInternalServerError, internalServerErrorMessage)
		return
	}

	response.JSONResponse(w, http.StatusOK, resp)
}

func remoteIP(addr string) string {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	return host
}

// NewUserConfigHandler creates a new HTTP handler answering user configuration lookups with authorizer.
func NewUserConfigHandler(authorizer Authorizer, logger *slog.Logger) http.Handler {
	return &UserConfigHandler{
		authorizer: authorizer,
		logger:     logger,
	}
}

package identityprovider

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/bmccool/aws-transfer-project/internal/authn"
	"github.com/bmccool/aws-transfer-project/internal/enforcer"
)

const (
	wrongServerOrUsernameMessage = "wrong server or username"
	noPasswordMessage            = "no password"
	incorrectPasswordMessage     = "incorrect password"
	authenticationErrorMessage   = "failed to authenticate user"
	policyDeniedMessage          = "access policy denied login"
	policyErrorMessage           = "failed to enforce access policy"
	malformedEventMessage        = "malformed authentication event"
	authorizedMessage            = "login authorized"
)

// Handler authorizes logins for a Transfer Family server. It is safe for concurrent use.
type Handler struct {
	authenticator authn.Authenticator
	enforcer      enforcer.Enforcer
	authorized    AuthResponse
	logger        *slog.Logger
}

// Handle evaluates event and returns either the configured attributes or an empty response.
// A failed login is not an error: the returned error is always nil.
func (h *Handler) Handle(ctx context.Context, event AuthEvent) (AuthResponse, error) {
	logger := h.logger.With(
		slog.String("requestId", RequestID(ctx)),
		slog.String("username", event.Username),
		slog.String("serverId", event.ServerID),
		slog.String("sourceIp", event.SourceIP),
		slog.String("protocol", event.Protocol),
	)
	logger.InfoContext(ctx, "authentication request")

	// only presence of the server ID is checked here; the access policy may narrow it further
	if event.ServerID == "" {
		logger.WarnContext(ctx, wrongServerOrUsernameMessage)
		return AuthResponse{}, nil
	}

	user, err := h.authenticator.Authenticate(event.Username, event.Password)
	switch {
	case errors.Is(err, authn.ErrUnknownUser):
		logger.WarnContext(ctx, wrongServerOrUsernameMessage)
		return AuthResponse{}, nil
	case errors.Is(err, authn.ErrMissingPassword):
		logger.WarnContext(ctx, noPasswordMessage)
		return AuthResponse{}, nil
	case errors.Is(err, authn.ErrPasswordMismatch):
		logger.WarnContext(ctx, incorrectPasswordMessage)
		return AuthResponse{}, nil
	case err != nil:
		logger.ErrorContext(ctx, authenticationErrorMessage, "error", err)
		return AuthResponse{}, nil
	}

	allowed, err := h.enforcer.Enforce(ctx, &enforcer.LoginRequest{
		Username: user.Username,
		ServerID: event.ServerID,
		SourceIP: event.SourceIP,
	})
	if err != nil {
		logger.ErrorContext(ctx, policyErrorMessage, "error", err)
		return AuthResponse{}, nil
	}
	if !allowed {
		logger.WarnContext(ctx, policyDeniedMessage)
		return AuthResponse{}, nil
	}

	logger.InfoContext(ctx, authorizedMessage, "role", h.authorized.Role)
	return h.authorized, nil
}

// HandleJSON decodes payload into an AuthEvent before calling Handle. Payloads that are not
// a JSON object of strings are treated as a failed login.
func (h *Handler) HandleJSON(ctx context.Context, payload json.RawMessage) (AuthResponse, error) {
	var event AuthEvent
	if err := json.Unmarshal(payload, &event); err != nil {
		h.logger.WarnContext(ctx, malformedEventMessage, "requestId", RequestID(ctx), "error", err)
		return AuthResponse{}, nil
	}

	return h.Handle(ctx, event)
}

// NewHandler returns a Handler granting attrs to every login accepted by authenticator and
// enforcer.
func NewHandler(
	authenticator authn.Authenticator,
	e enforcer.Enforcer,
	attrs Attributes,
	logger *slog.Logger,
) *Handler {
	details, _ := json.Marshal([]HomeDirectoryMapping{
		{Entry: "/", Target: attrs.HomeDirectoryTarget},
	})

	return &Handler{
		authenticator: authenticator,
		enforcer:      e,
		authorized: AuthResponse{
			Role:                 attrs.RoleARN,
			HomeDirectoryType:    HomeDirectoryTypeLogical,
			HomeDirectoryDetails: string(details),
		},
		logger: logger,
	}
}

package middlewares

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/bmccool/aws-transfer-project/internal/identityprovider"
)

const RequestIDHeader = "X-Request-Id"

// RequestIDMiddleware tags every request with an ID, propagated through the request context
// and echoed in the response header, and logs the outcome of the request.
type RequestIDMiddleware struct {
	logger *slog.Logger
}

// Handle honours an incoming X-Request-Id header and generates a UUID otherwise.
func (m *RequestIDMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}

		w.Header().Set(RequestIDHeader, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r.WithContext(identityprovider.WithRequestID(r.Context(), id)))

		m.logger.InfoContext(
			r.Context(),
			"request completed",
			"requestId", id,
			"method", r.Method,
			"status", rec.status,
			"duration", time.Since(start),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// NewRequestIDMiddleware returns a new instance of RequestIDMiddleware.
func NewRequestIDMiddleware(logger *slog.Logger) Middleware {
	return &RequestIDMiddleware{logger: logger}
}

package middlewares

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/bmccool/aws-transfer-project/internal/identityprovider"
)

func TestRequestIDMiddleware_Handle(t *testing.T) {
	cases := map[string]struct {
		incomingID string
	}{
		"HonoursIncomingID": {incomingID: "req-123"},
		"GeneratesID":       {},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = identityprovider.RequestID(r.Context())
				w.WriteHeader(http.StatusTeapot)
			})

			req := httptest.NewRequest(http.MethodGet, "/servers/s1/users/ovc-camera/config", nil)
			if tc.incomingID != "" {
				req.Header.Set(RequestIDHeader, tc.incomingID)
			}
			w := httptest.NewRecorder()

			NewRequestIDMiddleware(slog.New(slog.NewJSONHandler(&buf, nil))).Handle(next).ServeHTTP(w, req)

			id := w.Header().Get(RequestIDHeader)
			assert.Equal(t, http.StatusTeapot, w.Code)
			assert.Equal(t, id, seen)
			if tc.incomingID != "" {
				assert.Equal(t, tc.incomingID, id)
			} else {
				_, err := uuid.Parse(id)
				assert.NoError(t, err)
			}

			assert.Contains(t, buf.String(), `"msg":"request completed"`)
			assert.Contains(t, buf.String(), `"status":418`)
		})
	}
}

package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newssearch/internal/handler/http/requestid"
	"newssearch/internal/observability/logging"
)

func TestLoggingStashesRequestScopedLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))

	h := requestid.Middleware(Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logging.FromContext(r.Context()).Info("handled")
	})))

	req := httptest.NewRequest(http.MethodGet, "/search", nil)
	req.Header.Set(requestid.Header, "req-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	// Both the handler's own entry and the completion entry carry the
	// request ID without the handler spelling it out.
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 2)
	for _, line := range lines {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		assert.Equal(t, "req-123", entry["request_id"])
	}
}

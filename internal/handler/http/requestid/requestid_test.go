package requestid

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	assert.Empty(t, FromContext(context.Background()))
	assert.Equal(t, "req-1", FromContext(WithRequestID(context.Background(), "req-1")))
	// 型が違う値は無視する
	assert.Empty(t, FromContext(context.WithValue(context.Background(), RequestIDKey, 42)))
}

func TestValid(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"3f2a9c1e-77b0-4c1d-9f5e-0a1b2c3d4e5f", true},
		{"trace:abc_123.v2", true},
		{"", false},
		{strings.Repeat("a", 129), false},
		{"line\nbreak", false},
		{"has space", false},
		{`quote"`, false},
		{"한글", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Valid(tt.id), "Valid(%q)", tt.id)
	}
}

func serve(t *testing.T, header string) (string, string) {
	t.Helper()
	var seen string
	h := Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = FromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/products/around", nil)
	if header != "" {
		req.Header.Set(RequestIDHeader, header)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return seen, w.Header().Get(RequestIDHeader)
}

func TestMiddleware_PropagatesValidID(t *testing.T) {
	seen, echoed := serve(t, "client-req-42")
	assert.Equal(t, "client-req-42", seen)
	assert.Equal(t, "client-req-42", echoed)
}

func TestMiddleware_GeneratesID(t *testing.T) {
	seen, echoed := serve(t, "")
	require.NotEmpty(t, seen)
	assert.Equal(t, seen, echoed)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestMiddleware_ReplacesUnsafeID(t *testing.T) {
	seen, echoed := serve(t, "evil\r\nX-Injected: 1")
	assert.NotContains(t, seen, "evil")
	assert.Equal(t, seen, echoed)
	_, err := uuid.Parse(seen)
	assert.NoError(t, err)
}

func TestMiddleware_UniquePerRequest(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		id, _ := serve(t, "")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

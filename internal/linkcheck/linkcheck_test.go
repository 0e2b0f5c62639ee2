package linkcheck

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestChecker_Check(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/no-head":
			if r.Method == http.MethodHead {
				w.WriteHeader(http.StatusMethodNotAllowed)
				return
			}
			w.WriteHeader(http.StatusOK)
		case "/slow":
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	checker := NewChecker(2*time.Second, zap.NewNop())
	ctx := context.Background()

	res := checker.Check(ctx, server.URL+"/ok")
	assert.True(t, res.Reachable)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, "127.0.0.1", res.Domain)
	assert.Empty(t, res.Error)

	res = checker.Check(ctx, server.URL+"/no-head")
	assert.True(t, res.Reachable, "falls back to GET when HEAD is rejected")
	assert.Equal(t, http.StatusOK, res.StatusCode)

	res = checker.Check(ctx, server.URL+"/missing")
	assert.False(t, res.Reachable)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
	assert.Contains(t, res.Error, "404")

	short := NewChecker(50*time.Millisecond, zap.NewNop())
	res = short.Check(ctx, server.URL+"/slow")
	assert.False(t, res.Reachable)
	assert.Zero(t, res.StatusCode)
	assert.NotEmpty(t, res.Error)
}

func TestChecker_InvalidURL(t *testing.T) {
	checker := NewChecker(0, zap.NewNop())

	res := checker.Check(context.Background(), "://broken")
	assert.False(t, res.Reachable)
	assert.NotEmpty(t, res.Error)
}

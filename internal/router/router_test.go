package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/navhub-dev/navhub/db"
	"github.com/navhub-dev/navhub/internal/auth"
	"github.com/navhub-dev/navhub/internal/config"
	"github.com/navhub-dev/navhub/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type testServer struct {
	engine *gin.Engine
	tokens *auth.TokenService
}

func newTestServer(t *testing.T, frontendDir string) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn := testutil.NewTestDB(t)
	require.NoError(t, db.Seed(context.Background(), conn, "admin", "admin123", zap.NewNop()))

	tokens, err := auth.NewTokenService("router-test-secret", time.Hour)
	require.NoError(t, err)

	cfg := &config.Config{
		CORS:      config.CORSConfig{AllowedOrigins: []string{"http://localhost:5173"}},
		Frontend:  config.FrontendConfig{Dir: frontendDir},
		LinkCheck: config.LinkCheckConfig{Timeout: time.Second},
	}

	return &testServer{
		engine: NewRouter(Dependencies{Config: cfg, DB: conn, Tokens: tokens, Logger: zap.NewNop()}),
		tokens: tokens,
	}
}

func (s *testServer) do(t *testing.T, method, target, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "admin123"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, "")

	token := s.login(t)
	claims, err := s.tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", claims.Username)

	w := s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())

	for _, creds := range []map[string]string{
		{"username": "admin", "password": ""},
		{"username": "nobody", "password": ""},
		{"username": "", "password": ""},
	} {
		w = s.do(t, http.MethodPost, "/api/auth/login", "", creds)
		assert.Equal(t, http.StatusUnauthorized, w.Code, creds)
		assert.JSONEq(t, `{"error":"Invalid credentials"}`, w.Body.String())
	}

	w = s.do(t, http.MethodPost, "/api/auth/login", "", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/login", "", `{"username":`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/auth/me", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"admin"`)
}

func TestChangePassword(t *testing.T) {
	s := newTestServer(t, "")
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/auth/change-password", token,
		map[string]string{"currentPassword": "nope", "newPassword": "s3cret!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/auth/change-password", token,
		map[string]string{"currentPassword": "admin123", "newPassword": "s3cret!"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "admin123"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{"username": "admin", "password": "s3cret!"})
	assert.Equal(t, http.StatusOK, w.Code)

	ghost, err := s.tokens.Issue(999, "ghost")
	require.NoError(t, err)
	w = s.do(t, http.MethodPost, "/api/auth/change-password", ghost,
		map[string]string{"currentPassword": "x", "newPassword": "y"})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAccessGuard(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodPost, "/api/categories", "", map[string]interface{}{"name": "Tools"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodPost, "/api/categories", "garbage", map[string]interface{}{"name": "Tools"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	req := httptest.NewRequest(http.MethodPost, "/api/categories", bytes.NewReader([]byte(`{"name":"Tools"}`)))
	req.Header.Set("Authorization", "Basic xyz")
	rec := httptest.NewRecorder()
	s.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	w = s.do(t, http.MethodGet, "/api/categories", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestCategoryLifecycle(t *testing.T) {
	s := newTestServer(t, "")
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/categories", token, map[string]interface{}{"name": "Tools", "sortOrder": 1})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	created := decode[map[string]interface{}](t, w)
	id := int(created["id"].(float64))

	w = s.do(t, http.MethodGet, "/api/categories", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	list := decode[[]map[string]interface{}](t, w)
	require.Len(t, list, 1)
	assert.Equal(t, "Tools", list[0]["name"])
	assert.Equal(t, float64(1), list[0]["sortOrder"])
	assert.Equal(t, []interface{}{}, list[0]["tags"])

	target := "/api/categories/" + jsonNumber(id)

	w = s.do(t, http.MethodPut, target, token, map[string]interface{}{"sortOrder": "abc"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode[map[string]interface{}](t, w)["sortOrder"], "non-numeric update leaves the field unchanged")

	w = s.do(t, http.MethodPut, target, token, map[string]interface{}{"sortOrder": 0})
	require.Equal(t, http.StatusOK, w.Code)
	updated := decode[map[string]interface{}](t, w)
	assert.Equal(t, float64(0), updated["sortOrder"])
	assert.Equal(t, "Tools", updated["name"])

	w = s.do(t, http.MethodPut, "/api/categories/999", token, map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodPut, "/api/categories/abc", token, map[string]interface{}{"name": "x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodDelete, target, token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"Category deleted"}`, w.Body.String())

	w = s.do(t, http.MethodDelete, target, token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTagLifecycle(t *testing.T) {
	s := newTestServer(t, "")
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/tags", token, map[string]interface{}{"name": "Orphan", "url": "https://x.dev", "categoryId": 42})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/categories", token, map[string]interface{}{"name": "Dev"})
	require.Equal(t, http.StatusOK, w.Code)
	categoryID := int(decode[map[string]interface{}](t, w)["id"].(float64))

	w = s.do(t, http.MethodPost, "/api/tags", token, map[string]interface{}{
		"name": "Go", "url": "https://go.dev", "logo": "go.png", "categoryId": jsonNumber(categoryID), "sortOrder": "2",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	tag := decode[map[string]interface{}](t, w)
	assert.Equal(t, float64(2), tag["sortOrder"])
	assert.Equal(t, float64(categoryID), tag["categoryId"])
	tagTarget := "/api/tags/" + jsonNumber(int(tag["id"].(float64)))

	w = s.do(t, http.MethodPut, tagTarget, token, map[string]interface{}{"logo": nil, "description": "The Go site"})
	require.Equal(t, http.StatusOK, w.Code)
	tag = decode[map[string]interface{}](t, w)
	assert.Nil(t, tag["logo"])
	assert.Equal(t, "The Go site", tag["description"])
	assert.Equal(t, "https://go.dev", tag["url"])

	w = s.do(t, http.MethodPut, tagTarget, token, map[string]interface{}{"categoryId": 777})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/categories", "", nil)
	list := decode[[]map[string]interface{}](t, w)
	require.Len(t, list, 1)
	assert.Len(t, list[0]["tags"], 1)

	w = s.do(t, http.MethodDelete, "/api/categories/"+jsonNumber(categoryID), token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/tags", "", nil)
	assert.JSONEq(t, `[]`, w.Body.String(), "tags are removed with their category")
}

func TestTagCheck(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer upstream.Close()

	s := newTestServer(t, "")
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/categories", token, map[string]interface{}{"name": "Local"})
	categoryID := int(decode[map[string]interface{}](t, w)["id"].(float64))

	w = s.do(t, http.MethodPost, "/api/tags", token, map[string]interface{}{
		"name": "Upstream", "url": upstream.URL, "categoryId": categoryID,
	})
	require.Equal(t, http.StatusOK, w.Code)
	tagID := int(decode[map[string]interface{}](t, w)["id"].(float64))

	w = s.do(t, http.MethodPost, "/api/tags/"+jsonNumber(tagID)+"/check", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	result := decode[map[string]interface{}](t, w)
	assert.Equal(t, true, result["reachable"])
	assert.Equal(t, float64(http.StatusNoContent), result["statusCode"])

	w = s.do(t, http.MethodPost, "/api/tags/999/check", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSearchEngineDefault(t *testing.T) {
	s := newTestServer(t, "")
	token := s.login(t)

	w := s.do(t, http.MethodGet, "/api/search-engines", "", nil)
	seeded := decode[[]map[string]interface{}](t, w)
	require.Len(t, seeded, 4)

	w = s.do(t, http.MethodPost, "/api/search-engines", token, map[string]interface{}{
		"name": "DuckDuckGo", "url": "https://duckduckgo.com/?q=", "isDefault": true, "sortOrder": 9,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	ddgID := int(decode[map[string]interface{}](t, w)["id"].(float64))

	defaults := func() []string {
		w := s.do(t, http.MethodGet, "/api/search-engines", "", nil)
		var names []string
		for _, e := range decode[[]map[string]interface{}](t, w) {
			if e["isDefault"] == true {
				names = append(names, e["name"].(string))
			}
		}
		return names
	}
	assert.Equal(t, []string{"DuckDuckGo"}, defaults())

	googleID := 0
	for _, e := range seeded {
		if e["name"] == "Google" {
			googleID = int(e["id"].(float64))
		}
	}
	require.NotZero(t, googleID)

	w = s.do(t, http.MethodPut, "/api/search-engines/"+jsonNumber(googleID), token, map[string]interface{}{"isDefault": 1})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"Google"}, defaults())

	w = s.do(t, http.MethodDelete, "/api/search-engines/"+jsonNumber(ddgID), token, nil)
	assert.JSONEq(t, `{"message":"Engine deleted"}`, w.Body.String())
}

func TestSettings(t *testing.T) {
	s := newTestServer(t, "")
	token := s.login(t)

	w := s.do(t, http.MethodPost, "/api/settings", token, map[string]string{"key": "systemTitle", "value": "My Nav"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	row := decode[map[string]interface{}](t, w)
	assert.Equal(t, "systemTitle", row["id"])
	assert.Equal(t, "My Nav", row["value"])

	w = s.do(t, http.MethodPost, "/api/settings", token, map[string]string{"value": "lost"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/settings", token, `[
		{"key":"systemTitle","value":"Renamed"},
		{"value":"no key"},
		{"key":"searchEngines","value":[{"name":"Google","url":"https://www.google.com/search?q="}]},
		{"key":"backgroundImage","value":null}
	]`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"message":"Settings updated","updated":3,"skipped":[1]}`, w.Body.String())

	w = s.do(t, http.MethodGet, "/api/settings", "", nil)
	settings := decode[map[string]string](t, w)
	assert.Equal(t, "Renamed", settings["systemTitle"])
	assert.Equal(t, `[{"name":"Google","url":"https://www.google.com/search?q="}]`, settings["searchEngines"])
	assert.Equal(t, "", settings["backgroundImage"])
	assert.Len(t, settings, 3)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, "")

	w := s.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	body := decode[map[string]interface{}](t, w)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "ok", body["database"])
}

func TestFrontendFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>navhub</html>"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "assets", "app.js"), []byte("console.log(1)"), 0o644))

	s := newTestServer(t, dir)

	w := s.do(t, http.MethodGet, "/admin/settings", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "navhub")

	w = s.do(t, http.MethodGet, "/assets/app.js", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "console.log(1)", w.Body.String())

	w = s.do(t, http.MethodGet, "/api/unknown", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"error":"Not found"}`, w.Body.String())
}

func TestCORS(t *testing.T) {
	s := newTestServer(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/api/categories", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func jsonNumber(n int) string {
	raw, _ := json.Marshal(n)
	return string(raw)
}

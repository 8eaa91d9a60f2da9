package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/Conceptual-Machines/mindloop/internal/affirm"
	"github.com/Conceptual-Machines/mindloop/internal/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	catalog, err := affirm.DefaultCatalog()
	require.NoError(t, err)

	cfg := &config.Config{
		Environment:        "test",
		CORSAllowedOrigins: []string{"*"},
		MaxRequestBytes:    256,
	}
	return SetupRouter(cfg, affirm.NewGenerator(catalog), nil, "test")
}

func TestRouterServesAffirmations(t *testing.T) {
	router := setupTestRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/affirm", strings.NewReader(`{"prompt":"focus","count":3}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.Contains(t, w.Body.String(), "Affirmations for *focus*")
}

func TestRouterRejectsOversizedBody(t *testing.T) {
	router := setupTestRouter(t)

	body := `{"prompt":"` + strings.Repeat("a", 1024) + `","count":1}`
	req := httptest.NewRequest(http.MethodPost, "/api/affirm", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"Failed to generate affirmations."}`, w.Body.String())
}

func TestRouterAffirmOnlyAcceptsPost(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/affirm", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRouterStaticAssets(t *testing.T) {
	router := setupTestRouter(t)

	tests := []struct {
		path        string
		contentType string
		contains    string
	}{
		{path: "/", contentType: "text/html", contains: "Mind Loop"},
		{path: "/sw.js", contentType: "application/javascript", contains: `url.pathname.startsWith("/api/")`},
		{path: "/manifest.json", contentType: "application/manifest+json", contains: `"start_url": "/"`},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), tt.contentType)
			assert.Equal(t, "public, max-age=3600", w.Header().Get("Cache-Control"))
			assert.Contains(t, w.Body.String(), tt.contains)
		})
	}
}

func TestRouterHealth(t *testing.T) {
	router := setupTestRouter(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)
}

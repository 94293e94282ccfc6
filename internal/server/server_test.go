package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mealstash/backend/config"
	"github.com/mealstash/backend/internal/testhelpers"
)

func TestHealthEndpoint(t *testing.T) {
	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "0",
		DataDir:    t.TempDir(),
	}
	srv := New(cfg, testhelpers.SetupTestDB(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}

func TestServerRegistersAPIRoutes(t *testing.T) {
	cfg := &config.Config{
		ServerHost: "localhost",
		ServerPort: "0",
		DataDir:    t.TempDir(),
	}
	srv := New(cfg, testhelpers.SetupTestDB(t), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	w := httptest.NewRecorder()
	srv.http.Handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

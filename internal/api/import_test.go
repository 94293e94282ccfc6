package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cakePage(name string) string {
	return fmt.Sprintf(`<html><head>
	<script type="application/ld+json">
	{"@type": "Recipe", "name": %q, "description": "Imported", "recipeIngredient": ["2 eggs"]}
	</script>
	</head></html>`, name)
}

func postJSON(router http.Handler, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestImportEndpointPersistsRecipe(t *testing.T) {
	router, _ := setupTestRouter(t, map[string]string{
		"https://example.com/cake": cakePage("Chocolate Cake"),
	})

	w := postJSON(router, "/api/v1/recipes/import", ImportRequest{URL: "https://example.com/cake"})

	require.Equal(t, http.StatusCreated, w.Code)
	var recipe map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	assert.Equal(t, "Chocolate Cake", recipe["name"])
	assert.Equal(t, "https://example.com/cake", recipe["org_url"])
	assert.NotEmpty(t, recipe["id"])
}

func TestImportEndpointErrorMapping(t *testing.T) {
	router, _ := setupTestRouter(t, map[string]string{
		"https://example.com/plain": "<html><body>no structured data</body></html>",
	})

	tests := []struct {
		name       string
		body       interface{}
		wantStatus int
		wantError  string
	}{
		{
			name:       "missing url field",
			body:       map[string]string{},
			wantStatus: http.StatusBadRequest,
			wantError:  "A url field is required",
		},
		{
			name:       "invalid url",
			body:       ImportRequest{URL: "not a url"},
			wantStatus: http.StatusBadRequest,
			wantError:  "Invalid URL.",
		},
		{
			name:       "unreachable host",
			body:       ImportRequest{URL: "https://down.example.com/x"},
			wantStatus: http.StatusBadGateway,
			wantError:  "Could not fetch page: connection refused",
		},
		{
			name:       "page without recipe",
			body:       ImportRequest{URL: "https://example.com/plain"},
			wantStatus: http.StatusUnprocessableEntity,
			wantError:  "No recipe found on that page.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/api/v1/recipes/import", tt.body)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantError, resp["error"])
		})
	}
}

func TestImportEndpointDuplicateConflict(t *testing.T) {
	router, _ := setupTestRouter(t, map[string]string{
		"https://example.com/cake": cakePage("Chocolate Cake"),
	})

	w := postJSON(router, "/api/v1/recipes/import", ImportRequest{URL: "https://example.com/cake"})
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/api/v1/recipes/import", ImportRequest{URL: "https://example.com/cake"})
	require.Equal(t, http.StatusConflict, w.Code)

	var conflict struct {
		PendingID    string                 `json:"pending_id"`
		Existing     map[string]interface{} `json:"existing"`
		Candidate    map[string]interface{} `json:"candidate"`
		MatchedByURL bool                   `json:"matched_by_url"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflict))
	assert.NotEmpty(t, conflict.PendingID)
	assert.True(t, conflict.MatchedByURL)
	assert.Equal(t, "Chocolate Cake", conflict.Existing["name"])
	assert.Equal(t, "Chocolate Cake", conflict.Candidate["name"])
	assert.NotEqual(t, conflict.Existing["id"], conflict.Candidate["id"])
}

func TestResolveEndpoint(t *testing.T) {
	router, _ := setupTestRouter(t, map[string]string{
		"https://example.com/cake": cakePage("Chocolate Cake"),
	})

	importOnce := func() string {
		w := postJSON(router, "/api/v1/recipes/import", ImportRequest{URL: "https://example.com/cake"})
		require.Equal(t, http.StatusConflict, w.Code)
		var conflict struct {
			PendingID string `json:"pending_id"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &conflict))
		return conflict.PendingID
	}

	w := postJSON(router, "/api/v1/recipes/import", ImportRequest{URL: "https://example.com/cake"})
	require.Equal(t, http.StatusCreated, w.Code)

	t.Run("create", func(t *testing.T) {
		pendingID := importOnce()
		w := postJSON(router, "/api/v1/recipes/import/"+pendingID+"/resolve", ResolveRequest{Action: "create"})
		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("update", func(t *testing.T) {
		pendingID := importOnce()
		w := postJSON(router, "/api/v1/recipes/import/"+pendingID+"/resolve", ResolveRequest{Action: "update"})
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("cancel", func(t *testing.T) {
		pendingID := importOnce()
		w := postJSON(router, "/api/v1/recipes/import/"+pendingID+"/resolve", ResolveRequest{Action: "cancel"})
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("invalid action", func(t *testing.T) {
		pendingID := importOnce()
		w := postJSON(router, "/api/v1/recipes/import/"+pendingID+"/resolve", map[string]string{"action": "merge"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown pending id", func(t *testing.T) {
		w := postJSON(router, "/api/v1/recipes/import/unknown/resolve", ResolveRequest{Action: "cancel"})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

package states_module

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ethanbaker/states/internal/api/middleware"
	"github.com/ethanbaker/states/pkg/states"
	"github.com/ethanbaker/states/pkg/utils"
	"github.com/gin-gonic/gin"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestRouter serves the states routes over the embedded dataset and an in-memory store
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	service, err := Init(context.Background(), utils.NewConfig(map[string]string{"FUNFACTS_STORE": BackendMemory}))
	require.NoError(t, err)
	t.Cleanup(func() { service.Close() })

	router := gin.New()
	router.Use(middleware.RequestID(), middleware.NoStore())
	RegisterRoutes(router.Group("/"), service.Service)
	return router
}

// do performs a request against the router. An empty body sends no body at all
func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func newGoldie(t *testing.T) *goldie.Goldie {
	return goldie.New(t, goldie.WithFixtureDir("testdata/golden"), goldie.WithNameSuffix(".golden"))
}

func decodeOverlay(t *testing.T, w *httptest.ResponseRecorder) states.FunFactOverlay {
	t.Helper()
	var overlay states.FunFactOverlay
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &overlay))
	return overlay
}

func TestReferenceRoutes(t *testing.T) {
	router := newTestRouter(t)
	g := newGoldie(t)

	tests := []struct {
		golden string
		path   string
	}{
		{"state_ca", "/states/CA"},
		{"capital", "/states/ca/capital"},
		{"nickname", "/states/Ca/nickname"},
		{"population", "/states/cA/population"},
		{"admission", "/states/ca/admission"},
	}

	for _, tt := range tests {
		t.Run(tt.golden, func(t *testing.T) {
			w := do(router, http.MethodGet, tt.path, "")
			assert.Equal(t, http.StatusOK, w.Code)
			g.Assert(t, tt.golden, w.Body.Bytes())
		})
	}
}

func TestInvalidStateCode(t *testing.T) {
	router := newTestRouter(t)
	g := newGoldie(t)

	paths := []string{"/states/zz", "/states/zz/capital", "/states/california/nickname", "/states/zz/funfact"}
	for _, path := range paths {
		t.Run(path, func(t *testing.T) {
			w := do(router, http.MethodGet, path, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
			g.Assert(t, "invalid_state", w.Body.Bytes())
		})
	}

	// The gate runs before body parsing
	w := do(router, http.MethodPost, "/states/zz/funfact", `{"funfacts":["x"]}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	g.Assert(t, "invalid_state", w.Body.Bytes())
}

func TestGetAllStates(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		query    string
		expected int
	}{
		{"", 50},
		{"?contig=true", 48},
		{"?contig=TRUE", 48},
		{"?contig=false", 2},
		{"?contig=anything", 2},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			w := do(router, http.MethodGet, "/states"+tt.query, "")
			require.Equal(t, http.StatusOK, w.Code)

			var views []states.MergedStateView
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
			assert.Len(t, views, tt.expected)
		})
	}

	t.Run("dataset order and non-contiguous codes", func(t *testing.T) {
		w := do(router, http.MethodGet, "/states?contig=false", "")

		var views []states.MergedStateView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &views))
		require.Len(t, views, 2)
		assert.Equal(t, "AK", views[0].Code)
		assert.Equal(t, "HI", views[1].Code)
	})
}

func TestFunFactLifecycle(t *testing.T) {
	router := newTestRouter(t)
	g := newGoldie(t)

	t.Run("no facts yet", func(t *testing.T) {
		w := do(router, http.MethodGet, "/states/ks/funfact", "")
		assert.Equal(t, http.StatusNotFound, w.Code)
		g.Assert(t, "no_funfacts", w.Body.Bytes())

		w = do(router, http.MethodPatch, "/states/ks/funfact", `{"index":1,"funfact":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		g.Assert(t, "no_funfacts", w.Body.Bytes())
	})

	t.Run("add", func(t *testing.T) {
		w := do(router, http.MethodPost, "/states/ks/funfact", `{"funfacts":["Flat"]}`)
		require.Equal(t, http.StatusOK, w.Code)
		overlay := decodeOverlay(t, w)
		assert.Equal(t, "KS", overlay.StateCode)
		assert.Equal(t, []string{"Flat"}, overlay.Facts)

		w = do(router, http.MethodPost, "/states/KS/funfact", `{"funfacts":["Windy"]}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Flat", "Windy"}, decodeOverlay(t, w).Facts)
	})

	t.Run("merged view includes facts", func(t *testing.T) {
		w := do(router, http.MethodGet, "/states/ks", "")
		require.Equal(t, http.StatusOK, w.Code)
		g.Assert(t, "state_ks_with_facts", w.Body.Bytes())
	})

	t.Run("random fact", func(t *testing.T) {
		w := do(router, http.MethodGet, "/states/ks/funfact", "")
		require.Equal(t, http.StatusOK, w.Code)

		var res map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
		assert.Contains(t, []string{"Flat", "Windy"}, res["funfact"])
	})

	t.Run("update", func(t *testing.T) {
		w := do(router, http.MethodPatch, "/states/ks/funfact", `{"index":2,"funfact":"Very windy"}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Flat", "Very windy"}, decodeOverlay(t, w).Facts)

		w = do(router, http.MethodPatch, "/states/ks/funfact", `{"index":3,"funfact":"x"}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		g.Assert(t, "index_out_of_range", w.Body.Bytes())
	})

	t.Run("delete", func(t *testing.T) {
		w := do(router, http.MethodDelete, "/states/ks/funfact", `{"index":1}`)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, []string{"Very windy"}, decodeOverlay(t, w).Facts)

		w = do(router, http.MethodDelete, "/states/ks/funfact", `{"index":0}`)
		assert.Equal(t, http.StatusNotFound, w.Code)
		g.Assert(t, "index_out_of_range", w.Body.Bytes())
	})
}

func TestFunFactValidation(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name    string
		method  string
		body    string
		status  int
		message string
	}{
		{"add without body", http.MethodPost, "", http.StatusBadRequest, "State fun facts required"},
		{"add empty list", http.MethodPost, `{"funfacts":[]}`, http.StatusBadRequest, "State fun facts required"},
		{"add string", http.MethodPost, `{"funfacts":"Flat"}`, http.StatusBadRequest, "State fun facts value must be an array"},
		{"add non-string element", http.MethodPost, `{"funfacts":["Flat",2]}`, http.StatusBadRequest, "State fun facts must be strings"},
		{"add malformed json", http.MethodPost, `{"funfacts":`, http.StatusBadRequest, "Could not parse request body"},
		{"update without index", http.MethodPatch, `{"funfact":"x"}`, http.StatusBadRequest, "State fun fact index value required"},
		{"update without value", http.MethodPatch, `{"index":1}`, http.StatusBadRequest, "State fun fact value required"},
		{"update without body", http.MethodPatch, "", http.StatusBadRequest, "State fun fact index value required"},
		{"delete without index", http.MethodDelete, `{}`, http.StatusBadRequest, "State fun fact index value required"},
		{"delete with string index", http.MethodDelete, `{"index":"1"}`, http.StatusBadRequest, "Could not parse request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(router, tt.method, "/states/ks/funfact", tt.body)
			assert.Equal(t, tt.status, w.Code)

			var res map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &res))
			assert.Equal(t, tt.message, res["message"])
		})
	}
}

func TestResponseHeaders(t *testing.T) {
	router := newTestRouter(t)

	w := do(router, http.MethodGet, "/states/ca/capital", "")
	assert.Equal(t, "no-store", w.Header().Get("Cache-Control"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	req := httptest.NewRequest(http.MethodGet, "/states/ca/capital", nil)
	req.Header.Set(middleware.RequestIDHeader, "req-123")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, "req-123", w.Header().Get(middleware.RequestIDHeader))
}

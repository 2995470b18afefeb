package handler

import (
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"licitaciones/backend/internal/model"
	"licitaciones/backend/internal/service"
	"licitaciones/backend/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T, rows int) *gin.Engine {
	t.Helper()
	ctx := context.Background()
	logger := testutil.NewTestLogger(t)

	client, err := service.Open(ctx, service.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect() })
	require.NoError(t, service.InitSchema(ctx, client, logger))

	for i := 1; i <= rows; i++ {
		require.NoError(t, client.Exec(ctx,
			`INSERT INTO adjudicaciones (identificador, link_licitacion) VALUES (?, ?)`,
			fmt.Sprintf("EXP-%02d", i), fmt.Sprintf("https://contrataciondelestado.es/%d", i)))
	}

	h := NewHandler(service.NewQueryService(client, logger), "", logger)
	return NewRouter(h, logger, RouterConfig{Mode: gin.TestMode, CORSOrigins: []string{"http://localhost:5173"}})
}

func doGet(r http.Handler, url string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", url, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestRouter_Pagination(t *testing.T) {
	r := newTestRouter(t, 12)

	tests := []struct {
		url      string
		wantRows int
	}{
		{url: "/api/adjudicaciones", wantRows: 5},
		{url: "/api/adjudicaciones?pagina=3&limite=5", wantRows: 2},
		{url: "/api/adjudicaciones?pagina=4&limite=5", wantRows: 0},
		{url: "/api/adjudicaciones?filtro=EXP-03&limite=50", wantRows: 1},
		{url: "/api/modificados", wantRows: 0},
		{url: "/api/adjudicaciones?pagina=3&limite=9223372036854775807", wantRows: 0},
		{url: "/api/adjudicaciones?pagina=1844674407370955163&limite=5", wantRows: 0},
	}

	for _, tc := range tests {
		t.Run(tc.url, func(t *testing.T) {
			w := doGet(r, tc.url)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "application/json")

			var page model.Page
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
			assert.Len(t, page.Data, tc.wantRows)
		})
	}
}

func TestRouter_UnknownTable(t *testing.T) {
	r := newTestRouter(t, 1)

	w := doGet(r, "/api/unknown_table")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"Tabla no válida"}`, w.Body.String())
	assert.NotContains(t, w.Body.String(), "data")
}

func TestRouter_TableListings(t *testing.T) {
	r := newTestRouter(t, 0)

	w := doGet(r, "/api/tablas")
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"tablas":["adjudicaciones","criterios_adjudicacion","modificados","resultados_licitaciones"]}`, w.Body.String())

	w = doGet(r, "/api/test-db")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"resultados_licitaciones"`)
}

func TestRouter_ModelResultsMissing(t *testing.T) {
	r := newTestRouter(t, 0)

	w := doGet(r, "/api/model_results")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRouter_NoRoute(t *testing.T) {
	r := newTestRouter(t, 0)

	w := doGet(r, "/v1/adjudicaciones")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Ruta no encontrada")
}

func TestRouter_Middleware(t *testing.T) {
	r := newTestRouter(t, 0)

	t.Run("request id assigned", func(t *testing.T) {
		w := doGet(r, "/ping")
		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
	})

	t.Run("request id propagated", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Request-ID", "abc-123")
		r.ServeHTTP(w, req)
		assert.Equal(t, "abc-123", w.Header().Get("X-Request-ID"))
	})

	t.Run("allowed origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/tablas", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		r.ServeHTTP(w, req)
		assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("foreign origin", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/tablas", nil)
		req.Header.Set("Origin", "http://evil.example")
		r.ServeHTTP(w, req)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("gzip when accepted", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/api/tablas", nil)
		req.Header.Set("Accept-Encoding", "gzip")
		r.ServeHTTP(w, req)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "gzip", w.Header().Get("Content-Encoding"))

		zr, err := gzip.NewReader(w.Body)
		require.NoError(t, err)
		body, err := io.ReadAll(zr)
		require.NoError(t, err)

		var resp model.TablesResponse
		require.NoError(t, json.Unmarshal(body, &resp))
		assert.Len(t, resp.Tablas, 4)
	})

	t.Run("plain without accept-encoding", func(t *testing.T) {
		w := doGet(r, "/api/tablas")
		assert.Empty(t, w.Header().Get("Content-Encoding"))
		assert.Contains(t, w.Body.String(), `"tablas"`)
	})

	t.Run("preflight", func(t *testing.T) {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("OPTIONS", "/api/adjudicaciones", nil)
		req.Header.Set("Origin", "http://localhost:5173")
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "GET")
	})
}

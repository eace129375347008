package rest

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServer_Ping(t *testing.T) {
	server := New(slog.New(slog.NewTextHandler(io.Discard, nil)))

	t.Run("Ping answers pong", func(t *testing.T) {
		// Given: a GET /ping request
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		rec := httptest.NewRecorder()

		// When: it is served
		server.Handler().ServeHTTP(rec, req)

		// Then: the body is pong
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "pong", rec.Body.String())
	})

	t.Run("Unknown route is not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/missing", nil)
		rec := httptest.NewRecorder()

		server.Handler().ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

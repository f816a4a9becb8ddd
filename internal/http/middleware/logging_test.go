package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/voidAlex/student-roll-call/internal/metrics"
)

func TestLoggerMiddlewareRecordsRoute(t *testing.T) {
	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(LoggerMiddleware)
	router.Post("/classes/{class_id}/students", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	counter := metrics.RestRequestsTotal.WithLabelValues("/classes/{class_id}/students")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/classes/c1/students", nil))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestLoggerMiddlewareFallsBackToPath(t *testing.T) {
	handler := LoggerMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	counter := metrics.RestRequestsTotal.WithLabelValues("/unrouted")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/unrouted", nil))

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, before+1, testutil.ToFloat64(counter))
}

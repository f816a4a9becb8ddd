package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/voidAlex/student-roll-call/internal/logging"
	"github.com/voidAlex/student-roll-call/internal/metrics"
)

// LoggerMiddleware пишет начало и конец каждого запроса и кладёт в контекст
// request ID, путь и метод для последующих логов.
func LoggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		requestID := chimw.GetReqID(ctx)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx = logging.WithLogRequestID(ctx, requestID)
		ctx = logging.WithLogRequestPath(ctx, r.URL.Path)
		ctx = logging.WithLogRequestMethod(ctx, r.Method)

		slog.DebugContext(ctx, "request started")
		start := time.Now()

		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		r = r.WithContext(ctx)
		next.ServeHTTP(rw, r)

		elapsed := time.Since(start)
		// Шаблон маршрута известен только после прохода по дереву chi.
		pathTemplate := routePattern(r)

		ctx = logging.WithLogRequestStatus(ctx, rw.statusCode)
		ctx = logging.WithLogRequestDuration(ctx, elapsed.String())
		slog.InfoContext(ctx, "request completed", "route", pathTemplate)

		metrics.IncRestRequestsTotal(pathTemplate)
		metrics.IncRestResponsesDuration(pathTemplate, r.Method, elapsed)
		metrics.IncRestResponsesStatusesTotal(pathTemplate, rw.statusCode)
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func routePattern(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if pattern := rctx.RoutePattern(); pattern != "" {
			return pattern
		}
	}
	if r.URL.Path != "" {
		return r.URL.Path
	}
	return "/"
}

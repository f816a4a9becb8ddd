package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/voidAlex/student-roll-call/internal/http/handler/common"
)

// PanicMiddleware перехватывает паники и возвращает корректный HTTP ответ.
func PanicMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		defer func() {
			if err := recover(); err != nil {
				slog.ErrorContext(
					r.Context(),
					"Перехвачена паника",
					"method", r.Method,
					"url", r.URL.Path,
					"time", time.Since(start),
					"error", err,
					"stack_trace", string(debug.Stack()),
				)
				common.RespondJSON(w, http.StatusInternalServerError, common.APIError{
					Error: common.APIErrorBody{Code: "UNKNOWN", Message: "Internal server error"},
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}

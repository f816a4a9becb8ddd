package common

import (
	"encoding/json"
	"errors"
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/logging"
)

// XLSXContentType MIME-тип выгрузок.
const XLSXContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type APIError struct {
	Error APIErrorBody `json:"error"`
}

type APIErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON-ответ с указанным статус-кодом.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// RespondFile отдаёт файл как вложение. Имя может быть не-ASCII.
func RespondFile(w http.ResponseWriter, filename, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": filename}))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// BadRequest отправляет JSON-ответ со статусом 400.
func BadRequest(w http.ResponseWriter, code, message string) {
	RespondJSON(w, http.StatusBadRequest, APIError{
		Error: APIErrorBody{Code: code, Message: message},
	})
}

// HTTPError описывает контролируемую HTTP-ошибку.
type HTTPError struct {
	status  int
	code    string
	message string
}

func (e *HTTPError) Error() string {
	return e.message
}

// NewHTTPError создаёт новую HTTP-ошибку.
func NewHTTPError(status int, code, message string) *HTTPError {
	return &HTTPError{
		status:  status,
		code:    code,
		message: message,
	}
}

// NewBadRequestError создаёт 400 ошибку.
func NewBadRequestError(code, message string) *HTTPError {
	return NewHTTPError(http.StatusBadRequest, code, message)
}

// WithErrorHandling оборачивает обработчик, централизуя выдачу ошибок.
// Преобразует доменные ошибки в HTTP-ответы с соответствующими статус-кодами.
func WithErrorHandling(fn func(http.ResponseWriter, *http.Request) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			var httpErr *HTTPError
			// Если ошибка уже является HTTPError, используем её статус и код
			if errors.As(err, &httpErr) {
				RespondJSON(w, httpErr.status, APIError{
					Error: APIErrorBody{Code: httpErr.code, Message: httpErr.message},
				})
				return
			}
			// Иначе преобразуем доменную ошибку в HTTP-ответ
			WriteDomainError(w, r, err)
		}
	}
}

type domainErrorMapping struct {
	err    error
	status int
	code   string
}

// Порядок важен: первая совпавшая по errors.Is запись определяет ответ.
var domainErrors = []domainErrorMapping{
	{domain.ErrClassNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrStudentNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrRecordNotFound, http.StatusNotFound, "NOT_FOUND"},
	{domain.ErrStudentNotInSession, http.StatusNotFound, "NOT_IN_SESSION"},
	{domain.ErrEmptyRoster, http.StatusConflict, "EMPTY_ROSTER"},
	{domain.ErrPoolExhausted, http.StatusConflict, "POOL_EXHAUSTED"},
	{domain.ErrSessionActive, http.StatusConflict, "SESSION_ACTIVE"},
	{domain.ErrNoActiveSession, http.StatusConflict, "NO_ACTIVE_SESSION"},
	{domain.ErrSessionCompleted, http.StatusConflict, "SESSION_COMPLETED"},
	{domain.ErrStudentNoExists, http.StatusBadRequest, "STUDENT_NO_EXISTS"},
	{domain.ErrNoValidRows, http.StatusBadRequest, "NO_VALID_ROWS"},
	{domain.ErrInvalidSettings, http.StatusBadRequest, "INVALID_SETTINGS"},
	{domain.ErrInvalidStatus, http.StatusBadRequest, "INVALID_STATUS"},
	{domain.ErrInvalidWeights, http.StatusBadRequest, "VALIDATION_ERROR"},
	{domain.ErrInvalidInput, http.StatusBadRequest, "VALIDATION_ERROR"},
}

// WriteDomainError преобразует доменные ошибки в HTTP-ответы.
func WriteDomainError(w http.ResponseWriter, r *http.Request, err error) {
	ctx := logging.ErrorCtx(r.Context(), err)
	requestID := chimw.GetReqID(ctx)

	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			slog.DebugContext(ctx, "domain error", "request_id", requestID, "code", m.code, "error", err)
			RespondJSON(w, m.status, APIError{Error: APIErrorBody{Code: m.code, Message: err.Error()}})
			return
		}
	}
	slog.ErrorContext(ctx, "unhandled domain error", "request_id", requestID, "error", err)
	RespondJSON(w, http.StatusInternalServerError, APIError{Error: APIErrorBody{Code: "INTERNAL_ERROR", Message: "internal server error"}})
}

package router

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/voidAlex/student-roll-call/internal/http/handler/attendance"
	"github.com/voidAlex/student-roll-call/internal/http/handler/classes"
	"github.com/voidAlex/student-roll-call/internal/http/handler/common"
	randomcall "github.com/voidAlex/student-roll-call/internal/http/handler/random_call"
	rollcall "github.com/voidAlex/student-roll-call/internal/http/handler/roll_call"
	"github.com/voidAlex/student-roll-call/internal/http/handler/students"
	studentsxlsx "github.com/voidAlex/student-roll-call/internal/http/handler/students_xlsx"
	"github.com/voidAlex/student-roll-call/internal/http/middleware"
	"github.com/voidAlex/student-roll-call/internal/http/swagger"
	"github.com/voidAlex/student-roll-call/internal/service"
)

// Handler агрегирует HTTP-эндпоинты.
type Handler struct {
	service     *service.Service
	swaggerSpec []byte
	maxUpload   int64
}

// New создаёт агрегатор; maxUpload ограничивает размер импортируемых файлов.
func New(service *service.Service, spec []byte, maxUpload int64) *Handler {
	return &Handler{service: service, swaggerSpec: spec, maxUpload: maxUpload}
}

// Router возвращает готовый chi.Router со всеми зарегистрированными маршрутами и middleware.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	// Middleware применяются в порядке объявления
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.PanicMiddleware)
	r.Use(middleware.LoggerMiddleware)
	r.Use(middleware.MetricsMiddleware)
	swagger.RegisterRoutes(r, h.swaggerSpec)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := h.service.HealthCheck(r.Context()); err != nil {
			slog.ErrorContext(r.Context(), "health check failed", "error", err)
			common.RespondJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "degraded",
				"error":  err.Error(),
			})
			return
		}
		common.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Handle("/metrics", promhttp.Handler())

	h.registerClassRoutes(r)
	h.registerStudentRoutes(r)
	h.registerRollCallRoutes(r)
	h.registerRandomCallRoutes(r)
	h.registerAttendanceRoutes(r)

	return r
}

// Обработчики учеников делят префиксы /classes и /students, поэтому
// регистрируются полными путями в группах, а не через Route.
func (h *Handler) registerClassRoutes(r chi.Router) {
	r.Group(func(router chi.Router) {
		classes.New(h.service).Register(router)
	})
}

func (h *Handler) registerStudentRoutes(r chi.Router) {
	r.Group(func(router chi.Router) {
		students.New(h.service).Register(router)
		studentsxlsx.New(h.service, h.maxUpload).Register(router)
	})
}

func (h *Handler) registerRollCallRoutes(r chi.Router) {
	r.Group(func(router chi.Router) {
		rollcall.New(h.service).Register(router)
	})
}

func (h *Handler) registerRandomCallRoutes(r chi.Router) {
	r.Group(func(router chi.Router) {
		randomcall.New(h.service).Register(router)
	})
}

func (h *Handler) registerAttendanceRoutes(r chi.Router) {
	r.Group(func(router chi.Router) {
		attendance.New(h.service).Register(router)
	})
}

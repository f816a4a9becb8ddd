package rollcall

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/http/handler/common"
	"github.com/voidAlex/student-roll-call/internal/logging"
)

// Handler обслуживает последовательную перекличку.
type Handler struct {
	useCase UseCase
}

func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) Register(router chi.Router) {
	router.Post("/roll-call/start", common.WithErrorHandling(h.start))
	router.Get("/roll-call", common.WithErrorHandling(h.current))
	router.Post("/roll-call/mark", common.WithErrorHandling(h.mark))
	router.Post("/roll-call/end", common.WithErrorHandling(h.end))
}

type startRequest struct {
	ClassID string `json:"class_id"`
}

type markRequest struct {
	StudentID string                  `json:"student_id"`
	Status    domain.AttendanceStatus `json:"status"`
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) error {
	var req startRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.ClassID == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "class_id обязателен")
	}
	state, err := h.useCase.StartRollCall(logging.WithLogClassID(r.Context(), req.ClassID), req.ClassID)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusCreated, state)
	return nil
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) error {
	state, ok := h.useCase.CurrentRollCall(r.Context())
	if !ok {
		return domain.ErrNoActiveSession
	}
	common.RespondJSON(w, http.StatusOK, state)
	return nil
}

func (h *Handler) mark(w http.ResponseWriter, r *http.Request) error {
	var req markRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.StudentID == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "student_id обязателен")
	}
	result, err := h.useCase.MarkStudent(logging.WithLogStudentID(r.Context(), req.StudentID), req.StudentID, req.Status)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, result)
	return nil
}

func (h *Handler) end(w http.ResponseWriter, r *http.Request) error {
	record, err := h.useCase.EndRollCall(r.Context())
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]*domain.AttendanceRecord{"record": record})
	return nil
}

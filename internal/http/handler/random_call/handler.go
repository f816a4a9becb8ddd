package randomcall

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/http/handler/common"
	"github.com/voidAlex/student-roll-call/internal/logging"
)

// Handler обслуживает случайный вызов учеников.
type Handler struct {
	useCase UseCase
}

func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

func (h *Handler) Register(router chi.Router) {
	router.Post("/random-call/start", common.WithErrorHandling(h.start))
	router.Get("/random-call", common.WithErrorHandling(h.current))
	router.Post("/random-call/pick", common.WithErrorHandling(h.pick))
	router.Post("/random-call/history", common.WithErrorHandling(h.history))
	router.Post("/random-call/end", common.WithErrorHandling(h.end))
	router.Get("/random-call/settings", common.WithErrorHandling(h.settings))
	router.Patch("/random-call/settings", common.WithErrorHandling(h.updateSettings))
}

type startRequest struct {
	ClassID string `json:"class_id"`
}

type historyRequest struct {
	SelectedStudents []domain.RollCallStudent `json:"selected_students"`
}

type historyResponse struct {
	Committed bool                 `json:"committed"`
	Entry     *domain.HistoryEntry `json:"entry,omitempty"`
}

func (h *Handler) start(w http.ResponseWriter, r *http.Request) error {
	var req startRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.ClassID == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "class_id обязателен")
	}
	session, err := h.useCase.StartRandomCall(logging.WithLogClassID(r.Context(), req.ClassID), req.ClassID)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusCreated, map[string]domain.RandomCallSession{"session": session})
	return nil
}

func (h *Handler) current(w http.ResponseWriter, r *http.Request) error {
	session, ok := h.useCase.CurrentRandomCall(r.Context())
	if !ok {
		return domain.ErrNoActiveSession
	}
	common.RespondJSON(w, http.StatusOK, map[string]domain.RandomCallSession{"session": session})
	return nil
}

func (h *Handler) pick(w http.ResponseWriter, r *http.Request) error {
	selected, err := h.useCase.PerformRandomPick(r.Context())
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string][]domain.RollCallStudent{"selected": selected})
	return nil
}

// history фиксирует показанный выбор. Без активной сессии ответ committed=false.
func (h *Handler) history(w http.ResponseWriter, r *http.Request) error {
	var req historyRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		return err
	}
	entry, ok := h.useCase.AddToHistory(r.Context(), req.SelectedStudents)
	resp := historyResponse{Committed: ok}
	if ok {
		resp.Entry = &entry
	}
	common.RespondJSON(w, http.StatusOK, resp)
	return nil
}

// end без активной сессии ничего не делает и отвечает session=null.
func (h *Handler) end(w http.ResponseWriter, r *http.Request) error {
	var ended *domain.RandomCallSession
	if session, ok := h.useCase.EndRandomCall(r.Context()); ok {
		ended = &session
	}
	common.RespondJSON(w, http.StatusOK, map[string]*domain.RandomCallSession{"session": ended})
	return nil
}

func (h *Handler) settings(w http.ResponseWriter, r *http.Request) error {
	common.RespondJSON(w, http.StatusOK, map[string]domain.RandomCallSettings{"settings": h.useCase.RandomCallSettings(r.Context())})
	return nil
}

func (h *Handler) updateSettings(w http.ResponseWriter, r *http.Request) error {
	var patch domain.SettingsPatch
	if err := common.DecodeJSON(r, &patch); err != nil {
		return err
	}
	settings, err := h.useCase.UpdateRandomCallSettings(r.Context(), patch)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]domain.RandomCallSettings{"settings": settings})
	return nil
}

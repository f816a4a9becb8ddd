package classes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/http/handler/common"
	"github.com/voidAlex/student-roll-call/internal/logging"
)

type createRequest struct {
	Name  string `json:"name"`
	Grade string `json:"grade"`
	Note  string `json:"note"`
}

// Handler реализует CRUD классов.
type Handler struct {
	useCase UseCase
}

func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинты /classes и /classes/{class_id}.
func (h *Handler) Register(router chi.Router) {
	router.Post("/classes", common.WithErrorHandling(h.create))
	router.Get("/classes", common.WithErrorHandling(h.list))
	router.Get("/classes/{class_id}", common.WithErrorHandling(h.get))
	router.Patch("/classes/{class_id}", common.WithErrorHandling(h.update))
	router.Delete("/classes/{class_id}", common.WithErrorHandling(h.delete))
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) error {
	var req createRequest
	if err := common.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.Name == "" || req.Grade == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "name и grade обязательны")
	}
	class, err := h.useCase.CreateClass(r.Context(), req.Name, req.Grade, req.Note)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusCreated, map[string]domain.Class{"class": class})
	return nil
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) error {
	classes, err := h.useCase.ListClasses(r.Context())
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string][]domain.Class{"classes": classes})
	return nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) error {
	classID, err := common.PathParam(r, "class_id")
	if err != nil {
		return err
	}
	class, err := h.useCase.GetClass(logging.WithLogClassID(r.Context(), classID), classID)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]domain.Class{"class": class})
	return nil
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) error {
	classID, err := common.PathParam(r, "class_id")
	if err != nil {
		return err
	}
	var patch domain.ClassPatch
	if err := common.DecodeJSON(r, &patch); err != nil {
		return err
	}
	class, err := h.useCase.UpdateClass(logging.WithLogClassID(r.Context(), classID), classID, patch)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]domain.Class{"class": class})
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) error {
	classID, err := common.PathParam(r, "class_id")
	if err != nil {
		return err
	}
	if err := h.useCase.DeleteClass(logging.WithLogClassID(r.Context(), classID), classID); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

package students

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/http/handler/common"
	"github.com/voidAlex/student-roll-call/internal/logging"
)

// Handler реализует работу с учениками класса.
type Handler struct {
	useCase UseCase
}

func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase}
}

// Register вешает эндпоинты /classes/{class_id}/students и /students/{student_id}.
func (h *Handler) Register(router chi.Router) {
	router.Get("/classes/{class_id}/students", common.WithErrorHandling(h.list))
	router.Post("/classes/{class_id}/students", common.WithErrorHandling(h.add))
	router.Get("/students/{student_id}", common.WithErrorHandling(h.get))
	router.Patch("/students/{student_id}", common.WithErrorHandling(h.update))
	router.Delete("/students/{student_id}", common.WithErrorHandling(h.delete))
	router.Post("/students/{student_id}/restore", common.WithErrorHandling(h.restore))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) error {
	classID, err := common.PathParam(r, "class_id")
	if err != nil {
		return err
	}
	deleted, err := common.QueryBool(r, "deleted")
	if err != nil {
		return err
	}
	ctx := logging.WithLogClassID(r.Context(), classID)
	students, err := h.useCase.ListStudents(ctx, classID, r.URL.Query().Get("q"), deleted)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string][]domain.Student{"students": students})
	return nil
}

func (h *Handler) add(w http.ResponseWriter, r *http.Request) error {
	classID, err := common.PathParam(r, "class_id")
	if err != nil {
		return err
	}
	var req domain.StudentInput
	if err := common.DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.StudentNo == "" || req.Name == "" {
		return common.NewBadRequestError("VALIDATION_ERROR", "student_no и name обязательны")
	}
	student, err := h.useCase.AddStudent(logging.WithLogClassID(r.Context(), classID), classID, req)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusCreated, map[string]domain.Student{"student": student})
	return nil
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) error {
	studentID, err := common.PathParam(r, "student_id")
	if err != nil {
		return err
	}
	student, err := h.useCase.GetStudent(logging.WithLogStudentID(r.Context(), studentID), studentID)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]domain.Student{"student": student})
	return nil
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) error {
	studentID, err := common.PathParam(r, "student_id")
	if err != nil {
		return err
	}
	var patch domain.StudentPatch
	if err := common.DecodeJSON(r, &patch); err != nil {
		return err
	}
	student, err := h.useCase.UpdateStudent(logging.WithLogStudentID(r.Context(), studentID), studentID, patch)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]domain.Student{"student": student})
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) error {
	studentID, err := common.PathParam(r, "student_id")
	if err != nil {
		return err
	}
	permanent, err := common.QueryBool(r, "permanent")
	if err != nil {
		return err
	}
	if err := h.useCase.DeleteStudent(logging.WithLogStudentID(r.Context(), studentID), studentID, permanent); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) restore(w http.ResponseWriter, r *http.Request) error {
	studentID, err := common.PathParam(r, "student_id")
	if err != nil {
		return err
	}
	student, err := h.useCase.RestoreStudent(logging.WithLogStudentID(r.Context(), studentID), studentID)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]domain.Student{"student": student})
	return nil
}

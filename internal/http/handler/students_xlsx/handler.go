// Package studentsxlsx обслуживает импорт и выгрузку списков учеников в Excel.
package studentsxlsx

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voidAlex/student-roll-call/internal/http/handler/common"
	"github.com/voidAlex/student-roll-call/internal/logging"
)

const (
	fileField      = "file"
	templateName   = "学生名单模板.xlsx"
	dateFileLayout = "2006-01-02"
)

type Handler struct {
	useCase   UseCase
	maxUpload int64
	now       func() time.Time
}

// New создаёт обработчик; maxUpload ограничивает размер загружаемого файла в байтах.
func New(useCase UseCase, maxUpload int64) *Handler {
	return &Handler{useCase: useCase, maxUpload: maxUpload, now: time.Now}
}

func (h *Handler) Register(router chi.Router) {
	router.Post("/classes/{class_id}/students/import", common.WithErrorHandling(h.importStudents))
	router.Get("/classes/{class_id}/students/export", common.WithErrorHandling(h.exportStudents))
	router.Get("/students/template", common.WithErrorHandling(h.template))
}

func (h *Handler) importStudents(w http.ResponseWriter, r *http.Request) error {
	classID, err := common.PathParam(r, "class_id")
	if err != nil {
		return err
	}
	if h.maxUpload > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)
	}
	file, _, err := r.FormFile(fileField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return common.NewHTTPError(http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "файл слишком большой")
		}
		return common.NewBadRequestError("VALIDATION_ERROR", "ожидается файл в поле file")
	}
	defer file.Close()

	result, err := h.useCase.ImportStudents(logging.WithLogClassID(r.Context(), classID), classID, file)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, result)
	return nil
}

func (h *Handler) exportStudents(w http.ResponseWriter, r *http.Request) error {
	classID, err := common.PathParam(r, "class_id")
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	class, err := h.useCase.ExportStudents(logging.WithLogClassID(r.Context(), classID), classID, &buf)
	if err != nil {
		return err
	}
	filename := fmt.Sprintf("%s_学生名单_%s.xlsx", class.Name, h.now().Format(dateFileLayout))
	common.RespondFile(w, filename, common.XLSXContentType, buf.Bytes())
	return nil
}

func (h *Handler) template(w http.ResponseWriter, r *http.Request) error {
	var buf bytes.Buffer
	if err := h.useCase.ExportTemplate(r.Context(), &buf); err != nil {
		return err
	}
	common.RespondFile(w, templateName, common.XLSXContentType, buf.Bytes())
	return nil
}

package attendance

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/http/handler/common"
	"github.com/voidAlex/student-roll-call/internal/logging"
)

const dateLayout = "2006-01-02"

// Handler отдаёт и чистит историю посещаемости.
type Handler struct {
	useCase UseCase
	now     func() time.Time
}

func New(useCase UseCase) *Handler {
	return &Handler{useCase: useCase, now: time.Now}
}

func (h *Handler) Register(router chi.Router) {
	router.Get("/attendance", common.WithErrorHandling(h.list))
	router.Delete("/attendance", common.WithErrorHandling(h.clear))
	router.Get("/attendance/export", common.WithErrorHandling(h.export))
	router.Delete("/attendance/{record_id}", common.WithErrorHandling(h.delete))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) error {
	filter, err := parseFilter(r)
	if err != nil {
		return err
	}
	records, err := h.useCase.ListRecords(filterContext(r, filter), filter)
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string][]domain.AttendanceRecord{"records": records})
	return nil
}

func (h *Handler) clear(w http.ResponseWriter, r *http.Request) error {
	n, err := h.useCase.ClearRecords(r.Context())
	if err != nil {
		return err
	}
	common.RespondJSON(w, http.StatusOK, map[string]int{"deleted": n})
	return nil
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) error {
	recordID, err := common.PathParam(r, "record_id")
	if err != nil {
		return err
	}
	if err := h.useCase.DeleteRecord(logging.WithLogRecordID(r.Context(), recordID), recordID); err != nil {
		return err
	}
	w.WriteHeader(http.StatusNoContent)
	return nil
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) error {
	filter, err := parseFilter(r)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := h.useCase.ExportAttendance(filterContext(r, filter), filter, &buf); err != nil {
		return err
	}
	common.RespondFile(w, "考勤记录_"+h.now().Format(dateLayout)+".xlsx", common.XLSXContentType, buf.Bytes())
	return nil
}

// parseFilter читает class_id, from и to. Даты принимаются как 2006-01-02
// или RFC3339; дата без времени в to означает конец дня.
func parseFilter(r *http.Request) (domain.RecordFilter, error) {
	q := r.URL.Query()
	filter := domain.RecordFilter{ClassID: q.Get("class_id")}
	if raw := q.Get("from"); raw != "" {
		from, _, err := parseBound(raw)
		if err != nil {
			return filter, common.NewBadRequestError("VALIDATION_ERROR", "from: неверный формат даты")
		}
		filter.From = &from
	}
	if raw := q.Get("to"); raw != "" {
		to, dateOnly, err := parseBound(raw)
		if err != nil {
			return filter, common.NewBadRequestError("VALIDATION_ERROR", "to: неверный формат даты")
		}
		if dateOnly {
			to = to.AddDate(0, 0, 1).Add(-time.Millisecond)
		}
		filter.To = &to
	}
	return filter, nil
}

func filterContext(r *http.Request, filter domain.RecordFilter) context.Context {
	if filter.ClassID == "" {
		return r.Context()
	}
	return logging.WithLogClassID(r.Context(), filter.ClassID)
}

func parseBound(raw string) (time.Time, bool, error) {
	if t, err := time.ParseInLocation(dateLayout, raw, time.Local); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	return t, false, err
}

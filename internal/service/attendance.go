package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/logging"
	"github.com/voidAlex/student-roll-call/internal/spreadsheet"
)

// ListRecords возвращает записи посещаемости по фильтру.
func (s *Service) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.AttendanceRecord, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := validateFilter(filter); err != nil {
		return nil, err
	}
	return s.repo.ListRecords(ctx, filter)
}

// DeleteRecord удаляет запись посещаемости.
func (s *Service) DeleteRecord(ctx context.Context, recordID string) error {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("record", recordID); err != nil {
		return err
	}
	if err := s.repo.DeleteRecord(ctx, recordID); err != nil {
		return err
	}
	slog.InfoContext(logging.WithLogRecordID(ctx, recordID), "attendance record deleted")
	return nil
}

// ClearRecords удаляет весь журнал и возвращает число удалённых записей.
func (s *Service) ClearRecords(ctx context.Context) (int, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	n, err := s.repo.ClearRecords(ctx)
	if err != nil {
		return 0, err
	}
	slog.InfoContext(ctx, "attendance records cleared", "count", n)
	return n, nil
}

// ExportTemplate пишет шаблон импорта учеников.
func (s *Service) ExportTemplate(_ context.Context, w io.Writer) error {
	return spreadsheet.WriteTemplate(w)
}

// ExportStudents пишет ростер класса и возвращает класс для имени файла.
func (s *Service) ExportStudents(ctx context.Context, classID string, w io.Writer) (domain.Class, error) {
	ctx, cancel := s.longOperationContext(ctx)
	defer cancel()

	if err := ValidateID("class", classID); err != nil {
		return domain.Class{}, err
	}
	class, err := s.repo.GetClass(ctx, classID)
	if err != nil {
		return domain.Class{}, err
	}
	students, err := s.repo.ListClassStudents(ctx, classID, false)
	if err != nil {
		return domain.Class{}, err
	}
	return class, spreadsheet.WriteStudents(w, students)
}

// ExportAttendance пишет отчёт по записям фильтра. Имена учеников берутся
// из ростера, включая удалённых.
func (s *Service) ExportAttendance(ctx context.Context, filter domain.RecordFilter, w io.Writer) error {
	ctx, cancel := s.longOperationContext(ctx)
	defer cancel()

	if err := validateFilter(filter); err != nil {
		return err
	}
	report := spreadsheet.AttendanceReport{
		ClassNames: map[string]string{},
		Students:   map[string]domain.Student{},
	}
	var err error
	if report.Records, err = s.repo.ListRecords(ctx, filter); err != nil {
		return err
	}
	classes, err := s.repo.ListClasses(ctx)
	if err != nil {
		return err
	}
	for _, c := range classes {
		report.ClassNames[c.ID] = c.Name
	}
	for _, classID := range recordClassIDs(report.Records, report.ClassNames) {
		for _, deleted := range []bool{false, true} {
			students, err := s.repo.ListClassStudents(ctx, classID, deleted)
			if err != nil {
				return err
			}
			for _, st := range students {
				report.Students[st.ID] = st
			}
		}
	}
	return spreadsheet.WriteAttendanceReport(w, report)
}

// recordClassIDs возвращает классы записей, которые ещё существуют, в порядке появления.
func recordClassIDs(records []domain.AttendanceRecord, known map[string]string) []string {
	seen := map[string]struct{}{}
	ids := []string{}
	for _, r := range records {
		if _, ok := known[r.ClassID]; !ok {
			continue
		}
		if _, ok := seen[r.ClassID]; ok {
			continue
		}
		seen[r.ClassID] = struct{}{}
		ids = append(ids, r.ClassID)
	}
	return ids
}

func validateFilter(f domain.RecordFilter) error {
	if f.From != nil && f.To != nil && f.From.After(*f.To) {
		return invalid("date range start is after its end")
	}
	return nil
}

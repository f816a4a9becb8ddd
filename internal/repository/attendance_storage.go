package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

// SaveRecord сохраняет запись и её детали. Атомарность обеспечивает
// вызывающий через trm.Manager.
func (s *Storage) SaveRecord(ctx context.Context, record domain.AttendanceRecord) error {
	_, err := s.exec(ctx, s.sb.
		Insert("attendance_records").
		Columns("id", "class_id", "date", "type", "total", "present", "absent", "rate").
		Values(record.ID, record.ClassID, toMillis(record.Date), string(record.Type),
			record.Summary.Total, record.Summary.Present, record.Summary.Absent, record.Summary.Rate))
	if err != nil {
		slog.ErrorContext(ctx, "failed to insert attendance record", "error", err)
		return err
	}
	if len(record.Details) == 0 {
		return nil
	}

	insert := s.sb.
		Insert("attendance_details").
		Columns("record_id", "position", "student_id", "status", "time")
	for i, d := range record.Details {
		insert = insert.Values(record.ID, i, d.StudentID, string(d.Status), toMillis(d.Time))
	}
	if _, err := s.exec(ctx, insert); err != nil {
		slog.ErrorContext(ctx, "failed to insert attendance details", "error", err)
		return err
	}
	return nil
}

// DeleteRecord удаляет запись вместе с деталями.
func (s *Storage) DeleteRecord(ctx context.Context, recordID string) error {
	res, err := s.exec(ctx, s.sb.Delete("attendance_records").Where(squirrel.Eq{"id": recordID}))
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete attendance record", "error", err)
		return err
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrRecordNotFound
	}
	return nil
}

// ListRecords возвращает записи по фильтру, новые первыми.
func (s *Storage) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.AttendanceRecord, error) {
	q := s.sb.
		Select("id", "class_id", "date", "type", "total", "present", "absent", "rate").
		From("attendance_records").
		OrderBy("date DESC", "id ASC")
	if filter.ClassID != "" {
		q = q.Where(squirrel.Eq{"class_id": filter.ClassID})
	}
	if filter.From != nil {
		q = q.Where(squirrel.GtOrEq{"date": toMillis(*filter.From)})
	}
	if filter.To != nil {
		q = q.Where(squirrel.LtOrEq{"date": toMillis(*filter.To)})
	}

	rows, err := s.query(ctx, q)
	if err != nil {
		slog.ErrorContext(ctx, "failed to query attendance records", "error", err)
		return nil, err
	}
	defer rows.Close()

	records := []domain.AttendanceRecord{}
	index := map[string]int{}
	for rows.Next() {
		var (
			r       domain.AttendanceRecord
			date    int64
			recType string
		)
		if err := rows.Scan(&r.ID, &r.ClassID, &date, &recType,
			&r.Summary.Total, &r.Summary.Present, &r.Summary.Absent, &r.Summary.Rate); err != nil {
			slog.ErrorContext(ctx, "failed to scan attendance record", "error", err)
			return nil, fmt.Errorf("%w: %v", ErrScanResult, err)
		}
		r.Date = fromMillis(date)
		r.Type = domain.AttendanceType(recType)
		r.Details = []domain.AttendanceDetail{}
		index[r.ID] = len(records)
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanResult, err)
	}
	rows.Close()

	if len(records) == 0 {
		return records, nil
	}
	if err := s.loadDetails(ctx, records, index); err != nil {
		return nil, err
	}
	return records, nil
}

func (s *Storage) loadDetails(ctx context.Context, records []domain.AttendanceRecord, index map[string]int) error {
	ids := make([]string, 0, len(records))
	for _, r := range records {
		ids = append(ids, r.ID)
	}
	rows, err := s.query(ctx, s.sb.
		Select("record_id", "student_id", "status", "time").
		From("attendance_details").
		Where(squirrel.Eq{"record_id": ids}).
		OrderBy("record_id ASC", "position ASC"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to query attendance details", "error", err)
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			recordID, status string
			d                domain.AttendanceDetail
			at               int64
		)
		if err := rows.Scan(&recordID, &d.StudentID, &status, &at); err != nil {
			slog.ErrorContext(ctx, "failed to scan attendance detail", "error", err)
			return fmt.Errorf("%w: %v", ErrScanResult, err)
		}
		d.Status = domain.AttendanceStatus(status)
		d.Time = fromMillis(at)
		i := index[recordID]
		records[i].Details = append(records[i].Details, d)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrScanResult, err)
	}
	return nil
}

// ClearRecords удаляет все записи и возвращает их количество.
func (s *Storage) ClearRecords(ctx context.Context) (int, error) {
	res, err := s.exec(ctx, s.sb.Delete("attendance_records"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to clear attendance records", "error", err)
		return 0, err
	}
	n, err := affected(res)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

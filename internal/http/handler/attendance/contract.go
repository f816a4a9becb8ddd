package attendance

import (
	"context"
	"io"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

type UseCase interface {
	ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.AttendanceRecord, error)
	DeleteRecord(ctx context.Context, recordID string) error
	ClearRecords(ctx context.Context) (int, error)
	ExportAttendance(ctx context.Context, filter domain.RecordFilter, w io.Writer) error
}

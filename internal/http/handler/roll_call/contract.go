package rollcall

import (
	"context"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/service"
)

type UseCase interface {
	StartRollCall(ctx context.Context, classID string) (service.RollCallState, error)
	CurrentRollCall(ctx context.Context) (service.RollCallState, bool)
	MarkStudent(ctx context.Context, studentID string, status domain.AttendanceStatus) (service.MarkResult, error)
	EndRollCall(ctx context.Context) (*domain.AttendanceRecord, error)
}

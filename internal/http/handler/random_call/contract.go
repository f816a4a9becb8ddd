package randomcall

import (
	"context"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

type UseCase interface {
	StartRandomCall(ctx context.Context, classID string) (domain.RandomCallSession, error)
	CurrentRandomCall(ctx context.Context) (domain.RandomCallSession, bool)
	PerformRandomPick(ctx context.Context) ([]domain.RollCallStudent, error)
	AddToHistory(ctx context.Context, selection []domain.RollCallStudent) (domain.HistoryEntry, bool)
	EndRandomCall(ctx context.Context) (domain.RandomCallSession, bool)
	RandomCallSettings(ctx context.Context) domain.RandomCallSettings
	UpdateRandomCallSettings(ctx context.Context, patch domain.SettingsPatch) (domain.RandomCallSettings, error)
}

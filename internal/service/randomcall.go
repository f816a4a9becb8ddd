package service

import (
	"context"
	"log/slog"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/logging"
	"github.com/voidAlex/student-roll-call/internal/metrics"
)

// StartRandomCall начинает случайный вызов по текущему составу класса.
// Активная сессия заменяется новой (в строгом режиме ErrSessionActive).
func (s *Service) StartRandomCall(ctx context.Context, classID string) (domain.RandomCallSession, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("class", classID); err != nil {
		return domain.RandomCallSession{}, err
	}
	roster, err := s.roster(ctx, classID)
	if err != nil {
		return domain.RandomCallSession{}, err
	}
	session, err := s.randomCall.Start(classID, roster)
	if err != nil {
		return domain.RandomCallSession{}, err
	}
	metrics.IncSessionsStarted(metrics.SessionRandomCall)
	slog.InfoContext(logging.WithLogSessionID(logging.WithLogClassID(ctx, classID), session.ID),
		"random call started", "students", len(session.Students), "pick_count", session.Settings.PickCount)
	return session, nil
}

// PerformRandomPick выбирает учеников. Результат не попадает в историю,
// пока его не подтвердят через AddToHistory.
func (s *Service) PerformRandomPick(ctx context.Context) ([]domain.RollCallStudent, error) {
	picked, err := s.randomCall.PerformPick()
	if err != nil {
		return nil, err
	}
	metrics.IncRandomPicks(len(picked))
	slog.DebugContext(logging.WithLogPickCount(ctx, len(picked)), "random pick performed")
	return picked, nil
}

// AddToHistory фиксирует выбор в истории сессии. Без активной сессии ничего не делает.
func (s *Service) AddToHistory(ctx context.Context, selection []domain.RollCallStudent) (domain.HistoryEntry, bool) {
	entry, err := s.randomCall.AddToHistory(selection)
	if err != nil {
		return domain.HistoryEntry{}, false
	}
	metrics.IncHistoryCommits()
	slog.DebugContext(logging.WithLogPickCount(ctx, len(entry.SelectedStudents)), "random pick committed")
	return entry, true
}

// UpdateRandomCallSettings меняет глобальные настройки для следующих сессий.
func (s *Service) UpdateRandomCallSettings(ctx context.Context, patch domain.SettingsPatch) (domain.RandomCallSettings, error) {
	settings, err := s.randomCall.UpdateSettings(patch)
	if err != nil {
		return domain.RandomCallSettings{}, err
	}
	slog.InfoContext(ctx, "random call settings updated",
		"pick_count", settings.PickCount, "exclude_selected", settings.ExcludeSelected)
	return settings, nil
}

// EndRandomCall завершает сессию и возвращает её итоговую копию.
func (s *Service) EndRandomCall(ctx context.Context) (domain.RandomCallSession, bool) {
	session, ok := s.randomCall.End()
	if !ok {
		return domain.RandomCallSession{}, false
	}
	metrics.IncSessionsEnded(metrics.SessionRandomCall)
	slog.InfoContext(logging.WithLogSessionID(ctx, session.ID), "random call ended", "history", len(session.History))
	return session, true
}

// CurrentRandomCall возвращает копию активной сессии.
func (s *Service) CurrentRandomCall(_ context.Context) (domain.RandomCallSession, bool) {
	return s.randomCall.Current()
}

// RandomCallSettings возвращает глобальные настройки.
func (s *Service) RandomCallSettings(_ context.Context) domain.RandomCallSettings {
	return s.randomCall.Settings()
}

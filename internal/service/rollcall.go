package service

import (
	"context"
	"log/slog"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/logging"
	"github.com/voidAlex/student-roll-call/internal/metrics"
)

// RollCallState снимок последовательной переклички для интерфейса.
type RollCallState struct {
	Session  domain.RollCallSession  `json:"session"`
	Current  *domain.RollCallEntry   `json:"current,omitempty"`
	Progress domain.RollCallProgress `json:"progress"`
}

// MarkResult итог отметки. Record заполнен, если отметка завершила перекличку.
type MarkResult struct {
	RollCallState
	Record *domain.AttendanceRecord `json:"record,omitempty"`
}

func (s *Service) rollCallState(session domain.RollCallSession) RollCallState {
	state := RollCallState{Session: session, Progress: s.rollCall.Progress()}
	if entry, ok := s.rollCall.CurrentStudent(); ok {
		state.Current = &entry
	}
	return state
}

// StartRollCall начинает перекличку по текущему составу класса.
func (s *Service) StartRollCall(ctx context.Context, classID string) (RollCallState, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("class", classID); err != nil {
		return RollCallState{}, err
	}
	roster, err := s.roster(ctx, classID)
	if err != nil {
		return RollCallState{}, err
	}
	session, err := s.rollCall.Start(classID, roster)
	if err != nil {
		return RollCallState{}, err
	}
	metrics.IncSessionsStarted(metrics.SessionRollCall)
	slog.InfoContext(logging.WithLogSessionID(logging.WithLogClassID(ctx, classID), session.ID),
		"roll call started", "students", len(session.Students))
	return s.rollCallState(session), nil
}

// CurrentRollCall возвращает текущую перекличку.
func (s *Service) CurrentRollCall(_ context.Context) (RollCallState, bool) {
	session, ok := s.rollCall.Current()
	if !ok {
		return RollCallState{}, false
	}
	return s.rollCallState(session), true
}

// MarkStudent отмечает ученика. Завершающая отметка сохраняет запись посещаемости.
func (s *Service) MarkStudent(ctx context.Context, studentID string, status domain.AttendanceStatus) (MarkResult, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("student", studentID); err != nil {
		return MarkResult{}, err
	}
	session, record, err := s.rollCall.Mark(studentID, status)
	if err != nil {
		return MarkResult{}, err
	}
	result := MarkResult{RollCallState: s.rollCallState(session), Record: record}
	if record == nil {
		return result, nil
	}
	if err := s.saveRecord(ctx, *record); err != nil {
		return MarkResult{}, err
	}
	s.rollCall.Saved(record.ID)
	metrics.IncSessionsEnded(metrics.SessionRollCall)
	return result, nil
}

// EndRollCall завершает перекличку. Незавершённая перекличка сохраняется
// записью по уже сделанным отметкам, как и запись, которую не удалось сохранить
// при последней отметке. При ошибке сохранения перекличка остаётся в слоте.
func (s *Service) EndRollCall(ctx context.Context) (*domain.AttendanceRecord, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	record, ok := s.rollCall.Finish()
	if !ok {
		return nil, domain.ErrNoActiveSession
	}
	if record != nil {
		if err := s.saveRecord(ctx, *record); err != nil {
			return nil, err
		}
		s.rollCall.Saved(record.ID)
		metrics.IncSessionsEnded(metrics.SessionRollCall)
	}
	s.rollCall.End()
	return record, nil
}

func (s *Service) saveRecord(ctx context.Context, record domain.AttendanceRecord) error {
	ctx = logging.WithLogRecordID(logging.WithLogClassID(ctx, record.ClassID), record.ID)
	err := s.trMgr.Do(ctx, func(ctx context.Context) error {
		return s.repo.SaveRecord(ctx, record)
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to save attendance record", "error", err)
		return logging.WrapError(ctx, err)
	}
	metrics.IncRecordsSaved(string(record.Type))
	slog.InfoContext(ctx, "attendance record saved", "rate", record.Summary.Rate)
	return nil
}

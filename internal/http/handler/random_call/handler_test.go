package randomcall

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

type stubUseCase struct {
	active    bool
	settings  domain.RandomCallSettings
	committed [][]domain.RollCallStudent
	pickErr   error
}

func (s *stubUseCase) StartRandomCall(ctx context.Context, classID string) (domain.RandomCallSession, error) {
	s.active = true
	return domain.RandomCallSession{ID: "rnd1", ClassID: classID, Settings: s.settings}, nil
}

func (s *stubUseCase) CurrentRandomCall(ctx context.Context) (domain.RandomCallSession, bool) {
	return domain.RandomCallSession{ID: "rnd1"}, s.active
}

func (s *stubUseCase) PerformRandomPick(ctx context.Context) ([]domain.RollCallStudent, error) {
	if s.pickErr != nil {
		return nil, s.pickErr
	}
	return []domain.RollCallStudent{{StudentID: "s1", Name: "张三"}}, nil
}

func (s *stubUseCase) AddToHistory(ctx context.Context, selection []domain.RollCallStudent) (domain.HistoryEntry, bool) {
	if !s.active {
		return domain.HistoryEntry{}, false
	}
	s.committed = append(s.committed, selection)
	return domain.HistoryEntry{ID: "h1", SelectedStudents: selection}, true
}

func (s *stubUseCase) EndRandomCall(ctx context.Context) (domain.RandomCallSession, bool) {
	if !s.active {
		return domain.RandomCallSession{}, false
	}
	s.active = false
	return domain.RandomCallSession{ID: "rnd1", IsCompleted: true}, true
}

func (s *stubUseCase) RandomCallSettings(ctx context.Context) domain.RandomCallSettings {
	return s.settings
}

func (s *stubUseCase) UpdateRandomCallSettings(ctx context.Context, patch domain.SettingsPatch) (domain.RandomCallSettings, error) {
	next := s.settings.Apply(patch)
	if next.PickCount < 1 {
		return s.settings, domain.ErrInvalidSettings
	}
	s.settings = next
	return next, nil
}

func serve(useCase UseCase, method, target, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	New(useCase).Register(router)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rec
}

func TestHandler_SessionLifecycle(t *testing.T) {
	t.Parallel()
	useCase := &stubUseCase{settings: domain.DefaultRandomCallSettings()}

	rec := serve(useCase, http.MethodPost, "/random-call/start", `{"class_id":"c1"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	require.Contains(t, rec.Body.String(), `"class_id":"c1"`)

	rec = serve(useCase, http.MethodGet, "/random-call", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = serve(useCase, http.MethodPost, "/random-call/pick", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var picked map[string][]domain.RollCallStudent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &picked))
	require.Len(t, picked["selected"], 1)

	rec = serve(useCase, http.MethodPost, "/random-call/history", `{"selected_students":[{"student_id":"s1","name":"张三","student_no":"01"}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	var committed struct {
		Committed bool                `json:"committed"`
		Entry     domain.HistoryEntry `json:"entry"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &committed))
	require.True(t, committed.Committed)
	require.Equal(t, "s1", committed.Entry.SelectedStudents[0].StudentID)

	rec = serve(useCase, http.MethodPost, "/random-call/end", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.Contains(t, rec.Body.String(), `"is_completed":true`)

	rec = serve(useCase, http.MethodPost, "/random-call/end", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"session":null}`, rec.Body.String())
}

func TestHandler_EndWithoutSessionIsNoop(t *testing.T) {
	t.Parallel()
	useCase := &stubUseCase{}
	rec := serve(useCase, http.MethodPost, "/random-call/end", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"session":null}`, rec.Body.String())
	require.False(t, useCase.active)
}

func TestHandler_HistoryWithoutSession(t *testing.T) {
	t.Parallel()
	useCase := &stubUseCase{}
	rec := serve(useCase, http.MethodPost, "/random-call/history", `{"selected_students":[]}`)

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"committed":false}`, rec.Body.String())
	require.Empty(t, useCase.committed)
}

func TestHandler_PickErrors(t *testing.T) {
	t.Parallel()
	rec := serve(&stubUseCase{pickErr: domain.ErrPoolExhausted}, http.MethodPost, "/random-call/pick", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "POOL_EXHAUSTED")

	rec = serve(&stubUseCase{pickErr: domain.ErrNoActiveSession}, http.MethodPost, "/random-call/pick", "")
	require.Equal(t, http.StatusConflict, rec.Code)
	require.Contains(t, rec.Body.String(), "NO_ACTIVE_SESSION")
}

func TestHandler_Settings(t *testing.T) {
	t.Parallel()
	useCase := &stubUseCase{settings: domain.DefaultRandomCallSettings()}

	rec := serve(useCase, http.MethodGet, "/random-call/settings", "")
	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"settings":{"pick_count":1,"exclude_selected":false,"enable_sound":true}}`, rec.Body.String())

	rec = serve(useCase, http.MethodPatch, "/random-call/settings", `{"pick_count":3,"exclude_selected":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, 3, useCase.settings.PickCount)
	require.True(t, useCase.settings.ExcludeSelected)

	rec = serve(useCase, http.MethodPatch, "/random-call/settings", `{"pick_count":0}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "INVALID_SETTINGS")
}

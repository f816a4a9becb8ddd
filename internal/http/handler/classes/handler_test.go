package classes

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
	created []string
	patch   domain.ClassPatch
	deleted string
	getErr  error
	classes []domain.Class
}

func (s *stubUseCase) CreateClass(ctx context.Context, name, grade, note string) (domain.Class, error) {
	s.created = []string{name, grade, note}
	return domain.Class{ID: "c1", Name: name, Grade: grade, Note: note}, nil
}

func (s *stubUseCase) GetClass(ctx context.Context, classID string) (domain.Class, error) {
	if s.getErr != nil {
		return domain.Class{}, s.getErr
	}
	return domain.Class{ID: classID}, nil
}

func (s *stubUseCase) ListClasses(ctx context.Context) ([]domain.Class, error) {
	return s.classes, nil
}

func (s *stubUseCase) UpdateClass(ctx context.Context, classID string, patch domain.ClassPatch) (domain.Class, error) {
	s.patch = patch
	return domain.Class{ID: classID, Name: *patch.Name}, nil
}

func (s *stubUseCase) DeleteClass(ctx context.Context, classID string) error {
	s.deleted = classID
	return nil
}

func newRouter(useCase UseCase) http.Handler {
	router := chi.NewRouter()
	New(useCase).Register(router)
	return router
}

func TestHandler_Create(t *testing.T) {
	t.Parallel()
	useCase := &stubUseCase{}
	req := httptest.NewRequest(http.MethodPost, "/classes", strings.NewReader(`{"name":"一班","grade":"三年级"}`))
	rec := httptest.NewRecorder()

	newRouter(useCase).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, []string{"一班", "三年级", ""}, useCase.created)
	var body map[string]domain.Class
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Equal(t, "c1", body["class"].ID)
}

func TestHandler_CreateValidation(t *testing.T) {
	t.Parallel()
	for _, payload := range []string{`{"name":"一班"}`, `not json`, `{"name":"a","grade":"b","extra":1}`} {
		rec := httptest.NewRecorder()
		newRouter(&stubUseCase{}).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/classes", strings.NewReader(payload)))
		require.Equal(t, http.StatusBadRequest, rec.Code, payload)
	}
}

func TestHandler_ListReturnsEmptyArray(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	newRouter(&stubUseCase{classes: []domain.Class{}}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/classes", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"classes":[]}`, rec.Body.String())
}

func TestHandler_GetNotFound(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	newRouter(&stubUseCase{getErr: domain.ErrClassNotFound}).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/classes/ghost", nil))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandler_UpdateAndDelete(t *testing.T) {
	t.Parallel()
	useCase := &stubUseCase{}
	router := newRouter(useCase)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/classes/c1", strings.NewReader(`{"name":"二班"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "二班", *useCase.patch.Name)
	require.Nil(t, useCase.patch.Grade)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/classes/c1", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "c1", useCase.deleted)
}

package studentsxlsx

import (
	"bytes"
	"context"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

type stubUseCase struct {
	uploaded []byte
	classID  string
	err      error
}

func (s *stubUseCase) ImportStudents(ctx context.Context, classID string, r io.Reader) (domain.ImportResult, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return domain.ImportResult{}, err
	}
	s.uploaded = data
	s.classID = classID
	if s.err != nil {
		return domain.ImportResult{}, s.err
	}
	return domain.ImportResult{Success: 2, Errors: []string{"row 4: name is required"}}, nil
}

func (s *stubUseCase) ExportStudents(ctx context.Context, classID string, w io.Writer) (domain.Class, error) {
	_, _ = w.Write([]byte("students"))
	return domain.Class{ID: classID, Name: "一班"}, nil
}

func (s *stubUseCase) ExportTemplate(ctx context.Context, w io.Writer) error {
	_, err := w.Write([]byte("template"))
	return err
}

func newRouter(useCase UseCase, maxUpload int64) http.Handler {
	h := New(useCase, maxUpload)
	h.now = func() time.Time { return time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC) }
	router := chi.NewRouter()
	h.Register(router)
	return router
}

func multipartBody(t *testing.T, field string, content []byte) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile(field, "students.xlsx")
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func TestHandler_Import(t *testing.T) {
	t.Parallel()
	useCase := &stubUseCase{}
	body, contentType := multipartBody(t, "file", []byte("xlsx-bytes"))
	req := httptest.NewRequest(http.MethodPost, "/classes/c1/students/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newRouter(useCase, 1<<20).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "c1", useCase.classID)
	require.Equal(t, []byte("xlsx-bytes"), useCase.uploaded)
	require.JSONEq(t, `{"success":2,"errors":["row 4: name is required"]}`, rec.Body.String())
}

func TestHandler_ImportMissingFile(t *testing.T) {
	t.Parallel()
	body, contentType := multipartBody(t, "other", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/classes/c1/students/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newRouter(&stubUseCase{}, 1<<20).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ImportTooLarge(t *testing.T) {
	t.Parallel()
	body, contentType := multipartBody(t, "file", bytes.Repeat([]byte("x"), 4096))
	req := httptest.NewRequest(http.MethodPost, "/classes/c1/students/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newRouter(&stubUseCase{}, 512).ServeHTTP(rec, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestHandler_ImportNoValidRows(t *testing.T) {
	t.Parallel()
	body, contentType := multipartBody(t, "file", []byte("x"))
	req := httptest.NewRequest(http.MethodPost, "/classes/c1/students/import", body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()

	newRouter(&stubUseCase{err: domain.ErrNoValidRows}, 1<<20).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "NO_VALID_ROWS")
}

func TestHandler_ExportStudents(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	newRouter(&stubUseCase{}, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/classes/c1/students/export", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "students", rec.Body.String())
	_, params, err := mime.ParseMediaType(rec.Header().Get("Content-Disposition"))
	require.NoError(t, err)
	require.Equal(t, "一班_学生名单_2024-09-01.xlsx", params["filename"])
}

func TestHandler_Template(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()
	newRouter(&stubUseCase{}, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students/template", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "template", rec.Body.String())
	require.Contains(t, rec.Header().Get("Content-Type"), "spreadsheetml")
}

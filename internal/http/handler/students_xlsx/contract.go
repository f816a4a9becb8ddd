package studentsxlsx

import (
	"context"
	"io"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

type UseCase interface {
	ImportStudents(ctx context.Context, classID string, r io.Reader) (domain.ImportResult, error)
	ExportStudents(ctx context.Context, classID string, w io.Writer) (domain.Class, error)
	ExportTemplate(ctx context.Context, w io.Writer) error
}

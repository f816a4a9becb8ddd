package students

import (
	"context"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

type UseCase interface {
	ListStudents(ctx context.Context, classID, keyword string, deleted bool) ([]domain.Student, error)
	AddStudent(ctx context.Context, classID string, in domain.StudentInput) (domain.Student, error)
	GetStudent(ctx context.Context, studentID string) (domain.Student, error)
	UpdateStudent(ctx context.Context, studentID string, patch domain.StudentPatch) (domain.Student, error)
	DeleteStudent(ctx context.Context, studentID string, permanent bool) error
	RestoreStudent(ctx context.Context, studentID string) (domain.Student, error)
}

package classes

import (
	"context"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

type UseCase interface {
	CreateClass(ctx context.Context, name, grade, note string) (domain.Class, error)
	GetClass(ctx context.Context, classID string) (domain.Class, error)
	ListClasses(ctx context.Context) ([]domain.Class, error)
	UpdateClass(ctx context.Context, classID string, patch domain.ClassPatch) (domain.Class, error)
	DeleteClass(ctx context.Context, classID string) error
}

package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/logging"
)

// CreateClass создаёт класс. Имя и параллель обязательны.
func (s *Service) CreateClass(ctx context.Context, name, grade, note string) (domain.Class, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	class := domain.Class{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(name),
		Grade: strings.TrimSpace(grade),
		Note:  strings.TrimSpace(note),
	}
	if err := ValidateClass(class); err != nil {
		return domain.Class{}, err
	}
	created, err := s.repo.CreateClass(ctx, class)
	if err != nil {
		return domain.Class{}, err
	}
	slog.InfoContext(logging.WithLogClassID(ctx, created.ID), "class created")
	return created, nil
}

// GetClass возвращает класс.
func (s *Service) GetClass(ctx context.Context, classID string) (domain.Class, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("class", classID); err != nil {
		return domain.Class{}, err
	}
	return s.repo.GetClass(ctx, classID)
}

// ListClasses возвращает все классы.
func (s *Service) ListClasses(ctx context.Context) ([]domain.Class, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	return s.repo.ListClasses(ctx)
}

// UpdateClass применяет частичное обновление.
func (s *Service) UpdateClass(ctx context.Context, classID string, patch domain.ClassPatch) (domain.Class, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("class", classID); err != nil {
		return domain.Class{}, err
	}
	var updated domain.Class
	err := s.trMgr.Do(ctx, func(ctx context.Context) error {
		class, err := s.repo.GetClass(ctx, classID)
		if err != nil {
			return err
		}
		if patch.Name != nil {
			class.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Grade != nil {
			class.Grade = strings.TrimSpace(*patch.Grade)
		}
		if patch.Note != nil {
			class.Note = strings.TrimSpace(*patch.Note)
		}
		if err := ValidateClass(class); err != nil {
			return err
		}
		updated, err = s.repo.UpdateClass(ctx, class)
		return err
	})
	if err != nil {
		return domain.Class{}, err
	}
	return updated, nil
}

// DeleteClass удаляет класс вместе с его учениками.
func (s *Service) DeleteClass(ctx context.Context, classID string) error {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("class", classID); err != nil {
		return err
	}
	if err := s.repo.DeleteClass(ctx, classID); err != nil {
		return err
	}
	slog.InfoContext(logging.WithLogClassID(ctx, classID), "class deleted")
	return nil
}

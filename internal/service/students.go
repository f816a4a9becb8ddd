package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/logging"
	"github.com/voidAlex/student-roll-call/internal/metrics"
	"github.com/voidAlex/student-roll-call/internal/spreadsheet"
)

func normalizeInput(in domain.StudentInput) domain.StudentInput {
	in.StudentNo = strings.TrimSpace(in.StudentNo)
	in.Name = strings.TrimSpace(in.Name)
	in.Avatar = strings.TrimSpace(in.Avatar)
	if in.Gender == "" {
		in.Gender = domain.GenderMale
	}
	return in
}

// AddStudent добавляет ученика в класс. Номер уникален среди текущих учеников класса,
// без аватара назначается случайный emoji.
func (s *Service) AddStudent(ctx context.Context, classID string, in domain.StudentInput) (domain.Student, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("class", classID); err != nil {
		return domain.Student{}, err
	}
	in = normalizeInput(in)
	if err := ValidateStudent(in); err != nil {
		return domain.Student{}, err
	}

	var created domain.Student
	err := s.trMgr.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.insertStudent(ctx, classID, in)
		return err
	})
	if err != nil {
		return domain.Student{}, err
	}
	slog.InfoContext(logging.WithLogStudentID(logging.WithLogClassID(ctx, classID), created.ID), "student added")
	return created, nil
}

func (s *Service) insertStudent(ctx context.Context, classID string, in domain.StudentInput) (domain.Student, error) {
	taken, err := s.repo.StudentNoTaken(ctx, classID, in.StudentNo, "")
	if err != nil {
		return domain.Student{}, err
	}
	if taken {
		return domain.Student{}, domain.ErrStudentNoExists
	}
	avatar := in.Avatar
	if avatar == "" {
		avatar = randomAvatar(s.randomizer)
	}
	return s.repo.CreateStudent(ctx, domain.Student{
		ID:        uuid.NewString(),
		ClassID:   classID,
		StudentNo: in.StudentNo,
		Name:      in.Name,
		Gender:    in.Gender,
		Avatar:    avatar,
	})
}

// ImportStudents разбирает xlsx и добавляет учеников построчно.
// Ошибки отдельных строк собираются в результат, ошибки хранилища прерывают импорт.
func (s *Service) ImportStudents(ctx context.Context, classID string, r io.Reader) (domain.ImportResult, error) {
	ctx, cancel := s.longOperationContext(ctx)
	defer cancel()

	if err := ValidateID("class", classID); err != nil {
		return domain.ImportResult{}, err
	}
	inputs, err := spreadsheet.ParseStudents(r)
	if err != nil {
		return domain.ImportResult{}, err
	}

	var result domain.ImportResult
	err = s.trMgr.Do(ctx, func(ctx context.Context) error {
		if _, err := s.repo.GetClass(ctx, classID); err != nil {
			return err
		}
		result = domain.ImportResult{Errors: []string{}}
		for i, in := range inputs {
			row := i + 1
			in = normalizeInput(in)
			if err := ValidateStudent(in); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: %v", row, err))
				continue
			}
			_, err := s.insertStudent(ctx, classID, in)
			if errors.Is(err, domain.ErrStudentNoExists) {
				result.Errors = append(result.Errors, fmt.Sprintf("row %d: student number %s already exists", row, in.StudentNo))
				continue
			}
			if err != nil {
				return err
			}
			result.Success++
		}
		return nil
	})
	if err != nil {
		return domain.ImportResult{}, logging.WrapError(logging.WithLogClassID(ctx, classID), err)
	}
	metrics.AddStudentsImported(result.Success)
	slog.InfoContext(logging.WithLogClassID(ctx, classID), "students imported",
		"success", result.Success, "failed", len(result.Errors))
	return result, nil
}

// GetStudent возвращает ученика.
func (s *Service) GetStudent(ctx context.Context, studentID string) (domain.Student, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("student", studentID); err != nil {
		return domain.Student{}, err
	}
	return s.repo.GetStudent(ctx, studentID)
}

// UpdateStudent применяет частичное обновление. Смена номера проверяет уникальность.
func (s *Service) UpdateStudent(ctx context.Context, studentID string, patch domain.StudentPatch) (domain.Student, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("student", studentID); err != nil {
		return domain.Student{}, err
	}
	var updated domain.Student
	err := s.trMgr.Do(ctx, func(ctx context.Context) error {
		st, err := s.repo.GetStudent(ctx, studentID)
		if err != nil {
			return err
		}
		in := domain.StudentInput{StudentNo: st.StudentNo, Name: st.Name, Gender: st.Gender, Avatar: st.Avatar}
		if patch.StudentNo != nil {
			in.StudentNo = *patch.StudentNo
		}
		if patch.Name != nil {
			in.Name = *patch.Name
		}
		if patch.Gender != nil {
			in.Gender = *patch.Gender
		}
		if patch.Avatar != nil {
			in.Avatar = *patch.Avatar
		}
		in = normalizeInput(in)
		if err := ValidateStudent(in); err != nil {
			return err
		}
		if in.StudentNo != st.StudentNo && !st.IsDeleted {
			taken, err := s.repo.StudentNoTaken(ctx, st.ClassID, in.StudentNo, st.ID)
			if err != nil {
				return err
			}
			if taken {
				return domain.ErrStudentNoExists
			}
		}
		st.StudentNo, st.Name, st.Gender, st.Avatar = in.StudentNo, in.Name, in.Gender, in.Avatar
		updated, err = s.repo.UpdateStudent(ctx, st)
		return err
	})
	if err != nil {
		return domain.Student{}, err
	}
	return updated, nil
}

// DeleteStudent мягко удаляет ученика, permanent удаляет запись насовсем.
func (s *Service) DeleteStudent(ctx context.Context, studentID string, permanent bool) error {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("student", studentID); err != nil {
		return err
	}
	ctx = logging.WithLogStudentID(ctx, studentID)
	if permanent {
		if err := s.repo.DeleteStudent(ctx, studentID); err != nil {
			return err
		}
		slog.InfoContext(ctx, "student permanently deleted")
		return nil
	}
	if _, err := s.repo.SetStudentDeleted(ctx, studentID, true); err != nil {
		return err
	}
	slog.InfoContext(ctx, "student deleted")
	return nil
}

// RestoreStudent возвращает удалённого ученика в состав.
// Если его номер успели занять, возвращает ErrStudentNoExists.
func (s *Service) RestoreStudent(ctx context.Context, studentID string) (domain.Student, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("student", studentID); err != nil {
		return domain.Student{}, err
	}
	var restored domain.Student
	err := s.trMgr.Do(ctx, func(ctx context.Context) error {
		st, err := s.repo.GetStudent(ctx, studentID)
		if err != nil {
			return err
		}
		if !st.IsDeleted {
			restored = st
			return nil
		}
		taken, err := s.repo.StudentNoTaken(ctx, st.ClassID, st.StudentNo, st.ID)
		if err != nil {
			return err
		}
		if taken {
			return domain.ErrStudentNoExists
		}
		restored, err = s.repo.SetStudentDeleted(ctx, studentID, false)
		return err
	})
	if err != nil {
		return domain.Student{}, err
	}
	return restored, nil
}

// ListStudents возвращает текущих (или удалённых) учеников класса.
// Непустой keyword фильтрует по вхождению в имя или номер.
func (s *Service) ListStudents(ctx context.Context, classID, keyword string, deleted bool) ([]domain.Student, error) {
	ctx, cancel := s.shortOperationContext(ctx)
	defer cancel()

	if err := ValidateID("class", classID); err != nil {
		return nil, err
	}
	students, err := s.repo.ListClassStudents(ctx, classID, deleted)
	if err != nil {
		return nil, err
	}
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return students, nil
	}
	filtered := make([]domain.Student, 0, len(students))
	for _, st := range students {
		if strings.Contains(strings.ToLower(st.Name), keyword) || strings.Contains(strings.ToLower(st.StudentNo), keyword) {
			filtered = append(filtered, st)
		}
	}
	return filtered, nil
}

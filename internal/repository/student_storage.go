package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

func (s *Storage) selectStudents() squirrel.SelectBuilder {
	return s.sb.
		Select("id", "class_id", "student_no", "name", "gender", "avatar", "created_at", "is_deleted").
		From("students")
}

func scanStudent(row rowScanner) (domain.Student, error) {
	var (
		st        domain.Student
		gender    string
		createdAt int64
		deleted   int
	)
	if err := row.Scan(&st.ID, &st.ClassID, &st.StudentNo, &st.Name, &gender, &st.Avatar, &createdAt, &deleted); err != nil {
		return domain.Student{}, err
	}
	st.Gender = domain.Gender(gender)
	st.CreatedAt = fromMillis(createdAt)
	st.IsDeleted = deleted != 0
	return st, nil
}

// CreateStudent сохраняет ученика. Класс должен существовать.
func (s *Storage) CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	if _, err := s.GetClass(ctx, student.ClassID); err != nil {
		return domain.Student{}, err
	}
	_, err := s.exec(ctx, s.sb.
		Insert("students").
		Columns("id", "class_id", "student_no", "name", "gender", "avatar", "created_at", "is_deleted").
		Values(student.ID, student.ClassID, student.StudentNo, student.Name, string(student.Gender),
			student.Avatar, toMillis(s.nower.Now()), boolToInt(student.IsDeleted)))
	if err != nil {
		slog.ErrorContext(ctx, "failed to insert student", "error", err, "student_id", student.ID)
		return domain.Student{}, err
	}
	return s.GetStudent(ctx, student.ID)
}

// GetStudent возвращает ученика, в том числе удалённого.
func (s *Storage) GetStudent(ctx context.Context, studentID string) (domain.Student, error) {
	row, err := s.queryRow(ctx, s.selectStudents().Where(squirrel.Eq{"id": studentID}))
	if err != nil {
		return domain.Student{}, err
	}
	st, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Student{}, domain.ErrStudentNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to scan student", "error", err)
		return domain.Student{}, fmt.Errorf("%w: %v", ErrScanResult, err)
	}
	return st, nil
}

// UpdateStudent перезаписывает редактируемые поля ученика.
func (s *Storage) UpdateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	res, err := s.exec(ctx, s.sb.
		Update("students").
		Set("student_no", student.StudentNo).
		Set("name", student.Name).
		Set("gender", string(student.Gender)).
		Set("avatar", student.Avatar).
		Where(squirrel.Eq{"id": student.ID}))
	if err != nil {
		slog.ErrorContext(ctx, "failed to update student", "error", err)
		return domain.Student{}, err
	}
	n, err := affected(res)
	if err != nil {
		return domain.Student{}, err
	}
	if n == 0 {
		return domain.Student{}, domain.ErrStudentNotFound
	}
	return s.GetStudent(ctx, student.ID)
}

// SetStudentDeleted переключает признак мягкого удаления.
func (s *Storage) SetStudentDeleted(ctx context.Context, studentID string, deleted bool) (domain.Student, error) {
	res, err := s.exec(ctx, s.sb.
		Update("students").
		Set("is_deleted", boolToInt(deleted)).
		Where(squirrel.Eq{"id": studentID}))
	if err != nil {
		slog.ErrorContext(ctx, "failed to update student deleted flag", "error", err)
		return domain.Student{}, err
	}
	n, err := affected(res)
	if err != nil {
		return domain.Student{}, err
	}
	if n == 0 {
		return domain.Student{}, domain.ErrStudentNotFound
	}
	return s.GetStudent(ctx, studentID)
}

// DeleteStudent удаляет ученика без возможности восстановления.
func (s *Storage) DeleteStudent(ctx context.Context, studentID string) error {
	res, err := s.exec(ctx, s.sb.Delete("students").Where(squirrel.Eq{"id": studentID}))
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete student", "error", err)
		return err
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrStudentNotFound
	}
	return nil
}

// ListClassStudents возвращает учеников класса. Неизвестный класс даёт ErrClassNotFound.
func (s *Storage) ListClassStudents(ctx context.Context, classID string, deleted bool) ([]domain.Student, error) {
	if _, err := s.GetClass(ctx, classID); err != nil {
		return nil, err
	}
	rows, err := s.query(ctx, s.selectStudents().
		Where(squirrel.Eq{"class_id": classID, "is_deleted": boolToInt(deleted)}).
		OrderBy("created_at ASC", "rowid ASC"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to query students", "error", err)
		return nil, err
	}
	defer rows.Close()

	students := []domain.Student{}
	for rows.Next() {
		st, err := scanStudent(rows)
		if err != nil {
			slog.ErrorContext(ctx, "failed to scan student", "error", err)
			return nil, fmt.Errorf("%w: %v", ErrScanResult, err)
		}
		students = append(students, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanResult, err)
	}
	return students, nil
}

// StudentNoTaken проверяет, занят ли номер среди неудалённых учеников класса.
func (s *Storage) StudentNoTaken(ctx context.Context, classID, studentNo, excludeID string) (bool, error) {
	q := s.sb.
		Select("COUNT(*)").
		From("students").
		Where(squirrel.Eq{"class_id": classID, "student_no": studentNo, "is_deleted": 0})
	if excludeID != "" {
		q = q.Where(squirrel.NotEq{"id": excludeID})
	}
	row, err := s.queryRow(ctx, q)
	if err != nil {
		return false, err
	}
	var cnt int
	if err := row.Scan(&cnt); err != nil {
		slog.ErrorContext(ctx, "failed to check student number", "error", err)
		return false, fmt.Errorf("%w: %v", ErrScanResult, err)
	}
	return cnt > 0, nil
}

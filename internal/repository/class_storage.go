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

const studentCountExpr = "(SELECT COUNT(*) FROM students s WHERE s.class_id = c.id AND s.is_deleted = 0) AS student_count"

func (s *Storage) selectClasses() squirrel.SelectBuilder {
	return s.sb.
		Select("c.id", "c.name", "c.grade", "c.note", studentCountExpr, "c.created_at", "c.updated_at").
		From("classes c")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanClass(row rowScanner) (domain.Class, error) {
	var (
		c                    domain.Class
		createdAt, updatedAt int64
	)
	if err := row.Scan(&c.ID, &c.Name, &c.Grade, &c.Note, &c.StudentCount, &createdAt, &updatedAt); err != nil {
		return domain.Class{}, err
	}
	c.CreatedAt = fromMillis(createdAt)
	c.UpdatedAt = fromMillis(updatedAt)
	return c, nil
}

// CreateClass сохраняет новый класс. Время создания проставляет хранилище.
func (s *Storage) CreateClass(ctx context.Context, class domain.Class) (domain.Class, error) {
	now := s.nower.Now()
	_, err := s.exec(ctx, s.sb.
		Insert("classes").
		Columns("id", "name", "grade", "note", "created_at", "updated_at").
		Values(class.ID, class.Name, class.Grade, class.Note, toMillis(now), toMillis(now)))
	if err != nil {
		slog.ErrorContext(ctx, "failed to insert class", "error", err)
		return domain.Class{}, err
	}
	return s.GetClass(ctx, class.ID)
}

// GetClass возвращает класс с количеством текущих учеников.
func (s *Storage) GetClass(ctx context.Context, classID string) (domain.Class, error) {
	row, err := s.queryRow(ctx, s.selectClasses().Where(squirrel.Eq{"c.id": classID}))
	if err != nil {
		return domain.Class{}, err
	}
	c, err := scanClass(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Class{}, domain.ErrClassNotFound
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to scan class", "error", err)
		return domain.Class{}, fmt.Errorf("%w: %v", ErrScanResult, err)
	}
	return c, nil
}

// ListClasses возвращает все классы в порядке создания.
func (s *Storage) ListClasses(ctx context.Context) ([]domain.Class, error) {
	rows, err := s.query(ctx, s.selectClasses().OrderBy("c.created_at ASC", "c.id ASC"))
	if err != nil {
		slog.ErrorContext(ctx, "failed to query classes", "error", err)
		return nil, err
	}
	defer rows.Close()

	classes := []domain.Class{}
	for rows.Next() {
		c, err := scanClass(rows)
		if err != nil {
			slog.ErrorContext(ctx, "failed to scan class", "error", err)
			return nil, fmt.Errorf("%w: %v", ErrScanResult, err)
		}
		classes = append(classes, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanResult, err)
	}
	return classes, nil
}

// UpdateClass перезаписывает редактируемые поля класса.
func (s *Storage) UpdateClass(ctx context.Context, class domain.Class) (domain.Class, error) {
	res, err := s.exec(ctx, s.sb.
		Update("classes").
		Set("name", class.Name).
		Set("grade", class.Grade).
		Set("note", class.Note).
		Set("updated_at", toMillis(s.nower.Now())).
		Where(squirrel.Eq{"id": class.ID}))
	if err != nil {
		slog.ErrorContext(ctx, "failed to update class", "error", err)
		return domain.Class{}, err
	}
	n, err := affected(res)
	if err != nil {
		return domain.Class{}, err
	}
	if n == 0 {
		return domain.Class{}, domain.ErrClassNotFound
	}
	return s.GetClass(ctx, class.ID)
}

// DeleteClass удаляет класс вместе с учениками (ON DELETE CASCADE).
func (s *Storage) DeleteClass(ctx context.Context, classID string) error {
	res, err := s.exec(ctx, s.sb.Delete("classes").Where(squirrel.Eq{"id": classID}))
	if err != nil {
		slog.ErrorContext(ctx, "failed to delete class", "error", err)
		return err
	}
	n, err := affected(res)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrClassNotFound
	}
	return nil
}

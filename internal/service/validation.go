package service

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

const (
	maxNameLen      = 100
	maxStudentNoLen = 50
	maxNoteLen      = 500
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

// ValidateID проверяет идентификатор сущности.
func ValidateID(kind, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return invalid("%s ID cannot be empty", kind)
	}
	if len(id) > 100 {
		return invalid("%s ID too long (max 100 characters)", kind)
	}
	return nil
}

// ValidateClass проверяет поля класса.
func ValidateClass(c domain.Class) error {
	if err := requiredText("class name", c.Name, maxNameLen); err != nil {
		return err
	}
	if err := requiredText("grade", c.Grade, maxNameLen); err != nil {
		return err
	}
	if utf8.RuneCountInString(c.Note) > maxNoteLen {
		return invalid("note too long (max %d characters)", maxNoteLen)
	}
	return nil
}

// ValidateStudent проверяет номер, имя и пол ученика.
func ValidateStudent(in domain.StudentInput) error {
	if err := requiredText("student number", in.StudentNo, maxStudentNoLen); err != nil {
		return err
	}
	if err := requiredText("student name", in.Name, maxNameLen); err != nil {
		return err
	}
	if in.Gender != domain.GenderMale && in.Gender != domain.GenderFemale {
		return invalid("gender must be %q or %q", domain.GenderMale, domain.GenderFemale)
	}
	return nil
}

func requiredText(field, value string, max int) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return invalid("%s cannot be empty", field)
	}
	if utf8.RuneCountInString(value) > max {
		return invalid("%s too long (max %d characters)", field, max)
	}
	return nil
}

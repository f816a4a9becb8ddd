// Package spreadsheet читает и формирует xlsx-файлы ростера и отчётов посещаемости.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

// Синонимы заголовков столбцов при импорте.
var (
	studentNoAliases = []string{"学号", "学生学号", "studentno", "student_no"}
	nameAliases      = []string{"姓名", "学生姓名", "name", "student_name"}
	genderAliases    = []string{"性别", "gender"}
)

type columns struct {
	studentNo, name, gender int
}

// ParseStudents читает первый лист: строка заголовков и строки учеников.
// Пустые строки и строки без номера или имени пропускаются.
func ParseStudents(r io.Reader) ([]domain.StudentInput, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read workbook: %v", domain.ErrInvalidInput, err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.ErrNoValidRows
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: read rows: %v", domain.ErrInvalidInput, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: header and at least one data row required", domain.ErrNoValidRows)
	}

	cols := mapColumns(rows[0])
	students := make([]domain.StudentInput, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if blank(row) {
			continue
		}
		in := domain.StudentInput{
			StudentNo: cell(row, cols.studentNo),
			Name:      cell(row, cols.name),
			Gender:    domain.GenderMale,
		}
		if g := domain.Gender(cell(row, cols.gender)); g == domain.GenderFemale {
			in.Gender = g
		}
		if in.StudentNo == "" || in.Name == "" {
			continue
		}
		students = append(students, in)
	}
	if len(students) == 0 {
		return nil, domain.ErrNoValidRows
	}
	return students, nil
}

// mapColumns сопоставляет заголовки синонимам. Совпадение частичное в обе стороны,
// при нескольких подходящих столбцах побеждает правый.
func mapColumns(header []string) columns {
	cols := columns{studentNo: -1, name: -1, gender: -1}
	for i, h := range header {
		h = strings.ToLower(strings.TrimSpace(h))
		if h == "" {
			continue
		}
		if matches(h, studentNoAliases) {
			cols.studentNo = i
		}
		if matches(h, nameAliases) {
			cols.name = i
		}
		if matches(h, genderAliases) {
			cols.gender = i
		}
	}
	return cols
}

func matches(header string, aliases []string) bool {
	for _, a := range aliases {
		if strings.Contains(header, a) || strings.Contains(a, header) {
			return true
		}
	}
	return false
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}

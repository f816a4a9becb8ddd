package spreadsheet

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

// Имена листов выгрузок.
const (
	TemplateSheet = "学生名单模板"
	StudentsSheet = "学生名单"
	RecordsSheet  = "考勤记录"
	DetailsSheet  = "考勤明细"
)

const timeLayout = "2006-01-02 15:04:05"

var studentHeader = []any{"学号", "姓名", "性别"}

// AttendanceReport данные отчёта посещаемости. Имена классов и ученики
// нужны для подписей, отсутствующие подставляются идентификаторами.
type AttendanceReport struct {
	Records    []domain.AttendanceRecord
	ClassNames map[string]string
	Students   map[string]domain.Student
}

// WriteTemplate пишет шаблон импорта с двумя строками-примерами.
func WriteTemplate(w io.Writer) error {
	rows := [][]any{
		studentHeader,
		{"2024001", "张三", string(domain.GenderMale)},
		{"2024002", "李四", string(domain.GenderFemale)},
	}
	return writeBook(w, []sheet{{name: TemplateSheet, rows: rows, widths: []float64{15, 20, 10}}})
}

// WriteStudents пишет ростер класса.
func WriteStudents(w io.Writer, students []domain.Student) error {
	rows := make([][]any, 0, len(students)+1)
	rows = append(rows, studentHeader)
	for _, st := range students {
		rows = append(rows, []any{st.StudentNo, st.Name, string(st.Gender)})
	}
	return writeBook(w, []sheet{{name: StudentsSheet, rows: rows, widths: []float64{15, 20, 10}}})
}

// WriteAttendanceReport пишет сводку (одна строка на запись) и лист деталей.
func WriteAttendanceReport(w io.Writer, report AttendanceReport) error {
	summary := [][]any{{"日期", "班级", "类型", "总人数", "已到", "未到", "出勤率"}}
	details := [][]any{{"日期", "班级", "学号", "姓名", "状态", "时间"}}
	for _, r := range report.Records {
		className := lookup(report.ClassNames, r.ClassID)
		date := r.Date.Format(timeLayout)
		summary = append(summary, []any{
			date, className, string(r.Type),
			r.Summary.Total, r.Summary.Present, r.Summary.Absent,
			fmt.Sprintf("%d%%", r.Summary.Rate),
		})
		for _, d := range r.Details {
			no, name := d.StudentID, d.StudentID
			if st, ok := report.Students[d.StudentID]; ok {
				no, name = st.StudentNo, st.Name
			}
			details = append(details, []any{date, className, no, name, string(d.Status), d.Time.Format(timeLayout)})
		}
	}
	return writeBook(w, []sheet{
		{name: RecordsSheet, rows: summary, widths: []float64{20, 15, 12, 10, 8, 8, 10}},
		{name: DetailsSheet, rows: details, widths: []float64{20, 15, 15, 20, 8, 20}},
	})
}

type sheet struct {
	name   string
	rows   [][]any
	widths []float64
}

func writeBook(w io.Writer, sheets []sheet) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, sh := range sheets {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), sh.name); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(sh.name); err != nil {
			return fmt.Errorf("create sheet %s: %w", sh.name, err)
		}
		for r, row := range sh.rows {
			addr, err := excelize.CoordinatesToCellName(1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(sh.name, addr, &row); err != nil {
				return fmt.Errorf("write row %d: %w", r+1, err)
			}
		}
		for c, width := range sh.widths {
			col, err := excelize.ColumnNumberToName(c + 1)
			if err != nil {
				return err
			}
			if err := f.SetColWidth(sh.name, col, col, width); err != nil {
				return fmt.Errorf("set column width: %w", err)
			}
		}
	}
	f.SetActiveSheet(0)
	return f.Write(w)
}

func lookup(names map[string]string, id string) string {
	if name, ok := names[id]; ok {
		return name
	}
	return id
}

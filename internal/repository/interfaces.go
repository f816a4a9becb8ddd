package repository

import (
	"context"

	"github.com/voidAlex/student-roll-call/internal/domain"
)

// Repository объединяет все доменные репозитории.
type Repository interface {
	ClassRepository
	StudentRepository
	AttendanceRepository
}

// ClassRepository содержит операции для работы с классами.
type ClassRepository interface {
	CreateClass(ctx context.Context, class domain.Class) (domain.Class, error)
	GetClass(ctx context.Context, classID string) (domain.Class, error)
	ListClasses(ctx context.Context) ([]domain.Class, error)
	UpdateClass(ctx context.Context, class domain.Class) (domain.Class, error)
	DeleteClass(ctx context.Context, classID string) error
}

// StudentRepository содержит операции для работы с учениками.
type StudentRepository interface {
	CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	GetStudent(ctx context.Context, studentID string) (domain.Student, error)
	UpdateStudent(ctx context.Context, student domain.Student) (domain.Student, error)
	SetStudentDeleted(ctx context.Context, studentID string, deleted bool) (domain.Student, error)
	DeleteStudent(ctx context.Context, studentID string) error
	// ListClassStudents возвращает учеников класса в порядке добавления.
	// deleted=false отдаёт текущий состав, deleted=true только удалённых.
	ListClassStudents(ctx context.Context, classID string, deleted bool) ([]domain.Student, error)
	// StudentNoTaken проверяет номер среди неудалённых учеников класса, кроме excludeID.
	StudentNoTaken(ctx context.Context, classID, studentNo, excludeID string) (bool, error)
}

// AttendanceRepository содержит операции для работы с записями посещаемости.
type AttendanceRepository interface {
	SaveRecord(ctx context.Context, record domain.AttendanceRecord) error
	DeleteRecord(ctx context.Context, recordID string) error
	ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.AttendanceRecord, error)
	ClearRecords(ctx context.Context) (int, error)
}

// HealthChecker описывает метод проверки соединения.
type HealthChecker interface {
	Ping(ctx context.Context) error
}

package service

import (
	"context"
	"time"

	trm "github.com/avito-tech/go-transaction-manager/trm/v2"

	"github.com/voidAlex/student-roll-call/internal/config"
	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/infrastructure/nower"
	"github.com/voidAlex/student-roll-call/internal/infrastructure/randomizer"
)

func testConfig() config.Config {
	return config.Config{
		Timeouts: config.TimeoutConfig{
			Operation:     time.Second,
			LongOperation: 2 * time.Second,
		},
	}
}

func newTestService(repo *fakeRepo) *Service {
	return New(repo, testConfig(), stubManager{}, randomizer.NewSeeded(7), stubNower{})
}

type stubManager struct{}

func (stubManager) Do(ctx context.Context, fn func(context.Context) error) error {
	return fn(ctx)
}

func (stubManager) DoWithSettings(ctx context.Context, _ trm.Settings, fn func(context.Context) error) error {
	return fn(ctx)
}

type stubNower struct{}

func (stubNower) Now() time.Time {
	return time.Date(2024, 9, 1, 8, 0, 0, 0, time.UTC)
}

var (
	_ trm.Manager = stubManager{}
	_ nower.Nower = stubNower{}
	_ Repository  = (*fakeRepo)(nil)
)

// fakeRepo позволяет настраивать ответы для юнит-тестов.
type fakeRepo struct {
	createClassFn       func(context.Context, domain.Class) (domain.Class, error)
	getClassFn          func(context.Context, string) (domain.Class, error)
	listClassesFn       func(context.Context) ([]domain.Class, error)
	updateClassFn       func(context.Context, domain.Class) (domain.Class, error)
	deleteClassFn       func(context.Context, string) error
	createStudentFn     func(context.Context, domain.Student) (domain.Student, error)
	getStudentFn        func(context.Context, string) (domain.Student, error)
	updateStudentFn     func(context.Context, domain.Student) (domain.Student, error)
	setStudentDeletedFn func(context.Context, string, bool) (domain.Student, error)
	deleteStudentFn     func(context.Context, string) error
	listClassStudentsFn func(context.Context, string, bool) ([]domain.Student, error)
	studentNoTakenFn    func(context.Context, string, string, string) (bool, error)
	saveRecordFn        func(context.Context, domain.AttendanceRecord) error
	deleteRecordFn      func(context.Context, string) error
	listRecordsFn       func(context.Context, domain.RecordFilter) ([]domain.AttendanceRecord, error)
	clearRecordsFn      func(context.Context) (int, error)
	pingFn              func(context.Context) error
}

func (f *fakeRepo) CreateClass(ctx context.Context, class domain.Class) (domain.Class, error) {
	if f.createClassFn != nil {
		return f.createClassFn(ctx, class)
	}
	return class, nil
}

func (f *fakeRepo) GetClass(ctx context.Context, classID string) (domain.Class, error) {
	if f.getClassFn != nil {
		return f.getClassFn(ctx, classID)
	}
	return domain.Class{ID: classID}, nil
}

func (f *fakeRepo) ListClasses(ctx context.Context) ([]domain.Class, error) {
	if f.listClassesFn != nil {
		return f.listClassesFn(ctx)
	}
	return []domain.Class{}, nil
}

func (f *fakeRepo) UpdateClass(ctx context.Context, class domain.Class) (domain.Class, error) {
	if f.updateClassFn != nil {
		return f.updateClassFn(ctx, class)
	}
	return class, nil
}

func (f *fakeRepo) DeleteClass(ctx context.Context, classID string) error {
	if f.deleteClassFn != nil {
		return f.deleteClassFn(ctx, classID)
	}
	return nil
}

func (f *fakeRepo) CreateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	if f.createStudentFn != nil {
		return f.createStudentFn(ctx, student)
	}
	return student, nil
}

func (f *fakeRepo) GetStudent(ctx context.Context, studentID string) (domain.Student, error) {
	if f.getStudentFn != nil {
		return f.getStudentFn(ctx, studentID)
	}
	return domain.Student{ID: studentID}, nil
}

func (f *fakeRepo) UpdateStudent(ctx context.Context, student domain.Student) (domain.Student, error) {
	if f.updateStudentFn != nil {
		return f.updateStudentFn(ctx, student)
	}
	return student, nil
}

func (f *fakeRepo) SetStudentDeleted(ctx context.Context, studentID string, deleted bool) (domain.Student, error) {
	if f.setStudentDeletedFn != nil {
		return f.setStudentDeletedFn(ctx, studentID, deleted)
	}
	return domain.Student{ID: studentID, IsDeleted: deleted}, nil
}

func (f *fakeRepo) DeleteStudent(ctx context.Context, studentID string) error {
	if f.deleteStudentFn != nil {
		return f.deleteStudentFn(ctx, studentID)
	}
	return nil
}

func (f *fakeRepo) ListClassStudents(ctx context.Context, classID string, deleted bool) ([]domain.Student, error) {
	if f.listClassStudentsFn != nil {
		return f.listClassStudentsFn(ctx, classID, deleted)
	}
	return []domain.Student{}, nil
}

func (f *fakeRepo) StudentNoTaken(ctx context.Context, classID, studentNo, excludeID string) (bool, error) {
	if f.studentNoTakenFn != nil {
		return f.studentNoTakenFn(ctx, classID, studentNo, excludeID)
	}
	return false, nil
}

func (f *fakeRepo) SaveRecord(ctx context.Context, record domain.AttendanceRecord) error {
	if f.saveRecordFn != nil {
		return f.saveRecordFn(ctx, record)
	}
	return nil
}

func (f *fakeRepo) DeleteRecord(ctx context.Context, recordID string) error {
	if f.deleteRecordFn != nil {
		return f.deleteRecordFn(ctx, recordID)
	}
	return nil
}

func (f *fakeRepo) ListRecords(ctx context.Context, filter domain.RecordFilter) ([]domain.AttendanceRecord, error) {
	if f.listRecordsFn != nil {
		return f.listRecordsFn(ctx, filter)
	}
	return []domain.AttendanceRecord{}, nil
}

func (f *fakeRepo) ClearRecords(ctx context.Context) (int, error) {
	if f.clearRecordsFn != nil {
		return f.clearRecordsFn(ctx)
	}
	return 0, nil
}

func (f *fakeRepo) Ping(ctx context.Context) error {
	if f.pingFn != nil {
		return f.pingFn(ctx)
	}
	return nil
}

func students(ids ...string) []domain.Student {
	out := make([]domain.Student, 0, len(ids))
	for _, id := range ids {
		out = append(out, domain.Student{ID: id, ClassID: "c1", StudentNo: "no-" + id, Name: "name-" + id})
	}
	return out
}

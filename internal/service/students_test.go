package service

import (
	"bytes"
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/voidAlex/student-roll-call/internal/domain"
	"github.com/voidAlex/student-roll-call/internal/spreadsheet"
)

func TestServiceAddStudentAssignsAvatarAndDefaultGender(t *testing.T) {
	t.Parallel()
	var stored domain.Student
	fake := &fakeRepo{
		studentNoTakenFn: func(ctx context.Context, classID, no, excludeID string) (bool, error) {
			require.Equal(t, "c1", classID)
			require.Equal(t, "2024001", no)
			require.Empty(t, excludeID)
			return false, nil
		},
		createStudentFn: func(ctx context.Context, st domain.Student) (domain.Student, error) {
			stored = st
			return st, nil
		},
	}
	svc := newTestService(fake)

	created, err := svc.AddStudent(context.Background(), "c1", domain.StudentInput{StudentNo: " 2024001 ", Name: "张三"})
	require.NoError(t, err)
	require.Equal(t, stored, created)
	require.Equal(t, "2024001", stored.StudentNo)
	require.Equal(t, domain.GenderMale, stored.Gender)
	require.True(t, slices.Contains(avatarEmojis, stored.Avatar))
	require.NotEmpty(t, stored.ID)
}

func TestServiceAddStudentKeepsAvatar(t *testing.T) {
	t.Parallel()
	svc := newTestService(&fakeRepo{})
	created, err := svc.AddStudent(context.Background(), "c1",
		domain.StudentInput{StudentNo: "1", Name: "李四", Gender: domain.GenderFemale, Avatar: "🦄"})
	require.NoError(t, err)
	require.Equal(t, "🦄", created.Avatar)
}

func TestServiceAddStudentRejectsDuplicateNumber(t *testing.T) {
	t.Parallel()
	fake := &fakeRepo{
		studentNoTakenFn: func(context.Context, string, string, string) (bool, error) {
			return true, nil
		},
		createStudentFn: func(context.Context, domain.Student) (domain.Student, error) {
			t.Fatal("create must not be called")
			return domain.Student{}, nil
		},
	}
	svc := newTestService(fake)
	_, err := svc.AddStudent(context.Background(), "c1", domain.StudentInput{StudentNo: "1", Name: "A"})
	require.ErrorIs(t, err, domain.ErrStudentNoExists)
}

func TestServiceAddStudentValidation(t *testing.T) {
	t.Parallel()
	svc := newTestService(&fakeRepo{})
	ctx := context.Background()

	_, err := svc.AddStudent(ctx, "c1", domain.StudentInput{Name: "A"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.AddStudent(ctx, "c1", domain.StudentInput{StudentNo: "1"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.AddStudent(ctx, "c1", domain.StudentInput{StudentNo: "1", Name: "A", Gender: "x"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = svc.AddStudent(ctx, "", domain.StudentInput{StudentNo: "1", Name: "A"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServiceImportStudentsCollectsRowErrors(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, spreadsheet.WriteTemplate(&buf))

	var created []string
	fake := &fakeRepo{
		studentNoTakenFn: func(ctx context.Context, classID, no, excludeID string) (bool, error) {
			return no == "2024002", nil
		},
		createStudentFn: func(ctx context.Context, st domain.Student) (domain.Student, error) {
			created = append(created, st.StudentNo)
			return st, nil
		},
	}
	svc := newTestService(fake)

	result, err := svc.ImportStudents(context.Background(), "c1", &buf)
	require.NoError(t, err)
	require.Equal(t, 1, result.Success)
	require.Len(t, result.Errors, 1)
	require.Contains(t, result.Errors[0], "row 2")
	require.Contains(t, result.Errors[0], "2024002")
	require.Equal(t, []string{"2024001"}, created)
}

func TestServiceImportStudentsUnknownClass(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	require.NoError(t, spreadsheet.WriteTemplate(&buf))

	fake := &fakeRepo{
		getClassFn: func(context.Context, string) (domain.Class, error) {
			return domain.Class{}, domain.ErrClassNotFound
		},
	}
	svc := newTestService(fake)
	_, err := svc.ImportStudents(context.Background(), "ghost", &buf)
	require.ErrorIs(t, err, domain.ErrClassNotFound)
}

func TestServiceImportStudentsRejectsGarbage(t *testing.T) {
	t.Parallel()
	svc := newTestService(&fakeRepo{})
	_, err := svc.ImportStudents(context.Background(), "c1", bytes.NewBufferString("garbage"))
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServiceUpdateStudentChecksRenumber(t *testing.T) {
	t.Parallel()
	existing := domain.Student{ID: "s1", ClassID: "c1", StudentNo: "01", Name: "A", Gender: domain.GenderMale}
	fake := &fakeRepo{
		getStudentFn: func(context.Context, string) (domain.Student, error) {
			return existing, nil
		},
		studentNoTakenFn: func(ctx context.Context, classID, no, excludeID string) (bool, error) {
			require.Equal(t, "s1", excludeID)
			return no == "02", nil
		},
	}
	svc := newTestService(fake)
	ctx := context.Background()

	taken := "02"
	_, err := svc.UpdateStudent(ctx, "s1", domain.StudentPatch{StudentNo: &taken})
	require.ErrorIs(t, err, domain.ErrStudentNoExists)

	free, name := "03", "B"
	updated, err := svc.UpdateStudent(ctx, "s1", domain.StudentPatch{StudentNo: &free, Name: &name})
	require.NoError(t, err)
	require.Equal(t, "03", updated.StudentNo)
	require.Equal(t, "B", updated.Name)
	require.Equal(t, domain.GenderMale, updated.Gender)
}

func TestServiceDeleteStudentSoftAndPermanent(t *testing.T) {
	t.Parallel()
	var soft, hard []string
	fake := &fakeRepo{
		setStudentDeletedFn: func(ctx context.Context, id string, deleted bool) (domain.Student, error) {
			require.True(t, deleted)
			soft = append(soft, id)
			return domain.Student{ID: id, IsDeleted: true}, nil
		},
		deleteStudentFn: func(ctx context.Context, id string) error {
			hard = append(hard, id)
			return nil
		},
	}
	svc := newTestService(fake)
	ctx := context.Background()

	require.NoError(t, svc.DeleteStudent(ctx, "s1", false))
	require.NoError(t, svc.DeleteStudent(ctx, "s2", true))
	require.Equal(t, []string{"s1"}, soft)
	require.Equal(t, []string{"s2"}, hard)
}

func TestServiceRestoreStudentConflict(t *testing.T) {
	t.Parallel()
	fake := &fakeRepo{
		getStudentFn: func(ctx context.Context, id string) (domain.Student, error) {
			return domain.Student{ID: id, ClassID: "c1", StudentNo: "01", IsDeleted: true}, nil
		},
		studentNoTakenFn: func(context.Context, string, string, string) (bool, error) {
			return true, nil
		},
	}
	svc := newTestService(fake)
	_, err := svc.RestoreStudent(context.Background(), "s1")
	require.ErrorIs(t, err, domain.ErrStudentNoExists)
}

func TestServiceRestoreStudent(t *testing.T) {
	t.Parallel()
	fake := &fakeRepo{
		getStudentFn: func(ctx context.Context, id string) (domain.Student, error) {
			return domain.Student{ID: id, IsDeleted: true}, nil
		},
	}
	svc := newTestService(fake)
	restored, err := svc.RestoreStudent(context.Background(), "s1")
	require.NoError(t, err)
	require.False(t, restored.IsDeleted)
}

func TestServiceListStudentsKeywordFilter(t *testing.T) {
	t.Parallel()
	fake := &fakeRepo{
		listClassStudentsFn: func(ctx context.Context, classID string, deleted bool) ([]domain.Student, error) {
			require.False(t, deleted)
			return []domain.Student{
				{ID: "s1", StudentNo: "2024001", Name: "张三"},
				{ID: "s2", StudentNo: "2024002", Name: "李四"},
				{ID: "s3", StudentNo: "2024010", Name: "张伟"},
			}, nil
		},
	}
	svc := newTestService(fake)
	ctx := context.Background()

	all, err := svc.ListStudents(ctx, "c1", "", false)
	require.NoError(t, err)
	require.Len(t, all, 3)

	byName, err := svc.ListStudents(ctx, "c1", "张", false)
	require.NoError(t, err)
	require.Len(t, byName, 2)

	byNo, err := svc.ListStudents(ctx, "c1", " 002 ", false)
	require.NoError(t, err)
	require.Len(t, byNo, 1)
	require.Equal(t, "s2", byNo[0].ID)
}

package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/shared"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
)

func newStudent(t *testing.T, id, name string, scores ...float64) *student.Student {
	t.Helper()

	marks := make([]student.SubjectMark, len(scores))
	for i, sc := range scores {
		marks[i] = student.SubjectMark{Subject: string(rune('a' + i)), Score: student.Mark(sc)}
	}

	s, err := student.NewStudent(student.NewStudentParams{
		ID:    student.StudentID(id),
		Name:  name,
		Marks: marks,
	}, student.DefaultGradingPolicy())
	require.NoError(t, err)
	return s
}

func TestStudentRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()

	s := newStudent(t, "S1", "Alice", 90, 80, 70)
	require.NoError(t, repo.Create(ctx, s))

	got, err := repo.GetByID(ctx, "S1")
	require.NoError(t, err)
	assert.True(t, s.Equal(got))

	_, err = repo.GetByID(ctx, "S2")
	assert.ErrorIs(t, err, student.ErrStudentNotFound)
	assert.True(t, shared.IsNotFound(err))
}

func TestStudentRepository_DuplicateCreateLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()

	require.NoError(t, repo.Create(ctx, newStudent(t, "S1", "Alice", 90)))

	err := repo.Create(ctx, newStudent(t, "S1", "Impostor", 10))
	assert.ErrorIs(t, err, student.ErrStudentExists)
	assert.True(t, shared.IsAlreadyExists(err))

	got, err := repo.GetByID(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStudentRepository_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()

	err := repo.Update(ctx, newStudent(t, "ghost", "Ghost", 50))
	assert.ErrorIs(t, err, student.ErrStudentNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStudentRepository_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()
	require.NoError(t, repo.Create(ctx, newStudent(t, "S1", "Alice", 90)))

	assert.ErrorIs(t, repo.Delete(ctx, "ghost"), student.ErrStudentNotFound)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStudentRepository_DeleteOnlyRecord(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()
	require.NoError(t, repo.Create(ctx, newStudent(t, "S1", "Alice", 90)))

	require.NoError(t, repo.Delete(ctx, "S1"))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStudentRepository_ListInsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()

	ids := []string{"S3", "S1", "S2"}
	for _, id := range ids {
		require.NoError(t, repo.Create(ctx, newStudent(t, id, "Student "+id, 75)))
	}
	// Deleting and re-adding moves the record to the end.
	require.NoError(t, repo.Delete(ctx, "S1"))
	require.NoError(t, repo.Create(ctx, newStudent(t, "S1", "Student S1", 75)))

	list, err := repo.List(ctx)
	require.NoError(t, err)

	var got []string
	for _, s := range list {
		got = append(got, s.ID.String())
	}
	assert.Equal(t, []string{"S3", "S2", "S1"}, got)
}

func TestStudentRepository_NoAliasing(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()

	s := newStudent(t, "S1", "Alice", 90)
	require.NoError(t, repo.Create(ctx, s))

	// Mutating the original after insert must not affect the store.
	s.Name = "Mallory"
	s.Marks[0].Score = 0

	got, err := repo.GetByID(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", got.Name)
	assert.Equal(t, student.Mark(90), got.Marks[0].Score)

	// Mutating a fetched record must not affect the store either.
	got.Name = "Eve"
	again, err := repo.GetByID(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", again.Name)
}

func TestStudentRepository_ReplaceAll(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()
	require.NoError(t, repo.Create(ctx, newStudent(t, "old", "Old", 10)))

	fresh := []*student.Student{
		newStudent(t, "S1", "Alice", 90),
		newStudent(t, "S2", "Bob", 60),
	}
	require.NoError(t, repo.ReplaceAll(ctx, fresh))

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, student.StudentID("S1"), list[0].ID)
	assert.Equal(t, student.StudentID("S2"), list[1].ID)

	_, err = repo.GetByID(ctx, "old")
	assert.ErrorIs(t, err, student.ErrStudentNotFound)
}

func TestStudentRepository_ReplaceAllRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository()

	err := repo.ReplaceAll(ctx, []*student.Student{
		newStudent(t, "S1", "Alice", 90),
		newStudent(t, "S1", "Copy", 50),
	})
	assert.ErrorIs(t, err, student.ErrStudentExists)
}

package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/infrastructure/persistence/memory"
)

func seed(t *testing.T, repo student.Repository, id, name string, scores map[string]float64, order []string) {
	t.Helper()

	marks := make([]student.SubjectMark, 0, len(order))
	for _, subject := range order {
		marks = append(marks, student.SubjectMark{Subject: subject, Score: student.Mark(scores[subject])})
	}

	s, err := student.NewStudent(student.NewStudentParams{
		ID:    student.StudentID(id),
		Name:  name,
		Marks: marks,
	}, student.DefaultGradingPolicy())
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), s))
}

func TestGetStudent(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	seed(t, repo, "S1", "Alice",
		map[string]float64{"math": 90, "physics": 80, "history": 70},
		[]string{"math", "physics", "history"})

	h := NewGetStudentHandler(repo, student.DefaultGradingPolicy())

	result, err := h.Handle(ctx, GetStudentQuery{ID: "S1"})
	require.NoError(t, err)

	dto := result.Student
	assert.Equal(t, "S1", dto.ID)
	assert.Equal(t, "Alice", dto.Name)
	assert.Equal(t, 4.0, dto.GPA)
	assert.Equal(t, "4.00", dto.GPAFormatted)
	assert.Equal(t, "B", dto.Letter)
	require.Len(t, dto.Marks, 3)
	assert.Equal(t, "math", dto.Marks[0].Subject)

	_, err = h.Handle(ctx, GetStudentQuery{ID: "ghost"})
	assert.ErrorIs(t, err, student.ErrStudentNotFound)

	_, err = h.Handle(ctx, GetStudentQuery{})
	assert.ErrorIs(t, err, student.ErrInvalidStudentID)
}

func TestListStudents_InsertionOrder(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	seed(t, repo, "S3", "Carol", map[string]float64{"math": 95}, []string{"math"})
	seed(t, repo, "S1", "Alice", map[string]float64{"math": 50}, []string{"math"})

	h := NewListStudentsHandler(repo, student.DefaultGradingPolicy())
	result, err := h.Handle(ctx, ListStudentsQuery{})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalCount)
	require.Len(t, result.Students, 2)
	assert.Equal(t, "S3", result.Students[0].ID)
	assert.Equal(t, "S1", result.Students[1].ID)
}

func TestListStudents_Empty(t *testing.T) {
	h := NewListStudentsHandler(memory.NewStudentRepository(), student.DefaultGradingPolicy())
	result, err := h.Handle(context.Background(), ListStudentsQuery{})
	require.NoError(t, err)
	assert.Zero(t, result.TotalCount)
	assert.Empty(t, result.Students)
}

func TestClassSummary(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	// GPAs: Alice 4.75 (A), Bob 4.0 (B), Carol 1.0 (F)
	seed(t, repo, "S1", "Alice", map[string]float64{"math": 95}, []string{"math"})
	seed(t, repo, "S2", "Bob", map[string]float64{"math": 80}, []string{"math"})
	seed(t, repo, "S3", "Carol", map[string]float64{"math": 20}, []string{"math"})

	h := NewClassSummaryHandler(repo, student.DefaultGradingPolicy())
	result, err := h.Handle(ctx, ClassSummaryQuery{})
	require.NoError(t, err)

	assert.Equal(t, 3, result.TotalStudents)
	assert.InDelta(t, 3.25, result.AverageGPA, 0.0001)
	assert.Equal(t, 4.75, result.HighestGPA)
	assert.Equal(t, 1.0, result.LowestGPA)
	assert.Equal(t, "C", result.AverageLetter)
	assert.Equal(t, "A", result.HighestLetter)
	assert.Equal(t, "F", result.LowestLetter)

	require.Len(t, result.Distribution, 5)
	byLetter := make(map[string]GradeBucket)
	for _, b := range result.Distribution {
		byLetter[b.Letter] = b
	}
	assert.Equal(t, 1, byLetter["A"].Count)
	assert.Equal(t, 1, byLetter["B"].Count)
	assert.Equal(t, 0, byLetter["C"].Count)
	assert.Equal(t, 1, byLetter["F"].Count)
	assert.InDelta(t, 33.33, byLetter["A"].Percent, 0.01)

	// Buckets follow the policy threshold order.
	assert.Equal(t, "A", result.Distribution[0].Letter)
	assert.Equal(t, "F", result.Distribution[4].Letter)
}

func TestClassSummary_EmptyStore(t *testing.T) {
	h := NewClassSummaryHandler(memory.NewStudentRepository(), student.DefaultGradingPolicy())
	result, err := h.Handle(context.Background(), ClassSummaryQuery{})
	require.NoError(t, err)

	assert.Zero(t, result.TotalStudents)
	assert.Zero(t, result.AverageGPA)
	assert.Empty(t, result.Distribution)
}

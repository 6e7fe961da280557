package command

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/shared"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/infrastructure/persistence/memory"
	"github.com/engr-rabbi/Student-Grade-Management-System/pkg/logger"
)

// recordingPublisher captures published events and optionally fails.
type recordingPublisher struct {
	events []shared.Event
	err    error
}

func (p *recordingPublisher) Publish(ctx context.Context, e shared.Event) error {
	p.events = append(p.events, e)
	return p.err
}

func quietLogger() *logger.Logger {
	return logger.New(io.Discard, logger.LevelError)
}

func marks(pairs ...any) []student.SubjectMark {
	out := make([]student.SubjectMark, 0, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, student.SubjectMark{
			Subject: pairs[i].(string),
			Score:   student.Mark(pairs[i+1].(int)),
		})
	}
	return out
}

func seedStudent(t *testing.T, repo student.Repository) {
	t.Helper()
	h := NewAddStudentHandler(repo, &recordingPublisher{}, student.DefaultGradingPolicy(), quietLogger())
	_, err := h.Handle(context.Background(), AddStudentCommand{
		ID:    "S1",
		Name:  "Alice",
		Marks: marks("math", 90, "physics", 80, "history", 70),
	})
	require.NoError(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Add
// ─────────────────────────────────────────────────────────────────────────────

func TestAddStudent_Success(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	pub := &recordingPublisher{}
	h := NewAddStudentHandler(repo, pub, student.DefaultGradingPolicy(), quietLogger())

	result, err := h.Handle(ctx, AddStudentCommand{
		ID:    "S1",
		Name:  "Alice",
		Marks: marks("math", 90, "physics", 80, "history", 70),
	})
	require.NoError(t, err)

	assert.Equal(t, 4.0, result.Student.GPA)
	assert.Equal(t, "B", result.Letter)
	assert.NoError(t, result.SaveErr)

	require.Len(t, pub.events, 1)
	assert.Equal(t, shared.EventRecordAdded, pub.events[0].EventType())
	assert.Equal(t, "S1", pub.events[0].AggregateID())

	stored, err := repo.GetByID(ctx, "S1")
	require.NoError(t, err)
	assert.Equal(t, "Alice", stored.Name)
}

func TestAddStudent_DuplicateID(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	seedStudent(t, repo)

	pub := &recordingPublisher{}
	h := NewAddStudentHandler(repo, pub, student.DefaultGradingPolicy(), quietLogger())
	_, err := h.Handle(ctx, AddStudentCommand{ID: "S1", Name: "Copy", Marks: marks("math", 10)})

	assert.ErrorIs(t, err, student.ErrStudentExists)
	assert.Empty(t, pub.events, "no event for a failed add")

	stored, getErr := repo.GetByID(ctx, "S1")
	require.NoError(t, getErr)
	assert.Equal(t, "Alice", stored.Name, "store unchanged after duplicate add")
}

func TestAddStudent_ValidationFailures(t *testing.T) {
	ctx := context.Background()
	h := NewAddStudentHandler(memory.NewStudentRepository(), &recordingPublisher{}, student.DefaultGradingPolicy(), quietLogger())

	cases := []struct {
		name string
		cmd  AddStudentCommand
	}{
		{"empty id", AddStudentCommand{Name: "Alice", Marks: marks("math", 90)}},
		{"empty name", AddStudentCommand{ID: "S1", Marks: marks("math", 90)}},
		{"no marks", AddStudentCommand{ID: "S1", Name: "Alice"}},
		{"bad mark", AddStudentCommand{ID: "S1", Name: "Alice", Marks: marks("math", 101)}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := h.Handle(ctx, tc.cmd)
			require.Error(t, err)
			assert.True(t, shared.IsValidation(err))
		})
	}
}

func TestAddStudent_SaveFailureIsNonFatal(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	pub := &recordingPublisher{err: errors.New("disk full")}
	h := NewAddStudentHandler(repo, pub, student.DefaultGradingPolicy(), quietLogger())

	result, err := h.Handle(ctx, AddStudentCommand{ID: "S1", Name: "Alice", Marks: marks("math", 90)})
	require.NoError(t, err, "the record is added even when autosave fails")
	assert.Error(t, result.SaveErr)

	_, err = repo.GetByID(ctx, "S1")
	assert.NoError(t, err)
}

// ─────────────────────────────────────────────────────────────────────────────
// Update
// ─────────────────────────────────────────────────────────────────────────────

func TestUpdateStudent_SetAndRemoveMarks(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	seedStudent(t, repo)

	pub := &recordingPublisher{}
	h := NewUpdateStudentHandler(repo, pub, student.DefaultGradingPolicy(), quietLogger())

	result, err := h.Handle(ctx, UpdateStudentCommand{
		ID:             "S1",
		SetMarks:       marks("math", 100, "chemistry", 60),
		RemoveSubjects: []string{"history"},
	})
	require.NoError(t, err)

	assert.Equal(t, 4.0, result.PreviousGPA)
	// (100+80+60)/3 = 80 -> 4.0
	assert.Equal(t, 4.0, result.Student.GPA)

	stored, err := repo.GetByID(ctx, "S1")
	require.NoError(t, err)
	subjects := make([]string, len(stored.Marks))
	for i, sm := range stored.Marks {
		subjects[i] = sm.Subject
	}
	assert.Equal(t, []string{"math", "physics", "chemistry"}, subjects)

	require.Len(t, pub.events, 1)
	assert.Equal(t, shared.EventRecordUpdated, pub.events[0].EventType())
}

func TestUpdateStudent_Rename(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	seedStudent(t, repo)

	h := NewUpdateStudentHandler(repo, &recordingPublisher{}, student.DefaultGradingPolicy(), quietLogger())
	result, err := h.Handle(ctx, UpdateStudentCommand{ID: "S1", NewName: "Alicia"})
	require.NoError(t, err)
	assert.Equal(t, "Alicia", result.Student.Name)
	assert.Equal(t, result.PreviousGPA, result.Student.GPA, "renaming does not change the GPA")
}

func TestUpdateStudent_NotFoundLeavesStoreUnchanged(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	seedStudent(t, repo)

	pub := &recordingPublisher{}
	h := NewUpdateStudentHandler(repo, pub, student.DefaultGradingPolicy(), quietLogger())
	_, err := h.Handle(ctx, UpdateStudentCommand{ID: "ghost", NewName: "Nobody"})

	assert.ErrorIs(t, err, student.ErrStudentNotFound)
	assert.Empty(t, pub.events)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestUpdateStudent_FailedChangeSetIsNotCommitted(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	seedStudent(t, repo)

	h := NewUpdateStudentHandler(repo, &recordingPublisher{}, student.DefaultGradingPolicy(), quietLogger())

	// The rename part is fine, the removal part fails; nothing may stick.
	_, err := h.Handle(ctx, UpdateStudentCommand{
		ID:             "S1",
		NewName:        "Alicia",
		RemoveSubjects: []string{"biology"},
	})
	assert.ErrorIs(t, err, student.ErrSubjectNotFound)

	stored, getErr := repo.GetByID(ctx, "S1")
	require.NoError(t, getErr)
	assert.Equal(t, "Alice", stored.Name)
	assert.Len(t, stored.Marks, 3)
}

func TestUpdateStudent_EmptyChangeSet(t *testing.T) {
	h := NewUpdateStudentHandler(memory.NewStudentRepository(), &recordingPublisher{}, student.DefaultGradingPolicy(), quietLogger())
	_, err := h.Handle(context.Background(), UpdateStudentCommand{ID: "S1"})
	assert.ErrorIs(t, err, ErrNoChanges)
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete
// ─────────────────────────────────────────────────────────────────────────────

func TestDeleteStudent_Success(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	seedStudent(t, repo)

	pub := &recordingPublisher{}
	h := NewDeleteStudentHandler(repo, pub, quietLogger())

	result, err := h.Handle(ctx, DeleteStudentCommand{ID: "S1"})
	require.NoError(t, err)
	assert.Equal(t, "Alice", result.Name)

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)

	require.Len(t, pub.events, 1)
	assert.Equal(t, shared.EventRecordDeleted, pub.events[0].EventType())
}

func TestDeleteStudent_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewStudentRepository()
	seedStudent(t, repo)

	pub := &recordingPublisher{}
	h := NewDeleteStudentHandler(repo, pub, quietLogger())
	_, err := h.Handle(ctx, DeleteStudentCommand{ID: "ghost"})

	assert.ErrorIs(t, err, student.ErrStudentNotFound)
	assert.Empty(t, pub.events)

	count, countErr := repo.Count(ctx)
	require.NoError(t, countErr)
	assert.Equal(t, 1, count, "store unchanged after failed delete")
}

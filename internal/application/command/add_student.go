// Package command contains write operations (CQRS - Commands). Each
// command handler validates its input, mutates the record store through
// the repository, and publishes domain events on success.
package command

import (
	"context"
	"fmt"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/shared"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
	"github.com/engr-rabbi/Student-Grade-Management-System/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ADD STUDENT COMMAND
// Creates a new record after validating identifier, name and marks.
// The identifier must not already exist in the store.
// ══════════════════════════════════════════════════════════════════════════════

// AddStudentCommand contains the data for a new record.
type AddStudentCommand struct {
	// ID is the identifier chosen by the operator.
	ID string

	// Name is the student display name.
	Name string

	// Marks is the ordered sequence of subject marks.
	Marks []student.SubjectMark
}

// AddStudentResult contains the outcome of a successful add.
type AddStudentResult struct {
	// Student is the created record.
	Student *student.Student

	// Letter is the letter grade under the active policy.
	Letter string

	// SaveErr carries a non-fatal autosave failure. The record is in
	// the store either way; the operator is warned that it did not
	// reach disk.
	SaveErr error
}

// AddStudentHandler handles the AddStudentCommand.
type AddStudentHandler struct {
	repo      student.Repository
	publisher shared.EventPublisher
	policy    student.GradingPolicy
	logger    *logger.Logger
}

// NewAddStudentHandler creates a new AddStudentHandler.
func NewAddStudentHandler(
	repo student.Repository,
	publisher shared.EventPublisher,
	policy student.GradingPolicy,
	log *logger.Logger,
) *AddStudentHandler {
	if log == nil {
		log = logger.Default()
	}
	return &AddStudentHandler{
		repo:      repo,
		publisher: publisher,
		policy:    policy,
		logger:    log,
	}
}

// Handle executes the add command.
func (h *AddStudentHandler) Handle(ctx context.Context, cmd AddStudentCommand) (*AddStudentResult, error) {
	s, err := student.NewStudent(student.NewStudentParams{
		ID:    student.StudentID(cmd.ID),
		Name:  cmd.Name,
		Marks: cmd.Marks,
	}, h.policy)
	if err != nil {
		return nil, err
	}

	if err := h.repo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("add_student: %w", err)
	}

	h.logger.Info("student added",
		logger.String("id", s.ID.String()),
		logger.Float64("gpa", s.GPA))

	result := &AddStudentResult{
		Student: s,
		Letter:  s.Letter(h.policy),
	}

	if err := h.publisher.Publish(ctx, student.NewRecordAddedEvent(s)); err != nil {
		result.SaveErr = err
	}

	return result, nil
}

package command

import (
	"context"
	"fmt"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/shared"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
	"github.com/engr-rabbi/Student-Grade-Management-System/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE STUDENT COMMAND
// Mutates an existing record: rename, set/add subject marks, remove
// subjects. The change set is applied to a copy and only committed to
// the store when every part of it succeeded, so a failing update leaves
// the record untouched.
// ══════════════════════════════════════════════════════════════════════════════

// ErrNoChanges - the update command carried an empty change set.
var ErrNoChanges = shared.NewDomainError("student", "Update", shared.ErrInvalidInput, "nothing to update")

// UpdateStudentCommand describes a change set for one record.
type UpdateStudentCommand struct {
	// ID identifies the record to update.
	ID string

	// NewName renames the student when non-empty.
	NewName string

	// SetMarks adds new subjects or overwrites existing scores,
	// in order.
	SetMarks []student.SubjectMark

	// RemoveSubjects removes subjects by name. The last remaining
	// subject of a record cannot be removed.
	RemoveSubjects []string
}

// Validate checks that the command targets a record and changes something.
func (c UpdateStudentCommand) Validate() error {
	if c.ID == "" {
		return student.ErrInvalidStudentID
	}
	if c.NewName == "" && len(c.SetMarks) == 0 && len(c.RemoveSubjects) == 0 {
		return ErrNoChanges
	}
	return nil
}

// UpdateStudentResult contains the outcome of a successful update.
type UpdateStudentResult struct {
	// Student is the record after the update.
	Student *student.Student

	// PreviousGPA is the GPA before the update.
	PreviousGPA float64

	// Letter is the letter grade after the update.
	Letter string

	// SaveErr carries a non-fatal autosave failure.
	SaveErr error
}

// UpdateStudentHandler handles the UpdateStudentCommand.
type UpdateStudentHandler struct {
	repo      student.Repository
	publisher shared.EventPublisher
	policy    student.GradingPolicy
	logger    *logger.Logger
}

// NewUpdateStudentHandler creates a new UpdateStudentHandler.
func NewUpdateStudentHandler(
	repo student.Repository,
	publisher shared.EventPublisher,
	policy student.GradingPolicy,
	log *logger.Logger,
) *UpdateStudentHandler {
	if log == nil {
		log = logger.Default()
	}
	return &UpdateStudentHandler{
		repo:      repo,
		publisher: publisher,
		policy:    policy,
		logger:    log,
	}
}

// Handle executes the update command.
func (h *UpdateStudentHandler) Handle(ctx context.Context, cmd UpdateStudentCommand) (*UpdateStudentResult, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	s, err := h.repo.GetByID(ctx, student.StudentID(cmd.ID))
	if err != nil {
		return nil, fmt.Errorf("update_student: %w", err)
	}
	previousGPA := s.GPA

	if cmd.NewName != "" {
		if err := s.Rename(cmd.NewName); err != nil {
			return nil, err
		}
	}

	for _, sm := range cmd.SetMarks {
		if _, _, err := s.SetMark(sm.Subject, sm.Score, h.policy); err != nil {
			return nil, err
		}
	}

	for _, subject := range cmd.RemoveSubjects {
		if _, err := s.RemoveSubject(subject, h.policy); err != nil {
			return nil, err
		}
	}

	if err := h.repo.Update(ctx, s); err != nil {
		return nil, fmt.Errorf("update_student: %w", err)
	}

	h.logger.Info("student updated",
		logger.String("id", s.ID.String()),
		logger.Float64("previous_gpa", previousGPA),
		logger.Float64("gpa", s.GPA))

	result := &UpdateStudentResult{
		Student:     s,
		PreviousGPA: previousGPA,
		Letter:      s.Letter(h.policy),
	}

	if err := h.publisher.Publish(ctx, student.NewRecordUpdatedEvent(s, previousGPA)); err != nil {
		result.SaveErr = err
	}

	return result, nil
}

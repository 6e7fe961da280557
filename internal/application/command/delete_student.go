package command

import (
	"context"
	"fmt"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/shared"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
	"github.com/engr-rabbi/Student-Grade-Management-System/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// DELETE STUDENT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// DeleteStudentCommand identifies the record to remove.
type DeleteStudentCommand struct {
	ID string
}

// DeleteStudentResult contains the outcome of a successful delete.
type DeleteStudentResult struct {
	// ID is the identifier of the removed record.
	ID student.StudentID

	// Name is the name of the removed student.
	Name string

	// SaveErr carries a non-fatal autosave failure.
	SaveErr error
}

// DeleteStudentHandler handles the DeleteStudentCommand.
type DeleteStudentHandler struct {
	repo      student.Repository
	publisher shared.EventPublisher
	logger    *logger.Logger
}

// NewDeleteStudentHandler creates a new DeleteStudentHandler.
func NewDeleteStudentHandler(
	repo student.Repository,
	publisher shared.EventPublisher,
	log *logger.Logger,
) *DeleteStudentHandler {
	if log == nil {
		log = logger.Default()
	}
	return &DeleteStudentHandler{repo: repo, publisher: publisher, logger: log}
}

// Handle executes the delete command.
func (h *DeleteStudentHandler) Handle(ctx context.Context, cmd DeleteStudentCommand) (*DeleteStudentResult, error) {
	if cmd.ID == "" {
		return nil, student.ErrInvalidStudentID
	}

	id := student.StudentID(cmd.ID)

	s, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete_student: %w", err)
	}

	if err := h.repo.Delete(ctx, id); err != nil {
		return nil, fmt.Errorf("delete_student: %w", err)
	}

	h.logger.Info("student deleted", logger.String("id", id.String()))

	result := &DeleteStudentResult{ID: id, Name: s.Name}

	if err := h.publisher.Publish(ctx, student.NewRecordDeletedEvent(id, s.Name)); err != nil {
		result.SaveErr = err
	}

	return result, nil
}

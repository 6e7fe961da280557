// Package query contains read operations following the CQRS pattern.
// Queries never modify state - they only read and return data. Each
// query is a self-contained use case with its own request/response types.
package query

import (
	"context"
	"fmt"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET STUDENT QUERY
// Looks up a single record by identifier (the "search" menu action).
// ══════════════════════════════════════════════════════════════════════════════

// SubjectMarkDTO is one scored subject, formatted for display.
type SubjectMarkDTO struct {
	Subject string  `json:"subject"`
	Score   float64 `json:"score"`
}

// StudentDTO is the read model for one record.
type StudentDTO struct {
	// ID - record identifier.
	ID string `json:"id"`

	// Name - student display name.
	Name string `json:"name"`

	// Marks - ordered subject marks.
	Marks []SubjectMarkDTO `json:"marks"`

	// GPA - derived grade point average.
	GPA float64 `json:"gpa"`

	// GPAFormatted - GPA rendered with two decimals.
	GPAFormatted string `json:"gpa_formatted"`

	// Letter - letter grade under the active policy.
	Letter string `json:"letter"`
}

// NewStudentDTO builds the read model from a domain record.
func NewStudentDTO(s *student.Student, policy student.GradingPolicy) StudentDTO {
	marks := make([]SubjectMarkDTO, len(s.Marks))
	for i, sm := range s.Marks {
		marks[i] = SubjectMarkDTO{Subject: sm.Subject, Score: float64(sm.Score)}
	}

	return StudentDTO{
		ID:           s.ID.String(),
		Name:         s.Name,
		Marks:        marks,
		GPA:          s.GPA,
		GPAFormatted: fmt.Sprintf("%.2f", s.GPA),
		Letter:       s.Letter(policy),
	}
}

// GetStudentQuery identifies the record to fetch.
type GetStudentQuery struct {
	ID string
}

// GetStudentResult contains the fetched record.
type GetStudentResult struct {
	Student StudentDTO
}

// GetStudentHandler handles the GetStudentQuery.
type GetStudentHandler struct {
	repo   student.Repository
	policy student.GradingPolicy
}

// NewGetStudentHandler creates a new GetStudentHandler.
func NewGetStudentHandler(repo student.Repository, policy student.GradingPolicy) *GetStudentHandler {
	return &GetStudentHandler{repo: repo, policy: policy}
}

// Handle executes the query.
func (h *GetStudentHandler) Handle(ctx context.Context, q GetStudentQuery) (*GetStudentResult, error) {
	if q.ID == "" {
		return nil, student.ErrInvalidStudentID
	}

	s, err := h.repo.GetByID(ctx, student.StudentID(q.ID))
	if err != nil {
		return nil, fmt.Errorf("get_student: %w", err)
	}

	return &GetStudentResult{Student: NewStudentDTO(s, h.policy)}, nil
}

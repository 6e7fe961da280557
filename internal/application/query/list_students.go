package query

import (
	"context"
	"fmt"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// Returns every record in insertion order (the "view all" menu action).
// ══════════════════════════════════════════════════════════════════════════════

// ListStudentsQuery has no parameters; the whole store is always listed.
type ListStudentsQuery struct{}

// ListStudentsResult contains all records in insertion order.
type ListStudentsResult struct {
	// Students - one DTO per record, in store order.
	Students []StudentDTO

	// TotalCount - number of records.
	TotalCount int
}

// ListStudentsHandler handles the ListStudentsQuery.
type ListStudentsHandler struct {
	repo   student.Repository
	policy student.GradingPolicy
}

// NewListStudentsHandler creates a new ListStudentsHandler.
func NewListStudentsHandler(repo student.Repository, policy student.GradingPolicy) *ListStudentsHandler {
	return &ListStudentsHandler{repo: repo, policy: policy}
}

// Handle executes the query.
func (h *ListStudentsHandler) Handle(ctx context.Context, _ ListStudentsQuery) (*ListStudentsResult, error) {
	records, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_students: %w", err)
	}

	result := &ListStudentsResult{
		Students:   make([]StudentDTO, 0, len(records)),
		TotalCount: len(records),
	}
	for _, s := range records {
		result.Students = append(result.Students, NewStudentDTO(s, h.policy))
	}

	return result, nil
}

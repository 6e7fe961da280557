package query

import (
	"context"
	"fmt"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// CLASS SUMMARY QUERY
// Aggregate statistics over the whole store: count, average/highest/
// lowest GPA and the per-letter grade distribution.
// ══════════════════════════════════════════════════════════════════════════════

// GradeBucket is one row of the grade distribution.
type GradeBucket struct {
	// Letter - the letter grade of this bucket.
	Letter string `json:"letter"`

	// Count - number of students whose GPA maps to the letter.
	Count int `json:"count"`

	// Percent - share of all students, 0-100.
	Percent float64 `json:"percent"`
}

// ClassSummaryQuery has no parameters.
type ClassSummaryQuery struct{}

// ClassSummaryResult contains the aggregate statistics. With an empty
// store TotalStudents is 0 and every other field is zero-valued.
type ClassSummaryResult struct {
	// TotalStudents - number of records.
	TotalStudents int `json:"total_students"`

	// AverageGPA / HighestGPA / LowestGPA - GPA statistics.
	AverageGPA float64 `json:"average_gpa"`
	HighestGPA float64 `json:"highest_gpa"`
	LowestGPA  float64 `json:"lowest_gpa"`

	// AverageLetter / HighestLetter / LowestLetter - the letters the
	// GPA statistics map to.
	AverageLetter string `json:"average_letter"`
	HighestLetter string `json:"highest_letter"`
	LowestLetter  string `json:"lowest_letter"`

	// Distribution - per-letter buckets in policy threshold order.
	// Letters with zero students are included, so the shape of the
	// distribution is stable.
	Distribution []GradeBucket `json:"distribution"`
}

// ClassSummaryHandler handles the ClassSummaryQuery.
type ClassSummaryHandler struct {
	repo   student.Repository
	policy student.GradingPolicy
}

// NewClassSummaryHandler creates a new ClassSummaryHandler.
func NewClassSummaryHandler(repo student.Repository, policy student.GradingPolicy) *ClassSummaryHandler {
	return &ClassSummaryHandler{repo: repo, policy: policy}
}

// Handle executes the query.
func (h *ClassSummaryHandler) Handle(ctx context.Context, _ ClassSummaryQuery) (*ClassSummaryResult, error) {
	records, err := h.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("class_summary: %w", err)
	}

	result := &ClassSummaryResult{TotalStudents: len(records)}
	if len(records) == 0 {
		return result, nil
	}

	counts := make(map[string]int, len(h.policy.Thresholds))

	var total float64
	highest := records[0].GPA
	lowest := records[0].GPA
	for _, s := range records {
		total += s.GPA
		if s.GPA > highest {
			highest = s.GPA
		}
		if s.GPA < lowest {
			lowest = s.GPA
		}
		counts[s.Letter(h.policy)]++
	}

	result.AverageGPA = total / float64(len(records))
	result.HighestGPA = highest
	result.LowestGPA = lowest
	result.AverageLetter = h.policy.LetterFor(result.AverageGPA)
	result.HighestLetter = h.policy.LetterFor(highest)
	result.LowestLetter = h.policy.LetterFor(lowest)

	result.Distribution = make([]GradeBucket, 0, len(h.policy.Thresholds))
	for _, t := range h.policy.Thresholds {
		count := counts[t.Letter]
		result.Distribution = append(result.Distribution, GradeBucket{
			Letter:  t.Letter,
			Count:   count,
			Percent: float64(count) / float64(len(records)) * 100,
		})
	}

	return result, nil
}

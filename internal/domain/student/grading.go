package student

import (
	"math"
	"strings"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// GRADING POLICY
// Maps raw marks to a GPA and a letter grade. The scaling divisor and the
// letter thresholds are policy, not hard rules: they are loaded from
// configuration and default to the reference behavior (0-5 scale, avg/20).
// ══════════════════════════════════════════════════════════════════════════════

// GradeThreshold is one row of the letter table: the letter applies to
// every GPA greater than or equal to MinGPA.
type GradeThreshold struct {
	MinGPA float64
	Letter string
}

// GradingPolicy converts mark sequences into GPA values and letter grades.
type GradingPolicy struct {
	// Divisor scales the raw mark average onto the GPA scale.
	// With marks in [0,100] a divisor of 20 yields a 0.0-5.0 GPA.
	Divisor float64

	// Thresholds is the letter table, ordered by descending MinGPA.
	// The last entry is the floor and should carry MinGPA 0.
	Thresholds []GradeThreshold
}

// MaxGPA is the top of the default GPA scale.
const MaxGPA = 5.0

// DefaultGradingPolicy returns the reference policy: average divided by 20
// (0-5 scale) with letter cuts at 4.5/3.5/2.5/1.5.
func DefaultGradingPolicy() GradingPolicy {
	return GradingPolicy{
		Divisor: 20,
		Thresholds: []GradeThreshold{
			{MinGPA: 4.5, Letter: "A"},
			{MinGPA: 3.5, Letter: "B"},
			{MinGPA: 2.5, Letter: "C"},
			{MinGPA: 1.5, Letter: "D"},
			{MinGPA: 0.0, Letter: "F"},
		},
	}
}

// ErrInvalidPolicy - the grading policy is not internally consistent.
var ErrInvalidPolicy = shared.NewDomainError("student", "Validate", shared.ErrInvalidInput, "invalid grading policy")

// Validate checks internal consistency of the policy: positive divisor,
// non-empty letter table ordered by strictly descending MinGPA, a zero
// floor entry so LetterFor is total, and no blank letters.
func (p GradingPolicy) Validate() error {
	if p.Divisor <= 0 {
		return ErrInvalidPolicy
	}
	if len(p.Thresholds) == 0 {
		return ErrInvalidPolicy
	}

	prev := math.Inf(1)
	for _, t := range p.Thresholds {
		if strings.TrimSpace(t.Letter) == "" {
			return ErrInvalidPolicy
		}
		if t.MinGPA < 0 || t.MinGPA >= prev {
			return ErrInvalidPolicy
		}
		prev = t.MinGPA
	}
	if p.Thresholds[len(p.Thresholds)-1].MinGPA != 0 {
		return ErrInvalidPolicy
	}

	return nil
}

// ComputeGPA averages the mark scores and scales them by the divisor,
// rounded to two decimals. Pure and deterministic; an empty sequence
// yields 0.0.
func (p GradingPolicy) ComputeGPA(marks []SubjectMark) float64 {
	if len(marks) == 0 {
		return 0.0
	}

	var total float64
	for _, sm := range marks {
		total += float64(sm.Score)
	}
	average := total / float64(len(marks))

	return math.Round(average/p.Divisor*100) / 100
}

// LetterFor returns the letter grade for a GPA. Thresholds are inclusive:
// a GPA exactly on a cut receives the higher letter. Total over the scale
// because the table floor is 0.
func (p GradingPolicy) LetterFor(gpa float64) string {
	for _, t := range p.Thresholds {
		if gpa >= t.MinGPA {
			return t.Letter
		}
	}
	// Negative input only; clamp to the floor letter.
	return p.Thresholds[len(p.Thresholds)-1].Letter
}

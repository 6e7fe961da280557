// Package student contains the domain model for student grade records.
// This is the core of the business logic - there are no external
// dependencies here beyond event ID generation.
package student

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// VALUE OBJECTS
// ══════════════════════════════════════════════════════════════════════════════

// StudentID uniquely identifies a student record.
type StudentID string

// IsValid checks that the ID is non-empty and contains no whitespace.
func (id StudentID) IsValid() bool {
	s := string(id)
	if strings.TrimSpace(s) == "" || s != strings.TrimSpace(s) {
		return false
	}
	return !strings.ContainsFunc(s, unicode.IsSpace)
}

// String returns the string representation of the ID.
func (id StudentID) String() string {
	return string(id)
}

// Mark represents a single numeric score.
type Mark float64

// IsValid checks that the mark is within [0, 100].
func (m Mark) IsValid() bool {
	return m >= 0 && m <= 100
}

// SubjectMark is one scored subject of a student record. Marks are kept
// as an ordered sequence; order is preserved across save/load.
type SubjectMark struct {
	Subject string
	Score   Mark
}

// reservedSubjectChar is the list separator of the persisted record
// format. Subject names must not contain it, or a saved record could
// not be read back.
const reservedSubjectChar = "|"

// MaxNameLength bounds the student name length.
const MaxNameLength = 100

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidStudentID - the identifier is empty or contains whitespace.
	ErrInvalidStudentID = shared.NewDomainError("student", "Validate", shared.ErrInvalidID, "student id must be non-empty without whitespace")

	// ErrInvalidName - the name is empty or too long.
	ErrInvalidName = shared.NewDomainError("student", "Validate", shared.ErrEmptyValue, fmt.Sprintf("name must be 1-%d characters", MaxNameLength))

	// ErrNoMarks - a record needs at least one subject mark.
	ErrNoMarks = shared.NewDomainError("student", "Validate", shared.ErrInvalidInput, "at least one subject mark is required")

	// ErrInvalidMark - a mark is outside [0, 100].
	ErrInvalidMark = shared.NewDomainError("student", "Validate", shared.ErrValueOutOfRange, "marks must be between 0 and 100")

	// ErrEmptySubject - a subject name is empty.
	ErrEmptySubject = shared.NewDomainError("student", "Validate", shared.ErrEmptyValue, "subject name cannot be empty")

	// ErrInvalidSubject - a subject name contains the reserved '|' character.
	ErrInvalidSubject = shared.NewDomainError("student", "Validate", shared.ErrInvalidInput, "subject name cannot contain '|'")

	// ErrDuplicateSubject - the same subject appears twice in one record.
	ErrDuplicateSubject = shared.NewDomainError("student", "Validate", shared.ErrInvalidInput, "duplicate subject in record")

	// ErrSubjectNotFound - the subject does not exist on the record.
	ErrSubjectNotFound = shared.NewDomainError("student", "Update", shared.ErrNotFound, "subject not found on record")

	// ErrLastSubject - the last remaining subject cannot be removed.
	ErrLastSubject = shared.NewDomainError("student", "Update", shared.ErrInvalidInput, "cannot remove the last subject")

	// ErrStudentNotFound - no record exists for the identifier.
	ErrStudentNotFound = shared.NewDomainError("student", "Find", shared.ErrNotFound, "student not found")

	// ErrStudentExists - a record with the identifier already exists.
	ErrStudentExists = shared.NewDomainError("student", "Create", shared.ErrAlreadyExists, "student already exists")
)

// ══════════════════════════════════════════════════════════════════════════════
// VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// ValidateID validates a student identifier.
func ValidateID(id StudentID) error {
	if !id.IsValid() {
		return ErrInvalidStudentID
	}
	return nil
}

// ValidateName validates a student name after trimming.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) == 0 || len(trimmed) > MaxNameLength {
		return ErrInvalidName
	}
	return nil
}

// ValidateMarks validates a mark sequence: non-empty, every score within
// range, subject names non-empty, free of the reserved separator and
// unique within the record.
func ValidateMarks(marks []SubjectMark) error {
	if len(marks) == 0 {
		return ErrNoMarks
	}

	seen := make(map[string]struct{}, len(marks))
	for _, sm := range marks {
		subject := strings.TrimSpace(sm.Subject)
		if subject == "" {
			return ErrEmptySubject
		}
		if strings.Contains(subject, reservedSubjectChar) {
			return ErrInvalidSubject
		}
		if !sm.Score.IsValid() {
			return ErrInvalidMark
		}
		if _, dup := seen[subject]; dup {
			return ErrDuplicateSubject
		}
		seen[subject] = struct{}{}
	}

	return nil
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student is the central entity: one grade record for one student.
// GPA is derived from Marks and kept in sync by every mutation; it is
// never authoritative on its own.
type Student struct {
	// ID - unique identifier, chosen by the operator.
	ID StudentID

	// Name - display name of the student.
	Name string

	// Marks - ordered sequence of subject marks.
	Marks []SubjectMark

	// GPA - derived grade point average on the policy scale (0.0-5.0).
	GPA float64

	// CreatedAt - time the record was created.
	CreatedAt time.Time

	// UpdatedAt - time of the last mutation.
	UpdatedAt time.Time
}

// NewStudentParams contains parameters for creating a new student record.
type NewStudentParams struct {
	ID    StudentID
	Name  string
	Marks []SubjectMark
}

// NewStudent creates a new student record with full validation and a
// GPA computed under the given policy.
func NewStudent(params NewStudentParams, policy GradingPolicy) (*Student, error) {
	if err := ValidateID(params.ID); err != nil {
		return nil, err
	}
	if err := ValidateName(params.Name); err != nil {
		return nil, err
	}
	if err := ValidateMarks(params.Marks); err != nil {
		return nil, err
	}

	marks := make([]SubjectMark, len(params.Marks))
	for i, sm := range params.Marks {
		marks[i] = SubjectMark{Subject: strings.TrimSpace(sm.Subject), Score: sm.Score}
	}

	now := time.Now().UTC()

	s := &Student{
		ID:        params.ID,
		Name:      strings.TrimSpace(params.Name),
		Marks:     marks,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.Recalculate(policy)

	return s, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS
// ══════════════════════════════════════════════════════════════════════════════

// Recalculate recomputes the derived GPA from the current marks.
func (s *Student) Recalculate(policy GradingPolicy) {
	s.GPA = policy.ComputeGPA(s.Marks)
}

// Letter returns the letter grade for the record under the given policy.
func (s *Student) Letter(policy GradingPolicy) string {
	return policy.LetterFor(s.GPA)
}

// Rename changes the student name after validation.
func (s *Student) Rename(name string) error {
	if err := ValidateName(name); err != nil {
		return err
	}
	s.Name = strings.TrimSpace(name)
	s.touch()
	return nil
}

// MarkFor returns the score for a subject and whether it exists.
func (s *Student) MarkFor(subject string) (Mark, bool) {
	subject = strings.TrimSpace(subject)
	for _, sm := range s.Marks {
		if sm.Subject == subject {
			return sm.Score, true
		}
	}
	return 0, false
}

// SetMark adds or updates the mark for a subject and recomputes the GPA.
// New subjects are appended, preserving sequence order. It returns the
// previous score and whether the subject already existed.
func (s *Student) SetMark(subject string, score Mark, policy GradingPolicy) (previous Mark, existed bool, err error) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		return 0, false, ErrEmptySubject
	}
	if strings.Contains(subject, reservedSubjectChar) {
		return 0, false, ErrInvalidSubject
	}
	if !score.IsValid() {
		return 0, false, ErrInvalidMark
	}

	for i, sm := range s.Marks {
		if sm.Subject == subject {
			previous = sm.Score
			s.Marks[i].Score = score
			s.Recalculate(policy)
			s.touch()
			return previous, true, nil
		}
	}

	s.Marks = append(s.Marks, SubjectMark{Subject: subject, Score: score})
	s.Recalculate(policy)
	s.touch()
	return 0, false, nil
}

// RemoveSubject removes a subject mark and recomputes the GPA. The last
// remaining subject cannot be removed: a record must keep at least one mark.
func (s *Student) RemoveSubject(subject string, policy GradingPolicy) (removed Mark, err error) {
	if len(s.Marks) <= 1 {
		return 0, ErrLastSubject
	}

	subject = strings.TrimSpace(subject)
	for i, sm := range s.Marks {
		if sm.Subject == subject {
			removed = sm.Score
			s.Marks = append(s.Marks[:i], s.Marks[i+1:]...)
			s.Recalculate(policy)
			s.touch()
			return removed, nil
		}
	}

	return 0, ErrSubjectNotFound
}

// Equal reports field-for-field equality of the persisted attributes
// (ID, name, marks in order, GPA). Timestamps are not compared.
func (s *Student) Equal(other *Student) bool {
	if s == nil || other == nil {
		return s == other
	}
	if s.ID != other.ID || s.Name != other.Name || s.GPA != other.GPA {
		return false
	}
	if len(s.Marks) != len(other.Marks) {
		return false
	}
	for i := range s.Marks {
		if s.Marks[i] != other.Marks[i] {
			return false
		}
	}
	return true
}

// Clone creates a deep copy of the student record.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}

	clone := *s
	clone.Marks = make([]SubjectMark, len(s.Marks))
	copy(clone.Marks, s.Marks)
	return &clone
}

// String returns a string representation of the record for logging.
func (s *Student) String() string {
	return fmt.Sprintf("Student{ID: %s, Name: %s, Subjects: %d, GPA: %.2f}",
		s.ID, s.Name, len(s.Marks), s.GPA)
}

func (s *Student) touch() {
	s.UpdatedAt = time.Now().UTC()
}

package student

import (
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN EVENTS
// Emitted by the command handlers after every successful mutation.
// The autosave subscriber persists the store in response.
// ══════════════════════════════════════════════════════════════════════════════

// RecordAddedEvent is emitted when a new student record is created.
type RecordAddedEvent struct {
	shared.BaseEvent
	Name string  `json:"name"`
	GPA  float64 `json:"gpa"`
}

// NewRecordAddedEvent creates a RecordAddedEvent for a student.
func NewRecordAddedEvent(s *Student) RecordAddedEvent {
	return RecordAddedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventRecordAdded, s.ID.String()),
		Name:      s.Name,
		GPA:       s.GPA,
	}
}

// RecordUpdatedEvent is emitted when an existing record is mutated.
type RecordUpdatedEvent struct {
	shared.BaseEvent
	Name        string  `json:"name"`
	PreviousGPA float64 `json:"previous_gpa"`
	GPA         float64 `json:"gpa"`
}

// NewRecordUpdatedEvent creates a RecordUpdatedEvent for a student.
func NewRecordUpdatedEvent(s *Student, previousGPA float64) RecordUpdatedEvent {
	return RecordUpdatedEvent{
		BaseEvent:   shared.NewBaseEvent(shared.EventRecordUpdated, s.ID.String()),
		Name:        s.Name,
		PreviousGPA: previousGPA,
		GPA:         s.GPA,
	}
}

// RecordDeletedEvent is emitted when a record is removed.
type RecordDeletedEvent struct {
	shared.BaseEvent
	Name string `json:"name"`
}

// NewRecordDeletedEvent creates a RecordDeletedEvent for a deleted record.
func NewRecordDeletedEvent(id StudentID, name string) RecordDeletedEvent {
	return RecordDeletedEvent{
		BaseEvent: shared.NewBaseEvent(shared.EventRecordDeleted, id.String()),
		Name:      name,
	}
}

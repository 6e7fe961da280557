package student

import (
	"context"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// The contract for the record store. Implementations live in
// infrastructure/persistence.
// ══════════════════════════════════════════════════════════════════════════════

// Repository defines the CRUD operations over student records.
type Repository interface {
	// Create inserts a new record.
	// Returns ErrStudentExists if the identifier is already taken;
	// the store is left unchanged in that case.
	Create(ctx context.Context, s *Student) error

	// GetByID returns the record for an identifier.
	// Returns ErrStudentNotFound if there is none.
	GetByID(ctx context.Context, id StudentID) (*Student, error)

	// Update replaces an existing record.
	// Returns ErrStudentNotFound if there is none; the store is left
	// unchanged in that case.
	Update(ctx context.Context, s *Student) error

	// Delete removes a record.
	// Returns ErrStudentNotFound if there is none.
	Delete(ctx context.Context, id StudentID) error

	// List returns all records in insertion order. The ordering is
	// stable and survives a save/load round-trip.
	List(ctx context.Context) ([]*Student, error)

	// Count returns the number of records.
	Count(ctx context.Context) (int, error)

	// ReplaceAll discards the current contents and installs the given
	// records, preserving their order. Used by the startup load.
	ReplaceAll(ctx context.Context, records []*Student) error
}

// Package memory implements the in-memory record store. It is the primary
// store for a session: the flat file is loaded into it at startup and
// serialized back out on save.
package memory

import (
	"context"
	"sync"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT REPOSITORY IMPLEMENTATION
// Map keyed by identifier plus an insertion-order index, so List is stable.
// Records are cloned on the way in and out: callers never alias store state.
// ══════════════════════════════════════════════════════════════════════════════

// StudentRepository implements student.Repository in memory.
type StudentRepository struct {
	mu      sync.RWMutex
	records map[student.StudentID]*student.Student
	order   []student.StudentID
}

// NewStudentRepository creates an empty in-memory repository.
func NewStudentRepository() *StudentRepository {
	return &StudentRepository{
		records: make(map[student.StudentID]*student.Student),
	}
}

// Create inserts a new record.
func (r *StudentRepository) Create(ctx context.Context, s *student.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[s.ID]; exists {
		return student.ErrStudentExists
	}

	r.records[s.ID] = s.Clone()
	r.order = append(r.order, s.ID)
	return nil
}

// GetByID returns the record for an identifier.
func (r *StudentRepository) GetByID(ctx context.Context, id student.StudentID) (*student.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, exists := r.records[id]
	if !exists {
		return nil, student.ErrStudentNotFound
	}
	return s.Clone(), nil
}

// Update replaces an existing record.
func (r *StudentRepository) Update(ctx context.Context, s *student.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[s.ID]; !exists {
		return student.ErrStudentNotFound
	}

	r.records[s.ID] = s.Clone()
	return nil
}

// Delete removes a record.
func (r *StudentRepository) Delete(ctx context.Context, id student.StudentID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.records[id]; !exists {
		return student.ErrStudentNotFound
	}

	delete(r.records, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// List returns all records in insertion order.
func (r *StudentRepository) List(ctx context.Context) ([]*student.Student, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*student.Student, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.records[id].Clone())
	}
	return out, nil
}

// Count returns the number of records.
func (r *StudentRepository) Count(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.records), nil
}

// ReplaceAll installs the given records, discarding current contents.
// Input order becomes the new insertion order.
func (r *StudentRepository) ReplaceAll(ctx context.Context, records []*student.Student) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	fresh := make(map[student.StudentID]*student.Student, len(records))
	order := make([]student.StudentID, 0, len(records))
	for _, s := range records {
		if _, dup := fresh[s.ID]; dup {
			return student.ErrStudentExists
		}
		fresh[s.ID] = s.Clone()
		order = append(order, s.ID)
	}

	r.records = fresh
	r.order = order
	return nil
}

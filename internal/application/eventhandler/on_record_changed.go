// Package eventhandler contains subscribers for domain events.
package eventhandler

import (
	"context"
	"fmt"

	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/shared"
	"github.com/engr-rabbi/Student-Grade-Management-System/internal/domain/student"
	"github.com/engr-rabbi/Student-Grade-Management-System/pkg/logger"
)

// ══════════════════════════════════════════════════════════════════════════════
// ON RECORD CHANGED HANDLER
// Persists the full store to disk after every mutation, so a crash
// between menu actions loses at most nothing. The final save on exit
// still runs; this handler is the defensive layer in between.
// ══════════════════════════════════════════════════════════════════════════════

// SnapshotStore persists the full record set. Implemented by the
// csvfile store.
type SnapshotStore interface {
	Save(ctx context.Context, records []*student.Student) error
}

// OnRecordChangedHandler saves the store whenever a record is added,
// updated or deleted.
type OnRecordChangedHandler struct {
	repo   student.Repository
	store  SnapshotStore
	logger *logger.Logger
}

// NewOnRecordChangedHandler creates a new OnRecordChangedHandler.
func NewOnRecordChangedHandler(
	repo student.Repository,
	store SnapshotStore,
	log *logger.Logger,
) *OnRecordChangedHandler {
	if log == nil {
		log = logger.Default()
	}
	return &OnRecordChangedHandler{repo: repo, store: store, logger: log}
}

// EventTypes implements shared.EventHandler.
func (h *OnRecordChangedHandler) EventTypes() []shared.EventType {
	return []shared.EventType{
		shared.EventRecordAdded,
		shared.EventRecordUpdated,
		shared.EventRecordDeleted,
	}
}

// Handle persists the current store contents.
func (h *OnRecordChangedHandler) Handle(ctx context.Context, event shared.Event) error {
	records, err := h.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("autosave: %w", err)
	}

	if err := h.store.Save(ctx, records); err != nil {
		return fmt.Errorf("autosave after %s: %w", event.EventType(), err)
	}

	h.logger.Debug("autosaved after mutation",
		logger.String("event_type", string(event.EventType())),
		logger.Int("records", len(records)))

	return nil
}

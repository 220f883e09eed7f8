package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

// AuditStore is a simple in-memory implementation of domain.AuditStore.
// It is NOT persistent and is only suitable for development / local mode.
type AuditStore struct {
	mu       sync.RWMutex
	records  map[domain.InteractionID]*domain.Interaction
	byUserID map[domain.UserID][]domain.InteractionID
}

// NewAuditStore creates a new in-memory AuditStore.
func NewAuditStore() *AuditStore {
	return &AuditStore{
		records:  make(map[domain.InteractionID]*domain.Interaction),
		byUserID: make(map[domain.UserID][]domain.InteractionID),
	}
}

// AppendInteraction saves a new interaction record.
func (s *AuditStore) AppendInteraction(rec *domain.Interaction) error {
	if rec == nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = domain.InteractionID(uuid.NewString())
	}

	s.records[rec.ID] = rec
	s.byUserID[rec.UserID] = append(s.byUserID[rec.UserID], rec.ID)

	return nil
}

// ListInteractionsByUser returns the last `limit` records for a user.
// If limit <= 0, returns all.
func (s *AuditStore) ListInteractionsByUser(
	userID domain.UserID,
	limit int,
) ([]*domain.Interaction, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := s.byUserID[userID]
	if len(ids) == 0 {
		return []*domain.Interaction{}, nil
	}

	if limit <= 0 || limit > len(ids) {
		limit = len(ids)
	}

	start := len(ids) - limit
	selected := ids[start:]

	out := make([]*domain.Interaction, 0, len(selected))
	for _, id := range selected {
		if r, ok := s.records[id]; ok {
			out = append(out, r)
		}
	}

	return out, nil
}

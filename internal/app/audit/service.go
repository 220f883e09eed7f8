package audit

import (
	"context"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

// Service holds the logic of reading the interaction trail
type Service struct {
	store domain.AuditStore
}

// NewService creates an audit service from an AuditStore
func NewService(store domain.AuditStore) *Service {
	return &Service{
		store: store,
	}
}

// GetUserInteractions returns the last `limit` audited interactions for a
// user. If limit <= 0, a reasonable default value is used.
func (s *Service) GetUserInteractions(
	ctx context.Context,
	userID domain.UserID,
	limit int,
) ([]*domain.Interaction, error) {

	if s.store == nil {
		return []*domain.Interaction{}, nil
	}

	if limit <= 0 {
		limit = 20
	}

	return s.store.ListInteractionsByUser(userID, limit)
}

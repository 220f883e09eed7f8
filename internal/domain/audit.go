package domain

import "time"

// InteractionID identifies one audited pipeline run
type InteractionID string

// Interaction is the audit record of a single pipeline run: what the user
// asked, how they were segmented, what was suggested, and what came back.
type Interaction struct {
	ID        InteractionID `json:"id"`
	SessionID SessionID     `json:"session_id"`
	UserID    UserID        `json:"user_id"`

	CreatedAt time.Time `json:"created_at"`

	Query      string  `json:"query"`
	Segment    Segment `json:"segment"`
	Suggestion string  `json:"suggestion"`
	Response   string  `json:"response"`

	// ServiceError text when the completion call failed and the generic
	// fallback response was used
	Error string `json:"error,omitempty"`
}

// AuditStore defines the minimum operations to persist the interaction trail
type AuditStore interface {
	AppendInteraction(rec *Interaction) error
	ListInteractionsByUser(userID UserID, limit int) ([]*Interaction, error)
}

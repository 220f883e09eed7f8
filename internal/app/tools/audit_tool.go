package tools

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

// AuditTool records the outcome of a pipeline run (query, detected segment,
// draft suggestion, final response) into a domain.AuditStore.
type AuditTool struct {
	store domain.AuditStore
	now   func() time.Time
}

func NewAuditTool(store domain.AuditStore) *AuditTool {
	return &AuditTool{
		store: store,
		now:   time.Now,
	}
}

func (t *AuditTool) Name() string {
	return "interaction_audit"
}

// Call expects an input with this shape:
//
//	{
//	  "query": "I want to cancel my subscription",
//	  "segment": "churn_risk",
//	  "suggestion": "We understand your concern. ...",
//	  "response": "final assistant text",
//	  "error": ""  // completion failure text, if any
//	}
//
// UserID and SessionID come in ToolContext.
func (t *AuditTool) Call(
	ctx context.Context,
	tctx ToolContext,
	input map[string]any,
) (map[string]any, error) {

	if tctx.UserID == "" || tctx.SessionID == "" {
		return nil, fmt.Errorf("interaction_audit: missing UserID or SessionID in ToolContext")
	}

	rec := &domain.Interaction{
		ID:         domain.InteractionID(uuid.NewString()),
		SessionID:  domain.SessionID(tctx.SessionID),
		UserID:     domain.UserID(tctx.UserID),
		CreatedAt:  t.now(),
		Query:      getString(input, "query"),
		Segment:    domain.Segment(getString(input, "segment")),
		Suggestion: getString(input, "suggestion"),
		Response:   getString(input, "response"),
		Error:      getString(input, "error"),
	}

	if err := t.store.AppendInteraction(rec); err != nil {
		return nil, fmt.Errorf("interaction_audit: append failed: %w", err)
	}

	return map[string]any{
		"status":     "ok",
		"record_id":  string(rec.ID),
		"session_id": string(rec.SessionID),
		"user_id":    string(rec.UserID),
		"created_at": rec.CreatedAt,
	}, nil
}

func getString(m map[string]any, key string) string {
	if m == nil {
		return ""
	}
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

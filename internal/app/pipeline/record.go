// Package pipeline implements the three-stage query flow:
// ingest -> classify -> respond. Each stage receives a Record value and
// returns a new one, so stage contracts stay independently testable.
package pipeline

import "github.com/PabloGalante/pci-agent/internal/domain"

// Record is the per-invocation state threaded through the stages. It is
// created when Run starts and discarded once the response is returned;
// it is never persisted.
type Record struct {
	// Conversation is the history snapshot loaded by the ingest stage,
	// oldest first, without the current user query.
	Conversation []domain.Turn

	// UserQuery is the raw text of the current user turn.
	UserQuery string

	// HistoryText is Conversation flattened to "<role>: <content>" lines.
	HistoryText string

	Segment    domain.Segment
	Suggestion string

	// Response is the final assistant text. On a completion failure it
	// holds the generic fallback and Err carries the cause.
	Response string
	Err      error
}

// Result is what Run hands back to the session host.
type Result struct {
	Response   string
	Segment    domain.Segment
	Suggestion string

	// Err is the completion-service failure, if any. The response is
	// still usable when it is set.
	Err error
}

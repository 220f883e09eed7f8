package pipeline

import (
	"context"
	"fmt"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

// IngestStage: captures the query and prepares historical context for the
// rest of the pipeline.
type IngestStage struct {
	memory domain.ConversationMemory
}

func NewIngestStage(memory domain.ConversationMemory) *IngestStage {
	return &IngestStage{memory: memory}
}

func (s *IngestStage) Name() string {
	return "ingest"
}

func (s *IngestStage) Run(ctx context.Context, rec Record) (Record, error) {
	history, err := s.memory.Load(ctx)
	if err != nil {
		return rec, fmt.Errorf("loading conversation memory: %w", err)
	}

	rec.Conversation = history
	rec.HistoryText = FlattenHistory(history)
	return rec, nil
}

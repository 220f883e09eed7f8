package memory

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/PabloGalante/pci-agent/internal/domain"
	"github.com/PabloGalante/pci-agent/internal/observability"
)

const summarizerInstruction = "You are a conversation summarizer for a customer service assistant. " +
	"Condense the prior summary and the new exchange into a single short paragraph. " +
	"Keep every fact that matters for serving the customer (intent, products mentioned, complaints, commitments made). " +
	"Reply with the summary text only."

// Summary retains a single rolling summary turn instead of the full history.
// Each Append submits the prior summary plus the new exchange to the
// completion service and replaces the stored history with the returned text.
type Summary struct {
	llm domain.CompletionClient

	mu      sync.RWMutex
	summary string
}

func NewSummary(llm domain.CompletionClient) *Summary {
	return &Summary{llm: llm}
}

func (s *Summary) Load(ctx context.Context) ([]domain.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.summary == "" {
		return nil, nil
	}
	return []domain.Turn{{Role: domain.RoleAssistant, Content: s.summary}}, nil
}

func (s *Summary) Append(ctx context.Context, userText, assistantText string) error {
	s.mu.RLock()
	prior := s.summary
	s.mu.RUnlock()

	var b strings.Builder
	if prior != "" {
		b.WriteString("Summary so far:\n")
		b.WriteString(prior)
		b.WriteString("\n\n")
	}
	b.WriteString("New exchange:\n")
	b.WriteString("user: " + userText + "\n")
	b.WriteString("assistant: " + assistantText)

	messages := []domain.Turn{
		{Role: domain.RoleSystem, Content: summarizerInstruction},
		{Role: domain.RoleUser, Content: b.String()},
	}

	updated, err := s.llm.Complete(ctx, messages)
	if err != nil {
		// Keep the prior summary rather than losing history.
		observability.LoggerFromContext(ctx).Error("summary update failed", "error", err)
		return fmt.Errorf("summarizing conversation: %w", err)
	}

	s.mu.Lock()
	s.summary = updated
	s.mu.Unlock()
	return nil
}

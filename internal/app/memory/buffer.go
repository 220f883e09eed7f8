// Package memory implements the conversation history modes: a verbatim
// buffer and a rolling summary maintained through the completion service.
package memory

import (
	"context"
	"sync"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

// Buffer retains the full conversation verbatim, oldest first. It grows
// monotonically for the lifetime of the session.
type Buffer struct {
	mu    sync.RWMutex
	turns []domain.Turn
}

func NewBuffer() *Buffer {
	return &Buffer{}
}

func (b *Buffer) Load(ctx context.Context) ([]domain.Turn, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	out := make([]domain.Turn, len(b.turns))
	copy(out, b.turns)
	return out, nil
}

func (b *Buffer) Append(ctx context.Context, userText, assistantText string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.turns = append(b.turns,
		domain.Turn{Role: domain.RoleUser, Content: userText},
		domain.Turn{Role: domain.RoleAssistant, Content: assistantText},
	)
	return nil
}

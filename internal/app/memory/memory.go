package memory

import (
	"fmt"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

// New builds a ConversationMemory for the given mode. The mode is fixed for
// the lifetime of the returned memory. Summary mode needs a completion
// client; buffer mode ignores it.
func New(mode domain.MemoryMode, llm domain.CompletionClient) (domain.ConversationMemory, error) {
	switch mode {
	case domain.MemoryBuffer:
		return NewBuffer(), nil
	case domain.MemorySummary:
		if llm == nil {
			return nil, fmt.Errorf("summary memory requires a completion client")
		}
		return NewSummary(llm), nil
	default:
		return nil, fmt.Errorf("invalid memory mode %q: must be %q or %q", mode, domain.MemoryBuffer, domain.MemorySummary)
	}
}

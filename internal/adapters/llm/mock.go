package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

// MockClient stands in for a real completion service in local mode and in
// tests. It echoes the last user turn so replies stay distinguishable.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Complete(ctx context.Context, messages []domain.Turn) (string, error) {
	last := ""
	for _, t := range messages {
		if t.Role == domain.RoleUser {
			last = t.Content
		}
	}
	return fmt.Sprintf("(mock) I hear you. You said %q. How else can I help?", last), nil
}

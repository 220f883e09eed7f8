package pipeline

import (
	"fmt"
	"strings"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

const systemInstructionTemplate = "You are a helpful customer service AI. " +
	"The user's query has been analyzed, and their segment is '%s'. " +
	"A preliminary suggestion is: '%s'. " +
	"Based on this, and the conversation history, formulate a friendly and helpful response. " +
	"If the preliminary suggestion is sufficient, you can incorporate it directly. " +
	"Otherwise, elaborate or rephrase to be most helpful to the user."

// FlattenHistory renders a conversation as a text block, one
// "<role>: <content>" line per turn, oldest first. The classifier consumes
// this form.
func FlattenHistory(turns []domain.Turn) string {
	if len(turns) == 0 {
		return ""
	}
	lines := make([]string, 0, len(turns))
	for _, t := range turns {
		lines = append(lines, string(t.Role)+": "+t.Content)
	}
	return strings.Join(lines, "\n")
}

// BuildPrompt assembles the completion request: the full conversation with
// the current user turn appended, followed by the system instruction
// carrying the detected segment and the draft suggestion.
func BuildPrompt(rec Record) []domain.Turn {
	messages := make([]domain.Turn, 0, len(rec.Conversation)+2)
	messages = append(messages, rec.Conversation...)
	messages = append(messages, domain.Turn{Role: domain.RoleUser, Content: rec.UserQuery})
	messages = append(messages, domain.Turn{
		Role:    domain.RoleSystem,
		Content: fmt.Sprintf(systemInstructionTemplate, rec.Segment, rec.Suggestion),
	})
	return messages
}

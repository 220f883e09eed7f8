package domain

import "context"

// CompletionClient defines how the core application talks to an external
// text-completion service. The messages are ordered oldest first; a leading
// RoleSystem turn carries the system instruction when present.
type CompletionClient interface {
	Complete(ctx context.Context, messages []Turn) (string, error)
}

// ConversationMemory is the history a pipeline reads for context and writes
// after each exchange. Buffer mode replays every turn verbatim; summary mode
// replays a single rolling summary turn.
type ConversationMemory interface {
	Load(ctx context.Context) ([]Turn, error)
	Append(ctx context.Context, userText, assistantText string) error
}

// SessionStore defines session's persistence
type SessionStore interface {
	CreateSession(session *Session) error
	UpdateSession(session *Session) error
	GetSession(id SessionID) (*Session, error)
	ListSessionsByUser(userID UserID, limit int) ([]*Session, error)
}

// MessageStore defines message's persistence
type MessageStore interface {
	AppendMessage(msg *Message) error
	GetMessagesBySession(sessionID SessionID, limit int) ([]*Message, error)
}

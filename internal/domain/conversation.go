package domain

// Turn is one unit of conversation as the pipeline and the completion
// service see it: a role plus content, nothing else. Immutable once built.
type Turn struct {
	Role    Role
	Content string
}

// Message represents a stored message in a session timeline (user or assistant)
type Message struct {
	ID        MessageID
	SessionID SessionID
	Author    Role
	Text      string
	CreatedAt Timestamp

	// Diagnostics attached by the pipeline to assistant messages
	Segment    Segment
	Suggestion string
}

// Session represents a concrete conversation between a user and the agent
type Session struct {
	ID        SessionID
	UserID    UserID
	CreatedAt Timestamp
	UpdatedAt Timestamp

	// Basic session's config
	MemoryMode MemoryMode
	Title      string
}

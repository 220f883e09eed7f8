package conversation

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/pci-agent/internal/app/memory"
	"github.com/PabloGalante/pci-agent/internal/app/pipeline"
	"github.com/PabloGalante/pci-agent/internal/app/tools"
	"github.com/PabloGalante/pci-agent/internal/domain"
	"github.com/PabloGalante/pci-agent/internal/observability"
)

const greetingText = "Hello! How can I help you with your query today?"

// Service is the session host: it owns session lifecycle, keeps one
// pipeline orchestrator (and its conversation memory) per live session,
// and records the verbatim transcript independently of the memory mode.
type Service struct {
	llm          domain.CompletionClient
	sessionStore domain.SessionStore
	messageStore domain.MessageStore
	auditTool    tools.Tool
	memoryMode   domain.MemoryMode
	now          func() time.Time

	mu            sync.Mutex
	orchestrators map[domain.SessionID]*pipeline.Orchestrator
}

func NewService(
	llm domain.CompletionClient,
	sessionStore domain.SessionStore,
	messageStore domain.MessageStore,
	auditTool tools.Tool,
	memoryMode domain.MemoryMode,
) *Service {
	return &Service{
		llm:           llm,
		sessionStore:  sessionStore,
		messageStore:  messageStore,
		auditTool:     auditTool,
		memoryMode:    memoryMode,
		now:           time.Now,
		orchestrators: make(map[domain.SessionID]*pipeline.Orchestrator),
	}
}

type StartSessionInput struct {
	UserID domain.UserID
	// MemoryMode overrides the service default when set.
	MemoryMode domain.MemoryMode
	Title      string
}

type StartSessionOutput struct {
	Session *domain.Session
}

func (s *Service) StartSession(ctx context.Context, in StartSessionInput) (*StartSessionOutput, error) {
	now := s.now()

	mode := in.MemoryMode
	if mode == "" {
		mode = s.memoryMode
	}

	log := observability.LoggerFromContext(ctx).With(
		"user_id", in.UserID,
		"memory_mode", mode,
	)
	log.Info("starting new session")

	session := &domain.Session{
		ID:         domain.SessionID(uuid.NewString()),
		UserID:     in.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
		MemoryMode: mode,
		Title:      in.Title,
	}

	// Memory mode is fixed at construction; an unknown value fails here,
	// before the session exists.
	mem, err := memory.New(mode, s.llm)
	if err != nil {
		log.Error("failed to build conversation memory", "error", err)
		return nil, err
	}

	if err := s.sessionStore.CreateSession(session); err != nil {
		log.Error("failed to create session", "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.orchestrators[session.ID] = pipeline.New(s.llm, mem, s.auditTool, tools.ToolContext{
		UserID:    string(session.UserID),
		SessionID: string(session.ID),
	})
	s.mu.Unlock()

	// Greeting shown to the user; it is part of the transcript but not of
	// the pipeline's memory, which starts empty.
	greeting := &domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		SessionID: session.ID,
		Author:    domain.RoleAssistant,
		Text:      greetingText,
		CreatedAt: now,
	}

	if err := s.messageStore.AppendMessage(greeting); err != nil {
		log.Error("failed to append greeting message", "error", err)
		return nil, err
	}

	log.Info("session started", "session_id", session.ID)

	return &StartSessionOutput{
		Session: session,
	}, nil
}

type SendMessageInput struct {
	SessionID domain.SessionID
	UserID    domain.UserID
	Text      string
}

type SendMessageOutput struct {
	UserMessage  *domain.Message
	AgentMessage *domain.Message

	Segment    domain.Segment
	Suggestion string
	// PipelineError is the completion failure text when the fallback
	// response was used.
	PipelineError string
}

func (s *Service) SendMessage(ctx context.Context, in SendMessageInput) (*SendMessageOutput, error) {
	session, err := s.sessionStore.GetSession(in.SessionID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	orc, ok := s.orchestrators[session.ID]
	s.mu.Unlock()
	if !ok {
		// Sessions do not survive a restart; neither do orchestrators.
		return nil, fmt.Errorf("no active pipeline for session %s: %w", session.ID, domain.ErrSessionNotFound)
	}

	log := observability.LoggerFromContext(ctx).With(
		"session_id", session.ID,
		"user_id", session.UserID,
		"memory_mode", session.MemoryMode,
	)
	log.Info("sending message", "text", in.Text)

	now := s.now()

	userMsg := &domain.Message{
		ID:        domain.MessageID(uuid.NewString()),
		SessionID: session.ID,
		Author:    domain.RoleUser,
		Text:      in.Text,
		CreatedAt: now,
	}

	if err := s.messageStore.AppendMessage(userMsg); err != nil {
		log.Error("failed to append user message", "error", err)
		return nil, err
	}

	res, runErr := orc.Run(ctx, in.Text)
	if runErr != nil {
		if res.Response == "" {
			log.Error("pipeline failed", "error", runErr)
			return nil, runErr
		}
		// Memory bookkeeping failed; the reply itself is still usable,
		// so log and continue with what the pipeline produced.
		log.Error("pipeline memory bookkeeping failed", "error", runErr)
	}

	agentMsg := &domain.Message{
		ID:         domain.MessageID(uuid.NewString()),
		SessionID:  session.ID,
		Author:     domain.RoleAssistant,
		Text:       res.Response,
		CreatedAt:  s.now(),
		Segment:    res.Segment,
		Suggestion: res.Suggestion,
	}

	if err := s.messageStore.AppendMessage(agentMsg); err != nil {
		log.Error("failed to append agent message", "error", err)
		return nil, err
	}

	session.UpdatedAt = s.now()
	if err := s.sessionStore.UpdateSession(session); err != nil {
		log.Error("failed to update session", "error", err)
		return nil, err
	}

	out := &SendMessageOutput{
		UserMessage:  userMsg,
		AgentMessage: agentMsg,
		Segment:      res.Segment,
		Suggestion:   res.Suggestion,
	}
	if res.Err != nil {
		out.PipelineError = res.Err.Error()
	}

	log.Info("send message completed", "segment", res.Segment)

	return out, nil
}

func (s *Service) GetSessionTimeline(
	ctx context.Context,
	sessionID domain.SessionID,
	limit int,
) (*domain.Session, []*domain.Message, error) {

	log := observability.LoggerFromContext(ctx).With(
		"session_id", sessionID,
		"limit", limit,
	)

	session, err := s.sessionStore.GetSession(sessionID)
	if err != nil {
		log.Error("failed to get session", "error", err)
		return nil, nil, err
	}

	msgs, err := s.messageStore.GetMessagesBySession(sessionID, limit)
	if err != nil {
		log.Error("failed to get messages", "error", err)
		return nil, nil, err
	}

	log.Info("fetched session timeline", "message_count", len(msgs))

	return session, msgs, nil
}

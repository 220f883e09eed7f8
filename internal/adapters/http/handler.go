package httpadapter

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/PabloGalante/pci-agent/internal/app/audit"
	"github.com/PabloGalante/pci-agent/internal/app/conversation"
	"github.com/PabloGalante/pci-agent/internal/domain"
)

type Server struct {
	convSvc  *conversation.Service
	auditSvc *audit.Service
}

func NewServer(convSvc *conversation.Service, auditSvc *audit.Service) http.Handler {
	s := &Server{convSvc: convSvc, auditSvc: auditSvc}
	mux := http.NewServeMux()

	mux.HandleFunc("/healthz", s.handleHealthz)

	// /sessions → create session (POST)
	mux.HandleFunc("/sessions", s.handleSessions)

	// /sessions/{id}          →  GET: get session + messages
	// /sessions/{id}/messages → POST: send message
	mux.HandleFunc("/sessions/", s.handleSessionWithID)

	// /users/{id}/interactions → GET: audited pipeline runs
	mux.HandleFunc("/users/", s.handleUserWithID)

	return chainMiddlewares(mux, withLogging, withCORS, withRequestID)
}

// ─────────────────────────────────────────────
// DTOs (request/response)
// ─────────────────────────────────────────────

type createSessionRequest struct {
	UserID     string `json:"user_id"`
	MemoryMode string `json:"memory_mode,omitempty"`
	Title      string `json:"title,omitempty"`
}

type createSessionResponse struct {
	Session sessionResponse  `json:"session"`
	Welcome *messageResponse `json:"welcome_message,omitempty"`
}

type sessionResponse struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Title      string    `json:"title"`
	MemoryMode string    `json:"memory_mode"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type messageResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type sendMessageRequest struct {
	UserID string `json:"user_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	UserMessage  messageResponse `json:"user_message"`
	AgentMessage messageResponse `json:"agent_message"`

	Segment    string `json:"segment"`
	Suggestion string `json:"suggestion"`
	Error      string `json:"error,omitempty"`
}

type getSessionResponse struct {
	Session  sessionResponse   `json:"session"`
	Messages []messageResponse `json:"messages"`
}

type interactionResponse struct {
	ID         string    `json:"id"`
	SessionID  string    `json:"session_id"`
	Query      string    `json:"query"`
	Segment    string    `json:"segment"`
	Suggestion string    `json:"suggestion"`
	Response   string    `json:"response"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// ─────────────────────────────────────────────
// Basic routing
// ─────────────────────────────────────────────

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// /sessions
func (s *Server) handleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	default:
		methodNotAllowed(w)
	}
}

// /sessions/{id} or /sessions/{id}/messages
func (s *Server) handleSessionWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/sessions/")
	if path == "" {
		http.NotFound(w, r)
		return
	}

	parts := strings.Split(path, "/")
	id := parts[0]

	if id == "" {
		http.NotFound(w, r)
		return
	}

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetSession(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	if len(parts) == 2 && parts[1] == "messages" {
		switch r.Method {
		case http.MethodPost:
			s.handleSendMessage(w, r, domain.SessionID(id))
		default:
			methodNotAllowed(w)
		}
		return
	}

	http.NotFound(w, r)
}

// /users/{id}/interactions
func (s *Server) handleUserWithID(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/users/")
	parts := strings.Split(path, "/")

	if len(parts) != 2 || parts[0] == "" || parts[1] != "interactions" {
		http.NotFound(w, r)
		return
	}

	switch r.Method {
	case http.MethodGet:
		s.handleListInteractions(w, r, domain.UserID(parts[0]))
	default:
		methodNotAllowed(w)
	}
}

// ─────────────────────────────────────────────
// Concrete handlers
// ─────────────────────────────────────────────

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}

	mode, ok := parseMemoryMode(req.MemoryMode)
	if !ok {
		badRequest(w, "memory_mode must be 'buffer' or 'summary'")
		return
	}

	out, err := s.convSvc.StartSession(
		r.Context(),
		conversation.StartSessionInput{
			UserID:     domain.UserID(req.UserID),
			MemoryMode: mode,
			Title:      req.Title,
		},
	)
	if err != nil {
		internalError(w, err)
		return
	}

	// The greeting is the only message so far; fetch it for the response.
	_, msgs, err := s.convSvc.GetSessionTimeline(r.Context(), out.Session.ID, 1)
	if err != nil {
		internalError(w, err)
		return
	}

	var welcome *messageResponse
	if len(msgs) > 0 && msgs[len(msgs)-1].Author == domain.RoleAssistant {
		m := toMessageResponse(msgs[len(msgs)-1])
		welcome = &m
	}

	resp := createSessionResponse{
		Session: toSessionResponse(out.Session),
		Welcome: welcome,
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request, id domain.SessionID) {
	session, msgs, err := s.convSvc.GetSessionTimeline(r.Context(), id, 0)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	resp := getSessionResponse{
		Session:  toSessionResponse(session),
		Messages: toMessagesResponse(msgs),
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSendMessage(w http.ResponseWriter, r *http.Request, sessionID domain.SessionID) {
	var req sendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid JSON body")
		return
	}

	if req.UserID == "" {
		badRequest(w, "user_id is required")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		badRequest(w, "text is required")
		return
	}

	out, err := s.convSvc.SendMessage(
		r.Context(),
		conversation.SendMessageInput{
			SessionID: sessionID,
			UserID:    domain.UserID(req.UserID),
			Text:      req.Text,
		},
	)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			http.NotFound(w, r)
			return
		}
		internalError(w, err)
		return
	}

	resp := sendMessageResponse{
		UserMessage:  toMessageResponse(out.UserMessage),
		AgentMessage: toMessageResponse(out.AgentMessage),
		Segment:      string(out.Segment),
		Suggestion:   out.Suggestion,
		Error:        out.PipelineError,
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListInteractions(w http.ResponseWriter, r *http.Request, userID domain.UserID) {
	recs, err := s.auditSvc.GetUserInteractions(r.Context(), userID, 0)
	if err != nil {
		internalError(w, err)
		return
	}

	out := make([]interactionResponse, 0, len(recs))
	for _, rec := range recs {
		out = append(out, interactionResponse{
			ID:         string(rec.ID),
			SessionID:  string(rec.SessionID),
			Query:      rec.Query,
			Segment:    string(rec.Segment),
			Suggestion: rec.Suggestion,
			Response:   rec.Response,
			Error:      rec.Error,
			CreatedAt:  rec.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"interactions": out})
}

// ─────────────────────────────────────────────
// Conversation Helpers
// ─────────────────────────────────────────────

func toSessionResponse(s *domain.Session) sessionResponse {
	return sessionResponse{
		ID:         string(s.ID),
		UserID:     string(s.UserID),
		Title:      s.Title,
		MemoryMode: string(s.MemoryMode),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        string(m.ID),
		SessionID: string(m.SessionID),
		Author:    string(m.Author),
		Text:      m.Text,
		CreatedAt: m.CreatedAt,
	}
}

func toMessagesResponse(msgs []*domain.Message) []messageResponse {
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toMessageResponse(m))
	}
	return out
}

func parseMemoryMode(s string) (domain.MemoryMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return "", true // service default
	case "buffer":
		return domain.MemoryBuffer, true
	case "summary":
		return domain.MemorySummary, true
	default:
		return "", false
	}
}

// ─────────────────────────────────────────────
// HTTP Helpers
// ─────────────────────────────────────────────

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{
		"error": msg,
	})
}

func internalError(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusInternalServerError, map[string]string{
		"error": "internal server error",
	})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeJSON(w, http.StatusMethodNotAllowed, map[string]string{
		"error": "method not allowed",
	})
}

package conversation_test

import (
	"context"
	"testing"

	"github.com/PabloGalante/pci-agent/internal/adapters/llm"
	"github.com/PabloGalante/pci-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/pci-agent/internal/app/conversation"
	"github.com/PabloGalante/pci-agent/internal/app/tools"
	"github.com/PabloGalante/pci-agent/internal/domain"
)

func newTestService(auditStore domain.AuditStore) *conversation.Service {
	llmClient := llm.NewMockClient()
	sessionStore := memory.NewSessionStore()
	messageStore := memory.NewMessageStore()

	var auditTool tools.Tool
	if auditStore != nil {
		auditTool = tools.NewAuditTool(auditStore)
	}

	return conversation.NewService(llmClient, sessionStore, messageStore, auditTool, domain.MemoryBuffer)
}

func TestStartSessionAndSendMessage(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)

	out, err := svc.StartSession(ctx, conversation.StartSessionInput{
		UserID: domain.UserID("test-user"),
		Title:  "Test session",
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	if out.Session.ID == "" {
		t.Fatalf("expected session id, got empty")
	}

	reply, err := svc.SendMessage(ctx, conversation.SendMessageInput{
		SessionID: out.Session.ID,
		UserID:    out.Session.UserID,
		Text:      "What is the price?",
	})
	if err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	if reply.AgentMessage == nil || reply.AgentMessage.Text == "" {
		t.Fatalf("expected non-empty agent reply")
	}
	if reply.Segment != domain.SegmentPriceSensitive {
		t.Fatalf("expected price_sensitive, got %q", reply.Segment)
	}
}

func TestSendMessageUnknownSession(t *testing.T) {
	svc := newTestService(nil)

	_, err := svc.SendMessage(context.Background(), conversation.SendMessageInput{
		SessionID: domain.SessionID("missing"),
		UserID:    domain.UserID("test-user"),
		Text:      "hello",
	})
	if err == nil {
		t.Fatalf("expected error for unknown session")
	}
}

func TestTimelineIncludesGreetingAndExchange(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(nil)

	out, err := svc.StartSession(ctx, conversation.StartSessionInput{
		UserID: domain.UserID("test-user"),
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	if _, err := svc.SendMessage(ctx, conversation.SendMessageInput{
		SessionID: out.Session.ID,
		UserID:    out.Session.UserID,
		Text:      "How do I upgrade?",
	}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	_, msgs, err := svc.GetSessionTimeline(ctx, out.Session.ID, 0)
	if err != nil {
		t.Fatalf("GetSessionTimeline failed: %v", err)
	}

	// greeting + user turn + assistant turn
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
	if msgs[0].Author != domain.RoleAssistant {
		t.Fatalf("expected greeting first, got %q", msgs[0].Author)
	}
	if msgs[1].Text != "How do I upgrade?" {
		t.Fatalf("unexpected user message %q", msgs[1].Text)
	}
	if msgs[2].Segment != domain.SegmentHighValueProspect {
		t.Fatalf("expected segment on assistant message, got %q", msgs[2].Segment)
	}
}

func TestSendMessageRecordsInteraction(t *testing.T) {
	ctx := context.Background()
	auditStore := memory.NewAuditStore()
	svc := newTestService(auditStore)

	out, err := svc.StartSession(ctx, conversation.StartSessionInput{
		UserID: domain.UserID("audited-user"),
	})
	if err != nil {
		t.Fatalf("StartSession failed: %v", err)
	}

	if _, err := svc.SendMessage(ctx, conversation.SendMessageInput{
		SessionID: out.Session.ID,
		UserID:    out.Session.UserID,
		Text:      "I want to cancel my subscription",
	}); err != nil {
		t.Fatalf("SendMessage failed: %v", err)
	}

	recs, err := auditStore.ListInteractionsByUser(domain.UserID("audited-user"), 0)
	if err != nil {
		t.Fatalf("ListInteractionsByUser failed: %v", err)
	}
	if len(recs) != 1 {
		t.Fatalf("expected 1 audit record, got %d", len(recs))
	}
	if recs[0].Segment != domain.SegmentChurnRisk {
		t.Fatalf("expected churn_risk in audit record, got %q", recs[0].Segment)
	}
}

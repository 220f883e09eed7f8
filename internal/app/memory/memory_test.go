package memory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/PabloGalante/pci-agent/internal/app/memory"
	"github.com/PabloGalante/pci-agent/internal/domain"
)

type scriptedLLM struct {
	reply string
	err   error
	calls int
}

func (s *scriptedLLM) Complete(ctx context.Context, messages []domain.Turn) (string, error) {
	s.calls++
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestBufferRoundTrip(t *testing.T) {
	ctx := context.Background()
	buf := memory.NewBuffer()

	if err := buf.Append(ctx, "hello", "hi there"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}
	if err := buf.Append(ctx, "second question", "second answer"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	turns, err := buf.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	want := []domain.Turn{
		{Role: domain.RoleUser, Content: "hello"},
		{Role: domain.RoleAssistant, Content: "hi there"},
		{Role: domain.RoleUser, Content: "second question"},
		{Role: domain.RoleAssistant, Content: "second answer"},
	}
	if len(turns) != len(want) {
		t.Fatalf("expected %d turns, got %d", len(want), len(turns))
	}
	for i := range want {
		if turns[i] != want[i] {
			t.Fatalf("turn %d = %+v, want %+v", i, turns[i], want[i])
		}
	}
}

func TestSummaryReplacesHistory(t *testing.T) {
	ctx := context.Background()
	llm := &scriptedLLM{reply: "customer asked about pricing; offered Basic Plan"}
	sum := memory.NewSummary(llm)

	if err := sum.Append(ctx, "tell me about pricing", "we have a Basic Plan"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	turns, err := sum.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(turns) != 1 {
		t.Fatalf("expected a single summary turn, got %d", len(turns))
	}
	if turns[0].Content != llm.reply {
		t.Fatalf("summary = %q, want %q", turns[0].Content, llm.reply)
	}
}

func TestSummaryKeepsPriorOnFailure(t *testing.T) {
	ctx := context.Background()
	llm := &scriptedLLM{reply: "first summary"}
	sum := memory.NewSummary(llm)

	if err := sum.Append(ctx, "q1", "a1"); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	llm.err = errors.New("quota exceeded")
	if err := sum.Append(ctx, "q2", "a2"); err == nil {
		t.Fatalf("expected error from failed summarization")
	}

	turns, err := sum.Load(ctx)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(turns) != 1 || turns[0].Content != "first summary" {
		t.Fatalf("expected prior summary preserved, got %+v", turns)
	}
}

func TestNewRejectsInvalidMode(t *testing.T) {
	if _, err := memory.New(domain.MemoryMode("vector"), nil); err == nil {
		t.Fatalf("expected error for invalid mode")
	}
}

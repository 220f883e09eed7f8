package pipeline

import (
	"context"

	"github.com/PabloGalante/pci-agent/internal/app/tools"
	"github.com/PabloGalante/pci-agent/internal/domain"
	"github.com/PabloGalante/pci-agent/internal/observability"
	"github.com/PabloGalante/pci-agent/internal/segment"
)

// FallbackResponse is returned to the user when the completion service
// fails. The conversation still records it, so history stays consistent.
const FallbackResponse = "I'm sorry, I encountered an error. Please try again."

// RespondStage: looks up the draft suggestion for the detected segment and
// asks the completion service to phrase the final reply. A completion
// failure is recovered here, not propagated.
type RespondStage struct {
	llm       domain.CompletionClient
	auditTool tools.Tool
	tctx      tools.ToolContext
}

func NewRespondStage(llm domain.CompletionClient, auditTool tools.Tool, tctx tools.ToolContext) *RespondStage {
	return &RespondStage{
		llm:       llm,
		auditTool: auditTool,
		tctx:      tctx,
	}
}

func (s *RespondStage) Name() string {
	return "respond"
}

func (s *RespondStage) Run(ctx context.Context, rec Record) (Record, error) {
	log := observability.LoggerFromContext(ctx).With("stage", s.Name())

	rec.Suggestion = segment.Suggest(rec.Segment)

	reply, err := s.llm.Complete(ctx, BuildPrompt(rec))
	if err != nil {
		log.Error("completion service failed", "error", err)
		rec.Err = err
		rec.Response = FallbackResponse
	} else {
		rec.Response = reply
	}

	if s.auditTool != nil {
		errText := ""
		if rec.Err != nil {
			errText = rec.Err.Error()
		}
		input := map[string]any{
			"query":      rec.UserQuery,
			"segment":    string(rec.Segment),
			"suggestion": rec.Suggestion,
			"response":   rec.Response,
			"error":      errText,
		}
		// The session-scoped ToolContext carries user and session ids;
		// the request id is per call and comes from the context.
		tctx := s.tctx
		tctx.RequestID = observability.RequestIDFromContext(ctx)
		// Best effort: a failed audit write must not break the reply.
		if _, err := s.auditTool.Call(ctx, tctx, input); err != nil {
			log.Error("audit tool failed", "error", err)
		}
	}

	return rec, nil
}

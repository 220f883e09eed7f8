package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/PabloGalante/pci-agent/internal/app/tools"
	"github.com/PabloGalante/pci-agent/internal/domain"
	"github.com/PabloGalante/pci-agent/internal/observability"
)

// Stage is one step of the pipeline. Run receives the record produced by
// the previous stage and returns a new one; stages never mutate shared
// state.
type Stage interface {
	Name() string
	Run(ctx context.Context, rec Record) (Record, error)
}

// Orchestrator runs the fixed ingest -> classify -> respond chain over one
// session's conversation memory. One orchestrator serves one session; its
// memory mode and completion provider are fixed at construction.
type Orchestrator struct {
	memory domain.ConversationMemory
	stages []Stage
}

// New constructs the canonical three-stage flow.
func New(
	llm domain.CompletionClient,
	memory domain.ConversationMemory,
	auditTool tools.Tool,
	tctx tools.ToolContext,
) *Orchestrator {
	return &Orchestrator{
		memory: memory,
		stages: []Stage{
			NewIngestStage(memory),
			NewClassifyStage(),
			NewRespondStage(llm, auditTool, tctx),
		},
	}
}

// Run executes the stages sequentially and appends the exchange to memory.
// It always produces a usable Result: a completion-service failure surfaces
// as Result.Err next to the fallback response, never as the returned error.
// The returned error is reserved for memory bookkeeping failures; even then
// the Result carries the response that was generated.
func (o *Orchestrator) Run(ctx context.Context, userText string) (Result, error) {
	log := observability.LoggerFromContext(ctx)
	log.Info("pipeline started", "stages_count", len(o.stages))

	rec := Record{UserQuery: userText}

	var err error
	for _, st := range o.stages {
		start := time.Now()
		log.Info("stage run start", "stage", st.Name())

		rec, err = st.Run(ctx, rec)
		if err != nil {
			log.Error("stage failed",
				"stage", st.Name(),
				"error", err)
			return Result{}, fmt.Errorf("stage %s failed: %w", st.Name(), err)
		}

		log.Info("stage run end", "stage", st.Name(), "elapsed_ms", time.Since(start).Milliseconds())
	}

	res := Result{
		Response:   rec.Response,
		Segment:    rec.Segment,
		Suggestion: rec.Suggestion,
		Err:        rec.Err,
	}

	// The exchange is recorded even when the fallback text was used, so
	// the next turn sees a consistent conversation.
	if err := o.memory.Append(ctx, userText, rec.Response); err != nil {
		log.Error("memory append failed", "error", err)
		return res, fmt.Errorf("appending to conversation memory: %w", err)
	}

	log.Info("pipeline end", "segment", rec.Segment)
	return res, nil
}

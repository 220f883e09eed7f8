package pipeline

import (
	"context"

	"github.com/PabloGalante/pci-agent/internal/observability"
	"github.com/PabloGalante/pci-agent/internal/segment"
)

// ClassifyStage: runs the customer segmentation rules over the query and
// the flattened history. Total, never fails.
type ClassifyStage struct{}

func NewClassifyStage() *ClassifyStage {
	return &ClassifyStage{}
}

func (s *ClassifyStage) Name() string {
	return "classify"
}

func (s *ClassifyStage) Run(ctx context.Context, rec Record) (Record, error) {
	rec.Segment = segment.Classify(rec.UserQuery, rec.HistoryText)

	observability.LoggerFromContext(ctx).Info("customer segment detected",
		"stage", s.Name(),
		"segment", rec.Segment)

	return rec, nil
}

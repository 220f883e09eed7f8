package segment_test

import (
	"strings"
	"testing"

	"github.com/PabloGalante/pci-agent/internal/domain"
	"github.com/PabloGalante/pci-agent/internal/segment"
)

func TestSuggestExactStrings(t *testing.T) {
	want := map[domain.Segment]string{
		domain.SegmentChurnRisk:         "We understand your concern. Would you like to speak with a retention specialist or would a 20% discount on your next month's service help?",
		domain.SegmentPriceSensitive:    "We have several budget-friendly options available. Would you be interested in our 'Basic Plan' or current promotional deals?",
		domain.SegmentHighValueProspect: "Based on your interest, our 'Premium Plus' package offers exclusive features and priority support. Would you like to know more?",
		domain.SegmentNewCustomer:       "Welcome! To help you get started, we recommend exploring our interactive tutorial or checking out our 'Quick Start Guide'.",
		domain.SegmentStandard:          "I can help with that. What specific information or product are you looking for?",
	}

	for seg, text := range want {
		if got := segment.Suggest(seg); got != text {
			t.Fatalf("Suggest(%q) = %q, want %q", seg, got, text)
		}
	}
}

func TestSuggestUnknownSegmentFallback(t *testing.T) {
	got := segment.Suggest(domain.Segment("vip_whale"))
	if !strings.Contains(got, "I'm not sure what to suggest") {
		t.Fatalf("expected fallback suggestion, got %q", got)
	}
}

package segment

import "github.com/PabloGalante/pci-agent/internal/domain"

// The canned strings are part of the observable contract; keep them verbatim.
var suggestions = map[domain.Segment]string{
	domain.SegmentChurnRisk:         "We understand your concern. Would you like to speak with a retention specialist or would a 20% discount on your next month's service help?",
	domain.SegmentPriceSensitive:    "We have several budget-friendly options available. Would you be interested in our 'Basic Plan' or current promotional deals?",
	domain.SegmentHighValueProspect: "Based on your interest, our 'Premium Plus' package offers exclusive features and priority support. Would you like to know more?",
	domain.SegmentNewCustomer:       "Welcome! To help you get started, we recommend exploring our interactive tutorial or checking out our 'Quick Start Guide'.",
	domain.SegmentStandard:          "I can help with that. What specific information or product are you looking for?",
}

const unknownSegmentSuggestion = "I'm not sure what to suggest based on that segment, but I'm here to help with your query."

// Suggest returns the canned suggestion for a segment. The enumeration is
// closed, so the unknown-segment branch is unreachable through Classify; it
// exists so the function stays total over arbitrary Segment values.
func Suggest(seg domain.Segment) string {
	if s, ok := suggestions[seg]; ok {
		return s
	}
	return unknownSegmentSuggestion
}

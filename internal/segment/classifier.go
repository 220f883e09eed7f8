// Package segment implements the mock Predictive Customer Intelligence
// rules: keyword-based customer segmentation and canned suggestions.
package segment

import (
	"strings"

	"github.com/PabloGalante/pci-agent/internal/domain"
)

// Classify determines a customer segment from the current query and the
// flattened conversation history. Matching is case-insensitive substring
// matching, and rule order is load-bearing: the categories overlap in free
// text, so the first matching rule wins. Do not reorder.
func Classify(userQuery, historyText string) domain.Segment {
	query := strings.ToLower(userQuery)
	history := strings.ToLower(historyText)

	switch {
	case strings.Contains(query, "cancel") ||
		strings.Contains(query, "unsubscri") ||
		strings.Contains(history, "leave"):
		return domain.SegmentChurnRisk

	case strings.Contains(query, "price") ||
		strings.Contains(query, "discount") ||
		strings.Contains(query, "deal"):
		return domain.SegmentPriceSensitive

	case strings.Contains(query, "premium") ||
		strings.Contains(query, "upgrade") ||
		strings.Contains(history, "high-end"):
		return domain.SegmentHighValueProspect

	case strings.Contains(history, "new user") ||
		strings.Contains(history, "first time") ||
		strings.Contains(query, "how to start"):
		return domain.SegmentNewCustomer

	default:
		return domain.SegmentStandard
	}
}

package domain

import "time"

type SessionID string
type UserID string
type MessageID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	// RoleSystem only appears on the wire to the completion service,
	// never in a stored conversation.
	RoleSystem Role = "system"
)

// Segment is the closed customer classification produced by the
// segmentation rules.
type Segment string

const (
	SegmentChurnRisk         Segment = "churn_risk"
	SegmentPriceSensitive    Segment = "price_sensitive"
	SegmentHighValueProspect Segment = "high_value_prospect"
	SegmentNewCustomer       Segment = "new_customer"
	SegmentStandard          Segment = "standard"
)

// MemoryMode selects how conversation history is retained (see app/memory).
type MemoryMode string

const (
	MemoryBuffer  MemoryMode = "buffer"  // full verbatim history
	MemorySummary MemoryMode = "summary" // single rolling summary turn
)

type Timestamp = time.Time

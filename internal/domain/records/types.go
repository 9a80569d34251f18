package records

// ApprovalState is the lifecycle state of a submitted event. Rejection is a
// state, not a removal: records are never deleted by the engine.
type ApprovalState string

const (
	StatePending  ApprovalState = "pending"
	StateApproved ApprovalState = "approved"
	StateRejected ApprovalState = "rejected"
)

// Slot names one of the two independent synchronization targets tracked per
// record. Each slot owns exactly one write-once identifier field.
type Slot string

const (
	SlotFacility Slot = "facility"
	SlotPublic   Slot = "public"
)

// Ordinal labels accepted on recurring records. "Every" means all matching
// weekdays in a month; the rest select a single occurrence.
const (
	OrdinalEvery  = "Every"
	OrdinalFirst  = "First"
	OrdinalSecond = "Second"
	OrdinalThird  = "Third"
	OrdinalFourth = "Fourth"
)

// Padding labels accepted from the intake form.
const (
	PaddingNone      = "None"
	Padding30Minutes = "30 minutes"
	PaddingOneHour   = "1 hour"
	PaddingTwoHours  = "2 hours"
)

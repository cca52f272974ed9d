package model

// ContextID identifies one of the three independent execution contexts.
type ContextID string

const (
	// ContextCoordinator is the background coordinator context.
	ContextCoordinator ContextID = "coordinator"

	// ContextObserver is the page-embedded observer context.
	ContextObserver ContextID = "observer"

	// ContextPanel is the user-facing panel context.
	ContextPanel ContextID = "panel"
)

// Action tags the kind of a cross-context message.
type Action string

const (
	// ActionScanComplete informs the coordinator that a scan finished.
	// The coordinator relays it to the observer only for medium and
	// high risk levels.
	ActionScanComplete Action = "scanComplete"

	// ActionAnalyzeComplete instructs the page observer to consider
	// rendering a warning banner. Consumed only by the observer.
	ActionAnalyzeComplete Action = "analyzeComplete"
)

// Message is a transient control message exchanged between contexts.
// Delivery is fire-and-forget: no acknowledgment, no retry, and no
// persistence. A message addressed to a context that does not currently
// exist is dropped.
type Message struct {
	// Action is the message tag.
	Action Action `json:"action"`

	// RiskLevel is the risk level payload carried by both message kinds.
	RiskLevel RiskLevel `json:"riskLevel"`

	// To is the destination context.
	To ContextID `json:"-"`
}

// NewScanComplete builds a ScanComplete message addressed to the
// coordinator.
func NewScanComplete(level RiskLevel) Message {
	return Message{Action: ActionScanComplete, RiskLevel: level, To: ContextCoordinator}
}

// NewAnalyzeComplete builds an AnalyzeComplete message addressed to the
// page observer.
func NewAnalyzeComplete(level RiskLevel) Message {
	return Message{Action: ActionAnalyzeComplete, RiskLevel: level, To: ContextObserver}
}

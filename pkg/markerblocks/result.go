package markerblocks

// ClosingAction tells a block what to do with itself or its children.
type ClosingAction uint8

// Closing actions.
const (
	// ActionNothing keeps the block open.
	ActionNothing ClosingAction = iota
	// ActionDone closes the block and records its node.
	ActionDone
	// ActionDrop closes the block without recording a node.
	ActionDrop
	// ActionDefault applies the block's own default action.
	ActionDefault
)

func (a ClosingAction) String() string {
	switch a {
	case ActionNothing:
		return "nothing"
	case ActionDone:
		return "done"
	case ActionDrop:
		return "drop"
	case ActionDefault:
		return "default"
	default:
		return "unknown"
	}
}

// EventAction tells the automaton whether other blocks see the token.
type EventAction uint8

// Event actions.
const (
	EventPropagate EventAction = iota
	EventCancel
)

func (a EventAction) String() string {
	if a == EventCancel {
		return "cancel"
	}
	return "propagate"
}

// ProcessingResult is a block's answer to one token.
type ProcessingResult struct {
	ChildrenAction ClosingAction
	SelfAction     ClosingAction
	EventAction    EventAction

	// Postponed results are applied when the next token arrives.
	Postponed bool
}

// Shared results.
//
//nolint:gochecknoglobals // Immutable values compared by equality.
var (
	// Pass leaves the block untouched and lets others see the token.
	Pass = ProcessingResult{ChildrenAction: ActionNothing, SelfAction: ActionNothing, EventAction: EventPropagate}

	// Cancel leaves the block untouched and hides the token from others.
	Cancel = ProcessingResult{ChildrenAction: ActionNothing, SelfAction: ActionNothing, EventAction: EventCancel}

	// Default closes the block and its children with their defaults.
	Default = ProcessingResult{ChildrenAction: ActionDefault, SelfAction: ActionDone, EventAction: EventPropagate}
)

// Postpone returns a copy of r marked for deferred application.
func (r ProcessingResult) Postpone() ProcessingResult {
	r.Postponed = true
	return r
}

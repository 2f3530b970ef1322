package flow

// Outcome classifies what an event did to the flow.
type Outcome string

const (
	// OutcomeAdvanced means the current screen changed.
	OutcomeAdvanced Outcome = "advanced"
	// OutcomeHandled means the event was applied to the current screen's
	// sub-machine or form without changing screens.
	OutcomeHandled Outcome = "handled"
	// OutcomeRejected means a gate did not pass; the screen stays put.
	OutcomeRejected Outcome = "rejected"
	// OutcomeIgnored means the event is not reachable from the current
	// screen or sub-machine state.
	OutcomeIgnored Outcome = "ignored"
	// OutcomeExternal means the host should leave for an external
	// destination; the flow state is unchanged.
	OutcomeExternal Outcome = "external"
	// OutcomeCompleted means the session reached its terminal state.
	OutcomeCompleted Outcome = "completed"
)

func (o Outcome) String() string {
	return string(o)
}

package domain

// Stage is one point in the fixed vaccination appointment lifecycle. Values
// match the backend wire encoding of appointmentStatus, which is an open-ended
// integer set: 1..5 and 9 are the known forward chain, 10 is the rejection
// terminal, and anything else renders as a finalized read-only view.
type Stage int

const (
	StageProcessing Stage = 1
	StageConfirmed  Stage = 2
	StageCheckedIn  Stage = 3
	StageProcessed  Stage = 4
	StagePaid       Stage = 5
	StageCompleted  Stage = 9
	StageRejected   Stage = 10
)

// forwardChain lists the stages a staff member walks through, in order.
// Completed closes the chain; Rejected sits outside it.
var forwardChain = []Stage{
	StageProcessing,
	StageConfirmed,
	StageCheckedIn,
	StageProcessed,
	StagePaid,
	StageCompleted,
}

// ForwardStages returns a copy of the ordered progression.
func ForwardStages() []Stage {
	return append([]Stage(nil), forwardChain...)
}

// Known reports whether the value is one of the recognized stages.
func (s Stage) Known() bool {
	switch s {
	case StageProcessing, StageConfirmed, StageCheckedIn, StageProcessed, StagePaid, StageCompleted, StageRejected:
		return true
	default:
		return false
	}
}

// Next returns the successor on the forward chain. Terminal and unrecognized
// stages have no successor.
func (s Stage) Next() (Stage, bool) {
	for i, stage := range forwardChain {
		if stage == s && i+1 < len(forwardChain) {
			return forwardChain[i+1], true
		}
	}
	return 0, false
}

// Terminal reports whether the lifecycle ends at this stage.
func (s Stage) Terminal() bool {
	return s == StageCompleted || s == StageRejected
}

// Rejectable reports whether an appointment at this stage may still be
// rejected. Once a vet has checked the animal in, rejection is no longer an
// option.
func (s Stage) Rejectable() bool {
	return s == StageProcessing || s == StageConfirmed
}

// OnForwardChain reports whether the stage participates in the ordered
// progression (everything except Rejected and unrecognized values).
func (s Stage) OnForwardChain() bool {
	for _, stage := range forwardChain {
		if stage == s {
			return true
		}
	}
	return false
}

// Before reports lifecycle order between two forward-chain stages. The numeric
// encoding is ordered on the chain, so integer comparison suffices.
func (s Stage) Before(other Stage) bool {
	return s < other
}

func (s Stage) String() string {
	switch s {
	case StageProcessing:
		return "processing"
	case StageConfirmed:
		return "confirmed"
	case StageCheckedIn:
		return "checked-in"
	case StageProcessed:
		return "processed"
	case StagePaid:
		return "paid"
	case StageCompleted:
		return "completed"
	case StageRejected:
		return "rejected"
	default:
		return "finalized"
	}
}

// ViewFor maps a raw appointmentStatus to the stage whose view should render
// it. Unrecognized values (including possible future 6..8 stages) fall back to
// the finalized read-only view rather than breaking the screen.
func ViewFor(status int) string {
	return Stage(status).String()
}

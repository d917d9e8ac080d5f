package agreement

// Status represents the lifecycle stage of an agreement.
type Status string

const (
	StatusInProgress Status = "IN_PROGRESS"
	StatusReview     Status = "REVIEW"
	StatusSigned     Status = "SIGNED"
	StatusCancelled  Status = "CANCELLED"
)

// transitions lists the reachable next statuses per current status.
// SIGNED and CANCELLED are terminal.
var transitions = map[Status][]Status{
	StatusInProgress: {StatusReview, StatusSigned, StatusCancelled},
	StatusReview:     {StatusSigned, StatusCancelled},
}

// CanTransition reports whether moving from one status to another is a
// legal lifecycle step.
func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Mutable reports whether the agreement still accepts uploads, extraction
// runs and field edits. Only IN_PROGRESS and REVIEW records are open.
func (s Status) Mutable() bool {
	return s == StatusInProgress || s == StatusReview
}

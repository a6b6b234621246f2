// Package bid implements bid placement, the job/bid consistency rules and
// the bid status state machine.
//
// Valid status graph:
//
//	Pending ──► In Progress
//	   │
//	   ├──────► Completed
//	   │
//	   └──────► Rejected
//
// In Progress, Completed and Rejected have no outgoing transitions.
package bid

import (
	"slices"

	"github.com/joshu-sajeev/bidboard/internal/config"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[config.BidStatus][]config.BidStatus{
	config.BidStatusPending: {
		config.BidStatusInProgress,
		config.BidStatusCompleted,
		config.BidStatusRejected,
	},
}

// IsTransitionAllowed reports whether a bid may move from → to. Staying in
// the same status is not a transition and is reported as false.
func IsTransitionAllowed(from, to config.BidStatus) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	return slices.Contains(allowed, to)
}

// IsTerminal reports whether s has no outgoing transitions.
func IsTerminal(s config.BidStatus) bool {
	return len(validTransitions[s]) == 0
}

// Package reputation holds the pure scoring rules applied to users by
// transaction outcomes and reviews. The functions here have no side effects;
// persisting the adjusted score is the caller's concern.
package reputation

// Score bounds and the starting score for a new account.
const (
	Min     = 0
	Max     = 200
	Initial = 100
)

// Deltas applied by the order lifecycle.
const (
	// CompletionReward is granted to both parties when an order completes.
	CompletionReward = 1

	// CancellationPenalty is charged to the party who cancels an order.
	CancellationPenalty = 5

	// CancellationCompensation is granted to the counterparty of a
	// cancelled order.
	CancellationCompensation = 2
)

// ReviewDelta maps a review rating (1..5) to the reputation delta applied to
// the reviewed seller. Ratings outside the valid range map to zero; the
// review service rejects them before this is consulted.
func ReviewDelta(rating int) int {
	switch rating {
	case 5:
		return 5
	case 4:
		return 2
	case 3:
		return 0
	case 2:
		return -2
	case 1:
		return -3
	default:
		return 0
	}
}

// Clamp bounds a score to [Min, Max].
func Clamp(score int) int {
	if score < Min {
		return Min
	}
	if score > Max {
		return Max
	}

	return score
}

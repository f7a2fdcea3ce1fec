package deck

// ViolationReason classifies a pool mismatch.
type ViolationReason string

const (
	// ReasonMissing means the pool has no copies of a used card.
	ReasonMissing ViolationReason = "missing"
	// ReasonExcess means the deck uses more copies than the pool holds.
	ReasonExcess ViolationReason = "excess"
)

// Violation reports one card whose deck usage exceeds what the owner's pool
// can cover. Violations are advisory facts: the caller decides whether to
// block a save or merely highlight the row.
type Violation struct {
	CardID string          `json:"card_id"`
	Used   int             `json:"used"`
	Pool   int             `json:"pool"`
	Reason ViolationReason `json:"reason"`
}

// QuantityFunc reports the pool quantity available for a card id.
type QuantityFunc func(cardID string) int

// CombineBoardQuantities merges mainboard and sideboard usage into one
// id -> total map. Non-positive quantities are excluded.
func CombineBoardQuantities(main, side Board) map[string]int {
	combined := make(map[string]int, len(main)+len(side))
	for _, b := range []Board{main, side} {
		for id, q := range b {
			if id == "" || q <= 0 {
				continue
			}
			combined[id] += q
		}
	}
	return combined
}

// Reconcile compares combined mainboard+sideboard usage against pool
// quantities and reports every card that is missing from the pool or used
// beyond its pool count. It never mutates its inputs; violation order is
// not meaningful.
func Reconcile(main, side Board, poolQty QuantityFunc) []Violation {
	violations := []Violation{}
	if poolQty == nil {
		return violations
	}

	for id, used := range CombineBoardQuantities(main, side) {
		available := poolQty(id)
		switch {
		case available <= 0:
			violations = append(violations, Violation{
				CardID: id, Used: used, Pool: 0, Reason: ReasonMissing,
			})
		case used > available:
			violations = append(violations, Violation{
				CardID: id, Used: used, Pool: available, Reason: ReasonExcess,
			})
		}
	}
	return violations
}

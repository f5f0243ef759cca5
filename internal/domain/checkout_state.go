package domain

// CheckoutState is the position of the checkout pipeline in its lifecycle.
type CheckoutState string

const (
	StateDraft      CheckoutState = "DRAFT"
	StateValidated  CheckoutState = "VALIDATED"
	StateProcessing CheckoutState = "PROCESSING"
	StateCommitted  CheckoutState = "COMMITTED"
	StateAborted    CheckoutState = "ABORTED"
)

// checkoutTransitions is the full transition table. The shipped payment
// processor always succeeds; the Processing -> Validated edge exists only
// for processors that can refuse a charge, and carries no side effects.
// Committed and Aborted both hand control back to a fresh draft.
var checkoutTransitions = map[CheckoutState][]CheckoutState{
	StateDraft:      {StateValidated, StateAborted},
	StateValidated:  {StateProcessing, StateAborted},
	StateProcessing: {StateCommitted, StateValidated},
	StateCommitted:  {StateDraft},
	StateAborted:    {StateDraft},
}

// CanTransition reports whether the state machine allows moving from one
// state to another.
func CanTransition(from, to CheckoutState) bool {
	for _, next := range checkoutTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// String representation (for logging)
func (s CheckoutState) String() string { return string(s) }

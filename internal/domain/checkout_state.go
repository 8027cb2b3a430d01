package domain

type CheckoutState string

const (
	CheckoutStateIdle              CheckoutState = "IDLE"
	CheckoutStateValidating        CheckoutState = "VALIDATING"
	CheckoutStateAwaitingScript    CheckoutState = "AWAITING_PAYMENT_SCRIPT"
	CheckoutStatePaymentInProgress CheckoutState = "PAYMENT_IN_PROGRESS"
	CheckoutStateSucceeded         CheckoutState = "SUCCEEDED"
	CheckoutStateCancelled         CheckoutState = "CANCELLED"
	CheckoutStateFailed            CheckoutState = "FAILED"
)

func (s CheckoutState) IsTerminal() bool {
	return s == CheckoutStateSucceeded || s == CheckoutStateCancelled || s == CheckoutStateFailed
}

// String representation (for logging)
func (s CheckoutState) String() string {
	return string(s)
}

var checkoutTransitions = map[CheckoutState][]CheckoutState{
	CheckoutStateIdle:              {CheckoutStateValidating},
	CheckoutStateValidating:        {CheckoutStateIdle, CheckoutStateAwaitingScript, CheckoutStateFailed},
	CheckoutStateAwaitingScript:    {CheckoutStateIdle, CheckoutStatePaymentInProgress, CheckoutStateFailed},
	CheckoutStatePaymentInProgress: {CheckoutStateSucceeded, CheckoutStateCancelled, CheckoutStateFailed},
}

// CanTransitionTo reports whether the checkout state machine allows moving
// from one state to another.
func CanTransitionTo(from, to CheckoutState) bool {
	for _, allowed := range checkoutTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

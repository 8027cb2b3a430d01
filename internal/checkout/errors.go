package checkout

import (
	"errors"
	"fmt"
	"strings"

	"github.com/naturescrunch/storefront/pkg/money"
)

// Policy rejections. All of these keep the checkout in Idle and guarantee
// no external call was made.
var (
	ErrEmptyCart            = errors.New("your cart is empty")
	ErrPaymentNotReady      = errors.New("payment system is still loading, please wait a moment and try again")
	ErrPaymentNotConfigured = errors.New("payment public key is not configured, set PAYSTACK_PUBLIC_KEY in the environment")
	ErrUnknownSession       = errors.New("unknown payment session")
	ErrIllegalTransition    = errors.New("illegal transition of checkout state")
)

// BelowMinimumError is returned when the cart total is under the
// configured minimum spend.
type BelowMinimumError struct {
	Minimum int64
	Total   int64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("baseline spend of %s required for checkout, add %s more",
		money.Format(e.Minimum), money.Format(e.Minimum-e.Total))
}

// ValidationError reports required fields that failed presence validation.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

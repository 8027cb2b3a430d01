// Package checkout coordinates the order workflow: cart validation,
// payment widget handoff, and post-payment bookkeeping.
//
// Payment capture and invoice bookkeeping are decoupled on purpose: once
// the widget reports a successful charge, nothing downstream (missing
// credentials, a rejected invoice, a dead network) may stop the customer
// from reaching confirmation. Invoice failures are logged and absorbed.
package checkout

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"sync"
	"time"

	"github.com/naturescrunch/storefront/internal/cart"
	"github.com/naturescrunch/storefront/internal/domain"
	"github.com/naturescrunch/storefront/internal/invoice"
	"github.com/naturescrunch/storefront/internal/payment"
)

// sessionTTL is how long an unfinished payment session is kept before the
// janitor drops it (customer abandoned the widget without the onClose
// callback firing).
const sessionTTL = time.Hour

// InvoiceSubmitter is the invoice client seam.
type InvoiceSubmitter interface {
	Submit(ctx context.Context, order domain.Order) invoice.Result
}

// PaymentGateway is the widget integration seam, satisfied by
// *payment.Gateway.
type PaymentGateway interface {
	Configured() bool
	Ready() bool
	NewReference() string
	Setup(email string, amount int64, ref string, fields []payment.CustomField) payment.Params
}

// EventPublisher receives completed orders, best effort.
type EventPublisher interface {
	OrderCompleted(ctx context.Context, order domain.Order) error
}

// Policy is the deployment-specific checkout policy.
type Policy struct {
	Mode domain.FulfilmentMode

	// MinimumSpend in minor units; zero disables the check. The
	// reservation deployment enforces one, the delivery deployment does
	// not.
	MinimumSpend int64
}

// Confirmation is the terminal view the customer always reaches after a
// successful charge.
type Confirmation struct {
	PaymentReference string `json:"payment_reference"`
	InvoiceReference string `json:"invoice_reference,omitempty"`
	TotalMinorUnits  int64  `json:"total_minor_units"`
	Message          string `json:"message"`
}

type session struct {
	state     domain.CheckoutState
	cartID    string
	customer  domain.CustomerDetails
	lines     []domain.CartLine
	total     int64
	createdAt time.Time
}

// Orchestrator runs the checkout state machine. One instance serves all
// sessions; per-attempt state is keyed by the payment reference.
type Orchestrator struct {
	carts    *cart.Service
	gateway  PaymentGateway
	invoices InvoiceSubmitter
	events   EventPublisher // may be nil
	policy   Policy
	metrics  *Metrics

	mu       sync.Mutex
	sessions map[string]*session // payment ref -> pending attempt
}

func NewOrchestrator(carts *cart.Service, gateway PaymentGateway, invoices InvoiceSubmitter, events EventPublisher, policy Policy, metrics *Metrics) *Orchestrator {
	return &Orchestrator{
		carts:    carts,
		gateway:  gateway,
		invoices: invoices,
		events:   events,
		policy:   policy,
		metrics:  metrics,
		sessions: make(map[string]*session),
	}
}

// Begin validates the cart and form, then hands off to the payment widget.
// Every rejection here happens before any external call and leaves the
// cart untouched.
func (o *Orchestrator) Begin(ctx context.Context, cartID string, details domain.CustomerDetails) (payment.Params, error) {
	state := domain.CheckoutStateIdle
	if !domain.CanTransitionTo(state, domain.CheckoutStateValidating) {
		return payment.Params{}, ErrIllegalTransition
	}
	state = domain.CheckoutStateValidating

	c, err := o.carts.Get(ctx, cartID)
	if err != nil {
		return payment.Params{}, fmt.Errorf("load cart: %w", err)
	}
	if c.IsEmpty() {
		return payment.Params{}, ErrEmptyCart
	}

	total := c.Total()
	if o.policy.MinimumSpend > 0 && total < o.policy.MinimumSpend {
		return payment.Params{}, &BelowMinimumError{Minimum: o.policy.MinimumSpend, Total: total}
	}

	if missing := o.missingFields(details); len(missing) > 0 {
		return payment.Params{}, &ValidationError{Fields: missing}
	}

	if !o.gateway.Configured() {
		return payment.Params{}, ErrPaymentNotConfigured
	}

	if !domain.CanTransitionTo(state, domain.CheckoutStateAwaitingScript) {
		return payment.Params{}, ErrIllegalTransition
	}
	state = domain.CheckoutStateAwaitingScript
	if !o.gateway.Ready() {
		return payment.Params{}, ErrPaymentNotReady
	}

	if !domain.CanTransitionTo(state, domain.CheckoutStatePaymentInProgress) {
		return payment.Params{}, ErrIllegalTransition
	}

	ref := o.gateway.NewReference()
	params := o.gateway.Setup(details.Email, total, ref, o.metadataFields(details))

	o.mu.Lock()
	o.sessions[ref] = &session{
		state:     domain.CheckoutStatePaymentInProgress,
		cartID:    cartID,
		customer:  details,
		lines:     c.Lines,
		total:     total,
		createdAt: time.Now(),
	}
	o.expireSessionsLocked()
	o.mu.Unlock()

	return params, nil
}

// Complete is the widget's success callback. The reference is trusted as
// received; the charge is treated as the authoritative outcome, so the
// invoice result never changes what the customer sees.
func (o *Orchestrator) Complete(ctx context.Context, ref, paymentReference string) (Confirmation, error) {
	sess, err := o.takeSession(ref, domain.CheckoutStateSucceeded)
	if err != nil {
		return Confirmation{}, err
	}

	if paymentReference == "" {
		paymentReference = ref
	}

	order := domain.Order{
		Lines:            sess.lines,
		Customer:         sess.customer,
		FulfilmentDetail: o.fulfilmentDetail(sess.customer),
		PaymentReference: paymentReference,
		PaymentMethod:    "card",
		TotalMinorUnits:  sess.total,
	}

	result := o.invoices.Submit(ctx, order)
	switch {
	case result.Success:
		log.Printf("invoice created: %s", result.InvoiceReference)
		o.metrics.Invoices.WithLabelValues("created").Inc()
	case result.NotConfigured():
		// Payment already went through; bookkeeping is skipped, not the order.
		log.Printf("invoice skipped, credentials not configured: %v", result.Err)
		o.metrics.Invoices.WithLabelValues("not_configured").Inc()
	default:
		log.Printf("invoice creation failed (payment was successful): %v", result.Err)
		o.metrics.Invoices.WithLabelValues("failed").Inc()
	}

	if errClear := o.carts.Clear(ctx, sess.cartID); errClear != nil {
		log.Printf("cart clear error: %v", errClear)
	}

	if o.events != nil {
		if errPub := o.events.OrderCompleted(ctx, order); errPub != nil {
			log.Printf("order event publish error: %v", errPub)
		}
	}

	o.metrics.Outcomes.WithLabelValues("succeeded").Inc()

	return Confirmation{
		PaymentReference: paymentReference,
		InvoiceReference: result.InvoiceReference,
		TotalMinorUnits:  sess.total,
		Message:          "Thank you for your order! We'll prepare your meal and contact you shortly.",
	}, nil
}

// Cancel is the widget's onClose callback: the customer backed out. The
// cart is retained and nothing was submitted.
func (o *Orchestrator) Cancel(ref string) error {
	if _, err := o.takeSession(ref, domain.CheckoutStateCancelled); err != nil {
		return err
	}
	o.metrics.Outcomes.WithLabelValues("cancelled").Inc()
	log.Printf("payment cancelled: %s", ref)
	return nil
}

// takeSession removes the pending session for ref after checking the state
// transition. The widget calls back exactly once, so the session is gone
// after the first completion or cancellation. Sessions only ever leave the
// map into a terminal state.
func (o *Orchestrator) takeSession(ref string, to domain.CheckoutState) (*session, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	sess, ok := o.sessions[ref]
	if !ok {
		return nil, ErrUnknownSession
	}
	if !to.IsTerminal() || !domain.CanTransitionTo(sess.state, to) {
		return nil, ErrIllegalTransition
	}
	delete(o.sessions, ref)
	sess.state = to
	return sess, nil
}

func (o *Orchestrator) expireSessionsLocked() {
	cutoff := time.Now().Add(-sessionTTL)
	for ref, sess := range o.sessions {
		if sess.createdAt.Before(cutoff) {
			delete(o.sessions, ref)
		}
	}
}

func (o *Orchestrator) missingFields(d domain.CustomerDetails) []string {
	var missing []string
	if d.Email == "" {
		missing = append(missing, "email")
	}
	if d.FirstName == "" {
		missing = append(missing, "first_name")
	}
	if d.LastName == "" {
		missing = append(missing, "last_name")
	}
	if d.Phone == "" {
		missing = append(missing, "phone")
	}

	switch o.policy.Mode {
	case domain.FulfilmentDelivery:
		if d.DeliveryAddress == "" {
			missing = append(missing, "delivery_address")
		}
	default:
		if d.ReservationDate == "" {
			missing = append(missing, "reservation_date")
		}
		if d.ReservationTime == "" {
			missing = append(missing, "reservation_time")
		}
		if d.PartySize <= 0 {
			missing = append(missing, "party_size")
		}
	}
	return missing
}

func (o *Orchestrator) fulfilmentDetail(d domain.CustomerDetails) string {
	if o.policy.Mode == domain.FulfilmentDelivery {
		return d.DeliveryAddress
	}
	return fmt.Sprintf("Reservation: %d guests on %s at %s", d.PartySize, d.ReservationDate, d.ReservationTime)
}

func (o *Orchestrator) metadataFields(d domain.CustomerDetails) []payment.CustomField {
	fields := []payment.CustomField{
		{DisplayName: "First Name", VariableName: "first_name", Value: d.FirstName},
		{DisplayName: "Last Name", VariableName: "last_name", Value: d.LastName},
		{DisplayName: "Phone", VariableName: "phone", Value: d.Phone},
	}
	if o.policy.Mode == domain.FulfilmentDelivery {
		return append(fields, payment.CustomField{
			DisplayName: "Delivery Address", VariableName: "delivery_address", Value: d.DeliveryAddress,
		})
	}
	return append(fields,
		payment.CustomField{DisplayName: "Party Size", VariableName: "party_size", Value: strconv.Itoa(d.PartySize)},
		payment.CustomField{DisplayName: "Reservation Date", VariableName: "reservation_date", Value: d.ReservationDate},
		payment.CustomField{DisplayName: "Reservation Time", VariableName: "reservation_time", Value: d.ReservationTime},
	)
}

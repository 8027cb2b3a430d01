// Package payment models the hosted card-payment widget the storefront
// hands off to. The widget itself is an opaque black box run on the
// customer's device; this package tracks whether its script is reachable,
// generates session references, and builds the setup parameters the widget
// contract requires.
package payment

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	// PollInterval is how often script availability is re-checked while
	// loading.
	PollInterval = 100 * time.Millisecond

	// LoadTimeout bounds the whole load; after this the gateway gives up
	// silently (checkout then rejects with a "still loading" message).
	LoadTimeout = 5 * time.Second

	// DefaultScriptURL is the provider's inline widget script.
	DefaultScriptURL = "https://js.paystack.co/v1/inline.js"
)

// CustomField is one metadata entry shown to the merchant alongside the
// payment.
type CustomField struct {
	DisplayName  string `json:"display_name"`
	VariableName string `json:"variable_name"`
	Value        string `json:"value"`
}

// Params is the widget setup contract: everything the client needs to call
// setup(...).openIframe().
type Params struct {
	Key      string `json:"key"`
	Email    string `json:"email"`
	Amount   int64  `json:"amount"` // minor units
	Currency string `json:"currency"`
	Ref      string `json:"ref"`
	Metadata struct {
		CustomFields []CustomField `json:"custom_fields"`
	} `json:"metadata"`
}

// Gateway wraps the hosted widget integration.
type Gateway struct {
	publicKey string
	currency  string
	scriptURL string

	http  *http.Client
	ready atomic.Bool
	now   func() time.Time

	pollInterval time.Duration
	loadTimeout  time.Duration
}

func NewGateway(publicKey, currency, scriptURL string) *Gateway {
	if scriptURL == "" {
		scriptURL = DefaultScriptURL
	}
	return &Gateway{
		publicKey: publicKey,
		currency:  currency,
		scriptURL: scriptURL,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   5 * time.Second,
		},
		now:          time.Now,
		pollInterval: PollInterval,
		loadTimeout:  LoadTimeout,
	}
}

// Configured reports whether a public key is present. Without it checkout
// is blocked entirely with a configuration error.
func (g *Gateway) Configured() bool {
	return g.publicKey != ""
}

// Ready reports whether the widget script was reachable. Checkout consults
// this at submit time and rejects while still loading.
func (g *Gateway) Ready() bool {
	return g.ready.Load()
}

// Start launches the script load in the background.
func (g *Gateway) Start(ctx context.Context) {
	go g.Load(ctx)
}

// Load checks the widget script until it is reachable, polling every
// pollInterval with the overall loadTimeout bound. Failure to load is
// logged and otherwise silent.
func (g *Gateway) Load(ctx context.Context) {
	deadline := g.now().Add(g.loadTimeout)

	for {
		if g.probe(ctx) {
			g.ready.Store(true)
			return
		}
		if g.now().After(deadline) {
			log.Printf("payment script failed to load: %s", g.scriptURL)
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(g.pollInterval):
		}
	}
}

func (g *Gateway) probe(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.scriptURL, nil)
	if err != nil {
		return false
	}
	resp, err := g.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode >= 200 && resp.StatusCode <= 299
}

// NewReference generates a fresh session reference. The widget echoes it
// back on completion; it is never verified server-side.
func (g *Gateway) NewReference() string {
	return fmt.Sprintf("ref_%d", g.now().UnixMilli())
}

// Setup builds the widget setup parameters for one payment session.
func (g *Gateway) Setup(email string, amount int64, ref string, fields []CustomField) Params {
	p := Params{
		Key:      g.publicKey,
		Email:    email,
		Amount:   amount,
		Currency: g.currency,
		Ref:      ref,
	}
	p.Metadata.CustomFields = fields
	return p
}

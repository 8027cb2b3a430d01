// Package invoice submits completed orders to the Shopkeeper merchant API.
// Submission is best-effort bookkeeping: every failure mode is reported in
// the Result, never raised, so the checkout flow can always proceed past it.
package invoice

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/naturescrunch/storefront/internal/domain"
	"github.com/sony/gobreaker/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const invoicesPath = "/v1/shopkeeper/invoices"

// Env var names for the deployment credentials. Reported verbatim when
// missing so operators know exactly what to set.
const (
	EnvAuthToken  = "SHOPKEEPER_AUTH_TOKEN"
	EnvBranchID   = "SHOPKEEPER_BRANCH_ID"
	EnvBusinessID = "SHOPKEEPER_BUSINESS_ID"
	EnvMemberID   = "SHOPKEEPER_MEMBER_ID"
)

// Credentials are the four deployment credentials the Shopkeeper API needs.
type Credentials struct {
	AuthToken  string
	BranchID   string
	BusinessID string
	MemberID   string
}

// Missing returns the env var names of absent credentials, in declaration
// order.
func (c Credentials) Missing() []string {
	var missing []string
	if c.AuthToken == "" {
		missing = append(missing, EnvAuthToken)
	}
	if c.BranchID == "" {
		missing = append(missing, EnvBranchID)
	}
	if c.BusinessID == "" {
		missing = append(missing, EnvBusinessID)
	}
	if c.MemberID == "" {
		missing = append(missing, EnvMemberID)
	}
	return missing
}

// ErrNotConfigured marks submissions skipped because deployment
// credentials are absent.
var ErrNotConfigured = errors.New("Shopkeeper API credentials are not configured")

// Result reports the outcome of one submission. Success false never stops
// the caller; the error is diagnostic only.
type Result struct {
	Success          bool
	InvoiceID        string
	InvoiceReference string
	Err              error
}

// NotConfigured reports whether the failure was missing deployment
// credentials, which is logged differently from real submission failures.
func (r Result) NotConfigured() bool {
	return errors.Is(r.Err, ErrNotConfigured)
}

// Client posts invoices to the Shopkeeper API. A circuit breaker guards
// the remote call; a tripped breaker reports like any other failure.
type Client struct {
	baseURL string
	creds   Credentials
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*http.Response]
	now     func() time.Time
}

// NewClient builds a client for the given API base URL, e.g.
// "https://api.bigmerchant.co".
func NewClient(baseURL string, creds Credentials) *Client {
	breaker := gobreaker.NewCircuitBreaker[*http.Response](gobreaker.Settings{
		Name:    "shopkeeper-invoices",
		Timeout: 30 * time.Second,
	})
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		creds:   creds,
		http: &http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			Timeout:   15 * time.Second,
		},
		breaker: breaker,
		now:     time.Now,
	}
}

type submitResponse struct {
	ID               string `json:"id"`
	AltID            string `json:"_id"`
	InvoiceReference string `json:"invoiceReference"`
	Message          string `json:"message"`
}

// Submit issues a single synchronous POST for the order. No retry and no
// idempotency key beyond the client-generated reference; a duplicate
// invoice on manual re-submission is a known gap.
func (c *Client) Submit(ctx context.Context, order domain.Order) Result {
	if missing := c.creds.Missing(); len(missing) > 0 {
		return Result{Err: fmt.Errorf("%w. Missing: %s", ErrNotConfigured, strings.Join(missing, ", "))}
	}

	pl := buildPayload(order, c.creds, c.now())

	body, err := json.Marshal(pl)
	if err != nil {
		return Result{Err: fmt.Errorf("marshal invoice payload: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+invoicesPath, bytes.NewReader(body))
	if err != nil {
		return Result{Err: fmt.Errorf("build invoice request: %w", err)}
	}
	req.Header.Set("Accept", "application/json, text/plain, */*")
	req.Header.Set("Authorization", "Bearer "+c.creds.AuthToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-branch-id", c.creds.BranchID)
	req.Header.Set("x-member-id", c.creds.MemberID)

	resp, err := c.breaker.Execute(func() (*http.Response, error) {
		return c.http.Do(req)
	})
	if err != nil {
		return Result{Err: fmt.Errorf("invoice request failed: %w", err)}
	}
	defer resp.Body.Close()

	var decoded submitResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&decoded)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := decoded.Message
		if msg == "" {
			msg = fmt.Sprintf("Failed to create invoice: %s", http.StatusText(resp.StatusCode))
		}
		return Result{Err: fmt.Errorf("%s", msg)}
	}
	if decodeErr != nil {
		// 2xx with an unreadable body still counts as created
		return Result{Success: true, InvoiceReference: pl.InvoiceReference}
	}

	id := decoded.ID
	if id == "" {
		id = decoded.AltID
	}
	ref := decoded.InvoiceReference
	if ref == "" {
		ref = pl.InvoiceReference
	}
	return Result{Success: true, InvoiceID: id, InvoiceReference: ref}
}

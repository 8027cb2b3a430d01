package checkout

import (
	"context"

	"github.com/naturescrunch/storefront/internal/domain"
	"github.com/naturescrunch/storefront/internal/invoice"
	"github.com/naturescrunch/storefront/internal/payment"
)

// MockGateway implements PaymentGateway for testing
type MockGateway struct {
	configured bool
	ready      bool
	ref        string
}

func (m *MockGateway) Configured() bool     { return m.configured }
func (m *MockGateway) Ready() bool          { return m.ready }
func (m *MockGateway) NewReference() string { return m.ref }

func (m *MockGateway) Setup(email string, amount int64, ref string, fields []payment.CustomField) payment.Params {
	p := payment.Params{
		Key:      "pk_test_abc",
		Email:    email,
		Amount:   amount,
		Currency: "NGN",
		Ref:      ref,
	}
	p.Metadata.CustomFields = fields
	return p
}

// MockInvoices implements InvoiceSubmitter for testing
type MockInvoices struct {
	Result    invoice.Result
	Submitted []domain.Order // captures every order passed to Submit
}

func (m *MockInvoices) Submit(_ context.Context, order domain.Order) invoice.Result {
	m.Submitted = append(m.Submitted, order)
	return m.Result
}

// MockEvents implements EventPublisher for testing
type MockEvents struct {
	Published []domain.Order
	Err       error
}

func (m *MockEvents) OrderCompleted(_ context.Context, order domain.Order) error {
	m.Published = append(m.Published, order)
	return m.Err
}

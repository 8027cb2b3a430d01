package domain

// FulfilmentMode selects which deployment variant of the storefront is
// running: dine-in reservations or delivery.
type FulfilmentMode string

const (
	FulfilmentReservation FulfilmentMode = "reservation"
	FulfilmentDelivery    FulfilmentMode = "delivery"
)

// CustomerDetails holds the contact fields collected on the checkout form.
type CustomerDetails struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`

	// Reservation variant
	ReservationDate string `json:"reservation_date,omitempty"` // YYYY-MM-DD
	ReservationTime string `json:"reservation_time,omitempty"` // HH:MM
	PartySize       int    `json:"party_size,omitempty"`

	// Delivery variant
	DeliveryAddress string `json:"delivery_address,omitempty"`
}

// FullName joins first and last name, falling back to "Customer" when both
// are blank.
func (c CustomerDetails) FullName() string {
	name := c.FirstName
	if c.LastName != "" {
		if name != "" {
			name += " "
		}
		name += c.LastName
	}
	if name == "" {
		return "Customer"
	}
	return name
}

// Order is built once per checkout attempt, after the payment widget
// reports success. It lives only for the duration of the invoice
// submission and event publish; nothing persists it locally.
type Order struct {
	Lines            []CartLine
	Customer         CustomerDetails
	FulfilmentDetail string
	PaymentReference string
	PaymentMethod    string
	TotalMinorUnits  int64
}

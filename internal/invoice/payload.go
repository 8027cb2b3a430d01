package invoice

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/naturescrunch/storefront/internal/domain"
)

// minimalPrice is 1 kobo. The Shopkeeper API rejects zero-priced items, so
// the synthetic customer and booking lines carry this instead. It is an
// encoding workaround, not a charge.
const minimalPrice = 1

// item is the provider's line-item record.
type item struct {
	ProductName       string `json:"_productName"`
	Quantity          int    `json:"quantity"`
	ProductUnitPrice  int64  `json:"_productUnitPrice"`
	ProductCostPrice  int64  `json:"_productCostPrice"`
	ProductUnitCfx    int    `json:"_productUnitCfx"`
	ProductUnitTotal  int64  `json:"_productUnitTotal"`
	ProductInstanceID string `json:"_productInstanceId"`
	ProductUnitName   string `json:"_productUnitName"`
	ProductID         string `json:"_productId"`
	ProductUnitID     string `json:"_productUnitId"`
	ProductUnitQty    int    `json:"_productUnitQty"`
	ProductUnitSymbol string `json:"_productUnitSymbol"`
	UnitPrice         int64  `json:"unitPrice"`
	BuyingPrice       int64  `json:"buyingPrice"`
	ItemName          string `json:"itemName"`
	ItemID            string `json:"itemId"`
}

type payloadMeta struct {
	CreatedBy        string `json:"createdBy"`
	CustomerName     string `json:"customerName"`
	MemberName       string `json:"memberName"`
	MemberRole       string `json:"memberRole"`
	CustomerEmail    string `json:"customerEmail"`
	CustomerPhone    string `json:"customerPhone"`
	DeliveryAddress  string `json:"deliveryAddress"`
	PaymentReference string `json:"paymentReference"`
}

type payload struct {
	BranchID                 string      `json:"branchId"`
	BusinessID               string      `json:"businessId"`
	InvoiceDate              string      `json:"invoiceDate"`
	Items                    []item      `json:"items"`
	PurchaseOnCredit         bool        `json:"purchaseOnCredit"`
	Status                   string      `json:"status"`
	Type                     string      `json:"type"`
	AssociateID              string      `json:"associateId"`
	DeliveryCompleted        bool        `json:"deliveryCompleted"`
	Description              string      `json:"description"`
	DueDate                  string      `json:"dueDate"`
	DiscountType             string      `json:"discountType"`
	DiscountValue            int         `json:"discountValue"`
	TaxType                  string      `json:"taxType"`
	TaxRate                  int         `json:"taxRate"`
	DeliveryStatus           string      `json:"deliveryStatus"`
	InvoiceReference         string      `json:"invoiceReference"`
	PaymentTerms             string      `json:"paymentTerms"`
	PaymentMethod            string      `json:"paymentMethod"`
	DeliveryMethod           string      `json:"deliveryMethod"`
	IncludesServices         bool        `json:"includesServices"`
	MemberID                 string      `json:"memberId"`
	Meta                     payloadMeta `json:"meta"`
	Notes                    string      `json:"notes"`
	TermsAndConditions       string      `json:"termsAndConditions"`
	InitialPaymentAmount     int64       `json:"initialPaymentAmount"`
	RequiresDelivery         bool        `json:"requiresDelivery"`
	PaymentDueDate           string      `json:"paymentDueDate"`
	ConfirmStockAvailability bool        `json:"confirmStockAvailability"`
	UseWholesalePrice        bool        `json:"useWholesalePrice"`
	InvoiceDeliveryMethod    string      `json:"invoiceDeliveryMethod"`
	PaymentParts             []any       `json:"paymentParts"`
}

func buildItems(order domain.Order, now time.Time) []item {
	ms := now.UnixMilli()

	items := make([]item, 0, len(order.Lines)+2)
	for i, line := range order.Lines {
		itemID := fmt.Sprintf("item-%s-%d-%d", line.ID, ms, i)
		items = append(items, item{
			ProductName:      line.Name,
			Quantity:         line.Quantity,
			ProductUnitPrice: line.UnitPrice,
			ProductUnitCfx:   1,
			ProductUnitTotal: line.LineTotal(),
			ProductID:        itemID,
			ProductUnitQty:   line.Quantity,
			UnitPrice:        line.UnitPrice,
			ItemName:         line.Name,
			ItemID:           itemID,
		})
	}

	c := order.Customer

	fullName := strings.TrimSpace(c.FirstName + " " + c.LastName)
	if fullName != "" || c.Phone != "" {
		var details []string
		if fullName != "" {
			details = append(details, fullName)
		}
		if c.Phone != "" {
			details = append(details, c.Phone)
		}
		itemName := "Customer"
		if len(details) > 0 {
			itemName += ": " + strings.Join(details, " - ")
		}
		itemID := fmt.Sprintf("customer-%d", ms)
		items = append(items, item{
			ProductName:      itemName,
			Quantity:         1,
			ProductUnitPrice: minimalPrice,
			ProductUnitCfx:   1,
			ProductUnitTotal: minimalPrice,
			ProductID:        itemID,
			ProductUnitQty:   1,
			UnitPrice:        minimalPrice,
			ItemName:         itemName,
			ItemID:           itemID,
		})
	}

	if c.PartySize > 0 || c.ReservationTime != "" {
		var details []string
		if c.PartySize > 0 {
			details = append(details, fmt.Sprintf("%d guests", c.PartySize))
		}
		if c.ReservationTime != "" {
			details = append(details, formatTime12h(c.ReservationTime))
		}
		itemName := "Reservation Booking"
		if len(details) > 0 {
			itemName += ": " + strings.Join(details, " - ")
		}
		itemID := fmt.Sprintf("booking-%d", ms)
		items = append(items, item{
			ProductName:      itemName,
			Quantity:         1,
			ProductUnitPrice: minimalPrice,
			ProductUnitCfx:   1,
			ProductUnitTotal: minimalPrice,
			ProductID:        itemID,
			ProductUnitQty:   1,
			UnitPrice:        minimalPrice,
			ItemName:         itemName,
			ItemID:           itemID,
		})
	}

	return items
}

// formatTime12h renders "19:30" as "7:30 PM". Malformed input is passed
// through unchanged.
func formatTime12h(hhmm string) string {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return hhmm
	}
	hour24, err := strconv.Atoi(parts[0])
	if err != nil {
		return hhmm
	}
	ampm := "AM"
	if hour24 >= 12 {
		ampm = "PM"
	}
	hour12 := hour24
	switch {
	case hour24 == 0:
		hour12 = 12
	case hour24 > 12:
		hour12 = hour24 - 12
	}
	return fmt.Sprintf("%d:%s %s", hour12, parts[1], ampm)
}

// dueDate computes the invoice due date: the reservation timestamp when
// date and time are both present, otherwise 7 days out.
func dueDate(c domain.CustomerDetails, now time.Time) time.Time {
	if c.ReservationDate != "" && c.ReservationTime != "" {
		ts, err := time.ParseInLocation("2006-01-02 15:04", c.ReservationDate+" "+c.ReservationTime, time.Local)
		if err == nil {
			return ts
		}
	}
	return now.Add(7 * 24 * time.Hour)
}

func buildPayload(order domain.Order, creds Credentials, now time.Time) payload {
	c := order.Customer

	description := fmt.Sprintf("Order from %s", c.FullName())
	if c.PartySize > 0 {
		description += fmt.Sprintf(" - Party Size: %d guests", c.PartySize)
	}
	if c.ReservationDate != "" && c.ReservationTime != "" {
		description += fmt.Sprintf(" - Reservation: %s at %s", c.ReservationDate, c.ReservationTime)
	}

	notes := fmt.Sprintf("Order placed online. Payment reference: %s.", order.PaymentReference)
	if c.PartySize > 0 {
		notes += fmt.Sprintf(" Party Size: %d guests.", c.PartySize)
	}
	if c.ReservationDate != "" {
		notes += fmt.Sprintf(" Reservation Date: %s.", c.ReservationDate)
	}
	if c.ReservationTime != "" {
		notes += fmt.Sprintf(" Reservation Time: %s.", c.ReservationTime)
	}

	return payload{
		BranchID:             creds.BranchID,
		BusinessID:           creds.BusinessID,
		InvoiceDate:          now.UTC().Format(time.RFC3339),
		Items:                buildItems(order, now),
		Status:               "pending",
		Type:                 "sale",
		Description:          description,
		DueDate:              dueDate(c, now).UTC().Format(time.RFC3339),
		DiscountType:         "none",
		TaxType:              "tax",
		DeliveryStatus:       "pending",
		InvoiceReference:     fmt.Sprintf("REF-%d", now.UnixMilli()),
		PaymentTerms:         "month-end",
		PaymentMethod:        order.PaymentMethod,
		DeliveryMethod:       "in-person",
		MemberID:             creds.MemberID,
		Meta: payloadMeta{
			CreatedBy:        "Nature's Crunch & Burst - Online Order",
			CustomerName:     metaCustomerName(c),
			MemberName:       "Nature's Crunch & Burst",
			MemberRole:       "owner",
			CustomerEmail:    c.Email,
			CustomerPhone:    c.Phone,
			DeliveryAddress:  order.FulfilmentDetail,
			PaymentReference: order.PaymentReference,
		},
		Notes:                 notes,
		InitialPaymentAmount:  order.TotalMinorUnits,
		RequiresDelivery:      true,
		PaymentDueDate:        now.Add(30 * 24 * time.Hour).UTC().Format(time.RFC3339),
		InvoiceDeliveryMethod: "in-person",
		PaymentParts:          []any{},
	}
}

func metaCustomerName(c domain.CustomerDetails) string {
	if strings.TrimSpace(c.FirstName+" "+c.LastName) == "" {
		return "Walk-in Customer"
	}
	return c.FullName()
}

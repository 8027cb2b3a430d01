// Package events publishes completed orders to Kafka for back-office
// consumers. Publishing is fire-and-forget: a broker outage never affects
// the customer-facing flow.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/naturescrunch/storefront/internal/domain"
	"github.com/segmentio/kafka-go"
)

const Topic = "orders-completed"

type orderLine struct {
	ItemID    string `json:"item_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	UnitPrice int64  `json:"unit_price"`
	LineTotal int64  `json:"line_total"`
}

type orderCompleted struct {
	PaymentReference string      `json:"payment_reference"`
	CustomerName     string      `json:"customer_name"`
	CustomerEmail    string      `json:"customer_email"`
	CustomerPhone    string      `json:"customer_phone"`
	FulfilmentDetail string      `json:"fulfilment_detail"`
	Lines            []orderLine `json:"lines"`
	TotalMinorUnits  int64       `json:"total_minor_units"`
	CompletedAt      time.Time   `json:"completed_at"`
}

// Publisher writes order-completed events.
type Publisher struct {
	writer *kafka.Writer
}

func NewPublisher(brokers ...string) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        Topic,
		Balancer:     &kafka.LeastBytes{},
		RequiredAcks: kafka.RequireOne,
	}
	return &Publisher{writer: writer}
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

// OrderCompleted publishes one event keyed by the payment reference.
func (p *Publisher) OrderCompleted(ctx context.Context, order domain.Order) error {
	value, err := json.Marshal(buildEvent(order, time.Now()))
	if err != nil {
		return fmt.Errorf("marshal order event: %w", err)
	}

	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.PaymentReference),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write order event: %w", err)
	}
	return nil
}

func buildEvent(order domain.Order, completedAt time.Time) orderCompleted {
	lines := make([]orderLine, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, orderLine{
			ItemID:    l.ID,
			Name:      l.Name,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			LineTotal: l.LineTotal(),
		})
	}
	return orderCompleted{
		PaymentReference: order.PaymentReference,
		CustomerName:     order.Customer.FullName(),
		CustomerEmail:    order.Customer.Email,
		CustomerPhone:    order.Customer.Phone,
		FulfilmentDetail: order.FulfilmentDetail,
		Lines:            lines,
		TotalMinorUnits:  order.TotalMinorUnits,
		CompletedAt:      completedAt,
	}
}

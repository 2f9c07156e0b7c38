package events

import (
	"context"
	"log/slog"
	"time"
)

const (
	TopicSaleCreated = "sales.created"
	TopicLowStock    = "inventory.low_stock"
)

// Publisher defines an interface for publishing events to a message broker.
type Publisher interface {
	Publish(ctx context.Context, topic string, key string, event any) error
}

type SaleLine struct {
	ProductID uint    `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"`
}

type SaleCreated struct {
	SaleID    uint       `json:"sale_id"`
	ReceiptNo string     `json:"receipt_no"`
	StaffID   uint       `json:"staff_id"`
	Total     float64    `json:"total"`
	Items     []SaleLine `json:"items"`
	At        time.Time  `json:"at"`
}

type LowStock struct {
	ProductID uint   `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
	Threshold int    `json:"threshold"`
}

// LogPublisher writes events to the structured log. Used when no broker is configured.
type LogPublisher struct {
	Logger *slog.Logger
}

func (p LogPublisher) Publish(ctx context.Context, topic string, key string, event any) error {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.InfoContext(ctx, "Event published", "topic", topic, "key", key, "event", event)
	return nil
}

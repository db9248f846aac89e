// Package factory builds order records and hands out their ids.
package factory

import (
	"fmt"
	"strings"
	"time"

	"restaurant-pos/internal/microservices/order/domain/dao"
)

// Selection maps an item name to the ordered quantity. Exactly one entry is accepted.
type Selection map[string]int

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type Factory struct {
	lastID int64
	now    func() time.Time
}

type Option func(*Factory)

// WithClock replaces time.Now as the source of CreatedAt.
func WithClock(now func() time.Time) Option {
	return func(f *Factory) { f.now = now }
}

func New(opts ...Option) *Factory {
	f := &Factory{now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Create validates the input and returns an open order carrying the next id.
// Invalid input does not consume an id.
func (f *Factory) Create(table int, items Selection, note string) (dao.Order, error) {
	item, err := validate(table, items)
	if err != nil {
		return dao.Order{}, err
	}
	f.lastID++
	return dao.Order{
		ID:          f.lastID,
		CreatedAt:   f.now(),
		TableNumber: table,
		Item:        item,
		Status:      dao.StatusOpen,
		Note:        strings.TrimSpace(note),
	}, nil
}

// LastID is the id handed out most recently, 0 before the first order.
func (f *Factory) LastID() int64 { return f.lastID }

func validate(table int, items Selection) (dao.LineItem, error) {
	if table < 1 {
		return dao.LineItem{}, &ValidationError{Field: "table_number", Message: "table number must be positive"}
	}
	switch len(items) {
	case 0:
		return dao.LineItem{}, &ValidationError{Field: "items", Message: "exactly one item is required"}
	case 1:
	default:
		return dao.LineItem{}, &ValidationError{
			Field:   "items",
			Message: fmt.Sprintf("an order holds a single item, got %d; place one order per item", len(items)),
		}
	}

	var item dao.LineItem
	for name, qty := range items {
		item = dao.LineItem{Name: strings.TrimSpace(name), Quantity: qty}
	}
	if item.Name == "" {
		return dao.LineItem{}, &ValidationError{Field: "items.name", Message: "item name is required"}
	}
	if item.Quantity < 1 {
		return dao.LineItem{}, &ValidationError{
			Field:   fmt.Sprintf("items[%s].quantity", item.Name),
			Message: "quantity must be at least 1",
		}
	}
	return item, nil
}

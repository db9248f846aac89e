// Package ledger keeps every order placed during the process lifetime.
//
// Orders are never removed, only flagged. Settling a table is two-phase:
// SettleTable prices the table's open orders and proposes a State in which
// they are paid, and Commit makes that State the live one. A settlement that
// is never committed leaves the ledger untouched, which is what a bill preview
// relies on.
//
// A Ledger is not safe for concurrent use.
package ledger

import (
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/microservices/order/domain/dao"
	"restaurant-pos/internal/microservices/order/factory"
)

var (
	ErrTerminalStatus = errors.New("order is already paid")
	ErrStaleState     = errors.New("ledger changed since the settlement was proposed")
)

// PriceLookup resolves an item name to its tax-inclusive unit price.
type PriceLookup interface {
	Price(name string) (decimal.Decimal, bool)
}

type MenuLookupError struct {
	Item string
}

func (e *MenuLookupError) Error() string {
	return fmt.Sprintf("item %q is not on the menu", e.Item)
}

type Ledger struct {
	factory  *factory.Factory
	menu     PriceLookup
	orders   []dao.Order
	index    map[int64]int
	revision uint64
}

func New(f *factory.Factory, menu PriceLookup) *Ledger {
	return &Ledger{
		factory: f,
		menu:    menu,
		index:   make(map[int64]int),
	}
}

// AddOrder builds an order through the factory and appends it.
// It reports false together with the validation error when the input is rejected.
func (l *Ledger) AddOrder(table int, items factory.Selection, note string) (bool, error) {
	_, err := l.Add(table, items, note)
	return err == nil, err
}

// Add is AddOrder returning the stored order.
func (l *Ledger) Add(table int, items factory.Selection, note string) (dao.Order, error) {
	o, err := l.factory.Create(table, items, note)
	if err != nil {
		return dao.Order{}, err
	}
	l.index[o.ID] = len(l.orders)
	l.orders = append(l.orders, o)
	l.revision++
	return o, nil
}

// OrdersForTable yields the table's orders in insertion order. Every range over
// the sequence reads the ledger afresh.
func (l *Ledger) OrdersForTable(table int) iter.Seq[dao.OrderView] {
	return func(yield func(dao.OrderView) bool) {
		for _, o := range l.orders {
			if o.TableNumber != table {
				continue
			}
			if !yield(o.View()) {
				return
			}
		}
	}
}

func (l *Ledger) Orders() iter.Seq[dao.Order] {
	return slices.Values(l.orders)
}

// Tables lists the table numbers that have at least one order, ascending.
func (l *Ledger) Tables() []int {
	seen := make(map[int]struct{})
	var out []int
	for _, o := range l.orders {
		if _, ok := seen[o.TableNumber]; ok {
			continue
		}
		seen[o.TableNumber] = struct{}{}
		out = append(out, o.TableNumber)
	}
	slices.Sort(out)
	return out
}

func (l *Ledger) Order(id int64) (dao.Order, bool) {
	i, ok := l.index[id]
	if !ok {
		return dao.Order{}, false
	}
	return l.orders[i], true
}

func (l *Ledger) Len() int { return len(l.orders) }

func (l *Ledger) Revision() uint64 { return l.revision }

// CancelOrder flags the order as cancelled. Unknown ids report false.
// Cancelling a cancelled order again succeeds without change; a paid order
// cannot be cancelled.
func (l *Ledger) CancelOrder(id int64) (bool, error) {
	i, ok := l.index[id]
	if !ok {
		return false, nil
	}
	switch l.orders[i].Status {
	case dao.StatusPaid:
		return false, fmt.Errorf("cancel order %d: %w", id, ErrTerminalStatus)
	case dao.StatusCancelled:
		return true, nil
	}
	l.orders[i].Status = dao.StatusCancelled
	l.revision++
	return true, nil
}

package ledger

import (
	"fmt"
	"iter"
	"slices"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/microservices/order/billing"
	"restaurant-pos/internal/microservices/order/domain/dao"
	"restaurant-pos/internal/microservices/order/factory"
)

// State is a proposed ledger content. Only Commit can make it live.
type State struct {
	orders   []dao.Order
	revision uint64
	valid    bool
}

func (s State) Orders() iter.Seq[dao.Order] { return slices.Values(s.orders) }

// Revision is the ledger revision the state was derived from.
func (s State) Revision() uint64 { return s.revision }

type Settlement struct {
	TableNumber   int
	OrderIDs      []int64
	Lines         []billing.PricedLine
	Gross         decimal.Decimal
	Net           decimal.Decimal
	Tax           decimal.Decimal
	TaxRate       string
	PaymentMethod string
	Tip           decimal.Decimal
	Total         decimal.Decimal
	Proposed      State
}

// SettleTable bills every open order of the table. It reports false when the
// table has nothing open. The live ledger is not modified; commit
// Settlement.Proposed to mark the orders paid.
func (l *Ledger) SettleTable(table int, method string, tip decimal.Decimal) (*Settlement, bool, error) {
	if tip.IsNegative() {
		return nil, false, &factory.ValidationError{Field: "tip", Message: "tip must not be negative"}
	}

	var (
		picked []int
		lines  []billing.Line
	)
	for i, o := range l.orders {
		if o.TableNumber != table || o.Status != dao.StatusOpen {
			continue
		}
		price, ok := l.menu.Price(o.Item.Name)
		if !ok {
			return nil, false, &MenuLookupError{Item: o.Item.Name}
		}
		picked = append(picked, i)
		lines = append(lines, billing.Line{Item: o.Item.Name, Quantity: o.Item.Quantity, UnitPrice: price})
	}
	if len(picked) == 0 {
		return nil, false, nil
	}

	totals := billing.Compute(lines)

	proposed := slices.Clone(l.orders)
	ids := make([]int64, 0, len(picked))
	for _, i := range picked {
		proposed[i].Status = dao.StatusPaid
		ids = append(ids, proposed[i].ID)
	}

	return &Settlement{
		TableNumber:   table,
		OrderIDs:      ids,
		Lines:         totals.Lines,
		Gross:         totals.Gross,
		Net:           totals.Net,
		Tax:           totals.Tax,
		TaxRate:       billing.TaxRateLabel,
		PaymentMethod: method,
		Tip:           tip,
		Total:         totals.Gross.Add(tip),
		Proposed:      State{orders: proposed, revision: l.revision, valid: true},
	}, true, nil
}

// Commit makes a proposed state live. It fails with ErrStaleState when the
// ledger changed after the state was proposed.
func (l *Ledger) Commit(s State) error {
	if !s.valid || s.revision != l.revision || len(s.orders) != len(l.orders) {
		return fmt.Errorf("commit: %w", ErrStaleState)
	}
	l.orders = slices.Clone(s.orders)
	l.index = make(map[int64]int, len(l.orders))
	for i, o := range l.orders {
		l.index[o.ID] = i
	}
	l.revision++
	return nil
}

func (s *Settlement) Receipt() dao.Receipt {
	r := dao.Receipt{
		TableNumber:   s.TableNumber,
		OrderIDs:      slices.Clone(s.OrderIDs),
		Lines:         make([]dao.ReceiptLine, 0, len(s.Lines)),
		Gross:         s.Gross,
		Net:           s.Net,
		Tax:           s.Tax,
		TaxRate:       s.TaxRate,
		PaymentMethod: s.PaymentMethod,
		Tip:           s.Tip,
		Total:         s.Total,
	}
	for _, pl := range s.Lines {
		r.Lines = append(r.Lines, dao.ReceiptLine{
			Item:      pl.Item,
			Quantity:  pl.Quantity,
			UnitPrice: pl.UnitPrice,
			LineTotal: pl.LineTotal,
		})
	}
	return r
}

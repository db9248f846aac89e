package dao

import (
	"time"

	"github.com/shopspring/decimal"
)

// Routing keys of the events published on the pos exchange.
const (
	EventOrderPlaced    = "order.placed"
	EventOrderCancelled = "order.cancelled"
	EventTableSettled   = "table.settled"
)

type OrderEvent struct {
	Type       string    `json:"event_type"`
	Order      Order     `json:"order"`
	OccurredAt time.Time `json:"occurred_at"`
}

type ReceiptLine struct {
	Item      string          `json:"item"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// Receipt is the printable part of a settlement.
type Receipt struct {
	TableNumber   int             `json:"table_number"`
	OrderIDs      []int64         `json:"order_ids"`
	Lines         []ReceiptLine   `json:"lines"`
	Gross         decimal.Decimal `json:"gross"`
	Net           decimal.Decimal `json:"net"`
	Tax           decimal.Decimal `json:"tax"`
	TaxRate       string          `json:"tax_rate"`
	PaymentMethod string          `json:"payment_method,omitempty"`
	Tip           decimal.Decimal `json:"tip"`
	Total         decimal.Decimal `json:"total"`
}

type SettlementEvent struct {
	Type       string    `json:"event_type"`
	Receipt    Receipt   `json:"receipt"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Rounded returns a copy with all amounts rounded to cents.
func (r Receipt) Rounded() Receipt {
	out := r
	out.Lines = make([]ReceiptLine, len(r.Lines))
	for i, l := range r.Lines {
		l.UnitPrice = l.UnitPrice.Round(2)
		l.LineTotal = l.LineTotal.Round(2)
		out.Lines[i] = l
	}
	out.Gross = r.Gross.Round(2)
	out.Net = r.Net.Round(2)
	out.Tax = r.Tax.Round(2)
	out.Tip = r.Tip.Round(2)
	out.Total = r.Total.Round(2)
	return out
}

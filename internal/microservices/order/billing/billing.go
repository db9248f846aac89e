// Package billing turns priced order lines into gross, net and tax amounts.
//
// Prices are tax-inclusive. With the fixed rate r the net amount is
// gross / (1 + r) and the tax amount is gross - net.
package billing

import "github.com/shopspring/decimal"

const TaxRateLabel = "19%"

var (
	TaxRate = decimal.RequireFromString("0.19")

	divisor = decimal.NewFromInt(1).Add(TaxRate)
)

type Line struct {
	Item      string
	Quantity  int
	UnitPrice decimal.Decimal
}

type PricedLine struct {
	Line
	LineTotal decimal.Decimal
}

type Totals struct {
	Lines []PricedLine
	Gross decimal.Decimal
	Net   decimal.Decimal
	Tax   decimal.Decimal
}

// Compute prices every line and decomposes the gross total.
func Compute(lines []Line) Totals {
	t := Totals{
		Lines: make([]PricedLine, 0, len(lines)),
		Gross: decimal.Zero,
	}
	for _, l := range lines {
		total := l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
		t.Lines = append(t.Lines, PricedLine{Line: l, LineTotal: total})
		t.Gross = t.Gross.Add(total)
	}
	t.Net, t.Tax = Split(t.Gross)
	return t
}

// Split returns the tax-exclusive part of gross and the tax it contains.
func Split(gross decimal.Decimal) (net, tax decimal.Decimal) {
	net = gross.Div(divisor)
	return net, gross.Sub(net)
}

// Round2 rounds to cents for display.
func Round2(d decimal.Decimal) decimal.Decimal { return d.Round(2) }

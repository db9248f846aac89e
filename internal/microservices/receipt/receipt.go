// Package receipt prints settlements the way the till shows them.
package receipt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"restaurant-pos/internal/microservices/order/domain/dao"
)

var rule = strings.Repeat("=", 58)

// Render writes one line per item followed by the totals. Payment lines are
// only printed once a payment method is known.
func Render(w io.Writer, r dao.Receipt) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Table %d\n", r.TableNumber)
	for _, l := range r.Lines {
		fmt.Fprintf(bw, "%s (%d x %s €) - Total: %s €\n",
			l.Item, l.Quantity, l.UnitPrice.StringFixed(2), l.LineTotal.StringFixed(2))
	}
	fmt.Fprintln(bw, rule)
	fmt.Fprintf(bw, "Total: %s €\n", r.Gross.StringFixed(2))
	fmt.Fprintln(bw, rule)
	fmt.Fprintf(bw, "VAT: %s\n", r.TaxRate)
	fmt.Fprintf(bw, "Net: %s €\n", r.Net.StringFixed(2))
	fmt.Fprintf(bw, "Tax: %s €\n", r.Tax.StringFixed(2))
	if r.PaymentMethod != "" {
		fmt.Fprintf(bw, "Payment method: %s\n", r.PaymentMethod)
		fmt.Fprintf(bw, "Tip: %s €\n", r.Tip.StringFixed(2))
		fmt.Fprintf(bw, "Paid (incl. tip): %s €\n", r.Total.StringFixed(2))
	}
	return bw.Flush()
}

// String is Render into a string.
func String(r dao.Receipt) string {
	var sb strings.Builder
	_ = Render(&sb, r)
	return sb.String()
}

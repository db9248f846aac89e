package dao

import "strings"

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "cash"
	PaymentCard PaymentMethod = "card"
)

// ParsePaymentMethod accepts the method names in English and German.
func ParsePaymentMethod(s string) (PaymentMethod, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cash", "bar":
		return PaymentCash, true
	case "card", "karte":
		return PaymentCard, true
	}
	return "", false
}

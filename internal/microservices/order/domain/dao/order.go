package dao

import "time"

type Status string

const (
	StatusOpen      Status = "open"
	StatusCancelled Status = "cancelled"
	StatusPaid      Status = "paid"
)

// Terminal reports whether no further transition is allowed out of s.
func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusPaid
}

type LineItem struct {
	Name     string `json:"item"`
	Quantity int    `json:"quantity"`
}

type Order struct {
	ID          int64     `json:"order_id"`
	CreatedAt   time.Time `json:"created_at"`
	TableNumber int       `json:"table_number"`
	Item        LineItem  `json:"line_item"`
	Status      Status    `json:"status"`
	Note        string    `json:"note,omitempty"`
}

// OrderView is an Order listed under its table, so the table number is left out.
type OrderView struct {
	ID        int64     `json:"order_id"`
	CreatedAt time.Time `json:"created_at"`
	Item      LineItem  `json:"line_item"`
	Status    Status    `json:"status"`
	Note      string    `json:"note,omitempty"`
}

func (o Order) View() OrderView {
	return OrderView{
		ID:        o.ID,
		CreatedAt: o.CreatedAt,
		Item:      o.Item,
		Status:    o.Status,
		Note:      o.Note,
	}
}

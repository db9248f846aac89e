package dto

import (
	"github.com/shopspring/decimal"

	"restaurant-pos/internal/microservices/order/domain/dao"
)

type PlaceOrderRequest struct {
	TableNumber int    `json:"table_number"`
	Item        string `json:"item"`
	Quantity    int    `json:"quantity"`
	Note        string `json:"note"`
}

type PlaceOrderResponse struct {
	OrderID int64      `json:"order_id"`
	Status  dao.Status `json:"status"`
}

type TableOrdersResponse struct {
	TableNumber int             `json:"table_number"`
	Orders      []dao.OrderView `json:"orders"`
	Message     string          `json:"message,omitempty"`
}

type TablesResponse struct {
	Tables []int `json:"tables"`
}

type CancelOrderResponse struct {
	OrderID int64      `json:"order_id"`
	Status  dao.Status `json:"status"`
}

type PaymentRequest struct {
	PaymentMethod string          `json:"payment_method"`
	Tip           decimal.Decimal `json:"tip"`
}

package handlers

import "net/http"

func Router(h *Handler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/menu", h.OrderHandler.GetMenu)
	mux.HandleFunc("POST /api/v1/orders", h.OrderHandler.PlaceOrder)
	mux.HandleFunc("POST /api/v1/orders/{order_id}/cancel", h.OrderHandler.CancelOrder)
	mux.HandleFunc("GET /api/v1/tables", h.OrderHandler.GetTables)
	mux.HandleFunc("GET /api/v1/tables/{table}/orders", h.OrderHandler.GetTableOrders)
	mux.HandleFunc("GET /api/v1/tables/{table}/bill", h.OrderHandler.GetBill)
	mux.HandleFunc("POST /api/v1/tables/{table}/payments", h.OrderHandler.PayBill)
	return mux
}

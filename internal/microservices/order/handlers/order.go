package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/order/domain/dao"
	"restaurant-pos/internal/microservices/order/domain/dto"
	"restaurant-pos/internal/microservices/order/service"
	"restaurant-pos/internal/microservices/receipt"
)

type OrderHandler struct {
	service service.OrderServiceInterface
	lg      *logger.Logger
}

func NewOrderHandler(s service.OrderServiceInterface, lg *logger.Logger) *OrderHandler {
	return &OrderHandler{service: s, lg: lg}
}

func (oh *OrderHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": oh.service.Menu()})
}

func (oh *OrderHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.PlaceOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	o, err := oh.service.PlaceOrder(r.Context(), req)
	if err != nil {
		oh.lg.Ctx(r.Context()).Debug("order_rejected", map[string]any{"table_number": req.TableNumber, "reason": err.Error()})
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, dto.PlaceOrderResponse{OrderID: o.ID, Status: o.Status})
}

func (oh *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("order_id"), 10, 64)
	if err != nil || id < 1 {
		writeProblem(w, http.StatusBadRequest, "validation_failed", "order_id must be a positive integer")
		return
	}
	ok, err := oh.service.CancelOrder(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if !ok {
		writeProblem(w, http.StatusNotFound, "not_found", fmt.Sprintf("order %d not found", id))
		return
	}
	writeJSON(w, http.StatusOK, dto.CancelOrderResponse{OrderID: id, Status: dao.StatusCancelled})
}

func (oh *OrderHandler) GetTables(w http.ResponseWriter, r *http.Request) {
	tables := oh.service.Tables()
	if tables == nil {
		tables = []int{}
	}
	writeJSON(w, http.StatusOK, dto.TablesResponse{Tables: tables})
}

func (oh *OrderHandler) GetTableOrders(w http.ResponseWriter, r *http.Request) {
	table, ok := tableParam(w, r)
	if !ok {
		return
	}
	views, err := oh.service.TableOrders(table)
	if err != nil {
		writeError(w, err)
		return
	}
	resp := dto.TableOrdersResponse{TableNumber: table, Orders: views}
	if len(views) == 0 {
		resp.Orders = []dao.OrderView{}
		resp.Message = fmt.Sprintf("no orders for table %d", table)
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetBill previews the bill. ?format=text returns the printable receipt.
func (oh *OrderHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	table, ok := tableParam(w, r)
	if !ok {
		return
	}
	st, found, err := oh.service.PreviewBill(table)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeProblem(w, http.StatusNotFound, "nothing_to_bill", fmt.Sprintf("no open orders for table %d", table))
		return
	}
	if r.URL.Query().Get("format") == "text" {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = receipt.Render(w, st.Receipt())
		return
	}
	writeJSON(w, http.StatusOK, st.Receipt().Rounded())
}

func (oh *OrderHandler) PayBill(w http.ResponseWriter, r *http.Request) {
	table, ok := tableParam(w, r)
	if !ok {
		return
	}
	var req dto.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeProblem(w, http.StatusBadRequest, "bad_json", "invalid JSON body")
		return
	}
	st, found, err := oh.service.PayBill(r.Context(), table, req)
	if err != nil {
		writeError(w, err)
		return
	}
	if !found {
		writeProblem(w, http.StatusNotFound, "nothing_to_bill", fmt.Sprintf("no open orders for table %d", table))
		return
	}
	writeJSON(w, http.StatusOK, st.Receipt().Rounded())
}

func tableParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	table, err := strconv.Atoi(r.PathValue("table"))
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "validation_failed", "table must be an integer")
		return 0, false
	}
	return table, true
}

package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"restaurant-pos/internal/common/logger"
	menudomain "restaurant-pos/internal/microservices/menu/domain"
	"restaurant-pos/internal/microservices/order/domain/dao"
	"restaurant-pos/internal/microservices/order/domain/dto"
	"restaurant-pos/internal/microservices/order/factory"
	"restaurant-pos/internal/microservices/order/ledger"
)

var (
	ErrTableOutOfRange      = errors.New("table number out of range")
	ErrUnknownItem          = errors.New("item is not on the menu")
	ErrInvalidPaymentMethod = errors.New("payment method must be cash or card")
)

// Catalog is the menu as seen by the order service.
type Catalog interface {
	ledger.PriceLookup
	Has(name string) bool
	Entries() []menudomain.Entry
}

type EventPublisher interface {
	PublishOrder(ctx context.Context, ev dao.OrderEvent) error
	PublishSettlement(ctx context.Context, ev dao.SettlementEvent) error
}

type OrderServiceInterface interface {
	Menu() []menudomain.Entry
	PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (dao.Order, error)
	Tables() []int
	TableOrders(table int) ([]dao.OrderView, error)
	CancelOrder(ctx context.Context, id int64) (bool, error)
	PreviewBill(table int) (*ledger.Settlement, bool, error)
	PayBill(ctx context.Context, table int, req dto.PaymentRequest) (*ledger.Settlement, bool, error)
}

// OrderService serializes every ledger access behind one mutex.
type OrderService struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	menu   Catalog
	pub    EventPublisher
	lg     *logger.Logger
	tables int
	now    func() time.Time
}

func NewOrderService(l *ledger.Ledger, menu Catalog, pub EventPublisher, lg *logger.Logger, tables int) *OrderService {
	return &OrderService{
		ledger: l,
		menu:   menu,
		pub:    pub,
		lg:     lg,
		tables: tables,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *OrderService) Menu() []menudomain.Entry { return s.menu.Entries() }

func (s *OrderService) checkTable(table int) error {
	if table < 1 || table > s.tables {
		return fmt.Errorf("%w: %d not in 1..%d", ErrTableOutOfRange, table, s.tables)
	}
	return nil
}

func (s *OrderService) PlaceOrder(ctx context.Context, req dto.PlaceOrderRequest) (dao.Order, error) {
	if err := s.checkTable(req.TableNumber); err != nil {
		return dao.Order{}, err
	}
	item := strings.TrimSpace(req.Item)
	if item != "" && !s.menu.Has(item) {
		return dao.Order{}, fmt.Errorf("%w: %q", ErrUnknownItem, item)
	}

	s.mu.Lock()
	o, err := s.ledger.Add(req.TableNumber, factory.Selection{item: req.Quantity}, req.Note)
	s.mu.Unlock()
	if err != nil {
		return dao.Order{}, err
	}

	s.lg.Ctx(ctx).Info("order_placed", map[string]any{
		"order_id": o.ID, "table_number": o.TableNumber, "item": o.Item.Name, "quantity": o.Item.Quantity,
	})
	s.publishOrder(ctx, dao.EventOrderPlaced, o)
	return o, nil
}

func (s *OrderService) Tables() []int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Tables()
}

func (s *OrderService) TableOrders(table int) ([]dao.OrderView, error) {
	if err := s.checkTable(table); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Collect(s.ledger.OrdersForTable(table)), nil
}

func (s *OrderService) CancelOrder(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	before, _ := s.ledger.Order(id)
	ok, err := s.ledger.CancelOrder(id)
	o, _ := s.ledger.Order(id)
	s.mu.Unlock()

	if err != nil || !ok {
		return ok, err
	}
	if before.Status == dao.StatusCancelled {
		return true, nil
	}
	s.lg.Ctx(ctx).Info("order_cancelled", map[string]any{"order_id": id, "table_number": o.TableNumber})
	s.publishOrder(ctx, dao.EventOrderCancelled, o)
	return true, nil
}

// PreviewBill prices the open orders of a table without marking them paid.
func (s *OrderService) PreviewBill(table int) (*ledger.Settlement, bool, error) {
	if err := s.checkTable(table); err != nil {
		return nil, false, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.SettleTable(table, "", decimal.Zero)
}

// PayBill settles the table and commits the result in one step.
func (s *OrderService) PayBill(ctx context.Context, table int, req dto.PaymentRequest) (*ledger.Settlement, bool, error) {
	if err := s.checkTable(table); err != nil {
		return nil, false, err
	}
	method, ok := dao.ParsePaymentMethod(req.PaymentMethod)
	if !ok {
		return nil, false, fmt.Errorf("%w: %q", ErrInvalidPaymentMethod, req.PaymentMethod)
	}

	s.mu.Lock()
	st, ok, err := s.ledger.SettleTable(table, string(method), req.Tip)
	if err == nil && ok {
		err = s.ledger.Commit(st.Proposed)
	}
	s.mu.Unlock()
	if err != nil || !ok {
		return nil, false, err
	}

	s.lg.Ctx(ctx).Info("table_settled", map[string]any{
		"table_number":   table,
		"orders":         st.OrderIDs,
		"gross":          st.Gross.StringFixed(2),
		"tip":            st.Tip.StringFixed(2),
		"payment_method": st.PaymentMethod,
	})
	ev := dao.SettlementEvent{Type: dao.EventTableSettled, Receipt: st.Receipt(), OccurredAt: s.now()}
	if err := s.pub.PublishSettlement(ctx, ev); err != nil {
		s.lg.Ctx(ctx).Error("publish_failed", err, map[string]any{"event_type": ev.Type, "table_number": table})
	}
	return st, true, nil
}

func (s *OrderService) publishOrder(ctx context.Context, typ string, o dao.Order) {
	ev := dao.OrderEvent{Type: typ, Order: o, OccurredAt: s.now()}
	if err := s.pub.PublishOrder(ctx, ev); err != nil {
		s.lg.Ctx(ctx).Error("publish_failed", err, map[string]any{"event_type": typ, "order_id": o.ID})
	}
}

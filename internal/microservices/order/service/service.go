package service

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/order/ledger"
)

type Service struct {
	OrderService OrderServiceInterface
}

func New(l *ledger.Ledger, menu Catalog, pub EventPublisher, lg *logger.Logger, tables int) *Service {
	return &Service{
		OrderService: NewOrderService(l, menu, pub, lg, tables),
	}
}

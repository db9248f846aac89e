package handlers

import (
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/order/service"
)

type Handler struct {
	OrderHandler *OrderHandler
}

func New(s *service.Service, lg *logger.Logger) *Handler {
	return &Handler{
		OrderHandler: NewOrderHandler(s.OrderService, lg),
	}
}

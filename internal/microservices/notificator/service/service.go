package service

import "restaurant-pos/internal/common/logger"

type Service struct {
	NotificatorService *NotificatorService
}

func New(c Consumer, queue string, prefetch int, lg *logger.Logger) *Service {
	return &Service{NotificatorService: NewNotificatorService(c, queue, prefetch, lg)}
}

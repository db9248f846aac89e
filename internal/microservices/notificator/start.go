package notificator

import (
	"context"

	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/mq"
	"restaurant-pos/internal/microservices/notificator/service"
	"restaurant-pos/internal/microservices/order/domain/dao"
)

// Run prints a receipt for every settled table published on the exchange.
func Run(ctx context.Context, cfg config.MQ, lg *logger.Logger) error {
	client, err := mq.Dial(cfg, false)
	if err != nil {
		return err
	}
	defer client.Close()
	if err := client.DeclareTopology(cfg.Exchange, cfg.Queue, dao.EventTableSettled); err != nil {
		return err
	}
	svc := service.New(client, cfg.Queue, cfg.Prefetch, lg)
	return svc.NotificatorService.Run(ctx)
}

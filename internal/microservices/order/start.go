package order

import (
	"context"
	"fmt"

	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/httpx"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/common/mq"
	"restaurant-pos/internal/microservices/menu"
	"restaurant-pos/internal/microservices/order/factory"
	"restaurant-pos/internal/microservices/order/handlers"
	"restaurant-pos/internal/microservices/order/ledger"
	"restaurant-pos/internal/microservices/order/publisher"
	"restaurant-pos/internal/microservices/order/service"
)

// Run wires the ledger, menu and event publisher behind the HTTP API and
// serves until ctx is done. The ledger lives exactly as long as this call.
func Run(ctx context.Context, cfg config.App, lg *logger.Logger) error {
	m, err := menu.Load(ctx, cfg, lg)
	if err != nil {
		return err
	}

	var pub service.EventPublisher = publisher.Nop{}
	if cfg.Rabbit.Enabled {
		client, err := mq.Dial(cfg.Rabbit, false)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := client.DeclareTopology(cfg.Rabbit.Exchange, "", ""); err != nil {
			return err
		}
		lg.Info("rabbitmq_connected", map[string]any{"host": cfg.Rabbit.Host, "exchange": cfg.Rabbit.Exchange})
		pub = publisher.NewAMQPPublisher(client, cfg.Rabbit.Exchange)
	}

	l := ledger.New(factory.New(), m)
	svc := service.New(l, m, pub, lg, cfg.POS.Tables)
	h := handlers.New(svc, lg)

	srv := httpx.New(fmt.Sprintf(":%d", cfg.POS.Port), httpx.Limit(httpx.RequestID(handlers.Router(h), lg), cfg.POS.MaxConcurrent))
	lg.Info("listening", map[string]any{"port": cfg.POS.Port, "tables": cfg.POS.Tables})
	return srv.Run(ctx)
}

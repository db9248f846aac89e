package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"restaurant-pos/internal/common/config"
	"restaurant-pos/internal/common/errs"
	"restaurant-pos/internal/common/logger"
	"restaurant-pos/internal/microservices/menu"
	"restaurant-pos/internal/microservices/notificator"
	"restaurant-pos/internal/microservices/order"
)

const modes = "pos-service | receipt-subscriber | menu-import"

func main() {
	mode := flag.String("mode", "", modes)
	cfgPath := flag.String("config", "", "path to YAML config (default: config.yaml if present)")
	port := flag.Int("port", 0, "pos-service: http port")
	maxConc := flag.Int("max-concurrent", 0, "pos-service: max in-flight requests")
	prefetch := flag.Int("prefetch", 0, "receipt-subscriber: RabbitMQ prefetch")
	from := flag.String("from", "Speisekarte.csv", "menu-import: source CSV")
	to := flag.String("to", "menu.db", "menu-import: target SQLite file")
	flag.Parse()

	lg := logger.New("bootstrap")
	defer lg.Sync()

	if *mode == "" {
		fmt.Fprintf(os.Stderr, "%v: %s\n", errs.ErrModeFlag, modes)
		os.Exit(2)
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		lg.Error("config_load_failed", err, map[string]any{"path": *cfgPath})
		os.Exit(1)
	}
	if *port != 0 {
		cfg.POS.Port = *port
	}
	if *maxConc != 0 {
		cfg.POS.MaxConcurrent = *maxConc
	}
	if *prefetch != 0 {
		cfg.Rabbit.Prefetch = *prefetch
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	switch *mode {
	case "pos-service":
		slg := logger.New("pos-service")
		slg.Info("service_started", map[string]any{"port": cfg.POS.Port, "max_concurrent": cfg.POS.MaxConcurrent})
		if err := order.Run(ctx, cfg, slg); err != nil {
			slg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "receipt-subscriber":
		if !cfg.Rabbit.Enabled {
			fmt.Fprintln(os.Stderr, "receipt-subscriber needs rabbitmq.enabled: true")
			os.Exit(2)
		}
		slg := logger.New("receipt-subscriber")
		slg.Info("service_started", map[string]any{"queue": cfg.Rabbit.Queue})
		if err := notificator.Run(ctx, cfg.Rabbit, slg); err != nil {
			slg.Error("fatal", err, nil)
			os.Exit(1)
		}
	case "menu-import":
		n, err := menu.ImportCSV(ctx, *from, *to)
		if err != nil {
			lg.Error("menu_import_failed", err, map[string]any{"from": *from, "to": *to})
			os.Exit(1)
		}
		lg.Info("menu_imported", map[string]any{"from": *from, "to": *to, "items": n})
	default:
		fmt.Fprintf(os.Stderr, "%v %q: %s\n", errs.ErrUnknownService, *mode, modes)
		os.Exit(2)
	}
}

// loadConfig reads path, or the first known config file, or falls back to defaults.
func loadConfig(path string) (config.App, error) {
	if path == "" {
		found, err := config.FindConfig()
		if errors.Is(err, fs.ErrNotExist) {
			cfg := config.Default()
			return cfg, cfg.Validate()
		}
		path = found
	}
	return config.Load(path)
}

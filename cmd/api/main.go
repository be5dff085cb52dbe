package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gimhantharuke456/sachi-itpm/internal/config"
	"github.com/gimhantharuke456/sachi-itpm/internal/infra/db"
	"github.com/gimhantharuke456/sachi-itpm/internal/infra/events"
	"github.com/gimhantharuke456/sachi-itpm/internal/infra/metrics"
	"github.com/gimhantharuke456/sachi-itpm/internal/logger"
	"github.com/gimhantharuke456/sachi-itpm/internal/server"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const serviceName = "backoffice-api"

type publisher interface {
	server.EventPublisher
	Close() error
}

func main() {
	//.envは無くてもよい（本番は環境変数）
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(serviceName, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Fatal("server stopped with error", zap.Error(err))
	}
}

func run(cfg config.Config, log *zap.Logger) error {
	//DB接続
	gdb, err := db.Connect(cfg.DSN(), !cfg.IsProd())
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(gdb); err != nil {
			log.Warn("close database failed", zap.Error(err))
		}
	}()

	if err := db.Migrate(gdb); err != nil {
		return err
	}

	//RABBITMQ_URLが空ならイベントは送らない
	var pub publisher = events.NoopPublisher{}
	if cfg.RabbitMQURL != "" {
		p, err := events.NewPublisher(cfg.RabbitMQURL, log)
		if err != nil {
			return err
		}
		pub = p
	} else {
		log.Info("RABBITMQ_URL not set; order events are disabled")
	}
	defer func() {
		if err := pub.Close(); err != nil {
			log.Warn("close publisher failed", zap.Error(err))
		}
	}()

	m := metrics.New()
	e := server.NewAPI(cfg, gdb, pub, m, log)
	srv := server.New(cfg, e, log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info("shutting down")
	}

	return srv.Shutdown(context.Background())
}

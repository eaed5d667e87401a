package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"max.ks1230/finance-tracker/internal/clients/kafka"
	"max.ks1230/finance-tracker/internal/clients/tg"
	"max.ks1230/finance-tracker/internal/clients/tracing"
	"max.ks1230/finance-tracker/internal/config"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/metrics"
	"max.ks1230/finance-tracker/internal/model/alerts"
	"max.ks1230/finance-tracker/internal/model/messages"
	"max.ks1230/finance-tracker/internal/model/storage"
	"max.ks1230/finance-tracker/internal/model/workspace"
)

func main() {
	defer logger.Sync()
	logger.Info("Bot init - start")

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	tracer, err := tracing.Init(conf.Jaeger())
	if err != nil {
		logger.Fatal("failed to init tracing", zap.Error(err))
	}
	defer func() { _ = tracer.Close() }()

	medium, err := storage.Open(storage.Configs{
		Storage:   conf.Storage(),
		Sqlite:    conf.Sqlite(),
		Postgres:  conf.Postgres(),
		Memcached: conf.Memcached(),
	})
	if err != nil {
		logger.Fatal("failed to init storage", zap.Error(err))
	}
	defer storage.Close(medium)

	var poolOpts []workspace.PoolOption
	if conf.Kafka().Enabled() {
		producer, err := kafka.NewProducer(conf.Kafka())
		if err != nil {
			logger.Fatal("failed to init kafka producer", zap.Error(err))
		}
		defer producer.Close()
		poolOpts = append(poolOpts, workspace.WithNotifiers(producer))
	}

	client, err := tg.New(conf.Telegram())
	if err != nil {
		logger.Fatal("failed to init client", zap.Error(err))
	}

	pool := workspace.NewPool(medium, conf.App(), poolOpts...)
	msgService := messages.NewService(client, pool)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err = pool.Restore(ctx); err != nil {
		logger.Error("failed to restore chats", zap.Error(err))
	}

	go metrics.Serve(ctx, conf.Metrics())
	go alerts.NewWatcher(pool, client, conf.App()).Watch(ctx)

	logger.Info("Bot init - end")
	client.ListenUpdates(ctx, msgService)
}

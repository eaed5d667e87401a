package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"max.ks1230/finance-tracker/internal/cli"
	"max.ks1230/finance-tracker/internal/clients/kafka"
	"max.ks1230/finance-tracker/internal/config"
	"max.ks1230/finance-tracker/internal/logger"
	"max.ks1230/finance-tracker/internal/model/records"
	"max.ks1230/finance-tracker/internal/model/storage"
	"max.ks1230/finance-tracker/internal/model/workspace"
)

func main() {
	logger.SetLevel(zapcore.WarnLevel)

	conf, err := config.New()
	if err != nil {
		logger.Fatal("failed to init config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cli.Execute(ctx, cli.NewRootCmd(opener(conf)), os.Stderr)
	cancel()
	logger.Sync()
	os.Exit(code)
}

// opener opens the configured medium for one command. The in-memory
// backend would forget everything on exit, so the command line falls back
// to the sqlite file.
func opener(conf *config.Service) cli.Opener {
	return func() (*workspace.Workspace, func(), error) {
		storageCfg := *conf.Storage()
		if storageCfg.Backend() == config.BackendMemory || storageCfg.Backend() == "" {
			storageCfg.BackendName = config.BackendSqlite
		}

		medium, err := storage.Open(storage.Configs{
			Storage:   &storageCfg,
			Sqlite:    conf.Sqlite(),
			Postgres:  conf.Postgres(),
			Memcached: conf.Memcached(),
		})
		if err != nil {
			return nil, nil, err
		}

		var (
			notifier records.Notifier
			producer *kafka.Producer
		)
		if conf.Kafka().Enabled() {
			producer, err = kafka.NewProducer(conf.Kafka())
			if err != nil {
				storage.Close(medium)
				return nil, nil, errors.Wrap(err, "init kafka producer")
			}
			notifier = producer.For("local")
		}

		release := func() {
			if producer != nil {
				producer.Close()
			}
			storage.Close(medium)
		}
		return workspace.New(medium, "local", conf.App(), notifier), release, nil
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/carson-networks/finance-ledger/api"
	"github.com/carson-networks/finance-ledger/internal/autopost"
	"github.com/carson-networks/finance-ledger/internal/config"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/operator"
	"github.com/carson-networks/finance-ledger/internal/scheduler"
	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/migrations"
)

func main() {
	envConfig, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logrus.WithError(err).Fatal("config.Load")
		return
	}

	logger := logging.SetupLogging(envConfig.LogLevel)
	logger.Info("finance-ledger starting")

	dbStorage, err := storage.NewStorage(envConfig)
	if err != nil {
		logger.WithError(err).Fatal("storage.NewStorage")
		return
	}
	defer dbStorage.Close()

	if err = migrations.Up(dbStorage.DB, logger); err != nil {
		logger.WithError(err).Fatal("migrations.Up")
		return
	}

	delegator := operator.NewOperatorDelegator(dbStorage, logger, envConfig.OperatorWorkers)
	delegator.Start()
	defer delegator.Stop()

	engine := autopost.NewEngine(autopost.Config{
		MaxOccurrencesPerPass: envConfig.AutoPostMaxOccurrences,
		MaxSearchSteps:        envConfig.ScheduleMaxSearchSteps,
	}, logger)
	svc := service.NewService(dbStorage.Read(), delegator, engine, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	autoPoster, err := scheduler.New(svc.AutoPost, envConfig.AutoPostCron, logger)
	if err != nil {
		logger.WithError(err).Fatal("scheduler.New")
		return
	}
	if envConfig.AutoPostOnStartup {
		autoPoster.RunOnce(ctx, service.SourceStartup)
	}
	autoPoster.Start()
	defer autoPoster.Stop()

	httpRest := api.Rest{
		Logger:  logger,
		Port:    envConfig.HTTPPort,
		Storage: dbStorage,
		Service: svc,
	}
	httpRest.Serve(ctx)
}

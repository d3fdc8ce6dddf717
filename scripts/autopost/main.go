// Command autopost runs a single auto-post pass against the configured database and exits.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/carson-networks/finance-ledger/internal/autopost"
	server_config "github.com/carson-networks/finance-ledger/internal/config"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/operator"
	"github.com/carson-networks/finance-ledger/internal/service"
	"github.com/carson-networks/finance-ledger/internal/storage"
	"github.com/carson-networks/finance-ledger/internal/storage/migrations"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		date       string
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "autopost",
		Short: "Post every due recurring transaction",
		Long: `Runs one auto-post pass: every occurrence of every auto-post rule that is due
on or before the reference date and has not been posted yet is posted.

Example:
  autopost
  autopost --date 2024-03-31`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var referenceDate time.Time
			if date != "" {
				var err error
				if referenceDate, err = time.Parse(time.DateOnly, date); err != nil {
					return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
				}
			}
			if configFile == "" {
				configFile = os.Getenv("CONFIG_FILE")
			}

			created, err := run(cmd.Context(), configFile, referenceDate)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "posted %d recurring transactions\n", created)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "reference date (YYYY-MM-DD), defaults to today")
	cmd.Flags().StringVar(&configFile, "config", "", "YAML config file, defaults to $CONFIG_FILE")
	return cmd
}

func run(ctx context.Context, configFile string, referenceDate time.Time) (int, error) {
	env, err := server_config.Load(configFile)
	if err != nil {
		logrus.WithError(err).Error("config.Load")
		return 0, err
	}
	logger := logging.SetupLogging(env.LogLevel)

	dbStorage, err := storage.NewStorage(env)
	if err != nil {
		logger.WithError(err).Error("storage.NewStorage")
		return 0, err
	}
	defer dbStorage.Close()

	if err = migrations.Up(dbStorage.DB, logger); err != nil {
		logger.WithError(err).Error("migrations.Up")
		return 0, err
	}

	delegator := operator.NewOperatorDelegator(dbStorage, logger, 1)
	delegator.Start()
	defer delegator.Stop()

	engine := autopost.NewEngine(autopost.Config{
		MaxOccurrencesPerPass: env.AutoPostMaxOccurrences,
		MaxSearchSteps:        env.ScheduleMaxSearchSteps,
	}, logger)

	return service.NewAutoPostService(delegator, engine, logger).Run(ctx, referenceDate, service.SourceCLI)
}

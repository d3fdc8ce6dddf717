package main

import (
	"database/sql"
	"os"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"

	server_config "github.com/carson-networks/finance-ledger/internal/config"
	"github.com/carson-networks/finance-ledger/internal/logging"
	"github.com/carson-networks/finance-ledger/internal/storage/migrations"
)

func main() {
	env, err := server_config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		logrus.WithError(err).Fatal("config.Load")
		return
	}
	logger := logging.SetupLogging(env.LogLevel)

	db, err := sql.Open("postgres", env.PostgresURL())
	if err != nil {
		logger.WithError(err).Fatal("sql.Open")
		return
	}
	defer db.Close()

	if err = migrations.Up(db, logger); err != nil {
		logger.WithError(err).Fatal("migrations.Up")
	}
}

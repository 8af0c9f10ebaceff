package main

import (
	"context"
	"flag"

	"github.com/sirupsen/logrus"

	"TwitchWarehouse/internal/config"
	"TwitchWarehouse/internal/warehouse"
)

// createtables resets the warehouse schema: drop/create the database, then
// drop and recreate every table. Run once before the first ETL run; the
// dimension and fact tables are never reset by the pipeline itself.
func main() {
	configPath := flag.String("config", "", "path to config JSON file (default: config/config.json)")
	flag.Parse()

	logger := logrus.New()
	logger.SetLevel(logrus.InfoLevel)

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Errorf("config check: %v", err)
	}

	if err := warehouse.RecreateDatabase(&cfg.Postgres, logger); err != nil {
		logger.Fatalf("recreate database: %v", err)
	}

	db, err := warehouse.Open(cfg.Postgres.DSN(warehouse.DatabaseName))
	if err != nil {
		logger.Fatalf("connect to %s: %v", warehouse.DatabaseName, err)
	}
	defer func() {
		if err := warehouse.Close(db); err != nil {
			logger.Errorf("close connection: %v", err)
		}
	}()

	warehouse.NewManager(db, logger).ResetTables(context.Background())
}

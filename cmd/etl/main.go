package main

import (
	"context"
	"flag"
	"os"

	"github.com/sirupsen/logrus"

	"TwitchWarehouse/internal/adapter/rawg"
	"TwitchWarehouse/internal/config"
	"TwitchWarehouse/internal/service"
	"TwitchWarehouse/internal/warehouse"
)

// etl runs one full pipeline pass: bulk-copy the staging files, then derive
// the broadcasters, time and games dimensions and the streams fact table.
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

	db, err := warehouse.Open(cfg.Postgres.DSN(warehouse.DatabaseName))
	if err != nil {
		logger.Fatalf("connect to %s: %v", warehouse.DatabaseName, err)
	}
	searcher := rawg.NewClient(&cfg.RAWG, logger)
	pipeline := service.NewPipeline(db, logger, cfg, searcher)

	summary := pipeline.Run(context.Background())

	if err := warehouse.Close(db); err != nil {
		logger.Errorf("close connection: %v", err)
	}
	if summary.Status != "finished" {
		os.Exit(1)
	}
}

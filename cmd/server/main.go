package main

import (
	"flag"
	"fmt"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"TwitchWarehouse/internal/api"
	"TwitchWarehouse/internal/config"
	"TwitchWarehouse/internal/warehouse"
)

// server exposes the warehouse over HTTP: trigger a pipeline run, browse the
// star schema, list past runs.
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

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.Default()
	pprof.Register(r)

	etlHandler := api.NewETLHandler(db, logger, cfg)
	r.POST("/etl/run", etlHandler.RunPipeline)

	warehouseHandler := api.NewWarehouseHandler(db, logger)
	r.GET("/api/streams", warehouseHandler.ListStreams)
	r.GET("/api/games", warehouseHandler.ListGames)
	r.GET("/api/runs", warehouseHandler.ListRuns)
	r.GET("/health", warehouseHandler.Health)

	port := cfg.Server.Port
	if port == 0 {
		port = 8080
	}
	logger.Infof("serving on port %d", port)
	if err := r.Run(fmt.Sprintf(":%d", port)); err != nil {
		logger.Fatalf("start server: %v", err)
	}
}

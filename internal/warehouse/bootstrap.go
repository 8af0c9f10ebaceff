package warehouse

import (
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v4/stdlib"
	"github.com/sirupsen/logrus"

	"TwitchWarehouse/internal/config"
)

// RecreateDatabase drops and recreates the warehouse database through an
// admin connection on the bootstrap database. Destructive: every run of this
// wipes the warehouse, so it belongs to schema resets only, never to ETL runs.
func RecreateDatabase(cfg *config.PostgresConfig, logger *logrus.Logger) error {
	db, err := sql.Open("pgx", cfg.DSN(cfg.Database))
	if err != nil {
		return fmt.Errorf("open admin connection: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.WithError(err).Error("close admin connection")
		}
	}()

	if _, err := db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", DatabaseName)); err != nil {
		return fmt.Errorf("drop database %s: %w", DatabaseName, err)
	}
	if _, err := db.Exec(fmt.Sprintf("CREATE DATABASE %s", DatabaseName)); err != nil {
		return fmt.Errorf("create database %s: %w", DatabaseName, err)
	}
	logger.Infof("database %s created", DatabaseName)
	return nil
}

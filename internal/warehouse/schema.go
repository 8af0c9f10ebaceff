package warehouse

import (
	"context"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Manager owns the warehouse DDL: dropping and recreating the staging,
// dimension, fact and audit tables.
type Manager struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewManager(db *gorm.DB, logger *logrus.Logger) *Manager {
	return &Manager{db: db, logger: logger}
}

// ResetTables drops the project tables and recreates them. Each statement is
// guarded independently: a failing drop or create is logged and the remaining
// statements still run.
func (m *Manager) ResetTables(ctx context.Context) {
	for _, table := range tables {
		if err := m.db.WithContext(ctx).Exec("DROP TABLE IF EXISTS " + table).Error; err != nil {
			m.logger.WithError(err).Errorf("drop table %s", table)
		}
	}
	for _, stmt := range creations {
		if err := m.db.WithContext(ctx).Exec(stmt).Error; err != nil {
			m.logger.WithError(err).Error("create table")
		}
	}
	m.logger.Infof("tables for %s database created", DatabaseName)
}

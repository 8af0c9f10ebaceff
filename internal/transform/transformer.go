package transform

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Transformer runs the set-based staging-to-star-schema statements. Each call
// is one statement, atomic on its own; there is no transaction across calls.
type Transformer struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewTransformer(db *gorm.DB, logger *logrus.Logger) *Transformer {
	return &Transformer{db: db, logger: logger}
}

// LoadBroadcasters upserts the broadcasters dimension from staging.
func (t *Transformer) LoadBroadcasters(ctx context.Context) error {
	if err := t.db.WithContext(ctx).Exec(broadcastersInsert).Error; err != nil {
		return fmt.Errorf("load broadcasters dimension: %w", err)
	}
	t.logger.Info("loaded broadcasters dimension table")
	return nil
}

// LoadTime inserts new time slots from staging, skipping existing ones.
func (t *Transformer) LoadTime(ctx context.Context) error {
	if err := t.db.WithContext(ctx).Exec(timeInsert).Error; err != nil {
		return fmt.Errorf("load time dimension: %w", err)
	}
	t.logger.Info("loaded time dimension table")
	return nil
}

// LoadStreams upserts the streams fact table from staging joined against the
// dimensions. Games must already be enriched when this runs.
func (t *Transformer) LoadStreams(ctx context.Context) error {
	if err := t.db.WithContext(ctx).Exec(streamsInsert).Error; err != nil {
		return fmt.Errorf("load streams fact table: %w", err)
	}
	t.logger.Info("loaded streams fact table")
	return nil
}

// DistinctGameTitles returns every non-null game title present in staging.
func (t *Transformer) DistinctGameTitles(ctx context.Context) ([]string, error) {
	var titles []string
	if err := t.db.WithContext(ctx).Raw(gameTitleSelect).Scan(&titles).Error; err != nil {
		return nil, fmt.Errorf("select distinct game titles: %w", err)
	}
	return titles, nil
}

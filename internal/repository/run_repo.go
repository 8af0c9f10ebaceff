package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"TwitchWarehouse/internal/model"
)

type RunRepository struct {
	db *gorm.DB
}

func NewRunRepository(db *gorm.DB) *RunRepository {
	return &RunRepository{db: db}
}

// Begin records the start of a pipeline run and returns the audit row.
func (r *RunRepository) Begin(ctx context.Context) (*model.LoadRun, error) {
	run := &model.LoadRun{
		RunUUID:   uuid.NewString(),
		StartedAt: time.Now().UTC(),
		Status:    "running",
	}
	if err := r.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("record run start: %w", err)
	}
	return run, nil
}

// Finish finalizes the audit row with the run's counters and outcome.
func (r *RunRepository) Finish(ctx context.Context, run *model.LoadRun, status string) error {
	now := time.Now().UTC()
	run.FinishedAt = &now
	run.Status = status
	if err := r.db.WithContext(ctx).Save(run).Error; err != nil {
		return fmt.Errorf("record run finish: %w", err)
	}
	return nil
}

// List returns the most recent runs first.
func (r *RunRepository) List(ctx context.Context, limit int) ([]model.LoadRun, error) {
	var runs []model.LoadRun
	err := r.db.WithContext(ctx).
		Order("started_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	return runs, nil
}

package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"TwitchWarehouse/internal/model"
)

type GameRepository struct {
	db *gorm.DB
}

func NewGameRepository(db *gorm.DB) *GameRepository {
	return &GameRepository{db: db}
}

// Upsert inserts the game or, when the external id was already recorded from
// an earlier lookup, overwrites it with the latest lookup's values.
func (r *GameRepository) Upsert(ctx context.Context, game *model.Game) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "game_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"game_slug", "game_title", "release_date", "rating", "rating_count", "metadata",
		}),
	}).Create(game).Error
	if err != nil {
		return fmt.Errorf("upsert game %s: %w", game.GameID, err)
	}
	return nil
}

// List returns games ordered by title, paged.
func (r *GameRepository) List(ctx context.Context, offset, limit int) ([]model.Game, error) {
	var games []model.Game
	err := r.db.WithContext(ctx).
		Order("game_title").
		Offset(offset).Limit(limit).
		Find(&games).Error
	if err != nil {
		return nil, fmt.Errorf("list games: %w", err)
	}
	return games, nil
}

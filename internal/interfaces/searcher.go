package interfaces

import (
	"context"

	"TwitchWarehouse/internal/model"
)

// GameSearcher looks up the best metadata match for a raw game title.
// A nil result with a nil error means no match; lookup errors are expected
// and are skipped per title by the caller.
type GameSearcher interface {
	Search(ctx context.Context, title string) (*model.GameLookup, error)
}

package service

import (
	"context"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"TwitchWarehouse/internal/config"
	"TwitchWarehouse/internal/interfaces"
	"TwitchWarehouse/internal/model"
	"TwitchWarehouse/internal/repository"
	"TwitchWarehouse/internal/staging"
	"TwitchWarehouse/internal/transform"
)

// Pipeline runs the full load: staging bulk copy, broadcasters and time
// dimensions, game enrichment, streams fact table. Stages run strictly in
// that order on a single connection; each stage commits on its own, so a
// failed stage is logged and the next one still runs.
type Pipeline struct {
	logger      *logrus.Logger
	searcher    interfaces.GameSearcher
	loader      *staging.Loader
	transformer *transform.Transformer
	games       *repository.GameRepository
	runs        *repository.RunRepository
}

func NewPipeline(db *gorm.DB, logger *logrus.Logger, cfg *config.Config, searcher interfaces.GameSearcher) *Pipeline {
	return &Pipeline{
		logger:      logger,
		searcher:    searcher,
		loader:      staging.NewLoader(db, logger, cfg.Staging),
		transformer: transform.NewTransformer(db, logger),
		games:       repository.NewGameRepository(db),
		runs:        repository.NewRunRepository(db),
	}
}

// RunSummary reports what a pipeline run did.
type RunSummary struct {
	RunUUID       string `json:"run_uuid,omitempty"`
	FilesLoaded   int    `json:"files_loaded"`
	TitlesSeen    int    `json:"titles_seen"`
	GamesUpserted int    `json:"games_upserted"`
	Status        string `json:"status"`
}

// Run executes every stage and returns the summary. Stage failures downgrade
// the run status but never abort the remaining stages; only a missing
// connection would have stopped things earlier, at Open time.
func (p *Pipeline) Run(ctx context.Context) *RunSummary {
	run, err := p.runs.Begin(ctx)
	if err != nil {
		p.logger.WithError(err).Error("begin run audit record")
	}

	status := "finished"
	filesLoaded, err := p.loader.Load(ctx)
	if err != nil {
		p.logger.WithError(err).Error("staging load stage")
		status = "failed"
	}

	if err := p.transformer.LoadBroadcasters(ctx); err != nil {
		p.logger.WithError(err).Error("broadcasters stage")
		status = "failed"
	}
	if err := p.transformer.LoadTime(ctx); err != nil {
		p.logger.WithError(err).Error("time stage")
		status = "failed"
	}

	titlesSeen, gamesUpserted := p.enrichGames(ctx)

	if err := p.transformer.LoadStreams(ctx); err != nil {
		p.logger.WithError(err).Error("streams stage")
		status = "failed"
	}

	summary := &RunSummary{
		FilesLoaded:   filesLoaded,
		TitlesSeen:    titlesSeen,
		GamesUpserted: gamesUpserted,
		Status:        status,
	}
	if run != nil {
		run.FilesLoaded = filesLoaded
		run.TitlesSeen = titlesSeen
		run.GamesUpserted = gamesUpserted
		if err := p.runs.Finish(ctx, run, status); err != nil {
			p.logger.WithError(err).Error("finish run audit record")
		}
		summary.RunUUID = run.RunUUID
	}
	p.logger.WithFields(logrus.Fields{
		"files_loaded":   filesLoaded,
		"titles_seen":    titlesSeen,
		"games_upserted": gamesUpserted,
		"status":         status,
	}).Info("pipeline run complete")
	return summary
}

// enrichGames looks up every distinct staging title and upserts a game row
// per successful match. Enrichment is best-effort per title: no match,
// missing identity or a lookup error just skip that title.
func (p *Pipeline) enrichGames(ctx context.Context) (titlesSeen, gamesUpserted int) {
	titles, err := p.transformer.DistinctGameTitles(ctx)
	if err != nil {
		p.logger.WithError(err).Error("games stage")
		return 0, 0
	}
	p.logger.Infof("enriching %d game titles", len(titles))

	for _, title := range titles {
		lookup, err := p.searcher.Search(ctx, title)
		if err != nil {
			p.logger.WithError(err).Debugf("lookup failed for %q", title)
			continue
		}
		if !lookup.HasIdentity() {
			continue
		}
		if err := p.games.Upsert(ctx, buildGame(title, lookup)); err != nil {
			p.logger.WithError(err).Errorf("upsert game for %q", title)
			continue
		}
		gamesUpserted++
	}
	p.logger.Info("loaded games dimension table")
	return len(titles), gamesUpserted
}

// buildGame maps a lookup onto a game row. The stored title is the original
// staging title, not the normalized query, so the fact join keeps working.
func buildGame(title string, lookup *model.GameLookup) *model.Game {
	game := &model.Game{
		GameID:    strconv.FormatInt(*lookup.ID, 10),
		GameSlug:  *lookup.Slug,
		GameTitle: title,
		Metadata:  datatypes.JSON(lookup.Raw),
	}
	if lookup.HasRelease() {
		if released, err := time.Parse("2006-01-02", *lookup.Released); err == nil {
			game.ReleaseDate = &released
		}
	}
	if lookup.HasRating() {
		rating := lookup.Rating
		game.Rating = &rating
	}
	if lookup.HasRatingCount() {
		game.RatingCount = lookup.RatingsCount
	}
	return game
}

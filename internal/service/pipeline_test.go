package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TwitchWarehouse/internal/config"
	"TwitchWarehouse/internal/model"
	"TwitchWarehouse/internal/repository"
)

type fakeSearcher struct {
	lookups map[string]*model.GameLookup
	errs    map[string]error
	calls   []string
}

func (f *fakeSearcher) Search(_ context.Context, title string) (*model.GameLookup, error) {
	f.calls = append(f.calls, title)
	if err := f.errs[title]; err != nil {
		return nil, err
	}
	return f.lookups[title], nil
}

func lookup(id int64, slug string) *model.GameLookup {
	l := &model.GameLookup{ID: &id, Slug: &slug}
	l.Raw, _ = json.Marshal(map[string]any{"id": id, "slug": slug})
	return l
}

func newTestPipeline(searcher *fakeSearcher, staging config.StagingConfig) *Pipeline {
	cfg := &config.Config{Staging: staging}
	return NewPipeline(testDB, testLogger, cfg, searcher)
}

func TestEnrichGames_BestEffortPerTitle(t *testing.T) {
	resetTables(t)
	seedStaging(t, []model.StagingStream{
		stagingRow(1, 10, "Foo", "2021-01-02T03:04:05Z", 9, "B"),
		stagingRow(2, 20, "No Match", "2021-01-02T03:04:05Z", 9, "B"),
		stagingRow(3, 30, "No Slug", "2021-01-02T03:04:05Z", 9, "B"),
		stagingRow(4, 40, "Broken", "2021-01-02T03:04:05Z", 9, "B"),
	})

	noSlug := &model.GameLookup{ID: ptr(int64(7))}
	searcher := &fakeSearcher{
		lookups: map[string]*model.GameLookup{"Foo": lookup(42, "foo"), "No Slug": noSlug},
		errs:    map[string]error{"Broken": errors.New("lookup exploded")},
	}
	p := newTestPipeline(searcher, config.StagingConfig{})

	titlesSeen, gamesUpserted := p.enrichGames(context.Background())
	assert.Equal(t, 4, titlesSeen)
	assert.Equal(t, 1, gamesUpserted)
	assert.Len(t, searcher.calls, 4)

	var games []model.Game
	require.NoError(t, testDB.Find(&games).Error)
	require.Len(t, games, 1)
	assert.Equal(t, "42", games[0].GameID)
	assert.Equal(t, "foo", games[0].GameSlug)
	// The original staging title is stored, not the normalized query.
	assert.Equal(t, "Foo", games[0].GameTitle)
	assert.NotEmpty(t, []byte(games[0].Metadata))
}

func TestEnrichGames_RatingGate(t *testing.T) {
	resetTables(t)
	seedStaging(t, []model.StagingStream{
		stagingRow(1, 10, "Rated", "2021-01-02T03:04:05Z", 9, "B"),
		stagingRow(2, 20, "Unrated", "2021-01-02T03:04:05Z", 9, "B"),
	})

	rated := lookup(1, "rated")
	rated.Rating = 4.5
	rated.Ratings = json.RawMessage(`[{"id": 5, "count": 10}]`)
	rated.RatingsCount = ptr(10)
	unrated := lookup(2, "unrated")
	unrated.Rating = 3.0 // value present, gating ratings field absent

	searcher := &fakeSearcher{lookups: map[string]*model.GameLookup{"Rated": rated, "Unrated": unrated}}
	p := newTestPipeline(searcher, config.StagingConfig{})
	p.enrichGames(context.Background())

	var got model.Game
	require.NoError(t, testDB.First(&got, "game_id = ?", "1").Error)
	require.NotNil(t, got.Rating)
	assert.Equal(t, 4.5, *got.Rating)
	require.NotNil(t, got.RatingCount)
	assert.Equal(t, 10, *got.RatingCount)

	require.NoError(t, testDB.First(&got, "game_id = ?", "2").Error)
	assert.Nil(t, got.Rating)
	assert.Nil(t, got.RatingCount)
}

func TestEnrichGames_ConflictTakesLatestLookup(t *testing.T) {
	resetTables(t)
	seedStaging(t, []model.StagingStream{
		stagingRow(1, 10, "Foo", "2021-01-02T03:04:05Z", 9, "B"),
	})

	searcher := &fakeSearcher{lookups: map[string]*model.GameLookup{"Foo": lookup(42, "foo")}}
	p := newTestPipeline(searcher, config.StagingConfig{})
	p.enrichGames(context.Background())

	// A later run resolves a different title to the same external id.
	require.NoError(t, testDB.Exec("TRUNCATE TABLE staging_twitch_dataset").Error)
	seedStaging(t, []model.StagingStream{
		stagingRow(2, 20, "Foo Remastered", "2021-01-02T03:04:05Z", 9, "B"),
	})
	searcher.lookups = map[string]*model.GameLookup{"Foo Remastered": lookup(42, "foo-remastered")}
	p.enrichGames(context.Background())

	var games []model.Game
	require.NoError(t, testDB.Find(&games).Error)
	require.Len(t, games, 1)
	assert.Equal(t, "42", games[0].GameID)
	assert.Equal(t, "foo-remastered", games[0].GameSlug)
	assert.Equal(t, "Foo Remastered", games[0].GameTitle)
}

func TestPipeline_EndToEnd(t *testing.T) {
	resetTables(t)
	seedStaging(t, []model.StagingStream{
		stagingRow(1, 10, "Foo", "2021-01-02T03:04:05Z", 9, "B"),
	})

	searcher := &fakeSearcher{lookups: map[string]*model.GameLookup{"Foo": lookup(42, "foo")}}
	p := newTestPipeline(searcher, config.StagingConfig{})
	ctx := context.Background()

	require.NoError(t, p.transformer.LoadBroadcasters(ctx))
	require.NoError(t, p.transformer.LoadTime(ctx))
	p.enrichGames(ctx)
	require.NoError(t, p.transformer.LoadStreams(ctx))

	var game model.Game
	require.NoError(t, testDB.First(&game, "game_id = ?", "42").Error)

	var slots []model.TimeSlot
	require.NoError(t, testDB.Find(&slots).Error)
	require.Len(t, slots, 1)
	assert.Equal(t, 2021, slots[0].Year)
	assert.Equal(t, 1, slots[0].Month)
	assert.Equal(t, 2, slots[0].Day)
	assert.Equal(t, 3, slots[0].Hour)
	assert.Equal(t, 6, slots[0].Weekday)

	var streams []model.Stream
	require.NoError(t, testDB.Find(&streams).Error)
	require.Len(t, streams, 1)
	assert.EqualValues(t, 1, streams[0].StreamID)
	require.NotNil(t, streams[0].BroadcasterID)
	assert.EqualValues(t, 9, *streams[0].BroadcasterID)
	require.NotNil(t, streams[0].GameID)
	assert.Equal(t, "42", *streams[0].GameID)
	require.NotNil(t, streams[0].TimeID)
	require.NotNil(t, streams[0].Views)
	assert.EqualValues(t, 10, *streams[0].Views)
}

func TestPipelineRun_RecordsAudit(t *testing.T) {
	resetTables(t)

	searcher := &fakeSearcher{}
	p := newTestPipeline(searcher, config.StagingConfig{
		Filepath:  t.TempDir(),
		Delimiter: "|",
	})

	summary := p.Run(context.Background())
	assert.Equal(t, "finished", summary.Status)
	assert.Equal(t, 0, summary.FilesLoaded)
	assert.NotEmpty(t, summary.RunUUID)

	runs, err := repository.NewRunRepository(testDB).List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, summary.RunUUID, runs[0].RunUUID)
	assert.Equal(t, "finished", runs[0].Status)
	assert.NotNil(t, runs[0].FinishedAt)
}

func TestPipelineRun_MissingStagingDirIsFailure(t *testing.T) {
	resetTables(t)

	p := newTestPipeline(&fakeSearcher{}, config.StagingConfig{
		Filepath:  "/nonexistent/staging/dir",
		Delimiter: "|",
	})

	summary := p.Run(context.Background())
	assert.Equal(t, "failed", summary.Status)
}

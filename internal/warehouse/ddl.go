package warehouse

// DatabaseName is the fixed warehouse database. The postgres.database config
// key only names the bootstrap database the admin connection starts from.
const DatabaseName = "twitchy"

const stagingCreation = `
CREATE TABLE staging_twitch_dataset (
    stream_id bigint,
    views bigint,
    stream_time varchar,
    game_title varchar,
    broadcaster_id bigint,
    broadcaster_name varchar,
    delay_setting integer,
    broadcaster_followers bigint,
    partner_status varchar,
    broadcaster_language varchar,
    broadcaster_total_views bigint,
    stream_language varchar,
    broadcaster_created_time varchar,
    playback_bitrate bigint,
    source_resolution varchar,
    empty_col varchar
)
`

const gamesCreation = `
CREATE TABLE games (
    game_id varchar PRIMARY KEY,
    game_slug varchar NOT NULL,
    game_title varchar NOT NULL,
    release_date date,
    rating numeric,
    rating_count int,
    metadata jsonb
)
`

const broadcastersCreation = `
CREATE TABLE broadcasters (
    broadcaster_id bigint PRIMARY KEY,
    broadcaster_name varchar NOT NULL,
    broadcaster_followers bigint,
    broadcaster_language varchar,
    partner_status boolean
)
`

const timeCreation = `
CREATE TABLE time (
    time_id timestamp PRIMARY KEY,
    hour int NOT NULL,
    day int NOT NULL,
    week int NOT NULL,
    month int NOT NULL,
    year int NOT NULL,
    weekday int NOT NULL
)
`

const streamsCreation = `
CREATE TABLE streams (
    stream_id bigint PRIMARY KEY,
    broadcaster_id bigint REFERENCES broadcasters(broadcaster_id),
    game_id varchar REFERENCES games(game_id),
    time_id timestamp REFERENCES time(time_id),
    views bigint,
    delay_setting integer,
    playback_bitrate bigint,
    source_resolution varchar
)
`

const loadRunsCreation = `
CREATE TABLE load_runs (
    run_uuid varchar PRIMARY KEY,
    started_at timestamp NOT NULL,
    finished_at timestamp,
    files_loaded int,
    titles_seen int,
    games_upserted int,
    status varchar
)
`

// Tables in drop order (streams first, it references the dimensions).
var tables = []string{
	"streams",
	"staging_twitch_dataset",
	"games",
	"broadcasters",
	"time",
	"load_runs",
}

// Creation statements in dependency order (dimensions before the fact table).
var creations = []string{
	stagingCreation,
	gamesCreation,
	broadcastersCreation,
	timeCreation,
	streamsCreation,
	loadRunsCreation,
}

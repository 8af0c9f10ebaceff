package transform

// Set-based transform statements. Postgres does the heavy lifting: window
// functions pick one staging row per natural key and ON CONFLICT gives the
// upsert semantics, so re-running a transform never duplicates keys.

// broadcastersInsert keeps, per (broadcaster_id, broadcaster_name), the row
// with the most followers, partner status breaking ties. The -1 sentinel maps
// to NULL for language and to false for partner status.
const broadcastersInsert = `
INSERT INTO broadcasters
SELECT
    broadcaster_id,
    broadcaster_name,
    broadcaster_followers,
    CASE WHEN broadcaster_language = '-1' THEN NULL
        ELSE LOWER(broadcaster_language)
    END broadcaster_language,
    CASE WHEN partner_status = '-1' THEN FALSE ELSE TRUE END partner_status
FROM (
    SELECT *,
        ROW_NUMBER() OVER(
            PARTITION BY broadcaster_id, broadcaster_name
            ORDER BY broadcaster_followers DESC, partner_status DESC
        ) nrow
    FROM staging_twitch_dataset
) s
WHERE nrow = 1
    AND broadcaster_id IS NOT NULL
    AND broadcaster_name IS NOT NULL
ON CONFLICT (broadcaster_id) DO UPDATE SET
    broadcaster_followers = EXCLUDED.broadcaster_followers,
    broadcaster_language = EXCLUDED.broadcaster_language,
    partner_status = EXCLUDED.partner_status
`

// timeInsert derives the calendar attributes from each parsed stream_time.
// Existing slots are skipped, never updated: derived calendar values cannot
// change for a given timestamp.
const timeInsert = `
INSERT INTO time
SELECT
    time_id,
    EXTRACT(hour FROM time_id) AS hour,
    EXTRACT(day FROM time_id) AS day,
    EXTRACT(week FROM time_id) AS week,
    EXTRACT(month FROM time_id) AS month,
    EXTRACT(year FROM time_id) AS year,
    EXTRACT(dow FROM time_id) AS weekday
FROM (
    SELECT
        TO_TIMESTAMP(stream_time, 'YYYY-MM-DDTHH:MI:SSZ') time_id
    FROM staging_twitch_dataset
    WHERE stream_time IS NOT NULL
) t
ON CONFLICT (time_id) DO NOTHING
`

// streamsInsert joins deduplicated staging rows against the populated
// dimensions. The inner join on games silently drops streams whose title
// never got enriched. Only views refreshes on replay.
const streamsInsert = `
INSERT INTO streams
SELECT
    s.stream_id,
    s.broadcaster_id,
    g.game_id,
    TO_TIMESTAMP(s.stream_time, 'YYYY-MM-DDTHH:MI:SSZ') time_id,
    s.views,
    s.delay_setting,
    s.playback_bitrate,
    s.source_resolution
FROM (
    SELECT *,
        ROW_NUMBER() OVER(
            PARTITION BY stream_id
            ORDER BY views DESC
        ) nrow
    FROM staging_twitch_dataset
    WHERE stream_id IS NOT NULL
        AND game_title IS NOT NULL
        AND broadcaster_id IS NOT NULL
        AND broadcaster_name IS NOT NULL
        AND stream_time IS NOT NULL
) s
INNER JOIN games g ON g.game_title = s.game_title
WHERE nrow = 1
ON CONFLICT (stream_id) DO UPDATE SET
    views = EXCLUDED.views
`

// gameTitleSelect feeds the enrichment loop.
const gameTitleSelect = `
SELECT DISTINCT game_title FROM staging_twitch_dataset
WHERE game_title IS NOT NULL
`

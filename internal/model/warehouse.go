package model

import (
	"time"

	"gorm.io/datatypes"
)

// StagingStream is one raw row of the streams dataset. The staging table has
// no constraints; every field may be null or carry the -1 sentinel.
type StagingStream struct {
	StreamID               *int64  `gorm:"column:stream_id"`
	Views                  *int64  `gorm:"column:views"`
	StreamTime             *string `gorm:"column:stream_time"`
	GameTitle              *string `gorm:"column:game_title"`
	BroadcasterID          *int64  `gorm:"column:broadcaster_id"`
	BroadcasterName        *string `gorm:"column:broadcaster_name"`
	DelaySetting           *int32  `gorm:"column:delay_setting"`
	BroadcasterFollowers   *int64  `gorm:"column:broadcaster_followers"`
	PartnerStatus          *string `gorm:"column:partner_status"`
	BroadcasterLanguage    *string `gorm:"column:broadcaster_language"`
	BroadcasterTotalViews  *int64  `gorm:"column:broadcaster_total_views"`
	StreamLanguage         *string `gorm:"column:stream_language"`
	BroadcasterCreatedTime *string `gorm:"column:broadcaster_created_time"`
	PlaybackBitrate        *int64  `gorm:"column:playback_bitrate"`
	SourceResolution       *string `gorm:"column:source_resolution"`
	EmptyCol               *string `gorm:"column:empty_col"`
}

// Broadcaster dimension row, one per broadcaster id.
type Broadcaster struct {
	BroadcasterID        int64   `gorm:"column:broadcaster_id;primaryKey"`
	BroadcasterName      string  `gorm:"column:broadcaster_name;not null"`
	BroadcasterFollowers *int64  `gorm:"column:broadcaster_followers"`
	BroadcasterLanguage  *string `gorm:"column:broadcaster_language"`
	PartnerStatus        *bool   `gorm:"column:partner_status"`
}

// Game dimension row. GameID is the string form of the RAWG numeric id.
// Metadata holds the raw search hit the row was built from.
type Game struct {
	GameID      string         `gorm:"column:game_id;primaryKey"`
	GameSlug    string         `gorm:"column:game_slug;not null"`
	GameTitle   string         `gorm:"column:game_title;not null"`
	ReleaseDate *time.Time     `gorm:"column:release_date"`
	Rating      *float64       `gorm:"column:rating"`
	RatingCount *int           `gorm:"column:rating_count"`
	Metadata    datatypes.JSON `gorm:"column:metadata"`
}

// TimeSlot dimension row, keyed by the parsed stream timestamp. Values are
// derived once and never updated.
type TimeSlot struct {
	TimeID  time.Time `gorm:"column:time_id;primaryKey"`
	Hour    int       `gorm:"column:hour;not null"`
	Day     int       `gorm:"column:day;not null"`
	Week    int       `gorm:"column:week;not null"`
	Month   int       `gorm:"column:month;not null"`
	Year    int       `gorm:"column:year;not null"`
	Weekday int       `gorm:"column:weekday;not null"` // 0=Sunday
}

// Stream fact row referencing the three dimensions.
type Stream struct {
	StreamID         int64      `gorm:"column:stream_id;primaryKey"`
	BroadcasterID    *int64     `gorm:"column:broadcaster_id"`
	GameID           *string    `gorm:"column:game_id"`
	TimeID           *time.Time `gorm:"column:time_id"`
	Views            *int64     `gorm:"column:views"`
	DelaySetting     *int32     `gorm:"column:delay_setting"`
	PlaybackBitrate  *int64     `gorm:"column:playback_bitrate"`
	SourceResolution *string    `gorm:"column:source_resolution"`
}

// LoadRun is the audit record for one pipeline run.
type LoadRun struct {
	RunUUID       string     `gorm:"column:run_uuid;primaryKey"`
	StartedAt     time.Time  `gorm:"column:started_at;not null"`
	FinishedAt    *time.Time `gorm:"column:finished_at"`
	FilesLoaded   int        `gorm:"column:files_loaded"`
	TitlesSeen    int        `gorm:"column:titles_seen"`
	GamesUpserted int        `gorm:"column:games_upserted"`
	Status        string     `gorm:"column:status"` // running/finished/failed
}

func (StagingStream) TableName() string { return "staging_twitch_dataset" }
func (Broadcaster) TableName() string   { return "broadcasters" }
func (Game) TableName() string          { return "games" }
func (TimeSlot) TableName() string      { return "time" }
func (Stream) TableName() string        { return "streams" }
func (LoadRun) TableName() string       { return "load_runs" }

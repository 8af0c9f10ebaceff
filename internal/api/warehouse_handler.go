package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"TwitchWarehouse/internal/repository"
)

// WarehouseHandler serves read access to the star schema.
type WarehouseHandler struct {
	db     *gorm.DB
	games  *repository.GameRepository
	runs   *repository.RunRepository
	logger *logrus.Logger
}

func NewWarehouseHandler(db *gorm.DB, logger *logrus.Logger) *WarehouseHandler {
	return &WarehouseHandler{
		db:     db,
		games:  repository.NewGameRepository(db),
		runs:   repository.NewRunRepository(db),
		logger: logger,
	}
}

// StreamRow is a fact row joined to its dimensions for display.
type StreamRow struct {
	StreamID        int64      `json:"stream_id"`
	BroadcasterID   *int64     `json:"broadcaster_id"`
	BroadcasterName *string    `json:"broadcaster_name"`
	GameID          *string    `json:"game_id"`
	GameTitle       *string    `json:"game_title"`
	TimeID          *time.Time `json:"time_id"`
	Views           *int64     `json:"views"`
}

// ListStreams lists fact rows joined to games and broadcasters, most viewed
// first.
// GET /api/streams?page=1&page_size=20
func (h *WarehouseHandler) ListStreams(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	var rows []StreamRow
	err := h.db.WithContext(c.Request.Context()).Raw(`
		SELECT s.stream_id, s.broadcaster_id, b.broadcaster_name,
		       s.game_id, g.game_title, s.time_id, s.views
		FROM streams s
		LEFT JOIN games g ON g.game_id = s.game_id
		LEFT JOIN broadcasters b ON b.broadcaster_id = s.broadcaster_id
		ORDER BY s.views DESC NULLS LAST, s.stream_id
		LIMIT ? OFFSET ?`, pageSize, (page-1)*pageSize).
		Scan(&rows).Error
	if err != nil {
		h.logger.WithError(err).Error("ListStreams failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "page_size": pageSize, "streams": rows})
}

// ListGames lists enriched games.
// GET /api/games?page=1&page_size=20
func (h *WarehouseHandler) ListGames(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 200 {
		pageSize = 20
	}

	games, err := h.games.List(c.Request.Context(), (page-1)*pageSize, pageSize)
	if err != nil {
		h.logger.WithError(err).Error("ListGames failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"page": page, "page_size": pageSize, "games": games})
}

// ListRuns lists recent pipeline runs.
// GET /api/runs?limit=20
func (h *WarehouseHandler) ListRuns(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit < 1 || limit > 200 {
		limit = 20
	}

	runs, err := h.runs.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.WithError(err).Error("ListRuns failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"runs": runs})
}

// Health is a liveness probe that also checks the DB connection.
// GET /health
func (h *WarehouseHandler) Health(c *gin.Context) {
	sqlDB, err := h.db.DB()
	if err == nil {
		err = sqlDB.Ping()
	}
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "down", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

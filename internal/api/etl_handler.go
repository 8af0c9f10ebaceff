package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"TwitchWarehouse/internal/adapter/rawg"
	"TwitchWarehouse/internal/config"
	"TwitchWarehouse/internal/service"
)

type ETLHandler struct {
	pipeline *service.Pipeline
	logger   *logrus.Logger
}

func NewETLHandler(db *gorm.DB, logger *logrus.Logger, cfg *config.Config) *ETLHandler {
	searcher := rawg.NewClient(&cfg.RAWG, logger)
	return &ETLHandler{
		pipeline: service.NewPipeline(db, logger, cfg, searcher),
		logger:   logger,
	}
}

// RunPipeline triggers a full synchronous pipeline run.
// POST /etl/run
func (h *ETLHandler) RunPipeline(c *gin.Context) {
	summary := h.pipeline.Run(c.Request.Context())
	if summary.Status != "finished" {
		c.JSON(http.StatusInternalServerError, summary)
		return
	}
	c.JSON(http.StatusOK, summary)
}

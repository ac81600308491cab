package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

// Handler serves health and operational endpoints.
type Handler struct {
	db            *sqlx.DB
	redis         *redis.Client
	modelAssisted func() bool
}

func NewHandler(db *sqlx.DB, redisClient *redis.Client, modelAssisted func() bool) *Handler {
	return &Handler{
		db:            db,
		redis:         redisClient,
		modelAssisted: modelAssisted,
	}
}

func (h *Handler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "alive",
		"time":   time.Now(),
	})
}

func (h *Handler) ReadinessCheck(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.db.PingContext(ctx); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "database unreachable",
		})
		return
	}
	if err := h.redis.Ping(ctx).Err(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "not ready",
			"reason": "redis unreachable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "ready",
		"time":   time.Now(),
	})
}

// SystemStatus reports which classification strategy is live.
func (h *Handler) SystemStatus(c *gin.Context) {
	classifier := "rules"
	if h.modelAssisted != nil && h.modelAssisted() {
		classifier = "model"
	}
	c.JSON(http.StatusOK, NewSuccessResponse(gin.H{
		"classifier": classifier,
		"time":       time.Now(),
	}))
}

func (h *Handler) MetricsHandler(c *gin.Context) {
	promhttp.Handler().ServeHTTP(c.Writer, c.Request)
}

package handlers

import (
	"net/http"

	"pasahero-backend/pkg/database"
	pkgredis "pasahero-backend/pkg/redis"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
)

type HealthHandler struct {
	db          *mongo.Database
	redisClient *pkgredis.Client
}

// NewHealthHandler reports component connectivity. The redis client may be
// nil when caching is disabled.
func NewHealthHandler(db *mongo.Database, redisClient *pkgredis.Client) *HealthHandler {
	return &HealthHandler{db: db, redisClient: redisClient}
}

// Health reports mongo and redis connectivity
func (h *HealthHandler) Health(c *gin.Context) {
	status := http.StatusOK
	components := gin.H{}

	if err := database.Health(h.db); err != nil {
		components["mongodb"] = gin.H{"status": "down", "error": err.Error()}
		status = http.StatusServiceUnavailable
	} else {
		components["mongodb"] = gin.H{"status": "up"}
	}

	// Redis is an optimization layer; its loss degrades but does not take
	// the service down.
	if h.redisClient != nil {
		components["redis"] = h.redisClient.HealthCheck()
	} else {
		components["redis"] = gin.H{"status": "disabled"}
	}

	overall := "ok"
	if status != http.StatusOK {
		overall = "degraded"
	}

	c.JSON(status, gin.H{
		"status":     overall,
		"components": components,
	})
}

package handler

import (
	"context"
	"net/http"
	"time"

	"quicknotes/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// HealthHandler reports process and database health.
func HealthHandler(c *gin.Context) {
	status := "healthy"
	mongoStatus := "up"

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()
	if err := utils.MongoClient.Ping(ctx, readpref.Primary()); err != nil {
		status = "degraded"
		mongoStatus = "down"
	}

	body := gin.H{
		"status":         status,
		"mongo":          mongoStatus,
		"cpu_percent":    utils.GetCPUUsage(),
		"memory_percent": utils.GetMemoryUsage(),
		"time":           time.Now().UTC(),
	}

	if status != "healthy" {
		c.JSON(http.StatusServiceUnavailable, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/VishnuMK2006/inventory-management-sub001/internal/worker"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Health returns a JSON health check response.
// Checks DB and Redis connectivity plus the async job backlog; never exposes
// credentials or internals.
func Health(db *gorm.DB, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		dbStatus := "connected"
		sqlDB, err := db.DB()
		if err != nil || sqlDB.PingContext(ctx) != nil {
			dbStatus = "error"
		}

		redisStatus := "connected"
		if rdb.Ping(ctx).Err() != nil {
			redisStatus = "error"
		}

		// Pending jobs across the worker queues. Depth is informational only
		// and never degrades health status; −1 signals the count failed.
		queueDepth := int64(-1)
		if redisStatus == "connected" {
			docs, derr := rdb.LLen(ctx, worker.QueuePurchaseDoc).Result()
			mails, merr := rdb.LLen(ctx, worker.QueueEmail).Result()
			if derr == nil && merr == nil {
				queueDepth = docs + mails
			}
		}

		status := http.StatusOK
		if dbStatus != "connected" || redisStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		c.JSON(status, gin.H{
			"ok":          status == http.StatusOK,
			"db":          dbStatus,
			"redis":       redisStatus,
			"queue_depth": queueDepth,
		})
	}
}

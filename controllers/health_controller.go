package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/thingsinjars/MyHome-sub000/services"
	"github.com/thingsinjars/MyHome-sub000/services/container"
)

// HealthCheckController 健康检查控制器
type HealthCheckController struct {
	Container *container.ServiceContainer
}

// NewHealthCheckController 创建健康检查控制器实例
func NewHealthCheckController(container *container.ServiceContainer) *HealthCheckController {
	return &HealthCheckController{Container: container}
}

// Ping 健康检查端点
func (h *HealthCheckController) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "pong",
		"status":  "healthy",
	})
}

// Status 返回数据库和Redis的连接状态以及连接池统计信息
func (h *HealthCheckController) Status(c *gin.Context) {
	status := "healthy"
	dbStatus := "up"
	redisStatus := "up"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	var poolStats map[string]interface{}
	sqlDB, err := h.Container.GetDB().DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		dbStatus = "down"
		status = "degraded"
	} else {
		stats := sqlDB.Stats()
		poolStats = map[string]interface{}{
			"max_open_connections": stats.MaxOpenConnections,
			"open_connections":     stats.OpenConnections,
			"in_use":               stats.InUse,
			"idle":                 stats.Idle,
			"wait_count":           stats.WaitCount,
			"wait_duration":        stats.WaitDuration.String(),
		}
	}

	redisService := h.Container.GetService("redis").(*services.RedisService)
	if redisService == nil || redisService.Client == nil {
		redisStatus = "down"
	} else if err := redisService.Client.Ping(ctx).Err(); err != nil {
		redisStatus = "down"
	}

	httpStatus := http.StatusOK
	if status != "healthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status": status,
		"database": gin.H{
			"status": dbStatus,
			"pool":   poolStats,
		},
		"redis": gin.H{
			"status": redisStatus,
		},
	})
}

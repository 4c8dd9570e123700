package controller

import (
	"ap_quiz_backend/internal/util"
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger 可做健康检查的依赖
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	Components map[string]Pinger
}

func NewHealthController(components map[string]Pinger) *HealthController {
	return &HealthController{Components: components}
}

// @Summary 健康检查
// @Description 检查结果存储和会话存储的连接状态
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	reqCtx, cancel := context.WithTimeout(ctx.Request.Context(), 3*time.Second)
	defer cancel()

	components := gin.H{}
	healthy := true
	for name, p := range c.Components {
		if err := p.Ping(reqCtx); err != nil {
			components[name] = "down"
			healthy = false
			continue
		}
		components[name] = "up"
	}

	if !healthy {
		ctx.JSON(http.StatusServiceUnavailable, util.Response{
			Code:    http.StatusServiceUnavailable,
			Message: "Dependency unavailable",
			Data:    gin.H{"status": "degraded", "components": components},
		})
		return
	}

	util.Success(ctx, gin.H{
		"status":     "ok",
		"components": components,
	})
}

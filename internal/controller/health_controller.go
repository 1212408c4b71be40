package controller

import (
	"code_tutor_backend/internal/config"
	"code_tutor_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type HealthController struct {
	Config *config.Config
}

func NewHealthController(cfg *config.Config) *HealthController {
	return &HealthController{Config: cfg}
}

// HealthCheck 健康检查
// @Summary 健康检查
// @Description 检查服务状态和上游模型配置情况
// @Tags 系统
// @Produce json
// @Success 200 {object} util.Response
// @Router /health [get]
func (c *HealthController) HealthCheck(ctx *gin.Context) {
	upstream := "configured"
	if c.Config.AI.APIKey == "" || c.Config.AI.BaseURL == "" {
		upstream = "unconfigured"
	}

	util.Success(ctx, gin.H{
		"status": "ok",
		"components": gin.H{
			"upstream_model": upstream,
		},
	})
}

package controller

import (
	"errors"
	"net/http"
	"strconv"

	"code_tutor_backend/internal/model"
	"code_tutor_backend/internal/service"
	"code_tutor_backend/internal/util"
	"code_tutor_backend/pkg/logger"
	"code_tutor_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 对外暴露的用户安全文案，错误细节只进日志
const (
	msgInvalidRequest   = "Invalid request."
	msgEmptyMessage     = "Please enter a message before sending."
	msgAuthFailure      = "The tutor service is not configured correctly. Please contact the administrator."
	msgRateLimited      = "The tutor is handling too many requests right now. Please try again in a moment."
	msgModelUnavailable = "The tutor service is temporarily unavailable. Please try again later."
)

type TutorController struct {
	tutorService *service.TutorService
	goalService  *service.LearningGoalService
}

func NewTutorController(tutorService *service.TutorService, goalService *service.LearningGoalService) *TutorController {
	return &TutorController{
		tutorService: tutorService,
		goalService:  goalService,
	}
}

// Chat 处理一轮导学对话
// @Summary 导学对话
// @Description 把用户消息和会话上下文转给大模型，返回规范化的导学响应
// @Tags Tutor
// @Accept json
// @Produce json
// @Param request body model.ChatRequest true "对话请求"
// @Success 200 {object} model.TutorResponse
// @Router /chat [post]
func (c *TutorController) Chat(ctx *gin.Context) {
	var req model.ChatRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		c.chatError(ctx, req.Language, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	resp, err := c.tutorService.Chat(ctx.Request.Context(), req)
	if err != nil {
		c.mapChatError(ctx, req.Language, err)
		return
	}

	monitoring.ChatRequestCounter.WithLabelValues(req.Language, "200").Inc()
	// 线上契约：成功路径直接返回 TutorResponse 本体
	ctx.JSON(http.StatusOK, resp)
}

// mapChatError 按错误分类映射状态码，响应体只带用户安全文案
func (c *TutorController) mapChatError(ctx *gin.Context, language string, err error) {
	switch {
	case errors.Is(err, util.ErrEmptyMessage):
		c.chatError(ctx, language, http.StatusBadRequest, msgEmptyMessage)
	case errors.Is(err, util.ErrUpstreamAuth):
		c.chatError(ctx, language, http.StatusUnauthorized, msgAuthFailure)
	case errors.Is(err, util.ErrUpstreamRateLimited):
		c.chatError(ctx, language, http.StatusTooManyRequests, msgRateLimited)
	default:
		logger.Log.Error("chat request failed", zap.Error(err))
		c.chatError(ctx, language, http.StatusInternalServerError, msgModelUnavailable)
	}
}

func (c *TutorController) chatError(ctx *gin.Context, language string, status int, message string) {
	monitoring.ChatRequestCounter.WithLabelValues(language, strconv.Itoa(status)).Inc()
	ctx.JSON(status, gin.H{"tutorResponse": message})
}

// Languages 返回支持的编程语言目录
// @Summary 语言目录
// @Tags Tutor
// @Produce json
// @Success 200 {object} util.Response
// @Router /languages [get]
func (c *TutorController) Languages(ctx *gin.Context) {
	util.Success(ctx, model.Languages())
}

// LearningGoals 按语言和水平直接生成学习目标
// @Summary 生成学习目标
// @Tags Tutor
// @Produce json
// @Param language path string true "语言 ID"
// @Param level path string true "水平（Beginner/Intermediate/Advanced/Expert）"
// @Success 200 {object} util.Response
// @Router /learning-goals/{language}/{level} [get]
func (c *TutorController) LearningGoals(ctx *gin.Context) {
	language := ctx.Param("language")
	// 未知水平按 Beginner 处理，未知语言由目标库的回退链兜底
	tier, _ := model.TierFromString(ctx.Param("level"))

	util.Success(ctx, c.goalService.Generate(tier, language))
}

package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"code_tutor_backend/internal/config"
	"code_tutor_backend/internal/util"
	"code_tutor_backend/pkg/logger"
	"code_tutor_backend/pkg/monitoring"

	"go.uber.org/zap"
)

// Completer 上游模型的唯一能力：给一段 prompt，返回一段文本。
// 测试里用确定性桩实现替换。
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// AIService 调用 OpenAI 兼容的 /chat/completions 接口
type AIService struct {
	mu     sync.RWMutex
	config config.AIConfig
	client *http.Client
}

func NewAIService(cfg config.AIConfig) *AIService {
	return &AIService{
		config: cfg,
		client: &http.Client{Timeout: cfg.Timeout()},
	}
}

// UpdateConfig 配置热更新回调入口
func (s *AIService) UpdateConfig(cfg config.AIConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.config = cfg
	s.client = &http.Client{Timeout: cfg.Timeout()}
}

type AIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatCompletionRequest struct {
	Model    string          `json:"model"`
	Messages []AIChatMessage `json:"messages"`
}

type ChatCompletionResponse struct {
	Choices []struct {
		Message AIChatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Complete 发送 prompt 并返回模型原始文本。
// 上游失败按错误分类映射为哨兵错误，详细信息只进服务端日志；
// 等待时间由 http.Client 超时和 ctx 双重限定。
func (s *AIService) Complete(ctx context.Context, prompt string) (string, error) {
	s.mu.RLock()
	cfg := s.config
	client := s.client
	s.mu.RUnlock()

	reqBody := ChatCompletionRequest{
		Model: cfg.Model,
		Messages: []AIChatMessage{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.BaseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+cfg.APIKey)

	start := time.Now()
	resp, err := client.Do(req)
	monitoring.UpstreamDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		logger.Log.Error("AI request failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", util.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		logger.Log.Error("AI API error",
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(body)))

		switch resp.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			return "", fmt.Errorf("%w: status %d", util.ErrUpstreamAuth, resp.StatusCode)
		case http.StatusTooManyRequests:
			return "", fmt.Errorf("%w: status %d", util.ErrUpstreamRateLimited, resp.StatusCode)
		default:
			return "", fmt.Errorf("%w: status %d", util.ErrUpstreamUnavailable, resp.StatusCode)
		}
	}

	var result ChatCompletionResponse
	if err := json.Unmarshal(body, &result); err != nil {
		logger.Log.Error("AI response decode failed", zap.Error(err))
		return "", fmt.Errorf("%w: %v", util.ErrUpstreamUnavailable, err)
	}

	if result.Error != nil {
		logger.Log.Error("AI API returned error", zap.String("message", result.Error.Message))
		return "", fmt.Errorf("%w: %s", util.ErrUpstreamUnavailable, result.Error.Message)
	}

	if len(result.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices returned", util.ErrUpstreamUnavailable)
	}

	return result.Choices[0].Message.Content, nil
}

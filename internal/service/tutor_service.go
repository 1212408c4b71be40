package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"code_tutor_backend/internal/config"
	"code_tutor_backend/internal/model"
	"code_tutor_backend/internal/util"
	"code_tutor_backend/pkg/logger"
	"code_tutor_backend/pkg/monitoring"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"
)

// tutorResponseSchema 严格解析模型输出用的 JSON Schema。
// 只强制 tutorResponse 必填，其余字段出现时校验类型、缺失时由
// normalize 补默认值。与 promptTemplate 里的格式描述保持一致。
const tutorResponseSchema = `{
  "type": "object",
  "required": ["tutorResponse"],
  "properties": {
    "tutorResponse": {"type": "string"},
    "codeExample": {"type": ["string", "null"]},
    "explanation": {"type": ["string", "null"]},
    "feedback": {
      "type": "object",
      "properties": {
        "positive": {"type": "array", "items": {"type": "string"}},
        "suggestions": {"type": "array", "items": {"type": "string"}},
        "concepts": {"type": "array", "items": {"type": "string"}}
      }
    },
    "skillAnalysis": {
      "type": "object",
      "properties": {
        "accuracy": {"type": "integer"},
        "detectedLevel": {"type": "string"},
        "strengths": {"type": "array", "items": {"type": "string"}},
        "improvements": {"type": "array", "items": {"type": "string"}}
      }
    },
    "conceptsUsed": {"type": "array", "items": {"type": "string"}},
    "progressNotes": {"type": "string"},
    "nextSteps": {"type": "string"}
  }
}`

// 解析失败时的兜底反馈内容，保证会话不因格式问题中断
const (
	fallbackPositive   = "You're showing great curiosity about programming!"
	fallbackSuggestion = "Try asking about specific programming concepts or code examples."
	fallbackConcept    = "general programming"
	fallbackNotes      = "Keep up the great work, every question moves you forward!"
	fallbackNextSteps  = "Keep practicing and asking questions."
)

// TutorService 编排一次导学问答：
// 检测水平 → 生成目标 → 构造 prompt → 调模型 → 规范化输出
type TutorService struct {
	ai     Completer
	goals  *LearningGoalService
	cfg    config.TutorConfig
	schema *jsonschema.Schema
}

func NewTutorService(ai Completer, goals *LearningGoalService, cfg config.TutorConfig) *TutorService {
	if cfg.FallbackAccuracy <= 0 {
		cfg.FallbackAccuracy = 75
	}
	if cfg.HistoryWindow <= 0 {
		cfg.HistoryWindow = 5
	}
	return &TutorService{
		ai:     ai,
		goals:  goals,
		cfg:    cfg,
		schema: mustCompileSchema(),
	}
}

func mustCompileSchema() *jsonschema.Schema {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(tutorResponseSchema))
	if err != nil {
		panic(fmt.Sprintf("parse tutor response schema: %v", err))
	}

	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://tutor_response.json", doc); err != nil {
		panic(fmt.Sprintf("add tutor response schema: %v", err))
	}
	schema, err := c.Compile("schema://tutor_response.json")
	if err != nil {
		panic(fmt.Sprintf("compile tutor response schema: %v", err))
	}
	return schema
}

// Chat 处理一次用户消息。空消息在调用上游前拒绝；
// 上游错误原样上抛由 controller 映射状态码；
// 模型输出不合法不算错误，走兜底响应。
func (s *TutorService) Chat(ctx context.Context, req model.ChatRequest) (*model.TutorResponse, error) {
	if strings.TrimSpace(req.Message) == "" {
		return nil, util.ErrEmptyMessage
	}

	lang := model.LanguageOrDefault(req.Language)

	messageCount, conceptsCount := profileCounts(req)
	tier := DetectLevel(messageCount, conceptsCount)
	goals := s.goals.Generate(tier, lang.ID)

	prompt := BuildPrompt(lang, tier, goals, req.Lesson, req.History, req.Message, s.cfg.HistoryWindow)

	raw, err := s.ai.Complete(ctx, prompt)
	if err != nil {
		return nil, err
	}

	return s.Normalize(raw, tier), nil
}

// profileCounts 取分级器的两个输入。客户端带了画像就用画像里的
// 累计值，否则退化为用本次请求携带的历史长度估计。
func profileCounts(req model.ChatRequest) (int, int) {
	if req.UserProfile != nil {
		return req.UserProfile.TotalMessages, len(req.UserProfile.ConceptsLearned)
	}
	return len(req.History), 0
}

// Normalize 把模型原始文本转成满足线上契约的 TutorResponse。
// 解析成功则修补可选字段；失败则构造确定性兜底对象，绝不向上抛错。
// 这是服务端边界最重要的正确性保证。
func (s *TutorService) Normalize(raw string, tier model.ProficiencyTier) *model.TutorResponse {
	if resp, ok := s.parseStrict(raw); ok {
		return repair(resp, tier)
	}

	monitoring.FallbackCounter.Inc()
	logger.Log.Warn("model output not parseable, using fallback",
		zap.Int("raw_len", len(raw)))
	return s.fallback(raw, tier)
}

func (s *TutorService) parseStrict(raw string) (*model.TutorResponse, bool) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(raw))
	if err != nil {
		return nil, false
	}
	if err := s.schema.Validate(doc); err != nil {
		return nil, false
	}

	var resp model.TutorResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, false
	}
	return &resp, true
}

// repair 补齐缺失的可选字段，保证客户端解引用的每个字段都存在
func repair(resp *model.TutorResponse, tier model.ProficiencyTier) *model.TutorResponse {
	if resp.Feedback.Positive == nil {
		resp.Feedback.Positive = []string{}
	}
	if resp.Feedback.Suggestions == nil {
		resp.Feedback.Suggestions = []string{}
	}
	if resp.Feedback.Concepts == nil {
		resp.Feedback.Concepts = []string{}
	}
	if resp.SkillAnalysis.Strengths == nil {
		resp.SkillAnalysis.Strengths = []string{}
	}
	if resp.SkillAnalysis.Improvements == nil {
		resp.SkillAnalysis.Improvements = []string{}
	}
	if resp.ConceptsUsed == nil {
		resp.ConceptsUsed = []string{}
	}
	if resp.SkillAnalysis.DetectedLevel == "" {
		resp.SkillAnalysis.DetectedLevel = string(tier)
	}
	if resp.SkillAnalysis.Accuracy < 0 {
		resp.SkillAnalysis.Accuracy = 0
	}
	if resp.SkillAnalysis.Accuracy > 100 {
		resp.SkillAnalysis.Accuracy = 100
	}
	return resp
}

// fallback 确定性兜底：用户仍能看到模型的原话，其余字段给固定鼓励内容
func (s *TutorService) fallback(raw string, tier model.ProficiencyTier) *model.TutorResponse {
	return &model.TutorResponse{
		TutorResponse: raw,
		CodeExample:   nil,
		Explanation:   nil,
		Feedback: model.Feedback{
			Positive:    []string{fallbackPositive},
			Suggestions: []string{fallbackSuggestion},
			Concepts:    []string{fallbackConcept},
		},
		SkillAnalysis: model.SkillAnalysis{
			Accuracy:      s.cfg.FallbackAccuracy,
			DetectedLevel: string(tier),
			Strengths:     []string{},
			Improvements:  []string{},
		},
		ConceptsUsed:  []string{fallbackConcept},
		ProgressNotes: fallbackNotes,
		NextSteps:     fallbackNextSteps,
	}
}

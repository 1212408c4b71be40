package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"code_tutor_backend/internal/model"
)

// promptTemplate 发送给上游模型的指令模板。
// 其中的输出格式描述与 tutorResponseSchema 必须保持一致：
// 改这里的字段就要同步改 schema 和 model.TutorResponse。
const promptTemplate = `
You are an expert programming tutor specializing in %[1]s. You're helping someone learn programming concepts.

Current language: %[1]s
User's proficiency level: %[2]s
Learning goals: %[3]s
Lesson mode: %[4]t
Conversation history: %[5]s

Current user message: "%[6]s"

Respond with a JSON object in this exact format:
{
  "tutorResponse": "Your encouraging and educational response about %[1]s. %[7]s Be specific and practical.",
  "codeExample": "If relevant, provide a short code example in %[1]s (or null if not needed)",
  "explanation": "Brief explanation of the code example (or null if no code)",
  "feedback": {
    "positive": ["Positive aspects of their understanding or question"],
    "suggestions": ["Helpful suggestions for improvement or next steps"],
    "concepts": ["Key programming concepts mentioned or should be learned"]
  },
  "skillAnalysis": {
    "accuracy": 85,
    "detectedLevel": "%[2]s",
    "strengths": ["Areas they understand well"],
    "improvements": ["Areas to focus on next"]
  },
  "conceptsUsed": ["programming", "concepts", "they", "mentioned"],
  "progressNotes": "Brief encouraging note about their programming progress",
  "nextSteps": "Suggestion for what to learn or practice next"
}

Your entire response MUST be valid JSON only. DO NOT include any text outside the JSON structure.
`

// BuildPrompt 把语言元数据、检测水平、目标、模式、截断后的历史和当前消息
// 拼成一条完整指令。纯字符串构造，无副作用。
// 调用方保证 message 去空白后非空；history 超过 window 时只保留最近的条目。
func BuildPrompt(lang model.LanguageMeta, tier model.ProficiencyTier, goals []model.LearningGoal, lessonMode bool, history []model.ChatMessage, message string, historyWindow int) string {
	if historyWindow > 0 && len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	if history == nil {
		history = []model.ChatMessage{}
	}
	// 历史固定序列化为 [{sender,text}] 数组
	historyJSON, _ := json.Marshal(history)

	goalTexts := make([]string, 0, len(goals))
	for _, g := range goals {
		goalTexts = append(goalTexts, g.Text)
	}

	modeDirective := "Keep the conversation natural and answer their questions."
	if lessonMode {
		modeDirective = "Focus on teaching specific concepts with examples."
	}

	return fmt.Sprintf(promptTemplate,
		lang.Name,
		tier,
		strings.Join(goalTexts, ", "),
		lessonMode,
		string(historyJSON),
		message,
		modeDirective,
	)
}

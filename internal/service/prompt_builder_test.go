package service

import (
	"strings"
	"testing"

	"code_tutor_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPromptEmbedsLanguageAndMessage(t *testing.T) {
	lang := model.LanguageOrDefault("python")
	prompt := BuildPrompt(lang, model.TierBeginner, nil, false, nil,
		"How do I write a hello world program?", 5)

	assert.Contains(t, prompt, "Python")
	assert.Contains(t, prompt, `"How do I write a hello world program?"`)
	assert.Contains(t, prompt, "User's proficiency level: Beginner")
	assert.Contains(t, prompt, "Conversation history: []")
}

func TestBuildPromptContainsSchemaDirective(t *testing.T) {
	lang := model.LanguageOrDefault("rust")
	prompt := BuildPrompt(lang, model.TierAdvanced, nil, false, nil, "hi", 5)

	// prompt 里的输出格式描述要与解析端 schema 的字段一致
	for _, field := range []string{
		`"tutorResponse"`, `"codeExample"`, `"explanation"`, `"feedback"`,
		`"positive"`, `"suggestions"`, `"concepts"`,
		`"skillAnalysis"`, `"accuracy"`, `"detectedLevel"`,
		`"conceptsUsed"`, `"progressNotes"`, `"nextSteps"`,
	} {
		assert.Contains(t, prompt, field)
	}
	assert.Contains(t, prompt, "MUST be valid JSON only")
}

func TestBuildPromptLessonMode(t *testing.T) {
	lang := model.LanguageOrDefault("java")

	lesson := BuildPrompt(lang, model.TierBeginner, nil, true, nil, "hi", 5)
	assert.Contains(t, lesson, "Lesson mode: true")
	assert.Contains(t, lesson, "Focus on teaching specific concepts with examples.")

	chat := BuildPrompt(lang, model.TierBeginner, nil, false, nil, "hi", 5)
	assert.Contains(t, chat, "Lesson mode: false")
	assert.Contains(t, chat, "Keep the conversation natural and answer their questions.")
}

func TestBuildPromptEmbedsGoals(t *testing.T) {
	goals := []model.LearningGoal{
		{ID: "1", Text: "Learn basic syntax"},
		{ID: "2", Text: "Understand functions"},
	}
	prompt := BuildPrompt(model.LanguageOrDefault("python"), model.TierBeginner, goals, false, nil, "hi", 5)

	assert.Contains(t, prompt, "Learning goals: Learn basic syntax, Understand functions")
}

func TestBuildPromptTrimsHistoryToWindow(t *testing.T) {
	history := []model.ChatMessage{
		{Sender: model.SenderUser, Text: "oldest question"},
		{Sender: model.SenderTutor, Text: "old answer"},
		{Sender: model.SenderUser, Text: "q3"},
		{Sender: model.SenderTutor, Text: "a3"},
		{Sender: model.SenderUser, Text: "q4"},
		{Sender: model.SenderTutor, Text: "a4"},
		{Sender: model.SenderUser, Text: "latest question"},
	}

	prompt := BuildPrompt(model.LanguageOrDefault("python"), model.TierBeginner, nil, false, history, "hi", 5)

	// 只保留最近 5 条，旧条目被丢弃不算错误
	require.NotContains(t, prompt, "oldest question")
	require.NotContains(t, prompt, "old answer")
	assert.Contains(t, prompt, "latest question")
	assert.Contains(t, prompt, `{"sender":"user","text":"q3"}`)
}

func TestBuildPromptHistorySerializedAsSenderText(t *testing.T) {
	history := []model.ChatMessage{{Sender: model.SenderUser, Text: "what is a loop?"}}
	prompt := BuildPrompt(model.LanguageOrDefault("golang"), model.TierBeginner, nil, false, history, "hi", 5)

	idx := strings.Index(prompt, `[{"sender":"user","text":"what is a loop?"}]`)
	assert.GreaterOrEqual(t, idx, 0)
}

package model

import "time"

// ProficiencyTier 用户编程水平，从低到高排序
type ProficiencyTier string

const (
	TierBeginner     ProficiencyTier = "Beginner"
	TierIntermediate ProficiencyTier = "Intermediate"
	TierAdvanced     ProficiencyTier = "Advanced"
	TierExpert       ProficiencyTier = "Expert"
)

var tierOrder = map[ProficiencyTier]int{
	TierBeginner:     0,
	TierIntermediate: 1,
	TierAdvanced:     2,
	TierExpert:       3,
}

// Rank 返回水平在全序中的位置，未知水平按 Beginner 处理
func (t ProficiencyTier) Rank() int {
	return tierOrder[t]
}

// TierFromString 解析水平字符串，未知值返回 Beginner 和 false
func TierFromString(s string) (ProficiencyTier, bool) {
	t := ProficiencyTier(s)
	if _, ok := tierOrder[t]; ok {
		return t, true
	}
	return TierBeginner, false
}

const (
	SenderUser  = "user"
	SenderTutor = "tutor"
)

// ChatMessage 会话历史中的一条消息（上行只带发送方和文本）
type ChatMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// Message 客户端会话中的完整消息，创建后不再修改
type Message struct {
	ID          string    `json:"id"`
	Sender      string    `json:"sender"`
	Text        string    `json:"text"`
	Timestamp   time.Time `json:"timestamp"`
	CodeExample *string   `json:"codeExample,omitempty"`
	Explanation *string   `json:"explanation,omitempty"`
}

// LearningGoal 学习目标，由目标生成器创建，进度由会话追踪器更新
type LearningGoal struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Progress  int    `json:"progress"`
	Completed bool   `json:"completed"`
}

// UserProfile 用户画像，切换语言时整体重置
type UserProfile struct {
	ProficiencyLevel ProficiencyTier `json:"proficiencyLevel"`
	TotalMessages    int             `json:"totalMessages"`
	ConceptsLearned  []string        `json:"conceptsLearned"`
	CodeAccuracy     int             `json:"codeAccuracy"`
}

// ChatRequest POST /api/chat 的请求体
type ChatRequest struct {
	Language    string        `json:"language"`
	Lesson      bool          `json:"lesson"`
	History     []ChatMessage `json:"history"`
	Message     string        `json:"message"`
	UserProfile *UserProfile  `json:"userProfile,omitempty"`
}

// Feedback 模型对用户本轮消息的反馈
type Feedback struct {
	Positive    []string `json:"positive"`
	Suggestions []string `json:"suggestions"`
	Concepts    []string `json:"concepts"`
}

// SkillAnalysis 模型对用户能力的评估
type SkillAnalysis struct {
	Accuracy      int      `json:"accuracy"`
	DetectedLevel string   `json:"detectedLevel"`
	Strengths     []string `json:"strengths"`
	Improvements  []string `json:"improvements"`
}

// TutorResponse 返回给客户端的规范化响应。
// 线上契约：客户端会解引用的字段必须全部存在，缺失时补空切片。
type TutorResponse struct {
	TutorResponse string        `json:"tutorResponse"`
	CodeExample   *string       `json:"codeExample"`
	Explanation   *string       `json:"explanation"`
	Feedback      Feedback      `json:"feedback"`
	SkillAnalysis SkillAnalysis `json:"skillAnalysis"`
	ConceptsUsed  []string      `json:"conceptsUsed"`
	ProgressNotes string        `json:"progressNotes"`
	NextSteps     string        `json:"nextSteps"`
}

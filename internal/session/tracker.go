// Package session 维护单个学习会话的客户端状态：消息序列、用户画像、
// 学习目标和进度时间线。每次 Apply 是一次整体折叠，原子地消费一条
// 规范化后的 TutorResponse。
package session

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"code_tutor_backend/internal/model"

	"github.com/google/uuid"
)

const (
	// DefaultSnapshotEvery 每 N 条助教回复采一次进度快照
	DefaultSnapshotEvery = 3
	// DefaultMaxPoints 每条进度序列最多保留的点数
	DefaultMaxPoints = 10
	// goalProgressStep 反馈概念命中目标文本时的进度增量
	goalProgressStep = 25
)

// TransportFailureMessage 请求链路失败时以助教身份展示的固定致歉语
const TransportFailureMessage = "I'm having trouble responding right now. Let's keep coding! Try asking about specific programming concepts or code examples."

// ErrStaleResponse 响应到达时语言已切换，为保护概念集合不回退而丢弃
var ErrStaleResponse = errors.New("response belongs to a previous language session")

// Series 三条有界进度序列，只在快照节拍上增长
type Series struct {
	ConceptsLearned []int `json:"conceptsLearned"`
	CodeAccuracy    []int `json:"codeAccuracy"`
	ProblemsSolved  []int `json:"problemsSolved"`
}

// State 一个语言会话的全部可变状态。
// 互斥锁保证 Apply 的各步不会与并发响应交错。
type State struct {
	mu sync.Mutex

	language      string
	tier          model.ProficiencyTier
	totalMessages int
	concepts      map[string]struct{}
	codeAccuracy  int

	goals    []model.LearningGoal
	messages []model.Message
	series   Series

	// SnapshotEvery/MaxPoints 可在 NewState 之后调整，默认取原始产品值
	SnapshotEvery int
	MaxPoints     int

	now func() time.Time
}

func NewState(languageID string, goals []model.LearningGoal) *State {
	return &State{
		language:      languageID,
		tier:          model.TierBeginner,
		concepts:      make(map[string]struct{}),
		goals:         append([]model.LearningGoal(nil), goals...),
		SnapshotEvery: DefaultSnapshotEvery,
		MaxPoints:     DefaultMaxPoints,
		now:           time.Now,
	}
}

// Apply 折叠一条规范化响应。languageID 是响应对应的会话语言，
// 与当前语言不一致说明是切换前发出的旧请求，直接丢弃。
func (s *State) Apply(languageID, userText string, resp *model.TutorResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if languageID != s.language {
		return ErrStaleResponse
	}

	// 1. 追加用户消息、助教消息，代码示例单独成一条
	s.appendMessage(model.SenderUser, userText, nil, nil)
	s.appendMessage(model.SenderTutor, resp.TutorResponse, resp.CodeExample, resp.Explanation)
	if resp.CodeExample != nil {
		s.appendMessage(model.SenderTutor, *resp.CodeExample, nil, resp.Explanation)
	}

	// 2. 概念集合并集（大小写敏感，精确去重）
	for _, c := range resp.ConceptsUsed {
		s.concepts[c] = struct{}{}
	}

	// 3. 画像以模型评估为准
	if tier, ok := model.TierFromString(resp.SkillAnalysis.DetectedLevel); ok {
		s.tier = tier
	}
	s.codeAccuracy = resp.SkillAnalysis.Accuracy

	// 4.
	s.totalMessages++

	// 5. 反馈概念与目标文本做大小写不敏感的子串匹配
	s.advanceGoals(resp.Feedback.Concepts)

	// 6. 快照节拍
	if s.totalMessages%s.SnapshotEvery == 0 {
		s.snapshot()
	}

	return nil
}

func (s *State) appendMessage(sender, text string, codeExample, explanation *string) {
	s.messages = append(s.messages, model.Message{
		ID:          uuid.NewString(),
		Sender:      sender,
		Text:        text,
		Timestamp:   s.now(),
		CodeExample: codeExample,
		Explanation: explanation,
	})
}

func (s *State) advanceGoals(concepts []string) {
	for i := range s.goals {
		g := &s.goals[i]
		if g.Completed || g.Progress >= 100 {
			continue
		}
		for _, c := range concepts {
			if c == "" {
				continue
			}
			if strings.Contains(strings.ToLower(g.Text), strings.ToLower(c)) {
				g.Progress += goalProgressStep
				if g.Progress > 100 {
					g.Progress = 100
				}
				break
			}
		}
	}
}

func (s *State) snapshot() {
	s.series.ConceptsLearned = pushPoint(s.series.ConceptsLearned, len(s.concepts), s.MaxPoints)
	s.series.CodeAccuracy = pushPoint(s.series.CodeAccuracy, s.codeAccuracy, s.MaxPoints)
	s.series.ProblemsSolved = pushPoint(s.series.ProblemsSolved, s.totalMessages/3, s.MaxPoints)
}

func pushPoint(points []int, v, max int) []int {
	points = append(points, v)
	if len(points) > max {
		points = points[len(points)-max:]
	}
	return points
}

// SwitchLanguage 切换语言：清空消息和画像，换上新目标。
// 这是概念集合唯一允许缩小的时机。
func (s *State) SwitchLanguage(languageID string, goals []model.LearningGoal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.language = languageID
	s.messages = nil
	s.concepts = make(map[string]struct{})
	s.totalMessages = 0
	s.codeAccuracy = 0
	s.tier = model.TierBeginner
	s.goals = append([]model.LearningGoal(nil), goals...)
}

// RecordTransportFailure 请求链路失败：只追加一条致歉消息，
// 不触碰画像和进度序列，会话保持可用。
func (s *State) RecordTransportFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendMessage(model.SenderTutor, TransportFailureMessage, nil, nil)
}

// ToggleGoal 翻转目标完成态。置为完成时进度强制 100，
// 取消完成时进度保持不变。目标不存在返回 false。
func (s *State) ToggleGoal(goalID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.goals {
		if s.goals[i].ID != goalID {
			continue
		}
		s.goals[i].Completed = !s.goals[i].Completed
		if s.goals[i].Completed {
			s.goals[i].Progress = 100
		}
		return true
	}
	return false
}

// AddGoal 追加一条自定义目标，返回其 ID
func (s *State) AddGoal(text string) model.LearningGoal {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := model.LearningGoal{
		ID:        uuid.NewString(),
		Text:      text,
		Progress:  0,
		Completed: false,
	}
	s.goals = append(s.goals, goal)
	return goal
}

// Language 当前会话语言
func (s *State) Language() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.language
}

// Profile 当前画像快照，概念集合导出为有序切片
func (s *State) Profile() model.UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()

	concepts := make([]string, 0, len(s.concepts))
	for c := range s.concepts {
		concepts = append(concepts, c)
	}
	sort.Strings(concepts)

	return model.UserProfile{
		ProficiencyLevel: s.tier,
		TotalMessages:    s.totalMessages,
		ConceptsLearned:  concepts,
		CodeAccuracy:     s.codeAccuracy,
	}
}

// ConceptCount 已学概念数
func (s *State) ConceptCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.concepts)
}

// Goals 当前目标列表的副本
func (s *State) Goals() []model.LearningGoal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.LearningGoal(nil), s.goals...)
}

// Messages 消息序列的副本（到达顺序）
func (s *State) Messages() []model.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.Message(nil), s.messages...)
}

// ProgressSeries 进度序列的副本
func (s *State) ProgressSeries() Series {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Series{
		ConceptsLearned: append([]int(nil), s.series.ConceptsLearned...),
		CodeAccuracy:    append([]int(nil), s.series.CodeAccuracy...),
		ProblemsSolved:  append([]int(nil), s.series.ProblemsSolved...),
	}
}

package service

import (
	"math/rand"

	"code_tutor_backend/internal/config"
	"code_tutor_backend/internal/model"

	"github.com/google/uuid"
)

// LearningGoalService 按水平和语言生成学习目标
type LearningGoalService struct {
	maxGoals        int
	initialProgress func() int
}

func NewLearningGoalService(cfg config.TutorConfig) *LearningGoalService {
	maxGoals := cfg.MaxGoals
	if maxGoals <= 0 {
		maxGoals = 3
	}
	return &LearningGoalService{
		maxGoals: maxGoals,
		// 初始进度取 [0,30)，让新目标的进度条不全从零开始
		initialProgress: func() int { return rand.Intn(30) },
	}
}

// goalBank 目标库，按 (水平, 语言) 索引。
// 查找链：(tier, lang) → (Beginner, lang) → (Beginner, python)，
// 因此 Beginner/python 条目必须存在。
var goalBank = map[model.ProficiencyTier]map[string][]string{
	model.TierBeginner: {
		"python": {
			"Learn Python syntax and basic data types",
			"Master print statements and input/output",
			"Understand variables and basic operations",
			"Practice with lists and dictionaries",
			"Write simple functions",
		},
		"javascript": {
			"Learn JavaScript syntax and variables",
			"Master DOM manipulation basics",
			"Understand functions and scope",
			"Practice with arrays and objects",
			"Learn event handling",
		},
		"java": {
			"Learn Java syntax and class structure",
			"Master variables and data types",
			"Understand methods and parameters",
			"Practice with arrays and loops",
			"Learn object-oriented basics",
		},
		"rust": {
			"Learn Rust syntax and ownership",
			"Master variables and mutability",
			"Understand structs and enums",
			"Practice with pattern matching",
			"Learn error handling basics",
		},
	},
	model.TierIntermediate: {
		"python": {
			"Master object-oriented programming",
			"Learn decorators and context managers",
			"Understand list comprehensions",
			"Practice with modules and packages",
			"Learn exception handling",
		},
		"javascript": {
			"Master async/await and promises",
			"Learn ES6+ features",
			"Understand closures and prototypes",
			"Practice with modern frameworks",
			"Learn testing fundamentals",
		},
	},
	model.TierAdvanced: {
		"python": {
			"Master metaclasses and descriptors",
			"Learn performance optimization",
			"Understand concurrency patterns",
			"Practice with advanced libraries",
			"Learn design patterns",
		},
	},
}

// Generate 生成至多 maxGoals 条学习目标，保持目标库顺序。
// 查找链保证任意 (tier, language) 组合都至少产出一条目标。
func (s *LearningGoalService) Generate(tier model.ProficiencyTier, languageID string) []model.LearningGoal {
	texts := lookupGoalTexts(tier, languageID)
	if len(texts) > s.maxGoals {
		texts = texts[:s.maxGoals]
	}

	goals := make([]model.LearningGoal, 0, len(texts))
	for _, text := range texts {
		goals = append(goals, model.LearningGoal{
			ID:        uuid.NewString(),
			Text:      text,
			Progress:  s.initialProgress(),
			Completed: false,
		})
	}
	return goals
}

func lookupGoalTexts(tier model.ProficiencyTier, languageID string) []string {
	if byLang, ok := goalBank[tier]; ok {
		if texts, ok := byLang[languageID]; ok {
			return texts
		}
	}
	if texts, ok := goalBank[model.TierBeginner][languageID]; ok {
		return texts
	}
	return goalBank[model.TierBeginner][model.DefaultLanguageID]
}

package service

import (
	"testing"

	"code_tutor_backend/internal/config"
	"code_tutor_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGoalService() *LearningGoalService {
	s := NewLearningGoalService(config.TutorConfig{MaxGoals: 3})
	s.initialProgress = func() int { return 10 }
	return s
}

func TestGenerateNeverEmptyNeverMoreThanThree(t *testing.T) {
	s := newGoalService()

	tiers := []model.ProficiencyTier{
		model.TierBeginner, model.TierIntermediate, model.TierAdvanced, model.TierExpert,
	}
	languages := []string{"python", "javascript", "java", "rust", "golang", "haskell", ""}

	for _, tier := range tiers {
		for _, lang := range languages {
			goals := s.Generate(tier, lang)
			assert.NotEmpty(t, goals, "tier=%s lang=%q", tier, lang)
			assert.LessOrEqual(t, len(goals), 3, "tier=%s lang=%q", tier, lang)
		}
	}
}

func TestGenerateFallbackChain(t *testing.T) {
	s := newGoalService()

	// (Advanced, rust) 目标库没有条目，回退到 (Beginner, rust)
	goals := s.Generate(model.TierAdvanced, "rust")
	require.Len(t, goals, 3)
	assert.Equal(t, "Learn Rust syntax and ownership", goals[0].Text)

	// 未知语言直接落到 (Beginner, python)
	goals = s.Generate(model.TierExpert, "haskell")
	require.Len(t, goals, 3)
	assert.Equal(t, "Learn Python syntax and basic data types", goals[0].Text)
}

func TestGeneratePreservesBankOrder(t *testing.T) {
	s := newGoalService()

	goals := s.Generate(model.TierIntermediate, "python")
	require.Len(t, goals, 3)
	assert.Equal(t, "Master object-oriented programming", goals[0].Text)
	assert.Equal(t, "Learn decorators and context managers", goals[1].Text)
	assert.Equal(t, "Understand list comprehensions", goals[2].Text)
}

func TestGenerateFreshGoals(t *testing.T) {
	s := newGoalService()

	goals := s.Generate(model.TierBeginner, "python")
	seen := make(map[string]bool)
	for _, g := range goals {
		assert.NotEmpty(t, g.ID)
		assert.False(t, seen[g.ID], "goal id reused")
		seen[g.ID] = true
		assert.False(t, g.Completed)
		assert.Equal(t, 10, g.Progress)
	}

	// 两次生成的目标 ID 不重复
	again := s.Generate(model.TierBeginner, "python")
	for _, g := range again {
		assert.False(t, seen[g.ID], "goal id reused across generations")
	}
}

func TestGenerateDefaultInitialProgressRange(t *testing.T) {
	s := NewLearningGoalService(config.TutorConfig{MaxGoals: 3})

	for i := 0; i < 50; i++ {
		for _, g := range s.Generate(model.TierBeginner, "python") {
			assert.GreaterOrEqual(t, g.Progress, 0)
			assert.Less(t, g.Progress, 30)
		}
	}
}

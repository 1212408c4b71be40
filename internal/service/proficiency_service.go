package service

import "code_tutor_backend/internal/model"

// DetectLevel 根据消息数和已学概念数推断用户水平。
// 规则按顺序匹配，先命中先生效；负数输入按 0 处理。
func DetectLevel(messageCount, conceptsCount int) model.ProficiencyTier {
	if messageCount < 0 {
		messageCount = 0
	}
	if conceptsCount < 0 {
		conceptsCount = 0
	}

	switch {
	case messageCount < 5 || conceptsCount < 5:
		return model.TierBeginner
	case messageCount < 15 || conceptsCount < 15:
		return model.TierIntermediate
	case messageCount < 30 || conceptsCount < 25:
		return model.TierAdvanced
	default:
		return model.TierExpert
	}
}

package aggregate

import (
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/trend"
)

// Nutrition reports tip engagement. Streak figures come from the maintained
// engagement record and are not recomputed; a nil record reports zeros.
func Nutrition(p Params, engagement *report.NutritionEngagement, tipsViewed, tipsAvailable int) report.NutritionSection {
	s := report.NutritionSection{
		TipsViewed:         max(tipsViewed, 0),
		TotalTipsAvailable: max(tipsAvailable, 0),
	}
	if engagement != nil {
		s.CurrentStreak = engagement.CurrentStreak
		s.LongestStreak = engagement.LongestStreak
		s.TotalVisits = engagement.TotalVisits
	}
	s.EngagementScore = trend.EngagementScore(s.CurrentStreak, s.TipsViewed, p.Period.Days())
	return s
}

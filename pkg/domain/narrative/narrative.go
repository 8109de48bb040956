// Package narrative turns computed report sections into a coaching summary
// and an action plan using fixed rules. It performs no I/O and no new
// aggregation; the same sections always produce the same text.
package narrative

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

var printer = message.NewPrinter(language.English)

const moderateConsistency = 40

// Synthesize builds the narrative for a set of sections.
func Synthesize(s report.Sections, t report.Thresholds) report.Narrative {
	return report.Narrative{
		CoachingSummary: summary(s, t),
		ActionPlan:      actionPlan(s, t),
	}
}

func summary(s report.Sections, t report.Thresholds) string {
	var parts []string
	ov := s.Overview

	if ov.TotalUploads == 0 {
		parts = append(parts, "No training videos were uploaded this period.")
	} else {
		parts = append(parts, printer.Sprintf("You uploaded %d training %s across %d %s this period, most often %s.",
			ov.TotalUploads, plural(ov.TotalUploads, "video", "videos"),
			len(ov.ByModule), plural(len(ov.ByModule), "module", "modules"),
			report.DisplayName(ov.MostUsedModule)))
	}

	if ov.AverageScore != nil {
		line := printer.Sprintf("Your average score was %.1f", *ov.AverageScore)
		if ov.ScoreChange != nil {
			line += printer.Sprintf(" (%+.1f vs the previous period)", *ov.ScoreChange)
		}
		parts = append(parts, line+".")
	}

	a := s.Analysis
	switch {
	case a.ScoredUploads > 0 && a.ScoredUploads < t.MinTrendPoints:
		parts = append(parts, "There are not enough scored videos yet to detect a trend.")
	case a.OverallTrend == report.TrendImproving:
		parts = append(parts, "Your scores are trending up across the period.")
	case a.OverallTrend == report.TrendDeclining:
		parts = append(parts, "Your scores slipped over the course of the period.")
	case a.ScoredUploads > 0:
		parts = append(parts, "Your scores held steady.")
	}

	if ov.TotalUploads > 0 {
		b := s.Behavior
		switch {
		case b.ConsistencyScore >= t.GoodConsistency:
			parts = append(parts, printer.Sprintf("Consistency was strong: you trained on %d of %d days.", b.ActiveDays, b.TotalDays))
		case b.ConsistencyScore >= moderateConsistency:
			parts = append(parts, printer.Sprintf("Consistency was moderate: you trained on %d of %d days.", b.ActiveDays, b.TotalDays))
		default:
			parts = append(parts, printer.Sprintf("Consistency was low: you trained on only %d of %d days.", b.ActiveDays, b.TotalDays))
		}
	}

	if c := s.CoachFeedback; c.CoachAnnotations > 0 {
		parts = append(parts, printer.Sprintf("You received %d coach %s from %d %s.",
			c.CoachAnnotations, plural(c.CoachAnnotations, "note", "notes"),
			c.UniqueCoaches, plural(c.UniqueCoaches, "coach", "coaches")))
	}

	return strings.Join(parts, " ")
}

func actionPlan(s report.Sections, t report.Thresholds) []string {
	var plan []string
	declining := s.Analysis.OverallTrend == report.TrendDeclining
	lowConsistency := s.Behavior.ConsistencyScore < t.LowConsistency

	switch {
	case declining && lowConsistency:
		plan = append(plan, "Rebuild your routine: schedule at least three short sessions a week before adding intensity.")
	case declining:
		drill := "your assigned drills"
		if len(s.Analysis.TopDrills) > 0 {
			drill = s.Analysis.TopDrills[0].Label
		}
		plan = append(plan, printer.Sprintf("Scores are dipping. Go back to fundamentals with %s in every session.", drill))
	}

	if lowConsistency && s.Overview.TotalUploads > 0 {
		if s.Behavior.PeakHour != nil {
			plan = append(plan, printer.Sprintf("Block a recurring training slot around %02d:00, when you already train most.", *s.Behavior.PeakHour))
		} else {
			plan = append(plan, "Block a recurring training slot in your week.")
		}
	}

	for _, m := range s.Behavior.UnusedModules {
		plan = append(plan, printer.Sprintf("Upload at least one %s session next period.", report.DisplayName(m)))
	}

	if weakest, ok := weakestModule(s.Modules); ok {
		plan = append(plan, printer.Sprintf("Make %s your focus: it has your lowest average score (%.1f).",
			report.DisplayName(weakest.Module), *weakest.AverageScore))
	}

	for _, m := range s.Modules {
		if len(m.TopIssues) > 0 {
			plan = append(plan, printer.Sprintf("Address the recurring %s issue: %s.", report.DisplayName(m.Module), m.TopIssues[0].Label))
			break
		}
	}

	if s.Nutrition.EngagementScore < t.LowEngagement {
		plan = append(plan, "Open one nutrition tip a day to build your fueling streak.")
	}

	if s.CoachFeedback.CoachAnnotations == 0 && s.Overview.TotalUploads > 0 {
		plan = append(plan, "Share a video with your coach and ask for a review.")
	}

	if d := s.Performance.MonthVsAllTime; d != nil && *d > 0 {
		plan = append(plan, printer.Sprintf("You are %.1f points above your all-time average. Keep the momentum going.", *d))
	}

	if len(plan) == 0 {
		plan = append(plan, "Keep uploading regularly so next period's report can track your progress.")
	}
	if t.MaxActionItems > 0 && len(plan) > t.MaxActionItems {
		plan = plan[:t.MaxActionItems]
	}
	return plan
}

// weakestModule returns the scored module with the lowest average. It needs
// at least two scored modules to compare; ties keep the earlier module.
func weakestModule(modules []report.ModuleReport) (report.ModuleReport, bool) {
	var weakest report.ModuleReport
	scored := 0
	for _, m := range modules {
		if m.AverageScore == nil {
			continue
		}
		if scored == 0 || *m.AverageScore < *weakest.AverageScore {
			weakest = m
		}
		scored++
	}
	return weakest, scored >= 2
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

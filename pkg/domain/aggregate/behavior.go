package aggregate

import (
	"fmt"
	"math"
	"sort"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/trend"
)

const dayLayout = "2006-01-02"

// Behavior measures when and how regularly the athlete trained.
func Behavior(p Params, current []report.ActivityRecord) report.BehaviorSection {
	current = inPeriod(current, p.Period)

	var days trend.Counts
	s := report.BehaviorSection{
		TotalDays:     p.Period.Days(),
		UnusedModules: []string{},
	}
	used := make(map[string]bool)
	for _, r := range current {
		at := r.CreatedAt.UTC()
		days.Add(at.Format(dayLayout))
		s.HourlyActivity[at.Hour()]++
		used[moduleOf(r)] = true
	}

	s.ActiveDays = days.Len()
	s.ConsistencyScore = ConsistencyScore(s.ActiveDays, s.TotalDays)

	s.DailyActivity = days.Ordered()
	sort.SliceStable(s.DailyActivity, func(i, j int) bool {
		return s.DailyActivity[i].Label < s.DailyActivity[j].Label
	})

	if len(current) > 0 {
		peak := 0
		for h := 1; h < len(s.HourlyActivity); h++ {
			if s.HourlyActivity[h] > s.HourlyActivity[peak] {
				peak = h
			}
		}
		s.PeakHour = &peak
	}

	for _, m := range p.Subscribed {
		if !used[m] {
			s.UnusedModules = append(s.UnusedModules, m)
		}
	}

	if s.ActiveDays > 0 {
		avg := trend.RoundTo(float64(len(current))/float64(s.ActiveDays), 1)
		s.AvgUploadsPerActiveDay = &avg
	}

	s.Recommendations = behaviorRecommendations(p.Thresholds, s, len(current))
	return s
}

// ConsistencyScore is round(activeDays / totalDays * 100), clamped to [0, 100].
func ConsistencyScore(activeDays, totalDays int) int {
	if totalDays <= 0 || activeDays <= 0 {
		return 0
	}
	score := int(math.Round(float64(activeDays) / float64(totalDays) * 100))
	return min(score, 100)
}

func behaviorRecommendations(t report.Thresholds, s report.BehaviorSection, uploads int) []string {
	recs := []string{}
	if uploads == 0 {
		recs = append(recs, "No training videos were uploaded this period. Upload at least one session a week to start tracking progress.")
	} else if s.ConsistencyScore < t.LowConsistency {
		recs = append(recs, fmt.Sprintf("Your activity is inconsistent: you trained on %d of %d days. Aim for a steady weekly routine.", s.ActiveDays, s.TotalDays))
	} else if s.ConsistencyScore >= t.GoodConsistency {
		recs = append(recs, "Great consistency this period. Keep your current routine.")
	}

	if s.AvgUploadsPerActiveDay != nil && *s.AvgUploadsPerActiveDay >= t.HighDailyVolume {
		recs = append(recs, "You tend to cram sessions into a few days. Spread them across the week for better recovery.")
	}

	for _, m := range s.UnusedModules {
		recs = append(recs, fmt.Sprintf("Try %s: it is part of your plan but you did not use it this period.", report.DisplayName(m)))
	}

	if s.PeakHour != nil && uploads > 0 {
		recs = append(recs, fmt.Sprintf("You train most often around %02d:00. Protect that slot in your schedule.", *s.PeakHour))
	}
	return recs
}

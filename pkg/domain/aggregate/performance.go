package aggregate

import (
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/trend"
)

// Performance compares the period against the athlete's whole history.
// history may include records outside the period; anything created at or
// after the period end is ignored. The per-module breakdown reuses the
// already computed module reports.
func Performance(p Params, current, history []report.ActivityRecord, modules []report.ModuleReport) report.PerformanceSection {
	periodScores := scores(inPeriod(current, p.Period))

	var allTime []float64
	for _, r := range history {
		if r.Score != nil && r.CreatedAt.Before(p.Period.End) {
			allTime = append(allTime, *r.Score)
		}
	}

	s := report.PerformanceSection{
		PeriodBest:     trend.Max(periodScores),
		PeriodAverage:  trend.Mean(periodScores),
		AllTimeBest:    trend.Max(allTime),
		AllTimeAverage: trend.Mean(allTime),
		ByModule:       make([]report.ModulePerformance, 0, len(modules)),
	}
	s.MonthVsAllTime = trend.DeltaVsPrevious(s.PeriodAverage, s.AllTimeAverage)

	for _, m := range modules {
		s.ByModule = append(s.ByModule, report.ModulePerformance{
			Module:       m.Module,
			AverageScore: m.AverageScore,
			BestScore:    m.BestScore,
			Trend:        m.Trend,
		})
	}
	return s
}

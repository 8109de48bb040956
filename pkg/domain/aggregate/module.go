package aggregate

import (
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/trend"
)

// Modules builds one development report per known module, in p.Modules order.
func Modules(p Params, current, previous []report.ActivityRecord) []report.ModuleReport {
	out := make([]report.ModuleReport, 0, len(p.Modules))
	for _, m := range p.Modules {
		out = append(out, Module(p, m, current, previous))
	}
	return out
}

// Module summarises a single module. Its trend compares the period average
// with the previous period average, so two data points are enough.
func Module(p Params, module string, current, previous []report.ActivityRecord) report.ModuleReport {
	cur := byModule(inPeriod(current, p.Period), module)
	prev := byModule(inPeriod(previous, p.Period.Previous()), module)
	t := p.Thresholds

	curScores := scores(cur)
	m := report.ModuleReport{
		Module:               module,
		Uploads:              len(cur),
		AverageScore:         trend.Mean(curScores),
		PreviousAverageScore: trend.Mean(scores(prev)),
		BestScore:            trend.Max(curScores),
		WorstScore:           trend.Min(curScores),
		Trend:                report.TrendStable,
	}
	m.ScoreChange = trend.DeltaVsPrevious(m.AverageScore, m.PreviousAverageScore)
	if m.ScoreChange != nil {
		m.Trend = trend.Classify(*m.ScoreChange, t.TrendThreshold)
	}

	var positives, issues, drills []string
	for _, r := range chronological(cur) {
		positives = append(positives, r.Positives()...)
		issues = append(issues, r.Issues()...)
		drills = append(drills, r.Drills()...)
	}
	m.TopPositives = trend.TopN(positives, t.ModuleTopN)
	m.TopIssues = trend.TopN(issues, t.ModuleTopN)
	m.TopDrills = trend.TopN(drills, t.ModuleTopN)
	return m
}

package aggregate

import (
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/trend"
)

// Overview counts uploads, groups them by module and sport and compares the
// average score with the previous period.
func Overview(p Params, current, previous []report.ActivityRecord) report.OverviewSection {
	current = inPeriod(current, p.Period)
	previous = inPeriod(previous, p.Period.Previous())

	var modules, sports trend.Counts
	for _, r := range current {
		modules.Add(moduleOf(r))
		if r.Sport != "" {
			sports.Add(r.Sport)
		}
	}

	s := report.OverviewSection{
		TotalUploads:         len(current),
		ByModule:             modules.Ordered(),
		BySport:              sports.Ordered(),
		AverageScore:         trend.Mean(scores(current)),
		MaxScore:             trend.Max(scores(current)),
		PreviousAverageScore: trend.Mean(scores(previous)),
	}
	s.ScoreChange = trend.DeltaVsPrevious(s.AverageScore, s.PreviousAverageScore)
	s.MostUsedModule, s.LeastUsedModule = mostAndLeast(s.ByModule)
	return s
}

// mostAndLeast picks the highest and lowest counts; on ties the label seen
// first wins.
func mostAndLeast(counts []report.Count) (most, least string) {
	if len(counts) == 0 {
		return "", ""
	}
	hi, lo := counts[0], counts[0]
	for _, c := range counts[1:] {
		if c.Count > hi.Count {
			hi = c
		}
		if c.Count < lo.Count {
			lo = c
		}
	}
	return hi.Label, lo.Label
}

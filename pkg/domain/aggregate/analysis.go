package aggregate

import (
	"strings"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/trend"
)

// Analysis pools the AI analysis tags of every upload in the period and
// classifies the score trend.
func Analysis(p Params, current []report.ActivityRecord) report.AnalysisSection {
	current = chronological(inPeriod(current, p.Period))
	t := p.Thresholds

	var positives, drills []string
	s := report.AnalysisSection{
		KeyIssues:  []string{},
		ScoreTrend: []report.ScorePoint{},
	}
	for _, r := range current {
		if r.Analysis != nil {
			s.AnalyzedVideos++
		}
		positives = append(positives, r.Positives()...)
		drills = append(drills, r.Drills()...)

		if summary := r.IssueSummary(); summary != "" && len(s.KeyIssues) < t.MaxKeyIssues && hasNegativeSignal(summary, t.NegativeKeywords) {
			s.KeyIssues = append(s.KeyIssues, summary)
		}
		if r.Score != nil {
			s.ScoreTrend = append(s.ScoreTrend, report.ScorePoint{Date: r.CreatedAt, Score: *r.Score, Module: moduleOf(r)})
		}
	}

	s.TopPositives = trend.TopN(positives, t.AnalysisTopN)
	s.TopDrills = trend.TopN(drills, t.AnalysisTopN)
	s.ScoredUploads = len(s.ScoreTrend)

	series := make([]float64, len(s.ScoreTrend))
	for i, pt := range s.ScoreTrend {
		series[i] = pt.Score
	}
	s.OverallTrend = trend.TrendFromHalves(series, t.TrendThreshold)
	return s
}

func hasNegativeSignal(text string, keywords []string) bool {
	lower := strings.ToLower(text)
	for _, k := range keywords {
		if k != "" && strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

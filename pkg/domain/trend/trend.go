// Package trend provides the shared statistics used by the report
// aggregators: frequency ranking, two-half trend detection, deltas against
// the previous period and the nutrition engagement score.
package trend

import (
	"math"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

// DefaultThreshold is the absolute score difference that separates a trend
// from noise.
const DefaultThreshold = 3.0

// MinPoints is the smallest series TrendFromHalves will classify.
const MinPoints = 3

// TrendFromHalves splits a chronological series in two (the extra element of
// an odd-length series goes to the second half) and compares the half means.
// Series shorter than MinPoints are always stable.
func TrendFromHalves(series []float64, threshold float64) report.Trend {
	if len(series) < MinPoints {
		return report.TrendStable
	}
	mid := len(series) / 2
	first := *Mean(series[:mid])
	second := *Mean(series[mid:])
	return Classify(second-first, threshold)
}

// Classify maps a signed difference onto a trend using a symmetric threshold.
func Classify(diff, threshold float64) report.Trend {
	switch {
	case diff > threshold:
		return report.TrendImproving
	case diff < -threshold:
		return report.TrendDeclining
	default:
		return report.TrendStable
	}
}

// DeltaVsPrevious returns curr - prev when both are present, otherwise nil.
func DeltaVsPrevious(curr, prev *float64) *float64 {
	if curr == nil || prev == nil {
		return nil
	}
	d := *curr - *prev
	return &d
}

// Mean returns the arithmetic mean, or nil for an empty slice.
func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := sum / float64(len(values))
	return &m
}

// Max returns the largest value, or nil for an empty slice.
func Max(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := values[0]
	for _, v := range values[1:] {
		if v > m {
			m = v
		}
	}
	return &m
}

// Min returns the smallest value, or nil for an empty slice.
func Min(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return &m
}

// RoundTo rounds v to the given number of decimal places.
func RoundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

const (
	streakCap    = 30
	viewsTarget  = 20
	streakWeight = 40.0
	viewsWeight  = 60.0
)

// EngagementScore is a bounded 0-100 nutrition engagement heuristic:
//
//	round(40 * min(streak, 30)/30 + 60 * min(views, days, 20)/20)
//
// Negative inputs count as zero. A period can contribute at most one view per
// day, so the score is non-decreasing in each of the three inputs.
func EngagementScore(streak, viewsThisPeriod, daysInPeriod int) int {
	streak = min(max(streak, 0), streakCap)
	views := min(max(viewsThisPeriod, 0), max(daysInPeriod, 0), viewsTarget)

	score := streakWeight*float64(streak)/streakCap + viewsWeight*float64(views)/viewsTarget
	return min(max(int(math.Round(score)), 0), 100)
}

package trend

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

func TestTrendFromHalves(t *testing.T) {
	tests := []struct {
		name   string
		series []float64
		want   report.Trend
	}{
		{"improving", []float64{50, 50, 50, 60, 70, 80}, report.TrendImproving},
		{"declining", []float64{80, 80, 80, 50, 50, 50}, report.TrendDeclining},
		{"stable noise", []float64{60, 60, 60, 61, 59, 60}, report.TrendStable},
		{"empty", nil, report.TrendStable},
		{"two points ignored", []float64{10, 90}, report.TrendStable},
		// first half [60], second half [70, 70]
		{"odd length extra goes to second half", []float64{60, 70, 70}, report.TrendImproving},
		{"exactly threshold is stable", []float64{60, 60, 63, 63}, report.TrendStable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TrendFromHalves(tt.series, DefaultThreshold))
		})
	}
}

func TestTrendFromHalves_ConfigurableThreshold(t *testing.T) {
	series := []float64{60, 60, 60, 65, 65, 65}
	assert.Equal(t, report.TrendImproving, TrendFromHalves(series, 3))
	assert.Equal(t, report.TrendStable, TrendFromHalves(series, 10))
}

func TestRankDescending_TieBreakByFirstSeen(t *testing.T) {
	ranked := TopN([]string{"a", "b", "a", "b", "c"}, 2)

	assert.Equal(t, []report.Count{{Label: "a", Count: 2}, {Label: "b", Count: 2}}, ranked)
}

func TestRankDescending_LaterHigherCountWins(t *testing.T) {
	ranked := TopN([]string{"x", "y", "y", "z", "z", "z"}, 0)

	labels := make([]string, len(ranked))
	for i, r := range ranked {
		labels[i] = r.Label
	}
	assert.Equal(t, []string{"z", "y", "x"}, labels)
}

func TestFrequencyCount_ExactMatchOnly(t *testing.T) {
	c := FrequencyCount([]string{"Load", "load", "load ", "", "load"})

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, 2, c.Get("load"))
	assert.Equal(t, 1, c.Get("Load"))
	assert.Equal(t, 0, c.Get(""))
}

func TestDeltaVsPrevious(t *testing.T) {
	curr, prev := 72.0, 70.0

	d := DeltaVsPrevious(&curr, &prev)
	if assert.NotNil(t, d) {
		assert.InDelta(t, 2.0, *d, 1e-9)
	}
	assert.Nil(t, DeltaVsPrevious(&curr, nil))
	assert.Nil(t, DeltaVsPrevious(nil, &prev))
}

func TestMeanMaxMin_Empty(t *testing.T) {
	assert.Nil(t, Mean(nil))
	assert.Nil(t, Max([]float64{}))
	assert.Nil(t, Min(nil))
}

func TestEngagementScore_Bounds(t *testing.T) {
	assert.Equal(t, 0, EngagementScore(0, 0, 30))
	assert.Equal(t, 0, EngagementScore(-5, -5, -5))
	assert.Equal(t, 100, EngagementScore(30, 20, 30))
	assert.Equal(t, 100, EngagementScore(500, 500, 500))
	assert.Equal(t, 40, EngagementScore(30, 0, 30))
	assert.Equal(t, 60, EngagementScore(0, 20, 30))
}

func TestEngagementScore_Monotonic(t *testing.T) {
	for streak := 0; streak < 40; streak++ {
		for views := 0; views < 30; views++ {
			for days := 0; days < 35; days++ {
				base := EngagementScore(streak, views, days)
				assert.GreaterOrEqual(t, EngagementScore(streak+1, views, days), base)
				assert.GreaterOrEqual(t, EngagementScore(streak, views+1, days), base)
				assert.GreaterOrEqual(t, EngagementScore(streak, views, days+1), base)
			}
		}
	}
}

func TestEngagementScore_Deterministic(t *testing.T) {
	assert.Equal(t, EngagementScore(7, 11, 30), EngagementScore(7, 11, 30))
}

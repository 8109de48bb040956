package narrative

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

func f(v float64) *float64 { return &v }

func baseSections() report.Sections {
	return report.Sections{
		Overview: report.OverviewSection{
			TotalUploads:   6,
			ByModule:       []report.Count{{Label: "hitting", Count: 4}, {Label: "pitching", Count: 2}},
			MostUsedModule: "hitting",
			AverageScore:   f(64),
			ScoreChange:    f(-5),
		},
		Behavior: report.BehaviorSection{ActiveDays: 6, TotalDays: 30, ConsistencyScore: 20},
		Analysis: report.AnalysisSection{
			OverallTrend:  report.TrendDeclining,
			ScoredUploads: 6,
			TopDrills:     []report.Count{{Label: "tee work", Count: 3}},
		},
		Nutrition: report.NutritionSection{EngagementScore: 80},
		CoachFeedback: report.CoachFeedbackSection{
			CoachAnnotations: 2,
			UniqueCoaches:    1,
		},
	}
}

func TestSynthesize_DecliningAndInconsistent(t *testing.T) {
	n := Synthesize(baseSections(), report.DefaultThresholds())

	require.NotEmpty(t, n.ActionPlan)
	assert.True(t, strings.HasPrefix(n.ActionPlan[0], "Rebuild your routine"))
	assert.Contains(t, n.CoachingSummary, "You uploaded 6 training videos across 2 modules this period, most often Hitting.")
	assert.Contains(t, n.CoachingSummary, "slipped")
	assert.Contains(t, n.CoachingSummary, "Consistency was low")
	assert.Contains(t, n.CoachingSummary, "You received 2 coach notes from 1 coach.")
}

func TestSynthesize_DecliningOnlySuggestsTopDrill(t *testing.T) {
	s := baseSections()
	s.Behavior.ConsistencyScore = 80

	n := Synthesize(s, report.DefaultThresholds())

	assert.Equal(t, "Scores are dipping. Go back to fundamentals with tee work in every session.", n.ActionPlan[0])
	assert.Contains(t, n.CoachingSummary, "Consistency was strong")
}

func TestSynthesize_Deterministic(t *testing.T) {
	s := baseSections()
	s.Behavior.UnusedModules = []string{"throwing"}
	s.Modules = []report.ModuleReport{
		{Module: "hitting", AverageScore: f(70), TopIssues: []report.Count{{Label: "casting", Count: 2}}},
		{Module: "pitching", AverageScore: f(55)},
	}

	first := Synthesize(s, report.DefaultThresholds())
	second := Synthesize(s, report.DefaultThresholds())

	assert.Equal(t, first, second)
}

func TestSynthesize_WeakestModuleAndIssue(t *testing.T) {
	s := baseSections()
	s.Analysis.OverallTrend = report.TrendStable
	s.Behavior.ConsistencyScore = 80
	s.Modules = []report.ModuleReport{
		{Module: "hitting", AverageScore: f(70), TopIssues: []report.Count{{Label: "casting", Count: 2}}},
		{Module: "pitching", AverageScore: f(55)},
		{Module: "throwing"},
	}

	n := Synthesize(s, report.DefaultThresholds())

	assert.Contains(t, n.ActionPlan, "Make Pitching your focus: it has your lowest average score (55.0).")
	assert.Contains(t, n.ActionPlan, "Address the recurring Hitting issue: casting.")
}

func TestSynthesize_EmptyPeriod(t *testing.T) {
	n := Synthesize(report.Sections{Analysis: report.AnalysisSection{OverallTrend: report.TrendStable}}, report.DefaultThresholds())

	assert.Equal(t, "No training videos were uploaded this period.", n.CoachingSummary)
	assert.Equal(t, []string{"Open one nutrition tip a day to build your fueling streak."}, n.ActionPlan)
}

func TestSynthesize_DefaultItem(t *testing.T) {
	s := report.Sections{
		Analysis:  report.AnalysisSection{OverallTrend: report.TrendStable},
		Nutrition: report.NutritionSection{EngagementScore: 90},
	}

	n := Synthesize(s, report.DefaultThresholds())

	require.Len(t, n.ActionPlan, 1)
	assert.Contains(t, n.ActionPlan[0], "Keep uploading")
}

func TestSynthesize_PlanIsCapped(t *testing.T) {
	s := baseSections()
	s.Nutrition.EngagementScore = 0
	s.CoachFeedback = report.CoachFeedbackSection{}
	s.Behavior.UnusedModules = []string{"throwing", "pitching", "catching", "fielding"}

	th := report.DefaultThresholds()
	th.MaxActionItems = 3

	assert.Len(t, Synthesize(s, th).ActionPlan, 3)
}

package firestore

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

func TestFirestoreToActivity_FirestoreShapes(t *testing.T) {
	created := time.Date(2026, 2, 8, 9, 0, 0, 0, time.UTC)
	a := FirestoreToActivity(map[string]interface{}{
		"id":               "v1",
		"user_id":          "u1",
		"created_at":       created,
		"module":           "hitting",
		"efficiency_score": int64(72),
		"ai_analysis": map[string]interface{}{
			"positives": []interface{}{"balance", 7, "hands"},
			"drills":    []interface{}{"tee work"},
		},
	})

	require.NotNil(t, a.Score)
	assert.Equal(t, 72.0, *a.Score)
	assert.Equal(t, created, a.CreatedAt)
	assert.Equal(t, []string{"balance", "hands"}, a.Positives())
	assert.Equal(t, []string{"tee work"}, a.Drills())
	assert.Empty(t, a.Issues())
	assert.Equal(t, "", a.IssueSummary())
}

func TestFirestoreToActivity_NoScoreNoAnalysis(t *testing.T) {
	a := FirestoreToActivity(map[string]interface{}{"id": "v2", "efficiency_score": "n/a"})

	assert.Nil(t, a.Score)
	assert.Nil(t, a.Analysis)
}

func TestReportConverters_KeepSections(t *testing.T) {
	avg := 71.5
	r := &report.Report{
		ID:          "u1_1706659200",
		UserID:      "u1",
		PeriodStart: time.Unix(1706659200, 0).UTC(),
		PeriodEnd:   time.Unix(1706659200, 0).UTC().AddDate(0, 0, 30),
		Status:      report.StatusGenerated,
		Sections: report.Sections{
			Overview:  report.OverviewSection{TotalUploads: 3, AverageScore: &avg},
			Narrative: report.Narrative{ActionPlan: []string{"Keep going."}},
		},
	}

	m := ReportToFirestore(r)
	assert.IsType(t, "", m["sections_json"])

	back := FirestoreToReport(m)
	assert.Equal(t, r.ID, back.ID)
	assert.Equal(t, report.StatusGenerated, back.Status)
	assert.Equal(t, 3, back.Sections.Overview.TotalUploads)
	require.NotNil(t, back.Sections.Overview.AverageScore)
	assert.Equal(t, avg, *back.Sections.Overview.AverageScore)
	assert.Nil(t, back.Sections.Overview.ScoreChange)
	assert.Equal(t, []string{"Keep going."}, back.Sections.Narrative.ActionPlan)
}

func TestFirestoreToReportCycle_IntTypes(t *testing.T) {
	c := FirestoreToReportCycle(map[string]interface{}{
		"user_id":           "u1",
		"reports_generated": int64(4),
	})

	assert.Equal(t, 4, c.ReportsGenerated)
	assert.True(t, c.CycleStartDate.IsZero())
}

package firestore

import (
	"encoding/json"
	"time"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/types"
)

// Helper to safely get string from map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// Helper to safely get bool from map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key]; ok {
		if b, ok := v.(bool); ok {
			return b
		}
	}
	return false
}

// Helper to safely get time from map (handles time.Time from Firestore)
func getTime(m map[string]interface{}, key string) time.Time {
	if v, ok := m[key]; ok {
		if t, ok := v.(time.Time); ok {
			return t.UTC()
		}
	}
	return time.Time{}
}

func getTimePtr(m map[string]interface{}, key string) *time.Time {
	t := getTime(m, key)
	if t.IsZero() {
		return nil
	}
	return &t
}

// Firestore hands numbers back as int64 or float64 depending on how they were written.
func getFloatPtr(m map[string]interface{}, key string) *float64 {
	v, ok := m[key]
	if !ok {
		return nil
	}
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case int64:
		f = float64(n)
	case int:
		f = float64(n)
	default:
		return nil
	}
	return &f
}

func getInt(m map[string]interface{}, key string) int {
	if f := getFloatPtr(m, key); f != nil {
		return int(*f)
	}
	return 0
}

func getStrings(m map[string]interface{}, key string) []string {
	switch v := m[key].(type) {
	case []string:
		return v
	case []interface{}:
		out := make([]string, 0, len(v))
		for _, s := range v {
			if str, ok := s.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

func timeOrNil(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return *t
}

// --- UserProfile Converters ---

func UserProfileToFirestore(u *report.UserProfile) map[string]interface{} {
	m := map[string]interface{}{
		"user_id":    u.UserID,
		"created_at": u.CreatedAt,
		"is_admin":   u.IsAdmin,
		"tier":       u.Tier,
	}
	if u.TrialEndsAt != nil {
		m["trial_ends_at"] = *u.TrialEndsAt
	}
	if u.StripeCustomerID != "" {
		m["stripe_customer_id"] = u.StripeCustomerID
	}
	if len(u.Subscribed) > 0 {
		m["subscribed_modules"] = u.Subscribed
	}
	if len(u.FCMTokens) > 0 {
		m["fcm_tokens"] = u.FCMTokens
	}
	return m
}

func FirestoreToUserProfile(m map[string]interface{}) *report.UserProfile {
	return &report.UserProfile{
		UserID:           getString(m, "user_id"),
		CreatedAt:        getTime(m, "created_at"),
		IsAdmin:          getBool(m, "is_admin"),
		Tier:             getString(m, "tier"),
		TrialEndsAt:      getTimePtr(m, "trial_ends_at"),
		StripeCustomerID: getString(m, "stripe_customer_id"),
		Subscribed:       getStrings(m, "subscribed_modules"),
		FCMTokens:        getStrings(m, "fcm_tokens"),
	}
}

// --- Execution Record ---

func ExecutionToFirestore(e *types.ExecutionRecord) map[string]interface{} {
	return map[string]interface{}{
		"execution_id":  e.ExecutionID,
		"service":       e.Service,
		"status":        string(e.Status),
		"timestamp":     e.Timestamp,
		"user_id":       e.UserID,
		"test_run_id":   e.TestRunID,
		"trigger_type":  e.TriggerType,
		"start_time":    timeOrNil(e.StartTime),
		"end_time":      timeOrNil(e.EndTime),
		"error_message": e.ErrorMessage,
		"outputs_json":  e.OutputsJSON,
	}
}

func FirestoreToExecution(m map[string]interface{}) *types.ExecutionRecord {
	return &types.ExecutionRecord{
		ExecutionID:  getString(m, "execution_id"),
		Service:      getString(m, "service"),
		Status:       types.ExecutionStatus(getString(m, "status")),
		Timestamp:    getTime(m, "timestamp"),
		UserID:       getString(m, "user_id"),
		TestRunID:    getString(m, "test_run_id"),
		TriggerType:  getString(m, "trigger_type"),
		StartTime:    getTimePtr(m, "start_time"),
		EndTime:      getTimePtr(m, "end_time"),
		ErrorMessage: getString(m, "error_message"),
		OutputsJSON:  getString(m, "outputs_json"),
	}
}

// --- ReportCycle Converters ---

func ReportCycleToFirestore(c *report.ReportCycle) map[string]interface{} {
	return map[string]interface{}{
		"user_id":           c.UserID,
		"cycle_start_date":  c.CycleStartDate,
		"next_report_date":  c.NextReportDate,
		"reports_generated": c.ReportsGenerated,
		"updated_at":        c.UpdatedAt,
	}
}

func FirestoreToReportCycle(m map[string]interface{}) *report.ReportCycle {
	return &report.ReportCycle{
		UserID:           getString(m, "user_id"),
		CycleStartDate:   getTime(m, "cycle_start_date"),
		NextReportDate:   getTime(m, "next_report_date"),
		ReportsGenerated: getInt(m, "reports_generated"),
		UpdatedAt:        getTime(m, "updated_at"),
	}
}

// --- Report Converters ---

// ReportToFirestore keeps the scalar fields queryable and stores the section
// composite as a JSON string so web clients can read it without a schema.
func ReportToFirestore(r *report.Report) map[string]interface{} {
	m := map[string]interface{}{
		"id":           r.ID,
		"user_id":      r.UserID,
		"period_start": r.PeriodStart,
		"period_end":   r.PeriodEnd,
		"generated_at": r.GeneratedAt,
		"status":       string(r.Status),
		"forced":       r.Forced,
	}
	if jsonBytes, err := json.Marshal(r.Sections); err == nil {
		m["sections_json"] = string(jsonBytes)
	}
	return m
}

func FirestoreToReport(m map[string]interface{}) *report.Report {
	r := &report.Report{
		ID:          getString(m, "id"),
		UserID:      getString(m, "user_id"),
		PeriodStart: getTime(m, "period_start"),
		PeriodEnd:   getTime(m, "period_end"),
		GeneratedAt: getTime(m, "generated_at"),
		Status:      report.Status(getString(m, "status")),
		Forced:      getBool(m, "forced"),
	}
	if jsonStr := getString(m, "sections_json"); jsonStr != "" {
		var sections report.Sections
		if err := json.Unmarshal([]byte(jsonStr), &sections); err == nil {
			r.Sections = sections
		}
	}
	return r
}

// --- ActivityRecord Converters (videos) ---

func ActivityToFirestore(a *report.ActivityRecord) map[string]interface{} {
	m := map[string]interface{}{
		"id":         a.ID,
		"user_id":    a.UserID,
		"created_at": a.CreatedAt,
		"module":     a.Module,
		"sport":      a.Sport,
	}
	if a.Score != nil {
		m["efficiency_score"] = *a.Score
	}
	if a.Analysis != nil {
		m["ai_analysis"] = map[string]interface{}{
			"positives":     a.Analysis.Positives,
			"issues":        a.Analysis.Issues,
			"issue_summary": a.Analysis.IssueSummary,
			"drills":        a.Analysis.Drills,
		}
	}
	return m
}

func FirestoreToActivity(m map[string]interface{}) *report.ActivityRecord {
	a := &report.ActivityRecord{
		ID:        getString(m, "id"),
		UserID:    getString(m, "user_id"),
		CreatedAt: getTime(m, "created_at"),
		Module:    getString(m, "module"),
		Sport:     getString(m, "sport"),
		Score:     getFloatPtr(m, "efficiency_score"),
	}
	if aMap, ok := m["ai_analysis"].(map[string]interface{}); ok {
		a.Analysis = &report.VideoAnalysis{
			Positives:    getStrings(aMap, "positives"),
			Issues:       getStrings(aMap, "issues"),
			IssueSummary: getString(aMap, "issue_summary"),
			Drills:       getStrings(aMap, "drills"),
		}
	}
	return a
}

// --- Annotation Converters ---

func AnnotationToFirestore(a *report.Annotation) map[string]interface{} {
	return map[string]interface{}{
		"id":         a.ID,
		"video_id":   a.VideoID,
		"athlete_id": a.AthleteID,
		"scout_id":   a.ScoutID,
		"created_at": a.CreatedAt,
		"note":       a.Note,
	}
}

func FirestoreToAnnotation(m map[string]interface{}) *report.Annotation {
	return &report.Annotation{
		ID:        getString(m, "id"),
		VideoID:   getString(m, "video_id"),
		AthleteID: getString(m, "athlete_id"),
		ScoutID:   getString(m, "scout_id"),
		CreatedAt: getTime(m, "created_at"),
		Note:      getString(m, "note"),
	}
}

// --- Nutrition Converters ---

func NutritionEngagementToFirestore(e *report.NutritionEngagement) map[string]interface{} {
	return map[string]interface{}{
		"current_streak":  e.CurrentStreak,
		"longest_streak":  e.LongestStreak,
		"total_visits":    e.TotalVisits,
		"tips_collected":  e.TipsCollected,
		"badges":          e.Badges,
		"last_visit_date": e.LastVisitDate,
	}
}

func FirestoreToNutritionEngagement(m map[string]interface{}) *report.NutritionEngagement {
	return &report.NutritionEngagement{
		CurrentStreak: getInt(m, "current_streak"),
		LongestStreak: getInt(m, "longest_streak"),
		TotalVisits:   getInt(m, "total_visits"),
		TipsCollected: getInt(m, "tips_collected"),
		Badges:        getStrings(m, "badges"),
		LastVisitDate: getString(m, "last_visit_date"),
	}
}

func TipViewToFirestore(v *report.TipView) map[string]interface{} {
	return map[string]interface{}{
		"tip_id":    v.TipID,
		"user_id":   v.UserID,
		"viewed_at": v.ViewedAt,
	}
}

func FirestoreToTipView(m map[string]interface{}) *report.TipView {
	return &report.TipView{
		TipID:    getString(m, "tip_id"),
		UserID:   getString(m, "user_id"),
		ViewedAt: getTime(m, "viewed_at"),
	}
}

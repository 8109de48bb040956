// Package report holds the data model shared by the cycle scheduler, the
// section aggregators, the narrative synthesizer and the report store.
package report

import "time"

// Status of a persisted report. Only StatusGenerated is reachable today.
type Status string

const (
	StatusGenerated Status = "generated"
)

// ReportCycle is the rolling report window owned by a single user.
// NextReportDate is always CycleStartDate plus the cycle length.
type ReportCycle struct {
	UserID           string    `json:"userId"`
	CycleStartDate   time.Time `json:"cycleStartDate"`
	NextReportDate   time.Time `json:"nextReportDate"`
	ReportsGenerated int       `json:"reportsGenerated"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// VideoAnalysis is the structured AI analysis attached to an upload.
// Every field is optional; a nil analysis behaves like an empty one.
type VideoAnalysis struct {
	Positives    []string `json:"positives,omitempty"`
	Issues       []string `json:"issues,omitempty"`
	IssueSummary string   `json:"issueSummary,omitempty"`
	Drills       []string `json:"drills,omitempty"`
}

// ActivityRecord is one uploaded training video.
type ActivityRecord struct {
	ID        string         `json:"id"`
	UserID    string         `json:"userId"`
	CreatedAt time.Time      `json:"createdAt"`
	Module    string         `json:"module"`
	Sport     string         `json:"sport"`
	Score     *float64       `json:"score,omitempty"`
	Analysis  *VideoAnalysis `json:"analysis,omitempty"`
}

// Positives returns the positive observation tags, or nil.
func (r ActivityRecord) Positives() []string {
	if r.Analysis == nil {
		return nil
	}
	return r.Analysis.Positives
}

// Issues returns the issue tags, or nil.
func (r ActivityRecord) Issues() []string {
	if r.Analysis == nil {
		return nil
	}
	return r.Analysis.Issues
}

// Drills returns the recommended drill tags, or nil.
func (r ActivityRecord) Drills() []string {
	if r.Analysis == nil {
		return nil
	}
	return r.Analysis.Drills
}

// IssueSummary returns the free-text issue summary, or "".
func (r ActivityRecord) IssueSummary() string {
	if r.Analysis == nil {
		return ""
	}
	return r.Analysis.IssueSummary
}

// Annotation is a feedback note left on a video, either by a coach/scout or
// by the athlete themselves.
type Annotation struct {
	ID        string    `json:"id"`
	VideoID   string    `json:"videoId"`
	AthleteID string    `json:"athleteId"`
	ScoutID   string    `json:"scoutId"`
	CreatedAt time.Time `json:"createdAt"`
	Note      string    `json:"note,omitempty"`
}

// NutritionEngagement is the continuously maintained per-user streak record
// for nutrition tip visits.
type NutritionEngagement struct {
	CurrentStreak int      `json:"currentStreak"`
	LongestStreak int      `json:"longestStreak"`
	TotalVisits   int      `json:"totalVisits"`
	TipsCollected int      `json:"tipsCollected"`
	Badges        []string `json:"badges,omitempty"`
	LastVisitDate string   `json:"lastVisitDate,omitempty"` // YYYY-MM-DD
}

// TipView records a single nutrition tip being opened.
type TipView struct {
	TipID    string    `json:"tipId"`
	UserID   string    `json:"userId"`
	ViewedAt time.Time `json:"viewedAt"`
}

// Period is a half-open window [Start, End).
type Period struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Contains reports whether t falls in [Start, End).
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}

// Days is the length of the period in whole days.
func (p Period) Days() int {
	return int(p.End.Sub(p.Start).Hours() / 24)
}

// Previous returns the period of equal length immediately before p.
func (p Period) Previous() Period {
	return Period{Start: p.Start.Add(-p.End.Sub(p.Start)), End: p.Start}
}

// Report is the persisted composite for one user and one period.
type Report struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`
	GeneratedAt time.Time `json:"generatedAt"`
	Sections    Sections  `json:"sections"`
	Status      Status    `json:"status"`
	Forced      bool      `json:"forced,omitempty"`
}

// Sections is the full composite of a report.
type Sections struct {
	Overview        OverviewSection      `json:"overview"`
	Behavior        BehaviorSection      `json:"behavior"`
	Analysis        AnalysisSection      `json:"analysis"`
	Modules         []ModuleReport       `json:"modules"`
	Nutrition       NutritionSection     `json:"nutrition"`
	Performance     PerformanceSection   `json:"performance"`
	CoachFeedback   CoachFeedbackSection `json:"coachFeedback"`
	Narrative       Narrative            `json:"narrative"`
	RenderedSummary string               `json:"renderedSummary,omitempty"`
	DegradedSources []string             `json:"degradedSources,omitempty"`
}

// Count is a label with an occurrence count, kept in a deterministic order.
type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type OverviewSection struct {
	TotalUploads         int      `json:"totalUploads"`
	ByModule             []Count  `json:"byModule"`
	BySport              []Count  `json:"bySport"`
	MostUsedModule       string   `json:"mostUsedModule,omitempty"`
	LeastUsedModule      string   `json:"leastUsedModule,omitempty"`
	AverageScore         *float64 `json:"averageScore"`
	MaxScore             *float64 `json:"maxScore"`
	PreviousAverageScore *float64 `json:"previousAverageScore"`
	ScoreChange          *float64 `json:"scoreChange"`
}

type BehaviorSection struct {
	ActiveDays             int      `json:"activeDays"`
	TotalDays              int      `json:"totalDays"`
	ConsistencyScore       int      `json:"consistencyScore"`
	DailyActivity          []Count  `json:"dailyActivity"`
	HourlyActivity         [24]int  `json:"hourlyActivity"`
	PeakHour               *int     `json:"peakHour"`
	UnusedModules          []string `json:"unusedModules"`
	AvgUploadsPerActiveDay *float64 `json:"avgUploadsPerActiveDay"`
	Recommendations        []string `json:"recommendations"`
}

// Trend is the three-valued classification of a scored series.
type Trend string

const (
	TrendImproving Trend = "improving"
	TrendStable    Trend = "stable"
	TrendDeclining Trend = "declining"
)

// ScorePoint is one scored upload in chronological order.
type ScorePoint struct {
	Date   time.Time `json:"date"`
	Score  float64   `json:"score"`
	Module string    `json:"module"`
}

type AnalysisSection struct {
	TopPositives   []Count      `json:"topPositives"`
	TopDrills      []Count      `json:"topDrills"`
	KeyIssues      []string     `json:"keyIssues"`
	ScoreTrend     []ScorePoint `json:"scoreTrend"`
	OverallTrend   Trend        `json:"overallTrend"`
	ScoredUploads  int          `json:"scoredUploads"`
	AnalyzedVideos int          `json:"analyzedVideos"`
}

type ModuleReport struct {
	Module               string   `json:"module"`
	Uploads              int      `json:"uploads"`
	AverageScore         *float64 `json:"averageScore"`
	PreviousAverageScore *float64 `json:"previousAverageScore"`
	ScoreChange          *float64 `json:"scoreChange"`
	BestScore            *float64 `json:"bestScore"`
	WorstScore           *float64 `json:"worstScore"`
	Trend                Trend    `json:"trend"`
	TopPositives         []Count  `json:"topPositives"`
	TopIssues            []Count  `json:"topIssues"`
	TopDrills            []Count  `json:"topDrills"`
}

type NutritionSection struct {
	TipsViewed         int `json:"tipsViewed"`
	TotalTipsAvailable int `json:"totalTipsAvailable"`
	CurrentStreak      int `json:"currentStreak"`
	LongestStreak      int `json:"longestStreak"`
	TotalVisits        int `json:"totalVisits"`
	EngagementScore    int `json:"engagementScore"`
}

type ModulePerformance struct {
	Module       string   `json:"module"`
	AverageScore *float64 `json:"averageScore"`
	BestScore    *float64 `json:"bestScore"`
	Trend        Trend    `json:"trend"`
}

type PerformanceSection struct {
	PeriodBest     *float64            `json:"periodBest"`
	PeriodAverage  *float64            `json:"periodAverage"`
	AllTimeBest    *float64            `json:"allTimeBest"`
	AllTimeAverage *float64            `json:"allTimeAverage"`
	MonthVsAllTime *float64            `json:"monthVsAllTime"`
	ByModule       []ModulePerformance `json:"byModule"`
}

type CoachFeedbackSection struct {
	CoachAnnotations int     `json:"coachAnnotations"`
	UniqueCoaches    int     `json:"uniqueCoaches"`
	SelfAnnotations  int     `json:"selfAnnotations"`
	ByVideo          []Count `json:"byVideo"`
}

// Narrative is the deterministic coaching text derived from the sections.
type Narrative struct {
	CoachingSummary string   `json:"coachingSummary"`
	ActionPlan      []string `json:"actionPlan"`
}

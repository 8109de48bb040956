package mocks

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/types"
)

var _ shared.Database = (*MemoryDatabase)(nil)

// MemoryDatabase is an in-memory Database with the same create-if-absent
// semantics as Firestore. The Err fields force failures per source and
// Calls counts invocations by method name.
type MemoryDatabase struct {
	mu sync.Mutex

	Profiles    map[string]*report.UserProfile
	Cycles      map[string]*report.ReportCycle
	Reports     map[string]*report.Report
	Activity    []report.ActivityRecord
	Annotations []report.Annotation
	Engagement  map[string]*report.NutritionEngagement
	TipViews    []report.TipView
	Tips        int
	Executions  map[string]*types.ExecutionRecord

	ActivityErr     error
	AnnotationsErr  error
	EngagementErr   error
	TipViewsErr     error
	TipsErr         error
	ProfileErr      error
	CreateReportErr error
	SetCycleErr     error

	Calls map[string]int
}

func NewMemoryDatabase() *MemoryDatabase {
	return &MemoryDatabase{
		Profiles:   map[string]*report.UserProfile{},
		Cycles:     map[string]*report.ReportCycle{},
		Reports:    map[string]*report.Report{},
		Engagement: map[string]*report.NutritionEngagement{},
		Executions: map[string]*types.ExecutionRecord{},
		Calls:      map[string]int{},
	}
}

func (m *MemoryDatabase) track(method string) {
	m.Calls[method]++
}

// CallCount returns how often method was invoked.
func (m *MemoryDatabase) CallCount(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Calls[method]
}

// AddProfile registers a user created at createdAt.
func (m *MemoryDatabase) AddProfile(p report.UserProfile) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Profiles[p.UserID] = &p
}

// AddActivity appends uploads.
func (m *MemoryDatabase) AddActivity(records ...report.ActivityRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Activity = append(m.Activity, records...)
}

// ReportsFor returns a user's reports ordered by period start then id.
func (m *MemoryDatabase) ReportsFor(userID string) []*report.Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*report.Report
	for _, r := range m.Reports {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].PeriodStart.Equal(out[j].PeriodStart) {
			return out[i].PeriodStart.Before(out[j].PeriodStart)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func inRange(t, start, end time.Time) bool {
	if !start.IsZero() && t.Before(start) {
		return false
	}
	return end.IsZero() || t.Before(end)
}

func (m *MemoryDatabase) SetExecution(ctx context.Context, record *types.ExecutionRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("SetExecution")
	r := *record
	m.Executions[record.ExecutionID] = &r
	return nil
}

func (m *MemoryDatabase) UpdateExecution(ctx context.Context, userID string, id string, data map[string]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("UpdateExecution")
	r, ok := m.Executions[id]
	if !ok {
		return fmt.Errorf("execution %s: %w", id, report.ErrNotFound)
	}
	if s, ok := data["status"].(string); ok {
		r.Status = types.ExecutionStatus(s)
	}
	if msg, ok := data["error_message"].(string); ok {
		r.ErrorMessage = msg
	}
	return nil
}

func (m *MemoryDatabase) GetUserProfile(ctx context.Context, userID string) (*report.UserProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("GetUserProfile")
	if m.ProfileErr != nil {
		return nil, m.ProfileErr
	}
	p, ok := m.Profiles[userID]
	if !ok {
		return nil, report.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MemoryDatabase) GetAccountCreatedAt(ctx context.Context, userID string) (time.Time, error) {
	p, err := m.GetUserProfile(ctx, userID)
	if err != nil {
		return time.Time{}, err
	}
	return p.CreatedAt, nil
}

func (m *MemoryDatabase) GetReportCycle(ctx context.Context, userID string) (*report.ReportCycle, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("GetReportCycle")
	c, ok := m.Cycles[userID]
	if !ok {
		return nil, report.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (m *MemoryDatabase) CreateReportCycle(ctx context.Context, c *report.ReportCycle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("CreateReportCycle")
	if _, ok := m.Cycles[c.UserID]; ok {
		return fmt.Errorf("cycle %s: %w", c.UserID, report.ErrReportExists)
	}
	cp := *c
	m.Cycles[c.UserID] = &cp
	return nil
}

func (m *MemoryDatabase) SetReportCycle(ctx context.Context, c *report.ReportCycle) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("SetReportCycle")
	if m.SetCycleErr != nil {
		return m.SetCycleErr
	}
	cp := *c
	m.Cycles[c.UserID] = &cp
	return nil
}

func (m *MemoryDatabase) CreateReport(ctx context.Context, r *report.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("CreateReport")
	if m.CreateReportErr != nil {
		return m.CreateReportErr
	}
	if _, ok := m.Reports[r.ID]; ok {
		return fmt.Errorf("report %s: %w", r.ID, report.ErrReportExists)
	}
	cp := *r
	m.Reports[r.ID] = &cp
	return nil
}

func (m *MemoryDatabase) SetReport(ctx context.Context, r *report.Report) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("SetReport")
	cp := *r
	m.Reports[r.ID] = &cp
	return nil
}

func (m *MemoryDatabase) GetReport(ctx context.Context, userID string, reportID string) (*report.Report, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("GetReport")
	r, ok := m.Reports[reportID]
	if !ok || r.UserID != userID {
		return nil, report.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MemoryDatabase) GetActivityRecords(ctx context.Context, userID string, start, end time.Time) ([]report.ActivityRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("GetActivityRecords")
	if m.ActivityErr != nil {
		return nil, m.ActivityErr
	}
	var out []report.ActivityRecord
	for _, a := range m.Activity {
		if a.UserID == userID && inRange(a.CreatedAt, start, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemoryDatabase) GetAnnotations(ctx context.Context, userID string, start, end time.Time) ([]report.Annotation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("GetAnnotations")
	if m.AnnotationsErr != nil {
		return nil, m.AnnotationsErr
	}
	var out []report.Annotation
	for _, a := range m.Annotations {
		if a.AthleteID == userID && inRange(a.CreatedAt, start, end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (m *MemoryDatabase) GetNutritionEngagement(ctx context.Context, userID string) (*report.NutritionEngagement, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("GetNutritionEngagement")
	if m.EngagementErr != nil {
		return nil, m.EngagementErr
	}
	e, ok := m.Engagement[userID]
	if !ok {
		return nil, report.ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (m *MemoryDatabase) SetNutritionEngagement(ctx context.Context, userID string, e *report.NutritionEngagement) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("SetNutritionEngagement")
	cp := *e
	m.Engagement[userID] = &cp
	return nil
}

func (m *MemoryDatabase) AddTipView(ctx context.Context, view *report.TipView) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("AddTipView")
	if m.TipViewsErr != nil {
		return false, m.TipViewsErr
	}
	newTip := true
	for _, v := range m.TipViews {
		if v.UserID == view.UserID && v.TipID == view.TipID {
			newTip = false
			break
		}
	}
	m.TipViews = append(m.TipViews, *view)
	return newTip, nil
}

func (m *MemoryDatabase) CountViewedTips(ctx context.Context, userID string, start, end time.Time) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("CountViewedTips")
	if m.TipViewsErr != nil {
		return 0, m.TipViewsErr
	}
	n := 0
	for _, v := range m.TipViews {
		if v.UserID == userID && inRange(v.ViewedAt, start, end) {
			n++
		}
	}
	return n, nil
}

func (m *MemoryDatabase) CountTips(ctx context.Context) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.track("CountTips")
	if m.TipsErr != nil {
		return 0, m.TipsErr
	}
	return m.Tips, nil
}

// Package reporting runs one report generation for one user: it consults the
// cycle, guards against duplicates, aggregates the period and persists the
// result before the cycle is advanced.
package reporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	shared "github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/cycle"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/tier"
)

// Deps are the collaborators of a Generator. DB and Subscriptions are
// required; the rest may be nil and their side effects are then skipped.
type Deps struct {
	DB            shared.Database
	Subscriptions shared.SubscriptionSource
	Store         shared.BlobStore
	Bucket        string
	Pub           shared.Publisher
	Notifier      shared.NotificationService
	Renderer      shared.SummaryRenderer
	// EventSource is the CloudEvent source of report.generated events.
	EventSource string
}

type Generator struct {
	deps       Deps
	thresholds report.Thresholds
	scheduler  *cycle.Scheduler
	now        func() time.Time
	newID      func() string
}

func NewGenerator(deps Deps, thresholds report.Thresholds) *Generator {
	return &Generator{
		deps:       deps,
		thresholds: thresholds,
		scheduler:  cycle.NewScheduler(deps.DB, thresholds.CycleDays),
		now:        time.Now,
		newID:      uuid.NewString,
	}
}

// WithClock overrides the clock for the generator and its scheduler.
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	g.scheduler.WithClock(now)
	return g
}

// Request asks for the report of the user's active period.
type Request struct {
	UserID        string
	ForceGenerate bool
}

// GenerateResult is returned for every non-fatal outcome. When ReportReady
// is false no report exists yet and only the countdown fields are set.
type GenerateResult struct {
	ReportReady      bool           `json:"reportReady"`
	AlreadyGenerated bool           `json:"alreadyGenerated,omitempty"`
	ReportID         string         `json:"reportId,omitempty"`
	NextReportDate   time.Time      `json:"nextReportDate"`
	DaysRemaining    int            `json:"daysRemaining"`
	Report           *report.Report `json:"report,omitempty"`
	// LatestReportID is the canonical report of the last completed period,
	// set on not-ready results once a report exists.
	LatestReportID string `json:"latestReportId,omitempty"`
}

// CanonicalID is the document id of the one non-forced report a user can
// have for a period.
func CanonicalID(userID string, periodStart time.Time) string {
	return fmt.Sprintf("%s_%d", userID, periodStart.Unix())
}

// Generate produces, or returns the already stored, report for the user's
// active period. Errors are fatal and wrap one of the report sentinels where
// one applies.
func (g *Generator) Generate(ctx context.Context, logger *slog.Logger, req Request) (*GenerateResult, error) {
	if req.UserID == "" {
		return nil, report.ErrUnauthorized
	}
	logger = logger.With("component", "report-generator")
	now := g.now().UTC()

	c, err := g.scheduler.GetOrCreateCycle(ctx, logger, req.UserID)
	if err != nil {
		return nil, err
	}

	due := cycle.IsDue(c, now, false)
	if !due && !req.ForceGenerate {
		logger.Debug("Report not due", "next_report", c.NextReportDate)
		return g.pending(ctx, logger, c, now), nil
	}

	period := cycle.ActivePeriod(c)

	if !req.ForceGenerate {
		existing, err := g.FindExisting(ctx, req.UserID, period.Start)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			logger.Info("Report already generated for period", "report_id", existing.ID)
			c = g.repairCycle(ctx, logger, c, existing, now)
			return g.ready(existing, c, now, true), nil
		}
	}

	r, profile := g.Build(ctx, logger, req.UserID, period, now)
	r.Forced = req.ForceGenerate
	if req.ForceGenerate && !due {
		// An early report must not take the canonical id of a period that is still open
		r.ID = g.newID()
	}

	saved, err := g.SaveReport(ctx, r, req.ForceGenerate)
	if errors.Is(err, report.ErrReportExists) {
		// Lost the insert race to a concurrent invocation
		existing, findErr := g.FindExisting(ctx, req.UserID, period.Start)
		if findErr != nil || existing == nil {
			return nil, fmt.Errorf("%w: %v", report.ErrSaveFailure, err)
		}
		logger.Info("Concurrent invocation saved the report first", "report_id", existing.ID)
		c = g.repairCycle(ctx, logger, c, existing, now)
		return g.ready(existing, c, now, true), nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", report.ErrSaveFailure, err)
	}
	logger.Info("Report saved", "report_id", saved.ID, "forced", saved.Forced,
		"period_start", saved.PeriodStart, "uploads", saved.Sections.Overview.TotalUploads)

	if due {
		next, err := g.scheduler.AdvanceAndSave(ctx, c, period.End)
		if err != nil {
			// The saved report lets the next invocation repair the cycle
			logger.Error("Failed to advance report cycle", "error", err)
		} else {
			c = next
		}
	}

	g.afterSave(ctx, logger, saved, profile)
	return g.ready(saved, c, now, false), nil
}

// repairCycle advances a cycle that still points at a period whose report
// is already stored, which happens when a previous invocation crashed
// between saving and advancing.
func (g *Generator) repairCycle(ctx context.Context, logger *slog.Logger, c report.ReportCycle, existing *report.Report, now time.Time) report.ReportCycle {
	if !c.CycleStartDate.Equal(existing.PeriodStart) || !cycle.IsDue(c, now, false) {
		return c
	}
	next, err := g.scheduler.AdvanceAndSave(ctx, c, c.NextReportDate)
	if err != nil {
		logger.Warn("Failed to repair report cycle", "error", err)
		return c
	}
	logger.Info("Repaired report cycle", "cycle_start", next.CycleStartDate)
	return next
}

func (g *Generator) pending(ctx context.Context, logger *slog.Logger, c report.ReportCycle, now time.Time) *GenerateResult {
	res := &GenerateResult{
		ReportReady:    false,
		NextReportDate: c.NextReportDate,
		DaysRemaining:  cycle.DaysRemaining(c, now),
	}
	if c.ReportsGenerated == 0 {
		return res
	}
	last, err := g.FindExisting(ctx, c.UserID, c.CycleStartDate.Add(-g.thresholds.CycleLength()))
	if err != nil {
		logger.Debug("Latest report lookup failed", "error", err)
		return res
	}
	if last != nil {
		res.LatestReportID = last.ID
	}
	return res
}

func (g *Generator) ready(r *report.Report, c report.ReportCycle, now time.Time, already bool) *GenerateResult {
	return &GenerateResult{
		ReportReady:      true,
		AlreadyGenerated: already,
		ReportID:         r.ID,
		NextReportDate:   c.NextReportDate,
		DaysRemaining:    cycle.DaysRemaining(c, now),
		Report:           r,
	}
}

// Build gathers the inputs and computes every section of the report for
// period. It never fails: unavailable sources degrade their sections. The
// user profile is returned for the side effects, and may be nil.
func (g *Generator) Build(ctx context.Context, logger *slog.Logger, userID string, period report.Period, now time.Time) (*report.Report, *report.UserProfile) {
	in := g.gather(ctx, logger, userID, period)

	sections := g.computeSections(userID, period, in)

	r := &report.Report{
		UserID:      userID,
		PeriodStart: period.Start,
		PeriodEnd:   period.End,
		GeneratedAt: now,
		Sections:    sections,
		Status:      report.StatusGenerated,
	}

	if g.deps.Renderer != nil && tier.CanRenderSummary(in.profile, now) {
		text, err := g.deps.Renderer.RenderSummary(ctx, r)
		if err != nil {
			logger.Warn("Summary rendering failed", "error", err)
		} else {
			r.Sections.RenderedSummary = text
		}
	}
	return r, in.profile
}

// SaveReport inserts r. Without an id it is stored under the canonical id.
// A forced save whose canonical id is taken is stored under a fresh id and
// leaves the existing report in place.
func (g *Generator) SaveReport(ctx context.Context, r *report.Report, forced bool) (*report.Report, error) {
	if r.ID == "" {
		r.ID = CanonicalID(r.UserID, r.PeriodStart)
	}
	err := g.deps.DB.CreateReport(ctx, r)
	if err == nil {
		return r, nil
	}
	if !forced || !errors.Is(err, report.ErrReportExists) {
		return nil, err
	}
	r.ID = g.newID()
	if err := g.deps.DB.CreateReport(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// FindExisting returns the canonical report for the period, or nil.
func (g *Generator) FindExisting(ctx context.Context, userID string, periodStart time.Time) (*report.Report, error) {
	r, err := g.deps.DB.GetReport(ctx, userID, CanonicalID(userID, periodStart))
	if errors.Is(err, report.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("look up existing report: %w", err)
	}
	return r, nil
}

// Lookup returns the canonical report for the period starting at
// periodStart, or report.ErrNotFound.
func (g *Generator) Lookup(ctx context.Context, userID string, periodStart time.Time) (*report.Report, error) {
	if userID == "" {
		return nil, report.ErrUnauthorized
	}
	r, err := g.FindExisting(ctx, userID, periodStart)
	if err != nil {
		return nil, err
	}
	if r == nil {
		return nil, report.ErrNotFound
	}
	return r, nil
}

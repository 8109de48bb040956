// Package cycle owns the per-user rolling report window: it decides whether a
// report is due and moves the window forward once a report has been saved.
package cycle

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

// Store is the persistence the scheduler needs.
type Store interface {
	// GetReportCycle returns report.ErrNotFound when the user has no cycle yet.
	GetReportCycle(ctx context.Context, userID string) (*report.ReportCycle, error)
	CreateReportCycle(ctx context.Context, cycle *report.ReportCycle) error
	SetReportCycle(ctx context.Context, cycle *report.ReportCycle) error
	GetAccountCreatedAt(ctx context.Context, userID string) (time.Time, error)
}

// Scheduler implements the report cycle rules for a fixed cycle length.
type Scheduler struct {
	store  Store
	length time.Duration
	now    func() time.Time
}

func NewScheduler(store Store, cycleDays int) *Scheduler {
	return &Scheduler{
		store:  store,
		length: time.Duration(cycleDays) * 24 * time.Hour,
		now:    time.Now,
	}
}

// WithClock overrides the clock used as the creation fallback.
func (s *Scheduler) WithClock(now func() time.Time) *Scheduler {
	s.now = now
	return s
}

// New builds a fresh cycle starting at start.
func (s *Scheduler) New(userID string, start time.Time) report.ReportCycle {
	return report.ReportCycle{
		UserID:         userID,
		CycleStartDate: start,
		NextReportDate: start.Add(s.length),
		UpdatedAt:      s.now(),
	}
}

// GetOrCreateCycle loads the user's cycle, creating it from the account
// creation time on first use.
func (s *Scheduler) GetOrCreateCycle(ctx context.Context, logger *slog.Logger, userID string) (report.ReportCycle, error) {
	existing, err := s.store.GetReportCycle(ctx, userID)
	if err == nil && existing != nil {
		return *existing, nil
	}
	if err != nil && !errors.Is(err, report.ErrNotFound) {
		return report.ReportCycle{}, fmt.Errorf("load report cycle: %w", err)
	}

	start, err := s.store.GetAccountCreatedAt(ctx, userID)
	if err != nil || start.IsZero() {
		logger.Warn("Account creation time unavailable, starting cycle now", "error", err)
		start = s.now()
	}

	c := s.New(userID, start.UTC())
	if err := s.store.CreateReportCycle(ctx, &c); err != nil {
		if errors.Is(err, report.ErrReportExists) {
			// Another invocation created it first
			if winner, gerr := s.store.GetReportCycle(ctx, userID); gerr == nil && winner != nil {
				return *winner, nil
			}
		}
		return report.ReportCycle{}, fmt.Errorf("%w: %v", report.ErrCycleCreation, err)
	}
	logger.Info("Created report cycle", "cycle_start", c.CycleStartDate, "next_report", c.NextReportDate)
	return c, nil
}

// IsDue reports whether a report should be generated at now.
func IsDue(c report.ReportCycle, now time.Time, force bool) bool {
	return force || !now.Before(c.NextReportDate)
}

// DaysRemaining is the number of (partial) days until the next report, never negative.
func DaysRemaining(c report.ReportCycle, now time.Time) int {
	left := c.NextReportDate.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}

// ActivePeriod is the window the next report covers.
func ActivePeriod(c report.ReportCycle) report.Period {
	return report.Period{Start: c.CycleStartDate, End: c.NextReportDate}
}

// Advance moves the window to start at periodEnd. It must only be called
// after the report for the current window has been saved.
func (s *Scheduler) Advance(c report.ReportCycle, periodEnd time.Time) report.ReportCycle {
	c.CycleStartDate = periodEnd
	c.NextReportDate = periodEnd.Add(s.length)
	c.ReportsGenerated++
	c.UpdatedAt = s.now()
	return c
}

// AdvanceAndSave advances the cycle and persists it.
func (s *Scheduler) AdvanceAndSave(ctx context.Context, c report.ReportCycle, periodEnd time.Time) (report.ReportCycle, error) {
	next := s.Advance(c, periodEnd)
	if err := s.store.SetReportCycle(ctx, &next); err != nil {
		return c, fmt.Errorf("save advanced report cycle: %w", err)
	}
	return next, nil
}

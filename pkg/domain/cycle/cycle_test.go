package cycle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

var discardLogger = slog.New(slog.NewTextHandler(io.Discard, nil))

type fakeStore struct {
	cycles    map[string]*report.ReportCycle
	createdAt time.Time
	createErr error
	createdN  int
	winner    *report.ReportCycle
}

func (f *fakeStore) GetReportCycle(ctx context.Context, userID string) (*report.ReportCycle, error) {
	c, ok := f.cycles[userID]
	if !ok {
		return nil, report.ErrNotFound
	}
	return c, nil
}

func (f *fakeStore) CreateReportCycle(ctx context.Context, c *report.ReportCycle) error {
	if f.createErr != nil {
		return f.createErr
	}
	if f.winner != nil {
		f.cycles[c.UserID] = f.winner
		return fmt.Errorf("create cycle: %w", report.ErrReportExists)
	}
	f.createdN++
	f.cycles[c.UserID] = c
	return nil
}

func (f *fakeStore) SetReportCycle(ctx context.Context, c *report.ReportCycle) error {
	f.cycles[c.UserID] = c
	return nil
}

func (f *fakeStore) GetAccountCreatedAt(ctx context.Context, userID string) (time.Time, error) {
	if f.createdAt.IsZero() {
		return time.Time{}, errors.New("no profile")
	}
	return f.createdAt, nil
}

var d0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func TestGetOrCreateCycle_UsesAccountCreation(t *testing.T) {
	store := &fakeStore{cycles: map[string]*report.ReportCycle{}, createdAt: d0}
	s := NewScheduler(store, 30)

	c, err := s.GetOrCreateCycle(context.Background(), discardLogger, "u1")
	require.NoError(t, err)

	assert.Equal(t, d0, c.CycleStartDate)
	assert.Equal(t, d0.Add(30*24*time.Hour), c.NextReportDate)
	assert.Equal(t, 0, c.ReportsGenerated)
	assert.Equal(t, 1, store.createdN)

	again, err := s.GetOrCreateCycle(context.Background(), discardLogger, "u1")
	require.NoError(t, err)
	assert.Equal(t, c.CycleStartDate, again.CycleStartDate)
	assert.Equal(t, 1, store.createdN, "existing cycle must not be recreated")
}

func TestGetOrCreateCycle_FallsBackToNow(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	store := &fakeStore{cycles: map[string]*report.ReportCycle{}}
	s := NewScheduler(store, 30).WithClock(func() time.Time { return now })

	c, err := s.GetOrCreateCycle(context.Background(), discardLogger, "u1")
	require.NoError(t, err)
	assert.Equal(t, now, c.CycleStartDate)
}

func TestGetOrCreateCycle_CreationFailure(t *testing.T) {
	store := &fakeStore{cycles: map[string]*report.ReportCycle{}, createdAt: d0, createErr: errors.New("permission denied")}
	s := NewScheduler(store, 30)

	_, err := s.GetOrCreateCycle(context.Background(), discardLogger, "u1")
	require.Error(t, err)
	assert.ErrorIs(t, err, report.ErrCycleCreation)
}

func TestGetOrCreateCycle_LostCreateRace(t *testing.T) {
	winner := &report.ReportCycle{UserID: "u1", CycleStartDate: d0, NextReportDate: d0.AddDate(0, 0, 30)}
	store := &fakeStore{cycles: map[string]*report.ReportCycle{}, createdAt: d0.Add(time.Hour), winner: winner}
	s := NewScheduler(store, 30)

	c, err := s.GetOrCreateCycle(context.Background(), discardLogger, "u1")

	require.NoError(t, err)
	assert.Equal(t, *winner, c)
	assert.Zero(t, store.createdN)
}

func TestIsDue_Boundary(t *testing.T) {
	s := NewScheduler(&fakeStore{}, 30)
	c := s.New("u1", d0)

	assert.False(t, IsDue(c, d0.AddDate(0, 0, 29), false))
	assert.True(t, IsDue(c, d0.AddDate(0, 0, 30), false))
	assert.True(t, IsDue(c, d0.AddDate(0, 0, 1), true), "force bypasses the due date")
}

func TestDaysRemaining(t *testing.T) {
	s := NewScheduler(&fakeStore{}, 30)
	c := s.New("u1", d0)

	assert.Equal(t, 30, DaysRemaining(c, d0))
	assert.Equal(t, 1, DaysRemaining(c, d0.AddDate(0, 0, 29)))
	assert.Equal(t, 1, DaysRemaining(c, d0.AddDate(0, 0, 29).Add(12*time.Hour)))
	assert.Equal(t, 0, DaysRemaining(c, d0.AddDate(0, 0, 31)))
}

func TestAdvance(t *testing.T) {
	s := NewScheduler(&fakeStore{}, 30)
	c := s.New("u1", d0)

	next := s.Advance(c, c.NextReportDate)

	assert.Equal(t, c.NextReportDate, next.CycleStartDate)
	assert.Equal(t, next.CycleStartDate.Add(30*24*time.Hour), next.NextReportDate)
	assert.Equal(t, 1, next.ReportsGenerated)
	assert.Equal(t, 0, c.ReportsGenerated, "advance returns a copy")
}

func TestActivePeriod(t *testing.T) {
	s := NewScheduler(&fakeStore{}, 30)
	p := ActivePeriod(s.New("u1", d0))

	assert.Equal(t, 30, p.Days())
	assert.True(t, p.Contains(d0))
	assert.False(t, p.Contains(d0.AddDate(0, 0, 30)))
}

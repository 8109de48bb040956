package reporting

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/cucumber/godog"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/testing/mocks"
)

type lifecycle struct {
	db       *mocks.MemoryDatabase
	gen      *Generator
	clock    *clock
	created  time.Time
	result   *GenerateResult
	err      error
	previous string
}

func (l *lifecycle) day(n int) time.Time { return l.created.AddDate(0, 0, n) }

func (l *lifecycle) anAthleteCreatedOn(date string) error {
	created, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	l.created = created
	l.db = mocks.NewMemoryDatabase()
	l.db.AddProfile(report.UserProfile{UserID: athlete, CreatedAt: created})
	l.clock = &clock{t: created}
	l.gen = NewGenerator(Deps{DB: l.db, Subscriptions: &mocks.MockSubscriptionSource{}}, report.DefaultThresholds()).
		WithClock(l.clock.now)
	return nil
}

func (l *lifecycle) uploadsInFirstPeriod(total, scored, average int) error {
	for i := 0; i < total; i++ {
		r := report.ActivityRecord{
			ID:        fmt.Sprintf("v%d", i),
			UserID:    athlete,
			CreatedAt: l.day(i*29/total + 1),
			Module:    "hitting",
		}
		if i < scored {
			s := float64(average)
			r.Score = &s
		}
		l.db.AddActivity(r)
	}
	return nil
}

func (l *lifecycle) request(n int, force bool) {
	if l.result != nil && l.result.ReportReady {
		l.previous = l.result.ReportID
	}
	l.clock.t = l.day(n)
	l.result, l.err = l.gen.Generate(context.Background(), discardLogger, Request{UserID: athlete, ForceGenerate: force})
}

func (l *lifecycle) aReportIsRequestedOnDay(n int) error {
	l.request(n, false)
	return nil
}

func (l *lifecycle) aForcedReportIsRequestedOnDay(n int) error {
	l.request(n, true)
	return nil
}

func (l *lifecycle) succeeded() error {
	if l.err != nil {
		return fmt.Errorf("unexpected error: %w", l.err)
	}
	return nil
}

func (l *lifecycle) noReportIsReady() error {
	if err := l.succeeded(); err != nil {
		return err
	}
	if l.result.ReportReady {
		return fmt.Errorf("expected no report, got %s", l.result.ReportID)
	}
	return nil
}

func (l *lifecycle) nextReportDueIn(days int) error {
	if l.result.DaysRemaining != days {
		return fmt.Errorf("expected %d days remaining, got %d", days, l.result.DaysRemaining)
	}
	return nil
}

func (l *lifecycle) aNewReportCovering(uploads int) error {
	if err := l.succeeded(); err != nil {
		return err
	}
	if !l.result.ReportReady || l.result.AlreadyGenerated {
		return fmt.Errorf("expected a new report, got %+v", l.result)
	}
	if got := l.result.Report.Sections.Overview.TotalUploads; got != uploads {
		return fmt.Errorf("expected %d uploads, got %d", uploads, got)
	}
	return nil
}

func (l *lifecycle) averageScoreIs(want int) error {
	avg := l.result.Report.Sections.Overview.AverageScore
	if avg == nil || math.Round(*avg) != float64(want) {
		return fmt.Errorf("expected average %d, got %v", want, avg)
	}
	return nil
}

func (l *lifecycle) cycleStartsOnDay(n int) error {
	c, err := l.db.GetReportCycle(context.Background(), athlete)
	if err != nil {
		return err
	}
	if !c.CycleStartDate.Equal(l.day(n)) {
		return fmt.Errorf("expected cycle start %s, got %s", l.day(n), c.CycleStartDate)
	}
	if !c.NextReportDate.Equal(l.day(n + 30)) {
		return fmt.Errorf("expected next report %s, got %s", l.day(n+30), c.NextReportDate)
	}
	return nil
}

func (l *lifecycle) latestIsPrevious() error {
	if l.result.LatestReportID == "" || l.result.LatestReportID != l.previous {
		return fmt.Errorf("expected latest report %q, got %q", l.previous, l.result.LatestReportID)
	}
	return nil
}

func (l *lifecycle) reportsStored(n int) error {
	if got := len(l.db.ReportsFor(athlete)); got != n {
		return fmt.Errorf("expected %d stored reports, got %d", n, got)
	}
	return nil
}

func (l *lifecycle) interruptedRun() error {
	l.db.Cycles[athlete] = &report.ReportCycle{UserID: athlete, CycleStartDate: l.created, NextReportDate: l.day(30)}
	l.db.Reports[CanonicalID(athlete, l.created)] = &report.Report{
		ID:          CanonicalID(athlete, l.created),
		UserID:      athlete,
		PeriodStart: l.created,
		PeriodEnd:   l.day(30),
		Status:      report.StatusGenerated,
	}
	return nil
}

func (l *lifecycle) existingReportReturned() error {
	if err := l.succeeded(); err != nil {
		return err
	}
	if !l.result.AlreadyGenerated || l.result.ReportID != CanonicalID(athlete, l.created) {
		return fmt.Errorf("expected the stored report, got %+v", l.result)
	}
	return nil
}

func (l *lifecycle) storeRejectsWrites() error {
	l.db.CreateReportErr = errors.New("unavailable")
	return nil
}

func (l *lifecycle) failsWithSaveFailure() error {
	if !errors.Is(l.err, report.ErrSaveFailure) {
		return fmt.Errorf("expected save failure, got %v", l.err)
	}
	return nil
}

func initializeLifecycleScenario(ctx *godog.ScenarioContext) {
	l := &lifecycle{}

	ctx.Step(`^an athlete whose account was created on "([^"]*)"$`, l.anAthleteCreatedOn)
	ctx.Step(`^(\d+) uploads in the first period with (\d+) scores averaging (\d+)$`, l.uploadsInFirstPeriod)
	ctx.Step(`^a report is requested on day (\d+)$`, l.aReportIsRequestedOnDay)
	ctx.Step(`^a forced report is requested on day (\d+)$`, l.aForcedReportIsRequestedOnDay)
	ctx.Step(`^no report is ready$`, l.noReportIsReady)
	ctx.Step(`^the next report is due in (\d+) days?$`, l.nextReportDueIn)
	ctx.Step(`^a new report is ready covering (\d+) uploads$`, l.aNewReportCovering)
	ctx.Step(`^the average score is (\d+)$`, l.averageScoreIs)
	ctx.Step(`^the cycle starts on day (\d+)$`, l.cycleStartsOnDay)
	ctx.Step(`^the latest report is the one generated before$`, l.latestIsPrevious)
	ctx.Step(`^(\d+) reports? (?:is|are) stored$`, l.reportsStored)
	ctx.Step(`^a report was saved for the first period but the cycle was not advanced$`, l.interruptedRun)
	ctx.Step(`^the existing report is returned$`, l.existingReportReturned)
	ctx.Step(`^the report store rejects writes$`, l.storeRejectsWrites)
	ctx.Step(`^the request fails with a save failure$`, l.failsWithSaveFailure)
}

func TestReportCycleFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "report-cycle",
		ScenarioInitializer: initializeLifecycleScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
			Strict:   true,
		},
	}
	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

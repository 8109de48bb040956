package reporting

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/aggregate"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/narrative"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

// Names recorded in Sections.DegradedSources.
const (
	SourceActivity      = "activity"
	SourceAnnotations   = "annotations"
	SourceNutrition     = "nutrition_engagement"
	SourceTipViews      = "tip_views"
	SourceTipCatalog    = "nutrition_tips"
	SourceSubscriptions = "subscriptions"
	SourceProfile       = "profile"
)

// inputs is everything read for one report. A failed read leaves its field
// at the zero value and adds the source to degraded.
type inputs struct {
	// history holds every upload created before the period end. The
	// aggregators filter it to the windows they need.
	history       []report.ActivityRecord
	annotations   []report.Annotation
	engagement    *report.NutritionEngagement
	tipsViewed    int
	tipsAvailable int
	subscribed    []string
	profile       *report.UserProfile
	degraded      []string
}

func (g *Generator) gather(ctx context.Context, logger *slog.Logger, userID string, period report.Period) inputs {
	var (
		in inputs
		mu sync.Mutex
		eg errgroup.Group
	)

	degrade := func(source string, err error) {
		logger.Warn("Source unavailable, section degraded", "source", source, "error", err)
		mu.Lock()
		in.degraded = append(in.degraded, source)
		mu.Unlock()
	}

	eg.Go(func() error {
		records, err := g.deps.DB.GetActivityRecords(ctx, userID, time.Time{}, period.End)
		if err != nil {
			degrade(SourceActivity, err)
			return nil
		}
		in.history = records
		return nil
	})
	eg.Go(func() error {
		annotations, err := g.deps.DB.GetAnnotations(ctx, userID, period.Start, period.End)
		if err != nil {
			degrade(SourceAnnotations, err)
			return nil
		}
		in.annotations = annotations
		return nil
	})
	eg.Go(func() error {
		e, err := g.deps.DB.GetNutritionEngagement(ctx, userID)
		switch {
		case errors.Is(err, report.ErrNotFound):
			// No tip visits yet
		case err != nil:
			degrade(SourceNutrition, err)
		default:
			in.engagement = e
		}
		return nil
	})
	eg.Go(func() error {
		n, err := g.deps.DB.CountViewedTips(ctx, userID, period.Start, period.End)
		if err != nil {
			degrade(SourceTipViews, err)
			return nil
		}
		in.tipsViewed = n
		return nil
	})
	eg.Go(func() error {
		n, err := g.deps.DB.CountTips(ctx)
		if err != nil {
			degrade(SourceTipCatalog, err)
			return nil
		}
		in.tipsAvailable = n
		return nil
	})
	eg.Go(func() error {
		categories, err := g.deps.Subscriptions.GetSubscribedCategories(ctx, userID)
		if err != nil {
			degrade(SourceSubscriptions, err)
			return nil
		}
		in.subscribed = categories
		return nil
	})
	eg.Go(func() error {
		p, err := g.deps.DB.GetUserProfile(ctx, userID)
		if err != nil {
			degrade(SourceProfile, err)
			return nil
		}
		in.profile = p
		return nil
	})

	_ = eg.Wait()
	sort.Strings(in.degraded)
	return in
}

// computeSections runs the section aggregators concurrently over the same
// read-only inputs and then derives the narrative.
func (g *Generator) computeSections(userID string, period report.Period, in inputs) report.Sections {
	p := aggregate.Params{
		UserID:     userID,
		Period:     period,
		Modules:    g.thresholds.Modules,
		Subscribed: in.subscribed,
		Thresholds: g.thresholds,
	}

	var (
		s  report.Sections
		eg errgroup.Group
	)
	eg.Go(func() error {
		s.Overview = aggregate.Overview(p, in.history, in.history)
		return nil
	})
	eg.Go(func() error {
		s.Behavior = aggregate.Behavior(p, in.history)
		return nil
	})
	eg.Go(func() error {
		s.Analysis = aggregate.Analysis(p, in.history)
		return nil
	})
	eg.Go(func() error {
		// Performance reuses the module reports
		s.Modules = aggregate.Modules(p, in.history, in.history)
		s.Performance = aggregate.Performance(p, in.history, in.history, s.Modules)
		return nil
	})
	eg.Go(func() error {
		s.Nutrition = aggregate.Nutrition(p, in.engagement, in.tipsViewed, in.tipsAvailable)
		return nil
	})
	eg.Go(func() error {
		s.CoachFeedback = aggregate.CoachFeedback(p, in.annotations)
		return nil
	})
	_ = eg.Wait()

	s.Narrative = narrative.Synthesize(s, g.thresholds)
	s.DegradedSources = in.degraded
	return s
}

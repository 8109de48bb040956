package reporting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/nutrition"
	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

// TipViewResult is the engagement record after a tip view.
type TipViewResult struct {
	Engagement    report.NutritionEngagement `json:"engagement"`
	StreakUpdated bool                       `json:"streakUpdated"`
	NewTip        bool                       `json:"newTip"`
}

// RecordTipView stores a tip view and folds it into the user's streak
// record. The view is stored first so CountViewedTips sees it even if the
// streak update fails.
func (g *Generator) RecordTipView(ctx context.Context, logger *slog.Logger, userID, tipID string) (*TipViewResult, error) {
	if userID == "" {
		return nil, report.ErrUnauthorized
	}
	if tipID == "" {
		return nil, errors.New("tip id is required")
	}
	now := g.now().UTC()

	newTip, err := g.deps.DB.AddTipView(ctx, &report.TipView{TipID: tipID, UserID: userID, ViewedAt: now})
	if err != nil {
		return nil, fmt.Errorf("record tip view: %w", err)
	}

	var current report.NutritionEngagement
	existing, err := g.deps.DB.GetNutritionEngagement(ctx, userID)
	switch {
	case errors.Is(err, report.ErrNotFound):
	case err != nil:
		return nil, fmt.Errorf("load nutrition engagement: %w", err)
	default:
		current = *existing
	}

	updated, streakMoved := nutrition.RecordVisit(current, now, newTip)
	if err := g.deps.DB.SetNutritionEngagement(ctx, userID, &updated); err != nil {
		return nil, fmt.Errorf("save nutrition engagement: %w", err)
	}
	logger.Info("Recorded tip view", "tip_id", tipID, "new_tip", newTip,
		"current_streak", updated.CurrentStreak, "streak_updated", streakMoved)

	return &TipViewResult{Engagement: updated, StreakUpdated: streakMoved, NewTip: newTip}, nil
}

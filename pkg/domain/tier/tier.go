package tier

import (
	"time"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

// Effective tier is used for internal logic
type EffectiveTier string

const (
	TierFree EffectiveTier = "free"
	TierPro  EffectiveTier = "pro"
)

// GetEffectiveTier determines the user's effective tier based on admin status,
// trial period, and stored tier.
func GetEffectiveTier(profile *report.UserProfile, now time.Time) EffectiveTier {
	if profile == nil {
		return TierFree
	}

	// Admin override always grants Pro
	if profile.IsAdmin {
		return TierPro
	}

	// Active trial grants Pro
	if profile.TrialEndsAt != nil && profile.TrialEndsAt.After(now) {
		return TierPro
	}

	if EffectiveTier(profile.Tier) == TierPro {
		return TierPro
	}

	return TierFree
}

// CanRenderSummary reports whether the generative summary layer is enabled
// for the user.
func CanRenderSummary(profile *report.UserProfile, now time.Time) bool {
	return GetEffectiveTier(profile, now) == TierPro
}

// GetTrialDaysRemaining returns the number of days left in trial, or -1 if not on trial
func GetTrialDaysRemaining(profile *report.UserProfile, now time.Time) int {
	if profile == nil || profile.TrialEndsAt == nil {
		return -1
	}

	trialEnd := *profile.TrialEndsAt
	if !trialEnd.After(now) {
		return 0
	}

	return int(trialEnd.Sub(now).Hours()/24) + 1
}

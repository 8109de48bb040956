package report

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Thresholds holds every tunable constant used by the aggregators and the
// narrative synthesizer.
type Thresholds struct {
	CycleDays int `toml:"cycle_days"`

	// TrendThreshold is the absolute score difference between series halves
	// (or between period averages) above which a trend is not "stable".
	TrendThreshold float64 `toml:"trend_threshold"`
	MinTrendPoints int     `toml:"min_trend_points"`

	AnalysisTopN    int     `toml:"analysis_top_n"`
	ModuleTopN      int     `toml:"module_top_n"`
	MaxKeyIssues    int     `toml:"max_key_issues"`
	MaxActionItems  int     `toml:"max_action_items"`
	LowConsistency  int     `toml:"low_consistency"`
	GoodConsistency int     `toml:"good_consistency"`
	LowEngagement   int     `toml:"low_engagement"`
	HighDailyVolume float64 `toml:"high_daily_volume"`

	NegativeKeywords []string `toml:"negative_keywords"`
	Modules          []string `toml:"modules"`
}

// DefaultThresholds returns the production defaults.
func DefaultThresholds() Thresholds {
	return Thresholds{
		CycleDays:       30,
		TrendThreshold:  3,
		MinTrendPoints:  3,
		AnalysisTopN:    5,
		ModuleTopN:      3,
		MaxKeyIssues:    5,
		MaxActionItems:  5,
		LowConsistency:  50,
		GoodConsistency: 70,
		LowEngagement:   40,
		HighDailyVolume: 4,
		NegativeKeywords: []string{
			"struggl", "issue", "problem", "inconsistent", "poor", "weak",
			"lack", "difficult", "collaps", "needs work",
		},
		Modules: []string{"hitting", "pitching", "throwing"},
	}
}

// CycleLength is the report window as a duration.
func (t Thresholds) CycleLength() time.Duration {
	return time.Duration(t.CycleDays) * 24 * time.Hour
}

// LoadThresholds reads overrides from a TOML file on top of the defaults.
// An empty path or a missing file is not an error.
func LoadThresholds(path string) (Thresholds, error) {
	t := DefaultThresholds()
	if path == "" {
		return t, nil
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return t, nil
		}
		return t, fmt.Errorf("failed to stat thresholds file: %w", err)
	}
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return DefaultThresholds(), fmt.Errorf("failed to decode thresholds file: %w", err)
	}
	if t.CycleDays <= 0 {
		return DefaultThresholds(), fmt.Errorf("cycle_days must be positive, got %d", t.CycleDays)
	}
	return t, nil
}

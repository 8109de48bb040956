// Package nutrition maintains the per-user nutrition tip engagement record.
package nutrition

import (
	"fmt"
	"time"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

const dateLayout = "2006-01-02"

// Badge streak thresholds, in days.
var badgeThresholds = []int{7, 30, 100}

// BadgeName is the badge id earned at a streak threshold.
func BadgeName(days int) string {
	return fmt.Sprintf("streak_%d", days)
}

// RecordVisit applies a tip visit on visitAt (UTC day) to e. Repeat visits on
// the same day count toward TotalVisits but leave the streak alone. The
// returned flag reports whether the streak moved.
func RecordVisit(e report.NutritionEngagement, visitAt time.Time, newTip bool) (report.NutritionEngagement, bool) {
	visitDate := visitAt.UTC().Format(dateLayout)

	e.TotalVisits++
	if newTip {
		e.TipsCollected++
	}

	if e.LastVisitDate == visitDate {
		return e, false
	}

	if e.LastVisitDate != "" {
		// Streak continues only if the last visit was exactly the day before
		expectedPrev := visitAt.UTC().AddDate(0, 0, -1).Format(dateLayout)
		if e.LastVisitDate != expectedPrev {
			e.CurrentStreak = 0
		}
	}

	e.CurrentStreak++
	e.LastVisitDate = visitDate
	if e.CurrentStreak > e.LongestStreak {
		e.LongestStreak = e.CurrentStreak
	}

	for _, days := range badgeThresholds {
		if e.CurrentStreak >= days && !hasBadge(e.Badges, BadgeName(days)) {
			e.Badges = append(append([]string(nil), e.Badges...), BadgeName(days))
		}
	}
	return e, true
}

func hasBadge(badges []string, name string) bool {
	for _, b := range badges {
		if b == name {
			return true
		}
	}
	return false
}

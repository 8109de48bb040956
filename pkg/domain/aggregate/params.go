// Package aggregate turns a user's raw activity for one period into the
// report sections. Every function here is pure: it reads the slices it is
// given, filters them to the period it is told about and returns a value.
package aggregate

import (
	"sort"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

// Params carries all context an aggregator may need.
type Params struct {
	UserID     string
	Period     report.Period
	Modules    []string // every known module, in display order
	Subscribed []string // modules the user is entitled to
	Thresholds report.Thresholds
}

const unknownModule = "other"

// inPeriod returns the records created inside p, in their original order.
func inPeriod(records []report.ActivityRecord, p report.Period) []report.ActivityRecord {
	out := make([]report.ActivityRecord, 0, len(records))
	for _, r := range records {
		if p.Contains(r.CreatedAt) {
			out = append(out, r)
		}
	}
	return out
}

// chronological returns a copy sorted by creation time. Records with equal
// timestamps keep their input order.
func chronological(records []report.ActivityRecord) []report.ActivityRecord {
	out := make([]report.ActivityRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

func scores(records []report.ActivityRecord) []float64 {
	var out []float64
	for _, r := range records {
		if r.Score != nil {
			out = append(out, *r.Score)
		}
	}
	return out
}

func moduleOf(r report.ActivityRecord) string {
	if r.Module == "" {
		return unknownModule
	}
	return r.Module
}

func byModule(records []report.ActivityRecord, module string) []report.ActivityRecord {
	var out []report.ActivityRecord
	for _, r := range records {
		if moduleOf(r) == module {
			out = append(out, r)
		}
	}
	return out
}

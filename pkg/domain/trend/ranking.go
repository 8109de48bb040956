package trend

import (
	"sort"

	"github.com/Cam55-baseball/hammer-ai-huddle-sub006/pkg/domain/report"
)

// Counts is an insertion-ordered frequency table.
type Counts struct {
	order  []string
	counts map[string]int
}

// FrequencyCount groups values by exact string match. Empty strings are ignored.
func FrequencyCount(values []string) Counts {
	c := Counts{counts: make(map[string]int)}
	for _, v := range values {
		c.Add(v)
	}
	return c
}

// Add records one occurrence of v.
func (c *Counts) Add(v string) {
	if v == "" {
		return
	}
	if c.counts == nil {
		c.counts = make(map[string]int)
	}
	if _, seen := c.counts[v]; !seen {
		c.order = append(c.order, v)
	}
	c.counts[v]++
}

// Get returns the count for v.
func (c Counts) Get(v string) int {
	return c.counts[v]
}

// Len is the number of distinct values.
func (c Counts) Len() int {
	return len(c.order)
}

// Ordered returns every value with its count in first-seen order.
func (c Counts) Ordered() []report.Count {
	out := make([]report.Count, 0, len(c.order))
	for _, v := range c.order {
		out = append(out, report.Count{Label: v, Count: c.counts[v]})
	}
	return out
}

// RankDescending sorts by count descending and keeps the first topN entries.
// Equal counts keep first-insertion order. topN <= 0 keeps everything.
func RankDescending(c Counts, topN int) []report.Count {
	ranked := c.Ordered()
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})
	if topN > 0 && len(ranked) > topN {
		ranked = ranked[:topN]
	}
	return ranked
}

// TopN is FrequencyCount followed by RankDescending.
func TopN(values []string, n int) []report.Count {
	return RankDescending(FrequencyCount(values), n)
}

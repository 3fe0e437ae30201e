package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SeriesPoint is one point of a running-balance trace.
type SeriesPoint struct {
	Timestamp time.Time
	Balance   decimal.Decimal
}

// BuildSeries folds an account's entries into a chronologically ordered
// running-balance trace, one point per entry. The fold starts from zero;
// entries are sorted ascending by creation time with the store-assigned
// sequence as tie-break. The input slice is not modified.
//
// Calendar bucketing for charts is a presentation concern and is not done
// here.
func BuildSeries(entries []*Entry) []SeriesPoint {
	if len(entries) == 0 {
		return nil
	}

	ordered := make([]*Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].AccountSequence < ordered[j].AccountSequence
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})

	points := make([]SeriesPoint, 0, len(ordered))
	running := decimal.Zero
	for _, e := range ordered {
		running = running.Add(e.SignedAmount())
		points = append(points, SeriesPoint{
			Timestamp: e.CreatedAt,
			Balance:   running,
		})
	}

	return points
}

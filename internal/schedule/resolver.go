package schedule

import (
	"sort"
	"time"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/model"
)

// Resolve filters playlist items to those eligible at the given instant,
// ordered ascending by position. An item with no rule is always eligible.
// An empty result is a valid outcome, not an error; callers render their
// idle state. Resolve holds no state and must be re-invoked with a fresh
// instant on every poll.
func Resolve(items []model.PlaylistItem, at time.Time) []model.PlaylistItem {
	eligible := make([]model.PlaylistItem, 0, len(items))
	for _, it := range items {
		if it.RecurrenceRule == nil || Matches(*it.RecurrenceRule, at) {
			eligible = append(eligible, it)
		}
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Position < eligible[j].Position
	})
	return eligible
}

// HighestPriority picks a single item when a caller needs one choice
// instead of a set: the highest rule priority wins, list order breaks
// ties. Items without a rule count as priority zero. ok is false for an
// empty input.
func HighestPriority(items []model.PlaylistItem) (model.PlaylistItem, bool) {
	if len(items) == 0 {
		return model.PlaylistItem{}, false
	}
	best := items[0]
	for _, it := range items[1:] {
		if itemPriority(it) > itemPriority(best) {
			best = it
		}
	}
	return best, true
}

func itemPriority(it model.PlaylistItem) int {
	if it.RecurrenceRule == nil {
		return 0
	}
	return it.RecurrenceRule.Priority
}

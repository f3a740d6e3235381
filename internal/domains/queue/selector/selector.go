// Package selector holds the pure queue-ordering rules: lower priority value
// wins, ties break on enqueue time, then id so the order is deterministic.
package selector

import (
	"patientflow/internal/domains/queue/model"
	"slices"
	"strings"
)

func compare(a, b model.VisitQueueEntry) int {
	if a.Priority != b.Priority {
		return a.Priority - b.Priority
	}

	if !a.EnqueuedAt.Equal(b.EnqueuedAt) {
		return a.EnqueuedAt.Compare(b.EnqueuedAt)
	}

	return strings.Compare(a.ID, b.ID)
}

// Order returns the entries sorted into serving order without mutating the
// input.
func Order(entries []model.VisitQueueEntry) []model.VisitQueueEntry {
	ordered := make([]model.VisitQueueEntry, len(entries))
	copy(ordered, entries)

	slices.SortFunc(ordered, compare)

	return ordered
}

// Next picks the waiting entry to serve next. The boolean is false when no
// entry is waiting.
func Next(entries []model.VisitQueueEntry) (model.VisitQueueEntry, bool) {
	var best model.VisitQueueEntry
	found := false

	for _, entry := range entries {
		if entry.Status != model.StatusWaiting {
			continue
		}

		if !found || compare(entry, best) < 0 {
			best = entry
			found = true
		}
	}

	return best, found
}

package selector_test

import (
	"patientflow/internal/domains/queue/model"
	"patientflow/internal/domains/queue/selector"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func entry(id string, priority int, enqueuedAt time.Time, status string) model.VisitQueueEntry {
	return model.VisitQueueEntry{
		ID:         id,
		Priority:   priority,
		EnqueuedAt: enqueuedAt,
		Status:     status,
	}
}

func TestOrder(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	// priority 3 enqueued first, then two priority 1 entries: urgency wins,
	// then arrival order.
	entries := []model.VisitQueueEntry{
		entry("a", 3, base, model.StatusWaiting),
		entry("b", 1, base.Add(time.Minute), model.StatusWaiting),
		entry("c", 1, base.Add(2*time.Minute), model.StatusWaiting),
	}

	ordered := selector.Order(entries)

	got := make([]string, len(ordered))
	for i, e := range ordered {
		got[i] = e.ID
	}

	assert.Equal(t, []string{"b", "c", "a"}, got)

	// input untouched
	assert.Equal(t, "a", entries[0].ID)
}

func TestOrder_TieBreakOnID(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	entries := []model.VisitQueueEntry{
		entry("z", 2, base, model.StatusWaiting),
		entry("a", 2, base, model.StatusWaiting),
	}

	ordered := selector.Order(entries)

	assert.Equal(t, "a", ordered[0].ID)
	assert.Equal(t, "z", ordered[1].ID)
}

func TestNext(t *testing.T) {
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		entries   []model.VisitQueueEntry
		wantID    string
		wantFound bool
	}{
		{
			name: "lowest priority value wins",
			entries: []model.VisitQueueEntry{
				entry("a", 5, base, model.StatusWaiting),
				entry("b", 1, base.Add(time.Minute), model.StatusWaiting),
			},
			wantID:    "b",
			wantFound: true,
		},
		{
			name: "earlier arrival wins within a priority band",
			entries: []model.VisitQueueEntry{
				entry("late", 2, base.Add(time.Minute), model.StatusWaiting),
				entry("early", 2, base, model.StatusWaiting),
			},
			wantID:    "early",
			wantFound: true,
		},
		{
			name: "non-waiting entries are skipped",
			entries: []model.VisitQueueEntry{
				entry("called", 1, base, model.StatusCalled),
				entry("waiting", 5, base.Add(time.Minute), model.StatusWaiting),
			},
			wantID:    "waiting",
			wantFound: true,
		},
		{
			name: "no waiting entries",
			entries: []model.VisitQueueEntry{
				entry("called", 1, base, model.StatusCalled),
				entry("done", 2, base, model.StatusCompleted),
			},
			wantFound: false,
		},
		{
			name:      "empty queue",
			entries:   nil,
			wantFound: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := selector.Next(tt.entries)

			assert.Equal(t, tt.wantFound, found)

			if tt.wantFound {
				assert.Equal(t, tt.wantID, got.ID)
			}
		})
	}
}

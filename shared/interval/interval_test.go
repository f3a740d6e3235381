package interval_test

import (
	"patientflow/shared/interval"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clock(t *testing.T, value string) time.Time {
	t.Helper()

	parsed, err := time.Parse("15:04", value)
	if err != nil {
		t.Fatalf("failed to parse clock value %s: %v", value, err)
	}

	return parsed
}

func TestIsValid(t *testing.T) {
	tests := []struct {
		name  string
		start string
		end   string
		want  bool
	}{
		{name: "ordered interval", start: "09:00", end: "10:00", want: true},
		{name: "zero length", start: "09:00", end: "09:00", want: false},
		{name: "reversed", start: "10:00", end: "09:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := interval.IsValid(clock(t, tt.start), clock(t, tt.end))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name   string
		aStart string
		aEnd   string
		bStart string
		bEnd   string
		want   bool
	}{
		{name: "partial overlap at tail", aStart: "09:00", aEnd: "10:00", bStart: "09:30", bEnd: "10:30", want: true},
		{name: "partial overlap at head", aStart: "09:00", aEnd: "10:00", bStart: "08:00", bEnd: "09:30", want: true},
		{name: "adjacent after", aStart: "09:00", aEnd: "10:00", bStart: "10:00", bEnd: "11:00", want: false},
		{name: "adjacent before", aStart: "09:00", aEnd: "10:00", bStart: "08:00", bEnd: "09:00", want: false},
		{name: "contained", aStart: "09:00", aEnd: "10:00", bStart: "09:15", bEnd: "09:45", want: true},
		{name: "containing", aStart: "09:00", aEnd: "10:00", bStart: "08:00", bEnd: "11:00", want: true},
		{name: "identical", aStart: "09:00", aEnd: "10:00", bStart: "09:00", bEnd: "10:00", want: true},
		{name: "disjoint", aStart: "09:00", aEnd: "10:00", bStart: "13:00", bEnd: "14:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := interval.Overlaps(clock(t, tt.aStart), clock(t, tt.aEnd), clock(t, tt.bStart), clock(t, tt.bEnd))
			assert.Equal(t, tt.want, got)

			// Overlap is symmetric.
			mirrored := interval.Overlaps(clock(t, tt.bStart), clock(t, tt.bEnd), clock(t, tt.aStart), clock(t, tt.aEnd))
			assert.Equal(t, tt.want, mirrored)
		})
	}
}

func TestContains(t *testing.T) {
	start := clock(t, "09:00")
	end := clock(t, "10:00")

	assert.True(t, interval.Contains(start, end, clock(t, "09:00")))
	assert.True(t, interval.Contains(start, end, clock(t, "09:59")))
	assert.False(t, interval.Contains(start, end, clock(t, "10:00")))
	assert.False(t, interval.Contains(start, end, clock(t, "08:59")))
}

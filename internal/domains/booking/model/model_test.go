package model_test

import (
	"patientflow/internal/domains/booking/model"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from string
		to   string
		want bool
	}{
		{name: "booked to in_use", from: model.StatusBooked, to: model.StatusInUse, want: true},
		{name: "booked to cancelled", from: model.StatusBooked, to: model.StatusCancelled, want: true},
		{name: "in_use to completed", from: model.StatusInUse, to: model.StatusCompleted, want: true},
		{name: "in_use to cancelled", from: model.StatusInUse, to: model.StatusCancelled, want: true},
		{name: "booked to completed", from: model.StatusBooked, to: model.StatusCompleted, want: false},
		{name: "completed to cancelled", from: model.StatusCompleted, to: model.StatusCancelled, want: false},
		{name: "cancelled to booked", from: model.StatusCancelled, to: model.StatusBooked, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestIsTerminalStatus(t *testing.T) {
	assert.True(t, model.IsTerminalStatus(model.StatusCompleted))
	assert.True(t, model.IsTerminalStatus(model.StatusCancelled))
	assert.False(t, model.IsTerminalStatus(model.StatusBooked))
	assert.False(t, model.IsTerminalStatus(model.StatusInUse))
}

package model_test

import (
	"patientflow/internal/domains/queue/model"
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
		{name: "waiting to called", from: model.StatusWaiting, to: model.StatusCalled, want: true},
		{name: "waiting to cancelled", from: model.StatusWaiting, to: model.StatusCancelled, want: true},
		{name: "called to in_progress", from: model.StatusCalled, to: model.StatusInProgress, want: true},
		{name: "called to no_show", from: model.StatusCalled, to: model.StatusNoShow, want: true},
		{name: "called to cancelled", from: model.StatusCalled, to: model.StatusCancelled, want: true},
		{name: "in_progress to completed", from: model.StatusInProgress, to: model.StatusCompleted, want: true},
		{name: "in_progress to cancelled", from: model.StatusInProgress, to: model.StatusCancelled, want: true},
		{name: "waiting to in_progress skips called", from: model.StatusWaiting, to: model.StatusInProgress, want: false},
		{name: "waiting to no_show", from: model.StatusWaiting, to: model.StatusNoShow, want: false},
		{name: "in_progress to no_show", from: model.StatusInProgress, to: model.StatusNoShow, want: false},
		{name: "completed is terminal", from: model.StatusCompleted, to: model.StatusCancelled, want: false},
		{name: "cancelled is terminal", from: model.StatusCancelled, to: model.StatusWaiting, want: false},
		{name: "no_show is terminal", from: model.StatusNoShow, to: model.StatusWaiting, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, model.CanTransition(tt.from, tt.to))
		})
	}
}

func TestStatusPredicates(t *testing.T) {
	for _, status := range model.ActiveStatuses() {
		assert.True(t, model.IsActiveStatus(status), status)
		assert.False(t, model.IsTerminalStatus(status), status)
	}

	for _, status := range []string{model.StatusCompleted, model.StatusCancelled, model.StatusNoShow} {
		assert.True(t, model.IsTerminalStatus(status), status)
		assert.False(t, model.IsActiveStatus(status), status)
	}
}

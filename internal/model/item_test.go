package model

import "testing"

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{StatusLost, StatusClaimed, true},
		{StatusFound, StatusClaimed, true},
		{StatusOpen, StatusClaimed, true},
		{StatusClaimed, StatusResolved, true},
		{StatusLost, StatusResolved, true},
		// No way back.
		{StatusClaimed, StatusFound, false},
		{StatusResolved, StatusClaimed, false},
		{StatusResolved, StatusOpen, false},
		// Same status is not a transition.
		{StatusClaimed, StatusClaimed, false},
		{StatusLost, StatusFound, false},
		{"unknown", StatusClaimed, false},
		{StatusLost, "", false},
	}

	for _, tt := range tests {
		if got := CanTransition(tt.from, tt.to); got != tt.want {
			t.Errorf("CanTransition(%q, %q) = %v, want %v", tt.from, tt.to, got, tt.want)
		}
	}
}

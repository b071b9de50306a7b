package models

import (
	"testing"
	"time"
)

func TestDaysUntil(t *testing.T) {
	now := time.Date(2020, 11, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int
	}{
		{name: "partial days round up", end: now.Add(36 * time.Hour), want: 2},
		{name: "exact day boundary", end: now.Add(48 * time.Hour), want: 2},
		{name: "less than a day", end: now.Add(time.Hour), want: 1},
		{name: "campaign over", end: now.Add(-time.Hour), want: 0},
		{name: "ends right now", end: now, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysUntil(tt.end, now); got != tt.want {
				t.Errorf("DaysUntil() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestProject_PercentRaised(t *testing.T) {
	tests := []struct {
		name   string
		raised int
		goal   int
		want   int
	}{
		{name: "halfway", raised: 2500000, goal: 5000000, want: 50},
		{name: "nothing raised", raised: 0, goal: 5000000, want: 0},
		{name: "over goal is capped", raised: 6000000, goal: 5000000, want: 100},
		{name: "zero goal", raised: 100, goal: 0, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			project := Project{AmountRaised: tt.raised}
			if got := project.PercentRaised(tt.goal); got != tt.want {
				t.Errorf("PercentRaised() = %d, want %d", got, tt.want)
			}
		})
	}
}

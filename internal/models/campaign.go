package models

import (
	"math"
	"time"
)

// Project represents a fundraising campaign's server-side state.
type Project struct {
	ID           int `json:"id"`
	AmountRaised int `json:"amount_raised"` // cents
}

// DaysUntil returns the whole number of days from now until the campaign end
// date, rounding partial days up. Past end dates yield zero.
func DaysUntil(end, now time.Time) int {
	remaining := end.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}

// PercentRaised returns campaign progress toward goal, capped at 100.
func (p *Project) PercentRaised(goal int) int {
	if goal <= 0 {
		return 0
	}
	percent := p.AmountRaised * 100 / goal
	if percent > 100 {
		percent = 100
	}
	return percent
}

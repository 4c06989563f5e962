package domain

import (
	"errors"
	"time"
)

var (
	ErrDayNotPast       = errors.New("completions can only be recorded for past days")
	ErrDayBeforeStart   = errors.New("completion day is before the habit start date")
	ErrInvalidDateRange = errors.New("start date cannot be after end date")
)

// CompletionEvent is the state of one habit on one calendar day.
type CompletionEvent struct {
	HabitID   string    `json:"habit_id"`
	Date      time.Time `json:"date"`
	Completed bool      `json:"completed"`
}

// StreakState is derived from completion history and never mutated directly.
type StreakState struct {
	Current         int `json:"current"`
	Longest         int `json:"longest"`
	TotalActiveDays int `json:"total_active_days"`
}

type Milestone struct {
	Days  int    `json:"days" yaml:"days"`
	Title string `json:"title" yaml:"title"`
	Icon  string `json:"icon" yaml:"icon"`
}

// DefaultMilestones are the streak lengths celebrated by the streak view.
var DefaultMilestones = []Milestone{
	{Days: 3, Title: "Getting Started", Icon: "🌱"},
	{Days: 7, Title: "Week Warrior", Icon: "💪"},
	{Days: 14, Title: "Two Week Champion", Icon: "🏆"},
	{Days: 30, Title: "Monthly Master", Icon: "👑"},
	{Days: 50, Title: "Eco Legend", Icon: "🌟"},
	{Days: 100, Title: "Planet Protector", Icon: "🌍"},
}

func MilestoneDays(milestones []Milestone) []int {
	days := make([]int, 0, len(milestones))
	for _, m := range milestones {
		days = append(days, m.Days)
	}
	return days
}

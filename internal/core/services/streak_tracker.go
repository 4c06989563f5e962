package services

import (
	"sort"
	"time"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
)

type dayTally struct {
	date      time.Time
	scheduled int
	completed int
}

// ComputeStreak derives the streak state from a completion history.
//
// A day counts as complete when every habit with an event that day is
// completed. Days without events have no scheduled habits and are skipped.
// Today is still in progress: if it is not complete yet it does not break
// the running streak. Events after today are ignored.
func ComputeStreak(history []domain.CompletionEvent, today time.Time) domain.StreakState {
	today = domain.DayOf(today)

	latest := make(map[string]map[string]bool)
	dates := make(map[string]time.Time)

	for _, e := range history {
		day := domain.DayOf(e.Date.In(today.Location()))
		if day.After(today) {
			continue
		}
		key := domain.DayKey(day)
		if _, ok := latest[key]; !ok {
			latest[key] = make(map[string]bool)
			dates[key] = day
		}
		latest[key][e.HabitID] = e.Completed
	}

	tallies := make([]dayTally, 0, len(latest))
	for key, habits := range latest {
		t := dayTally{date: dates[key], scheduled: len(habits)}
		for _, done := range habits {
			if done {
				t.completed++
			}
		}
		tallies = append(tallies, t)
	}

	sort.Slice(tallies, func(i, j int) bool {
		return tallies[i].date.Before(tallies[j].date)
	})

	var state domain.StreakState
	run := 0

	for _, t := range tallies {
		if t.scheduled == 0 {
			continue
		}
		if t.completed > 0 {
			state.TotalActiveDays++
		}

		if t.completed == t.scheduled {
			run++
			if run > state.Longest {
				state.Longest = run
			}
			continue
		}

		if t.date.Equal(today) {
			continue
		}
		run = 0
	}

	state.Current = run
	return state
}

// MilestoneReached returns the thresholds already covered by the current streak.
func MilestoneReached(state domain.StreakState, thresholds []int) []int {
	reached := make([]int, 0, len(thresholds))
	for _, t := range thresholds {
		if t <= state.Current {
			reached = append(reached, t)
		}
	}
	return reached
}

// NextMilestone returns the smallest threshold above the current streak and
// how many more days it takes to reach it.
func NextMilestone(state domain.StreakState, thresholds []int) (threshold int, daysToGo int, ok bool) {
	for _, t := range thresholds {
		if t > state.Current && (!ok || t < threshold) {
			threshold = t
			ok = true
		}
	}
	if !ok {
		return 0, 0, false
	}
	return threshold, threshold - state.Current, true
}

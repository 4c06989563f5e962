package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/services"
)

var day0 = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func day(n int) time.Time {
	return day0.AddDate(0, 0, n)
}

func ev(habitID string, n int, completed bool) domain.CompletionEvent {
	return domain.CompletionEvent{HabitID: habitID, Date: day(n), Completed: completed}
}

func TestComputeStreak(t *testing.T) {
	tests := []struct {
		name    string
		history []domain.CompletionEvent
		today   time.Time
		want    domain.StreakState
	}{
		{
			name:  "Edge Case: Empty history",
			today: day(0),
			want:  domain.StreakState{},
		},
		{
			name: "Success: Missed day resets current but keeps longest",
			history: []domain.CompletionEvent{
				ev("a", 0, true), ev("a", 1, true), ev("a", 2, true),
				ev("a", 3, false),
				ev("a", 4, true), ev("a", 5, true),
			},
			today: day(5),
			want:  domain.StreakState{Current: 2, Longest: 3, TotalActiveDays: 5},
		},
		{
			name: "Success: A day is complete only when every scheduled habit is done",
			history: []domain.CompletionEvent{
				ev("a", 0, true), ev("b", 0, true),
				ev("a", 1, true), ev("b", 1, false),
				ev("a", 2, true), ev("b", 2, true),
			},
			today: day(2),
			want:  domain.StreakState{Current: 1, Longest: 1, TotalActiveDays: 3},
		},
		{
			name: "Success: Days without events are skipped",
			history: []domain.CompletionEvent{
				ev("a", 0, true),
				ev("a", 3, true),
			},
			today: day(3),
			want:  domain.StreakState{Current: 2, Longest: 2, TotalActiveDays: 2},
		},
		{
			name: "Success: Unfinished today keeps the running streak",
			history: []domain.CompletionEvent{
				ev("a", 0, true), ev("a", 1, true),
				ev("a", 2, false),
			},
			today: day(2),
			want:  domain.StreakState{Current: 2, Longest: 2, TotalActiveDays: 2},
		},
		{
			name: "Success: Latest event per day wins",
			history: []domain.CompletionEvent{
				ev("a", 0, true),
				ev("a", 1, true), ev("a", 1, false),
				ev("a", 2, false), ev("a", 2, true),
			},
			today: day(3),
			want:  domain.StreakState{Current: 1, Longest: 1, TotalActiveDays: 2},
		},
		{
			name: "Success: Unsorted input",
			history: []domain.CompletionEvent{
				ev("a", 2, true), ev("a", 0, true), ev("a", 1, true),
			},
			today: day(2),
			want:  domain.StreakState{Current: 3, Longest: 3, TotalActiveDays: 3},
		},
		{
			name: "Edge Case: Events after today are ignored",
			history: []domain.CompletionEvent{
				ev("a", 0, true), ev("a", 1, true), ev("a", 2, true),
			},
			today: day(1),
			want:  domain.StreakState{Current: 2, Longest: 2, TotalActiveDays: 2},
		},
		{
			name: "Success: A day with zero completions is not active",
			history: []domain.CompletionEvent{
				ev("a", 0, false), ev("b", 0, false),
				ev("a", 1, true), ev("b", 1, false),
			},
			today: day(2),
			want:  domain.StreakState{Current: 0, Longest: 0, TotalActiveDays: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := services.ComputeStreak(tt.history, tt.today)

			assert.Equal(t, tt.want, got)
			assert.LessOrEqual(t, got.Current, got.Longest)
		})
	}
}

func TestMilestones(t *testing.T) {
	thresholds := domain.MilestoneDays(domain.DefaultMilestones)

	t.Run("Success: Streak of 7 reaches 3 and 7", func(t *testing.T) {
		reached := services.MilestoneReached(domain.StreakState{Current: 7, Longest: 7}, thresholds)
		assert.Equal(t, []int{3, 7}, reached)

		next, toGo, ok := services.NextMilestone(domain.StreakState{Current: 7}, thresholds)
		assert.True(t, ok)
		assert.Equal(t, 14, next)
		assert.Equal(t, 7, toGo)
	})

	t.Run("Edge Case: Nothing reached at zero", func(t *testing.T) {
		assert.Empty(t, services.MilestoneReached(domain.StreakState{}, thresholds))
	})

	t.Run("Edge Case: No next milestone past the last one", func(t *testing.T) {
		_, _, ok := services.NextMilestone(domain.StreakState{Current: 120, Longest: 120}, thresholds)
		assert.False(t, ok)
	})
}

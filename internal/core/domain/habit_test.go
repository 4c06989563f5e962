package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
)

func TestNewHabit(t *testing.T) {
	now := time.Date(2024, 3, 10, 18, 30, 0, 0, time.UTC)

	t.Run("Success: Creates valid habit with defaults", func(t *testing.T) {
		h, err := domain.NewHabit("  Bike to work ", "", "", now)

		require.NoError(t, err)
		assert.NotEmpty(t, h.ID)
		assert.Equal(t, "Bike to work", h.Title)
		assert.Equal(t, domain.DefaultIcon, h.Icon)
		assert.Equal(t, 0, h.Streak)
		assert.False(t, h.CompletedToday)
		assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), h.StartDate, "start date is truncated to the day")
	})

	t.Run("Success: Two habits get distinct ids", func(t *testing.T) {
		a, err := domain.NewHabit("A", "", "", now)
		require.NoError(t, err)
		b, err := domain.NewHabit("B", "", "", now)
		require.NoError(t, err)

		assert.NotEqual(t, a.ID, b.ID)
	})

	tests := []struct {
		name    string
		title   string
		desc    string
		wantErr error
	}{
		{name: "Error: Empty Title", title: "   ", wantErr: domain.ErrHabitTitleEmpty},
		{name: "Error: Title Too Long", title: strings.Repeat("a", domain.MaxTitleLen+1), wantErr: domain.ErrHabitTitleTooLong},
		{name: "Error: Description Too Long", title: "ok", desc: strings.Repeat("d", domain.MaxDescLen+1), wantErr: domain.ErrHabitDescTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.NewHabit(tt.title, tt.desc, "", now)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHabit_Validate(t *testing.T) {
	tests := []struct {
		name    string
		habit   domain.Habit
		wantErr error
	}{
		{
			name:  "Success: Completed habit with streak",
			habit: domain.Habit{ID: "2", Title: "Recycle Waste", CompletedToday: true, Streak: 12},
		},
		{
			name:    "Error: Missing ID",
			habit:   domain.Habit{Title: "Recycle Waste"},
			wantErr: domain.ErrHabitInvalidID,
		},
		{
			name:    "Error: Negative streak",
			habit:   domain.Habit{ID: "1", Title: "Save Water", Streak: -1},
			wantErr: domain.ErrNegativeStreak,
		},
		{
			name:    "Error: Completed today with zero streak",
			habit:   domain.Habit{ID: "1", Title: "Save Water", CompletedToday: true},
			wantErr: domain.ErrStreakMismatch,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.habit.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestHabit_Toggle(t *testing.T) {
	t.Run("Success: Toggle twice restores the habit", func(t *testing.T) {
		h := domain.Habit{ID: "1", Title: "Save Water", Streak: 5}

		assert.True(t, h.Toggle())
		assert.Equal(t, 6, h.Streak)

		assert.False(t, h.Toggle())
		assert.Equal(t, 5, h.Streak)
	})

	t.Run("Edge Case: Undo never drops the streak below zero", func(t *testing.T) {
		h := domain.Habit{ID: "1", Title: "Save Water", CompletedToday: true, Streak: 0}

		assert.True(t, h.Uncomplete())
		assert.Equal(t, 0, h.Streak)
	})

	t.Run("Edge Case: Complete is a no-op when already completed", func(t *testing.T) {
		h := domain.Habit{ID: "1", Title: "Save Water", CompletedToday: true, Streak: 3}

		assert.False(t, h.Complete())
		assert.Equal(t, 3, h.Streak)
	})
}

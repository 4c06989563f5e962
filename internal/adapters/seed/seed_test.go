package seed_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/adapters/seed"
	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
)

var clock = domain.FixedClock{At: time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)}

func TestDefault(t *testing.T) {
	f, err := seed.Default()
	require.NoError(t, err)

	world, err := f.Build(clock, "")
	require.NoError(t, err)

	t.Run("Success: Session state", func(t *testing.T) {
		s := world.Session
		assert.Equal(t, "4", s.UserID)
		assert.Equal(t, 1890, s.Ledger.Balance())

		habits := s.Habits.ListHabits()
		require.Len(t, habits, 6)
		assert.Equal(t, "Save Water", habits[0].Title)
		assert.True(t, habits[1].CompletedToday)
		assert.Equal(t, 12, habits[1].Streak)
		assert.Equal(t, time.Date(2024, 5, 16, 0, 0, 0, 0, time.UTC), habits[0].StartDate)

		assert.Equal(t, 33, s.Habits.CompletionRate())
	})

	t.Run("Success: History drives the streak", func(t *testing.T) {
		state := world.Session.Habits.StreakState()
		assert.Equal(t, domain.StreakState{Current: 5, Longest: 12, TotalActiveDays: 25}, state)
	})

	t.Run("Success: Catalog, leaderboard and groups", func(t *testing.T) {
		assert.Len(t, world.Catalog.List(""), 9)
		assert.Len(t, world.Catalog.List(domain.CategoryVirtual), 4)

		item, err := world.Catalog.Get("solar-power-bank")
		require.NoError(t, err)
		assert.Equal(t, 2000, item.Price)

		assert.Len(t, world.Leaderboard, 8)

		members, err := world.Groups.Members("greenfam")
		require.NoError(t, err)
		assert.Equal(t, []string{"4", "3", "7"}, members)

		assert.Equal(t, domain.MilestoneDays(domain.DefaultMilestones), domain.MilestoneDays(world.Milestones))
	})

	t.Run("Success: Achievements", func(t *testing.T) {
		list := world.Session.Achievements.List()
		require.Len(t, list, 6)
		assert.True(t, list[0].Unlocked)
		assert.False(t, list[4].Unlocked)
		assert.Equal(t, 67, list[4].Progress)
	})
}

func TestBuild_UserOverride(t *testing.T) {
	f, err := seed.Default()
	require.NoError(t, err)

	t.Run("Success: Fresh id", func(t *testing.T) {
		world, err := f.Build(clock, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", world.Session.UserID)
	})

	t.Run("Success: Seeded id", func(t *testing.T) {
		world, err := f.Build(clock, "4")
		require.NoError(t, err)
		assert.Equal(t, "4", world.Session.UserID)
	})

	t.Run("Error: Id of another leaderboard entry", func(t *testing.T) {
		_, err := f.Build(clock, "3")
		assert.ErrorIs(t, err, seed.ErrUserIDTaken)
	})
}

func TestLoad(t *testing.T) {
	t.Run("Success: Custom file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "seed.yaml")
		data := `
user: { id: "u1", name: "Tester", balance: 50 }
habits:
  - { id: "h1", title: "Compost", started_days_ago: 3 }
history:
  - { from_days_ago: 3, to_days_ago: 1 }
store:
  - { id: "pin", name: "Pin", price: 20, category: virtual, available: true }
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

		f, err := seed.Load(path)
		require.NoError(t, err)

		world, err := f.Build(clock, "")
		require.NoError(t, err)

		assert.Equal(t, 50, world.Session.Ledger.Balance())
		assert.Equal(t, 3, world.Session.Habits.StreakState().Current)
		assert.Equal(t, domain.DefaultMilestones, world.Milestones)
	})

	t.Run("Error: Missing file", func(t *testing.T) {
		_, err := seed.Load(filepath.Join(t.TempDir(), "missing.yaml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("Error: Malformed YAML", func(t *testing.T) {
		_, err := seed.Parse([]byte("habits: [unterminated"))
		assert.Error(t, err)
	})

	t.Run("Error: History range reaching today", func(t *testing.T) {
		f, err := seed.Parse([]byte(`
user: { id: "u1" }
habits: [{ id: "h1", title: "Compost" }]
history: [{ from_days_ago: 2, to_days_ago: 0 }]
`))
		require.NoError(t, err)

		_, err = f.Build(clock, "")
		assert.ErrorIs(t, err, seed.ErrInvalidHistoryRange)
	})

	t.Run("Error: History before the habit started", func(t *testing.T) {
		f, err := seed.Parse([]byte(`
user: { id: "u1" }
habits: [{ id: "h1", title: "Compost", started_days_ago: 3 }]
history: [{ from_days_ago: 5, to_days_ago: 1 }]
`))
		require.NoError(t, err)

		_, err = f.Build(clock, "")
		assert.ErrorIs(t, err, domain.ErrDayBeforeStart)
	})

	t.Run("Error: History for an unknown habit", func(t *testing.T) {
		f, err := seed.Parse([]byte(`
user: { id: "u1" }
habits: [{ id: "h1", title: "Compost" }]
history: [{ from_days_ago: 2, to_days_ago: 1, habits: ["nope"] }]
`))
		require.NoError(t, err)

		_, err = f.Build(clock, "")
		assert.ErrorIs(t, err, domain.ErrHabitNotFound)
	})
}

package seed

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/services"
)

//go:embed default.yaml
var defaultSeed []byte

var (
	ErrInvalidHistoryRange = errors.New("history range must satisfy from_days_ago >= to_days_ago >= 1")
	ErrUserIDTaken         = errors.New("user id belongs to another leaderboard entry")
)

type User struct {
	ID                  string           `yaml:"id"`
	Name                string           `yaml:"name"`
	Balance             int              `yaml:"balance"`
	CompletionsBaseline int              `yaml:"completions_baseline"`
	Impact              domain.EcoImpact `yaml:"impact"`
}

type Habit struct {
	domain.Habit   `yaml:",inline"`
	StartedDaysAgo int `yaml:"started_days_ago"`
}

// HistoryRange marks habits completed on every day of an inclusive range
// counted back from today. An empty Habits list covers every seeded habit.
type HistoryRange struct {
	FromDaysAgo int      `yaml:"from_days_ago"`
	ToDaysAgo   int      `yaml:"to_days_ago"`
	Habits      []string `yaml:"habits"`
}

// File is the on-disk seed layout.
type File struct {
	User         User                      `yaml:"user"`
	Habits       []Habit                   `yaml:"habits"`
	History      []HistoryRange            `yaml:"history"`
	Achievements []domain.Achievement      `yaml:"achievements"`
	Store        []domain.StoreItem        `yaml:"store"`
	Leaderboard  []domain.LeaderboardEntry `yaml:"leaderboard"`
	Groups       []domain.Group            `yaml:"groups"`
	Milestones   []domain.Milestone        `yaml:"milestones"`
}

// World is a seed materialized against a clock.
type World struct {
	Session     *services.UserSession
	Catalog     *services.Catalog
	Leaderboard []domain.LeaderboardEntry
	Groups      *services.GroupDirectory
	Milestones  []domain.Milestone
}

// Default returns the embedded seed.
func Default() (*File, error) {
	return Parse(defaultSeed)
}

// Load reads a seed file; an empty path means the embedded seed.
func Load(path string) (*File, error) {
	if path == "" {
		return Default()
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read seed %s: %w", path, err)
	}

	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	return f, nil
}

func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed: %w", err)
	}
	return &f, nil
}

// Build turns the seed into live components. userID overrides the seeded
// user id when not empty; it must not name another leaderboard entry, whose
// standing would otherwise be replaced by the seeded session.
func (f *File) Build(clock domain.Clock, userID string) (*World, error) {
	if userID != "" && userID != f.User.ID {
		for _, e := range f.Leaderboard {
			if e.UserID == userID {
				return nil, fmt.Errorf("user %q (%s): %w", userID, e.Name, ErrUserIDTaken)
			}
		}
	}

	today := domain.DayOf(clock.Now())

	habits := make([]domain.Habit, 0, len(f.Habits))
	for _, h := range f.Habits {
		habit := h.Habit
		if h.StartedDaysAgo > 0 {
			habit.StartDate = today.AddDate(0, 0, -h.StartedDaysAgo)
		}
		habits = append(habits, habit)
	}

	if userID == "" {
		userID = f.User.ID
	}

	session, err := services.NewUserSession(clock, services.SessionConfig{
		UserID:              userID,
		Name:                f.User.Name,
		Habits:              habits,
		Balance:             f.User.Balance,
		Achievements:        f.Achievements,
		Impact:              f.User.Impact,
		CompletionsBaseline: f.User.CompletionsBaseline,
	})
	if err != nil {
		return nil, err
	}

	if err := f.applyHistory(session.Habits, today); err != nil {
		return nil, err
	}

	catalog, err := services.NewCatalog(f.Store...)
	if err != nil {
		return nil, err
	}

	milestones := f.Milestones
	if len(milestones) == 0 {
		milestones = domain.DefaultMilestones
	}

	return &World{
		Session:     session,
		Catalog:     catalog,
		Leaderboard: append([]domain.LeaderboardEntry(nil), f.Leaderboard...),
		Groups:      services.NewGroupDirectory(f.Groups...),
		Milestones:  milestones,
	}, nil
}

func (f *File) applyHistory(registry *services.HabitRegistry, today time.Time) error {
	for i, r := range f.History {
		if r.ToDaysAgo < 1 || r.FromDaysAgo < r.ToDaysAgo {
			return fmt.Errorf("history[%d]: %w", i, ErrInvalidHistoryRange)
		}

		ids := r.Habits
		if len(ids) == 0 {
			ids = make([]string, 0, len(f.Habits))
			for _, h := range f.Habits {
				ids = append(ids, h.ID)
			}
		}

		for ago := r.FromDaysAgo; ago >= r.ToDaysAgo; ago-- {
			day := today.AddDate(0, 0, -ago)
			for _, id := range ids {
				if err := registry.RecordCompletion(id, day, true); err != nil {
					return fmt.Errorf("history[%d] habit %q: %w", i, id, err)
				}
			}
		}
	}
	return nil
}

package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
)

// SessionRepository hands out one isolated session per user.
type SessionRepository interface {
	Get(ctx context.Context, userID string) (*UserSession, error)
	Save(ctx context.Context, session *UserSession) error
}

type SessionConfig struct {
	UserID              string
	Name                string
	Habits              []domain.Habit
	Balance             int
	Achievements        []domain.Achievement
	Impact              domain.EcoImpact
	CompletionsBaseline int
}

// UserSession is the caller-owned state of a single user. Each component
// serializes its own mutations; mu guards the session-level bookkeeping and
// makes compound operations (toggle + reward + evaluate) atomic.
type UserSession struct {
	UserID string
	Name   string

	Habits       *HabitRegistry
	Ledger       *PointsLedger
	Achievements *AchievementEngine

	mu                  sync.Mutex
	impact              domain.EcoImpact
	completionsBaseline int
	rewarded            map[string]bool
	receipts            []domain.Receipt
}

func NewUserSession(clock domain.Clock, cfg SessionConfig) (*UserSession, error) {
	if cfg.UserID == "" {
		return nil, domain.ErrUserInvalidID
	}

	habits, err := NewHabitRegistry(clock, cfg.Habits...)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", cfg.UserID, err)
	}

	ledger, err := NewPointsLedger(clock, cfg.Balance)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", cfg.UserID, err)
	}

	achievements, err := NewAchievementEngine(cfg.Achievements...)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", cfg.UserID, err)
	}

	s := &UserSession{
		UserID:              cfg.UserID,
		Name:                cfg.Name,
		Habits:              habits,
		Ledger:              ledger,
		Achievements:        achievements,
		impact:              cfg.Impact,
		completionsBaseline: cfg.CompletionsBaseline,
		rewarded:            make(map[string]bool),
	}

	today := domain.DayOf(clock.Now())
	for _, h := range cfg.Habits {
		if h.CompletedToday {
			s.rewarded[rewardKey(h.ID, today)] = true
		}
	}

	return s, nil
}

func (s *UserSession) Receipts() []domain.Receipt {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.Receipt, len(s.receipts))
	copy(out, s.receipts)
	return out
}

// progressMetrics collects the signals achievements are gated on. Caller holds mu.
func (s *UserSession) progressMetrics(streak domain.StreakState) map[domain.Metric]int {
	m := s.impact.Metrics()
	m[domain.MetricHabitsCompleted] = s.completionsBaseline + s.Habits.TotalCompletions()
	m[domain.MetricCurrentStreak] = streak.Current
	m[domain.MetricLongestStreak] = streak.Longest
	m[domain.MetricActiveDays] = streak.TotalActiveDays
	return m
}

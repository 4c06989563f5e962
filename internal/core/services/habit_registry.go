package services

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
)

// HabitRegistry owns one user's habits and their per-day completion state.
// Mutations are serialized; reads observe a consistent snapshot.
type HabitRegistry struct {
	mu sync.RWMutex

	clock  domain.Clock
	order  []string
	habits map[string]*domain.Habit

	// day key -> habit id -> completed, latest state only
	days  map[string]map[string]bool
	dates map[string]time.Time
}

func NewHabitRegistry(clock domain.Clock, habits ...domain.Habit) (*HabitRegistry, error) {
	r := &HabitRegistry{
		clock:  clock,
		habits: make(map[string]*domain.Habit, len(habits)),
		days:   make(map[string]map[string]bool),
		dates:  make(map[string]time.Time),
	}

	today := r.today()
	for _, h := range habits {
		if err := h.Validate(); err != nil {
			return nil, fmt.Errorf("habit %q: %w", h.ID, err)
		}
		if _, exists := r.habits[h.ID]; exists {
			return nil, fmt.Errorf("habit %q: %w", h.ID, domain.ErrDuplicateID)
		}

		habit := h
		if !habit.StartDate.IsZero() {
			habit.StartDate = domain.DayOf(habit.StartDate.In(today.Location()))
		}
		r.habits[habit.ID] = &habit
		r.order = append(r.order, habit.ID)

		if habit.CompletedToday {
			r.set(habit.ID, today, true)
		}
	}

	return r, nil
}

func (r *HabitRegistry) today() time.Time {
	return domain.DayOf(r.clock.Now())
}

func (r *HabitRegistry) set(habitID string, day time.Time, completed bool) {
	key := domain.DayKey(day)
	if _, ok := r.days[key]; !ok {
		r.days[key] = make(map[string]bool)
		r.dates[key] = day
	}
	r.days[key][habitID] = completed
}

func (r *HabitRegistry) completedOn(habitID string, day time.Time) bool {
	return r.days[domain.DayKey(day)][habitID]
}

func (r *HabitRegistry) snapshot(h *domain.Habit, today time.Time) domain.Habit {
	out := *h
	out.CompletedToday = r.completedOn(h.ID, today)
	return out
}

// ToggleHabit flips today's completion of a habit and adjusts its streak.
func (r *HabitRegistry) ToggleHabit(habitID string) (domain.Habit, error) {
	h, _, err := r.toggle(habitID)
	return h, err
}

func (r *HabitRegistry) toggle(habitID string) (domain.Habit, time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	today := r.today()

	h, ok := r.habits[habitID]
	if !ok {
		return domain.Habit{}, today, domain.ErrHabitNotFound
	}

	// the flag belongs to the day it was set on
	h.CompletedToday = r.completedOn(habitID, today)
	h.Toggle()
	r.set(habitID, today, h.CompletedToday)

	return *h, today, nil
}

// AddHabit registers a user-created habit that starts today.
func (r *HabitRegistry) AddHabit(title, description, icon string) (domain.Habit, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, err := domain.NewHabit(title, description, icon, r.clock.Now())
	if err != nil {
		return domain.Habit{}, err
	}

	r.habits[h.ID] = h
	r.order = append(r.order, h.ID)
	return *h, nil
}

// RecordCompletion sets the state of a habit on a past day on or after its
// start. It never touches the streak counter, which only changes through
// ToggleHabit.
func (r *HabitRegistry) RecordCompletion(habitID string, day time.Time, completed bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	h, ok := r.habits[habitID]
	if !ok {
		return domain.ErrHabitNotFound
	}

	today := r.today()
	day = domain.DayOf(day.In(today.Location()))
	if !day.Before(today) {
		return domain.ErrDayNotPast
	}
	if !r.existsOn(h, day) {
		return domain.ErrDayBeforeStart
	}

	r.set(habitID, day, completed)
	return nil
}

func (r *HabitRegistry) Habit(habitID string) (domain.Habit, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.habits[habitID]
	if !ok {
		return domain.Habit{}, domain.ErrHabitNotFound
	}
	return r.snapshot(h, r.today()), nil
}

// ListHabits returns every habit in insertion order.
func (r *HabitRegistry) ListHabits() []domain.Habit {
	r.mu.RLock()
	defer r.mu.RUnlock()

	today := r.today()
	list := make([]domain.Habit, 0, len(r.order))
	for _, id := range r.order {
		list = append(list, r.snapshot(r.habits[id], today))
	}
	return list
}

// CompletionRate is the rounded percentage of habits completed today.
func (r *HabitRegistry) CompletionRate() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if len(r.order) == 0 {
		return 0
	}

	today := r.today()
	completed := 0
	for _, id := range r.order {
		if r.completedOn(id, today) {
			completed++
		}
	}

	return int(math.Round(float64(completed) / float64(len(r.order)) * 100))
}

// TotalCompletions counts the completed (habit, day) pairs the history reports.
func (r *HabitRegistry) TotalCompletions() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	total := 0
	for key, habits := range r.days {
		for id, done := range habits {
			if done && r.existsOn(r.habits[id], r.dates[key]) {
				total++
			}
		}
	}
	return total
}

func (r *HabitRegistry) existsOn(h *domain.Habit, day time.Time) bool {
	return h.StartDate.IsZero() || !h.StartDate.After(day)
}

// History returns one event per (day, existing habit) from the first tracked
// day up to today, in chronological then insertion order. Habits without a
// record on a day are reported as not completed.
func (r *HabitRegistry) History() []domain.CompletionEvent {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.history()
}

func (r *HabitRegistry) history() []domain.CompletionEvent {
	today := r.today()

	start := today
	for _, h := range r.habits {
		if !h.StartDate.IsZero() && h.StartDate.Before(start) {
			start = h.StartDate
		}
	}
	for _, d := range r.dates {
		if d.Before(start) {
			start = d
		}
	}

	var events []domain.CompletionEvent
	for day := start; !day.After(today); day = day.AddDate(0, 0, 1) {
		for _, id := range r.order {
			h := r.habits[id]
			if !r.existsOn(h, day) {
				continue
			}
			events = append(events, domain.CompletionEvent{
				HabitID:   id,
				Date:      day,
				Completed: r.completedOn(id, day),
			})
		}
	}
	return events
}

// StreakState computes the overall streak from the registry's history.
func (r *HabitRegistry) StreakState() domain.StreakState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return ComputeStreak(r.history(), r.today())
}

// WeeklyStats summarizes completions per habit over [from, to].
func (r *HabitRegistry) WeeklyStats(from, to time.Time) (*domain.WeeklyStats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loc := r.clock.Now().Location()
	startDate := domain.DayOf(from.In(loc))
	endDate := domain.DayOf(to.In(loc))
	if startDate.After(endDate) {
		return nil, domain.ErrInvalidDateRange
	}

	stats := &domain.WeeklyStats{
		StartDate:   domain.DayKey(startDate),
		EndDate:     domain.DayKey(endDate),
		TotalHabits: len(r.order),
		HabitStats:  make([]domain.HabitStat, 0, len(r.order)),
	}

	totalDaysPossible := 0
	totalDaysCompleted := 0

	for _, id := range r.order {
		h := r.habits[id]
		hStat := domain.HabitStat{
			HabitID:       h.ID,
			HabitTitle:    h.Title,
			Icon:          h.Icon,
			DailyProgress: make([]bool, 0),
		}

		for currentDate := startDate; !currentDate.After(endDate); currentDate = currentDate.AddDate(0, 0, 1) {
			done := r.completedOn(id, currentDate)
			hStat.DailyProgress = append(hStat.DailyProgress, done)

			if !r.existsOn(h, currentDate) {
				continue
			}

			hStat.DaysTracked++
			totalDaysPossible++
			if done {
				hStat.DaysCompleted++
				totalDaysCompleted++
			}
		}

		if hStat.DaysTracked > 0 {
			hStat.CompletionRate = float64(hStat.DaysCompleted) / float64(hStat.DaysTracked) * 100
		}

		stats.HabitStats = append(stats.HabitStats, hStat)
	}

	if totalDaysPossible > 0 {
		stats.OverallRate = float64(totalDaysCompleted) / float64(totalDaysPossible) * 100
	}

	return stats, nil
}

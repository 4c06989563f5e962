package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHabitTitleEmpty   = errors.New("habit title cannot be empty")
	ErrHabitTitleTooLong = errors.New("habit title is too long (max 100 chars)")
	ErrHabitDescTooLong  = errors.New("habit description is too long (max 500 chars)")
	ErrHabitInvalidID    = errors.New("habit id cannot be empty")
	ErrNegativeStreak    = errors.New("habit streak cannot be negative")
	ErrStreakMismatch    = errors.New("habit completed today must have a streak of at least 1")
)

const (
	DefaultIcon = "leaf"
	MaxTitleLen = 100
	MaxDescLen  = 500
)

type Habit struct {
	ID             string    `json:"id" yaml:"id"`
	Title          string    `json:"title" yaml:"title"`
	Description    string    `json:"description,omitempty" yaml:"description"`
	Icon           string    `json:"icon" yaml:"icon"`
	CompletedToday bool      `json:"completed_today" yaml:"completed_today"`
	Streak         int       `json:"streak" yaml:"streak"`
	StartDate      time.Time `json:"start_date" yaml:"-"`
}

func validateText(title, desc string) (string, string, error) {
	cleanTitle := strings.TrimSpace(title)
	if cleanTitle == "" {
		return "", "", ErrHabitTitleEmpty
	}
	if len(cleanTitle) > MaxTitleLen {
		return "", "", ErrHabitTitleTooLong
	}

	cleanDesc := strings.TrimSpace(desc)
	if len(cleanDesc) > MaxDescLen {
		return "", "", ErrHabitDescTooLong
	}

	return cleanTitle, cleanDesc, nil
}

// NewHabit builds a user-added habit that starts today with no streak.
func NewHabit(title, description, icon string, now time.Time) (*Habit, error) {
	cleanTitle, cleanDesc, err := validateText(title, description)
	if err != nil {
		return nil, err
	}

	if icon == "" {
		icon = DefaultIcon
	}

	return &Habit{
		ID:          uuid.New().String(),
		Title:       cleanTitle,
		Description: cleanDesc,
		Icon:        icon,
		StartDate:   DayOf(now),
	}, nil
}

// Validate checks a seeded habit before it enters a registry.
func (h *Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return ErrHabitInvalidID
	}
	if _, _, err := validateText(h.Title, h.Description); err != nil {
		return err
	}
	if h.Streak < 0 {
		return ErrNegativeStreak
	}
	if h.CompletedToday && h.Streak < 1 {
		return ErrStreakMismatch
	}
	return nil
}

// Complete marks the habit done for today. It reports false when it already was.
func (h *Habit) Complete() bool {
	if h.CompletedToday {
		return false
	}
	h.CompletedToday = true
	h.Streak++
	return true
}

// Uncomplete undoes today's completion. The streak is decremented, never below zero.
func (h *Habit) Uncomplete() bool {
	if !h.CompletedToday {
		return false
	}
	h.CompletedToday = false
	if h.Streak > 0 {
		h.Streak--
	}
	return true
}

// Toggle flips today's completion and returns the new state.
func (h *Habit) Toggle() bool {
	if h.CompletedToday {
		h.Uncomplete()
	} else {
		h.Complete()
	}
	return h.CompletedToday
}

package domain

import (
	"errors"
	"strings"
)

var (
	ErrAchievementInvalidID = errors.New("achievement id cannot be empty")
	ErrInvalidMaxProgress   = errors.New("achievement max progress must be positive")
	ErrInvalidProgress      = errors.New("achievement progress must be within [0, max progress]")
)

// Metric names a progress signal an achievement can be gated on.
type Metric string

const (
	MetricHabitsCompleted Metric = "habits_completed"
	MetricCurrentStreak   Metric = "current_streak"
	MetricLongestStreak   Metric = "longest_streak"
	MetricActiveDays      Metric = "active_days"
	MetricWaterSaved      Metric = "water_saved_liters"
	MetricEnergySaved     Metric = "energy_saved_kwh"
	MetricCO2Reduced      Metric = "co2_reduced_kg"
	MetricPlasticAvoided  Metric = "plastic_avoided_items"
)

type UnlockCondition struct {
	Metric Metric `json:"metric" yaml:"metric"`
}

type Achievement struct {
	ID          string          `json:"id" yaml:"id"`
	Title       string          `json:"title" yaml:"title"`
	Description string          `json:"description" yaml:"description"`
	Condition   UnlockCondition `json:"condition" yaml:"condition"`
	Progress    int             `json:"progress" yaml:"progress"`
	MaxProgress int             `json:"max_progress" yaml:"max_progress"`
	Unlocked    bool            `json:"unlocked" yaml:"unlocked"`
}

func (a *Achievement) Validate() error {
	if strings.TrimSpace(a.ID) == "" {
		return ErrAchievementInvalidID
	}
	if a.MaxProgress <= 0 {
		return ErrInvalidMaxProgress
	}
	if a.Progress < 0 || a.Progress > a.MaxProgress {
		return ErrInvalidProgress
	}
	return nil
}

// Apply records a new progress signal and reports whether the achievement
// went from locked to unlocked. Once unlocked it stays unlocked.
func (a *Achievement) Apply(signal int) bool {
	if signal < 0 {
		signal = 0
	}
	a.Progress = min(signal, a.MaxProgress)

	if a.Unlocked {
		return false
	}
	if a.Progress >= a.MaxProgress {
		a.Unlocked = true
		return true
	}
	return false
}

// Percent is the display progress, 100 once unlocked.
func (a Achievement) Percent() int {
	if a.Unlocked {
		return 100
	}
	return a.Progress * 100 / a.MaxProgress
}

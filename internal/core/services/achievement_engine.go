package services

import (
	"fmt"
	"sync"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
)

// AchievementEngine tracks one user's achievements. Unlocking is one-way and
// each unlock is reported by exactly one Evaluate call.
type AchievementEngine struct {
	mu    sync.Mutex
	order []string
	items map[string]*domain.Achievement
}

func NewAchievementEngine(achievements ...domain.Achievement) (*AchievementEngine, error) {
	e := &AchievementEngine{
		items: make(map[string]*domain.Achievement, len(achievements)),
	}

	for _, a := range achievements {
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("achievement %q: %w", a.ID, err)
		}
		if _, exists := e.items[a.ID]; exists {
			return nil, fmt.Errorf("achievement %q: %w", a.ID, domain.ErrDuplicateID)
		}

		item := a
		if item.Progress >= item.MaxProgress {
			item.Unlocked = true
		}
		e.items[item.ID] = &item
		e.order = append(e.order, item.ID)
	}

	return e, nil
}

// Evaluate applies progress signals keyed by achievement id and returns the
// achievements that became unlocked in this call. Unknown ids are ignored.
func (e *AchievementEngine) Evaluate(signals map[string]int) []domain.Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()

	var unlocked []domain.Achievement
	for _, id := range e.order {
		signal, ok := signals[id]
		if !ok {
			continue
		}
		a := e.items[id]
		if a.Apply(signal) {
			unlocked = append(unlocked, *a)
		}
	}
	return unlocked
}

// EvaluateMetrics maps each achievement's condition metric to a signal and
// evaluates them. Achievements whose metric is absent are left untouched.
func (e *AchievementEngine) EvaluateMetrics(metrics map[domain.Metric]int) []domain.Achievement {
	e.mu.Lock()
	signals := make(map[string]int, len(e.order))
	for _, id := range e.order {
		if v, ok := metrics[e.items[id].Condition.Metric]; ok {
			signals[id] = v
		}
	}
	e.mu.Unlock()

	return e.Evaluate(signals)
}

func (e *AchievementEngine) List() []domain.Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()

	list := make([]domain.Achievement, 0, len(e.order))
	for _, id := range e.order {
		list = append(list, *e.items[id])
	}
	return list
}

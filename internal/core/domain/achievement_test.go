package domain_test

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
)

func TestAchievement_Apply(t *testing.T) {
	t.Run("Success: Reaching max unlocks once", func(t *testing.T) {
		a := domain.Achievement{ID: "tree-hugger", Progress: 67, MaxProgress: 100}

		assert.True(t, a.Apply(100))
		assert.True(t, a.Unlocked)
		assert.Equal(t, 100, a.Progress)

		assert.False(t, a.Apply(120), "already unlocked")
	})

	t.Run("Success: Unlock is one-way", func(t *testing.T) {
		a := domain.Achievement{ID: "tree-hugger", Progress: 100, MaxProgress: 100, Unlocked: true}

		assert.False(t, a.Apply(90))
		assert.True(t, a.Unlocked)
		assert.Equal(t, 90, a.Progress)
		assert.Equal(t, 100, a.Percent())
	})

	t.Run("Edge Case: Signals are clamped into range", func(t *testing.T) {
		a := domain.Achievement{ID: "x", MaxProgress: 10}

		a.Apply(-5)
		assert.Equal(t, 0, a.Progress)

		a.Apply(50)
		assert.Equal(t, 10, a.Progress)
	})

	t.Run("Success: Percent of a locked achievement", func(t *testing.T) {
		a := domain.Achievement{ID: "eco-champion", Progress: 73, MaxProgress: 150}
		assert.Equal(t, 48, a.Percent())
	})
}

func TestAchievement_Validate(t *testing.T) {
	tests := []struct {
		name    string
		a       domain.Achievement
		wantErr error
	}{
		{name: "Success: Valid", a: domain.Achievement{ID: "a", MaxProgress: 1}},
		{name: "Error: Missing ID", a: domain.Achievement{MaxProgress: 1}, wantErr: domain.ErrAchievementInvalidID},
		{name: "Error: Zero max", a: domain.Achievement{ID: "a"}, wantErr: domain.ErrInvalidMaxProgress},
		{name: "Error: Progress above max", a: domain.Achievement{ID: "a", Progress: 3, MaxProgress: 2}, wantErr: domain.ErrInvalidProgress},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.a.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestInsufficientFundsError(t *testing.T) {
	var err error = &domain.InsufficientFundsError{Required: 2000, Available: 1890}
	wrapped := fmt.Errorf("buy solar-power-bank: %w", err)

	assert.ErrorIs(t, wrapped, domain.ErrInsufficientFunds)

	var funds *domain.InsufficientFundsError
	assert.True(t, errors.As(wrapped, &funds))
	assert.Equal(t, 110, funds.Shortfall())
	assert.Contains(t, err.Error(), "short by 110")
}

func TestNotFoundErrors(t *testing.T) {
	for _, err := range []error{domain.ErrHabitNotFound, domain.ErrItemNotFound, domain.ErrGroupNotFound, domain.ErrUserNotFound} {
		assert.ErrorIs(t, err, domain.ErrNotFound)
	}
	assert.NotErrorIs(t, domain.ErrHabitNotFound, domain.ErrItemNotFound)
}

func TestStoreItem_Validate(t *testing.T) {
	valid := domain.StoreItem{ID: "seed-bomb-kit", Price: 300, Category: domain.CategoryEcoProduct}
	assert.NoError(t, valid.Validate())

	zeroPrice := valid
	zeroPrice.Price = 0
	assert.ErrorIs(t, zeroPrice.Validate(), domain.ErrInvalidPrice)

	badCategory := valid
	badCategory.Category = "physical"
	assert.ErrorIs(t, badCategory.Validate(), domain.ErrInvalidCategory)
}

func TestDayOf(t *testing.T) {
	rome, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		t.Skip("tzdata not available")
	}

	late := time.Date(2024, 3, 10, 23, 45, 0, 0, time.UTC)
	assert.Equal(t, "2024-03-10", domain.DayKey(domain.DayOf(late)))
	assert.Equal(t, "2024-03-11", domain.DayKey(domain.DayOf(late.In(rome))))
}

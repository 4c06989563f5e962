package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Success: Defaults", func(t *testing.T) {
		for _, k := range []string{"SEED_FILE", "USER_ID", "TIMEZONE", "POINTS_PER_COMPLETION", "ACHIEVEMENT_BONUS", "METRICS_FILE", "LOG_LEVEL"} {
			t.Setenv(k, "")
		}

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "", cfg.SeedFile)
		assert.Equal(t, "4", cfg.UserID)
		assert.Equal(t, "UTC", cfg.Location.String())
		assert.Equal(t, 10, cfg.PointsPerCompletion)
		assert.Equal(t, 100, cfg.AchievementBonus)
		assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	})

	t.Run("Success: Environment overrides", func(t *testing.T) {
		t.Setenv("USER_ID", "7")
		t.Setenv("POINTS_PER_COMPLETION", "25")
		t.Setenv("ACHIEVEMENT_BONUS", "0")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("METRICS_FILE", "/tmp/eco.prom")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "7", cfg.UserID)
		assert.Equal(t, 25, cfg.PointsPerCompletion)
		assert.Equal(t, 0, cfg.AchievementBonus)
		assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
		assert.Equal(t, "/tmp/eco.prom", cfg.MetricsFile)
	})

	t.Run("Edge Case: Invalid numbers fall back to defaults", func(t *testing.T) {
		t.Setenv("POINTS_PER_COMPLETION", "lots")
		t.Setenv("ACHIEVEMENT_BONUS", "-3")
		t.Setenv("LOG_LEVEL", "chatty")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, 10, cfg.PointsPerCompletion)
		assert.Equal(t, 100, cfg.AchievementBonus)
		assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
	})

	t.Run("Error: Unknown timezone", func(t *testing.T) {
		t.Setenv("TIMEZONE", "Mars/Olympus_Mons")

		_, err := Load()
		assert.Error(t, err)
	})
}

func TestGetenv(t *testing.T) {
	t.Setenv("ECO_TEST_KEY", "")
	assert.Equal(t, "fallback", getenv("ECO_TEST_KEY", "fallback"))

	t.Setenv("ECO_TEST_KEY", "42")
	assert.Equal(t, "42", getenv("ECO_TEST_KEY", "fallback"))
	assert.Equal(t, 42, getenvInt("ECO_TEST_KEY", 1))
}

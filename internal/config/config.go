package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	SeedFile            string
	UserID              string
	Location            *time.Location
	PointsPerCompletion int
	AchievementBonus    int
	MetricsFile         string
	LogLevel            logrus.Level
}

// Load reads .env when present, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using defaults/environment variables")
	}

	tz := getenv("TIMEZONE", "UTC")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE %q: %w", tz, err)
	}

	level, err := logrus.ParseLevel(getenv("LOG_LEVEL", "info"))
	if err != nil {
		level = logrus.InfoLevel
	}

	return Config{
		SeedFile:            getenv("SEED_FILE", ""),
		UserID:              getenv("USER_ID", "4"),
		Location:            loc,
		PointsPerCompletion: getenvInt("POINTS_PER_COMPLETION", 10),
		AchievementBonus:    getenvInt("ACHIEVEMENT_BONUS", 100),
		MetricsFile:         getenv("METRICS_FILE", ""),
		LogLevel:            level,
	}, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return fallback
}

func getenvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
	}
	return fallback
}

package cli

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/kanso-eco-engine/internal/adapters/seed"
	"github.com/comitanigiacomo/kanso-eco-engine/internal/config"
	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/services"
	"github.com/comitanigiacomo/kanso-eco-engine/internal/metrics"
)

// app is the state shared by the commands of one invocation.
type app struct {
	clock domain.Clock
	log   *logrus.Logger

	seedFile    string
	userID      string
	logLevel    string
	metricsFile string

	cfg     config.Config
	world   *seed.World
	service *services.GamificationService
}

// Execute runs the ecohabit command line against the system clock.
func Execute(ctx context.Context) error {
	return NewRootCmd(nil).ExecuteContext(ctx)
}

// NewRootCmd builds the command tree. A nil clock means the system clock in
// the configured TIMEZONE.
func NewRootCmd(clock domain.Clock) *cobra.Command {
	a := &app{clock: clock, log: logrus.New()}

	rootCmd := &cobra.Command{
		Use:   "ecohabit",
		Short: "Eco habit tracking and rewards engine",
		Long: `ecohabit drives the eco habit engine from seed data.

Each run loads the seed into a fresh session, applies the requested
operations in order and prints the resulting state.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.flushMetrics()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.seedFile, "seed", "", "seed YAML file (default: embedded seed, or SEED_FILE)")
	flags.StringVar(&a.userID, "user", "", "user id of the session (default: USER_ID)")
	flags.StringVar(&a.logLevel, "log-level", "", "log level (default: LOG_LEVEL)")
	flags.StringVar(&a.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit (default: METRICS_FILE)")

	rootCmd.AddCommand(
		newHabitsCmd(a),
		newAddCmd(a),
		newToggleCmd(a),
		newStreakCmd(a),
		newAchievementsCmd(a),
		newImpactCmd(a),
		newStoreCmd(a),
		newBuyCmd(a),
		newLedgerCmd(a),
		newLeaderboardCmd(a),
		newStatsCmd(a),
	)

	return rootCmd
}

func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if a.seedFile == "" {
		a.seedFile = cfg.SeedFile
	}
	if a.userID == "" {
		a.userID = cfg.UserID
	}
	if a.metricsFile == "" {
		a.metricsFile = cfg.MetricsFile
	}

	level := cfg.LogLevel
	if a.logLevel != "" {
		level, err = logrus.ParseLevel(a.logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level: %w", err)
		}
	}
	a.log.SetLevel(level)
	a.log.SetOutput(cmd.ErrOrStderr())

	if a.clock == nil {
		a.clock = domain.SystemClock{Location: cfg.Location}
	}

	file, err := seed.Load(a.seedFile)
	if err != nil {
		return err
	}

	world, err := file.Build(a.clock, a.userID)
	if err != nil {
		return fmt.Errorf("build seed: %w", err)
	}
	a.world = world

	sessions := repository.NewInMemorySessionRepository()
	if err := sessions.Save(ctxOf(cmd), world.Session); err != nil {
		return err
	}

	rules := services.Rules{
		PointsPerCompletion: cfg.PointsPerCompletion,
		AchievementBonus:    cfg.AchievementBonus,
	}
	a.service = services.NewGamificationService(sessions, world.Catalog, a.clock, rules, a.log).
		WithMilestones(world.Milestones)

	a.log.WithFields(logrus.Fields{
		"user_id": a.userID,
		"habits":  len(world.Session.Habits.ListHabits()),
		"items":   len(world.Catalog.List("")),
	}).Debug("[SEED] session loaded")

	return nil
}

func (a *app) flushMetrics() error {
	if a.metricsFile == "" {
		return nil
	}
	if err := metrics.WriteTextfile(a.metricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}

func ctxOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

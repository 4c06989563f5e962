package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
)

func newHabitsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "habits",
		Short: "List today's habits",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dash, err := a.service.Dashboard(ctxOf(cmd), a.userID)
			if err != nil {
				return err
			}
			renderHabits(cmd.OutOrStdout(), dash)
			return nil
		},
	}
}

func newAddCmd(a *app) *cobra.Command {
	var description, icon string

	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a habit that starts today",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := a.service.AddHabit(ctxOf(cmd), a.userID, args[0], description, icon)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s)\n", okStyle.Render("added"), h.Title, mutedStyle.Render(h.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "habit description")
	cmd.Flags().StringVar(&icon, "icon", domain.DefaultIcon, "habit icon")
	return cmd
}

func newToggleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <habit-id>...",
		Short: "Toggle today's completion of one or more habits",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, id := range args {
				res, err := a.service.ToggleHabit(ctxOf(cmd), a.userID, id)
				if err != nil {
					return fmt.Errorf("toggle %s: %w", id, err)
				}
				renderToggle(out, res)
			}
			return nil
		},
	}
}

func newStreakCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "streak",
		Short: "Show the current streak and milestones",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := a.service.Streak(ctxOf(cmd), a.userID)
			if err != nil {
				return err
			}
			renderStreak(cmd.OutOrStdout(), report, a.world.Milestones)
			return nil
		},
	}
}

func newAchievementsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "achievements",
		Short: "Show achievement progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// bring progress up to date before printing
			if _, err := a.service.RefreshAchievements(ctxOf(cmd), a.userID); err != nil {
				return err
			}
			dash, err := a.service.Dashboard(ctxOf(cmd), a.userID)
			if err != nil {
				return err
			}
			renderAchievements(cmd.OutOrStdout(), dash.Achievements)
			return nil
		},
	}
}

func newImpactCmd(a *app) *cobra.Command {
	var delta domain.EcoImpact

	cmd := &cobra.Command{
		Use:   "impact",
		Short: "Add tracked savings to the eco impact totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := a.service.RecordImpact(ctxOf(cmd), a.userID, delta)
			if err != nil {
				return fmt.Errorf("impact: %w", err)
			}
			renderImpact(cmd.OutOrStdout(), res)
			return nil
		},
	}

	cmd.Flags().IntVar(&delta.WaterSavedLiters, "water", 0, "liters of water saved")
	cmd.Flags().IntVar(&delta.EnergySavedKWh, "energy", 0, "kWh of energy saved")
	cmd.Flags().IntVar(&delta.CO2ReducedKg, "co2", 0, "kg of CO2 avoided")
	cmd.Flags().IntVar(&delta.PlasticAvoidedItems, "plastic", 0, "plastic items avoided")
	return cmd
}

func newStoreCmd(a *app) *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "List store items",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch c := domain.Category(category); c {
			case "", domain.CategoryVirtual, domain.CategoryEcoProduct:
			default:
				return fmt.Errorf("%w: %q", domain.ErrInvalidCategory, c)
			}

			renderStore(cmd.OutOrStdout(), a.service.Store(domain.Category(category)), a.world.Session.Ledger)
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "filter by category (virtual, eco-product)")
	return cmd
}

func newBuyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "buy <item-id>...",
		Short: "Buy one or more store items with points",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, id := range args {
				receipt, err := a.service.Purchase(ctxOf(cmd), a.userID, id)
				if err != nil {
					return fmt.Errorf("buy %s: %w", id, err)
				}
				renderReceipt(out, receipt, a.world.Session.Ledger.Balance())
			}
			return nil
		},
	}
}

func newLedgerCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "Show the points journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			renderLedger(cmd.OutOrStdout(), a.world.Session.Ledger.Entries())
			return nil
		},
	}
}

func newLeaderboardCmd(a *app) *cobra.Command {
	var group, create string
	var join bool

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the global or a family group leaderboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			groups := a.world.Groups

			if create != "" {
				g, err := groups.Create(create, a.userID)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "%s %s, invite code %s\n", okStyle.Render("created"), g.Name, titleStyle.Render(g.Code))
				group = g.Code
			}

			if group == "" {
				ranked, err := a.service.Leaderboard(ctxOf(cmd), a.userID, a.world.Leaderboard)
				if err != nil {
					return err
				}
				renderLeaderboard(out, "Global leaderboard", ranked, a.userID)
				return nil
			}

			if join {
				if _, err := groups.Join(group, a.userID); err != nil {
					return err
				}
			}

			g, err := groups.Get(group)
			if err != nil {
				return err
			}
			ranked, err := a.service.GroupLeaderboard(ctxOf(cmd), a.userID, groups, g.Code, a.world.Leaderboard)
			if err != nil {
				return err
			}
			renderLeaderboard(out, g.Name+" ("+g.Code+")", ranked, a.userID)
			return nil
		},
	}

	cmd.Flags().StringVar(&group, "group", "", "family group invite code")
	cmd.Flags().BoolVar(&join, "join", false, "join the group given by --group first")
	cmd.Flags().StringVar(&create, "create", "", "create a family group with this name")
	return cmd
}

func newStatsCmd(a *app) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-habit completion over the last days",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days < 1 {
				return fmt.Errorf("--days must be at least 1, got %d", days)
			}

			to := a.clock.Now()
			from := to.AddDate(0, 0, -(days - 1))
			stats, err := a.world.Session.Habits.WeeklyStats(from, to)
			if err != nil {
				return err
			}
			renderStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 7, "number of days, today included")
	return cmd
}

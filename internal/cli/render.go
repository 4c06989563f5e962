package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/services"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.AdaptiveColor{Light: "#047857", Dark: "#34D399"})
	okStyle    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	mutedStyle = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#9CA3AF"})
	youStyle   = lipgloss.NewStyle().Bold(true)
)

func heading(w io.Writer, text string) {
	fmt.Fprintln(w, titleStyle.Render(text))
}

func check(done bool) string {
	if done {
		return okStyle.Render("[x]")
	}
	return mutedStyle.Render("[ ]")
}

func progressBar(percent, width int) string {
	filled := percent * width / 100
	return okStyle.Render(strings.Repeat("█", filled)) + mutedStyle.Render(strings.Repeat("░", width-filled))
}

func renderHabits(w io.Writer, dash *services.Dashboard) {
	heading(w, fmt.Sprintf("Today's habits (%d%% complete)", dash.CompletionRate))
	for _, h := range dash.Habits {
		fmt.Fprintf(w, "%s %-3s %-20s %s\n", check(h.CompletedToday), h.ID, h.Title, mutedStyle.Render(fmt.Sprintf("streak %d", h.Streak)))
	}
	fmt.Fprintf(w, "points: %d\n", dash.Balance)
}

func renderToggle(w io.Writer, res *services.ToggleResult) {
	state := "undone"
	if res.Habit.CompletedToday {
		state = "completed"
	}
	fmt.Fprintf(w, "%s %s %s, streak %d", check(res.Habit.CompletedToday), res.Habit.Title, state, res.Habit.Streak)
	if res.PointsAwarded > 0 {
		fmt.Fprintf(w, " %s", okStyle.Render(fmt.Sprintf("+%d points", res.PointsAwarded)))
	}
	fmt.Fprintln(w)

	for _, a := range res.Unlocked {
		fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("unlocked"), a.Title)
	}
}

func renderStreak(w io.Writer, report services.StreakReport, milestones []domain.Milestone) {
	heading(w, fmt.Sprintf("Current streak: %d days", report.State.Current))
	fmt.Fprintf(w, "longest: %d days, active days: %d\n", report.State.Longest, report.State.TotalActiveDays)

	reached := make(map[int]bool, len(report.Reached))
	for _, m := range report.Reached {
		reached[m.Days] = true
	}
	for _, m := range milestones {
		fmt.Fprintf(w, "%s %3d days  %s %s\n", check(reached[m.Days]), m.Days, m.Icon, m.Title)
	}

	if report.Next != nil {
		fmt.Fprintf(w, "next: %s in %d days\n", report.Next.Title, report.DaysToGo)
	}
}

func renderAchievements(w io.Writer, achievements []domain.Achievement) {
	heading(w, "Achievements")
	for _, a := range achievements {
		fmt.Fprintf(w, "%s %-18s %s %3d%%  %s\n", check(a.Unlocked), a.Title, progressBar(a.Percent(), 10), a.Percent(), mutedStyle.Render(a.Description))
	}
}

func renderImpact(w io.Writer, res *services.ImpactResult) {
	heading(w, "Eco impact")
	fmt.Fprintf(w, "water %d L, energy %d kWh, CO2 %d kg, plastic %d items",
		res.Impact.WaterSavedLiters, res.Impact.EnergySavedKWh, res.Impact.CO2ReducedKg, res.Impact.PlasticAvoidedItems)
	if res.PointsAwarded > 0 {
		fmt.Fprintf(w, " %s", okStyle.Render(fmt.Sprintf("+%d points", res.PointsAwarded)))
	}
	fmt.Fprintln(w)

	for _, a := range res.Unlocked {
		fmt.Fprintf(w, "  %s %s\n", warnStyle.Render("unlocked"), a.Title)
	}
}

func renderStore(w io.Writer, items []domain.StoreItem, ledger *services.PointsLedger) {
	heading(w, fmt.Sprintf("Eco store (you have %d points)", ledger.Balance()))
	for _, item := range items {
		price := fmt.Sprintf("%5d", item.Price)
		affordable, shortfall := ledger.CanAfford(item.Price)
		switch {
		case !item.Available:
			price = mutedStyle.Render(price + " sold out")
		case !affordable:
			price = warnStyle.Render(fmt.Sprintf("%s need %d more", price, shortfall))
		default:
			price = okStyle.Render(price)
		}
		fmt.Fprintf(w, "%s %-24s %-12s %s  %s\n", item.Icon, item.ID, item.Category, price, mutedStyle.Render(item.Name))
	}
}

func renderReceipt(w io.Writer, r domain.Receipt, balance int) {
	fmt.Fprintf(w, "%s %s for %d points, balance %d (receipt %s)\n", okStyle.Render("purchased"), r.ItemID, r.PricePaid, balance, mutedStyle.Render(r.ID))
}

func renderLedger(w io.Writer, entries []domain.LedgerEntry) {
	heading(w, "Points journal")
	for _, e := range entries {
		sign := "+"
		if e.Type == domain.TxSpend {
			sign = "-"
		}
		fmt.Fprintf(w, "%s %-5s %s%-5d %6d  %s\n", e.At.Format("2006-01-02 15:04"), e.Type, sign, e.Amount, e.Balance, mutedStyle.Render(e.Reason))
	}
}

func renderLeaderboard(w io.Writer, title string, ranked []domain.LeaderboardEntry, userID string) {
	heading(w, title)
	for _, e := range ranked {
		line := fmt.Sprintf("#%-2d %s %-20s %5d pts  eco %d", e.Rank, e.Avatar, e.Name, e.StreakPoints, e.EcoImpactScore)
		if e.UserID == userID {
			line = youStyle.Render(line)
		}
		fmt.Fprintln(w, line)
	}
}

func renderStats(w io.Writer, stats *domain.WeeklyStats) {
	heading(w, fmt.Sprintf("%s to %s, overall %.0f%%", stats.StartDate, stats.EndDate, stats.OverallRate))
	for _, h := range stats.HabitStats {
		var days strings.Builder
		for _, done := range h.DailyProgress {
			if done {
				days.WriteString(okStyle.Render("■"))
			} else {
				days.WriteString(mutedStyle.Render("·"))
			}
		}
		fmt.Fprintf(w, "%-20s %s %3.0f%% (%d/%d)\n", h.HabitTitle, days.String(), h.CompletionRate, h.DaysCompleted, h.DaysTracked)
	}
}

package services

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-eco-engine/internal/metrics"
)

type Rules struct {
	PointsPerCompletion int
	AchievementBonus    int
}

var DefaultRules = Rules{
	PointsPerCompletion: 10,
	AchievementBonus:    100,
}

type GamificationService struct {
	sessions   SessionRepository
	catalog    *Catalog
	clock      domain.Clock
	rules      Rules
	milestones []domain.Milestone
	log        logrus.FieldLogger
}

func NewGamificationService(sessions SessionRepository, catalog *Catalog, clock domain.Clock, rules Rules, log logrus.FieldLogger) *GamificationService {
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}
	return &GamificationService{
		sessions:   sessions,
		catalog:    catalog,
		clock:      clock,
		rules:      rules,
		milestones: domain.DefaultMilestones,
		log:        log,
	}
}

// WithMilestones replaces the streak milestones used by streak reports.
func (s *GamificationService) WithMilestones(milestones []domain.Milestone) *GamificationService {
	if len(milestones) > 0 {
		s.milestones = milestones
	}
	return s
}

type ToggleResult struct {
	Habit         domain.Habit         `json:"habit"`
	Streak        domain.StreakState   `json:"streak"`
	PointsAwarded int                  `json:"points_awarded"`
	Unlocked      []domain.Achievement `json:"unlocked,omitempty"`
}

type StreakReport struct {
	State    domain.StreakState `json:"state"`
	Reached  []domain.Milestone `json:"reached"`
	Next     *domain.Milestone  `json:"next,omitempty"`
	DaysToGo int                `json:"days_to_go"`
}

type ImpactResult struct {
	Impact        domain.EcoImpact     `json:"impact"`
	PointsAwarded int                  `json:"points_awarded"`
	Unlocked      []domain.Achievement `json:"unlocked,omitempty"`
}

type Dashboard struct {
	UserID         string               `json:"user_id"`
	Name           string               `json:"name"`
	Habits         []domain.Habit       `json:"habits"`
	CompletionRate int                  `json:"completion_rate"`
	Streak         StreakReport         `json:"streak"`
	Balance        int                  `json:"balance"`
	Impact         domain.EcoImpact     `json:"impact"`
	Achievements   []domain.Achievement `json:"achievements"`
	Receipts       []domain.Receipt     `json:"receipts"`
}

func rewardKey(habitID string, day time.Time) string {
	return habitID + "|" + domain.DayKey(day)
}

// ToggleHabit flips a habit for today, credits the completion reward once per
// habit and day, then re-evaluates achievements and credits a bonus for each
// one unlocked by this call.
func (s *GamificationService) ToggleHabit(ctx context.Context, userID, habitID string) (*ToggleResult, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	habit, day, err := sess.Habits.toggle(habitID)
	if err != nil {
		s.log.WithFields(logrus.Fields{"user_id": userID, "habit_id": habitID}).Warn("[HABITS] toggle rejected: ", err)
		return nil, err
	}
	metrics.ObserveToggle(habit.CompletedToday)

	result := &ToggleResult{Habit: habit}

	key := rewardKey(habitID, day)
	if habit.CompletedToday && !sess.rewarded[key] && s.rules.PointsPerCompletion > 0 {
		if err := sess.Ledger.credit(domain.TxEarn, s.rules.PointsPerCompletion, "completed "+habitID); err != nil {
			return nil, err
		}
		sess.rewarded[key] = true
		result.PointsAwarded += s.rules.PointsPerCompletion
		metrics.ObservePoints(string(domain.TxEarn), s.rules.PointsPerCompletion)
	}

	result.Streak = sess.Habits.StreakState()

	unlocked, bonus, err := s.evaluate(sess, result.Streak)
	if err != nil {
		return nil, err
	}
	result.Unlocked = unlocked
	result.PointsAwarded += bonus

	s.log.WithFields(logrus.Fields{
		"user_id":   userID,
		"habit_id":  habitID,
		"completed": habit.CompletedToday,
		"streak":    habit.Streak,
		"awarded":   result.PointsAwarded,
	}).Info("[HABITS] habit toggled")

	return result, nil
}

// evaluate runs the achievement engine and pays the unlock bonuses. Caller holds sess.mu.
func (s *GamificationService) evaluate(sess *UserSession, streak domain.StreakState) ([]domain.Achievement, int, error) {
	unlocked := sess.Achievements.EvaluateMetrics(sess.progressMetrics(streak))

	bonus := 0
	for _, a := range unlocked {
		metrics.ObserveUnlock(a.ID)
		s.log.WithFields(logrus.Fields{"user_id": sess.UserID, "achievement": a.ID}).Info("[ACHIEVEMENTS] unlocked")

		if s.rules.AchievementBonus <= 0 {
			continue
		}
		if err := sess.Ledger.credit(domain.TxBonus, s.rules.AchievementBonus, "unlocked "+a.ID); err != nil {
			return nil, 0, err
		}
		bonus += s.rules.AchievementBonus
		metrics.ObservePoints(string(domain.TxBonus), s.rules.AchievementBonus)
	}
	return unlocked, bonus, nil
}

// RecordImpact adds newly tracked savings to the user's impact totals, then
// unlocks and pays for any achievement the new totals satisfy.
func (s *GamificationService) RecordImpact(ctx context.Context, userID string, delta domain.EcoImpact) (*ImpactResult, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	impact, err := sess.impact.Add(delta)
	if err != nil {
		s.log.WithField("user_id", userID).Warn("[IMPACT] update rejected: ", err)
		return nil, err
	}
	sess.impact = impact

	unlocked, bonus, err := s.evaluate(sess, sess.Habits.StreakState())
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"co2_kg":   impact.CO2ReducedKg,
		"water_l":  impact.WaterSavedLiters,
		"awarded":  bonus,
		"unlocked": len(unlocked),
	}).Info("[IMPACT] totals updated")

	return &ImpactResult{Impact: impact, PointsAwarded: bonus, Unlocked: unlocked}, nil
}

// RefreshAchievements re-evaluates achievements against the current progress.
func (s *GamificationService) RefreshAchievements(ctx context.Context, userID string) ([]domain.Achievement, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	unlocked, _, err := s.evaluate(sess, sess.Habits.StreakState())
	return unlocked, err
}

func (s *GamificationService) AddHabit(ctx context.Context, userID, title, description, icon string) (domain.Habit, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return domain.Habit{}, err
	}
	return sess.Habits.AddHabit(title, description, icon)
}

// Purchase buys a catalog item with the user's points.
func (s *GamificationService) Purchase(ctx context.Context, userID, itemID string) (domain.Receipt, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return domain.Receipt{}, err
	}

	item, err := s.catalog.Get(itemID)
	if err != nil {
		metrics.ObservePurchase("not_found")
		return domain.Receipt{}, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	receipt, err := Purchase(item, sess.Ledger, s.clock.Now())
	if err != nil {
		entry := s.log.WithFields(logrus.Fields{"user_id": userID, "item_id": itemID})
		var funds *domain.InsufficientFundsError
		switch {
		case errors.As(err, &funds):
			metrics.ObservePurchase("insufficient_funds")
			entry.WithField("shortfall", funds.Shortfall()).Warn("[STORE] purchase rejected")
		case errors.Is(err, domain.ErrItemUnavailable):
			metrics.ObservePurchase("unavailable")
			entry.Warn("[STORE] purchase rejected: item unavailable")
		default:
			metrics.ObservePurchase("error")
			entry.Error("[STORE] purchase failed: ", err)
		}
		return domain.Receipt{}, err
	}

	sess.receipts = append(sess.receipts, receipt)
	metrics.ObservePurchase("success")
	metrics.ObservePoints(string(domain.TxSpend), receipt.PricePaid)

	s.log.WithFields(logrus.Fields{
		"user_id":    userID,
		"item_id":    itemID,
		"price_paid": receipt.PricePaid,
		"balance":    sess.Ledger.Balance(),
	}).Info("[STORE] purchase completed")

	return receipt, nil
}

func (s *GamificationService) streakReport(state domain.StreakState) StreakReport {
	report := StreakReport{State: state, Reached: make([]domain.Milestone, 0)}

	reached := MilestoneReached(state, domain.MilestoneDays(s.milestones))
	for _, m := range s.milestones {
		for _, d := range reached {
			if m.Days == d {
				report.Reached = append(report.Reached, m)
				break
			}
		}
	}

	if days, toGo, ok := NextMilestone(state, domain.MilestoneDays(s.milestones)); ok {
		for _, m := range s.milestones {
			if m.Days == days {
				next := m
				report.Next = &next
				break
			}
		}
		report.DaysToGo = toGo
	}
	return report
}

func (s *GamificationService) Streak(ctx context.Context, userID string) (StreakReport, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return StreakReport{}, err
	}
	return s.streakReport(sess.Habits.StreakState()), nil
}

func (s *GamificationService) Dashboard(ctx context.Context, userID string) (*Dashboard, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	return &Dashboard{
		UserID:         sess.UserID,
		Name:           sess.Name,
		Habits:         sess.Habits.ListHabits(),
		CompletionRate: sess.Habits.CompletionRate(),
		Streak:         s.streakReport(sess.Habits.StreakState()),
		Balance:        sess.Ledger.Balance(),
		Impact:         sess.impact,
		Achievements:   sess.Achievements.List(),
		Receipts:       append([]domain.Receipt(nil), sess.receipts...),
	}, nil
}

func (s *GamificationService) Store(category domain.Category) []domain.StoreItem {
	return s.catalog.List(category)
}

// Leaderboard ranks the entries, using the user's live balance as their streak points.
func (s *GamificationService) Leaderboard(ctx context.Context, userID string, entries []domain.LeaderboardEntry) ([]domain.LeaderboardEntry, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Rank(withLiveBalance(entries, sess)), nil
}

// GroupLeaderboard is Leaderboard restricted to the members of a family group.
func (s *GamificationService) GroupLeaderboard(ctx context.Context, userID string, groups *GroupDirectory, code string, entries []domain.LeaderboardEntry) ([]domain.LeaderboardEntry, error) {
	sess, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	return groups.GroupLeaderboard(code, withLiveBalance(entries, sess))
}

func withLiveBalance(entries []domain.LeaderboardEntry, sess *UserSession) []domain.LeaderboardEntry {
	out := make([]domain.LeaderboardEntry, len(entries))
	copy(out, entries)
	for i := range out {
		if out[i].UserID == sess.UserID {
			out[i].StreakPoints = sess.Ledger.Balance()
		}
	}
	return out
}

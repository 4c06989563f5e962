package domain

import "errors"

var ErrInvalidGroupName = errors.New("group name cannot be empty")

type LeaderboardEntry struct {
	UserID         string `json:"user_id" yaml:"user_id"`
	Name           string `json:"name" yaml:"name"`
	Avatar         string `json:"avatar,omitempty" yaml:"avatar"`
	StreakPoints   int    `json:"streak_points" yaml:"streak_points"`
	EcoImpactScore int    `json:"eco_impact_score" yaml:"eco_impact_score"`
	Rank           int    `json:"rank" yaml:"-"`
}

// Group is a family leaderboard joined through an invite code.
type Group struct {
	Code    string   `json:"code" yaml:"code"`
	Name    string   `json:"name" yaml:"name"`
	OwnerID string   `json:"owner_id" yaml:"owner_id"`
	Members []string `json:"members" yaml:"members"`
}

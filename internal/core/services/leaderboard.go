package services

import (
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
)

// Rank orders entries by streak points, then eco impact score (both
// descending), then user id ascending, and assigns ranks 1..n. Ties on both
// scores still get distinct ranks. The input slice is not modified.
func Rank(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	ranked := make([]domain.LeaderboardEntry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.StreakPoints != b.StreakPoints {
			return a.StreakPoints > b.StreakPoints
		}
		if a.EcoImpactScore != b.EcoImpactScore {
			return a.EcoImpactScore > b.EcoImpactScore
		}
		return a.UserID < b.UserID
	})

	for i := range ranked {
		ranked[i].Rank = i + 1
	}
	return ranked
}

const inviteCodeLen = 8

// GroupDirectory holds family groups and their invite codes.
type GroupDirectory struct {
	mu     sync.RWMutex
	groups map[string]*domain.Group
}

func NewGroupDirectory(groups ...domain.Group) *GroupDirectory {
	d := &GroupDirectory{groups: make(map[string]*domain.Group, len(groups))}
	for _, g := range groups {
		group := g
		group.Code = normalizeCode(group.Code)
		group.Members = append([]string(nil), g.Members...)
		d.groups[group.Code] = &group
	}
	return d
}

func normalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func newInviteCode() string {
	raw := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(raw[:inviteCodeLen])
}

// Create starts a group owned by ownerID, who is its first member.
func (d *GroupDirectory) Create(name, ownerID string) (domain.Group, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Group{}, domain.ErrInvalidGroupName
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	code := newInviteCode()
	for d.groups[code] != nil {
		code = newInviteCode()
	}

	g := &domain.Group{Code: code, Name: name, OwnerID: ownerID, Members: []string{ownerID}}
	d.groups[code] = g
	return cloneGroup(g), nil
}

// Join adds userID to the group behind code. Joining twice is a no-op.
func (d *GroupDirectory) Join(code, userID string) (domain.Group, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	g, ok := d.groups[normalizeCode(code)]
	if !ok {
		return domain.Group{}, domain.ErrGroupNotFound
	}

	for _, m := range g.Members {
		if m == userID {
			return cloneGroup(g), nil
		}
	}
	g.Members = append(g.Members, userID)
	return cloneGroup(g), nil
}

func (d *GroupDirectory) Get(code string) (domain.Group, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	g, ok := d.groups[normalizeCode(code)]
	if !ok {
		return domain.Group{}, domain.ErrGroupNotFound
	}
	return cloneGroup(g), nil
}

func (d *GroupDirectory) Members(code string) ([]string, error) {
	g, err := d.Get(code)
	if err != nil {
		return nil, err
	}
	return g.Members, nil
}

// GroupLeaderboard ranks only the entries whose users belong to the group.
func (d *GroupDirectory) GroupLeaderboard(code string, entries []domain.LeaderboardEntry) ([]domain.LeaderboardEntry, error) {
	g, err := d.Get(code)
	if err != nil {
		return nil, err
	}

	members := make(map[string]bool, len(g.Members))
	for _, m := range g.Members {
		members[m] = true
	}

	var filtered []domain.LeaderboardEntry
	for _, e := range entries {
		if members[e.UserID] {
			filtered = append(filtered, e)
		}
	}
	return Rank(filtered), nil
}

func cloneGroup(g *domain.Group) domain.Group {
	out := *g
	out.Members = append([]string(nil), g.Members...)
	return out
}

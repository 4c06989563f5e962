package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/domain"
	"github.com/comitanigiacomo/kanso-eco-engine/internal/core/services"
)

type InMemorySessionRepository struct {
	store map[string]*services.UserSession

	mu sync.RWMutex
}

func NewInMemorySessionRepository(sessions ...*services.UserSession) *InMemorySessionRepository {
	r := &InMemorySessionRepository{
		store: make(map[string]*services.UserSession, len(sessions)),
	}
	for _, s := range sessions {
		r.store[s.UserID] = s
	}
	return r
}

func (r *InMemorySessionRepository) Get(ctx context.Context, userID string) (*services.UserSession, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.store[userID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return session, nil
}

func (r *InMemorySessionRepository) Save(ctx context.Context, session *services.UserSession) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if session == nil || session.UserID == "" {
		return domain.ErrUserInvalidID
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.store[session.UserID] = session
	return nil
}

func (r *InMemorySessionRepository) Delete(ctx context.Context, userID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.store[userID]; !ok {
		return domain.ErrUserNotFound
	}

	delete(r.store, userID)
	return nil
}

// UserIDs lists the stored sessions in lexical order.
func (r *InMemorySessionRepository) UserIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ids := make([]string, 0, len(r.store))
	for id := range r.store {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

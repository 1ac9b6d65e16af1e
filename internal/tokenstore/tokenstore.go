// Package tokenstore keeps the ids of the bearer tokens that are still valid
// for each account, so that logout and account deletion can revoke them.
package tokenstore

import (
	"context"
	"sync"
	"time"
)

type Store interface {
	Add(ctx context.Context, accountID, tokenID string, ttl time.Duration) error
	IsActive(ctx context.Context, accountID, tokenID string) (bool, error)
	Revoke(ctx context.Context, accountID, tokenID string) error
	RevokeAll(ctx context.Context, accountID string) error
}

// Memory is a process-local Store. Expired ids are swept on every Add.
type Memory struct {
	mu     sync.Mutex
	tokens map[string]map[string]time.Time
	now    func() time.Time
}

func NewMemory() *Memory {
	return &Memory{
		tokens: make(map[string]map[string]time.Time),
		now:    time.Now,
	}
}

func (m *Memory) Add(_ context.Context, accountID, tokenID string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	m.sweep(now)
	ids, ok := m.tokens[accountID]
	if !ok {
		ids = make(map[string]time.Time)
		m.tokens[accountID] = ids
	}
	ids[tokenID] = now.Add(ttl)
	return nil
}

func (m *Memory) sweep(now time.Time) {
	for accountID, ids := range m.tokens {
		for tokenID, expires := range ids {
			if !now.Before(expires) {
				delete(ids, tokenID)
			}
		}
		if len(ids) == 0 {
			delete(m.tokens, accountID)
		}
	}
}

func (m *Memory) IsActive(_ context.Context, accountID, tokenID string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expires, ok := m.tokens[accountID][tokenID]
	if !ok {
		return false, nil
	}
	if !m.now().Before(expires) {
		delete(m.tokens[accountID], tokenID)
		return false, nil
	}
	return true, nil
}

func (m *Memory) Revoke(_ context.Context, accountID, tokenID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens[accountID], tokenID)
	if len(m.tokens[accountID]) == 0 {
		delete(m.tokens, accountID)
	}
	return nil
}

func (m *Memory) RevokeAll(_ context.Context, accountID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.tokens, accountID)
	return nil
}

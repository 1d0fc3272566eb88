package service

import (
	"context"
	"sync"

	"slack_shifumi/internal/domain"
)

// NicknameStore is the persistence contract for nicknames.
type NicknameStore interface {
	Set(ctx context.Context, userID, nickname, displayName string) error
	Get(ctx context.Context, userID string) (*domain.Nickname, error)
}

// NicknameService resolves display names with a best-effort in-process
// cache in front of the store. The cache is never a correctness
// dependency: entries are dropped on every write and misses simply
// fall through.
type NicknameService struct {
	store NicknameStore

	mu    sync.RWMutex
	cache map[string]string
}

func NewNicknameService(store NicknameStore) *NicknameService {
	return &NicknameService{
		store: store,
		cache: make(map[string]string),
	}
}

// Set upserts the player's nickname and refreshes the cache entry.
func (s *NicknameService) Set(ctx context.Context, userID, nickname, displayName string) error {
	if err := s.store.Set(ctx, userID, nickname, displayName); err != nil {
		return err
	}
	s.mu.Lock()
	s.cache[userID] = nickname
	s.mu.Unlock()
	return nil
}

// Get returns the player's nickname, or "" when none is set.
func (s *NicknameService) Get(ctx context.Context, userID string) (string, error) {
	s.mu.RLock()
	if n, ok := s.cache[userID]; ok {
		s.mu.RUnlock()
		return n, nil
	}
	s.mu.RUnlock()

	rec, err := s.store.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if rec == nil {
		return "", nil
	}

	s.mu.Lock()
	s.cache[userID] = rec.Nickname
	s.mu.Unlock()
	return rec.Nickname, nil
}

// Resolve returns the nickname or the platform mention fallback.
// Store errors degrade to the fallback: a missing nickname is cosmetic.
func (s *NicknameService) Resolve(ctx context.Context, userID string) string {
	n, err := s.Get(ctx, userID)
	if err != nil || n == "" {
		return "<@" + userID + ">"
	}
	return n
}

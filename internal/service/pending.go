package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"

	"github.com/mealstash/backend/internal/models"
)

// ErrPendingNotFound is returned when a pending import id is unknown,
// already resolved, or cancelled.
var ErrPendingNotFound = errors.New("pending import not found")

// PendingImport is a suspended import awaiting the caller's
// duplicate-resolution decision. MatchedByURL is true when the existing
// record was found by source URL, false when it was found by exact name.
type PendingImport struct {
	ID           string        `json:"id"`
	Existing     models.Recipe `json:"existing"`
	Candidate    models.Recipe `json:"candidate"`
	MatchedByURL bool          `json:"matched_by_url"`
	CreatedAt    string        `json:"created_at"`
}

const pendingKeyPrefix = "pending_import:"

// RedisPendingStore keeps pending imports in Redis as JSON values.
// Entries are written without expiration: the decision is caller-paced
// and may take arbitrarily long.
type RedisPendingStore struct {
	client *redis.Client
}

// NewRedisPendingStore creates a new RedisPendingStore instance
func NewRedisPendingStore(client *redis.Client) *RedisPendingStore {
	return &RedisPendingStore{client: client}
}

func (s *RedisPendingStore) Save(ctx context.Context, pending *PendingImport) error {
	data, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("failed to marshal pending import: %w", err)
	}
	if err := s.client.Set(ctx, pendingKeyPrefix+pending.ID, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save pending import: %w", err)
	}
	return nil
}

func (s *RedisPendingStore) Get(ctx context.Context, id string) (*PendingImport, error) {
	data, err := s.client.Get(ctx, pendingKeyPrefix+id).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrPendingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load pending import: %w", err)
	}

	var pending PendingImport
	if err := json.Unmarshal(data, &pending); err != nil {
		return nil, fmt.Errorf("failed to unmarshal pending import: %w", err)
	}
	return &pending, nil
}

func (s *RedisPendingStore) Delete(ctx context.Context, id string) error {
	return s.client.Del(ctx, pendingKeyPrefix+id).Err()
}

// MemoryPendingStore is an in-process PendingStore used in tests and in
// redis-less development setups.
type MemoryPendingStore struct {
	mu      sync.RWMutex
	pending map[string]*PendingImport
}

// NewMemoryPendingStore creates a new MemoryPendingStore instance
func NewMemoryPendingStore() *MemoryPendingStore {
	return &MemoryPendingStore{pending: make(map[string]*PendingImport)}
}

func (s *MemoryPendingStore) Save(ctx context.Context, pending *PendingImport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *pending
	s.pending[pending.ID] = &copied
	return nil
}

func (s *MemoryPendingStore) Get(ctx context.Context, id string) (*PendingImport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	pending, ok := s.pending[id]
	if !ok {
		return nil, ErrPendingNotFound
	}
	copied := *pending
	return &copied, nil
}

func (s *MemoryPendingStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, id)
	return nil
}

package store

import (
	"path"
	"strings"
	"sync"
	"time"
)

// memoryStoreItem holds the value and expiration timestamp for a key.
type memoryStoreItem struct {
	value     []byte
	expiresAt int64 // Unix-nano timestamp. 0 for no expiry.
}

// MemoryStore is an in-memory key-value store that is safe for concurrent use.
// It is the default backend when no Redis DSN is configured.
type MemoryStore struct {
	mu          sync.RWMutex
	data        map[string]memoryStoreItem
	stopCleanup chan struct{}
}

// NewMemoryStore creates and returns a new MemoryStore instance.
func NewMemoryStore() *MemoryStore {
	s := &MemoryStore{
		data:        make(map[string]memoryStoreItem),
		stopCleanup: make(chan struct{}),
	}
	// Periodically clean expired items so keys that are never re-read do not
	// accumulate.
	go s.cleanupExpiredItems()
	return s
}

// Close stops the cleanup goroutine.
func (s *MemoryStore) Close() error {
	close(s.stopCleanup)
	return nil
}

// Set stores a key-value pair.
func (s *MemoryStore) Set(key string, value []byte, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expiresAt int64
	if ttl > 0 {
		expiresAt = time.Now().UnixNano() + ttl.Nanoseconds()
	}

	s.data[key] = memoryStoreItem{
		value:     value,
		expiresAt: expiresAt,
	}
	return nil
}

// Get retrieves a value by its key.
func (s *MemoryStore) Get(key string) ([]byte, error) {
	s.mu.RLock()
	item, exists := s.data[key]
	s.mu.RUnlock()

	if !exists {
		return nil, ErrNotFound
	}

	if item.expiresAt > 0 && time.Now().UnixNano() > item.expiresAt {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return nil, ErrNotFound
	}

	return item.value, nil
}

// Delete removes a value by its key.
func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Del removes multiple values by their keys.
func (s *MemoryStore) Del(keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.data, key)
	}
	return nil
}

// DelPattern removes all keys matching a glob pattern.
func (s *MemoryStore) DelPattern(pattern string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for key := range s.data {
		if matchPattern(pattern, key) {
			delete(s.data, key)
			removed++
		}
	}
	return removed, nil
}

// Exists checks if a key exists.
func (s *MemoryStore) Exists(key string) (bool, error) {
	s.mu.RLock()
	item, exists := s.data[key]
	s.mu.RUnlock()

	if !exists {
		return false, nil
	}

	if item.expiresAt > 0 && time.Now().UnixNano() > item.expiresAt {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return false, nil
	}

	return true, nil
}

// Clear removes all items from the store.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = make(map[string]memoryStoreItem)
	return nil
}

// matchPattern reports whether key matches a Redis-style glob pattern.
// path.Match treats '/' specially, so keys are matched on a neutralized copy.
func matchPattern(pattern, key string) bool {
	if pattern == "*" {
		return true
	}
	neutral := func(s string) string { return strings.ReplaceAll(s, "/", "\x00") }
	matched, err := path.Match(neutral(pattern), neutral(key))
	if err != nil {
		return false
	}
	return matched
}

// cleanupExpiredItems runs periodic cleanup of expired items.
func (s *MemoryStore) cleanupExpiredItems() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCleanup:
			return
		case <-ticker.C:
			s.performCleanup()
		}
	}
}

// performCleanup removes expired items from the store.
func (s *MemoryStore) performCleanup() {
	now := time.Now().UnixNano()

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, item := range s.data {
		if item.expiresAt > 0 && now > item.expiresAt {
			delete(s.data, key)
		}
	}
}

package cooldown

import (
	"sync"
	"time"
)

// Key scopes a cooldown to one user's use of one command tag in one guild.
type Key struct {
	GuildID string
	UserID  string
	Tag     string
}

// Store is an in-memory, per-process rate limiter. Cooldowns are advisory:
// losing them on restart is acceptable and nothing persists them.
type Store struct {
	mu      sync.Mutex
	entries map[Key]time.Time
}

func New() *Store {
	return &Store{entries: make(map[Key]time.Time)}
}

// Set starts a cooldown unless a live one already exists for the key. It
// returns false and leaves the existing expiry untouched when one does, so
// rapid repeated calls cannot extend a cooldown.
func (s *Store) Set(k Key, d time.Duration) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	if expireAt, ok := s.entries[k]; ok && expireAt.After(now) {
		return false
	}
	s.entries[k] = now.Add(d)
	return true
}

// OnCooldown reports whether a non-expired entry exists for the key.
func (s *Store) OnCooldown(k Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	expireAt, ok := s.entries[k]
	if !ok {
		return false
	}
	if !expireAt.After(time.Now()) {
		delete(s.entries, k)
		return false
	}
	return true
}

// TimeLeft returns the remaining cooldown in whole seconds, rounded up, or 0
// when no live entry exists.
func (s *Store) TimeLeft(k Key) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	expireAt, ok := s.entries[k]
	if !ok {
		return 0
	}
	left := time.Until(expireAt)
	if left <= 0 {
		delete(s.entries, k)
		return 0
	}
	secs := int(left / time.Second)
	if left%time.Second != 0 {
		secs++
	}
	return secs
}

// Sweep drops expired entries. Callers never need it for correctness (reads
// expire lazily); the bot scheduler runs it periodically to bound memory.
func (s *Store) Sweep() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for k, expireAt := range s.entries {
		if !expireAt.After(now) {
			delete(s.entries, k)
		}
	}
}

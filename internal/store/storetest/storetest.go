// Package storetest provides an in-memory fiber.Storage for tests.
package storetest

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Ensure Storage implements the fiber.Storage interface.
var _ fiber.Storage = (*Storage)(nil)

// Storage is a map backed fiber.Storage. Writes to a key can be made to fail
// with FailWrites.
type Storage struct {
	mu      sync.RWMutex
	data    map[string][]byte
	failing map[string]error
	sets    map[string]int
}

// New returns an empty Storage.
func New() *Storage {
	return &Storage{
		data:    make(map[string][]byte),
		failing: make(map[string]error),
		sets:    make(map[string]int),
	}
}

// Get returns a copy of the value for key, or nil when absent.
func (s *Storage) Get(key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[key]
	if !ok {
		return nil, nil
	}

	out := make([]byte, len(v))
	copy(out, v)

	return out, nil
}

// Set stores a copy of val under key.
func (s *Storage) Set(key string, val []byte, _ time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.failing[key]; err != nil {
		return err
	}

	buf := make([]byte, len(val))
	copy(buf, val)
	s.data[key] = buf
	s.sets[key]++

	return nil
}

// Delete removes key.
func (s *Storage) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

// Reset removes every key.
func (s *Storage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data = make(map[string][]byte)
	s.sets = make(map[string]int)

	return nil
}

// Close is a no-op.
func (s *Storage) Close() error { return nil }

// Put stores a raw value without counting it as a write.
func (s *Storage) Put(key, val string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = []byte(val)
}

// Raw returns the raw value under key as a string.
func (s *Storage) Raw(key string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return string(s.data[key])
}

// Writes returns how many times Set succeeded for key.
func (s *Storage) Writes(key string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.sets[key]
}

// FailWrites makes every following Set on key return err. A nil err clears it.
func (s *Storage) FailWrites(key string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err == nil {
		delete(s.failing, key)
		return
	}

	s.failing[key] = err
}

package testutil

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Sequence is a thread-safe monotonic counter for generating distinct
// test values. The first call to Next returns 1.
type Sequence struct {
	mu  sync.Mutex
	seq int64
}

// Next increments and returns the next value.
func (s *Sequence) Next() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	return s.seq
}

// Current returns the current value without incrementing.
func (s *Sequence) Current() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seq
}

// Reset rewinds the sequence so the next call to Next returns 1.
func (s *Sequence) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq = 0
}

// testNamespace roots every UUID produced by UUIDSource.
var testNamespace = uuid.MustParse("6ba7b811-9dad-11d1-80b4-00c04fd430c8")

// UUIDSource produces a reproducible stream of UUIDs: the same seed always
// yields the same sequence, so golden output stays byte-identical.
type UUIDSource struct {
	seed string
	seq  Sequence
}

// NewUUIDSource creates a source for seed.
func NewUUIDSource(seed string) *UUIDSource {
	return &UUIDSource{seed: seed}
}

// Next returns the next UUID in canonical 36-character form.
func (s *UUIDSource) Next() string {
	n := s.seq.Next()
	return uuid.NewSHA1(testNamespace, []byte(fmt.Sprintf("%s/%d", s.seed, n))).String()
}

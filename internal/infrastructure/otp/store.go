package otp

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"
)

const (
	// CodeExpiry is how long a code stays valid after it was issued.
	CodeExpiry = 5 * time.Minute
	// MaxSends is how many codes may be sent before the email locks.
	MaxSends = 5
	// LockWindow is how long a locked email stays locked.
	LockWindow = 12 * time.Hour
)

// Challenge is the per-email OTP state. The attempt counter and lock are
// tracked independently of the code's own expiry.
type Challenge struct {
	Code        string
	CreatedAt   time.Time
	Attempts    int
	LastSent    time.Time
	LockedUntil *time.Time
}

// Store keeps OTP challenges keyed by email. Implementations must be safe
// for use from concurrent request handlers and shared across server
// instances where the backing store allows it.
type Store interface {
	// Put stores a fresh code for the email, preserving the attempt
	// counter of any existing challenge.
	Put(ctx context.Context, email, code string) error
	// Verify reports whether the code matches the live challenge. The
	// challenge is consumed on success and dropped on expiry.
	Verify(ctx context.Context, email, code string) (bool, error)
	// Check is Verify without consuming the challenge on success.
	Check(ctx context.Context, email, code string) (bool, error)
	// CanSend reports whether another code may be sent. Crossing the send
	// limit locks the email for LockWindow.
	CanSend(ctx context.Context, email string) (bool, error)
	// IncrementAttempts bumps the send counter after a successful send.
	IncrementAttempts(ctx context.Context, email string) error
	// Reset drops the challenge.
	Reset(ctx context.Context, email string) error
}

// GenerateCode returns a random 6-digit numeric code.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type memoryStore struct {
	mu    sync.Mutex
	items map[string]*Challenge
}

// NewMemoryStore returns an in-process Store. Only suitable for tests and
// single-instance development runs; production uses the Redis store.
func NewMemoryStore() Store {
	return &memoryStore{items: make(map[string]*Challenge)}
}

func (s *memoryStore) Put(_ context.Context, email, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(email)
	now := time.Now()
	attempts := 0
	if existing, ok := s.items[key]; ok {
		attempts = existing.Attempts
	}
	s.items[key] = &Challenge{
		Code:      code,
		CreatedAt: now,
		Attempts:  attempts,
		LastSent:  now,
	}
	return nil
}

func (s *memoryStore) Verify(_ context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(email)
	entry, ok := s.items[key]
	if !ok {
		return false, nil
	}
	if time.Since(entry.CreatedAt) > CodeExpiry {
		delete(s.items, key)
		return false, nil
	}
	if entry.Code != code {
		return false, nil
	}
	delete(s.items, key)
	return true, nil
}

func (s *memoryStore) Check(_ context.Context, email, code string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(email)
	entry, ok := s.items[key]
	if !ok {
		return false, nil
	}
	if time.Since(entry.CreatedAt) > CodeExpiry {
		delete(s.items, key)
		return false, nil
	}
	return entry.Code == code, nil
}

func (s *memoryStore) CanSend(_ context.Context, email string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := normalizeEmail(email)
	entry, ok := s.items[key]
	if !ok {
		return true, nil
	}
	now := time.Now()
	if entry.LockedUntil != nil && now.Before(*entry.LockedUntil) {
		return false, nil
	}
	if entry.Attempts >= MaxSends {
		lock := now.Add(LockWindow)
		entry.LockedUntil = &lock
		return false, nil
	}
	return true, nil
}

func (s *memoryStore) IncrementAttempts(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry, ok := s.items[normalizeEmail(email)]; ok {
		entry.Attempts++
	}
	return nil
}

func (s *memoryStore) Reset(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, normalizeEmail(email))
	return nil
}

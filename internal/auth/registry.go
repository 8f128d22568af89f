package auth

import (
	"strings"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/Felipeysz/teste/internal/domain"
	"github.com/Felipeysz/teste/internal/metrics"
)

// TokenVerifier is the slice of TokenCodec the registry needs.
type TokenVerifier interface {
	DecodeAndVerify(token string) (Claims, error)
}

// SessionRegistry holds the set of currently active session tokens.
//
// The registry is process-wide, in-memory state: it lives for the lifetime of
// the process and a restart clears every active session. All methods are safe
// for concurrent use; the single mutex is fine at this contention level.
//
// Invariant: no two held tokens that both verify may carry the same subject.
// LoginForSubject enforces it by checking and inserting under one lock.
type SessionRegistry struct {
	mu     sync.Mutex
	tokens map[string]struct{}
	codec  TokenVerifier
	clock  clockwork.Clock
}

// NewSessionRegistry creates an empty registry.
func NewSessionRegistry(codec TokenVerifier, clock clockwork.Clock) *SessionRegistry {
	return &SessionRegistry{
		tokens: make(map[string]struct{}),
		codec:  codec,
		clock:  clock,
	}
}

// IsActiveForSubject reports whether a valid, unexpired token for the subject
// is currently held. Subjects compare case-insensitively.
//
// This is a mutating query: tokens that fail to decode or have expired are
// evicted as they are encountered.
func (r *SessionRegistry) IsActiveForSubject(email string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.isActiveLocked(email)
}

// LoginForSubject atomically checks for an active session and, if none exists,
// calls issue and registers the resulting token. Returns
// domain.ErrSessionActive when the subject already has a live session.
//
// The check and the insert happen under one lock, so two concurrent logins
// for the same subject cannot both succeed.
func (r *SessionRegistry) LoginForSubject(email string, issue func() (string, error)) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isActiveLocked(email) {
		return "", domain.ErrSessionActive
	}

	token, err := issue()
	if err != nil {
		return "", err
	}

	r.tokens[token] = struct{}{}
	metrics.ActiveSessions.Set(float64(len(r.tokens)))
	return token, nil
}

// Add inserts a token without any uniqueness check. Prefer LoginForSubject;
// Add exists for callers that already hold a verified token (e.g. tests).
func (r *SessionRegistry) Add(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tokens[token] = struct{}{}
	metrics.ActiveSessions.Set(float64(len(r.tokens)))
}

// Remove deletes a token if present. Removing an absent token is not an error.
func (r *SessionRegistry) Remove(token string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.tokens, token)
	metrics.ActiveSessions.Set(float64(len(r.tokens)))
}

// Count sweeps invalid and expired tokens, then returns the number still
// held. The sweep trades an O(n) scan for an exact answer; with one token
// per logged-in account that is cheap.
func (r *SessionRegistry) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	for token := range r.tokens {
		if _, err := r.codec.DecodeAndVerify(token); err != nil {
			delete(r.tokens, token)
		}
	}
	metrics.ActiveSessions.Set(float64(len(r.tokens)))
	return len(r.tokens)
}

// isActiveLocked scans held tokens for a live one matching the subject,
// evicting any token that no longer decodes. Caller must hold r.mu.
func (r *SessionRegistry) isActiveLocked(email string) bool {
	now := r.clock.Now()
	active := false
	for token := range r.tokens {
		claims, err := r.codec.DecodeAndVerify(token)
		if err != nil {
			// Expired or tampered, either way it no longer counts.
			delete(r.tokens, token)
			continue
		}
		if strings.EqualFold(claims.Subject, email) && claims.ExpiresAt.After(now) {
			active = true
		}
	}
	metrics.ActiveSessions.Set(float64(len(r.tokens)))
	return active
}

// Package store holds the raw upstream collections and their per-resource
// fetch states. It is the only shared mutable state in the service: fetch
// completions replace whole collections, everything else reads immutable
// snapshots.
package store

import (
	"maps"
	"sync"

	"github.com/jonboulle/clockwork"

	"github.com/pscheid92/salespulse/internal/domain"
)

// Store is a versioned in-memory entity store. Every mutation bumps the
// snapshot version so consumers can detect change and recompute the
// reporting pipeline.
//
// On fetch failure the prior collection is retained and only the resource
// state flips to failed — no partial merges, and a failure on one resource
// never touches another's data.
type Store struct {
	clock clockwork.Clock

	mu       sync.RWMutex
	version  uint64
	users    []domain.User
	accounts []domain.Account
	calls    []domain.Call
	emails   []domain.Email
	states   map[domain.Resource]domain.ResourceState
}

func New(clock clockwork.Clock) *Store {
	states := make(map[domain.Resource]domain.ResourceState, 4)
	for _, r := range domain.Resources() {
		states[r] = domain.ResourceState{Status: domain.StatusIdle}
	}
	return &Store{clock: clock, states: states}
}

// MarkLoading transitions a resource to the loading state.
func (s *Store) MarkLoading(r domain.Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[r] = domain.ResourceState{Status: domain.StatusLoading}
	s.version++
}

// MarkFailed records a fetch failure, retaining the prior collection.
func (s *Store) MarkFailed(r domain.Resource, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.states[r] = domain.ResourceState{Status: domain.StatusFailed, Error: err.Error()}
	s.version++
}

// ReplaceUsers replaces the users collection wholesale and marks the
// resource succeeded.
func (s *Store) ReplaceUsers(users []domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = users
	s.succeed(domain.ResourceUsers)
}

// ReplaceAccounts replaces the accounts collection wholesale.
func (s *Store) ReplaceAccounts(accounts []domain.Account) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = accounts
	s.succeed(domain.ResourceAccounts)
}

// ReplaceCalls replaces the calls collection wholesale.
func (s *Store) ReplaceCalls(calls []domain.Call) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = calls
	s.succeed(domain.ResourceCalls)
}

// ReplaceEmails replaces the emails collection wholesale.
func (s *Store) ReplaceEmails(emails []domain.Email) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.emails = emails
	s.succeed(domain.ResourceEmails)
}

func (s *Store) succeed(r domain.Resource) {
	s.states[r] = domain.ResourceState{Status: domain.StatusSucceeded, FetchedAt: s.clock.Now()}
	s.version++
}

// Snapshot returns an immutable view of the store. The returned slices share
// backing arrays with the store; they are safe to read concurrently because
// collections are only ever replaced, never mutated in place.
func (s *Store) Snapshot() domain.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return domain.Snapshot{
		Version:  s.version,
		Users:    s.users,
		Accounts: s.accounts,
		Calls:    s.calls,
		Emails:   s.emails,
		States:   maps.Clone(s.states),
	}
}

// Version returns the current snapshot version without copying state.
func (s *Store) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

package domain

import "time"

// Resource identifies one of the four upstream collections.
type Resource string

const (
	ResourceUsers    Resource = "users"
	ResourceAccounts Resource = "accounts"
	ResourceCalls    Resource = "calls"
	ResourceEmails   Resource = "emails"
)

// Resources returns all resource kinds in fetch order.
func Resources() []Resource {
	return []Resource{ResourceUsers, ResourceAccounts, ResourceCalls, ResourceEmails}
}

// FetchStatus is the lifecycle state of one resource's fetch. Each resource
// kind tracks its own status; there is no joint state.
type FetchStatus string

const (
	StatusIdle      FetchStatus = "idle"
	StatusLoading   FetchStatus = "loading"
	StatusSucceeded FetchStatus = "succeeded"
	StatusFailed    FetchStatus = "failed"
)

// ResourceState is the fetch state of one resource kind.
type ResourceState struct {
	Status    FetchStatus `json:"status"`
	Error     string      `json:"error,omitempty"`
	FetchedAt time.Time   `json:"fetchedAt,omitzero"`
}

// Terminal reports whether the fetch has finished, successfully or not.
// Presentation gates on all relevant resources being terminal before
// rendering derived statistics.
func (s ResourceState) Terminal() bool {
	return s.Status == StatusSucceeded || s.Status == StatusFailed
}

// Snapshot is an immutable view of the entity store at a point in time.
// All pipeline computation is a pure function over a snapshot; a version
// change is the signal to recompute. Collections must never be mutated in
// place — a successful fetch replaces them wholesale.
type Snapshot struct {
	Version  uint64
	Users    []User
	Accounts []Account
	Calls    []Call
	Emails   []Email
	States   map[Resource]ResourceState
}

// State returns the fetch state for a resource, defaulting to idle.
func (s Snapshot) State(r Resource) ResourceState {
	if st, ok := s.States[r]; ok {
		return st
	}
	return ResourceState{Status: StatusIdle}
}

// AllTerminal reports whether every given resource has finished fetching.
func (s Snapshot) AllTerminal(resources ...Resource) bool {
	for _, r := range resources {
		if !s.State(r).Terminal() {
			return false
		}
	}
	return true
}

// Failures returns the error text of every failed resource among the given
// ones, keyed by resource. A failure on one resource never hides another
// resource's data.
func (s Snapshot) Failures(resources ...Resource) map[Resource]string {
	var failures map[Resource]string
	for _, r := range resources {
		if st := s.State(r); st.Status == StatusFailed {
			if failures == nil {
				failures = make(map[Resource]string)
			}
			failures[r] = st.Error
		}
	}
	return failures
}

package domain

import (
	"fmt"
	"time"
)

// --- Model types ---

// User is a sales rep with a single assigned territory.
type User struct {
	ID        int    `json:"id"`
	UserName  string `json:"userName"`
	Territory string `json:"territory"`
}

// Account is a customer entity owning interaction records. Its territory
// label joins it to users by exact string match.
type Account struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Territory string `json:"territory"`
}

// Call is a logged interaction. AccountID is a loose foreign key: the data
// source gives no referential-integrity guarantee, so it may reference a
// missing account.
type Call struct {
	ID         int    `json:"id"`
	AccountID  int    `json:"accountId"`
	CallDate   string `json:"callDate"`
	CallType   string `json:"callType"`
	CallStatus string `json:"callStatus"`
}

// Email is a logged email interaction, with the same loose foreign key as Call.
type Email struct {
	ID        int    `json:"id"`
	AccountID int    `json:"accountId"`
	EmailDate string `json:"emailDate"`
}

// --- Call types ---

const (
	CallTypeFaceToFace = "Face to Face"
	CallTypeInPerson   = "In-Person"
	CallTypeEmail      = "Email"
	CallTypePhone      = "Phone"
	CallTypeOthers     = "Others"

	// CallTypeFilterAll disables type filtering in ListCalls.
	CallTypeFilterAll = "All"
)

// CallTypes returns the enumerated call types in display order.
func CallTypes() []string {
	return []string{CallTypeFaceToFace, CallTypeInPerson, CallTypeEmail, CallTypePhone, CallTypeOthers}
}

// ValidCallTypeFilter reports whether filter is one of the enumerated call
// types or the "All" sentinel.
func ValidCallTypeFilter(filter string) bool {
	if filter == CallTypeFilterAll {
		return true
	}
	for _, t := range CallTypes() {
		if filter == t {
			return true
		}
	}
	return false
}

// --- Sentinels ---

const (
	// UnknownAccountName is rendered when a call's account foreign key
	// resolves to no account.
	UnknownAccountName = "Unknown Account"

	// NoDate is rendered when an account has no qualifying interactions.
	NoDate = "-"
)

// --- Derived row types ---

// Stats are per-account interaction statistics, recomputed on every render
// pass and never persisted.
type Stats struct {
	TotalCalls      int    `json:"totalCalls"`
	TotalEmails     int    `json:"totalEmails"`
	LatestCallDate  string `json:"latestCallDate"`
	LatestEmailDate string `json:"latestEmailDate"`
}

// StatsRow is one line of the territory summary table.
type StatsRow struct {
	AccountID   int    `json:"accountId"`
	AccountName string `json:"accountName"`
	Stats
}

// CallRow is one line of the call listing table.
type CallRow struct {
	ID          int    `json:"id"`
	AccountName string `json:"accountName"`
	Date        string `json:"date"`
	CallType    string `json:"callType"`
	CallStatus  string `json:"callStatus"`
}

// --- Dates ---

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
	"2006/01/02",
}

// ParseDate parses an interaction date string. Malformed dates yield the zero
// time, which sorts before every real date and is never chosen as "latest".
func ParseDate(s string) time.Time {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// FormatDate renders a date as M/D/YYYY, the short form the dashboard tables
// display. The zero time renders as the NoDate sentinel.
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return NoDate
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

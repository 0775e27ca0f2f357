package domain

import "time"

// summaryCallTypes is the restricted inclusion rule for the territory
// summary table. The call listing deliberately uses a different rule (the
// request's explicit filter); the two views are kept distinct on purpose,
// mirroring upstream product behaviour.
var summaryCallTypes = map[string]bool{
	CallTypeFaceToFace: true,
	CallTypePhone:      true,
}

// ComputeStats computes interaction statistics for one account.
//
// Calls count only when their type is in the restricted summary set.
// Latest dates are chronological maxima, rendered M/D/YYYY; an account with
// zero qualifying interactions gets counts of 0 and the NoDate sentinel,
// never an empty string or a fault. Malformed dates are skipped when picking
// the latest, so they can never win.
func ComputeStats(accountID int, calls []Call, emails []Email) Stats {
	var stats Stats
	var latestCall, latestEmail maxDate
	for _, c := range calls {
		if c.AccountID != accountID || !summaryCallTypes[c.CallType] {
			continue
		}
		stats.TotalCalls++
		latestCall.observe(c.CallDate)
	}
	for _, e := range emails {
		if e.AccountID != accountID {
			continue
		}
		stats.TotalEmails++
		latestEmail.observe(e.EmailDate)
	}

	stats.LatestCallDate = latestCall.format()
	stats.LatestEmailDate = latestEmail.format()
	return stats
}

// SummaryRows builds the territory summary table for a user: one StatsRow
// per territory account, in resolver order.
func SummaryRows(userID int, users []User, accounts []Account, calls []Call, emails []Email) []StatsRow {
	territoryAccounts := ResolveAccountsForUser(userID, users, accounts)

	rows := make([]StatsRow, 0, len(territoryAccounts))
	for _, a := range territoryAccounts {
		rows = append(rows, StatsRow{
			AccountID:   a.ID,
			AccountName: a.Name,
			Stats:       ComputeStats(a.ID, calls, emails),
		})
	}
	return rows
}

// maxDate tracks the chronological maximum over a stream of date strings.
// Unparseable values collapse to the zero time and can never win; the zero
// maximum formats as the NoDate sentinel.
type maxDate struct {
	best time.Time
}

func (m *maxDate) observe(date string) {
	if t := ParseDate(date); t.After(m.best) {
		m.best = t
	}
}

func (m *maxDate) format() string {
	return FormatDate(m.best)
}

package domain

// ListCalls builds the call listing for a user's territory, optionally
// narrowed to a single call type. Pass CallTypeFilterAll to include every
// type.
//
// A call qualifies when its account belongs to the user's territory, or when
// its accountId resolves to no account at all — orphaned calls stay visible
// (annotated with the UnknownAccountName sentinel) rather than silently
// disappearing from every territory. Calls owned by another territory's
// account are excluded. Output preserves the original calls order; rows are
// not re-sorted by date.
//
// An empty territory resolution (unknown user, empty territory) yields an
// empty listing.
func ListCalls(userID int, callTypeFilter string, users []User, accounts []Account, calls []Call) []CallRow {
	territoryAccounts := ResolveAccountsForUser(userID, users, accounts)
	if len(territoryAccounts) == 0 {
		return nil
	}

	inTerritory := make(map[int]string, len(territoryAccounts))
	for _, a := range territoryAccounts {
		inTerritory[a.ID] = a.Name
	}
	known := make(map[int]bool, len(accounts))
	for _, a := range accounts {
		known[a.ID] = true
	}

	var rows []CallRow
	for _, c := range calls {
		name, ok := inTerritory[c.AccountID]
		if !ok {
			if known[c.AccountID] {
				// Belongs to another territory.
				continue
			}
			name = UnknownAccountName
		}
		if callTypeFilter != CallTypeFilterAll && c.CallType != callTypeFilter {
			continue
		}
		rows = append(rows, CallRow{
			ID:          c.ID,
			AccountName: name,
			Date:        FormatDate(ParseDate(c.CallDate)),
			CallType:    c.CallType,
			CallStatus:  c.CallStatus,
		})
	}
	return rows
}

package domain

// ResolveAccountsForUser returns the accounts belonging to the given user's
// territory, preserving the relative order of accounts.
//
// An unknown userID is a valid "no selection" state, not an error, and
// yields an empty result. A user with an empty territory also yields an
// empty result: an empty join key must not silently match everything.
// Territory comparison is exact and case-sensitive.
func ResolveAccountsForUser(userID int, users []User, accounts []Account) []Account {
	var territory string
	found := false
	for _, u := range users {
		if u.ID == userID {
			territory = u.Territory
			found = true
			break
		}
	}
	if !found || territory == "" {
		return nil
	}

	var matched []Account
	for _, a := range accounts {
		if a.Territory == territory {
			matched = append(matched, a)
		}
	}
	return matched
}

// AccountName looks up an account's display name, falling back to the
// UnknownAccountName sentinel when the id resolves to nothing.
func AccountName(accountID int, accounts []Account) string {
	for _, a := range accounts {
		if a.ID == accountID {
			return a.Name
		}
	}
	return UnknownAccountName
}

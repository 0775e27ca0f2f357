package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var testUsers = []User{
	{ID: 1, UserName: "alice", Territory: "North"},
	{ID: 2, UserName: "bob", Territory: "South"},
	{ID: 3, UserName: "carol", Territory: ""},
}

var testAccounts = []Account{
	{ID: 10, Name: "Acme", Territory: "North"},
	{ID: 11, Name: "Globex", Territory: "South"},
	{ID: 12, Name: "Initech", Territory: "North"},
	{ID: 13, Name: "Umbrella", Territory: "north"},
}

func TestResolveAccountsForUser_FiltersByTerritory(t *testing.T) {
	got := ResolveAccountsForUser(1, testUsers, testAccounts)
	assert.Equal(t, []Account{
		{ID: 10, Name: "Acme", Territory: "North"},
		{ID: 12, Name: "Initech", Territory: "North"},
	}, got)
}

func TestResolveAccountsForUser_UnknownUser(t *testing.T) {
	assert.Empty(t, ResolveAccountsForUser(99, testUsers, testAccounts))
}

func TestResolveAccountsForUser_EmptyTerritoryMatchesNothing(t *testing.T) {
	// An empty join key must not match everything.
	assert.Empty(t, ResolveAccountsForUser(3, testUsers, testAccounts))
}

func TestResolveAccountsForUser_CaseSensitiveMatch(t *testing.T) {
	got := ResolveAccountsForUser(1, testUsers, testAccounts)
	for _, a := range got {
		assert.NotEqual(t, "Umbrella", a.Name, "lowercase territory must not match")
	}
}

func TestResolveAccountsForUser_StableOrder(t *testing.T) {
	first := ResolveAccountsForUser(1, testUsers, testAccounts)
	second := ResolveAccountsForUser(1, testUsers, testAccounts)
	assert.Equal(t, first, second)

	// Output order follows the accounts slice, not any re-sort.
	assert.Equal(t, 10, first[0].ID)
	assert.Equal(t, 12, first[1].ID)
}

func TestResolveAccountsForUser_NoAccountsInTerritory(t *testing.T) {
	users := []User{{ID: 5, Territory: "West"}}
	assert.Empty(t, ResolveAccountsForUser(5, users, testAccounts))
}

func TestAccountName_Resolved(t *testing.T) {
	assert.Equal(t, "Acme", AccountName(10, testAccounts))
}

func TestAccountName_Unresolved(t *testing.T) {
	assert.Equal(t, UnknownAccountName, AccountName(999, testAccounts))
}

package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var listingUsers = []User{{ID: 1, UserName: "alice", Territory: "North"}}

var listingAccounts = []Account{
	{ID: 10, Name: "Acme", Territory: "North"},
	{ID: 11, Name: "Globex", Territory: "South"},
}

var listingCalls = []Call{
	{ID: 100, AccountID: 10, CallType: CallTypePhone, CallDate: "2024-01-01", CallStatus: "Completed"},
	{ID: 101, AccountID: 11, CallType: CallTypePhone, CallDate: "2024-06-01", CallStatus: "Completed"},
	{ID: 102, AccountID: 10, CallType: CallTypeFaceToFace, CallDate: "2024-02-15", CallStatus: "Scheduled"},
	{ID: 103, AccountID: 999, CallType: CallTypePhone, CallDate: "2024-03-01", CallStatus: "Missed"},
}

func TestListCalls_TerritoryScoped(t *testing.T) {
	rows := ListCalls(1, CallTypeFilterAll, listingUsers, listingAccounts, listingCalls)

	ids := make([]int, 0, len(rows))
	for _, r := range rows {
		ids = append(ids, r.ID)
	}
	// Globex's call (101) belongs to the South territory and is excluded;
	// the orphaned call (103) stays visible.
	assert.Equal(t, []int{100, 102, 103}, ids)
}

func TestListCalls_UnknownAccountSentinel(t *testing.T) {
	rows := ListCalls(1, CallTypeFilterAll, listingUsers, listingAccounts, listingCalls)

	var orphan *CallRow
	for i := range rows {
		if rows[i].ID == 103 {
			orphan = &rows[i]
		}
	}
	assert.NotNil(t, orphan)
	assert.Equal(t, UnknownAccountName, orphan.AccountName)
}

func TestListCalls_TypeFilter(t *testing.T) {
	rows := ListCalls(1, CallTypePhone, listingUsers, listingAccounts, listingCalls)
	for _, r := range rows {
		assert.Equal(t, CallTypePhone, r.CallType)
	}
	assert.Len(t, rows, 2)
}

func TestListCalls_EmailFilterDoesNotMatchEmailCollection(t *testing.T) {
	// An Email-kind interaction in the separate emails collection is a
	// different entity; only a call record with callType "Email" matches.
	rows := ListCalls(1, CallTypeEmail, listingUsers, listingAccounts, listingCalls)
	assert.Empty(t, rows)
}

func TestListCalls_UnknownUser(t *testing.T) {
	assert.Empty(t, ListCalls(99, CallTypeFilterAll, listingUsers, listingAccounts, listingCalls))
}

func TestListCalls_PreservesOriginalOrder(t *testing.T) {
	// Calls deliberately out of date order: output must not re-sort.
	calls := []Call{
		{ID: 1, AccountID: 10, CallType: CallTypePhone, CallDate: "2024-12-01"},
		{ID: 2, AccountID: 10, CallType: CallTypePhone, CallDate: "2024-01-01"},
	}
	rows := ListCalls(1, CallTypeFilterAll, listingUsers, listingAccounts, calls)
	assert.Equal(t, 1, rows[0].ID)
	assert.Equal(t, 2, rows[1].ID)
}

func TestListCalls_RowFields(t *testing.T) {
	rows := ListCalls(1, CallTypeFaceToFace, listingUsers, listingAccounts, listingCalls)
	assert.Len(t, rows, 1)
	assert.Equal(t, CallRow{
		ID:          102,
		AccountName: "Acme",
		Date:        "2/15/2024",
		CallType:    CallTypeFaceToFace,
		CallStatus:  "Scheduled",
	}, rows[0])
}

func TestValidCallTypeFilter(t *testing.T) {
	assert.True(t, ValidCallTypeFilter(CallTypeFilterAll))
	assert.True(t, ValidCallTypeFilter(CallTypePhone))
	assert.True(t, ValidCallTypeFilter(CallTypeInPerson))
	assert.False(t, ValidCallTypeFilter("phone"))
	assert.False(t, ValidCallTypeFilter(""))
}

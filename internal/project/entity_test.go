// InstaBids | 2026
// entity_test.go

package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	cases := []struct {
		from    string
		to      string
		allowed bool
	}{
		{StatusDraft, StatusOpenForBids, true},
		{StatusDraft, StatusCancelled, true},
		{StatusDraft, StatusAwarded, false},
		{StatusDraft, StatusCompleted, false},
		{StatusOpenForBids, StatusBiddingClosed, true},
		{StatusOpenForBids, StatusCancelled, true},
		{StatusOpenForBids, StatusDraft, false},
		{StatusOpenForBids, StatusAwarded, false},
		{StatusBiddingClosed, StatusAwarded, true},
		{StatusBiddingClosed, StatusOpenForBids, true},
		{StatusBiddingClosed, StatusCancelled, true},
		{StatusBiddingClosed, StatusInProgress, false},
		{StatusAwarded, StatusInProgress, true},
		{StatusAwarded, StatusCancelled, true},
		{StatusAwarded, StatusOpenForBids, false},
		{StatusInProgress, StatusCompleted, true},
		{StatusInProgress, StatusCancelled, true},
		{StatusCompleted, StatusCancelled, false},
		{StatusCompleted, StatusOpenForBids, false},
		{StatusCancelled, StatusDraft, false},
		{"bogus", StatusOpenForBids, false},
	}

	for _, tc := range cases {
		assert.Equal(
			t,
			tc.allowed,
			CanTransition(tc.from, tc.to),
			"%s -> %s", tc.from, tc.to,
		)
	}
}

func TestVirtualAccessRoundTrip(t *testing.T) {
	gate := "4821"
	hours := "8am-5pm weekdays"
	original := &VirtualAccess{GateCode: &gate, WorkHours: &hours}

	value, err := original.Value()
	require.NoError(t, err)

	var decoded VirtualAccess
	require.NoError(t, decoded.Scan(value))

	require.NotNil(t, decoded.GateCode)
	assert.Equal(t, "4821", *decoded.GateCode)
	require.NotNil(t, decoded.WorkHours)
	assert.Equal(t, "8am-5pm weekdays", *decoded.WorkHours)
	assert.Nil(t, decoded.LockboxCode)
}

func TestVirtualAccessNil(t *testing.T) {
	var access *VirtualAccess

	value, err := access.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	var decoded VirtualAccess
	require.NoError(t, decoded.Scan(nil))

	require.Error(t, decoded.Scan(42))
}

package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidTransition(t *testing.T) {
	cases := []struct {
		action string
		from   ReferralStatus
		want   bool
	}{
		{ActionActivate, ReferralPending, true},
		{ActionActivate, ReferralActive, false},
		{ActionAccept, ReferralPending, true},
		{ActionAccept, ReferralActive, true},
		{ActionAccept, ReferralAccepted, false},
		{ActionComplete, ReferralActive, true},
		{ActionComplete, ReferralAccepted, true},
		{ActionComplete, ReferralPending, false},
		{ActionCancel, ReferralPending, true},
		{ActionCancel, ReferralActive, true},
		{ActionCancel, ReferralAccepted, true},
		{ActionVoid, ReferralPending, true},
		{ActionVoid, ReferralAccepted, true},
		{ActionReactivate, ReferralVoided, true},
		{ActionReactivate, ReferralPending, false},

		// terminal states accept nothing but reactivate-from-voided
		{ActionActivate, ReferralCompleted, false},
		{ActionCancel, ReferralCompleted, false},
		{ActionAccept, ReferralCancelled, false},
		{ActionVoid, ReferralVoided, false},
		{ActionComplete, ReferralVoided, false},

		{"shred", ReferralPending, false},
	}
	for _, tc := range cases {
		got := ValidTransition(tc.action, tc.from)
		assert.Equal(t, tc.want, got, "%s from %s", tc.action, tc.from)
	}
}

func TestTargetStatus(t *testing.T) {
	cases := map[string]ReferralStatus{
		ActionActivate:   ReferralActive,
		ActionAccept:     ReferralAccepted,
		ActionComplete:   ReferralCompleted,
		ActionCancel:     ReferralCancelled,
		ActionVoid:       ReferralVoided,
		ActionReactivate: ReferralActive,
	}
	for action, want := range cases {
		got, ok := TargetStatus(action)
		assert.True(t, ok, action)
		assert.Equal(t, want, got, action)
	}

	_, ok := TargetStatus("shred")
	assert.False(t, ok)
}

func TestTerminal(t *testing.T) {
	assert.False(t, Terminal(ReferralPending))
	assert.False(t, Terminal(ReferralActive))
	assert.False(t, Terminal(ReferralAccepted))
	assert.True(t, Terminal(ReferralCompleted))
	assert.True(t, Terminal(ReferralCancelled))
	assert.True(t, Terminal(ReferralVoided))
}

package queuecode

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	quarters := map[byte]int{'A': 0, 'B': 15, 'C': 30, 'D': 45}

	for hour := 0; hour <= 23; hour++ {
		for letter, minute := range quarters {
			for _, seq := range []int{0, 1, 42, 999} {
				code, err := Encode(hour, letter, seq)
				require.NoError(t, err)

				d := Decode(code)
				assert.False(t, d.Raw, "code %q decoded as raw", code)
				assert.Equal(t, hour, d.Hour)
				assert.Equal(t, minute, d.Minute)
				assert.Equal(t, seq, d.Sequence)
			}
		}
	}
}

func TestEncodeFormat(t *testing.T) {
	code, err := Encode(9, 'C', 14)
	require.NoError(t, err)
	assert.Equal(t, "09C-014", code)
}

func TestEncodeRejectsInvalidInput(t *testing.T) {
	cases := []struct {
		name    string
		hour    int
		quarter byte
		seq     int
	}{
		{"negative hour", -1, 'A', 1},
		{"hour 24", 24, 'A', 1},
		{"letter below range", 10, '9', 1},
		{"letter above range", 10, 'E', 1},
		{"negative sequence", 10, 'B', -1},
		{"sequence overflow", 10, 'B', 1000},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Encode(tc.hour, tc.quarter, tc.seq)
			require.Error(t, err)
			assert.True(t, apperr.IsValidation(err))
		})
	}
}

func TestDecodeUnknownLetterDefaultsToTopOfHour(t *testing.T) {
	for _, ticket := range []string{"10X-007", "10z-007", "109-007"} {
		d := Decode(ticket)
		assert.False(t, d.Raw, "ticket %q", ticket)
		assert.Equal(t, 10, d.Hour, "ticket %q", ticket)
		assert.Equal(t, 0, d.Minute, "ticket %q", ticket)
		assert.Equal(t, 7, d.Sequence, "ticket %q", ticket)
	}
}

func TestDecodeMalformedPassesThrough(t *testing.T) {
	cases := []string{
		"",
		"NOHYPHEN",
		"9A-001",   // first segment too short
		"10AB-001", // first segment too long
		"XY!-001",  // non-digit hour
		"B-7",
	}
	for _, ticket := range cases {
		d := Decode(ticket)
		assert.True(t, d.Raw, "ticket %q should be passthrough", ticket)
		assert.Equal(t, ticket, d.Display)
		assert.Zero(t, d.Hour)
		assert.Zero(t, d.Sequence)
	}
}

func TestDecodeNeverPanics(t *testing.T) {
	inputs := []string{"", "-", "--", "---", "ABC-", "-123", "\x00\xff-1", "10", "10B", "10B-"}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Decode(in) }, "input %q", in)
	}
}

func TestDecodeDisplay(t *testing.T) {
	d := Decode("14D-003")
	assert.Equal(t, "14:45-003", d.Display)

	// extra segments survive into the display string
	d = Decode("14D-003-URGENT")
	assert.Equal(t, "14:45-003-URGENT", d.Display)
}

func TestQuarterForMinute(t *testing.T) {
	for minute := 0; minute < 60; minute++ {
		want := byte('A' + minute/15)
		assert.Equal(t, string(want), string(QuarterForMinute(minute)), fmt.Sprintf("minute %d", minute))
	}
}

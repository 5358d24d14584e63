// Package queuecode encodes and decodes the compact queue ticket codes
// printed on patient slips and shown on the station displays.
//
// A ticket code has the form "HHQ-NNN": two-digit hour of issuance, a
// quarter-hour slot letter (A=:00, B=:15, C=:30, D=:45) and a three-digit
// sequence number within that slot, e.g. "09C-014" for the 14th ticket
// minted between 09:30 and 09:44.
package queuecode

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mvcastillo/healthoffice-backend/internal/common/apperr"
)

// MaxSequence is the largest sequence representable in the three-digit field.
const MaxSequence = 999

// Decoded is the result of decoding a ticket code.
type Decoded struct {
	Hour     int
	Minute   int // slot minute: 0, 15, 30 or 45
	Sequence int
	Display  string
	// Raw marks a code that did not match the HHQ-NNN shape and was
	// passed through unchanged as the display string.
	Raw bool
}

// Encode builds a ticket code from an hour of day, a quarter letter and a
// sequence number. It returns a ValidationError for inputs outside the
// encodable range.
func Encode(hour int, quarter byte, sequence int) (string, error) {
	if hour < 0 || hour > 23 {
		return "", apperr.Validationf("hour %d outside 0-23", hour)
	}
	if quarter < 'A' || quarter > 'D' {
		return "", apperr.Validationf("quarter letter %q must be A, B, C or D", string(quarter))
	}
	if sequence < 0 || sequence > MaxSequence {
		return "", apperr.Validationf("sequence %d outside 0-%d", sequence, MaxSequence)
	}
	return fmt.Sprintf("%02d%c-%03d", hour, quarter, sequence), nil
}

// QuarterForMinute returns the slot letter covering a minute of the hour.
func QuarterForMinute(minute int) byte {
	switch {
	case minute < 15:
		return 'A'
	case minute < 30:
		return 'B'
	case minute < 45:
		return 'C'
	default:
		return 'D'
	}
}

// Decode parses a ticket code. It is total: any input yields a usable
// result and malformed codes degrade to a passthrough display string
// instead of an error, so display code never breaks on legacy data.
// Unrecognized slot letters fall back to the top of the hour.
func Decode(ticket string) Decoded {
	segments := strings.Split(ticket, "-")
	if len(segments) < 2 || len(segments[0]) != 3 {
		return Decoded{Display: ticket, Raw: true}
	}

	hour, err := strconv.Atoi(segments[0][:2])
	if err != nil {
		return Decoded{Display: ticket, Raw: true}
	}

	minute := 0
	switch segments[0][2] {
	case 'B':
		minute = 15
	case 'C':
		minute = 30
	case 'D':
		minute = 45
	}

	// A non-numeric tail keeps sequence zero; the display still renders.
	sequence, _ := strconv.Atoi(segments[1])

	return Decoded{
		Hour:     hour,
		Minute:   minute,
		Sequence: sequence,
		Display:  fmt.Sprintf("%02d:%02d-%s", hour, minute, strings.Join(segments[1:], "-")),
	}
}

// Package numbering builds human-readable order numbers of the form
// PREFIX + YYMMDD + 4-digit daily sequence, e.g. MSA2508150038.
package numbering

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// SequenceDigits is the width of the daily sequence suffix
	SequenceDigits = 4

	// MaxSequence is the last sequence that fits in SequenceDigits
	MaxSequence = 9999
)

// ErrSequenceExhausted is returned when a day runs past MaxSequence orders
var ErrSequenceExhausted = errors.New("daily order sequence exhausted")

// Generator formats order numbers in the store's time zone
type Generator struct {
	prefix   string
	location *time.Location
}

// NewGenerator creates a generator. A nil location means UTC.
func NewGenerator(prefix string, location *time.Location) *Generator {
	if location == nil {
		location = time.UTC
	}
	return &Generator{
		prefix:   strings.ToUpper(strings.TrimSpace(prefix)),
		location: location,
	}
}

// DayPrefix returns PREFIX+YYMMDD for the calendar day t falls on in the store zone
func (g *Generator) DayPrefix(t time.Time) string {
	return g.prefix + t.In(g.location).Format("060102")
}

// Format builds the full order number for sequence seq on t's day
func (g *Generator) Format(t time.Time, seq int) (string, error) {
	if seq < 1 || seq > MaxSequence {
		return "", fmt.Errorf("%w: %d", ErrSequenceExhausted, seq)
	}
	return fmt.Sprintf("%s%0*d", g.DayPrefix(t), SequenceDigits, seq), nil
}

// NextSequence returns the sequence that follows the given order number, or 1
// when there is none. A suffix that is not numeric is treated as no prior order.
func NextSequence(last string) int {
	if len(last) < SequenceDigits {
		return 1
	}
	n, err := strconv.Atoi(last[len(last)-SequenceDigits:])
	if err != nil || n < 0 {
		return 1
	}
	return n + 1
}

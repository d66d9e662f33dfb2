package reservation

import (
	"errors"
	"strings"
	"sync"
	"time"
)

var (
	ErrInvalidDateRange  = errors.New("check-out must be after check-in")
	ErrInvalidGuestCount = errors.New("guest count must be at least 1")
	ErrNegativeAmount    = errors.New("amount cannot be negative")
)

// StayPeriod is the half-open interval [checkIn, checkOut). The check-out
// instant itself is not occupied, so back-to-back bookings on the same
// resource never conflict.
type StayPeriod struct {
	checkIn  time.Time
	checkOut time.Time
}

func NewStayPeriod(checkIn, checkOut time.Time) (StayPeriod, error) {
	if checkIn.IsZero() || checkOut.IsZero() {
		return StayPeriod{}, ErrInvalidDateRange
	}
	if !checkOut.After(checkIn) {
		return StayPeriod{}, ErrInvalidDateRange
	}
	return StayPeriod{checkIn: checkIn, checkOut: checkOut}, nil
}

func (p StayPeriod) CheckIn() time.Time {
	return p.checkIn
}

func (p StayPeriod) CheckOut() time.Time {
	return p.checkOut
}

// Overlaps applies the half-open overlap rule: periods that merely touch at a
// boundary do not overlap.
func (p StayPeriod) Overlaps(other StayPeriod) bool {
	return p.checkIn.Before(other.checkOut) && p.checkOut.After(other.checkIn)
}

// Nights counts billable nights, rounding any partial day up. A 20-hour stay
// is 1 night; exactly 4x24h is 4.
func (p StayPeriod) Nights() int {
	d := p.checkOut.Sub(p.checkIn)
	nights := int(d / (24 * time.Hour))
	if d%(24*time.Hour) != 0 {
		nights++
	}
	return nights
}

// NightsBetween applies the Nights rounding rule to a raw time pair, for
// callers holding read models instead of a StayPeriod.
func NightsBetween(checkIn, checkOut time.Time) int {
	return StayPeriod{checkIn: checkIn, checkOut: checkOut}.Nights()
}

// IsValidDateRange reports whether the pair would form a valid StayPeriod.
func IsValidDateRange(checkIn, checkOut time.Time) bool {
	_, err := NewStayPeriod(checkIn, checkOut)
	return err == nil
}

// CodeAlphabet holds the characters confirmation codes are drawn from:
// uppercase letters and digits minus the visually confusable 0/O and 1/I.
const CodeAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// CodeLength is the confirmation code length in characters.
const CodeLength = 8

type ConfirmationCode string

func (c ConfirmationCode) String() string {
	return string(c)
}

func (c ConfirmationCode) IsValid() bool {
	if len(c) != CodeLength {
		return false
	}
	for _, r := range c {
		if !strings.ContainsRune(CodeAlphabet, r) {
			return false
		}
	}
	return true
}

// CodeSource yields uniform random indices. *math/rand/v2.Rand satisfies it,
// as does any deterministic source used in tests.
type CodeSource interface {
	IntN(n int) int
}

// CodeGenerator draws confirmation codes from an injected randomness source.
// Codes are practically unique, not guaranteed; the persistence layer carries
// a unique constraint and creation retries on collision.
type CodeGenerator struct {
	mu  sync.Mutex
	src CodeSource
}

func NewCodeGenerator(src CodeSource) *CodeGenerator {
	return &CodeGenerator{src: src}
}

func (g *CodeGenerator) Generate() ConfirmationCode {
	g.mu.Lock()
	defer g.mu.Unlock()

	buf := make([]byte, CodeLength)
	for i := range buf {
		buf[i] = CodeAlphabet[g.src.IntN(len(CodeAlphabet))]
	}
	return ConfirmationCode(buf)
}

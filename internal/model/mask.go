package model

import (
	"errors"
	"fmt"
	"math/bits"
	"strconv"
)

// MaskWidth is the minimum number of binary digits a mask is rendered with
const MaskWidth = 8

const (
	// StartMask is the progress value of a client that has answered nothing
	StartMask = "00000000"
	// TerminalMask marks a finished survey
	TerminalMask = "11111111"
)

// ErrInvalidMask is returned when a progress value or question id is not a binary string
var ErrInvalidMask = errors.New("invalid mask")

// Mask is the numeric value of a progress string or question id.
// Masks are usually 8 bits wide but may grow past that after an overflowing advance.
type Mask uint64

// ParseMask reads a string of 1 to 64 binary digits
func ParseMask(s string) (Mask, error) {
	if s == "" || len(s) > 64 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMask, s)
	}
	v, err := strconv.ParseUint(s, 2, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMask, s)
	}
	return Mask(v), nil
}

// String renders the mask zero-padded to MaskWidth digits
func (m Mask) String() string {
	return fmt.Sprintf("%0*b", MaskWidth, uint64(m))
}

// IsTerminal reports whether the mask is the completion value
func (m Mask) IsTerminal() bool {
	return m == 0xFF
}

// Covers reports whether any slot of id is already set in m.
// A question is eligible only when this is false.
func (m Mask) Covers(id Mask) bool {
	return m&id != 0
}

// Advance adds the answered question's id to the previous progress value.
// This is arithmetic addition, not OR: carries propagate across slots and
// sums above 255 produce masks wider than 8 digits.
func Advance(prev, id string) (string, error) {
	p, err := ParseMask(prev)
	if err != nil {
		return "", err
	}
	q, err := ParseMask(id)
	if err != nil {
		return "", err
	}
	sum, carry := bits.Add64(uint64(p), uint64(q), 0)
	if carry != 0 {
		return "", fmt.Errorf("%w: %s + %s overflows", ErrInvalidMask, prev, id)
	}
	return Mask(sum).String(), nil
}

// Package formula compiles compact extraction formulas used to synthesize
// phrase-level annotations out of per-character annotation records.
//
// A formula is a string of two-letter pairs such as "AaBaCaZa". The uppercase
// letter of each pair selects a character position inside the phrase, the
// lowercase letter selects a component position inside that character's
// decomposition. Positions are signed and 1-based: A..T count from the start
// (A = 1), U..Z count from the end (Z = -1, Y = -2, ... U = -6). The lowercase
// alphabet follows the same rule with pivot 'u'.
package formula

import (
	"fmt"
	"strings"
)

// Instruction is a single extraction step: take component Component of
// character Char. Both indices are signed, 1-based; negative values count
// from the end (-1 = last).
type Instruction struct {
	Char      int
	Component int
}

// Formula is an ordered list of extraction instructions. Compiled once at
// startup and shared read-only afterwards.
type Formula []Instruction

// pivot ranks: letters at or past the pivot address positions from the end.
const (
	upperPivot = 'U'
	lowerPivot = 'u'
)

func upperIndex(c byte) int {
	if c < upperPivot {
		return int(c-'A') + 1
	}
	// Widen before subtracting: the byte difference would wrap for
	// letters before the pivot's alphabet end.
	return int(c) - 'Z' - 1
}

func lowerIndex(c byte) int {
	if c < lowerPivot {
		return int(c-'a') + 1
	}
	return int(c) - 'z' - 1
}

// Compile parses a formula string into its instruction list. The string must
// consist solely of uppercase-then-lowercase ASCII letter pairs; anything
// else fails compilation. There are no partial formulas: callers must treat
// an error as a fatal configuration problem.
func Compile(s string) (Formula, error) {
	if s == "" {
		return nil, fmt.Errorf("empty formula")
	}
	if len(s)%2 != 0 {
		return nil, fmt.Errorf("formula %q: odd length %d", s, len(s))
	}

	f := make(Formula, 0, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		hi, lo := s[i], s[i+1]
		if hi < 'A' || hi > 'Z' {
			return nil, fmt.Errorf("formula %q: expected uppercase letter at position %d, got %q", s, i, hi)
		}
		if lo < 'a' || lo > 'z' {
			return nil, fmt.Errorf("formula %q: expected lowercase letter at position %d, got %q", s, i+1, lo)
		}
		f = append(f, Instruction{
			Char:      upperIndex(hi),
			Component: lowerIndex(lo),
		})
	}
	return f, nil
}

// String renders the formula back into its compact pair form.
func (f Formula) String() string {
	var sb strings.Builder
	sb.Grow(len(f) * 2)
	for _, ins := range f {
		if ins.Char > 0 {
			sb.WriteByte(byte('A' + ins.Char - 1))
		} else {
			sb.WriteByte(byte('Z' + ins.Char + 1))
		}
		if ins.Component > 0 {
			sb.WriteByte(byte('a' + ins.Component - 1))
		} else {
			sb.WriteByte(byte('z' + ins.Component + 1))
		}
	}
	return sb.String()
}

// Resolve maps a signed 1-based index onto a slice of the given length,
// returning the zero-based position and whether it is in range.
func Resolve(idx, length int) (int, bool) {
	if idx == 0 {
		return 0, false
	}
	if idx < 0 {
		idx = length + 1 + idx
	}
	if idx < 1 || idx > length {
		return 0, false
	}
	return idx - 1, true
}

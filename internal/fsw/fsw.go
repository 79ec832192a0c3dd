// Package fsw parses and formats Formal SignWriting (FSW) text.
//
// An FSW string is a space separated list of signs. Each sign is an optional
// sort prefix ("A" followed by symbol keys), a box symbol with its position,
// and the content symbols placed inside the box:
//
//	M518x529S14c20481x471S27106503x489
package fsw

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrParse is wrapped by every error returned from Parse and ParseSign.
var ErrParse = errors.New("fsw parse failure")

// ParseError reports where a sign failed to parse.
type ParseError struct {
	Sign   string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse sign %q at offset %d: %s", e.Sign, e.Offset, e.Reason)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// Box symbol keys.
const (
	BoxSign       = "B"
	BoxLeftLane   = "L"
	BoxMiddleLane = "M"
	BoxRightLane  = "R"
)

// Defaults used for signs that carry no box, e.g. a lone punctuation symbol.
const (
	DefaultBox = BoxMiddleLane
	DefaultX   = 500
	DefaultY   = 500
)

// Symbol key bounds. Keys run from S100 to S38b; S38c..S38f are unassigned.
const (
	minBase = 0x100
	maxBase = 0x38b
	maxFill = 0x5
)

// Point is a symbol position in the 1000x1000 sign space.
type Point struct {
	X int
	Y int
}

func (p Point) String() string {
	return strconv.Itoa(p.X) + "x" + strconv.Itoa(p.Y)
}

// Symbol is a box or content symbol together with its position.
type Symbol struct {
	Key      string
	Position Point
}

// IsBox reports whether the symbol is one of the four box symbols.
func (s Symbol) IsBox() bool {
	return IsBoxKey(s.Key)
}

// Base returns the first four characters of a content symbol key
// (S + category + group). Box symbols return their key unchanged.
func (s Symbol) Base() string {
	if s.IsBox() || len(s.Key) < 4 {
		return s.Key
	}
	return s.Key[:4]
}

// Fill returns the fill digit of a content symbol key.
func (s Symbol) Fill() byte {
	if len(s.Key) != 6 {
		return 0
	}
	return s.Key[4]
}

// Rotation returns the rotation digit of a content symbol key.
func (s Symbol) Rotation() byte {
	if len(s.Key) != 6 {
		return 0
	}
	return s.Key[5]
}

func (s Symbol) String() string {
	return s.Key + s.Position.String()
}

// Sign is one gesture: a box and the symbols arranged inside it.
type Sign struct {
	// Sort is the optional "A" prefix, kept as symbol keys.
	Sort    []string
	Box     Symbol
	Symbols []Symbol
}

// String formats the sign back into FSW.
func (s Sign) String() string {
	var b strings.Builder
	if len(s.Sort) > 0 {
		b.WriteByte('A')
		for _, key := range s.Sort {
			b.WriteString(key)
		}
	}
	b.WriteString(s.Box.String())
	for _, sym := range s.Symbols {
		b.WriteString(sym.String())
	}
	return b.String()
}

// Format joins signs with single spaces.
func Format(signs []Sign) string {
	parts := make([]string, len(signs))
	for i, s := range signs {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}

// IsBoxKey reports whether key names a box symbol.
func IsBoxKey(key string) bool {
	switch key {
	case BoxSign, BoxLeftLane, BoxMiddleLane, BoxRightLane:
		return true
	default:
		return false
	}
}

// ValidSymbolKey reports whether key is a well-formed content symbol key
// inside the assigned symbol range.
func ValidSymbolKey(key string) bool {
	if len(key) != 6 || key[0] != 'S' {
		return false
	}
	for i := 1; i < 6; i++ {
		if !isLowerHex(key[i]) {
			return false
		}
	}
	base, err := strconv.ParseUint(key[1:4], 16, 16)
	if err != nil || base < minBase || base > maxBase {
		return false
	}
	return hexValue(key[4]) <= maxFill
}

func isLowerHex(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')
}

func hexValue(c byte) int {
	if c >= 'a' {
		return int(c-'a') + 10
	}
	return int(c - '0')
}

package tokenizer

import (
	"fmt"
	"slices"
	"strconv"
)

// Token family bounds.
const (
	minCategory = 0x10
	maxCategory = 0x38
	maxGroup    = 0xf
	maxColumn   = 5
	maxRow      = 0xf
	minPosition = 250
	maxPosition = 749
)

var boxTokens = []string{"B", "L", "M", "R"}

// Unassigned base symbols inside the category range.
var excludedBases = []string{"S38c", "S38d", "S38e", "S38f"}

// Family identifies which of the five disjoint token families a token is in.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyBox
	FamilyBase
	FamilyRow
	FamilyColumn
	FamilyPosition
)

func (f Family) String() string {
	switch f {
	case FamilyBox:
		return "box"
	case FamilyBase:
		return "base"
	case FamilyRow:
		return "row"
	case FamilyColumn:
		return "column"
	case FamilyPosition:
		return "position"
	default:
		return "unknown"
	}
}

// ParseFamily converts a family name as printed by Family.String.
func ParseFamily(s string) (Family, error) {
	for f := FamilyBox; f <= FamilyPosition; f++ {
		if f.String() == s {
			return f, nil
		}
	}
	return FamilyUnknown, fmt.Errorf("unknown token family %q (want box|base|row|column|position)", s)
}

// BuildTokens returns the full vocabulary in its fixed order: box, base, row,
// column, position.
func BuildTokens() []string {
	tokens := make([]string, 0, VocabularySize)
	tokens = append(tokens, boxTokens...)

	for cat := minCategory; cat <= maxCategory; cat++ {
		for group := 0; group <= maxGroup; group++ {
			base := fmt.Sprintf("S%x%x", cat, group)
			if slices.Contains(excludedBases, base) {
				continue
			}
			tokens = append(tokens, base)
		}
	}

	for row := 0; row <= maxRow; row++ {
		tokens = append(tokens, fmt.Sprintf("r%x", row))
	}

	for col := 0; col <= maxColumn; col++ {
		tokens = append(tokens, fmt.Sprintf("c%x", col))
	}

	for p := minPosition; p <= maxPosition; p++ {
		tokens = append(tokens, "p"+strconv.Itoa(p))
	}

	return tokens
}

// VocabularySize is the number of tokens BuildTokens returns.
const VocabularySize = 4 + // box
	(maxCategory-minCategory+1)*(maxGroup+1) - 4 + // base
	maxRow + 1 + // row
	maxColumn + 1 + // column
	maxPosition - minPosition + 1 // position

// Vocabulary maps tokens to ids and back. Ids are assigned in BuildTokens
// order starting at the configured offset. It is immutable after construction.
type Vocabulary struct {
	tokens []string
	index  map[string]int
	start  int
}

// NewVocabulary builds the vocabulary with ids starting at startingIndex.
func NewVocabulary(startingIndex int) *Vocabulary {
	tokens := BuildTokens()

	index := make(map[string]int, len(tokens))
	for i, tok := range tokens {
		index[tok] = startingIndex + i
	}

	return &Vocabulary{tokens: tokens, index: index, start: startingIndex}
}

// Size returns the number of tokens.
func (v *Vocabulary) Size() int { return len(v.tokens) }

// StartingIndex returns the id of the first token.
func (v *Vocabulary) StartingIndex() int { return v.start }

// Tokens returns a copy of the ordered token list.
func (v *Vocabulary) Tokens() []string { return slices.Clone(v.tokens) }

// Contains reports whether tok is in the vocabulary.
func (v *Vocabulary) Contains(tok string) bool {
	_, ok := v.index[tok]
	return ok
}

// Index returns the id of tok.
func (v *Vocabulary) Index(tok string) (int, bool) {
	id, ok := v.index[tok]
	return id, ok
}

// Token returns the token with the given id.
func (v *Vocabulary) Token(id int) (string, bool) {
	i := id - v.start
	if i < 0 || i >= len(v.tokens) {
		return "", false
	}
	return v.tokens[i], true
}

// Classify returns the family of tok, or FamilyUnknown when tok is not a
// vocabulary token.
func Classify(tok string) Family {
	if tok == "" {
		return FamilyUnknown
	}

	switch tok[0] {
	case 'B', 'L', 'M', 'R':
		if len(tok) == 1 {
			return FamilyBox
		}
	case 'S':
		if len(tok) == 4 && !slices.Contains(excludedBases, tok) {
			if n, ok := parseHex(tok[1:]); ok && n >= minCategory<<4 && n <= maxCategory<<4|maxGroup {
				return FamilyBase
			}
		}
	case 'r':
		if len(tok) == 2 {
			if _, ok := parseHex(tok[1:]); ok {
				return FamilyRow
			}
		}
	case 'c':
		if len(tok) == 2 && tok[1] >= '0' && tok[1] <= '0'+maxColumn {
			return FamilyColumn
		}
	case 'p':
		if len(tok) == 4 {
			if n, ok := parseDecimal(tok[1:]); ok && n >= minPosition && n <= maxPosition {
				return FamilyPosition
			}
		}
	}

	return FamilyUnknown
}

func parseHex(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			n = n<<4 | int(c-'0')
		case c >= 'a' && c <= 'f':
			n = n<<4 | int(c-'a'+10)
		default:
			return 0, false
		}
	}
	return n, true
}

func parseDecimal(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

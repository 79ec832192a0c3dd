package tokenizer

import (
	"fmt"
	"strings"
)

// segment is one unit of the decoder's working list. Tokens start out
// unrendered; passes merge neighbours and fill in the FSW text they stand for.
type segment struct {
	family   Family
	token    string
	text     string
	rendered bool
}

// TokensToText rebuilds FSW text from a token sequence by running the decode
// passes in order:
//
//  1. adjacent position tokens become an XxY coordinate
//  2. a column token followed by a row token becomes the two digit suffix
//  3. a lone column token becomes its digit followed by 0
//  4. a lone row token becomes 0 followed by its digit
//  5. everything is concatenated without separators
//  6. a space is put back before every box letter that follows a digit
//
// Unknown tokens and position tokens without a partner are rejected. Lone
// column and row tokens are accepted so older streams that omitted the
// column token still decode.
func TokensToText(tokens []string) (string, error) {
	segs, err := classifyTokens(tokens)
	if err != nil {
		return "", err
	}

	segs, err = pairPositions(segs)
	if err != nil {
		return "", err
	}
	segs = joinColumnRow(segs)
	segs = expandColumns(segs)
	segs = expandRows(segs)

	return separateSigns(join(segs)), nil
}

func classifyTokens(tokens []string) ([]segment, error) {
	segs := make([]segment, len(tokens))
	for i, tok := range tokens {
		fam := Classify(tok)
		if fam == FamilyUnknown {
			return nil, fmt.Errorf("token %d %q: %w", i, tok, ErrUnknownToken)
		}
		segs[i] = segment{family: fam, token: tok}
		if fam == FamilyBox || fam == FamilyBase {
			segs[i].text = tok
			segs[i].rendered = true
		}
	}
	return segs, nil
}

// pairPositions scans left to right, merging each pair of adjacent position
// tokens. A position token left without a partner is an error.
func pairPositions(segs []segment) ([]segment, error) {
	out := make([]segment, 0, len(segs))
	for i := 0; i < len(segs); i++ {
		s := segs[i]
		if s.family != FamilyPosition {
			out = append(out, s)
			continue
		}
		if i+1 >= len(segs) || segs[i+1].family != FamilyPosition {
			return nil, fmt.Errorf("position token %q at %d has no partner: %w", s.token, i, ErrMalformedSequence)
		}
		out = append(out, segment{
			family:   FamilyPosition,
			text:     s.token[1:] + "x" + segs[i+1].token[1:],
			rendered: true,
		})
		i++
	}
	return out, nil
}

func joinColumnRow(segs []segment) []segment {
	out := make([]segment, 0, len(segs))
	for i := 0; i < len(segs); i++ {
		s := segs[i]
		if s.family == FamilyColumn && !s.rendered && i+1 < len(segs) &&
			segs[i+1].family == FamilyRow && !segs[i+1].rendered {
			out = append(out, segment{
				family:   FamilyColumn,
				text:     s.token[1:2] + segs[i+1].token[1:],
				rendered: true,
			})
			i++
			continue
		}
		out = append(out, s)
	}
	return out
}

func expandColumns(segs []segment) []segment {
	for i, s := range segs {
		if s.family == FamilyColumn && !s.rendered {
			segs[i].text = s.token[1:2] + "0"
			segs[i].rendered = true
		}
	}
	return segs
}

func expandRows(segs []segment) []segment {
	for i, s := range segs {
		if s.family == FamilyRow && !s.rendered {
			segs[i].text = "0" + s.token[1:]
			segs[i].rendered = true
		}
	}
	return segs
}

func join(segs []segment) string {
	var b strings.Builder
	for _, s := range segs {
		b.WriteString(s.text)
	}
	return b.String()
}

// separateSigns restores the space between signs: every box letter directly
// after a digit starts a new sign.
func separateSigns(s string) string {
	var b strings.Builder
	b.Grow(len(s) + len(s)/8)
	for i := 0; i < len(s); i++ {
		if i > 0 && isBoxLetter(s[i]) && isDigit(s[i-1]) {
			b.WriteByte(' ')
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func isBoxLetter(c byte) bool {
	return c == 'B' || c == 'L' || c == 'M' || c == 'R'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

// Validate checks that tokens follow the encoder's grammar exactly:
//
//	sign   = box position position { symbol }
//	symbol = base column row position position
//
// TokensToText accepts a looser set of inputs; Validate is for callers that
// want to reject anything the encoder would not emit.
func Validate(tokens []string) error {
	if len(tokens) == 0 {
		return fmt.Errorf("empty sequence: %w", ErrMalformedSequence)
	}

	i := 0
	expect := func(want Family) error {
		if i >= len(tokens) {
			return fmt.Errorf("sequence ends where a %s token is expected: %w", want, ErrMalformedSequence)
		}
		got := Classify(tokens[i])
		if got == FamilyUnknown {
			return fmt.Errorf("token %d %q: %w", i, tokens[i], ErrUnknownToken)
		}
		if got != want {
			return fmt.Errorf("token %d %q is a %s token, want %s: %w", i, tokens[i], got, want, ErrMalformedSequence)
		}
		i++
		return nil
	}

	for _, want := range []Family{FamilyBox, FamilyPosition, FamilyPosition} {
		if err := expect(want); err != nil {
			return err
		}
	}

	for i < len(tokens) {
		switch Classify(tokens[i]) {
		case FamilyBox:
			for _, want := range []Family{FamilyBox, FamilyPosition, FamilyPosition} {
				if err := expect(want); err != nil {
					return err
				}
			}
		default:
			for _, want := range []Family{FamilyBase, FamilyColumn, FamilyRow, FamilyPosition, FamilyPosition} {
				if err := expect(want); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

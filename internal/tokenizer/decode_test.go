package tokenizer

import (
	"errors"
	"strings"
	"testing"
)

func TestTokensToText_ReferenceSequence(t *testing.T) {
	// Stream produced before column tokens were introduced: row tokens stand alone.
	tokens := strings.Fields("M p500 p500 S203 r0 p492 p438 S192 r0 p492 p475 S119 r0 p486 p500 S1f0 c0 r0 p478 p540 S14a r0 p492 p565")

	got, err := TokensToText(tokens)
	if err != nil {
		t.Fatalf("TokensToText: %v", err)
	}

	want := "M500x500S20300492x438S19200492x475S11900486x500S1f000478x540S14a00492x565"
	if got != want {
		t.Errorf("TokensToText = %q, want %q", got, want)
	}
}

func TestTokensToText_BoxOnly(t *testing.T) {
	got, err := TokensToText([]string{"B", "p300", "p300"})
	if err != nil {
		t.Fatalf("TokensToText: %v", err)
	}

	if got != "B300x300" {
		t.Errorf("TokensToText = %q, want %q", got, "B300x300")
	}
}

func TestTokensToText_ColumnRowPair(t *testing.T) {
	got, err := TokensToText([]string{"M", "p500", "p500", "S10a", "c1", "rf", "p490", "p480"})
	if err != nil {
		t.Fatalf("TokensToText: %v", err)
	}

	if want := "M500x500S10a1f490x480"; got != want {
		t.Errorf("TokensToText = %q, want %q", got, want)
	}
}

func TestTokensToText_SeparatesEveryBoxKind(t *testing.T) {
	tokens := strings.Fields("M p500 p500 B p300 p300 L p510 p505 S100 c0 r0 p490 p490 R p520 p520")

	got, err := TokensToText(tokens)
	if err != nil {
		t.Fatalf("TokensToText: %v", err)
	}

	want := "M500x500 B300x300 L510x505S10000490x490 R520x520"
	if got != want {
		t.Errorf("TokensToText = %q, want %q", got, want)
	}
}

func TestTokensToText_Empty(t *testing.T) {
	got, err := TokensToText(nil)
	if err != nil {
		t.Fatalf("TokensToText(nil): %v", err)
	}

	if got != "" {
		t.Errorf("TokensToText(nil) = %q, want empty", got)
	}
}

func TestTokensToText_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		want   error
	}{
		{"unknown token", []string{"M", "p500", "p500", "S38c", "c0", "r0", "p500", "p500"}, ErrUnknownToken},
		{"out of range position", []string{"M", "p800", "p500"}, ErrUnknownToken},
		{"garbage", []string{"hello"}, ErrUnknownToken},
		{"single position", []string{"M", "p500"}, ErrMalformedSequence},
		{"split positions", []string{"M", "p500", "S100", "p500"}, ErrMalformedSequence},
		{"odd position run", []string{"M", "p500", "p500", "p500"}, ErrMalformedSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := TokensToText(tt.tokens)
			if !errors.Is(err, tt.want) {
				t.Errorf("TokensToText(%v) error = %v, want %v", tt.tokens, err, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// individual passes
// ---------------------------------------------------------------------------

func mustClassify(t *testing.T, tokens ...string) []segment {
	t.Helper()

	segs, err := classifyTokens(tokens)
	if err != nil {
		t.Fatalf("classifyTokens(%v): %v", tokens, err)
	}

	return segs
}

func TestPairPositions(t *testing.T) {
	segs, err := pairPositions(mustClassify(t, "S100", "p250", "p749", "c0", "p300", "p301"))
	if err != nil {
		t.Fatalf("pairPositions: %v", err)
	}

	if len(segs) != 4 {
		t.Fatalf("len = %d, want 4", len(segs))
	}

	if segs[1].text != "250x749" || !segs[1].rendered {
		t.Errorf("segs[1] = %+v, want rendered 250x749", segs[1])
	}

	if segs[3].text != "300x301" {
		t.Errorf("segs[3].text = %q, want 300x301", segs[3].text)
	}

	if segs[2].rendered {
		t.Error("column token should be untouched by pairPositions")
	}
}

func TestJoinColumnRow(t *testing.T) {
	segs := joinColumnRow(mustClassify(t, "c3", "ra", "c2", "S100", "r4"))

	if len(segs) != 4 {
		t.Fatalf("len = %d, want 4", len(segs))
	}

	if segs[0].text != "3a" || !segs[0].rendered {
		t.Errorf("segs[0] = %+v, want rendered 3a", segs[0])
	}

	// A column followed by anything other than a row is left for the next pass.
	if segs[1].rendered {
		t.Errorf("segs[1] = %+v, want unrendered column", segs[1])
	}

	if segs[3].rendered {
		t.Errorf("segs[3] = %+v, want unrendered row", segs[3])
	}
}

func TestExpandColumns(t *testing.T) {
	segs := expandColumns(mustClassify(t, "c4", "r1"))

	if segs[0].text != "40" || !segs[0].rendered {
		t.Errorf("segs[0] = %+v, want rendered 40", segs[0])
	}

	if segs[1].rendered {
		t.Error("row token should be left for expandRows")
	}
}

func TestExpandRows(t *testing.T) {
	segs := expandRows(mustClassify(t, "rb"))

	if segs[0].text != "0b" || !segs[0].rendered {
		t.Errorf("segs[0] = %+v, want rendered 0b", segs[0])
	}
}

func TestSeparateSigns(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"M500x500", "M500x500"},
		{"M500x500M500x500", "M500x500 M500x500"},
		{"B300x300L300x300R300x300", "B300x300 L300x300 R300x300"},
		{"M500x500S10000500x500", "M500x500S10000500x500"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := separateSigns(tt.in); got != tt.want {
			t.Errorf("separateSigns(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

// ---------------------------------------------------------------------------
// Validate
// ---------------------------------------------------------------------------

func TestValidate_AcceptsEncoderOutput(t *testing.T) {
	for _, in := range roundTripInputs {
		tokens := collect(t, in)
		if err := Validate(tokens); err != nil {
			t.Errorf("Validate(encode(%q)): %v", in, err)
		}
	}
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		tokens string
		want   error
	}{
		{"empty", "", ErrMalformedSequence},
		{"starts with base", "S100 c0 r0 p500 p500", ErrMalformedSequence},
		{"missing column", "M p500 p500 S203 r0 p492 p438", ErrMalformedSequence},
		{"missing row", "M p500 p500 S203 c0 p492 p438", ErrMalformedSequence},
		{"truncated symbol", "M p500 p500 S203 c0 r0 p492", ErrMalformedSequence},
		{"box without position", "M p500 p500 B", ErrMalformedSequence},
		{"stray position", "M p500 p500 p500", ErrMalformedSequence},
		{"unknown token", "M p500 p500 S38f c0 r0 p500 p500", ErrUnknownToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(strings.Fields(tt.tokens))
			if !errors.Is(err, tt.want) {
				t.Errorf("Validate(%q) error = %v, want %v", tt.tokens, err, tt.want)
			}
		})
	}
}

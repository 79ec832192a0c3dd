package tokenizer

import (
	"slices"
	"strconv"
	"testing"
)

// ---------------------------------------------------------------------------
// BuildTokens
// ---------------------------------------------------------------------------

func TestBuildTokens_Size(t *testing.T) {
	got := len(BuildTokens())
	want := 4 + (0x29*0x10 - 4) + 16 + 6 + 500

	if got != want {
		t.Fatalf("len(BuildTokens()) = %d, want %d", got, want)
	}

	if VocabularySize != want {
		t.Errorf("VocabularySize = %d, want %d", VocabularySize, want)
	}
}

func TestBuildTokens_Deterministic(t *testing.T) {
	a := BuildTokens()
	b := BuildTokens()

	if !slices.Equal(a, b) {
		t.Fatal("two BuildTokens calls returned different token lists")
	}
}

func TestBuildTokens_FamilyOrder(t *testing.T) {
	tokens := BuildTokens()

	// Families appear as contiguous runs in the order box, base, row, column, position.
	want := []Family{FamilyBox, FamilyBase, FamilyRow, FamilyColumn, FamilyPosition}

	var runs []Family
	for _, tok := range tokens {
		f := Classify(tok)
		if len(runs) == 0 || runs[len(runs)-1] != f {
			runs = append(runs, f)
		}
	}

	if !slices.Equal(runs, want) {
		t.Errorf("family runs = %v, want %v", runs, want)
	}
}

func TestBuildTokens_Boundaries(t *testing.T) {
	tokens := BuildTokens()

	checks := map[int]string{
		0:    "B",
		3:    "R",
		4:    "S100",
		5:    "S101",
		655:  "S38b",
		656:  "r0",
		671:  "rf",
		672:  "c0",
		677:  "c5",
		678:  "p250",
		1177: "p749",
	}

	for i, want := range checks {
		if tokens[i] != want {
			t.Errorf("tokens[%d] = %q, want %q", i, tokens[i], want)
		}
	}
}

func TestBuildTokens_ExcludesUnassignedBases(t *testing.T) {
	tokens := BuildTokens()

	for _, tok := range []string{"S38c", "S38d", "S38e", "S38f", "S0ff", "S390"} {
		if slices.Contains(tokens, tok) {
			t.Errorf("vocabulary unexpectedly contains %q", tok)
		}
	}
}

func TestBuildTokens_NoDuplicates(t *testing.T) {
	seen := make(map[string]bool)
	for _, tok := range BuildTokens() {
		if seen[tok] {
			t.Fatalf("duplicate token %q", tok)
		}
		seen[tok] = true
	}
}

// ---------------------------------------------------------------------------
// Classify
// ---------------------------------------------------------------------------

func TestClassify_EveryTokenHasOneFamily(t *testing.T) {
	for _, tok := range BuildTokens() {
		if Classify(tok) == FamilyUnknown {
			t.Errorf("Classify(%q) = unknown", tok)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		tok  string
		want Family
	}{
		{"B", FamilyBox},
		{"M", FamilyBox},
		{"S10a", FamilyBase},
		{"S38b", FamilyBase},
		{"r0", FamilyRow},
		{"rf", FamilyRow},
		{"c0", FamilyColumn},
		{"c5", FamilyColumn},
		{"p250", FamilyPosition},
		{"p749", FamilyPosition},
		{"", FamilyUnknown},
		{"A", FamilyUnknown},
		{"MM", FamilyUnknown},
		{"S38c", FamilyUnknown},
		{"S0ff", FamilyUnknown},
		{"S10A", FamilyUnknown},
		{"S10a1", FamilyUnknown},
		{"rg", FamilyUnknown},
		{"r10", FamilyUnknown},
		{"c6", FamilyUnknown},
		{"cf", FamilyUnknown},
		{"p249", FamilyUnknown},
		{"p750", FamilyUnknown},
		{"p0500", FamilyUnknown},
	}

	for _, tt := range tests {
		if got := Classify(tt.tok); got != tt.want {
			t.Errorf("Classify(%q) = %s, want %s", tt.tok, got, tt.want)
		}
	}
}

func TestParseFamily(t *testing.T) {
	for f := FamilyBox; f <= FamilyPosition; f++ {
		got, err := ParseFamily(f.String())
		if err != nil {
			t.Fatalf("ParseFamily(%q): %v", f.String(), err)
		}
		if got != f {
			t.Errorf("ParseFamily(%q) = %s, want %s", f.String(), got, f)
		}
	}

	if _, err := ParseFamily("glyph"); err == nil {
		t.Error("expected error for unknown family name")
	}
}

// ---------------------------------------------------------------------------
// Vocabulary
// ---------------------------------------------------------------------------

func TestVocabulary_IndexAndToken(t *testing.T) {
	v := NewVocabulary(0)

	for i, tok := range BuildTokens() {
		id, ok := v.Index(tok)
		if !ok || id != i {
			t.Fatalf("Index(%q) = %d, %v; want %d, true", tok, id, ok, i)
		}

		back, ok := v.Token(id)
		if !ok || back != tok {
			t.Fatalf("Token(%d) = %q, %v; want %q, true", id, back, ok, tok)
		}
	}
}

func TestVocabulary_StartingIndex(t *testing.T) {
	v := NewVocabulary(3)

	if v.StartingIndex() != 3 {
		t.Errorf("StartingIndex() = %d, want 3", v.StartingIndex())
	}

	id, ok := v.Index("B")
	if !ok || id != 3 {
		t.Errorf("Index(B) = %d, %v; want 3, true", id, ok)
	}

	if _, ok := v.Token(2); ok {
		t.Error("Token(2) should be out of range with starting index 3")
	}

	last, ok := v.Token(3 + v.Size() - 1)
	if !ok || last != "p749" {
		t.Errorf("last token = %q, %v; want p749, true", last, ok)
	}

	if _, ok := v.Token(3 + v.Size()); ok {
		t.Error("Token past the end should not exist")
	}
}

func TestVocabulary_TokensIsCopy(t *testing.T) {
	v := NewVocabulary(0)

	tokens := v.Tokens()
	tokens[0] = "mutated"

	if got, _ := v.Token(0); got != "B" {
		t.Errorf("vocabulary changed through Tokens() copy: Token(0) = %q", got)
	}
}

func TestVocabulary_PositionRange(t *testing.T) {
	v := NewVocabulary(0)

	for _, tok := range v.Tokens() {
		if Classify(tok) != FamilyPosition {
			continue
		}

		n, err := strconv.Atoi(tok[1:])
		if err != nil {
			t.Fatalf("position token %q: %v", tok, err)
		}

		if n < 250 || n > 749 {
			t.Errorf("position token %q outside [250, 749]", tok)
		}
	}

	if v.Contains("p249") || v.Contains("p750") {
		t.Error("vocabulary contains an out-of-range position token")
	}
}

// Package doctor runs self checks on the tokenizer: vocabulary shape, round
// trips over built-in samples, and round trips over user supplied FSW corpora.
package doctor

import (
	"fmt"
	"io"
	"os"

	"github.com/example/go-fsw-tokenizer/internal/text"
	"github.com/example/go-fsw-tokenizer/internal/tokenizer"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// DefaultSamples are FSW strings every build must round trip.
var DefaultSamples = []string{
	"B300x300",
	"M518x529S14c20481x471S27106503x489",
	"M518x529S14c20481x471S27106503x489 L508x515S1870a489x485S18701490x502S20500498x480",
	"R520x520S20320490x490 B250x749S38b5f250x250",
}

// Codec is the part of the tokenizer the checks exercise.
type Codec interface {
	Vocabulary() *tokenizer.Vocabulary
	Tokens(text string) ([]string, error)
	TokensToText(tokens []string) (string, error)
}

// Config holds injectable dependencies for each doctor check.
type Config struct {
	Codec Codec
	// Samples are round-tripped in memory; nil means DefaultSamples.
	Samples []string
	// CorpusFiles are read line by line and every line is round-tripped.
	CorpusFiles []string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	// ---- vocabulary ------------------------------------------------------
	if err := checkVocabulary(cfg.Codec.Vocabulary()); err != nil {
		res.fail(fmt.Sprintf("vocabulary: %v", err))
		fmt.Fprintf(w, "%s vocabulary: %v\n", FailMark, err)
	} else {
		fmt.Fprintf(w, "%s vocabulary: %d tokens\n", PassMark, cfg.Codec.Vocabulary().Size())
	}

	// ---- built-in samples ------------------------------------------------
	samples := cfg.Samples
	if samples == nil {
		samples = DefaultSamples
	}
	if failed := roundTripAll(cfg.Codec, samples); len(failed) > 0 {
		for _, msg := range failed {
			res.fail("sample " + msg)
		}
		fmt.Fprintf(w, "%s round trip samples: %d of %d failed\n", FailMark, len(failed), len(samples))
	} else {
		fmt.Fprintf(w, "%s round trip samples: %d ok\n", PassMark, len(samples))
	}

	// ---- corpus files ----------------------------------------------------
	for _, path := range cfg.CorpusFiles {
		lines, err := readCorpus(path)
		if err != nil {
			res.fail(fmt.Sprintf("corpus %q: %v", path, err))
			fmt.Fprintf(w, "%s corpus %s: %v\n", FailMark, path, err)
			continue
		}

		failed := roundTripAll(cfg.Codec, lines)
		if len(failed) > 0 {
			for _, msg := range failed {
				res.fail(fmt.Sprintf("corpus %q: %s", path, msg))
			}
			fmt.Fprintf(w, "%s corpus %s: %d of %d lines failed\n", FailMark, path, len(failed), len(lines))
			continue
		}
		fmt.Fprintf(w, "%s corpus %s: %d lines ok\n", PassMark, path, len(lines))
	}

	return res
}

// checkVocabulary verifies size, uniqueness and that every token belongs to
// exactly the family its position implies.
func checkVocabulary(v *tokenizer.Vocabulary) error {
	if v.Size() != tokenizer.VocabularySize {
		return fmt.Errorf("size %d, want %d", v.Size(), tokenizer.VocabularySize)
	}

	seen := make(map[string]struct{}, v.Size())
	for i, tok := range v.Tokens() {
		if _, dup := seen[tok]; dup {
			return fmt.Errorf("duplicate token %q", tok)
		}
		seen[tok] = struct{}{}

		if tokenizer.Classify(tok) == tokenizer.FamilyUnknown {
			return fmt.Errorf("token %q has no family", tok)
		}

		id, ok := v.Index(tok)
		if !ok || id != v.StartingIndex()+i {
			return fmt.Errorf("token %q maps to id %d, want %d", tok, id, v.StartingIndex()+i)
		}
	}

	return nil
}

func roundTripAll(c Codec, inputs []string) []string {
	var failed []string
	for _, in := range inputs {
		tokens, err := c.Tokens(in)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%q: %v", in, err))
			continue
		}
		out, err := c.TokensToText(tokens)
		if err != nil {
			failed = append(failed, fmt.Sprintf("%q: %v", in, err))
			continue
		}
		if out != in {
			failed = append(failed, fmt.Sprintf("%q decoded as %q", in, out))
		}
	}
	return failed
}

func readCorpus(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	return text.ReadLines(f)
}

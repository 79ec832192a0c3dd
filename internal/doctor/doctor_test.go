package doctor

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/example/go-fsw-tokenizer/internal/tokenizer"
)

// brokenCodec decodes every sequence to a fixed string.
type brokenCodec struct {
	*tokenizer.SignWritingTokenizer
	out string
	err error
}

func (b brokenCodec) TokensToText(_ []string) (string, error) { return b.out, b.err }

func writeCorpus(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "corpus.fsw")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	return path
}

func TestRun_AllPass(t *testing.T) {
	corpus := writeCorpus(t, "M518x529S14c20481x471\n\nB300x300 R310x310\n")

	var buf bytes.Buffer
	res := Run(Config{Codec: tokenizer.New(0), CorpusFiles: []string{corpus}}, &buf)

	if res.Failed() {
		t.Fatalf("unexpected failures: %v\noutput:\n%s", res.Failures(), buf.String())
	}

	out := buf.String()
	if strings.Contains(out, FailMark) {
		t.Errorf("output contains a failure mark:\n%s", out)
	}

	if !strings.Contains(out, "vocabulary: 1178 tokens") {
		t.Errorf("missing vocabulary line:\n%s", out)
	}

	if !strings.Contains(out, "2 lines ok") {
		t.Errorf("missing corpus line:\n%s", out)
	}
}

func TestRun_SampleMismatch(t *testing.T) {
	var buf bytes.Buffer
	res := Run(Config{
		Codec:   brokenCodec{SignWritingTokenizer: tokenizer.New(0), out: "M500x500"},
		Samples: []string{"B300x300", "M500x500"},
	}, &buf)

	if !res.Failed() {
		t.Fatal("expected failure for mismatching round trip")
	}

	if got := len(res.Failures()); got != 1 {
		t.Errorf("got %d failures, want 1: %v", got, res.Failures())
	}

	if !strings.Contains(buf.String(), FailMark+" round trip samples: 1 of 2 failed") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestRun_DecodeError(t *testing.T) {
	var buf bytes.Buffer
	res := Run(Config{
		Codec:   brokenCodec{SignWritingTokenizer: tokenizer.New(0), err: errors.New("boom")},
		Samples: []string{"B300x300"},
	}, &buf)

	if !res.Failed() || !strings.Contains(res.Failures()[0], "boom") {
		t.Errorf("failures = %v, want decode error", res.Failures())
	}
}

func TestRun_ParseErrorInCorpus(t *testing.T) {
	corpus := writeCorpus(t, "M518x\n")

	var buf bytes.Buffer
	res := Run(Config{Codec: tokenizer.New(0), CorpusFiles: []string{corpus}}, &buf)

	if !res.Failed() {
		t.Fatal("expected failure for unparsable corpus line")
	}

	if !strings.Contains(buf.String(), "1 of 1 lines failed") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestRun_MissingCorpus(t *testing.T) {
	var buf bytes.Buffer
	res := Run(Config{Codec: tokenizer.New(0), CorpusFiles: []string{"/nonexistent/corpus.fsw"}}, &buf)

	if !res.Failed() {
		t.Fatal("expected failure for missing corpus file")
	}

	if !strings.Contains(buf.String(), FailMark+" corpus /nonexistent/corpus.fsw") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}

func TestResult_AddFailure(t *testing.T) {
	var res Result
	res.AddFailure("external")

	if !res.Failed() {
		t.Fatal("Failed() = false after AddFailure")
	}

	failures := res.Failures()
	failures[0] = "mutated"

	if res.Failures()[0] != "external" {
		t.Error("Failures() should return a copy")
	}
}

func TestCheckVocabulary_StartingIndex(t *testing.T) {
	if err := checkVocabulary(tokenizer.NewVocabulary(5)); err != nil {
		t.Errorf("checkVocabulary: %v", err)
	}
}

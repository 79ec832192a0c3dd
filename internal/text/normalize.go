// Package text prepares raw command line and stdin input for the tokenizer.
package text

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

// maxLineBytes bounds a single input line read by ReadLines.
const maxLineBytes = 1 << 20

// Normalize prepares one line of input: it trims surrounding whitespace and
// collapses inner runs of whitespace to a single space, since FSW and token
// lines both use one space as separator. Empty input is rejected.
func Normalize(s string) (string, error) {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return "", ErrEmptyText
	}
	return s, nil
}

// Lines splits s on any line ending and returns the normalized non-blank
// lines.
func Lines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	var out []string
	for _, line := range strings.Split(s, "\n") {
		norm, err := Normalize(line)
		if err != nil {
			continue
		}
		out = append(out, norm)
	}
	return out
}

// ReadLines reads r line by line and returns the normalized non-blank lines.
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var out []string
	for sc.Scan() {
		out = append(out, Lines(sc.Text())...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return out, nil
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/example/go-fsw-tokenizer/internal/config"
	"github.com/example/go-fsw-tokenizer/internal/text"
	"github.com/spf13/cobra"
)

// readInputs returns the command's inputs: the joined positional arguments
// when present, otherwise one input per non-blank stdin line.
func readInputs(cmd *cobra.Command, args []string) ([]string, error) {
	if len(args) > 0 {
		in, err := text.Normalize(strings.Join(args, " "))
		if err != nil {
			return nil, err
		}
		return []string{in}, nil
	}

	lines, err := text.ReadLines(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, text.ErrEmptyText
	}
	return lines, nil
}

// record is one line of command output.
type record struct {
	FSW    string   `json:"fsw,omitempty"`
	Tokens []string `json:"tokens,omitempty"`
	IDs    []int64  `json:"ids,omitempty"`
	Output string   `json:"output,omitempty"`
	OK     *bool    `json:"ok,omitempty"`
}

// writer prints records either as plain text or as JSON lines.
type writer struct {
	w      io.Writer
	format string
	enc    *json.Encoder
}

func newWriter(w io.Writer, format string) *writer {
	out := &writer{w: w, format: format}
	if format == config.FormatJSON {
		out.enc = json.NewEncoder(w)
	}
	return out
}

func (o *writer) write(r record, line string) error {
	if o.enc != nil {
		if err := o.enc.Encode(r); err != nil {
			return fmt.Errorf("write json: %w", err)
		}
		return nil
	}
	_, err := fmt.Fprintln(o.w, line)
	return err
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, " ")
}

func parseIDs(line string) ([]int64, error) {
	fields := strings.Fields(line)
	ids := make([]int64, len(fields))
	for i, f := range fields {
		id, err := strconv.ParseInt(f, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse id %q: %w", f, err)
		}
		ids[i] = id
	}
	return ids, nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("write json: %w", err)
	}
	return nil
}

package main

import (
	"log/slog"
	"strings"

	"github.com/example/go-fsw-tokenizer/internal/tokenizer"
	"github.com/spf13/cobra"
)

func newDecodeCmd() *cobra.Command {
	var fromIDs bool

	cmd := &cobra.Command{
		Use:   "decode [token...]",
		Short: "Rebuild FSW text from tokens (arguments or one sequence per stdin line)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			inputs, err := readInputs(cmd, args)
			if err != nil {
				return err
			}

			tok := newTokenizer(cfg)
			out := newWriter(cmd.OutOrStdout(), cfg.Output.Format)

			for _, in := range inputs {
				rec, err := decodeLine(tok, in, fromIDs, cfg.Decode.Strict)
				if err != nil {
					return err
				}

				slog.Debug("decoded", "tokens", len(rec.Tokens), "fsw", rec.FSW)

				if err := out.write(rec, rec.FSW); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&fromIDs, "ids", false, "Read vocabulary ids instead of tokens")

	return cmd
}

func decodeLine(tok *tokenizer.SignWritingTokenizer, line string, fromIDs, strict bool) (record, error) {
	var rec record

	if fromIDs {
		ids, err := parseIDs(line)
		if err != nil {
			return record{}, err
		}

		tokens, err := tok.IDsToTokens(ids)
		if err != nil {
			return record{}, err
		}
		rec.IDs = ids
		rec.Tokens = tokens
	} else {
		rec.Tokens = strings.Fields(line)
	}

	if strict {
		if err := tokenizer.Validate(rec.Tokens); err != nil {
			return record{}, err
		}
	}

	fsw, err := tok.TokensToText(rec.Tokens)
	if err != nil {
		return record{}, err
	}
	rec.FSW = fsw

	return rec, nil
}

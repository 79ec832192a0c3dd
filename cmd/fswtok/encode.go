package main

import (
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
)

func newEncodeCmd() *cobra.Command {
	var asIDs bool

	cmd := &cobra.Command{
		Use:   "encode [fsw...]",
		Short: "Tokenize FSW text (arguments or one sign string per stdin line)",
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
				tokens, err := tok.Tokens(in)
				if err != nil {
					return err
				}

				rec := record{FSW: in, Tokens: tokens}
				line := strings.Join(tokens, " ")

				if asIDs {
					ids, err := tok.Encode(in)
					if err != nil {
						return err
					}
					rec.IDs = ids
					line = joinIDs(ids)
				}

				slog.Debug("encoded", "fsw", in, "tokens", len(tokens))

				if err := out.write(rec, line); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asIDs, "ids", false, "Print vocabulary ids instead of tokens")

	return cmd
}

package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
)

func newRoundTripCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "roundtrip [fsw...]",
		Short: "Check that encoding then decoding reproduces each FSW input",
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
			failed := 0

			for _, in := range inputs {
				got, err := roundTrip(tok, in)
				ok := err == nil && got == in

				var line string
				switch {
				case err != nil:
					line = fmt.Sprintf("error\t%s\t%v", in, err)
					got = ""
				case ok:
					line = "ok\t" + in
				default:
					line = fmt.Sprintf("mismatch\t%s\t%s", in, got)
				}

				if !ok {
					failed++
					slog.Warn("round trip failed", "fsw", in, "output", got, "error", err)
				}

				if err := out.write(record{FSW: in, Output: got, OK: &ok}, line); err != nil {
					return err
				}
			}

			if failed > 0 {
				return fmt.Errorf("%d of %d inputs failed the round trip", failed, len(inputs))
			}

			return nil
		},
	}

	return cmd
}

type textCodec interface {
	Tokens(text string) ([]string, error)
	TokensToText(tokens []string) (string, error)
}

func roundTrip(tok textCodec, in string) (string, error) {
	tokens, err := tok.Tokens(in)
	if err != nil {
		return "", err
	}
	return tok.TokensToText(tokens)
}

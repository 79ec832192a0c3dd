package main

import (
	"fmt"

	"github.com/example/go-fsw-tokenizer/internal/config"
	"github.com/example/go-fsw-tokenizer/internal/tokenizer"
	"github.com/spf13/cobra"
)

type vocabEntry struct {
	ID     int    `json:"id"`
	Token  string `json:"token"`
	Family string `json:"family"`
}

func newVocabCmd() *cobra.Command {
	var family string

	cmd := &cobra.Command{
		Use:   "vocab",
		Short: "List the vocabulary with ids and token families",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			filter := tokenizer.FamilyUnknown
			if family != "" {
				filter, err = tokenizer.ParseFamily(family)
				if err != nil {
					return err
				}
			}

			entries := vocabEntries(newTokenizer(cfg).Vocabulary(), filter)

			w := cmd.OutOrStdout()
			if cfg.Output.Format == config.FormatJSON {
				return writeJSON(w, entries)
			}

			for _, e := range entries {
				if _, err := fmt.Fprintf(w, "%d\t%s\t%s\n", e.ID, e.Token, e.Family); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&family, "family", "", "Only list one family (box|base|row|column|position)")

	return cmd
}

// vocabEntries lists the vocabulary in id order. FamilyUnknown lists all tokens.
func vocabEntries(v *tokenizer.Vocabulary, filter tokenizer.Family) []vocabEntry {
	var entries []vocabEntry

	for i, tok := range v.Tokens() {
		fam := tokenizer.Classify(tok)
		if filter != tokenizer.FamilyUnknown && fam != filter {
			continue
		}
		entries = append(entries, vocabEntry{
			ID:     v.StartingIndex() + i,
			Token:  tok,
			Family: fam.String(),
		})
	}

	return entries
}

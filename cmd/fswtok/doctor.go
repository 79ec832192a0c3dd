package main

import (
	"fmt"

	"github.com/example/go-fsw-tokenizer/internal/doctor"
	"github.com/spf13/cobra"
)

func newDoctorCmd() *cobra.Command {
	var corpusFiles []string

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check vocabulary integrity and round trips",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			res := doctor.Run(doctor.Config{
				Codec:       newTokenizer(cfg),
				CorpusFiles: corpusFiles,
			}, cmd.OutOrStdout())

			if res.Failed() {
				return fmt.Errorf("doctor found %d problem(s)", len(res.Failures()))
			}
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&corpusFiles, "corpus", nil, "FSW corpus file to round trip, one sign string per line (repeatable)")

	return cmd
}

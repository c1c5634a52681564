package cmd

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"driprun/internal/ingest"
	"driprun/internal/wallet"
)

// checkCmd verifies a seed phrase spreadsheet offline: every row must
// parse and derive, and the derived public identifiers are printed.
func checkCmd() *cobra.Command {
	var command = &cobra.Command{
		Use:   "check [file]",
		Short: "Verify a seed phrase spreadsheet without sending anything",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()

			phrases, err := ingest.ReadSeedPhrases(args[0], f)
			if err != nil {
				return err
			}
			if len(phrases) == 0 {
				return fmt.Errorf("no seed phrases found in %s", args[0])
			}

			for i, phrase := range phrases {
				id, err := wallet.FromSeedPhrase(phrase)
				if err != nil {
					return fmt.Errorf("row %d: %w", i+2, err)
				}
				fmt.Printf("%d\t%s\n", i+1, id.ID)
			}
			log.Info().Msgf("%d seed phrases ok", len(phrases))
			return nil
		},
	}

	return command
}

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"accneat/internal/dump"
	"accneat/internal/logging"
	"accneat/internal/model"
)

func newParseCommand(a *app) *cobra.Command {
	var (
		all     bool
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a genome dump file and print it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			var genomes []model.ParsedGenome
			if all {
				parsed, err := dump.ParseAllFile(path)
				if err != nil {
					return err
				}
				genomes = parsed
			} else {
				g, err := dump.ParseFile(path)
				if err != nil {
					return err
				}
				genomes = []model.ParsedGenome{g}
			}
			for _, g := range genomes {
				if !g.Complete() {
					a.logger.Warn("genome is missing its genomeend marker", logging.String("path", path), logging.Uint64("id", g.ID()))
				}
			}

			if jsonOut {
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				if all {
					return enc.Encode(genomes)
				}
				return enc.Encode(genomes[0])
			}
			for i, g := range genomes {
				if i > 0 {
					fmt.Fprintln(a.stdout)
				}
				fmt.Fprint(a.stdout, g)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "parse every genome block in the file, not just the first")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the parsed genome as JSON")
	return cmd
}

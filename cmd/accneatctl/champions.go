package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"accneat/internal/model"
	"accneat/internal/storage"
)

func newChampionsCommand(a *app) *cobra.Command {
	var (
		limit   int
		id      string
		jsonOut bool
	)
	cmd := &cobra.Command{
		Use:   "champions",
		Short: "List stored champions, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit < 0 {
				return errors.New("limit must be >= 0")
			}
			ctx := cmd.Context()
			store, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer func() {
				_ = storage.CloseIfSupported(store)
			}()

			if id != "" {
				champion, ok, err := store.GetChampion(ctx, id)
				if err != nil {
					return err
				}
				if !ok {
					return fmt.Errorf("champion not found: %s", id)
				}
				if jsonOut {
					return encodeJSON(a, champion)
				}
				fmt.Fprintf(a.stdout, "champion %s from %s\n", champion.ID, champion.SourcePath)
				fmt.Fprint(a.stdout, champion.Genome)
				return nil
			}

			champions, err := store.ListChampions(ctx)
			if err != nil {
				return err
			}
			if limit > 0 && len(champions) > limit {
				champions = champions[:limit]
			}
			if jsonOut {
				return encodeJSON(a, champions)
			}
			if len(champions) == 0 {
				fmt.Fprintln(a.stdout, "no champions stored")
				return nil
			}
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tORGANISM\tFITNESS\tEXPERIMENT\tSELECTED\tSOURCE")
			for _, c := range champions {
				fmt.Fprintf(tw, "%s\t#%d\t%.4f\t%s\t%s\t%s\n",
					c.ID, c.Genome.ID(), c.Genome.Fitness(), c.Experiment, selectedAgo(c), c.SourcePath)
			}
			return tw.Flush()
		},
	}
	flags := cmd.Flags()
	flags.IntVar(&limit, "limit", 20, "max champions to list (0 for all)")
	flags.StringVar(&id, "id", "", "show a single champion's genome")
	flags.BoolVar(&jsonOut, "json", false, "emit champions as JSON")
	return cmd
}

func selectedAgo(c model.Champion) string {
	at, err := time.Parse(timestampLayout, c.SelectedAtUTC)
	if err != nil {
		return c.SelectedAtUTC
	}
	return humanize.Time(at)
}

func encodeJSON(a *app, v any) error {
	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"accneat/internal/logging"
)

func newScanCommand(a *app) *cobra.Command {
	var jsonOut bool
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "List candidate result files under the experiments root",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			candidates, err := a.scanner().Candidates()
			if err != nil {
				return err
			}
			a.logger.Debug("scanned experiments", logging.String("root", a.cfg.ExperimentsRoot), logging.Int("files", len(candidates)))

			if jsonOut {
				type scanItem struct {
					Run        string    `json:"run"`
					Path       string    `json:"path"`
					Size       int64     `json:"size"`
					ModTimeUTC time.Time `json:"mod_time_utc"`
				}
				items := make([]scanItem, 0, len(candidates))
				for _, c := range candidates {
					items = append(items, scanItem{Run: c.Run, Path: c.Path, Size: c.Size, ModTimeUTC: c.ModTime.UTC()})
				}
				enc := json.NewEncoder(a.stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(items)
			}

			if len(candidates) == 0 {
				fmt.Fprintf(a.stdout, "no candidate files under %s\n", a.cfg.ExperimentsRoot)
				return nil
			}
			runs := map[string]struct{}{}
			var total int64
			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "RUN\tFILE\tSIZE\tMODIFIED")
			for _, c := range candidates {
				runs[c.Run] = struct{}{}
				total += c.Size
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", c.Run, c.Path, humanize.Bytes(uint64(c.Size)), humanize.Time(c.ModTime))
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "%s files in %s runs, %s total\n",
				humanize.Comma(int64(len(candidates))), humanize.Comma(int64(len(runs))), humanize.Bytes(uint64(total)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "emit the listing as JSON")
	return cmd
}

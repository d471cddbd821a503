package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"accneat/internal/logging"
	"accneat/internal/metrics"
	"accneat/internal/model"
	"accneat/internal/selection"
	"accneat/internal/storage"
	"accneat/internal/watch"
)

// timestampLayout is fixed-width so stored timestamps sort lexically.
const timestampLayout = "2006-01-02T15:04:05.000000000Z"

type fittestOptions struct {
	save       bool
	experiment string
	metricsOut string
	watch      bool
	debounce   time.Duration
}

func newFittestCommand(a *app) *cobra.Command {
	var opts fittestOptions
	cmd := &cobra.Command{
		Use:   "fittest",
		Short: "Select the organism with the highest fitness across all runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if !opts.watch {
				return a.selectFittest(ctx, opts)
			}
			w := watch.Watcher{Root: a.cfg.ExperimentsRoot, Debounce: opts.debounce, Logger: a.logger}
			return w.Run(ctx, func(ctx context.Context) {
				if err := a.selectFittest(ctx, opts); err != nil && !errors.Is(err, errNoOrganism) {
					a.logger.Error("selection failed", err)
				}
			})
		},
	}
	flags := cmd.Flags()
	flags.BoolVar(&opts.save, "save", false, "store the selected organism as a champion")
	flags.StringVar(&opts.experiment, "experiment", "", "experiment name recorded with a saved champion (default from config)")
	flags.StringVar(&opts.metricsOut, "metrics-out", "", "write Prometheus text metrics to this file after each selection")
	flags.BoolVar(&opts.watch, "watch", false, "keep watching the experiments root and reselect on change")
	flags.DurationVar(&opts.debounce, "debounce", watch.DefaultDebounce, "quiet period before reselecting in watch mode")
	return cmd
}

func (a *app) selectFittest(ctx context.Context, opts fittestOptions) error {
	collector := metrics.NewCollector()
	selector := selection.NewSelector(nil, selection.WithLogger(a.logger), selection.WithRecorder(collector))
	res, err := selector.SelectFrom(a.scanner())
	if err != nil {
		return err
	}
	if opts.metricsOut != "" {
		if err := collector.WriteTextfile(opts.metricsOut); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
	}
	for _, skip := range res.Skipped {
		fmt.Fprintf(a.stderr, "skipped %s (%s): %v\n", skip.Path, skip.Kind, skip.Err)
	}
	if !res.Found {
		fmt.Fprintf(a.stdout, "no organism found under %s\n", a.cfg.ExperimentsRoot)
		return errNoOrganism
	}

	fmt.Fprintf(a.stdout, "fittest: %s\n", res.Best.Path)
	fmt.Fprint(a.stdout, res.Best.Genome)

	if opts.save {
		champion, err := a.saveChampion(ctx, res.Best, opts.experiment)
		if err != nil {
			return fmt.Errorf("save champion: %w", err)
		}
		fmt.Fprintf(a.stdout, "saved champion %s\n", champion.ID)
	}
	return nil
}

func (a *app) saveChampion(ctx context.Context, best selection.Candidate, experiment string) (model.Champion, error) {
	store, err := a.openStore(ctx)
	if err != nil {
		return model.Champion{}, err
	}
	defer func() {
		_ = storage.CloseIfSupported(store)
	}()

	if experiment == "" {
		experiment = a.cfg.Optimizer.Experiment
	}
	champion := model.Champion{
		ID:            a.newID(),
		Experiment:    experiment,
		SourcePath:    best.Path,
		SelectedAtUTC: a.now().UTC().Format(timestampLayout),
		Genome:        best.Genome,
	}
	if err := store.SaveChampion(ctx, champion); err != nil {
		return model.Champion{}, err
	}
	a.logger.Info("saved champion", logging.String("id", champion.ID), logging.String("path", best.Path))
	return champion, nil
}

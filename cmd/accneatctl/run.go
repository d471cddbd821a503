package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"accneat/internal/optimizer"
)

type runOptions struct {
	binary     string
	dir        string
	force      bool
	count      int
	seed       int
	popSize    int
	maxGens    int
	search     string
	experiment string
	selectBest bool
	save       bool
}

func newRunCommand(a *app) *cobra.Command {
	var opts runOptions
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the accneat optimizer, optionally selecting the fittest result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			args, err := a.optimizerArgs(cmd, opts)
			if err != nil {
				return configError(err)
			}
			runner := optimizer.Runner{Binary: a.cfg.Optimizer.Binary, Dir: a.cfg.Optimizer.Dir, Logger: a.logger}
			if cmd.Flags().Changed("binary") {
				runner.Binary = opts.binary
			}
			if cmd.Flags().Changed("dir") {
				runner.Dir = opts.dir
			}

			out, err := runner.Run(cmd.Context(), args)
			if err != nil {
				return err
			}
			fmt.Fprint(a.stdout, out.Stdout)
			fmt.Fprint(a.stderr, out.Stderr)
			if out.ExitCode != 0 {
				return fmt.Errorf("optimizer exited with status %d", out.ExitCode)
			}
			if !opts.selectBest && !opts.save {
				return nil
			}

			// The optimizer writes its experiments tree relative to its
			// working directory.
			if runner.Dir != "" && !filepath.IsAbs(a.cfg.ExperimentsRoot) && !cmd.Flags().Changed("root") {
				a.cfg.ExperimentsRoot = filepath.Join(runner.Dir, a.cfg.ExperimentsRoot)
			}
			return a.selectFittest(cmd.Context(), fittestOptions{save: opts.save, experiment: args.Experiment})
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&opts.binary, "binary", optimizer.DefaultBinary, "optimizer executable")
	flags.StringVar(&opts.dir, "dir", "", "working directory for the optimizer")
	flags.BoolVarP(&opts.force, "force", "f", false, "overwrite an existing experiments directory")
	flags.IntVarP(&opts.count, "count", "c", 1, "number of experiments")
	flags.IntVarP(&opts.seed, "seed", "r", 1, "random seed")
	flags.IntVarP(&opts.popSize, "pop", "n", 1000, "population size")
	flags.IntVarP(&opts.maxGens, "gens", "x", 10000, "max generations")
	flags.StringVarP(&opts.search, "search", "s", "phased", "search type: phased|blended|complexify")
	flags.StringVar(&opts.experiment, "experiment", "xor", "experiment name")
	flags.BoolVar(&opts.selectBest, "select", false, "select the fittest organism after the run")
	flags.BoolVar(&opts.save, "save", false, "store the selected organism as a champion (implies --select)")
	return cmd
}

// optimizerArgs starts from config and applies only the flags the user set.
func (a *app) optimizerArgs(cmd *cobra.Command, opts runOptions) (optimizer.Args, error) {
	oc := a.cfg.Optimizer
	flags := cmd.Flags()
	if flags.Changed("force") {
		oc.Force = opts.force
	}
	if flags.Changed("count") {
		oc.Count = opts.count
	}
	if flags.Changed("seed") {
		oc.Seed = opts.seed
	}
	if flags.Changed("pop") {
		oc.PopSize = opts.popSize
	}
	if flags.Changed("gens") {
		oc.MaxGens = opts.maxGens
	}
	if flags.Changed("search") {
		oc.Search = opts.search
	}
	if flags.Changed("experiment") {
		oc.Experiment = opts.experiment
	}

	search, err := optimizer.ParseSearchType(oc.Search)
	if err != nil {
		return optimizer.Args{}, err
	}
	experiment, err := optimizer.NormalizeExperiment(oc.Experiment)
	if err != nil {
		return optimizer.Args{}, err
	}
	args := optimizer.Args{
		Force:      oc.Force,
		Count:      oc.Count,
		Seed:       oc.Seed,
		PopSize:    oc.PopSize,
		MaxGens:    oc.MaxGens,
		Search:     search,
		Experiment: experiment,
	}
	return args, args.Validate()
}

package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"accneat/internal/config"
	"accneat/internal/experiments"
	"accneat/internal/logging"
	"accneat/internal/storage"
)

// app holds what every subcommand shares once flags and config are resolved.
type app struct {
	stdout io.Writer
	stderr io.Writer

	configPath string
	root       string
	logLevel   string
	storeKind  string
	dbPath     string

	cfg    *config.Config
	logger logging.Logger

	now   func() time.Time
	newID func() string
}

func newApp(stdout, stderr io.Writer) *app {
	return &app{
		stdout: stdout,
		stderr: stderr,
		logger: logging.Nop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	cmd := newRootCommand(newApp(stdout, stderr))
	cmd.SetArgs(args)
	return reportError(stderr, cmd.ExecuteContext(ctx))
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "accneatctl",
		Short:         "Inspect accneat experiment results and pick the fittest organism",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.resolve(cmd)
		},
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", os.Getenv("ACCNEAT_CONFIG"), "YAML config file (env ACCNEAT_CONFIG)")
	flags.StringVar(&a.root, "root", experiments.DefaultRoot, "experiments root directory")
	flags.StringVar(&a.logLevel, "log-level", "info", "log level: debug|info|warn|error")
	flags.StringVar(&a.storeKind, "store", storage.DefaultStoreKind(), "champion store backend: memory|sqlite")
	flags.StringVar(&a.dbPath, "db-path", filepath.Join(".accneat", "champions.db"), "sqlite database path")

	root.AddCommand(
		newScanCommand(a),
		newParseCommand(a),
		newFittestCommand(a),
		newRunCommand(a),
		newChampionsCommand(a),
	)
	return root
}

// resolve loads the config file, lets explicitly set flags win, validates the
// result and builds the logger.
func (a *app) resolve(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return configError(err)
	}
	flags := cmd.Flags()
	if flags.Changed("root") {
		cfg.ExperimentsRoot = a.root
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("store") {
		cfg.Storage.Kind = a.storeKind
	}
	if flags.Changed("db-path") {
		cfg.Storage.SQLitePath = a.dbPath
	}
	if err := cfg.Validate(); err != nil {
		return configError(err)
	}

	logger, err := logging.New(a.stderr, logging.Options{
		Level:     cfg.Log.Level,
		Format:    cfg.Log.Format,
		Component: "accneatctl",
	})
	if err != nil {
		return configError(err)
	}
	a.cfg = cfg
	a.logger = logger.With(logging.String("command", cmd.Name()))
	return nil
}

func (a *app) scanner() experiments.Scanner {
	return experiments.NewScanner(a.cfg.ExperimentsRoot)
}

// openStore returns an initialized champion store; callers close it with
// storage.CloseIfSupported.
func (a *app) openStore(ctx context.Context) (storage.Store, error) {
	if a.cfg.Storage.Kind == storage.KindSQLite {
		if dir := filepath.Dir(a.cfg.Storage.SQLitePath); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, err
			}
		}
	}
	store, err := storage.NewStore(a.cfg.Storage.Kind, a.cfg.Storage.SQLitePath)
	if err != nil {
		return nil, err
	}
	if err := store.Init(ctx); err != nil {
		_ = storage.CloseIfSupported(store)
		return nil, err
	}
	return store, nil
}

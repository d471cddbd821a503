// Package watch re-runs a callback whenever the experiments tree changes.
package watch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"accneat/internal/logging"
)

const DefaultDebounce = 500 * time.Millisecond

// Watcher follows the experiments root and every run directory directly under
// it. A root that does not exist yet is picked up once it is created.
type Watcher struct {
	Root     string
	Debounce time.Duration
	Logger   logging.Logger
}

// Run calls onChange once up front and again after each burst of filesystem
// events has been quiet for Debounce. Callbacks run one at a time on the
// goroutine that called Run. Run returns nil when ctx ends.
func (w Watcher) Run(ctx context.Context, onChange func(context.Context)) error {
	logger := w.Logger
	if logger == nil {
		logger = logging.Nop()
	}
	debounce := w.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	root := filepath.Clean(w.Root)

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.watchRoot(fw, root, logger); err != nil {
		return err
	}

	onChange(ctx)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			if event.Op&fsnotify.Create != 0 {
				w.follow(fw, root, event.Name, logger)
			}
			logger.Debug("experiments changed", logging.String("path", event.Name), logging.String("op", event.Op.String()))
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", logging.Err(err))
		case <-fire:
			fire = nil
			onChange(ctx)
		}
	}
}

func (w Watcher) watchRoot(fw *fsnotify.Watcher, root string, logger logging.Logger) error {
	info, err := os.Stat(root)
	switch {
	case os.IsNotExist(err):
		parent := filepath.Dir(root)
		if err := fw.Add(parent); err != nil {
			return fmt.Errorf("watch %s: %w", parent, err)
		}
		logger.Info("experiments root missing, waiting for it", logging.String("root", root))
		return nil
	case err != nil:
		return fmt.Errorf("stat %s: %w", root, err)
	case !info.IsDir():
		return fmt.Errorf("experiments root %s is not a directory", root)
	}
	return w.addTree(fw, root, logger)
}

// addTree watches root and its immediate subdirectories.
func (w Watcher) addTree(fw *fsnotify.Watcher, root string, logger logging.Logger) error {
	if err := fw.Add(root); err != nil {
		return fmt.Errorf("watch %s: %w", root, err)
	}
	entries, err := os.ReadDir(root)
	if err != nil {
		return fmt.Errorf("read %s: %w", root, err)
	}
	for _, e := range entries {
		run := filepath.Join(root, e.Name())
		if info, err := os.Stat(run); err != nil || !info.IsDir() {
			continue
		}
		if err := fw.Add(run); err != nil {
			logger.Warn("cannot watch run directory", logging.String("run", run), logging.Err(err))
		}
	}
	return nil
}

// follow starts watching a newly created root or run directory.
func (w Watcher) follow(fw *fsnotify.Watcher, root, name string, logger logging.Logger) {
	name = filepath.Clean(name)
	info, err := os.Stat(name)
	if err != nil || !info.IsDir() {
		return
	}
	switch {
	case name == root:
		if err := w.addTree(fw, root, logger); err != nil {
			logger.Warn("cannot watch experiments root", logging.String("root", root), logging.Err(err))
		}
	case filepath.Dir(name) == root:
		if err := fw.Add(name); err != nil {
			logger.Warn("cannot watch run directory", logging.String("run", name), logging.Err(err))
		}
	}
}

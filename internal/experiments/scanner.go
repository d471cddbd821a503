package experiments

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// DefaultRoot is where the optimizer leaves one subdirectory per run.
const DefaultRoot = "experiments"

type Scanner struct {
	Root string
}

func NewScanner(root string) Scanner {
	if root == "" {
		root = DefaultRoot
	}
	return Scanner{Root: root}
}

// Candidate is one result file found under a run directory.
type Candidate struct {
	Run     string
	Path    string
	Size    int64
	ModTime time.Time
}

// Runs lists the run subdirectories of the root, sorted by name. A missing
// root yields an empty list: no run has completed yet.
func (s Scanner) Runs() ([]string, error) {
	entries, err := os.ReadDir(s.root())
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, err
	}
	runs := make([]string, 0, len(entries))
	for _, entry := range entries {
		info, err := resolve(s.root(), entry)
		if err == nil && info.IsDir() {
			runs = append(runs, entry.Name())
		}
	}
	sort.Strings(runs)
	return runs, nil
}

// Candidates lists the immediate regular files of every run directory.
// Symlinked runs and files are followed; dangling links, runs that vanish
// and runs that cannot be read are skipped.
func (s Scanner) Candidates() ([]Candidate, error) {
	runs, err := s.Runs()
	if err != nil {
		return nil, err
	}
	out := make([]Candidate, 0, len(runs))
	for _, run := range runs {
		runDir := filepath.Join(s.root(), run)
		entries, err := os.ReadDir(runDir)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			info, err := resolve(runDir, entry)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
			out = append(out, Candidate{
				Run:     run,
				Path:    filepath.Join(runDir, entry.Name()),
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
	}
	return out, nil
}

// Files returns the candidate result file paths across all runs.
func (s Scanner) Files() ([]string, error) {
	candidates, err := s.Candidates()
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(candidates))
	for _, c := range candidates {
		paths = append(paths, c.Path)
	}
	return paths, nil
}

// resolve stats entry, following it when it is a symlink.
func resolve(dir string, entry fs.DirEntry) (fs.FileInfo, error) {
	if entry.Type()&fs.ModeSymlink != 0 {
		return os.Stat(filepath.Join(dir, entry.Name()))
	}
	return entry.Info()
}

func (s Scanner) root() string {
	if s.Root == "" {
		return DefaultRoot
	}
	return s.Root
}

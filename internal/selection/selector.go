package selection

import (
	"math"

	"accneat/internal/dump"
	"accneat/internal/experiments"
	"accneat/internal/logging"
	"accneat/internal/model"
)

// Candidate is a parsed genome together with the file it came from.
type Candidate struct {
	Path   string
	Genome model.ParsedGenome
}

// Skip records a file that could not be parsed.
type Skip struct {
	Path string
	Kind string
	Err  error
}

type Result struct {
	Best    Candidate
	Found   bool
	Parsed  int
	Skipped []Skip
}

// Recorder receives selection counters. *metrics.Collector satisfies it.
type Recorder interface {
	FileScanned()
	GenomeParsed(complete bool)
	ParseFailed(kind string)
	SelectionDone(found bool, fitness float64)
}

// Fittest folds candidates into the one with the highest fitness. Only a
// strictly greater fitness replaces the current best, so the first of several
// tied maxima wins. A NaN fitness never beats a number.
func Fittest(candidates []Candidate) (Candidate, bool) {
	var (
		best  Candidate
		found bool
	)
	for _, c := range candidates {
		if !found || beats(c.Genome.Fitness(), best.Genome.Fitness()) {
			best = c
			found = true
		}
	}
	return best, found
}

func beats(candidate, best float32) bool {
	switch {
	case isNaN(candidate):
		return false
	case isNaN(best):
		return true
	default:
		return candidate > best
	}
}

func isNaN(f float32) bool { return math.IsNaN(float64(f)) }

type Selector struct {
	parser  dump.Parser
	logger  logging.Logger
	metrics Recorder
}

type Option func(*Selector)

func WithLogger(l logging.Logger) Option {
	return func(s *Selector) { s.logger = l }
}

func WithRecorder(r Recorder) Option {
	return func(s *Selector) { s.metrics = r }
}

// NewSelector uses parser for every file; a nil parser means dump.FileParser.
func NewSelector(parser dump.Parser, opts ...Option) *Selector {
	if parser == nil {
		parser = dump.FileParser{}
	}
	s := &Selector{parser: parser, logger: logging.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Select parses every path and keeps the fittest genome. Files that fail to
// parse are logged and listed in Result.Skipped; they never abort selection.
// Only the running best is retained while folding.
func (s *Selector) Select(paths []string) Result {
	var res Result
	for _, path := range paths {
		if s.metrics != nil {
			s.metrics.FileScanned()
		}
		g, err := s.parser.Parse(path)
		if err != nil {
			kind := dump.FailureKind(err)
			s.logger.Warn("skipping genome file", logging.String("path", path), logging.String("kind", kind), logging.Err(err))
			if s.metrics != nil {
				s.metrics.ParseFailed(kind)
			}
			res.Skipped = append(res.Skipped, Skip{Path: path, Kind: kind, Err: err})
			continue
		}
		res.Parsed++
		if s.metrics != nil {
			s.metrics.GenomeParsed(g.Complete())
		}
		s.logger.Debug("parsed genome",
			logging.String("path", path),
			logging.Uint64("id", g.ID()),
			logging.Float64("fitness", float64(g.Fitness())),
		)

		if !res.Found || beats(g.Fitness(), res.Best.Genome.Fitness()) {
			res.Best = Candidate{Path: path, Genome: g}
			res.Found = true
		}
	}

	if s.metrics != nil {
		s.metrics.SelectionDone(res.Found, float64(res.Best.Genome.Fitness()))
	}
	if res.Found {
		s.logger.Info("selected fittest organism",
			logging.String("path", res.Best.Path),
			logging.Uint64("id", res.Best.Genome.ID()),
			logging.Float64("fitness", float64(res.Best.Genome.Fitness())),
			logging.Int("parsed", res.Parsed),
			logging.Int("skipped", len(res.Skipped)),
		)
	} else {
		s.logger.Info("no fittest organism found", logging.Int("files", len(paths)), logging.Int("skipped", len(res.Skipped)))
	}
	return res
}

// SelectFrom scans root for candidate files and selects among them. The only
// error is an unreadable root; a missing root selects nothing.
func (s *Selector) SelectFrom(scanner experiments.Scanner) (Result, error) {
	paths, err := scanner.Files()
	if err != nil {
		return Result{}, err
	}
	return s.Select(paths), nil
}

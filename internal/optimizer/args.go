package optimizer

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrUnknownSearch = errors.New("unsupported search type")

type SearchType int

const (
	SearchPhased SearchType = iota
	SearchBlended
	SearchComplexify
)

func ParseSearchType(s string) (SearchType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "phased":
		return SearchPhased, nil
	case "blended":
		return SearchBlended, nil
	case "complexify":
		return SearchComplexify, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownSearch, s)
	}
}

func (s SearchType) String() string {
	switch s {
	case SearchPhased:
		return "phased"
	case SearchBlended:
		return "blended"
	case SearchComplexify:
		return "complexify"
	default:
		return "SearchType(" + strconv.Itoa(int(s)) + ")"
	}
}

// Args is one optimizer invocation.
type Args struct {
	Force      bool // -f: overwrite an existing experiments directory
	Count      int  // -c: number of experiments
	Seed       int  // -r
	PopSize    int  // -n
	MaxGens    int  // -x
	Search     SearchType
	Experiment string
}

func DefaultArgs() Args {
	return Args{
		Count:      1,
		Seed:       1,
		PopSize:    1000,
		MaxGens:    10000,
		Search:     SearchPhased,
		Experiment: "xor",
	}
}

func (a Args) Validate() error {
	switch {
	case a.Count < 1:
		return fmt.Errorf("experiment count must be positive, got %d", a.Count)
	case a.PopSize < 1:
		return fmt.Errorf("population size must be positive, got %d", a.PopSize)
	case a.MaxGens < 1:
		return fmt.Errorf("max generations must be positive, got %d", a.MaxGens)
	}
	if _, err := NormalizeExperiment(a.Experiment); err != nil {
		return err
	}
	return nil
}

// Argv renders the command line, experiment name last.
func (a Args) Argv() []string {
	argv := make([]string, 0, 12)
	if a.Force {
		argv = append(argv, "-f")
	}
	argv = append(argv,
		"-c", strconv.Itoa(a.Count),
		"-r", strconv.Itoa(a.Seed),
		"-n", strconv.Itoa(a.PopSize),
		"-x", strconv.Itoa(a.MaxGens),
		"-s", a.Search.String(),
	)
	experiment := a.Experiment
	if canonical, err := NormalizeExperiment(experiment); err == nil {
		experiment = canonical
	}
	return append(argv, experiment)
}

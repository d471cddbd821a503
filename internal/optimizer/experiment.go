// Package optimizer drives the external accneat binary that writes the
// experiments tree.
package optimizer

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownExperiment = errors.New("unsupported experiment")

// Experiments lists the names the optimizer accepts, in its own spelling.
var Experiments = []string{
	"xor",
	"cfg-XSX",
	"maze",
	"regex-XYXY",
	"regex-aba",
	"seq-1bit-2el",
	"seq-1bit-3el",
	"seq-1bit-4el",
	"seq-1bit-5el",
}

// NormalizeExperiment maps loose spellings ("CFG_xsx", "seq 1bit 3el",
// "regexaba") onto the optimizer's canonical experiment name.
func NormalizeExperiment(name string) (string, error) {
	normalized := strings.TrimSpace(name)
	normalized = strings.ReplaceAll(normalized, "_", "-")
	normalized = strings.ReplaceAll(normalized, " ", "-")
	normalized = strings.Trim(normalized, "-")
	if normalized == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnknownExperiment)
	}
	for _, candidate := range Experiments {
		if candidate == normalized {
			return candidate, nil
		}
	}
	compact := compactName(normalized)
	for _, candidate := range Experiments {
		if compactName(candidate) == compact {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownExperiment, name)
}

func compactName(s string) string {
	return strings.ToLower(strings.ReplaceAll(s, "-", ""))
}

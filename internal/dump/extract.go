package dump

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"accneat/internal/model"
)

// ExtractMode selects how numeric token failures are handled.
type ExtractMode int

const (
	// Lenient drops tokens that do not parse; the caller's arity check
	// catches the shortened result.
	Lenient ExtractMode = iota
	// Strict fails on the first token that does not parse.
	Strict
)

func (m ExtractMode) String() string {
	if m == Strict {
		return "strict"
	}
	return "lenient"
}

func ExtractFloats(tokens []string, mode ExtractMode) ([]float64, error) {
	out := make([]float64, 0, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			if mode == Strict {
				return nil, fmt.Errorf("%w: token %d %q is not a float", ErrNumericField, i, tok)
			}
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func ExtractUints(tokens []string, mode ExtractMode) ([]uint64, error) {
	out := make([]uint64, 0, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseUint(tok, 10, 64)
		if err != nil {
			if mode == Strict {
				return nil, fmt.Errorf("%w: token %d %q is not an unsigned integer", ErrNumericField, i, tok)
			}
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

const (
	headerIDIndex      = 2
	headerFitnessIndex = 4
	headerErrorIndex   = 6
)

// ParseHeader reads the organism header from its fixed token positions:
//
//	/* Organism #6 Fitness: 0.542682 Error: 1.82927 */
//
// The id may carry a leading '#', the fitness a trailing '%'.
func ParseHeader(tokens []string) (model.OrganismInfo, error) {
	if len(tokens) != headerTokens {
		return model.OrganismInfo{}, fmt.Errorf("%w: header has %d tokens", ErrStructural, len(tokens))
	}
	idTok := strings.TrimPrefix(tokens[headerIDIndex], "#")
	id, err := strconv.ParseUint(idTok, 10, 64)
	if err != nil {
		return model.OrganismInfo{}, fmt.Errorf("%w: header id %q", ErrNumericField, tokens[headerIDIndex])
	}
	fitness, err := parseHeaderFloat(strings.TrimSuffix(tokens[headerFitnessIndex], "%"))
	if err != nil {
		return model.OrganismInfo{}, fmt.Errorf("%w: header fitness %q", ErrNumericField, tokens[headerFitnessIndex])
	}
	errValue, err := parseHeaderFloat(tokens[headerErrorIndex])
	if err != nil {
		return model.OrganismInfo{}, fmt.Errorf("%w: header error %q", ErrNumericField, tokens[headerErrorIndex])
	}
	return model.OrganismInfo{ID: id, Fitness: fitness, Error: errValue}, nil
}

// parseHeaderFloat reads a float32 header value. Values beyond the float32
// range saturate to ±Inf instead of failing.
func parseHeaderFloat(tok string) (float32, error) {
	v, err := strconv.ParseFloat(tok, 32)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, err
	}
	return float32(v), nil
}

func parseBoundaryID(fields []string) (uint64, error) {
	ids, err := ExtractUints(fields, Strict)
	if err != nil {
		return 0, err
	}
	return ids[0], nil
}

package dump

import (
	"fmt"
	"strings"
)

type LineKind int

const (
	LineHeader LineKind = iota
	LineTrait
	LineNode
	LineGene
	LineGenomeStart
	LineGenomeEnd
)

func (k LineKind) String() string {
	switch k {
	case LineHeader:
		return "header"
	case LineTrait:
		return "trait"
	case LineNode:
		return "node"
	case LineGene:
		return "gene"
	case LineGenomeStart:
		return "genomestart"
	case LineGenomeEnd:
		return "genomeend"
	default:
		return fmt.Sprintf("LineKind(%d)", int(k))
	}
}

const (
	headerTokens   = 8
	traitTokens    = 10
	nodeTokens     = 4
	geneTokens     = 9
	boundaryTokens = 2
)

// Line is one classified dump line. Tokens keeps every token, keyword
// included; Fields drops the keyword for keyword lines.
type Line struct {
	Kind   LineKind
	Tokens []string
}

func (l Line) Fields() []string {
	switch l.Kind {
	case LineTrait, LineNode, LineGene, LineGenomeStart, LineGenomeEnd:
		return l.Tokens[1:]
	default:
		return l.Tokens
	}
}

// Classify splits raw on whitespace and decides its shape from the token
// count and, for keyword lines, the first token. Any other shape, a blank
// line included, is ErrStructural.
func Classify(raw string) (Line, error) {
	tokens := strings.Fields(raw)
	line := Line{Tokens: tokens}
	switch len(tokens) {
	case headerTokens:
		line.Kind = LineHeader
		return line, nil
	case traitTokens:
		return expectKeyword(line, "trait", LineTrait)
	case nodeTokens:
		return expectKeyword(line, "node", LineNode)
	case geneTokens:
		return expectKeyword(line, "gene", LineGene)
	case boundaryTokens:
		switch tokens[0] {
		case "genomestart":
			line.Kind = LineGenomeStart
			return line, nil
		case "genomeend":
			line.Kind = LineGenomeEnd
			return line, nil
		}
		return Line{}, fmt.Errorf("%w: 2 tokens starting with %q", ErrStructural, tokens[0])
	default:
		return Line{}, fmt.Errorf("%w: %d tokens", ErrStructural, len(tokens))
	}
}

func expectKeyword(line Line, keyword string, kind LineKind) (Line, error) {
	if line.Tokens[0] != keyword {
		return Line{}, fmt.Errorf("%w: %d tokens starting with %q, want %q", ErrStructural, len(line.Tokens), line.Tokens[0], keyword)
	}
	line.Kind = kind
	return line, nil
}

package dump

import (
	"fmt"

	"accneat/internal/model"
)

// Builder accumulates the classified lines of one genome block.
type Builder struct {
	info    model.OrganismInfo
	traits  *model.TraitSet
	nodes   *model.NodeSet
	genes   []model.GeneRecord
	touched bool
}

func NewBuilder() *Builder {
	return &Builder{
		info:   model.DefaultOrganismInfo(),
		traits: model.NewTraitSet(),
		nodes:  model.NewNodeSet(),
	}
}

// Apply folds one line into the genome under construction. done is true once
// the genomeend marker has been accepted.
func (b *Builder) Apply(line Line) (done bool, err error) {
	switch line.Kind {
	case LineHeader:
		info, err := ParseHeader(line.Tokens)
		if err != nil {
			return false, err
		}
		b.info = info
	case LineTrait:
		values, _ := ExtractFloats(line.Fields(), Lenient)
		if err := checkArity("trait", values, model.TraitValueCount); err != nil {
			return false, err
		}
		t, err := model.NewTraitRecord(values)
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
		b.traits.Put(t)
	case LineNode:
		values, _ := ExtractUints(line.Fields(), Lenient)
		if err := checkArity("node", values, model.NodeValueCount); err != nil {
			return false, err
		}
		n, err := model.NewNodeRecord(values)
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
		b.nodes.Put(n)
	case LineGene:
		values, _ := ExtractFloats(line.Fields(), Lenient)
		if err := checkArity("gene", values, model.GeneValueCount); err != nil {
			return false, err
		}
		g, err := model.NewGeneRecord(values)
		if err != nil {
			return false, fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
		b.genes = append(b.genes, g)
	case LineGenomeStart, LineGenomeEnd:
		id, err := parseBoundaryID(line.Fields())
		if err != nil {
			return false, err
		}
		if id != b.info.ID {
			if !b.info.IsSet() {
				return false, fmt.Errorf("%w: %s %d before any organism header", ErrBoundaryMismatch, line.Kind, id)
			}
			return false, fmt.Errorf("%w: %s %d, header id %d", ErrBoundaryMismatch, line.Kind, id, b.info.ID)
		}
		b.touched = true
		return line.Kind == LineGenomeEnd, nil
	default:
		return false, fmt.Errorf("%w: line kind %s", ErrStructural, line.Kind)
	}
	b.touched = true
	return false, nil
}

// Empty reports whether no line has contributed to the genome yet.
func (b *Builder) Empty() bool { return !b.touched }

func (b *Builder) Finish(complete bool) model.ParsedGenome {
	return model.NewParsedGenome(b.info, b.traits, b.nodes, b.genes, complete)
}

func checkArity[T any](record string, values []T, want int) error {
	if len(values) != want {
		return fmt.Errorf("%w: %s wants %d numeric fields, got %d", ErrArity, record, want, len(values))
	}
	return nil
}

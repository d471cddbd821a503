package model

import (
	"errors"
	"fmt"
	"math"
)

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

const (
	TraitValueCount = 9
	TraitParamCount = 8
	NodeValueCount  = 3
	GeneValueCount  = 8

	flagThreshold = 0.5
)

var (
	ErrRecordArity = errors.New("record arity mismatch")
	ErrInvalidID   = errors.New("invalid record id")
	ErrUnknownKind = errors.New("unknown node kind")
)

// OrganismInfo identifies one genome together with the scores the evaluator
// assigned to it. The zero sentinel is DefaultOrganismInfo, not the zero value.
type OrganismInfo struct {
	ID      uint64  `json:"id"`
	Fitness float32 `json:"fitness"`
	Error   float32 `json:"error"`
}

func DefaultOrganismInfo() OrganismInfo {
	return OrganismInfo{ID: math.MaxUint64, Fitness: -1, Error: 100}
}

// IsSet reports whether a header line has overwritten the sentinel id.
func (o OrganismInfo) IsSet() bool {
	return o.ID != math.MaxUint64
}

type TraitRecord struct {
	ID     uint64                   `json:"id"`
	Params [TraitParamCount]float32 `json:"params"`
}

// NewTraitRecord builds a trait from the id followed by its eight parameters.
func NewTraitRecord(values []float64) (TraitRecord, error) {
	if len(values) != TraitValueCount {
		return TraitRecord{}, fmt.Errorf("%w: trait wants %d values, got %d", ErrRecordArity, TraitValueCount, len(values))
	}
	id, err := idFromFloat("trait id", values[0])
	if err != nil {
		return TraitRecord{}, err
	}
	t := TraitRecord{ID: id}
	for i, v := range values[1:] {
		t.Params[i] = float32(v)
	}
	return t, nil
}

type NodeKind uint8

const (
	NodeBias NodeKind = iota
	NodeSensor
	NodeOutput
	NodeHidden
)

func NodeKindFromCode(code uint64) (NodeKind, error) {
	if code > uint64(NodeHidden) {
		return 0, fmt.Errorf("%w: code %d", ErrUnknownKind, code)
	}
	return NodeKind(code), nil
}

func (k NodeKind) String() string {
	switch k {
	case NodeBias:
		return "Bias"
	case NodeSensor:
		return "Sensor"
	case NodeOutput:
		return "Output"
	case NodeHidden:
		return "Hidden"
	default:
		return fmt.Sprintf("NodeKind(%d)", uint8(k))
	}
}

type NodeRecord struct {
	ID      uint64   `json:"id"`
	TraitID uint64   `json:"trait_id"`
	Kind    NodeKind `json:"kind"`
}

// NewNodeRecord builds a node from (id, trait id, kind code).
func NewNodeRecord(values []uint64) (NodeRecord, error) {
	if len(values) != NodeValueCount {
		return NodeRecord{}, fmt.Errorf("%w: node wants %d values, got %d", ErrRecordArity, NodeValueCount, len(values))
	}
	kind, err := NodeKindFromCode(values[2])
	if err != nil {
		return NodeRecord{}, err
	}
	return NodeRecord{ID: values[0], TraitID: values[1], Kind: kind}, nil
}

type GeneRecord struct {
	TraitID       uint64  `json:"trait_id"`
	InNodeID      uint64  `json:"in_node_id"`
	OutNodeID     uint64  `json:"out_node_id"`
	Weight        float32 `json:"weight"`
	Recurrent     bool    `json:"recurrent"`
	InnovationNum uint64  `json:"innovation_num"`
	MutationNum   float32 `json:"mutation_num"`
	Enabled       bool    `json:"enabled"`
}

// NewGeneRecord builds a gene from the eight numeric gene fields in file order.
// The recurrent and enable flags are true when their value exceeds 0.5.
func NewGeneRecord(values []float64) (GeneRecord, error) {
	if len(values) != GeneValueCount {
		return GeneRecord{}, fmt.Errorf("%w: gene wants %d values, got %d", ErrRecordArity, GeneValueCount, len(values))
	}
	ids := make([]uint64, 0, 4)
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"gene trait id", values[0]},
		{"gene in node id", values[1]},
		{"gene out node id", values[2]},
		{"gene innovation number", values[5]},
	} {
		id, err := idFromFloat(f.name, f.value)
		if err != nil {
			return GeneRecord{}, err
		}
		ids = append(ids, id)
	}
	return GeneRecord{
		TraitID:       ids[0],
		InNodeID:      ids[1],
		OutNodeID:     ids[2],
		Weight:        float32(values[3]),
		Recurrent:     values[4] > flagThreshold,
		InnovationNum: ids[3],
		MutationNum:   float32(values[6]),
		Enabled:       values[7] > flagThreshold,
	}, nil
}

func idFromFloat(name string, v float64) (uint64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v != math.Trunc(v) || v >= 0x1p64 {
		return 0, fmt.Errorf("%w: %s %v", ErrInvalidID, name, v)
	}
	return uint64(v), nil
}

package model

import "encoding/json"

// ParsedGenome is one organism read from a dump file. It is built once by
// NewParsedGenome and never changes afterwards; accessors hand out copies.
type ParsedGenome struct {
	info     OrganismInfo
	traits   []TraitRecord
	nodes    []NodeRecord
	genes    []GeneRecord
	complete bool
}

// NewParsedGenome snapshots the given collections. complete is false when the
// source ended before the genome's end marker.
func NewParsedGenome(info OrganismInfo, traits *TraitSet, nodes *NodeSet, genes []GeneRecord, complete bool) ParsedGenome {
	g := ParsedGenome{
		info:     info,
		genes:    append([]GeneRecord(nil), genes...),
		complete: complete,
	}
	if traits != nil {
		g.traits = traits.Items()
	}
	if nodes != nil {
		g.nodes = nodes.Items()
	}
	return g
}

func (g ParsedGenome) Info() OrganismInfo { return g.info }

func (g ParsedGenome) ID() uint64 { return g.info.ID }

func (g ParsedGenome) Fitness() float32 { return g.info.Fitness }

func (g ParsedGenome) Complete() bool { return g.complete }

func (g ParsedGenome) Traits() []TraitRecord {
	return append([]TraitRecord(nil), g.traits...)
}

func (g ParsedGenome) Nodes() []NodeRecord {
	return append([]NodeRecord(nil), g.nodes...)
}

func (g ParsedGenome) Genes() []GeneRecord {
	return append([]GeneRecord(nil), g.genes...)
}

func (g ParsedGenome) TraitCount() int { return len(g.traits) }

func (g ParsedGenome) NodeCount() int { return len(g.nodes) }

func (g ParsedGenome) GeneCount() int { return len(g.genes) }

type genomeSnapshot struct {
	Info     OrganismInfo  `json:"info"`
	Traits   []TraitRecord `json:"traits"`
	Nodes    []NodeRecord  `json:"nodes"`
	Genes    []GeneRecord  `json:"genes"`
	Complete bool          `json:"complete"`
}

func (g ParsedGenome) MarshalJSON() ([]byte, error) {
	return json.Marshal(genomeSnapshot{
		Info:     g.info,
		Traits:   g.traits,
		Nodes:    g.nodes,
		Genes:    g.genes,
		Complete: g.complete,
	})
}

// UnmarshalJSON re-applies the set identity rules, so a hand-edited payload
// with duplicate traits or nodes decodes the same way a dump file would.
func (g *ParsedGenome) UnmarshalJSON(data []byte) error {
	var snap genomeSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return err
	}
	traits := NewTraitSet()
	for _, t := range snap.Traits {
		traits.Put(t)
	}
	nodes := NewNodeSet()
	for _, n := range snap.Nodes {
		nodes.Put(n)
	}
	*g = NewParsedGenome(snap.Info, traits, nodes, snap.Genes, snap.Complete)
	return nil
}

// Champion is a selected fittest genome persisted by the store.
type Champion struct {
	VersionedRecord
	ID            string       `json:"id"`
	Experiment    string       `json:"experiment,omitempty"`
	SourcePath    string       `json:"source_path"`
	SelectedAtUTC string       `json:"selected_at_utc"`
	Genome        ParsedGenome `json:"genome"`
}

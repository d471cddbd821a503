package model

import (
	"fmt"
	"strings"
)

func (o OrganismInfo) String() string {
	return fmt.Sprintf("Organism #%d    Fitness: %.2f%%    Error: %.4f", o.ID, o.Fitness*100, o.Error)
}

func (t TraitRecord) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = fmt.Sprintf("%.4f", p)
	}
	return fmt.Sprintf("Trait %d: [%s]", t.ID, strings.Join(parts, ", "))
}

func (n NodeRecord) String() string {
	return fmt.Sprintf("[%d: %s] => %d", n.ID, n.Kind, n.TraitID)
}

func (g GeneRecord) String() string {
	state := "d"
	if g.Enabled {
		state = "e"
	}
	recurrent := ""
	if g.Recurrent {
		recurrent = "rc"
	}
	return fmt.Sprintf("%d<-[%d=>%d] %s we: %.4f mu: %.4f %s (%d)",
		g.TraitID, g.InNodeID, g.OutNodeID, state, g.Weight, g.MutationNum, recurrent, g.InnovationNum)
}

// String renders the multi-line summary printed by the CLI.
func (g ParsedGenome) String() string {
	var b strings.Builder
	b.WriteString(g.info.String())
	if !g.complete {
		b.WriteString("    (incomplete)")
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "%d traits:\n", len(g.traits))
	for _, t := range g.traits {
		fmt.Fprintf(&b, "  %s\n", t)
	}

	fmt.Fprintf(&b, "%d nodes: ", len(g.nodes))
	for _, n := range g.nodes {
		fmt.Fprintf(&b, "%s; ", n)
	}
	b.WriteByte('\n')

	fmt.Fprintf(&b, "%d genes:\n", len(g.genes))
	for _, gene := range g.genes {
		fmt.Fprintf(&b, "  %s\n", gene)
	}
	return b.String()
}

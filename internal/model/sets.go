package model

// SameTrait is the trait identity rule: two traits with the same id are the
// same entity whatever their parameters.
func SameTrait(a, b TraitRecord) bool {
	return a.ID == b.ID
}

// SameNode is the node identity rule: id and trait id together.
func SameNode(a, b NodeRecord) bool {
	return a.ID == b.ID && a.TraitID == b.TraitID
}

type nodeKey struct {
	id      uint64
	traitID uint64
}

// TraitSet holds traits deduplicated by SameTrait. A later Put of an existing
// trait replaces the stored value in place, so iteration order is the order
// of first appearance.
type TraitSet struct {
	items []TraitRecord
	index map[uint64]int
}

func NewTraitSet() *TraitSet {
	return &TraitSet{index: make(map[uint64]int)}
}

// Put stores t and reports whether it replaced an existing trait.
func (s *TraitSet) Put(t TraitRecord) bool {
	if i, ok := s.index[t.ID]; ok {
		s.items[i] = t
		return true
	}
	s.index[t.ID] = len(s.items)
	s.items = append(s.items, t)
	return false
}

func (s *TraitSet) Get(id uint64) (TraitRecord, bool) {
	i, ok := s.index[id]
	if !ok {
		return TraitRecord{}, false
	}
	return s.items[i], true
}

func (s *TraitSet) Contains(t TraitRecord) bool {
	i, ok := s.index[t.ID]
	return ok && SameTrait(s.items[i], t)
}

func (s *TraitSet) Len() int { return len(s.items) }

func (s *TraitSet) Items() []TraitRecord {
	return append([]TraitRecord(nil), s.items...)
}

// NodeSet holds nodes deduplicated by SameNode with the same replace-in-place
// policy as TraitSet.
type NodeSet struct {
	items []NodeRecord
	index map[nodeKey]int
}

func NewNodeSet() *NodeSet {
	return &NodeSet{index: make(map[nodeKey]int)}
}

// Put stores n and reports whether it replaced an existing node.
func (s *NodeSet) Put(n NodeRecord) bool {
	key := nodeKey{id: n.ID, traitID: n.TraitID}
	if i, ok := s.index[key]; ok {
		s.items[i] = n
		return true
	}
	s.index[key] = len(s.items)
	s.items = append(s.items, n)
	return false
}

func (s *NodeSet) Contains(n NodeRecord) bool {
	i, ok := s.index[nodeKey{id: n.ID, traitID: n.TraitID}]
	return ok && SameNode(s.items[i], n)
}

func (s *NodeSet) Len() int { return len(s.items) }

func (s *NodeSet) Items() []NodeRecord {
	return append([]NodeRecord(nil), s.items...)
}

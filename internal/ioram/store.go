// Package ioram keeps one taxonomy release in process memory. Loading
// builds all indices up front; the resulting store is immutable and safe
// for concurrent readers.
package ioram

import (
	"fmt"
	"slices"

	"github.com/gnames/ncbitax/pkg/taxonomy"
)

type store struct {
	releaseID string
	nodes     map[int]taxonomy.Node
	children  map[int][]int
	names     map[int]map[string][]taxonomy.Name
	byName    map[string][]int
	merged    map[int]int
	deleted   map[int]struct{}
	genCodes  map[int]taxonomy.GeneticCode
	codons    []string
}

// New builds an in-memory store from a parsed dump. It fails when the
// bundle is incomplete or lacks the root node, and never returns a
// partially usable store.
func New(data *taxonomy.DumpData, releaseID string) (taxonomy.Store, error) {
	if err := validate(data); err != nil {
		return nil, err
	}

	res := &store{
		releaseID: releaseID,
		nodes:     make(map[int]taxonomy.Node, len(data.Nodes)),
		children:  make(map[int][]int),
		names:     make(map[int]map[string][]taxonomy.Name),
		byName:    make(map[string][]int, len(data.Names)),
		merged:    make(map[int]int, len(data.Merged)),
		deleted:   make(map[int]struct{}, len(data.Deleted)),
		genCodes:  make(map[int]taxonomy.GeneticCode, len(data.GeneticCodes)),
		codons:    slices.Clone(data.Codons),
	}

	for _, node := range data.Nodes {
		res.nodes[node.TaxID] = node
		if node.ParentTaxID != node.TaxID {
			res.children[node.ParentTaxID] = append(
				res.children[node.ParentTaxID], node.TaxID)
		}
	}
	for _, ids := range res.children {
		slices.Sort(ids)
	}

	for _, name := range data.Names {
		byClass, ok := res.names[name.TaxID]
		if !ok {
			byClass = make(map[string][]taxonomy.Name)
			res.names[name.TaxID] = byClass
		}
		byClass[name.Class] = append(byClass[name.Class], name)

		if !slices.Contains(res.byName[name.Name], name.TaxID) {
			res.byName[name.Name] = append(res.byName[name.Name], name.TaxID)
		}
	}

	// keep parity with the sqlite backend, which orders matches by taxid
	for _, ids := range res.byName {
		slices.Sort(ids)
	}

	for old, id := range data.Merged {
		res.merged[old] = id
	}
	for _, taxid := range data.Deleted {
		res.deleted[taxid] = struct{}{}
	}
	for _, gc := range data.GeneticCodes {
		res.genCodes[gc.ID] = gc
	}

	return res, nil
}

func validate(data *taxonomy.DumpData) error {
	if data == nil || len(data.Nodes) == 0 {
		return fmt.Errorf("ioram: dump has no nodes")
	}
	if len(data.Codons) != 64 {
		return fmt.Errorf("ioram: dump has %d codons, want 64",
			len(data.Codons))
	}
	var root bool
	for _, node := range data.Nodes {
		if node.TaxID == taxonomy.RootTaxID &&
			node.ParentTaxID == node.TaxID {
			root = true
			break
		}
	}
	if !root {
		return fmt.Errorf("ioram: dump has no root node")
	}
	return nil
}

func (s *store) Node(taxid int) (taxonomy.Node, bool) {
	node, ok := s.nodes[taxid]
	return node, ok
}

func (s *store) Children(taxid int) []int {
	return slices.Clone(s.children[taxid])
}

func (s *store) Names(taxid int) map[string][]taxonomy.Name {
	byClass := s.names[taxid]
	res := make(map[string][]taxonomy.Name, len(byClass))
	for class, names := range byClass {
		res[class] = slices.Clone(names)
	}
	return res
}

func (s *store) TaxidsForName(name string) []int {
	for _, variant := range taxonomy.NameVariations(name) {
		if ids, ok := s.byName[variant]; ok {
			return slices.Clone(ids)
		}
	}
	return nil
}

func (s *store) MergedTo(taxid int) (int, bool) {
	id, ok := s.merged[taxid]
	return id, ok
}

func (s *store) IsDeleted(taxid int) bool {
	_, ok := s.deleted[taxid]
	return ok
}

func (s *store) GeneticCode(id int) (taxonomy.GeneticCode, bool) {
	gc, ok := s.genCodes[id]
	return gc, ok
}

func (s *store) Codons() []string {
	return slices.Clone(s.codons)
}

func (s *store) NodeCount() int {
	return len(s.nodes)
}

func (s *store) ReleaseID() string {
	return s.releaseID
}

package taxonomy

import (
	"errors"
	"slices"
)

// ErrNoTaxids is returned by set operations called with an empty taxid
// collection.
var ErrNoTaxids = errors.New("taxonomy: no taxids given")

// lineage walks parent pointers from the resolved taxid up to the root
// and returns the path in root-first order. The walk is iterative with a
// depth cap so a cyclic or truncated dump fails with MalformedTreeError
// instead of hanging.
func (d *database) lineage(s Store, taxid int) ([]int, error) {
	id, err := resolveIn(s, taxid)
	if err != nil {
		return nil, err
	}

	var res []int
	for {
		if len(res) >= d.maxDepth {
			return nil, &MalformedTreeError{TaxID: taxid, Depth: len(res)}
		}
		res = append(res, id)
		node, ok := s.Node(id)
		if !ok {
			return nil, &UnknownTaxonError{TaxID: id}
		}
		if node.ParentTaxID == id {
			break
		}
		id = node.ParentTaxID
	}
	slices.Reverse(res)
	return res, nil
}

func (d *database) Lineage(taxid int) ([]int, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	return d.lineage(s, taxid)
}

func (d *database) LineageRanks(taxid int) ([]string, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	ln, err := d.lineage(s, taxid)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(ln))
	for i, id := range ln {
		node, _ := s.Node(id)
		res[i] = node.Rank
	}
	return res, nil
}

func (d *database) LineageNames(
	taxid int, nameClass string,
) ([]string, error) {
	if !IsNameClass(nameClass) {
		return nil, &InvalidNameClassError{NameClass: nameClass}
	}
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	ln, err := d.lineage(s, taxid)
	if err != nil {
		return nil, err
	}
	res := make([]string, len(ln))
	for i, id := range ln {
		res[i] = firstNameIn(s, id, nameClass)
	}
	return res, nil
}

func firstNameIn(s Store, taxid int, nameClass string) string {
	names := s.Names(taxid)[nameClass]
	if len(names) == 0 {
		return ""
	}
	return names[0].Name
}

func (d *database) HigherRank(
	taxid int, rank, nameClass string,
) (string, error) {
	if !IsNameClass(nameClass) {
		return "", &InvalidNameClassError{NameClass: nameClass}
	}
	s, err := d.current()
	if err != nil {
		return "", err
	}
	ln, err := d.lineage(s, taxid)
	if err != nil {
		return "", err
	}
	for _, id := range ln {
		node, _ := s.Node(id)
		if node.Rank == rank {
			return firstNameIn(s, id, nameClass), nil
		}
	}
	return "", nil
}

// lca finds the member of the intersected lineage sets with the longest
// own lineage. Candidates all lie on the first member's lineage, so the
// position there is the candidate's depth. A depth tie cannot occur on a
// single root path, but the lowest taxid would win deterministically.
func (d *database) lca(s Store, taxids []int) (int, error) {
	if len(taxids) == 0 {
		return 0, ErrNoTaxids
	}

	first, err := d.lineage(s, taxids[0])
	if err != nil {
		return 0, err
	}
	shared := make(map[int]struct{}, len(first))
	for _, id := range first {
		shared[id] = struct{}{}
	}

	for _, taxid := range taxids[1:] {
		ln, err := d.lineage(s, taxid)
		if err != nil {
			return 0, err
		}
		set := make(map[int]struct{}, len(ln))
		for _, id := range ln {
			set[id] = struct{}{}
		}
		for id := range shared {
			if _, ok := set[id]; !ok {
				delete(shared, id)
			}
		}
	}

	res := -1
	depth := -1
	for i, id := range first {
		if _, ok := shared[id]; !ok {
			continue
		}
		if i > depth || (i == depth && id < res) {
			res = id
			depth = i
		}
	}
	if res < 0 {
		// all lineages start at the root, so an empty intersection
		// means two roots made it into one dump
		return 0, &MalformedTreeError{TaxID: taxids[0], Depth: 0}
	}
	return res, nil
}

func (d *database) LCA(taxids []int) (int, error) {
	s, err := d.current()
	if err != nil {
		return 0, err
	}
	return d.lca(s, taxids)
}

func (d *database) PathBetween(taxid1, taxid2 int) ([]int, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	id1, err := resolveIn(s, taxid1)
	if err != nil {
		return nil, err
	}
	id2, err := resolveIn(s, taxid2)
	if err != nil {
		return nil, err
	}
	if id1 == id2 {
		return []int{id1}, nil
	}

	ln1, err := d.lineage(s, id1)
	if err != nil {
		return nil, err
	}
	ln2, err := d.lineage(s, id2)
	if err != nil {
		return nil, err
	}

	// length of the shared root prefix; at least 1, both start at root
	k := 0
	for k < len(ln1) && k < len(ln2) && ln1[k] == ln2[k] {
		k++
	}

	res := make([]int, 0, len(ln1)+len(ln2)-2*k+1)
	for i := len(ln1) - 1; i >= k; i-- {
		res = append(res, ln1[i])
	}
	res = append(res, ln1[k-1])
	res = append(res, ln2[k:]...)
	return res, nil
}

// descendants collects the subtree below taxid iteratively. The visited
// set doubles as a cycle guard: meeting a node twice means the child
// lists do not form a tree.
func (d *database) descendants(s Store, taxid int) ([]int, error) {
	id, err := resolveIn(s, taxid)
	if err != nil {
		return nil, err
	}

	visited := map[int]struct{}{id: {}}
	var res []int
	stack := s.Children(id)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if _, ok := visited[cur]; ok {
			return nil, &MalformedTreeError{TaxID: cur, Depth: len(res)}
		}
		visited[cur] = struct{}{}
		res = append(res, cur)
		stack = append(stack, s.Children(cur)...)
	}
	slices.Sort(res)
	return res, nil
}

func (d *database) Descendants(taxid int) ([]int, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	return d.descendants(s, taxid)
}

func (d *database) DescendantsForTaxids(taxids []int) ([]int, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	lca, err := d.lca(s, taxids)
	if err != nil {
		return nil, err
	}
	res, err := d.descendants(s, lca)
	if err != nil {
		return nil, err
	}
	res = append(res, lca)
	slices.Sort(res)
	return res, nil
}

func (d *database) IsDescendantOf(taxid, ancestor int) (bool, error) {
	s, err := d.current()
	if err != nil {
		return false, err
	}
	anc, err := resolveIn(s, ancestor)
	if err != nil {
		return false, err
	}
	lca, err := d.lca(s, []int{taxid, anc})
	if err != nil {
		return false, err
	}
	return lca == anc, nil
}

func (d *database) IsEukaryote(taxid int) (bool, error) {
	return d.IsDescendantOf(taxid, EukaryoteTaxID)
}

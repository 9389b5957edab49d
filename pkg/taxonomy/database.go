package taxonomy

import (
	"maps"
	"slices"
)

// statusIn classifies taxid against one snapshot. The active table is
// checked first: a taxid that was merged in an old release can come back
// as active in a newer one, and active status then takes precedence.
func statusIn(s Store, taxid int) Status {
	if _, ok := s.Node(taxid); ok {
		return Active
	}
	if _, ok := s.MergedTo(taxid); ok {
		return Merged
	}
	if s.IsDeleted(taxid) {
		return Deleted
	}
	return Unknown
}

// resolveIn canonicalizes taxid against one snapshot. Every graph
// operation goes through it before touching the tree.
func resolveIn(s Store, taxid int) (int, error) {
	switch statusIn(s, taxid) {
	case Active:
		return taxid, nil
	case Merged:
		id, _ := s.MergedTo(taxid)
		return id, nil
	case Deleted:
		return 0, &UnresolvableIDError{TaxID: taxid}
	}
	return 0, &UnknownTaxonError{TaxID: taxid}
}

func (d *database) Status(taxid int) (Status, error) {
	s, err := d.current()
	if err != nil {
		return Unknown, err
	}
	return statusIn(s, taxid), nil
}

func (d *database) Resolve(taxid int) (int, error) {
	s, err := d.current()
	if err != nil {
		return 0, err
	}
	return resolveIn(s, taxid)
}

func (d *database) Node(taxid int) (Node, error) {
	s, err := d.current()
	if err != nil {
		return Node{}, err
	}
	return nodeIn(s, taxid)
}

func nodeIn(s Store, taxid int) (Node, error) {
	id, err := resolveIn(s, taxid)
	if err != nil {
		return Node{}, err
	}
	node, ok := s.Node(id)
	if !ok {
		// a merged id pointing outside the active set means the dump
		// violates the NCBI single-hop guarantee
		return Node{}, &UnknownTaxonError{TaxID: id}
	}
	return node, nil
}

func (d *database) Rank(taxid int) (string, error) {
	node, err := d.Node(taxid)
	if err != nil {
		return "", err
	}
	return node.Rank, nil
}

func (d *database) Parent(taxid int) (int, error) {
	node, err := d.Node(taxid)
	if err != nil {
		return 0, err
	}
	return node.ParentTaxID, nil
}

func (d *database) Children(taxid int) ([]int, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	id, err := resolveIn(s, taxid)
	if err != nil {
		return nil, err
	}
	return s.Children(id), nil
}

func (d *database) Names(taxid int) (map[string][]Name, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	id, err := resolveIn(s, taxid)
	if err != nil {
		return nil, err
	}
	return s.Names(id), nil
}

func (d *database) NamesOfClass(
	taxid int, nameClass string,
) ([]string, error) {
	if !IsNameClass(nameClass) {
		return nil, &InvalidNameClassError{NameClass: nameClass}
	}
	all, err := d.Names(taxid)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, n := range all[nameClass] {
		res = append(res, n.Name)
	}
	return res, nil
}

func (d *database) Name(taxid int, nameClass string) (string, error) {
	names, err := d.NamesOfClass(taxid, nameClass)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", nil
	}
	return names[0], nil
}

func (d *database) ScientificName(taxid int) (string, error) {
	return d.Name(taxid, "scientific name")
}

func (d *database) CommonName(taxid int) (string, error) {
	return d.Name(taxid, "common name")
}

func (d *database) GenBankCommonName(taxid int) (string, error) {
	return d.Name(taxid, "genbank common name")
}

func taxidsForNameIn(s Store, name string) []int {
	var res []int
	for _, id := range s.TaxidsForName(name) {
		// the name index may still carry ids merged away in a newer
		// release folded into the same store
		canon, err := resolveIn(s, id)
		if err != nil {
			continue
		}
		if !slices.Contains(res, canon) {
			res = append(res, canon)
		}
	}
	return res
}

func (d *database) TaxidsForName(name string) ([]int, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	return taxidsForNameIn(s, name), nil
}

func (d *database) TaxidForNameInGroup(
	name string, groupTaxid int,
) (int, error) {
	s, err := d.current()
	if err != nil {
		return 0, err
	}
	group, err := resolveIn(s, groupTaxid)
	if err != nil {
		return 0, err
	}
	taxids := taxidsForNameIn(s, name)

	var matches []int
	for _, id := range taxids {
		ln, err := d.lineage(s, id)
		if err != nil {
			return 0, err
		}
		if slices.Contains(ln, group) {
			matches = append(matches, id)
		}
	}

	switch len(matches) {
	case 0:
		return 0, &NameNotFoundError{Name: name, GroupTaxID: groupTaxid}
	case 1:
		return matches[0], nil
	}
	return 0, &AmbiguousNameError{Name: name, GroupTaxID: groupTaxid}
}

func (d *database) NameClasses() []string {
	return slices.Sorted(maps.Keys(nameClasses))
}

func (d *database) Codons() ([]string, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	return s.Codons(), nil
}

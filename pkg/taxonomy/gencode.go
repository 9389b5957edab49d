package taxonomy

import (
	"errors"
	"slices"
)

// Derived plastid genetic-code ids. Plastid codes are not stored in
// nodes.dmp; they follow from lineage membership in plastid-bearing
// clades.
const (
	plastidDefaultCode     = 11
	plastidExceptionalCode = 32
)

func transTableIn(s Store, geneticCodeID int) (*TransTable, error) {
	gc, ok := s.GeneticCode(geneticCodeID)
	if !ok {
		return nil, &UnknownGeneticCodeError{GeneticCodeID: geneticCodeID}
	}
	codons := s.Codons()

	res := &TransTable{
		GeneticCodeID: gc.ID,
		Name:          gc.Name,
		Codons:        make(map[string]string, len(codons)),
	}

	for i, codon := range codons {
		if i < len(gc.StartStop) {
			switch gc.StartStop[i] {
			case 'M':
				res.StartCodons = append(res.StartCodons, codon)
			case '*':
				res.StopCodons = append(res.StopCodons, codon)
				res.Codons[codon] = "*"
			}
		}
		if i < len(gc.TransTable) && gc.TransTable[i] != '*' {
			res.Codons[codon] = string(gc.TransTable[i])
		}
	}

	slices.Sort(res.StartCodons)
	slices.Sort(res.StopCodons)
	return res, nil
}

func (d *database) TransTable(geneticCodeID int) (*TransTable, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	return transTableIn(s, geneticCodeID)
}

func geneticCodeIDIn(s Store, taxid int) (int, error) {
	node, err := nodeIn(s, taxid)
	if err != nil {
		return 0, err
	}
	return node.GeneticCode, nil
}

func (d *database) GeneticCodeID(taxid int) (int, error) {
	s, err := d.current()
	if err != nil {
		return 0, err
	}
	return geneticCodeIDIn(s, taxid)
}

func mitoGeneticCodeIDIn(s Store, taxid int) (int, error) {
	node, err := nodeIn(s, taxid)
	if err != nil {
		return 0, err
	}
	return node.MitoCode, nil
}

func (d *database) MitoGeneticCodeID(taxid int) (int, error) {
	s, err := d.current()
	if err != nil {
		return 0, err
	}
	return mitoGeneticCodeIDIn(s, taxid)
}

// containsClade reports whether taxid's lineage passes through the clade
// root. Clade roots missing from the loaded release are treated as not
// containing anything.
func (d *database) containsClade(s Store, taxid, clade int) (bool, error) {
	root, err := resolveIn(s, clade)
	if err != nil {
		var unknown *UnknownTaxonError
		var unresolvable *UnresolvableIDError
		if errors.As(err, &unknown) || errors.As(err, &unresolvable) {
			return false, nil
		}
		return false, err
	}
	lca, err := d.lca(s, []int{root, taxid})
	if err != nil {
		return false, err
	}
	return lca == root, nil
}

func (d *database) containsPlastidIn(s Store, taxid int) (bool, error) {
	if _, err := resolveIn(s, taxid); err != nil {
		return false, err
	}
	for _, clade := range d.plastidClades {
		ok, err := d.containsClade(s, taxid, clade)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (d *database) ContainsPlastid(taxid int) (bool, error) {
	s, err := d.current()
	if err != nil {
		return false, err
	}
	return d.containsPlastidIn(s, taxid)
}

func (d *database) plastidGeneticCodeIDIn(s Store, taxid int) (int, error) {
	hasPlastid, err := d.containsPlastidIn(s, taxid)
	if err != nil {
		return 0, err
	}
	if !hasPlastid {
		return NoPlastidCode, nil
	}

	exceptional, err := d.containsClade(s, taxid, d.plastidException)
	if err != nil {
		return 0, err
	}
	if exceptional {
		return plastidExceptionalCode, nil
	}
	return plastidDefaultCode, nil
}

func (d *database) PlastidGeneticCodeID(taxid int) (int, error) {
	s, err := d.current()
	if err != nil {
		return 0, err
	}
	return d.plastidGeneticCodeIDIn(s, taxid)
}

func (d *database) NuclearTransTable(taxid int) (*TransTable, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	id, err := geneticCodeIDIn(s, taxid)
	if err != nil {
		return nil, err
	}
	return transTableIn(s, id)
}

func (d *database) MitoTransTable(taxid int) (*TransTable, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	id, err := mitoGeneticCodeIDIn(s, taxid)
	if err != nil {
		return nil, err
	}
	return transTableIn(s, id)
}

func (d *database) PlastidTransTable(taxid int) (*TransTable, error) {
	s, err := d.current()
	if err != nil {
		return nil, err
	}
	id, err := d.plastidGeneticCodeIDIn(s, taxid)
	if err != nil {
		return nil, err
	}
	return transTableIn(s, id)
}

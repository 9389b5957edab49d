package taxonomy

import "fmt"

// UninitializedError is returned by every query issued before a snapshot
// has been published with Publish.
type UninitializedError struct{}

func (e *UninitializedError) Error() string {
	return "taxonomy: no snapshot loaded, run fetch first"
}

// UnknownTaxonError is returned when a taxid is absent from the active,
// merged and deleted tables alike.
type UnknownTaxonError struct {
	TaxID int
}

func (e *UnknownTaxonError) Error() string {
	return fmt.Sprintf("taxonomy: taxid %d is not in the database", e.TaxID)
}

// UnresolvableIDError is returned when a taxid belongs to the deleted set
// and therefore has no active replacement. Callers must treat it as a
// permanent non-result.
type UnresolvableIDError struct {
	TaxID int
}

func (e *UnresolvableIDError) Error() string {
	return fmt.Sprintf("taxonomy: taxid %d is deleted without replacement",
		e.TaxID)
}

// InvalidNameClassError is returned when a requested name class is outside
// the fixed names.dmp vocabulary.
type InvalidNameClassError struct {
	NameClass string
}

func (e *InvalidNameClassError) Error() string {
	return fmt.Sprintf("taxonomy: invalid name class %q", e.NameClass)
}

// MalformedTreeError is returned when a tree walk exceeds the configured
// depth limit or revisits a node. It signals a corrupted dump or a cycle
// and is fatal to the triggering query only.
type MalformedTreeError struct {
	TaxID int
	Depth int
}

func (e *MalformedTreeError) Error() string {
	return fmt.Sprintf(
		"taxonomy: walk from taxid %d aborted at depth %d, tree is malformed",
		e.TaxID, e.Depth)
}

// AmbiguousNameError is returned when more than one taxon with the given
// name belongs to the requested group. Ties are not broken; the caller
// must disambiguate with a narrower group.
type AmbiguousNameError struct {
	Name       string
	GroupTaxID int
}

func (e *AmbiguousNameError) Error() string {
	return fmt.Sprintf(
		"taxonomy: group %d is too broad, multiple taxa are named %q",
		e.GroupTaxID, e.Name)
}

// NameNotFoundError is returned when no taxon with the given name belongs
// to the requested group.
type NameNotFoundError struct {
	Name       string
	GroupTaxID int
}

func (e *NameNotFoundError) Error() string {
	return fmt.Sprintf("taxonomy: no taxon named %q in group %d",
		e.Name, e.GroupTaxID)
}

// UnknownGeneticCodeError is returned when a genetic-code id is absent
// from the loaded gencode table.
type UnknownGeneticCodeError struct {
	GeneticCodeID int
}

func (e *UnknownGeneticCodeError) Error() string {
	return fmt.Sprintf("taxonomy: unknown genetic code %d", e.GeneticCodeID)
}

package taxonomy

import (
	"unicode"
	"unicode/utf8"
)

// Store is the read-only view of one loaded taxonomy release. Two
// implementations exist: internal/ioram keeps everything in maps,
// internal/iosqlite reads from an indexed sqlite file. Both must show
// identical observable behavior, including the three-probe rule of
// TaxidsForName.
//
// A Store is immutable once its constructor returns; construction is
// all-or-nothing, so a partially parsed dump never yields a usable Store.
// The graph algorithms of this package depend on this interface only,
// never on a concrete backend.
type Store interface {
	// Node returns the active node for taxid. The boolean is false when
	// taxid is not in the active set; merged and deleted ids are not
	// resolved here.
	Node(taxid int) (Node, bool)

	// Children returns the direct children of an active taxid in
	// ascending order. Leaves yield an empty slice, not an error.
	Children(taxid int) []int

	// Names returns the names of an active taxid keyed by name class.
	// Per-class order is the names.dmp order, not alphabetical.
	Names(taxid int) map[string][]Name

	// TaxidsForName returns taxids whose name matches exactly. Three
	// probe variants are tried in order: the literal string, the string
	// with the first letter uppercased, then lowercased. The result of
	// the first variant with any matches is returned.
	TaxidsForName(name string) []int

	// MergedTo returns the replacement taxid of a merged id.
	MergedTo(taxid int) (int, bool)

	// IsDeleted reports whether taxid is in the deleted set.
	IsDeleted(taxid int) bool

	// GeneticCode returns the genetic-code record with the given id.
	GeneticCode(id int) (GeneticCode, bool)

	// Codons returns the fixed 64-triplet codon order derived from the
	// gc.prt Base1/Base2/Base3 lines.
	Codons() []string

	// NodeCount returns the number of active nodes.
	NodeCount() int

	// ReleaseID identifies the loaded release (UUID derived from the
	// archive MD5, empty when unknown).
	ReleaseID() string
}

// NameVariations returns the probe set of TaxidsForName in probe order:
// the literal name, first letter uppercased, first letter lowercased.
// Taxonomic convention capitalizes genus epithets, so these three cover
// the casing forms a caller is likely to hold. This is not full
// case-insensitivity.
func NameVariations(name string) []string {
	if name == "" {
		return nil
	}
	r, size := utf8.DecodeRuneInString(name)
	upper := string(unicode.ToUpper(r)) + name[size:]
	lower := string(unicode.ToLower(r)) + name[size:]

	res := []string{name}
	if upper != name {
		res = append(res, upper)
	}
	if lower != name {
		res = append(res, lower)
	}
	return res
}

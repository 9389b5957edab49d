// Package taxonomy implements the NCBI taxonomy query engine: identifier
// resolution, tree traversal, common-ancestor computation and genetic-code
// translation tables. It is a pure package; storage backends live in
// internal/ioram and internal/iosqlite and are consumed through the Store
// interface.
package taxonomy

// RootTaxID is the taxid of the taxonomy tree root. The root is its own
// parent in nodes.dmp.
const RootTaxID = 1

// EukaryoteTaxID is the taxid of the Eukaryota superkingdom.
const EukaryoteTaxID = 2759

// Status classifies a taxid at query time. Every taxid belongs to exactly
// one class: present in the node table, retired in favor of another taxid,
// retired without replacement, or never part of the database.
type Status int

const (
	Unknown Status = iota
	Active
	Merged
	Deleted
)

func (s Status) String() string {
	switch s {
	case Active:
		return "active"
	case Merged:
		return "merged"
	case Deleted:
		return "deleted"
	}
	return "unknown"
}

// Node is one active taxon from nodes.dmp. Nodes are created during bulk
// load and are immutable afterwards.
type Node struct {
	TaxID       int    `json:"taxId"`
	ParentTaxID int    `json:"parentTaxId"`
	Rank        string `json:"rank"`
	EMBLCode    string `json:"emblCode,omitempty"`
	GeneticCode int    `json:"geneticCodeId"`
	MitoCode    int    `json:"mitoGeneticCodeId,omitempty"`
	Hidden      bool   `json:"hidden,omitempty"`
	Comments    string `json:"comments,omitempty"`
}

// Name is one entry of names.dmp attached to an active taxon.
type Name struct {
	TaxID      int    `json:"taxId"`
	Name       string `json:"name"`
	UniqueName string `json:"uniqueName,omitempty"`
	Class      string `json:"nameClass"`
}

// GeneticCode is one entry of gencode.dmp. TransTable and StartStop are
// 64-character strings indexed by the fixed codon order from gc.prt;
// StartStop flags are 'M' (start), '*' (stop) and '-' (neither).
type GeneticCode struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	TransTable string `json:"transTable"`
	StartStop  string `json:"startStop"`
}

// TransTable is a derived codon translation table for one genetic code.
// StartCodons and StopCodons are sorted lexically; the Codons map includes
// stop codons mapped to "*".
type TransTable struct {
	GeneticCodeID int               `json:"geneticCodeId"`
	Name          string            `json:"name,omitempty"`
	Codons        map[string]string `json:"codons"`
	StartCodons   []string          `json:"startCodons"`
	StopCodons    []string          `json:"stopCodons"`
}

// NoPlastidCode is the sentinel genetic-code id returned for taxa whose
// lineage does not intersect any plastid-bearing clade. It is a defined
// value, not an error.
const NoPlastidCode = 0

// DumpData bundles the parsed content of one taxonomy release. The dump
// reader produces it; a Store consumes it exactly once at load time.
type DumpData struct {
	Nodes        []Node
	Names        []Name
	Merged       map[int]int
	Deleted      []int
	GeneticCodes []GeneticCode
	Codons       []string
}

// nameClasses is the fixed name-class vocabulary of names.dmp.
var nameClasses = map[string]struct{}{
	"acronym":             {},
	"anamorph":            {},
	"authority":           {},
	"blast name":          {},
	"common name":         {},
	"equivalent name":     {},
	"genbank acronym":     {},
	"genbank anamorph":    {},
	"genbank common name": {},
	"genbank synonym":     {},
	"in-part":             {},
	"includes":            {},
	"misnomer":            {},
	"misspelling":         {},
	"scientific name":     {},
	"synonym":             {},
	"teleomorph":          {},
	"type material":       {},
}

// IsNameClass reports whether s belongs to the fixed NCBI name-class
// vocabulary.
func IsNameClass(s string) bool {
	_, ok := nameClasses[s]
	return ok
}

// plastidClades lists the roots of clades known to contain plastids.
// A taxon inherits a plastid genetic code only when its lineage passes
// through one of these taxids.
var plastidClades = []int{
	2763, 3027, 5752, 33090, 33682, 38254, 136087, 554296, 554915,
	556282, 1401294, 2489521, 2598132, 2608109, 2608240, 2611341,
	2611352, 2683617, 2686027, 2698737,
}

// balanophoraceaeTaxID is the root of the Balanophoraceae family, which
// uses plastid genetic code 32 instead of the default 11.
// https://www.ncbi.nlm.nih.gov/pubmed/30598433
const balanophoraceaeTaxID = 25673

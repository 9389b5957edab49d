package taxonomy

import (
	"sync/atomic"
)

// Taxonomy is the public face of the query engine. One value owns one
// published Store snapshot at a time; Publish swaps the whole snapshot
// atomically, so concurrent readers always see either the fully-old or
// the fully-new release, never a mix. Every query resolves its taxid
// through the merged/deleted tables before touching the tree.
type Taxonomy interface {
	// Ready reports whether a snapshot has been published.
	Ready() bool

	// Publish atomically replaces the current snapshot. The store must
	// be fully loaded; queries in flight keep using the old snapshot.
	Publish(s Store)

	// ReleaseID returns the identifier of the published release.
	ReleaseID() (string, error)

	// NodeCount returns the number of active taxa in the published
	// release.
	NodeCount() (int, error)

	// Status classifies taxid as Active, Merged, Deleted or Unknown.
	// The active table wins over the merged table when a taxid occurs
	// in both.
	Status(taxid int) (Status, error)

	// Resolve returns the canonical active taxid. Merged ids map to
	// their replacement; deleted ids fail with UnresolvableIDError,
	// unknown ids with UnknownTaxonError.
	Resolve(taxid int) (int, error)

	// RootTaxID returns the taxid of the tree root.
	RootTaxID() int

	// Node returns the active node taxid resolves to.
	Node(taxid int) (Node, error)

	// Rank returns the rank label of the node taxid resolves to.
	Rank(taxid int) (string, error)

	// Parent returns the parent taxid; the root is its own parent.
	Parent(taxid int) (int, error)

	// Children returns direct children in ascending order; empty for
	// leaves.
	Children(taxid int) ([]int, error)

	// Names returns all names keyed by name class, in dump order.
	Names(taxid int) (map[string][]Name, error)

	// NamesOfClass returns the names of one class, in dump order.
	// An out-of-vocabulary class fails with InvalidNameClassError.
	NamesOfClass(taxid int, nameClass string) ([]string, error)

	// Name returns the first name of the class, or "" when the node
	// carries none.
	Name(taxid int, nameClass string) (string, error)

	// ScientificName is shorthand for Name(taxid, "scientific name").
	ScientificName(taxid int) (string, error)

	// CommonName is shorthand for Name(taxid, "common name").
	CommonName(taxid int) (string, error)

	// GenBankCommonName is shorthand for
	// Name(taxid, "genbank common name").
	GenBankCommonName(taxid int) (string, error)

	// TaxidsForName returns the taxids matching name via the store's
	// three-probe rule, each resolved to its canonical form.
	TaxidsForName(name string) ([]int, error)

	// TaxidForNameInGroup returns the single taxon named name inside
	// the group's subtree. Zero matches fail with NameNotFoundError,
	// several with AmbiguousNameError.
	TaxidForNameInGroup(name string, groupTaxid int) (int, error)

	// Lineage returns taxids from the root to taxid inclusive.
	Lineage(taxid int) ([]int, error)

	// LineageRanks returns the rank labels along the lineage.
	LineageRanks(taxid int) ([]string, error)

	// LineageNames returns the names of the given class along the
	// lineage; nodes without such a name contribute "".
	LineageNames(taxid int, nameClass string) ([]string, error)

	// HigherRank walks the lineage root to leaf and returns the name
	// of the first node whose rank equals rank, or "" when no ancestor
	// carries that rank.
	HigherRank(taxid int, rank, nameClass string) (string, error)

	// PathBetween returns the tree path from taxid1 over the common
	// ancestor to taxid2. PathBetween(a, a) is [a].
	PathBetween(taxid1, taxid2 int) ([]int, error)

	// LCA returns the lowest common ancestor of a non-empty taxid set:
	// the member of the intersected lineages with the longest own
	// lineage. Should several candidates tie (impossible in a
	// well-formed tree), the lowest taxid wins.
	LCA(taxids []int) (int, error)

	// Descendants returns the whole subtree below taxid, excluding
	// taxid itself, in ascending order.
	Descendants(taxid int) ([]int, error)

	// DescendantsForTaxids returns the subtree below the members' LCA,
	// including the LCA itself.
	DescendantsForTaxids(taxids []int) ([]int, error)

	// IsDescendantOf reports whether ancestor lies on taxid's lineage.
	IsDescendantOf(taxid, ancestor int) (bool, error)

	// IsEukaryote reports whether taxid belongs to Eukaryota.
	IsEukaryote(taxid int) (bool, error)

	// ContainsPlastid reports whether taxid's lineage passes through a
	// plastid-bearing clade.
	ContainsPlastid(taxid int) (bool, error)

	// GeneticCodeID returns the nuclear genetic-code id of the taxon.
	GeneticCodeID(taxid int) (int, error)

	// MitoGeneticCodeID returns the mitochondrial genetic-code id.
	MitoGeneticCodeID(taxid int) (int, error)

	// PlastidGeneticCodeID derives the plastid genetic-code id:
	// NoPlastidCode outside plastid-bearing clades, 32 inside
	// Balanophoraceae, 11 otherwise.
	PlastidGeneticCodeID(taxid int) (int, error)

	// TransTable derives the translation table of a genetic code.
	TransTable(geneticCodeID int) (*TransTable, error)

	// NuclearTransTable returns the translation table of the taxon's
	// nuclear genetic code.
	NuclearTransTable(taxid int) (*TransTable, error)

	// MitoTransTable returns the translation table of the taxon's
	// mitochondrial genetic code.
	MitoTransTable(taxid int) (*TransTable, error)

	// PlastidTransTable returns the translation table of the taxon's
	// derived plastid genetic code.
	PlastidTransTable(taxid int) (*TransTable, error)

	// NameClasses returns the fixed name-class vocabulary, sorted.
	NameClasses() []string

	// Codons returns the fixed 64-codon order of the loaded release.
	Codons() ([]string, error)
}

// Option modifies the engine during construction.
type Option func(*database)

// OptMaxTreeDepth caps parent-pointer walks. Values below 1 are ignored.
func OptMaxTreeDepth(i int) Option {
	return func(d *database) {
		if i > 0 {
			d.maxDepth = i
		}
	}
}

// OptPlastidClades replaces the built-in list of plastid-bearing clade
// roots.
func OptPlastidClades(taxids []int) Option {
	return func(d *database) {
		if len(taxids) > 0 {
			d.plastidClades = taxids
		}
	}
}

// OptPlastidException replaces the clade that uses plastid genetic code
// 32 instead of 11.
func OptPlastidException(taxid int) Option {
	return func(d *database) {
		if taxid > 0 {
			d.plastidException = taxid
		}
	}
}

// database implements Taxonomy. All tables live in the published Store;
// the struct itself holds only configuration and the snapshot pointer,
// so a single process can run several independently-configured
// taxonomies side by side.
type database struct {
	maxDepth         int
	plastidClades    []int
	plastidException int
	snap             atomic.Pointer[snapshot]
}

type snapshot struct {
	store Store
}

// New creates an empty, unpublished taxonomy engine. Queries fail with
// UninitializedError until Publish delivers a loaded Store.
func New(opts ...Option) Taxonomy {
	res := &database{
		maxDepth:         256,
		plastidClades:    plastidClades,
		plastidException: balanophoraceaeTaxID,
	}
	for _, opt := range opts {
		opt(res)
	}
	return res
}

func (d *database) Ready() bool {
	return d.snap.Load() != nil
}

func (d *database) Publish(s Store) {
	d.snap.Store(&snapshot{store: s})
}

func (d *database) current() (Store, error) {
	snap := d.snap.Load()
	if snap == nil {
		return nil, &UninitializedError{}
	}
	return snap.store, nil
}

func (d *database) ReleaseID() (string, error) {
	s, err := d.current()
	if err != nil {
		return "", err
	}
	return s.ReleaseID(), nil
}

func (d *database) NodeCount() (int, error) {
	s, err := d.current()
	if err != nil {
		return 0, err
	}
	return s.NodeCount(), nil
}

func (d *database) RootTaxID() int {
	return RootTaxID
}

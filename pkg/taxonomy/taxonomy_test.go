package taxonomy_test

import (
	"sync"
	"testing"

	"github.com/gnames/ncbitax/internal/ioram"
	"github.com/gnames/ncbitax/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUninitialized(t *testing.T) {
	eng := taxonomy.New()

	assert.False(t, eng.Ready())

	_, err := eng.Status(9606)
	var uninit *taxonomy.UninitializedError
	require.ErrorAs(t, err, &uninit)

	_, err = eng.ReleaseID()
	assert.ErrorAs(t, err, &uninit)

	_, err = eng.Lineage(9606)
	assert.ErrorAs(t, err, &uninit)
}

func TestPublish(t *testing.T) {
	eng := testEngine(t)

	assert.True(t, eng.Ready())

	id, err := eng.ReleaseID()
	require.NoError(t, err)
	assert.Equal(t, "release-test", id)

	count, err := eng.NodeCount()
	require.NoError(t, err)
	assert.Equal(t, 17, count)

	// a new snapshot replaces the old one wholesale
	st, err := ioram.New(testData(), "release-next")
	require.NoError(t, err)
	eng.Publish(st)

	id, err = eng.ReleaseID()
	require.NoError(t, err)
	assert.Equal(t, "release-next", id)
}

func TestStatus(t *testing.T) {
	eng := testEngine(t)

	tests := []struct {
		msg   string
		taxid int
		res   taxonomy.Status
	}{
		{"active", 9606, taxonomy.Active},
		{"merged", 666, taxonomy.Merged},
		{"deleted", 999, taxonomy.Deleted},
		{"unknown", 424242, taxonomy.Unknown},
		{"active wins over merged", 777, taxonomy.Active},
	}

	for _, v := range tests {
		res, err := eng.Status(v.taxid)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestResolve(t *testing.T) {
	eng := testEngine(t)

	t.Run("active resolves to itself", func(t *testing.T) {
		res, err := eng.Resolve(9606)
		require.NoError(t, err)
		assert.Equal(t, 9606, res)
	})

	t.Run("merged follows replacement", func(t *testing.T) {
		res, err := eng.Resolve(666)
		require.NoError(t, err)
		assert.Equal(t, 9606, res)
	})

	t.Run("active entry wins over merged entry", func(t *testing.T) {
		res, err := eng.Resolve(777)
		require.NoError(t, err)
		assert.Equal(t, 777, res)
	})

	t.Run("deleted fails", func(t *testing.T) {
		_, err := eng.Resolve(999)
		var unresolvable *taxonomy.UnresolvableIDError
		require.ErrorAs(t, err, &unresolvable)
		assert.Equal(t, 999, unresolvable.TaxID)
	})

	t.Run("unknown fails", func(t *testing.T) {
		_, err := eng.Resolve(424242)
		var unknown *taxonomy.UnknownTaxonError
		require.ErrorAs(t, err, &unknown)
		assert.Equal(t, 424242, unknown.TaxID)
	})
}

func TestNode(t *testing.T) {
	eng := testEngine(t)

	t.Run("node fields", func(t *testing.T) {
		node, err := eng.Node(9606)
		require.NoError(t, err)
		assert.Equal(t, 9606, node.TaxID)
		assert.Equal(t, 9605, node.ParentTaxID)
		assert.Equal(t, "species", node.Rank)
		assert.Equal(t, 1, node.GeneticCode)
		assert.Equal(t, 2, node.MitoCode)
	})

	t.Run("merged id returns replacement node", func(t *testing.T) {
		node, err := eng.Node(666)
		require.NoError(t, err)
		assert.Equal(t, 9606, node.TaxID)
	})

	t.Run("rank and parent", func(t *testing.T) {
		rank, err := eng.Rank(4070)
		require.NoError(t, err)
		assert.Equal(t, "family", rank)

		parent, err := eng.Parent(4070)
		require.NoError(t, err)
		assert.Equal(t, 4069, parent)
	})

	t.Run("root is its own parent", func(t *testing.T) {
		parent, err := eng.Parent(taxonomy.RootTaxID)
		require.NoError(t, err)
		assert.Equal(t, taxonomy.RootTaxID, parent)
	})
}

func TestChildren(t *testing.T) {
	eng := testEngine(t)

	t.Run("ascending order", func(t *testing.T) {
		res, err := eng.Children(2759)
		require.NoError(t, err)
		assert.Equal(t, []int{33090, 33208}, res)
	})

	t.Run("leaf has no children", func(t *testing.T) {
		res, err := eng.Children(9606)
		require.NoError(t, err)
		assert.Empty(t, res)
	})

	t.Run("root does not list itself", func(t *testing.T) {
		res, err := eng.Children(taxonomy.RootTaxID)
		require.NoError(t, err)
		assert.Equal(t, []int{131567}, res)
	})
}

func TestNames(t *testing.T) {
	eng := testEngine(t)

	t.Run("names by class", func(t *testing.T) {
		res, err := eng.Names(4081)
		require.NoError(t, err)
		assert.Len(t, res["scientific name"], 1)
		assert.Equal(t, "Solanum lycopersicum",
			res["scientific name"][0].Name)
		assert.Equal(t, "tomato", res["genbank common name"][0].Name)
	})

	t.Run("names of one class", func(t *testing.T) {
		res, err := eng.NamesOfClass(562, "synonym")
		require.NoError(t, err)
		assert.Equal(t, []string{"Bacillus coli"}, res)
	})

	t.Run("invalid name class", func(t *testing.T) {
		_, err := eng.NamesOfClass(562, "nickname")
		var invalid *taxonomy.InvalidNameClassError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, "nickname", invalid.NameClass)
	})

	t.Run("shorthands", func(t *testing.T) {
		sci, err := eng.ScientificName(9606)
		require.NoError(t, err)
		assert.Equal(t, "Homo sapiens", sci)

		gb, err := eng.GenBankCommonName(9606)
		require.NoError(t, err)
		assert.Equal(t, "human", gb)

		// absent class yields empty string, not an error
		common, err := eng.CommonName(9606)
		require.NoError(t, err)
		assert.Equal(t, "", common)
	})

	t.Run("class vocabulary is sorted", func(t *testing.T) {
		classes := eng.NameClasses()
		assert.Contains(t, classes, "scientific name")
		assert.Contains(t, classes, "genbank common name")
		assert.IsIncreasing(t, classes)
	})
}

func TestTaxidsForName(t *testing.T) {
	eng := testEngine(t)

	tests := []struct {
		msg  string
		name string
		res  []int
	}{
		{"literal match", "Solanum", []int{4107}},
		{"first letter upcased", "solanum", []int{4107}},
		{"first letter downcased", "Tomato", []int{4081}},
		{"synonym class matches too", "Bacillus coli", []int{562}},
		{"several bearers", "twin nightshade", []int{4081, 4107}},
		{"no match", "Vulpes vulpes", nil},
	}

	for _, v := range tests {
		res, err := eng.TaxidsForName(v.name)
		require.NoError(t, err, v.msg)
		assert.Equal(t, v.res, res, v.msg)
	}
}

func TestTaxidForNameInGroup(t *testing.T) {
	eng := testEngine(t)

	t.Run("single match in group", func(t *testing.T) {
		res, err := eng.TaxidForNameInGroup("tomato", 4070)
		require.NoError(t, err)
		assert.Equal(t, 4081, res)
	})

	t.Run("group limits ambiguity", func(t *testing.T) {
		// both bearers live under Viridiplantae, only one under Solanum
		res, err := eng.TaxidForNameInGroup("twin nightshade", 4081)
		require.NoError(t, err)
		assert.Equal(t, 4081, res)
	})

	t.Run("ambiguous in wide group", func(t *testing.T) {
		_, err := eng.TaxidForNameInGroup("twin nightshade", 33090)
		var ambiguous *taxonomy.AmbiguousNameError
		require.ErrorAs(t, err, &ambiguous)
		assert.Equal(t, "twin nightshade", ambiguous.Name)
	})

	t.Run("name outside group", func(t *testing.T) {
		_, err := eng.TaxidForNameInGroup("Solanum lycopersicum", 33208)
		var notFound *taxonomy.NameNotFoundError
		require.ErrorAs(t, err, &notFound)
		assert.Equal(t, 33208, notFound.GroupTaxID)
	})
}

// swapOnReadStore wraps one release and publishes the next one into the
// engine the first time a read lands on it. It simulates a reload that
// completes in the middle of a composite query.
type swapOnReadStore struct {
	taxonomy.Store
	eng  taxonomy.Taxonomy
	next taxonomy.Store
	once sync.Once
}

func (s *swapOnReadStore) swap() {
	s.once.Do(func() { s.eng.Publish(s.next) })
}

func (s *swapOnReadStore) Node(taxid int) (taxonomy.Node, bool) {
	s.swap()
	return s.Store.Node(taxid)
}

func (s *swapOnReadStore) TaxidsForName(name string) []int {
	s.swap()
	return s.Store.TaxidsForName(name)
}

// A query that started on one release must answer from that release
// alone, even when a new one is published while it runs. Queries issued
// afterwards see the new release.
func TestPublishDuringQuery(t *testing.T) {
	nextData := func() *taxonomy.DumpData {
		data := testData()
		data.Nodes = append(data.Nodes, taxonomy.Node{
			TaxID: 4444, ParentTaxID: 4070, Rank: "genus",
			GeneticCode: 1, MitoCode: 1,
		})
		for i, n := range data.Names {
			// the dubbed tomato moves to a freshly described genus
			if n.Name == "tomato" {
				data.Names[i].TaxID = 4444
			}
		}
		for i, n := range data.Nodes {
			if n.TaxID == 9606 {
				data.Nodes[i].GeneticCode = 2
			}
		}
		return data
	}

	t.Run("name search in group", func(t *testing.T) {
		next, err := ioram.New(nextData(), "release-next")
		require.NoError(t, err)

		eng := taxonomy.New()
		swap := &swapOnReadStore{Store: testStore(t), eng: eng, next: next}
		eng.Publish(swap)

		// the publish fires mid-query; the answer must come from the
		// release the query started on
		res, err := eng.TaxidForNameInGroup("tomato", 33090)
		require.NoError(t, err)
		assert.Equal(t, 4081, res)

		res, err = eng.TaxidForNameInGroup("tomato", 33090)
		require.NoError(t, err)
		assert.Equal(t, 4444, res)
	})

	t.Run("translation table lookup", func(t *testing.T) {
		next, err := ioram.New(nextData(), "release-next")
		require.NoError(t, err)

		eng := taxonomy.New()
		swap := &swapOnReadStore{Store: testStore(t), eng: eng, next: next}
		eng.Publish(swap)

		tt, err := eng.NuclearTransTable(9606)
		require.NoError(t, err)
		assert.Equal(t, 1, tt.GeneticCodeID)
		assert.Equal(t, "*", tt.Codons["TGA"])

		tt, err = eng.NuclearTransTable(9606)
		require.NoError(t, err)
		assert.Equal(t, 2, tt.GeneticCodeID)
		assert.Equal(t, "W", tt.Codons["TGA"])
	})
}

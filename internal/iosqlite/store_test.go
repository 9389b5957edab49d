package iosqlite_test

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/gnames/ncbitax/internal/ioram"
	"github.com/gnames/ncbitax/internal/iosqlite"
	"github.com/gnames/ncbitax/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func codonOrder() []string {
	bases := "TCAG"
	res := make([]string, 0, 64)
	for _, b1 := range bases {
		for _, b2 := range bases {
			for _, b3 := range bases {
				res = append(res, string(b1)+string(b2)+string(b3))
			}
		}
	}
	return res
}

func testData() *taxonomy.DumpData {
	return &taxonomy.DumpData{
		Nodes: []taxonomy.Node{
			{TaxID: 1, ParentTaxID: 1, Rank: "no rank", GeneticCode: 1},
			{TaxID: 131567, ParentTaxID: 1, Rank: "no rank", GeneticCode: 1},
			{TaxID: 9605, ParentTaxID: 131567, Rank: "genus",
				GeneticCode: 1, MitoCode: 2},
			{TaxID: 9606, ParentTaxID: 9605, Rank: "species",
				GeneticCode: 1, MitoCode: 2, Comments: "type species"},
			{TaxID: 4107, ParentTaxID: 131567, Rank: "genus",
				GeneticCode: 1, MitoCode: 1},
		},
		Names: []taxonomy.Name{
			{TaxID: 1, Name: "root", Class: "scientific name"},
			{TaxID: 9605, Name: "Homo", Class: "scientific name"},
			{TaxID: 9606, Name: "Homo sapiens", Class: "scientific name"},
			{TaxID: 9606, Name: "human", Class: "genbank common name"},
			{TaxID: 9606, Name: "man", Class: "common name"},
			{TaxID: 4107, Name: "Solanum",
				UniqueName: "Solanum <genus>", Class: "scientific name"},
		},
		Merged:  map[int]int{666: 9606},
		Deleted: []int{999},
		GeneticCodes: []taxonomy.GeneticCode{
			{ID: 1, Name: "Standard"},
		},
		Codons: codonOrder(),
	}
}

func createStore(t *testing.T) taxonomy.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taxonomy.sqlite")
	st, err := iosqlite.Create(
		context.Background(), path, testData(), "release-42", 2)
	require.NoError(t, err)
	t.Cleanup(func() {
		if c, ok := st.(io.Closer); ok {
			c.Close()
		}
	})
	return st
}

func TestCreateAndOpen(t *testing.T) {
	st := createStore(t)

	assert.Equal(t, "release-42", st.ReleaseID())
	assert.Equal(t, 5, st.NodeCount())

	codons := st.Codons()
	require.Len(t, codons, 64)
	assert.Equal(t, "TTT", codons[0])
	assert.Equal(t, "GGG", codons[63])
}

func TestOpenUnpopulated(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.sqlite")
	_, err := iosqlite.Open(path)
	assert.Error(t, err)
}

func TestCreateReplaces(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.sqlite")
	ctx := context.Background()

	st, err := iosqlite.Create(ctx, path, testData(), "release-old", 100)
	require.NoError(t, err)
	require.Equal(t, "release-old", st.ReleaseID())
	st.(io.Closer).Close()

	st, err = iosqlite.Create(ctx, path, testData(), "release-new", 100)
	require.NoError(t, err)
	defer st.(io.Closer).Close()
	assert.Equal(t, "release-new", st.ReleaseID())
}

func TestNodeQueries(t *testing.T) {
	st := createStore(t)

	t.Run("node with nullable columns", func(t *testing.T) {
		node, ok := st.Node(9606)
		require.True(t, ok)
		assert.Equal(t, 9605, node.ParentTaxID)
		assert.Equal(t, "species", node.Rank)
		assert.Equal(t, 2, node.MitoCode)
		assert.Equal(t, "type species", node.Comments)
	})

	t.Run("cached read returns the same node", func(t *testing.T) {
		first, ok := st.Node(4107)
		require.True(t, ok)
		second, ok := st.Node(4107)
		require.True(t, ok)
		assert.Equal(t, first, second)
	})

	t.Run("absent and merged ids", func(t *testing.T) {
		_, ok := st.Node(424242)
		assert.False(t, ok)
		_, ok = st.Node(666)
		assert.False(t, ok)
	})
}

// The sqlite backend must answer every Store query exactly like the
// in-memory backend loaded from the same dump.
func TestParityWithRAM(t *testing.T) {
	sqlSt := createStore(t)
	ramSt, err := ioram.New(testData(), "release-42")
	require.NoError(t, err)

	taxids := []int{1, 131567, 9605, 9606, 4107, 666, 999, 424242}

	t.Run("nodes", func(t *testing.T) {
		for _, taxid := range taxids {
			a, okA := ramSt.Node(taxid)
			b, okB := sqlSt.Node(taxid)
			assert.Equal(t, okA, okB, "node ok %d", taxid)
			assert.Equal(t, a, b, "node %d", taxid)
		}
	})

	t.Run("children", func(t *testing.T) {
		for _, taxid := range taxids {
			assert.Equal(t, ramSt.Children(taxid), sqlSt.Children(taxid),
				"children %d", taxid)
		}
	})

	t.Run("names", func(t *testing.T) {
		for _, taxid := range taxids {
			a := ramSt.Names(taxid)
			b := sqlSt.Names(taxid)
			if len(a) == 0 {
				assert.Empty(t, b, "names %d", taxid)
				continue
			}
			assert.Equal(t, a, b, "names %d", taxid)
		}
	})

	t.Run("name search", func(t *testing.T) {
		names := []string{
			"root", "Homo sapiens", "homo sapiens", "solanum",
			"Man", "Vulpes",
		}
		for _, name := range names {
			assert.Equal(t,
				ramSt.TaxidsForName(name), sqlSt.TaxidsForName(name),
				"search %q", name)
		}
	})

	t.Run("merged and deleted", func(t *testing.T) {
		for _, taxid := range taxids {
			a, okA := ramSt.MergedTo(taxid)
			b, okB := sqlSt.MergedTo(taxid)
			assert.Equal(t, okA, okB, "merged ok %d", taxid)
			assert.Equal(t, a, b, "merged %d", taxid)
			assert.Equal(t, ramSt.IsDeleted(taxid), sqlSt.IsDeleted(taxid),
				"deleted %d", taxid)
		}
	})

	t.Run("genetic codes and codons", func(t *testing.T) {
		a, okA := ramSt.GeneticCode(1)
		b, okB := sqlSt.GeneticCode(1)
		assert.Equal(t, okA, okB)
		assert.Equal(t, a, b)

		assert.Equal(t, ramSt.Codons(), sqlSt.Codons())
	})
}

// A failing database must not look like an empty one: queries still
// return empty results, but each failure leaves a log entry behind.
func TestQueryFailureIsLogged(t *testing.T) {
	st := createStore(t)

	var buf bytes.Buffer
	prev := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, nil)))
	t.Cleanup(func() { slog.SetDefault(prev) })

	c, ok := st.(io.Closer)
	require.True(t, ok)
	require.NoError(t, c.Close())

	assert.Nil(t, st.Children(1))
	assert.Contains(t, buf.String(), "cannot read children")

	buf.Reset()
	assert.Nil(t, st.Names(9606))
	assert.Contains(t, buf.String(), "cannot read names")

	buf.Reset()
	assert.Nil(t, st.TaxidsForName("Homo"))
	assert.Contains(t, buf.String(), "cannot search name")

	buf.Reset()
	_, found := st.Node(9606)
	assert.False(t, found)
	assert.Contains(t, buf.String(), "cannot read node")

	// absent rows stay silent on a healthy store
	healthy := createStore(t)
	buf.Reset()
	_, found = healthy.Node(424242)
	assert.False(t, found)
	assert.False(t, healthy.IsDeleted(424242))
	assert.Empty(t, buf.String())
}

package taxonomy_test

import (
	"testing"

	"github.com/gnames/ncbitax/internal/ioram"
	"github.com/gnames/ncbitax/pkg/taxonomy"
	"github.com/stretchr/testify/require"
)

// Genetic-code strings follow the gc.prt layout: 64 characters indexed
// by the fixed codon order, stop codons marked with '*', start codons
// with 'M' in the second string.
const (
	aaStandard    = "FFLLSSSSYY**CC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"
	ssStandard    = "---M------**--*----M---------------M----------------------------"
	aaVertMito    = "FFLLSSSSYY**CCWWLLLLPPPPHHQQRRRRIIMMTTTTNNKKSS**VVVVAAAADDEEGGGG"
	ssVertMito    = "----------**--------------------MMMM----------**----------------"
	ssBacterial   = "---M------**--*----M------------MMMM---------------M------------"
	aaBalanophora = "FFLLSSSSYY*WCC*WLLLLPPPPHHQQRRRRIIIMTTTTNNKKSSRRVVVVAAAADDEEGGGG"
	ssBalanophora = "---M------*---*----M------------MMMM---------------M------------"
)

// codonOrder reproduces the fixed order of gc.prt: the first base
// changes slowest, the third fastest.
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

// testData builds a small but structurally honest release: both
// superkingdoms, a plant branch reaching the plastid clade Viridiplantae
// (33090) and the exceptional family Balanophoraceae (25673), merged,
// deleted and doubly-listed taxids.
func testData() *taxonomy.DumpData {
	node := func(taxid, parent int, rank string, gc, mito int) taxonomy.Node {
		return taxonomy.Node{
			TaxID: taxid, ParentTaxID: parent, Rank: rank,
			GeneticCode: gc, MitoCode: mito,
		}
	}
	name := func(taxid int, s, class string) taxonomy.Name {
		return taxonomy.Name{TaxID: taxid, Name: s, Class: class}
	}

	return &taxonomy.DumpData{
		Nodes: []taxonomy.Node{
			node(1, 1, "no rank", 1, 0),
			node(131567, 1, "no rank", 1, 2),
			node(2, 131567, "superkingdom", 11, 0),
			node(562, 2, "species", 11, 0),
			node(2759, 131567, "superkingdom", 1, 1),
			node(33090, 2759, "kingdom", 1, 1),
			node(35493, 33090, "phylum", 1, 1),
			node(4069, 35493, "order", 1, 1),
			node(4070, 4069, "family", 1, 1),
			node(4107, 4070, "genus", 1, 1),
			node(4081, 4107, "species", 1, 1),
			node(25673, 4069, "family", 1, 1),
			node(25674, 25673, "genus", 1, 1),
			node(33208, 2759, "kingdom", 1, 1),
			node(9605, 33208, "genus", 1, 2),
			node(9606, 9605, "species", 1, 2),
			node(777, 33208, "genus", 1, 2),
		},
		Names: []taxonomy.Name{
			name(1, "root", "scientific name"),
			name(131567, "cellular organisms", "scientific name"),
			name(2, "Bacteria", "scientific name"),
			name(562, "Escherichia coli", "scientific name"),
			name(562, "Bacillus coli", "synonym"),
			name(2759, "Eukaryota", "scientific name"),
			name(33090, "Viridiplantae", "scientific name"),
			name(35493, "Streptophyta", "scientific name"),
			name(4069, "Solanales", "scientific name"),
			name(4070, "Solanaceae", "scientific name"),
			name(4107, "Solanum", "scientific name"),
			name(4107, "twin nightshade", "common name"),
			name(4081, "Solanum lycopersicum", "scientific name"),
			name(4081, "tomato", "genbank common name"),
			name(4081, "twin nightshade", "common name"),
			name(25673, "Balanophoraceae", "scientific name"),
			name(25674, "Balanophora", "scientific name"),
			name(33208, "Metazoa", "scientific name"),
			name(9605, "Homo", "scientific name"),
			name(9606, "Homo sapiens", "scientific name"),
			name(9606, "human", "genbank common name"),
			name(777, "Hominini", "scientific name"),
		},
		// 777 is active and merged at once; the active entry wins
		Merged:  map[int]int{666: 9606, 777: 9606},
		Deleted: []int{999},
		GeneticCodes: []taxonomy.GeneticCode{
			{ID: 0, Name: "Unspecified"},
			{ID: 1, Name: "Standard",
				TransTable: aaStandard, StartStop: ssStandard},
			{ID: 2, Name: "Vertebrate Mitochondrial",
				TransTable: aaVertMito, StartStop: ssVertMito},
			{ID: 11, Name: "Bacterial, Archaeal and Plant Plastid",
				TransTable: aaStandard, StartStop: ssBacterial},
			{ID: 32, Name: "Balanophoraceae Plastid",
				TransTable: aaBalanophora, StartStop: ssBalanophora},
		},
		Codons: codonOrder(),
	}
}

func testStore(t *testing.T) taxonomy.Store {
	t.Helper()
	st, err := ioram.New(testData(), "release-test")
	require.NoError(t, err)
	return st
}

func testEngine(t *testing.T, opts ...taxonomy.Option) taxonomy.Taxonomy {
	t.Helper()
	eng := taxonomy.New(opts...)
	eng.Publish(testStore(t))
	return eng
}

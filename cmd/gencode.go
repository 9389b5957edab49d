/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/ncbitax/pkg/taxonomy"
	"github.com/spf13/cobra"
)

// gencodeReport is the JSON shape of 'ncbitax gencode'.
type gencodeReport struct {
	TaxID         int                  `json:"taxId"`
	Organelle     string               `json:"organelle"`
	GeneticCodeID int                  `json:"geneticCodeId"`
	Table         *taxonomy.TransTable `json:"table,omitempty"`
}

// getGencodeCmd returns the gencode command.
func getGencodeCmd() *cobra.Command {
	var organelle string

	gencodeCmd := &cobra.Command{
		Use:   "gencode <taxid>",
		Short: "Show the genetic-code translation table of a taxon",
		Long: `Gencode derives the genetic code a taxon uses and prints its
translation table: codon to amino acid, start codons and stop codons.

The --organelle flag selects which genome the code applies to:
  nuclear  - the nuclear genetic code (default)
  mito     - the mitochondrial genetic code
  plastid  - the plastid genetic code, derived from the lineage

A taxon outside the plastid-bearing clades has no plastid code; the
derived id is then 0 and no table is printed.

Examples:
  ncbitax gencode 9606
  ncbitax gencode 9606 --organelle mito
  ncbitax gencode 4113 --organelle plastid`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGencode(cmd, args, organelle)
		},
	}

	gencodeCmd.Flags().StringVarP(&organelle, "organelle", "o",
		"nuclear", "genome the code applies to: nuclear, mito, plastid")

	return gencodeCmd
}

func runGencode(_ *cobra.Command, args []string, organelle string) error {
	ctx := context.Background()

	taxid, err := parseTaxidArg(args[0])
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	engine, closer, err := openTaxonomy(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer closer()

	report := gencodeReport{TaxID: taxid, Organelle: organelle}

	switch organelle {
	case "nuclear":
		report.GeneticCodeID, err = engine.GeneticCodeID(taxid)
	case "mito":
		report.GeneticCodeID, err = engine.MitoGeneticCodeID(taxid)
	case "plastid":
		report.GeneticCodeID, err = engine.PlastidGeneticCodeID(taxid)
	default:
		err = fmt.Errorf(
			"organelle must be nuclear, mito or plastid, got %q",
			organelle,
		)
	}
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if organelle == "plastid" &&
		report.GeneticCodeID == taxonomy.NoPlastidCode {
		gn.Warn("Taxon <em>%d</em> carries no plastid", taxid)
		return printJSON(report)
	}

	report.Table, err = engine.TransTable(report.GeneticCodeID)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return printJSON(report)
}

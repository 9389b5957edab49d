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

	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// lineageReport is the JSON shape of 'ncbitax lineage'.
type lineageReport struct {
	TaxID    int      `json:"taxId"`
	Taxids   []int    `json:"taxids"`
	Ranks    []string `json:"ranks"`
	Names    []string `json:"names"`
	Status   string   `json:"status"`
	Resolved int      `json:"resolvedTaxId"`
}

// getLineageCmd returns the lineage command.
func getLineageCmd() *cobra.Command {
	lineageCmd := &cobra.Command{
		Use:   "lineage <taxid>",
		Short: "Show the lineage of a taxon from the root down",
		Long: `Lineage prints the chain of taxa from the root of the taxonomy down
to the given taxid, with ranks and scientific names.

Merged taxids are followed to their replacement before the walk;
deleted and unknown taxids fail.

Examples:
  ncbitax lineage 9606
  ncbitax lineage 562`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLineage(cmd, args)
		},
	}

	return lineageCmd
}

func runLineage(_ *cobra.Command, args []string) error {
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

	status, err := engine.Status(taxid)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	report := lineageReport{TaxID: taxid, Status: status.String()}

	report.Resolved, err = engine.Resolve(taxid)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	report.Taxids, err = engine.Lineage(taxid)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	report.Ranks, err = engine.LineageRanks(taxid)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	report.Names, err = engine.LineageNames(taxid, "scientific name")
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return printJSON(report)
}

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

// nameMatch is one resolved taxon in the JSON output of 'ncbitax name'.
type nameMatch struct {
	TaxID          int    `json:"taxId"`
	Rank           string `json:"rank"`
	ScientificName string `json:"scientificName"`
}

type nameReport struct {
	Name       string      `json:"name"`
	GroupTaxID int         `json:"groupTaxId,omitempty"`
	Matches    []nameMatch `json:"matches"`
}

// getNameCmd returns the name command.
func getNameCmd() *cobra.Command {
	var group int

	nameCmd := &cobra.Command{
		Use:   "name <name>",
		Short: "Find taxa by name",
		Long: `Name finds the taxa carrying the given name in any name class.

Besides the literal spelling, variants with the first letter upcased
and downcased are tried, so 'solanum' finds the genus Solanum.

With --group the search is limited to the subtree below the given
taxid and exactly one match is required.

Examples:
  ncbitax name "Homo sapiens"
  ncbitax name solanum
  ncbitax name "Drosophila" --group 7214`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runName(cmd, args, group)
		},
	}

	nameCmd.Flags().IntVarP(&group, "group", "g", 0,
		"restrict the search to the subtree below this taxid")

	return nameCmd
}

func runName(_ *cobra.Command, args []string, group int) error {
	ctx := context.Background()

	engine, closer, err := openTaxonomy(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer closer()

	report := nameReport{Name: args[0], GroupTaxID: group}

	var taxids []int
	if group > 0 {
		taxid, err := engine.TaxidForNameInGroup(args[0], group)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		taxids = []int{taxid}
	} else {
		taxids, err = engine.TaxidsForName(args[0])
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
	}

	for _, taxid := range taxids {
		match := nameMatch{TaxID: taxid}
		if match.Rank, err = engine.Rank(taxid); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		if match.ScientificName, err = engine.ScientificName(taxid); err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		report.Matches = append(report.Matches, match)
	}

	if len(report.Matches) == 0 {
		gn.Warn("No taxa found for name <em>%s</em>", args[0])
	}

	return printJSON(report)
}

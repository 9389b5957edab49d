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
	"github.com/gnames/ncbitax/internal/iofetch"
	"github.com/gnames/ncbitax/pkg/config"
	"github.com/gnames/ncbitax/pkg/taxonomy"
	"github.com/spf13/cobra"
)

// statusReport is the JSON shape of 'ncbitax status' without arguments.
type statusReport struct {
	Backend   string `json:"backend"`
	ReleaseID string `json:"releaseId"`
	TaxdmpDir string `json:"taxdmpDir"`
	DumpReady bool   `json:"dumpReady"`
	NodeCount int    `json:"nodeCount,omitempty"`
}

// taxidStatus is one entry of 'ncbitax status <taxid>...'.
type taxidStatus struct {
	TaxID         int    `json:"taxId"`
	Status        string `json:"status"`
	ResolvedTaxID int    `json:"resolvedTaxId,omitempty"`
}

// getStatusCmd returns the status command.
func getStatusCmd() *cobra.Command {
	statusCmd := &cobra.Command{
		Use:   "status [taxid]...",
		Short: "Show the local taxonomy release or classify taxids",
		Long: `Status without arguments reports which taxonomy release is available
locally, which backend serves it and how many taxa it holds.

With taxid arguments it classifies each one as active, merged, deleted
or unknown, and resolves merged identifiers to their current taxid.

Examples:
  ncbitax status
  ncbitax status 9606 562 666`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(cmd, args)
		},
	}

	return statusCmd
}

func runStatus(_ *cobra.Command, args []string) error {
	ctx := context.Background()

	report := statusReport{
		Backend:   cfg.Taxonomy.Backend,
		TaxdmpDir: config.TaxdmpDir(homeDir),
		DumpReady: iofetch.HaveDumpFiles(config.TaxdmpDir(homeDir)),
	}

	if !report.DumpReady {
		gn.Warn("No local taxonomy dump found.")
		gn.Warn("Run 'ncbitax fetch' to download one.")
		return printJSON(report)
	}

	engine, closer, err := openTaxonomy(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer closer()

	if len(args) > 0 {
		return runTaxidStatus(engine, args)
	}

	report.ReleaseID, err = engine.ReleaseID()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	report.NodeCount, err = engine.NodeCount()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	return printJSON(report)
}

func runTaxidStatus(engine taxonomy.Taxonomy, args []string) error {
	res := make([]taxidStatus, 0, len(args))
	for _, arg := range args {
		taxid, err := parseTaxidArg(arg)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}

		status, err := engine.Status(taxid)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}

		entry := taxidStatus{TaxID: taxid, Status: status.String()}
		if resolved, err := engine.Resolve(taxid); err == nil {
			entry.ResolvedTaxID = resolved
		}
		res = append(res, entry)
	}

	return printJSON(res)
}

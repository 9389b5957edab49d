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
	"io"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/ncbitax/internal/iodump"
	"github.com/gnames/ncbitax/internal/iofetch"
	"github.com/gnames/ncbitax/internal/ioram"
	"github.com/gnames/ncbitax/internal/iosqlite"
	"github.com/gnames/ncbitax/pkg/config"
	"github.com/spf13/cobra"
)

// getFetchCmd returns the fetch command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getFetchCmd() *cobra.Command {
	var force bool

	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download the NCBI taxonomy dump and build the local backend",
		Long: `Fetch downloads taxdmp.zip from the NCBI FTP server, verifies it
against its published MD5 checksum and extracts the dump files into
the local data directory.

This command:
  1. Skips the download when a verified local copy already exists
  2. Backs up the previous dump before replacing it
  3. Retries the download on checksum mismatch
  4. Rebuilds the configured backend from the extracted files

With the sqlite backend the dump is additionally loaded into a
database file, so later queries start without reparsing the dump.

Use --force to redownload even when the local copy is current.

Examples:
  ncbitax fetch
  ncbitax fetch --force`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, args, force)
		},
	}

	fetchCmd.Flags().BoolVarP(&force, "force", "f",
		false, "redownload even when the local copy is current")

	return fetchCmd
}

func runFetch(_ *cobra.Command, _ []string, force bool) error {
	ctx := context.Background()

	taxdmpDir := config.TaxdmpDir(homeDir)
	res, err := iofetch.Fetch(ctx, cfg, taxdmpDir, force)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if res.Refreshed {
		gn.Info("Downloaded taxonomy release <em>%s</em>", res.ReleaseID)
	} else {
		gn.Info("Local taxonomy release <em>%s</em> is current",
			res.ReleaseID)
	}

	data, err := iodump.Read(ctx, res.Dir)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	switch cfg.Taxonomy.Backend {
	case "sqlite":
		gn.Info("Building sqlite backend...")
		st, err := iosqlite.Create(
			ctx, config.DBFilePath(homeDir), data,
			res.ReleaseID, cfg.Taxonomy.BatchSize,
		)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("Loaded <em>%s</em> taxa into <em>%s</em>",
			humanize.Comma(int64(st.NodeCount())),
			config.DBFilePath(homeDir))
		if c, ok := st.(io.Closer); ok {
			defer c.Close()
		}
	default:
		// The RAM backend is rebuilt from the dump on every run; a
		// one-off build here proves the extracted files are usable.
		st, err := ioram.New(data, res.ReleaseID)
		if err != nil {
			gn.PrintErrorMessage(err)
			return err
		}
		gn.Info("Dump files provide <em>%s</em> taxa",
			humanize.Comma(int64(st.NodeCount())))
	}

	gn.Info("\nTaxonomy fetch complete!")
	gn.Info("\nNext steps:")
	gn.Info("  - Run 'ncbitax status' to inspect the local release")
	gn.Info("  - Run 'ncbitax lineage <taxid>' to query the tree")

	return nil
}

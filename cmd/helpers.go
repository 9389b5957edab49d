package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/gnames/gnfmt"
	"github.com/gnames/ncbitax/internal/iodump"
	"github.com/gnames/ncbitax/internal/iofetch"
	"github.com/gnames/ncbitax/internal/ioram"
	"github.com/gnames/ncbitax/internal/iosqlite"
	"github.com/gnames/ncbitax/pkg/config"
	"github.com/gnames/ncbitax/pkg/taxonomy"
)

// openTaxonomy loads the configured backend and publishes it into a
// fresh engine. The returned closer releases backend resources; for the
// RAM backend it is a no-op.
func openTaxonomy(
	ctx context.Context,
	cfg *config.Config,
) (taxonomy.Taxonomy, func() error, error) {
	var st taxonomy.Store
	var err error

	switch cfg.Taxonomy.Backend {
	case "sqlite":
		st, err = iosqlite.Open(config.DBFilePath(cfg.HomeDir))
	default:
		st, err = openRAMStore(ctx, cfg)
	}
	if err != nil {
		return nil, nil, err
	}

	engine := taxonomy.New(
		taxonomy.OptMaxTreeDepth(cfg.Taxonomy.MaxTreeDepth),
	)
	engine.Publish(st)

	closer := func() error { return nil }
	if c, ok := st.(io.Closer); ok {
		closer = c.Close
	}
	return engine, closer, nil
}

// openRAMStore parses the extracted dump files and builds the in-memory
// backend from scratch. Requires a prior 'ncbitax fetch'.
func openRAMStore(
	ctx context.Context,
	cfg *config.Config,
) (taxonomy.Store, error) {
	dir := config.TaxdmpDir(cfg.HomeDir)
	releaseID, err := iofetch.LocalReleaseID(dir)
	if err != nil {
		return nil, err
	}
	data, err := iodump.Read(ctx, dir)
	if err != nil {
		return nil, err
	}
	return ioram.New(data, releaseID)
}

// parseTaxidArg converts a positional CLI argument into a taxid.
func parseTaxidArg(arg string) (int, error) {
	taxid, err := strconv.Atoi(arg)
	if err != nil {
		return 0, fmt.Errorf("taxid must be an integer, got %q", arg)
	}
	return taxid, nil
}

// printJSON writes the query result to stdout as JSON.
func printJSON(v any) error {
	enc := gnfmt.GNjson{Pretty: true}
	out, err := enc.Encode(v)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

package iosqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/gnames/ncbitax/pkg/taxonomy"
)

// Create writes a parsed dump into a fresh sqlite file and opens it as a
// Store. Everything happens in one transaction: a failed populate leaves
// no usable database behind. An existing file at path is replaced only
// after its successor is complete.
func Create(
	ctx context.Context,
	path string,
	data *taxonomy.DumpData,
	releaseID string,
	batchSize int,
) (taxonomy.Store, error) {
	if batchSize < 1 {
		batchSize = 10_000
	}

	tmp := path + ".tmp"
	if err := os.RemoveAll(tmp); err != nil {
		return nil, OpenError(tmp, err)
	}

	db, err := sql.Open("sqlite", tmp)
	if err != nil {
		return nil, OpenError(tmp, err)
	}

	if err = populate(ctx, db, data, releaseID, batchSize); err != nil {
		db.Close()
		os.RemoveAll(tmp)
		return nil, err
	}
	if err = db.Close(); err != nil {
		return nil, OpenError(tmp, err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return nil, OpenError(path, err)
	}

	slog.Info("Populated taxonomy database",
		"file", path,
		"nodes", humanize.Comma(int64(len(data.Nodes))),
		"names", humanize.Comma(int64(len(data.Names))),
	)
	return Open(path)
}

func populate(
	ctx context.Context,
	db *sql.DB,
	data *taxonomy.DumpData,
	releaseID string,
	batchSize int,
) error {
	for _, ddl := range tablesDDL {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return SchemaError(err)
		}
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return PopulateError(err)
	}
	defer tx.Rollback()

	if err = insertNodes(ctx, tx, data.Nodes, batchSize); err != nil {
		return PopulateError(err)
	}
	if err = insertNames(ctx, tx, data.Names, batchSize); err != nil {
		return PopulateError(err)
	}

	for old, repl := range data.Merged {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO merged (old_tax_id, new_tax_id) VALUES (?, ?)",
			old, repl)
		if err != nil {
			return PopulateError(err)
		}
	}
	for _, taxid := range data.Deleted {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO deleted (tax_id) VALUES (?)", taxid)
		if err != nil {
			return PopulateError(err)
		}
	}
	for _, gc := range data.GeneticCodes {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO genetic_codes (id, name, trans_table, start_stop)
       VALUES (?, ?, ?, ?)`,
			gc.ID, gc.Name, gc.TransTable, gc.StartStop)
		if err != nil {
			return PopulateError(err)
		}
	}
	for i, codon := range data.Codons {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO codons (position, codon) VALUES (?, ?)", i, codon)
		if err != nil {
			return PopulateError(err)
		}
	}
	_, err = tx.ExecContext(ctx,
		"INSERT INTO release_meta (id, release_id) VALUES (1, ?)", releaseID)
	if err != nil {
		return PopulateError(err)
	}

	// indices after the bulk load, so inserts stay cheap
	for _, ddl := range indicesDDL {
		if _, err = tx.ExecContext(ctx, ddl); err != nil {
			return SchemaError(err)
		}
	}

	return tx.Commit()
}

func insertNodes(
	ctx context.Context,
	tx *sql.Tx,
	nodes []taxonomy.Node,
	batchSize int,
) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO nodes (tax_id, parent_tax_id, rank, embl_code,
     genetic_code_id, mito_genetic_code_id, hidden, comments)
     VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, node := range nodes {
		_, err = stmt.ExecContext(ctx, node.TaxID, node.ParentTaxID,
			node.Rank, nullStr(node.EMBLCode), node.GeneticCode,
			node.MitoCode, node.Hidden, nullStr(node.Comments))
		if err != nil {
			return fmt.Errorf("node %d: %w", node.TaxID, err)
		}
		if (i+1)%batchSize == 0 {
			slog.Debug("Inserting nodes",
				"done", humanize.Comma(int64(i+1)))
		}
	}
	return nil
}

func insertNames(
	ctx context.Context,
	tx *sql.Tx,
	names []taxonomy.Name,
	batchSize int,
) error {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO names (tax_id, name, unique_name, name_class)
     VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, name := range names {
		_, err = stmt.ExecContext(ctx, name.TaxID, name.Name,
			nullStr(name.UniqueName), name.Class)
		if err != nil {
			return fmt.Errorf("name %q: %w", name.Name, err)
		}
		if (i+1)%batchSize == 0 {
			slog.Debug("Inserting names",
				"done", humanize.Comma(int64(i+1)))
		}
	}
	return nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Package iosqlite persists one taxonomy release in a single sqlite
// file and serves the same Store contract as the in-memory backend.
// Node rows fetched during tree walks are cached per store instance;
// a reload builds a fresh store, so the cache can never outlive the
// release it was filled from.
package iosqlite

import (
	"database/sql"
	"errors"
	"log/slog"
	"sync"

	"github.com/gnames/ncbitax/pkg/taxonomy"
	_ "modernc.org/sqlite" // sqlite driver
)

type store struct {
	db *sql.DB

	mu        sync.RWMutex
	nodeCache map[int]taxonomy.Node

	releaseID string
	codons    []string
	nodeCount int
}

// Open connects to an existing taxonomy database. The small immutable
// tables (codons, release metadata) are read eagerly; a file without
// them was not fully populated and is rejected.
func Open(path string) (taxonomy.Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OpenError(path, err)
	}

	res := &store{
		db:        db,
		nodeCache: make(map[int]taxonomy.Node),
	}
	if err = res.loadMeta(); err != nil {
		db.Close()
		return nil, EmptyError(path, err)
	}
	return res, nil
}

func (s *store) loadMeta() error {
	row := s.db.QueryRow("SELECT release_id FROM release_meta WHERE id = 1")
	if err := row.Scan(&s.releaseID); err != nil {
		return err
	}

	rows, err := s.db.Query("SELECT codon FROM codons ORDER BY position")
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var codon string
		if err = rows.Scan(&codon); err != nil {
			return err
		}
		s.codons = append(s.codons, codon)
	}
	if err = rows.Err(); err != nil {
		return err
	}

	row = s.db.QueryRow("SELECT count(*) FROM nodes")
	return row.Scan(&s.nodeCount)
}

// Close releases the database handle.
func (s *store) Close() error {
	return s.db.Close()
}

// logErr records sql failures the Store contract cannot surface; the
// callers return empty results, and without the log entry a corrupt
// file would be indistinguishable from an empty one. Absence of rows
// is a normal answer, not a failure.
func logErr(msg string, taxid int, err error) {
	if errors.Is(err, sql.ErrNoRows) {
		return
	}
	slog.Error(msg, "taxid", taxid, "error", err)
}

func (s *store) Node(taxid int) (taxonomy.Node, bool) {
	s.mu.RLock()
	node, ok := s.nodeCache[taxid]
	s.mu.RUnlock()
	if ok {
		return node, true
	}

	row := s.db.QueryRow(`SELECT tax_id, parent_tax_id, rank, embl_code,
    genetic_code_id, mito_genetic_code_id, hidden, comments
    FROM nodes WHERE tax_id = ?`, taxid)

	var emblCode, comments sql.NullString
	var mito sql.NullInt64
	err := row.Scan(&node.TaxID, &node.ParentTaxID, &node.Rank, &emblCode,
		&node.GeneticCode, &mito, &node.Hidden, &comments)
	if err != nil {
		logErr("cannot read node", taxid, err)
		return taxonomy.Node{}, false
	}
	node.EMBLCode = emblCode.String
	node.MitoCode = int(mito.Int64)
	node.Comments = comments.String

	s.mu.Lock()
	s.nodeCache[taxid] = node
	s.mu.Unlock()
	return node, true
}

func (s *store) Children(taxid int) []int {
	rows, err := s.db.Query(
		`SELECT tax_id FROM nodes
     WHERE parent_tax_id = ? AND tax_id != parent_tax_id
     ORDER BY tax_id`, taxid)
	if err != nil {
		logErr("cannot read children", taxid, err)
		return nil
	}
	defer rows.Close()

	var res []int
	for rows.Next() {
		var id int
		if err = rows.Scan(&id); err != nil {
			logErr("cannot read children", taxid, err)
			return nil
		}
		res = append(res, id)
	}
	if err = rows.Err(); err != nil {
		logErr("cannot read children", taxid, err)
		return nil
	}
	return res
}

func (s *store) Names(taxid int) map[string][]taxonomy.Name {
	rows, err := s.db.Query(
		`SELECT name, unique_name, name_class FROM names
     WHERE tax_id = ? ORDER BY id`, taxid)
	if err != nil {
		logErr("cannot read names", taxid, err)
		return nil
	}
	defer rows.Close()

	res := make(map[string][]taxonomy.Name)
	for rows.Next() {
		var uniqueName sql.NullString
		name := taxonomy.Name{TaxID: taxid}
		if err = rows.Scan(&name.Name, &uniqueName, &name.Class); err != nil {
			logErr("cannot read names", taxid, err)
			return nil
		}
		name.UniqueName = uniqueName.String
		res[name.Class] = append(res[name.Class], name)
	}
	if err = rows.Err(); err != nil {
		logErr("cannot read names", taxid, err)
		return nil
	}
	return res
}

func (s *store) TaxidsForName(name string) []int {
	for _, variant := range taxonomy.NameVariations(name) {
		rows, err := s.db.Query(
			`SELECT DISTINCT tax_id FROM names
       WHERE name = ? ORDER BY tax_id`, variant)
		if err != nil {
			slog.Error("cannot search name", "name", variant, "error", err)
			return nil
		}

		var res []int
		for rows.Next() {
			var id int
			if err = rows.Scan(&id); err != nil {
				rows.Close()
				slog.Error("cannot search name", "name", variant, "error", err)
				return nil
			}
			res = append(res, id)
		}
		err = rows.Err()
		rows.Close()
		if err != nil {
			slog.Error("cannot search name", "name", variant, "error", err)
			return nil
		}
		if len(res) > 0 {
			return res
		}
	}
	return nil
}

func (s *store) MergedTo(taxid int) (int, bool) {
	row := s.db.QueryRow(
		"SELECT new_tax_id FROM merged WHERE old_tax_id = ?", taxid)
	var id int
	if err := row.Scan(&id); err != nil {
		logErr("cannot read merged", taxid, err)
		return 0, false
	}
	return id, true
}

func (s *store) IsDeleted(taxid int) bool {
	row := s.db.QueryRow(
		"SELECT 1 FROM deleted WHERE tax_id = ?", taxid)
	var one int
	if err := row.Scan(&one); err != nil {
		logErr("cannot read deleted", taxid, err)
		return false
	}
	return true
}

func (s *store) GeneticCode(id int) (taxonomy.GeneticCode, bool) {
	row := s.db.QueryRow(
		`SELECT id, name, trans_table, start_stop
     FROM genetic_codes WHERE id = ?`, id)
	var gc taxonomy.GeneticCode
	err := row.Scan(&gc.ID, &gc.Name, &gc.TransTable, &gc.StartStop)
	if err != nil {
		logErr("cannot read genetic code", id, err)
		return taxonomy.GeneticCode{}, false
	}
	return gc, true
}

func (s *store) Codons() []string {
	res := make([]string, len(s.codons))
	copy(res, s.codons)
	return res
}

func (s *store) NodeCount() int {
	return s.nodeCount
}

func (s *store) ReleaseID() string {
	return s.releaseID
}

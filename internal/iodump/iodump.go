// Package iodump parses the NCBI taxdmp flat files into the typed
// records consumed by a taxonomy store. The *.dmp files are bcp-like
// dumps: field terminator "\t|\t", row terminator "\t|". The codon order
// of the genetic-code tables comes from the Base1/Base2/Base3 annotation
// lines of gc.prt.
package iodump

import (
	"bufio"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/ncbitax/pkg/config"
	"github.com/gnames/ncbitax/pkg/taxonomy"
	"golang.org/x/sync/errgroup"
)

// Read parses all six taxdmp files found in dir concurrently and returns
// the complete bundle, or an error when any file is missing or malformed.
// A partial result is never returned.
func Read(ctx context.Context, dir string) (*taxonomy.DumpData, error) {
	var res taxonomy.DumpData

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		res.Nodes, err = ParseNodes(filepath.Join(dir, config.FileNodes))
		return err
	})
	g.Go(func() error {
		var err error
		res.Names, err = ParseNames(filepath.Join(dir, config.FileNames))
		return err
	})
	g.Go(func() error {
		var err error
		res.Merged, err = ParseMerged(filepath.Join(dir, config.FileMerged))
		return err
	})
	g.Go(func() error {
		var err error
		res.Deleted, err = ParseDelNodes(
			filepath.Join(dir, config.FileDelNodes))
		return err
	})
	g.Go(func() error {
		var err error
		res.GeneticCodes, err = ParseGenCodes(
			filepath.Join(dir, config.FileGenCode))
		return err
	})
	g.Go(func() error {
		var err error
		res.Codons, err = ParseCodons(filepath.Join(dir, config.FileGCPrt))
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slog.Info("Parsed taxonomy dump",
		"nodes", humanize.Comma(int64(len(res.Nodes))),
		"names", humanize.Comma(int64(len(res.Names))),
		"merged", humanize.Comma(int64(len(res.Merged))),
		"deleted", humanize.Comma(int64(len(res.Deleted))),
		"genetic_codes", len(res.GeneticCodes),
	)
	return &res, nil
}

// eachRow streams the fields of every row of a .dmp file to cb.
func eachRow(path string, cb func(fields []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return OpenError(path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 4*1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		row := strings.TrimRight(scanner.Text(), "|")
		fields := strings.Split(row, "\t|")
		for i := range fields {
			fields[i] = strings.TrimSpace(fields[i])
		}
		if err = cb(fields); err != nil {
			return RowError(path, line, err)
		}
	}
	if err = scanner.Err(); err != nil {
		return OpenError(path, err)
	}
	return nil
}

// ParseNodes reads nodes.dmp. Columns used: tax_id, parent tax_id, rank,
// embl code, genetic code id (7th), mitochondrial genetic code id (9th),
// GenBank hidden flag (11th) and comments (13th, not present in every
// row).
func ParseNodes(path string) ([]taxonomy.Node, error) {
	var res []taxonomy.Node
	err := eachRow(path, func(fields []string) error {
		if len(fields) < 11 {
			return FieldCountError(len(fields), 11)
		}
		taxid, err := strconv.Atoi(fields[0])
		if err != nil {
			return err
		}
		parent, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		gc, err := strconv.Atoi(fields[6])
		if err != nil {
			return err
		}
		// mito code is 0 for taxa without mitochondria
		mito, err := strconv.Atoi(fields[8])
		if err != nil {
			return err
		}
		node := taxonomy.Node{
			TaxID:       taxid,
			ParentTaxID: parent,
			Rank:        fields[2],
			EMBLCode:    fields[3],
			GeneticCode: gc,
			MitoCode:    mito,
			Hidden:      fields[10] == "1",
		}
		if len(fields) > 12 {
			node.Comments = fields[12]
		}
		res = append(res, node)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ParseNames reads names.dmp: tax_id, name_txt, unique name, name class.
func ParseNames(path string) ([]taxonomy.Name, error) {
	var res []taxonomy.Name
	err := eachRow(path, func(fields []string) error {
		if len(fields) < 4 {
			return FieldCountError(len(fields), 4)
		}
		taxid, err := strconv.Atoi(fields[0])
		if err != nil {
			return err
		}
		res = append(res, taxonomy.Name{
			TaxID:      taxid,
			Name:       fields[1],
			UniqueName: fields[2],
			Class:      fields[3],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ParseMerged reads merged.dmp: old tax_id, new tax_id.
func ParseMerged(path string) (map[int]int, error) {
	res := make(map[int]int)
	err := eachRow(path, func(fields []string) error {
		if len(fields) < 2 {
			return FieldCountError(len(fields), 2)
		}
		old, err := strconv.Atoi(fields[0])
		if err != nil {
			return err
		}
		repl, err := strconv.Atoi(fields[1])
		if err != nil {
			return err
		}
		res[old] = repl
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ParseDelNodes reads delnodes.dmp: tax_id.
func ParseDelNodes(path string) ([]int, error) {
	var res []int
	err := eachRow(path, func(fields []string) error {
		if len(fields) < 1 {
			return FieldCountError(len(fields), 1)
		}
		taxid, err := strconv.Atoi(fields[0])
		if err != nil {
			return err
		}
		res = append(res, taxid)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ParseGenCodes reads gencode.dmp: genetic code id, abbreviation, name,
// translation table, start/stop flags.
func ParseGenCodes(path string) ([]taxonomy.GeneticCode, error) {
	var res []taxonomy.GeneticCode
	err := eachRow(path, func(fields []string) error {
		if len(fields) < 5 {
			return FieldCountError(len(fields), 5)
		}
		id, err := strconv.Atoi(fields[0])
		if err != nil {
			return err
		}
		res = append(res, taxonomy.GeneticCode{
			ID:         id,
			Name:       fields[2],
			TransTable: fields[3],
			StartStop:  fields[4],
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

const (
	base1Prefix = "  -- Base1"
	base2Prefix = "  -- Base2"
	base3Prefix = "  -- Base3"
)

// ParseCodons extracts the fixed 64-codon order from the Base1/Base2/
// Base3 annotation lines of gc.prt. Each line supplies one base of every
// codon position; zipping the three lines yields the codons in table
// order.
func ParseCodons(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, OpenError(path, err)
	}
	defer f.Close()

	var base1, base2, base3 string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		switch {
		case strings.HasPrefix(line, base1Prefix):
			base1 = lastField(line)
		case strings.HasPrefix(line, base2Prefix):
			base2 = lastField(line)
		case strings.HasPrefix(line, base3Prefix):
			base3 = lastField(line)
		}
		if base3 != "" {
			break
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, OpenError(path, err)
	}

	if len(base1) != 64 || len(base1) != len(base2) ||
		len(base1) != len(base3) {
		return nil, CodonError(path)
	}

	res := make([]string, len(base1))
	for i := range base1 {
		res[i] = string([]byte{base1[i], base2[i], base3[i]})
	}
	return res, nil
}

func lastField(line string) string {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

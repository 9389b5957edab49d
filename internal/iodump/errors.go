package iodump

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/ncbitax/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := "Cannot read dump file <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DumpOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read dump file %s: %w",
			fn, path, err),
	}
}

func RowError(path string, line int, err error) error {
	msg := "Malformed row %d in <em>%s</em>"
	vars := []any{line, path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DumpRowError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: malformed row %d in %s: %w",
			fn, line, path, err),
	}
}

func FieldCountError(got, want int) error {
	return fmt.Errorf("got %d fields, want at least %d", got, want)
}

func CodonError(path string) error {
	msg := "Base1/Base2/Base3 lines of <em>%s</em> do not form 64 codons"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DumpCodonError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: codon bases in %s are not 64 long",
			fn, path),
	}
}

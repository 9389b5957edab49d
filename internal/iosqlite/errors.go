package iosqlite

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/ncbitax/pkg/errcode"
)

func OpenError(path string, err error) error {
	msg := "Cannot open taxonomy database <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreOpenError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot open database %s: %w",
			fn, path, err),
	}
}

func EmptyError(path string, err error) error {
	msg := "Taxonomy database <em>%s</em> is not populated, " +
		"run <em>ncbitax fetch</em> first"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreEmptyError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: database %s is not populated: %w",
			fn, path, err),
	}
}

func SchemaError(err error) error {
	msg := "Cannot create taxonomy database schema"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StoreSchemaError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot create schema: %w", fn, err),
	}
}

func PopulateError(err error) error {
	msg := "Cannot populate taxonomy database"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.StorePopulateError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: cannot populate database: %w", fn, err),
	}
}

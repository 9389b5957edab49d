package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Dump parsing errors
	DumpOpenError
	DumpRowError
	DumpFieldError
	DumpCodonError
	DumpIncompleteError

	// Fetch errors
	FetchDownloadError
	FetchChecksumError
	FetchExtractError
	FetchBackupError

	// SQLite store errors
	StoreOpenError
	StoreSchemaError
	StorePopulateError
	StoreQueryError
	StoreEmptyError
)

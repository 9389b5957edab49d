package iofetch

import (
	"fmt"

	"github.com/gnames/gnlib"
)

// DownloadFailedError is returned when the archive or its MD5 companion
// cannot be retrieved from NCBI.
type DownloadFailedError struct {
	error
	gnlib.MessageBase
}

// DownloadError creates a download error with a user-friendly message.
func DownloadError(url string, cause error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Download Failed</title>

<warning>Could not download taxonomy data from NCBI.</warning>

<em>Possible causes:</em>
  • No network connectivity
  • NCBI FTP mirror is temporarily unavailable
  • A proxy or firewall blocks the request

<em>How to fix:</em>
  1. Check your network connection
  2. Retry later, the NCBI mirror recovers quickly
  3. Verify the configured base URL:
     <em>%s</em>
`,
		Vars: []any{url},
	}

	return DownloadFailedError{
		error:       fmt.Errorf("failed to download %s: %w", url, cause),
		MessageBase: msgBase,
	}
}

// ChecksumMismatchError is returned when the downloaded archive does not
// match its published MD5.
type ChecksumMismatchError struct {
	error
	gnlib.MessageBase
}

// ChecksumError creates a checksum error with a user-friendly message.
func ChecksumError(path string, cause error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Archive Verification Failed</title>

<warning>The taxonomy archive does not match its published checksum.</warning>

<em>Possible causes:</em>
  • The download was interrupted
  • NCBI was updating the release mid-download

<em>How to fix:</em>
  1. Run <em>ncbitax fetch --force</em> to redownload
  2. If it keeps failing, retry after NCBI finishes its release
`,
		Vars: nil,
	}

	return ChecksumMismatchError{
		error:       fmt.Errorf("failed to verify %s: %w", path, cause),
		MessageBase: msgBase,
	}
}

// ExtractFailedError is returned when the archive cannot be unpacked.
type ExtractFailedError struct {
	error
	gnlib.MessageBase
}

// ExtractError creates an extraction error with a user-friendly message.
func ExtractError(name string, cause error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Archive Extraction Failed</title>

<warning>Could not unpack the taxonomy archive.</warning>

<em>How to fix:</em>
  1. Check free disk space in the data directory
  2. Run <em>ncbitax fetch --force</em> to redownload
`,
		Vars: nil,
	}

	return ExtractFailedError{
		error:       fmt.Errorf("failed to extract %s: %w", name, cause),
		MessageBase: msgBase,
	}
}

// BackupFailedError is returned when the previous release cannot be
// moved aside.
type BackupFailedError struct {
	error
	gnlib.MessageBase
}

// BackupError creates a backup error with a user-friendly message.
func BackupError(dir string, cause error) error {
	msgBase := gnlib.MessageBase{
		Msg: `<title>Cannot Back Up Previous Release</title>

<warning>The existing taxonomy files could not be moved aside.</warning>

<em>How to fix:</em>
  1. Check permissions of <em>%s</em>
  2. Remove a stale <em>.bak</em> directory next to it
`,
		Vars: []any{dir},
	}

	return BackupFailedError{
		error:       fmt.Errorf("failed to back up %s: %w", dir, cause),
		MessageBase: msgBase,
	}
}

package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "ncbitax"

	// TaxdmpZip is the file name of the NCBI taxonomy dump archive.
	TaxdmpZip = "taxdmp.zip"

	// TaxdmpMD5 is the file name of the archive's MD5 companion.
	TaxdmpMD5 = "taxdmp.zip.md5"
)

// Names of the taxdmp files consumed by the dump reader.
var (
	FileNodes    = "nodes.dmp"
	FileNames    = "names.dmp"
	FileMerged   = "merged.dmp"
	FileDelNodes = "delnodes.dmp"
	FileGenCode  = "gencode.dmp"
	FileGCPrt    = "gc.prt"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/ncbitax by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/ncbitax by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// DataDir returns the directory where NCBI files and the sqlite
// database live. Returns ~/.local/share/ncbitax by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/ncbitax/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "logs")
}

// TaxdmpDir returns the directory holding the extracted taxdmp files.
func TaxdmpDir(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "taxdmp")
}

// DBFilePath returns the path of the sqlite taxonomy database.
func DBFilePath(homeDir string) string {
	return filepath.Join(DataDir(homeDir), "taxonomy.sqlite")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/ncbitax/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

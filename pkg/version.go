// Package ncbitax holds build-time metadata shared by the CLI and the
// library consumers of this module.
package ncbitax

var (
	// Version is set by the build with ldflags.
	Version = "v0.1.0"

	// Build is the timestamp of the build, set with ldflags.
	Build = "n/a"
)

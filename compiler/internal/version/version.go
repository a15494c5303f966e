// Package version holds the tigerc build version string.
package version

// Version is the tigerc release version. Overridden at build time
// with -ldflags "-X github.com/tigerlang/tigerc/compiler/internal/version.Version=...".
var Version = "dev"

// String returns the version string printed by `tigerc version`.
func String() string {
	return "tigerc " + Version
}

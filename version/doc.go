// Package version reports build information for seqkit programs.
//
// Values come from -ldflags when set and otherwise from the VCS stamp the
// Go toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/seqkit/version.Version=1.0.0"
package version

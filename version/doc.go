// Package version reports the build version of nexus binaries.
//
// Version and Commit are set at build time:
//
//	go build -ldflags "-X github.com/kbukum/nexus/version.Version=v0.2.0"
//
// When unset, the commit and dirty flag come from the VCS stamp the Go
// toolchain embeds.
package version

// Package version reports build information for the faultline binary:
// version, git commit, branch, build time, and the size of the error
// taxonomy the build understands.
//
// Version, git commit, branch, and build time are set at compile time
// via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/faultline/version.Version=1.0.0"
package version

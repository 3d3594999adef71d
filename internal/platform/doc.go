// Package platform holds the static registries the build pipeline resolves
// targets against: the [Catalog] of supported "{os}-{arch}" keys and the
// [Toolchains] table of native compilers used for cgo builds. Both are
// constructed once at startup and passed to the pipeline explicitly; they
// are never mutated afterwards.
//
// The package also expands the platform list requested on the command line,
// including the "all" and "current" meta tokens, into concrete keys.
package platform

// Package gobuild invokes the Go compiler for one target.
//
// The [Compiler] runs "go build" in the backend module with an explicitly
// composed environment. Link flags always strip debug information, hide the
// console window on Windows, and optionally stamp a semantic version into a
// package variable. A nonzero exit is reported as [ErrCompile] carrying the
// compiler's stderr; any partially written binary is removed.
package gobuild

// Package buildenv derives the environment each cross-compilation runs with.
//
// An [Env] is a plain map of variable names to values. [Composer.Compose]
// never mutates its input: every call clones the base environment and sets
// GOOS, GOARCH and the cgo variables on the copy, so two targets built in the
// same run never share state.
package buildenv

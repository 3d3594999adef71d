// Package runner executes the external tools the build pipeline depends on:
// the frontend build command, the Go compiler and the resource compiler.
//
// A [Runner] runs a [Command] with an explicit environment and working
// directory and reports the exit code together with the captured stdout
// and stderr. A nonzero exit is not an error; callers decide what it means.
// Errors are reserved for failures to start or wait on the process.
//
// Runners also answer whether a tool can be invoked at all, so callers can
// branch on a plain boolean instead of reacting to a failed start.
package runner

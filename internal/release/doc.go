// Package release manages the release output tree.
//
// A [Coordinator] wipes the release root once per run so every run starts
// from an empty directory, hands out one subdirectory per platform, copies
// packaging extras such as config files next to each binary, and records
// the run's build report at the root. Unlike staging cleanup, failing to
// delete a stale release entry is fatal.
package release

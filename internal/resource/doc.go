// Package resource embeds the application icon into Windows builds.
//
// The Go linker picks up any .syso object in the package being built, so
// embedding an icon means generating such an object with the rsrc tool,
// running the build, and deleting the object again. Icon embedding is an
// enhancement only: every failure along the way downgrades to a plain
// build with a warning, and the generated object is always removed so a
// later build cannot link a stale one.
package resource

// Package config loads the project build configuration.
//
// Settings come from three layers, later ones winning: built-in defaults
// describing the conventional frontend/goend/release layout, an optional
// relbuild.yaml file, and RELBUILD_* environment variables (for example
// RELBUILD_RELEASE_DIR overrides release.dir). The file is checked against
// an embedded JSON Schema before it is read. Relative paths are resolved
// against the directory holding the file, or the working directory when no
// file is present; a leading ~ expands to the user's home directory.
package config

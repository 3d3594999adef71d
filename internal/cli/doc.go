// Package cli defines the Cobra command tree for relbuild. The root command
// runs the release pipeline; subcommands report version information and
// check build prerequisites. Commands only parse flags, wire components from
// the loaded configuration and format output; the work happens in the
// internal packages.
package cli

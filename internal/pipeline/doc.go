// Package pipeline sequences a complete release build.
//
// A run resolves the requested platforms, builds the frontend, stages its
// artifacts into the backend's embedded static directory, resets the release
// root and then compiles every platform in order. A failing platform is
// recorded and the loop moves on; the run as a whole fails if any platform
// did. The staging directory is restored to its placeholder state on every
// exit path.
package pipeline

// Package stage prepares the directory the backend embeds its frontend
// assets from.
//
// [Stager.Prepare] mirrors a frontend build output into a fresh staging
// subdirectory. [Stager.Cleanup] tears the staged tree down again on a
// best-effort basis and leaves a single placeholder file behind, because the
// backend's embed directive fails to compile against a missing or empty
// directory.
package stage

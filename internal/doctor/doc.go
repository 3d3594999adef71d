// Package doctor checks that the tools and files a release build needs are
// in place before a run is attempted.
package doctor

// Package frontend runs the external frontend build tool.
package frontend

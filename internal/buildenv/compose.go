package buildenv

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aiflow-labs/relbuild/internal/platform"
)

// Variable names written by Compose.
const (
	VarGOOS       = "GOOS"
	VarGOARCH     = "GOARCH"
	VarCGOEnabled = "CGO_ENABLED"
	VarCC         = "CC"
	VarCXX        = "CXX"
	VarPath       = "PATH"
)

// nativeOS lists the targets whose binaries link native GUI libraries and
// therefore need cgo whether or not it was requested.
var nativeOS = map[string]string{
	platform.Linux:  "linux targets need cgo and the GTK development libraries (gcc, libgtk-3-dev or gtk3-devel)",
	platform.Darwin: "macOS targets need cgo; cross-compiling from another OS may not work",
}

// Composer derives per-target build environments.
type Composer struct {
	Toolchains *platform.Toolchains
	Logger     *log.Logger
}

// Compose returns a copy of base configured for the target identified by key.
//
// When cgo is requested and key has a registered toolchain, native
// compilation is enabled with that toolchain's compilers. When cgo is not
// requested, Linux and macOS targets still get it, with a warning. Every
// other combination disables cgo.
func (c *Composer) Compose(base Env, key string, spec platform.Spec, cgo bool) Env {
	env := base.Clone()
	env.Set(VarGOOS, spec.OS)
	env.Set(VarGOARCH, spec.Arch)

	var (
		tc    platform.Toolchain
		hasTC bool
	)
	if cgo && c.Toolchains != nil {
		tc, hasTC = c.Toolchains.Lookup(key)
	}

	switch {
	case cgo && hasTC:
		env.Set(VarCGOEnabled, "1")
		env.Set(VarCC, tc.CC)
		env.Set(VarCXX, tc.CXX)
		if tc.SDKRoot != "" && isDir(tc.SDKRoot) {
			prependPath(env, filepath.Join(tc.SDKRoot, "bin"))
		}
		c.logger().Info("cgo enabled", "platform", key, "toolchain", tc.Description)

	case !cgo && nativeOS[spec.OS] != "":
		env.Set(VarCGOEnabled, "1")
		c.logger().Warn(nativeOS[spec.OS], "platform", key)

	default:
		if cgo {
			c.logger().Warn("no native toolchain registered, building without cgo", "platform", key)
		}
		env.Set(VarCGOEnabled, "0")
	}

	return env
}

func (c *Composer) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// prependPath puts dir at the front of PATH unless it is already listed.
func prependPath(env Env, dir string) {
	current := env.Get(VarPath)
	if current == "" {
		env.Set(VarPath, dir)
		return
	}
	if slices.ContainsFunc(filepath.SplitList(current), func(p string) bool {
		return samePath(p, dir)
	}) {
		return
	}
	env.Set(VarPath, dir+string(os.PathListSeparator)+current)
}

func samePath(a, b string) bool {
	a, b = filepath.Clean(a), filepath.Clean(b)
	if os.PathSeparator == '\\' {
		return strings.EqualFold(a, b)
	}
	return a == b
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

package resource

import (
	"context"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aiflow-labs/relbuild/internal/runner"
)

// DefaultTool is the resource compiler used when none is configured.
const DefaultTool = "rsrc"

// unsupportedArch is the architecture rsrc cannot produce objects for.
const unsupportedArch = "arm64"

// BuildFunc runs the actual compilation.
type BuildFunc func(ctx context.Context) error

// Embedder wraps Windows builds with icon resource generation.
type Embedder struct {
	Runner runner.Runner
	Tool   string // resource compiler, DefaultTool if empty
	Icon   string // .ico file to embed
	Object string // generated .syso path inside the package being built
	Dir    string // working directory for the tool
	Logger *log.Logger

	probed    bool
	available bool
}

// Embed runs build with an icon resource object in place when possible.
// It reports whether the object was present during the build. The returned
// error is build's own; resource problems are only logged.
func (e *Embedder) Embed(ctx context.Context, arch string, build BuildFunc) (bool, error) {
	if !e.generate(ctx, arch) {
		return false, build(ctx)
	}

	defer e.removeObject()
	return true, build(ctx)
}

// generate produces the resource object, returning false when the build
// must proceed without it.
func (e *Embedder) generate(ctx context.Context, arch string) bool {
	logger := e.logger()

	if arch == unsupportedArch {
		logger.Warn("resource compiler does not support this architecture, building without icon", "arch", arch)
		return false
	}

	if _, err := os.Stat(e.Icon); err != nil {
		logger.Warn("icon file not found, building without icon", "icon", e.Icon)
		return false
	}

	if !e.toolAvailable() {
		logger.Warn("resource compiler not available, building without icon", "tool", e.tool())
		return false
	}

	logger.Info("generating icon resource", "icon", e.Icon, "object", e.Object)
	out, err := e.Runner.Run(ctx, runner.Command{
		Name: e.tool(),
		Args: []string{"-ico", e.Icon, "-o", e.Object},
		Dir:  e.Dir,
	})
	if err != nil {
		logger.Warn("resource generation failed, building without icon", "err", err)
		e.removeObject()
		return false
	}
	if out.ExitCode != 0 {
		logger.Warn("resource generation failed, building without icon",
			"exit", out.ExitCode, "stderr", strings.TrimSpace(out.Stderr))
		e.removeObject()
		return false
	}
	if _, err := os.Stat(e.Object); err != nil {
		logger.Warn("resource compiler produced no object, building without icon", "object", e.Object, "err", err)
		return false
	}
	return true
}

// toolAvailable probes the resource compiler once per Embedder.
func (e *Embedder) toolAvailable() bool {
	if !e.probed {
		e.available = e.Runner.Available(e.tool())
		e.probed = true
	}
	return e.available
}

// removeObject deletes the generated object. Failure is only a warning.
func (e *Embedder) removeObject() {
	err := os.Remove(e.Object)
	switch {
	case err == nil:
		e.logger().Info("removed icon resource", "object", e.Object)
	case os.IsNotExist(err):
	default:
		e.logger().Warn("cannot remove icon resource", "object", e.Object, "err", err)
	}
}

func (e *Embedder) tool() string {
	if e.Tool == "" {
		return DefaultTool
	}
	return e.Tool
}

func (e *Embedder) logger() *log.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return log.Default()
}

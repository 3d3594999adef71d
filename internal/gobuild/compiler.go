package gobuild

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aiflow-labs/relbuild/internal/buildenv"
	"github.com/aiflow-labs/relbuild/internal/platform"
	"github.com/aiflow-labs/relbuild/internal/runner"
)

// Defaults for the compiler invocation.
const (
	DefaultGo      = "go"
	DefaultPackage = "./cmd/api"
)

// Compiler builds the backend package for a single target.
type Compiler struct {
	Runner     runner.Runner
	Go         string // go executable, DefaultGo if empty
	Dir        string // backend module directory
	Package    string // package to build, DefaultPackage if empty
	VersionVar string // variable receiving Version, DefaultVersionVar if empty
	Version    string // optional version stamp
	Logger     *log.Logger
}

// Build compiles the backend into output using env.
func (c *Compiler) Build(ctx context.Context, env buildenv.Env, spec platform.Spec, output string) error {
	goBin := c.Go
	if goBin == "" {
		goBin = DefaultGo
	}
	pkg := c.Package
	if pkg == "" {
		pkg = DefaultPackage
	}

	cmd := runner.Command{
		Name: goBin,
		Args: []string{
			"build",
			"-ldflags=" + LDFlags(spec.OS, c.VersionVar, c.Version),
			"-o", output,
			pkg,
		},
		Dir: c.Dir,
		Env: env.Environ(),
	}

	c.logger().Info("compiling", "target", spec.OS+"/"+spec.Arch, "output", output)
	c.logger().Debug("exec", "cmd", cmd.String(), "dir", cmd.Dir, "cgo", env.Get(buildenv.VarCGOEnabled))

	out, err := c.Runner.Run(ctx, cmd)
	if err != nil {
		c.discard(output)
		return fmt.Errorf("%w: %v", ErrCompile, err)
	}
	if out.ExitCode != 0 {
		c.discard(output)
		return fmt.Errorf("%w: exit code %d: %s", ErrCompile, out.ExitCode, strings.TrimSpace(out.Stderr))
	}

	c.logger().Info("compiled", "output", output)
	return nil
}

// discard removes a partial binary left by a failed build.
func (c *Compiler) discard(output string) {
	if err := os.Remove(output); err != nil && !os.IsNotExist(err) {
		c.logger().Warn("cannot remove partial output", "path", output, "err", err)
	}
}

func (c *Compiler) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

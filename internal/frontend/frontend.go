package frontend

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/aiflow-labs/relbuild/internal/runner"
)

// DefaultCommand builds the frontend when no command is configured.
const DefaultCommand = "yarn build"

// Builder produces the frontend distribution directory.
type Builder struct {
	Runner  runner.Runner
	Dir     string   // frontend project directory
	Command []string // tool and arguments, DefaultCommand if empty
	Logger  *log.Logger
}

// Build runs the frontend command in Dir.
func (b *Builder) Build(ctx context.Context) error {
	argv := b.argv()
	cmd := runner.Command{Name: argv[0], Args: argv[1:], Dir: b.Dir}

	b.logger().Info("building frontend", "dir", b.Dir, "cmd", cmd.String())

	out, err := b.Runner.Run(ctx, cmd)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrFrontendBuild, err)
	}
	if out.ExitCode != 0 {
		return fmt.Errorf("%w: %s exited with code %d: %s",
			ErrFrontendBuild, cmd.Name, out.ExitCode, strings.TrimSpace(out.Stderr))
	}

	b.logger().Info("frontend built")
	return nil
}

// Tool returns the executable the builder invokes.
func (b *Builder) Tool() string {
	return b.argv()[0]
}

func (b *Builder) argv() []string {
	if len(b.Command) == 0 {
		return strings.Fields(DefaultCommand)
	}
	return b.Command
}

func (b *Builder) logger() *log.Logger {
	if b.Logger != nil {
		return b.Logger
	}
	return log.Default()
}

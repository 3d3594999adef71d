// Package runnertest provides a scripted [runner.Runner] for tests.
package runnertest

import (
	"context"
	"sync"

	"github.com/aiflow-labs/relbuild/internal/runner"
)

// Handler produces the result of a single fake invocation.
type Handler func(cmd runner.Command) (*runner.Output, error)

// Fake records every command it is asked to run and answers with a Handler.
// Commands whose name has no handler exit 0 with empty output.
type Fake struct {
	mu       sync.Mutex
	handlers map[string]Handler
	tools    map[string]bool
	calls    []runner.Command
	probes   []string
}

// New returns a Fake on which every tool is available.
func New() *Fake {
	return &Fake{
		handlers: make(map[string]Handler),
		tools:    make(map[string]bool),
	}
}

// Handle installs h for commands named name.
func (f *Fake) Handle(name string, h Handler) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.handlers[name] = h
	return f
}

// SetAvailable overrides the availability answer for a tool.
func (f *Fake) SetAvailable(name string, ok bool) *Fake {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tools[name] = ok
	return f
}

// Run records cmd and dispatches to its handler.
func (f *Fake) Run(_ context.Context, cmd runner.Command) (*runner.Output, error) {
	f.mu.Lock()
	f.calls = append(f.calls, cmd)
	h := f.handlers[cmd.Name]
	f.mu.Unlock()

	if h == nil {
		return &runner.Output{}, nil
	}
	return h(cmd)
}

// Available reports the configured availability, defaulting to true.
func (f *Fake) Available(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probes = append(f.probes, name)
	ok, set := f.tools[name]
	return !set || ok
}

// Calls returns the recorded commands named name, or all commands when name is empty.
func (f *Fake) Calls(name string) []runner.Command {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []runner.Command
	for _, c := range f.calls {
		if name == "" || c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Probes returns how many times Available was asked about name.
func (f *Fake) Probes(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, p := range f.probes {
		if p == name {
			n++
		}
	}
	return n
}

// Exit returns a Handler that exits with code and writes stderr.
func Exit(code int, stderr string) Handler {
	return func(runner.Command) (*runner.Output, error) {
		return &runner.Output{ExitCode: code, Stderr: stderr}, nil
	}
}

// Getenv returns the value of key in cmd's environment.
func Getenv(cmd runner.Command, key string) string {
	prefix := key + "="
	for _, e := range cmd.Env {
		if len(e) >= len(prefix) && e[:len(prefix)] == prefix {
			return e[len(prefix):]
		}
	}
	return ""
}

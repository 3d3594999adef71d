package release

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go"
	"github.com/charmbracelet/log"
	"go.yaml.in/yaml/v3"
)

// ReportFile is the name of the build report written to the release root.
const ReportFile = "build-report.yaml"

// Default retry policy for deleting stale release entries. Files still held
// by a just-exited process on Windows usually unlock within a second.
const (
	DefaultAttempts = 3
	DefaultDelay    = 200 * time.Millisecond
)

// Coordinator owns the release root directory.
type Coordinator struct {
	Root     string
	Extras   []string // files copied into every platform directory
	Attempts uint
	Delay    time.Duration
	Logger   *log.Logger
}

// Prepare makes Root an existing, empty directory.
func (c *Coordinator) Prepare() error {
	info, err := os.Stat(c.Root)
	if os.IsNotExist(err) {
		c.logger().Info("creating release directory", "path", c.Root)
		if err := os.MkdirAll(c.Root, 0o755); err != nil {
			return fmt.Errorf("%w: creating %s: %v", ErrPrepare, c.Root, err)
		}
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrPrepare, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrPrepare, c.Root)
	}

	entries, err := os.ReadDir(c.Root)
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrPrepare, c.Root, err)
	}

	c.logger().Info("clearing release directory", "path", c.Root, "entries", len(entries))
	for _, entry := range entries {
		path := filepath.Join(c.Root, entry.Name())
		if err := c.remove(path); err != nil {
			return fmt.Errorf("%w: removing %s: %v", ErrPrepare, path, err)
		}
	}
	return nil
}

// remove deletes path, retrying transient failures.
func (c *Coordinator) remove(path string) error {
	attempts := c.Attempts
	if attempts == 0 {
		attempts = DefaultAttempts
	}
	delay := c.Delay
	if delay == 0 {
		delay = DefaultDelay
	}

	return retry.Do(
		func() error { return os.RemoveAll(path) },
		retry.Attempts(attempts),
		retry.Delay(delay),
		retry.DelayType(retry.FixedDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			c.logger().Debug("retrying removal", "path", path, "attempt", n+1, "err", err)
		}),
	)
}

// PlatformDir creates and returns the output directory for a platform key.
func (c *Coordinator) PlatformDir(key string) (string, error) {
	dir := filepath.Join(c.Root, key)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating platform directory %s: %w", dir, err)
	}
	return dir, nil
}

// Package copies the configured extras into dir, keeping their file modes.
// Missing or unreadable extras, and extras whose base name was already
// packaged, are reported as warnings; packaging never fails a build.
func (c *Coordinator) Package(dir string) {
	packaged := make(map[string]string, len(c.Extras))
	for _, src := range c.Extras {
		name := filepath.Base(src)
		if prev, ok := packaged[name]; ok {
			c.logger().Warn("skipping release extra with duplicate name", "file", src, "packaged", prev)
			continue
		}

		info, err := os.Stat(src)
		if err != nil {
			c.logger().Warn("skipping release extra", "file", src, "err", err)
			continue
		}
		data, err := os.ReadFile(src)
		if err != nil {
			c.logger().Warn("skipping release extra", "file", src, "err", err)
			continue
		}
		dst := filepath.Join(dir, name)
		if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
			c.logger().Warn("cannot copy release extra", "file", src, "to", dst, "err", err)
			continue
		}
		packaged[name] = src
		c.logger().Debug("packaged release extra", "file", dst)
	}
}

// WriteReport marshals v as YAML into the report file at the release root.
func (c *Coordinator) WriteReport(v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshaling build report: %w", err)
	}
	path := filepath.Join(c.Root, ReportFile)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing build report %s: %w", path, err)
	}
	return nil
}

func (c *Coordinator) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

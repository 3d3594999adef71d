package stage

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// Defaults for the staging layout.
const (
	DefaultSubdir      = "dist"
	DefaultPlaceholder = "placeholder.txt"

	placeholderContent = "Placeholder that keeps the embedded static directory non-empty between builds.\n"
)

// Stager owns the staging root, typically the backend's embedded static directory.
type Stager struct {
	Root        string // directory the backend embeds
	Subdir      string // subdirectory receiving the assets, DefaultSubdir if empty
	Placeholder string // file written on cleanup, DefaultPlaceholder if empty
	Logger      *log.Logger
}

// CheckSource verifies that dir exists and has at least one entry.
func CheckSource(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s does not exist", ErrPrecondition, dir)
	}
	if err != nil {
		return fmt.Errorf("%w: reading %s: %v", ErrPrecondition, dir, err)
	}
	if len(entries) == 0 {
		return fmt.Errorf("%w: %s is empty", ErrPrecondition, dir)
	}
	return nil
}

// Dir returns the staging subdirectory path.
func (s *Stager) Dir() string {
	return filepath.Join(s.Root, s.subdir())
}

func (s *Stager) subdir() string {
	if s.Subdir == "" {
		return DefaultSubdir
	}
	return s.Subdir
}

// checkName rejects names that are not a single element below the staging
// root. "." and ".." would make Prepare delete the root or its parent.
func checkName(field, name string) error {
	if name == "." || !filepath.IsLocal(name) || filepath.Base(name) != name {
		return fmt.Errorf("%w: %s %q must be a single file name", ErrStaging, field, name)
	}
	return nil
}

// Prepare recreates the staging subdirectory and mirrors source into it.
// It returns the staged path.
func (s *Stager) Prepare(source string) (string, error) {
	if err := CheckSource(source); err != nil {
		return "", err
	}

	if err := checkName("subdir", s.subdir()); err != nil {
		return "", err
	}
	dst := s.Dir()

	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		return "", fmt.Errorf("%w: creating %s: %v", ErrStaging, s.Root, err)
	}

	if _, err := os.Stat(dst); err == nil {
		s.logger().Info("removing previous staging directory", "path", dst)
		if err := os.RemoveAll(dst); err != nil {
			return "", fmt.Errorf("%w: removing %s: %v", ErrStaging, dst, err)
		}
	}

	s.logger().Info("staging frontend assets", "from", source, "to", dst)
	if err := copyDir(source, dst, make(map[string]bool)); err != nil {
		return "", fmt.Errorf("%w: copying %s to %s: %v", ErrStaging, source, dst, err)
	}

	return dst, nil
}

func (s *Stager) logger() *log.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return log.Default()
}

// copyDir recursively copies src to dst, preserving the tree and file modes.
// active holds the real paths of the directories being copied above src; a
// link back to one of them is a cycle.
func copyDir(src, dst string, active map[string]bool) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	resolved, err := filepath.EvalSymlinks(src)
	if err != nil {
		return err
	}
	if active[resolved] {
		return fmt.Errorf("symlink cycle at %s", src)
	}
	active[resolved] = true
	defer delete(active, resolved)

	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()|0o700); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := copyDir(srcPath, dstPath, active); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := copyFile(srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type()&os.ModeSymlink != 0:
			// Follow links so the embedded tree holds real files.
			if err := copyLink(srcPath, dstPath, active); err != nil {
				return err
			}
		}
	}

	return nil
}

func copyLink(src, dst string, active map[string]bool) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return copyDir(src, dst, active)
	}
	return copyFile(src, dst)
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode().Perm())
}

package stage

import (
	"os"
	"path/filepath"
)

// Cleanup removes everything under the staging root and writes the
// placeholder file. Entries that cannot be removed, for example files held
// open by another process, are logged and skipped. Cleanup never fails; the
// root is left existing and non-empty.
func (s *Stager) Cleanup() {
	logger := s.logger()
	logger.Info("cleaning up staging directory", "path", s.Root)

	entries, err := os.ReadDir(s.Root)
	if err != nil && !os.IsNotExist(err) {
		logger.Warn("cannot list staging directory", "path", s.Root, "err", err)
	}
	for _, entry := range entries {
		s.removeBestEffort(filepath.Join(s.Root, entry.Name()))
	}

	if err := os.MkdirAll(s.Root, 0o755); err != nil {
		logger.Warn("cannot recreate staging directory", "path", s.Root, "err", err)
		return
	}

	name := s.Placeholder
	if name == "" {
		name = DefaultPlaceholder
	}
	if err := checkName("placeholder", name); err != nil {
		logger.Warn("invalid placeholder name, using default", "err", err)
		name = DefaultPlaceholder
	}
	path := filepath.Join(s.Root, name)
	if _, err := os.Stat(path); err == nil {
		return
	}
	logger.Info("writing placeholder", "path", path)
	if err := os.WriteFile(path, []byte(placeholderContent), 0o644); err != nil {
		logger.Warn("cannot write placeholder", "path", path, "err", err)
	}
}

// removeBestEffort deletes path and, for directories, everything below it,
// logging each entry that resists removal and carrying on with the rest.
func (s *Stager) removeBestEffort(path string) {
	info, err := os.Lstat(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger().Warn("cannot remove", "path", path, "err", err)
		}
		return
	}

	if info.IsDir() {
		children, err := os.ReadDir(path)
		if err != nil {
			s.logger().Warn("cannot list", "path", path, "err", err)
		}
		for _, child := range children {
			s.removeBestEffort(filepath.Join(path, child.Name()))
		}
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.logger().Warn("cannot remove", "path", path, "err", err)
	}
}

package gobuild

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/aiflow-labs/relbuild/internal/platform"
)

// DefaultVersionVar is the variable receiving the version stamp.
const DefaultVersionVar = "main.version"

// LDFlags returns the linker flags for goos. When version is non-empty it is
// stamped into versionVar with -X.
func LDFlags(goos, versionVar, version string) string {
	flags := []string{"-s", "-w"}
	if goos == platform.Windows {
		flags = append(flags, "-H", "windowsgui")
	}
	if version != "" {
		if versionVar == "" {
			versionVar = DefaultVersionVar
		}
		flags = append(flags, "-X", versionVar+"="+version)
	}
	return strings.Join(flags, " ")
}

// ParseVersion validates v as a semantic version, tolerating a leading "v",
// and returns it in canonical form without the prefix.
func ParseVersion(v string) (string, error) {
	sv, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return "", fmt.Errorf("%w %q: %v", ErrInvalidVersion, v, err)
	}
	return sv.String(), nil
}

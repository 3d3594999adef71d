package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"github.com/aiflow-labs/relbuild/internal/branding"
	"github.com/aiflow-labs/relbuild/internal/platform"
)

const fileType = "yaml"

// DefaultWindowsSDK is the MSYS2 UCRT64 root used for Windows cgo builds.
const DefaultWindowsSDK = `C:\msys64\ucrt64`

// Config is the fully resolved project configuration.
type Config struct {
	Root string `mapstructure:"-"` // directory relative paths were resolved against
	File string `mapstructure:"-"` // config file that was read, empty if none

	Frontend  Frontend  `mapstructure:"frontend"`
	Stage     Stage     `mapstructure:"stage"`
	Release   Release   `mapstructure:"release"`
	Build     Build     `mapstructure:"build"`
	Resource  Resource  `mapstructure:"resource"`
	Toolchain Toolchain `mapstructure:"toolchain"`
}

type Frontend struct {
	Dir     string `mapstructure:"dir"`
	Command string `mapstructure:"command"`
	Dist    string `mapstructure:"dist"`
}

type Stage struct {
	Dir         string `mapstructure:"dir"`
	Subdir      string `mapstructure:"subdir"`
	Placeholder string `mapstructure:"placeholder"`
}

type Release struct {
	Dir    string   `mapstructure:"dir"`
	Binary string   `mapstructure:"binary"`
	Extras []string `mapstructure:"extras"`
}

type Build struct {
	Dir        string `mapstructure:"dir"`
	Package    string `mapstructure:"package"`
	Go         string `mapstructure:"go"`
	VersionVar string `mapstructure:"version_var"`
}

type Resource struct {
	Tool   string `mapstructure:"tool"`
	Icon   string `mapstructure:"icon"`
	Object string `mapstructure:"object"`
}

type Toolchain struct {
	SDKRoot   string                       `mapstructure:"sdk_root"`
	Overrides map[string]ToolchainOverride `mapstructure:"overrides"`
}

// ToolchainOverride replaces the built-in toolchain of one platform.
type ToolchainOverride struct {
	CC      string `mapstructure:"cc"`
	CXX     string `mapstructure:"cxx"`
	SDKRoot string `mapstructure:"sdk_root"`
}

// FileName returns the config file name looked up in the working directory.
func FileName() string {
	return branding.ConfigName() + "." + fileType
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("frontend.dir", "frontend")
	v.SetDefault("frontend.command", "yarn build")
	v.SetDefault("frontend.dist", filepath.Join("frontend", "dist"))

	v.SetDefault("stage.dir", filepath.Join("goend", "cmd", "api", "static"))
	v.SetDefault("stage.subdir", "dist")
	v.SetDefault("stage.placeholder", "placeholder.txt")

	v.SetDefault("release.dir", "release")
	v.SetDefault("release.binary", branding.BinaryName())
	v.SetDefault("release.extras", []string{"config.yml"})

	v.SetDefault("build.dir", "goend")
	v.SetDefault("build.package", "./cmd/api")
	v.SetDefault("build.go", "go")
	v.SetDefault("build.version_var", "main.version")

	v.SetDefault("resource.tool", "rsrc")
	v.SetDefault("resource.icon", filepath.Join("goend", "app.ico"))
	v.SetDefault("resource.object", filepath.Join("goend", "cmd", "api", "rsrc.syso"))

	v.SetDefault("toolchain.sdk_root", DefaultWindowsSDK)
	v.SetDefault("toolchain.overrides", map[string]any{})
}

// Load reads the configuration. An empty path looks for FileName in the
// working directory and falls back to defaults when it is absent; an
// explicit path must exist.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("getting working directory: %w", err)
	}

	explicit := path != ""
	if !explicit {
		path = filepath.Join(cwd, FileName())
	}

	cfg := &Config{Root: cwd}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := checkFile(path, data); err != nil {
			return nil, err
		}
		if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
			return nil, fmt.Errorf("%w: reading %s: %v", ErrInvalidConfig, path, err)
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", path, err)
		}
		cfg.File = abs
		cfg.Root = filepath.Dir(abs)
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// Defaults only.
	default:
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.resolvePaths(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// checkFile validates raw config bytes against the schema.
func checkFile(path string, data []byte) error {
	result, err := Validate(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if result.Valid {
		return nil
	}

	msgs := make([]string, 0, len(result.Issues))
	for _, issue := range result.Issues {
		loc := issue.Path
		if loc == "" {
			loc = "/"
		}
		msgs = append(msgs, loc+": "+issue.Message)
	}
	return fmt.Errorf("%w: %s: %s", ErrInvalidConfig, path, strings.Join(msgs, "; "))
}

// resolvePaths expands ~ and anchors relative paths at Root.
func (c *Config) resolvePaths() error {
	paths := []*string{
		&c.Frontend.Dir,
		&c.Frontend.Dist,
		&c.Stage.Dir,
		&c.Release.Dir,
		&c.Build.Dir,
		&c.Resource.Icon,
		&c.Resource.Object,
	}
	for _, p := range paths {
		resolved, err := c.resolve(*p)
		if err != nil {
			return err
		}
		*p = resolved
	}

	for i, extra := range c.Release.Extras {
		resolved, err := c.resolve(extra)
		if err != nil {
			return err
		}
		c.Release.Extras[i] = resolved
	}

	if c.Toolchain.SDKRoot != "" {
		expanded, err := homedir.Expand(c.Toolchain.SDKRoot)
		if err != nil {
			return fmt.Errorf("%w: toolchain.sdk_root: %v", ErrInvalidConfig, err)
		}
		c.Toolchain.SDKRoot = expanded
	}
	return nil
}

func (c *Config) resolve(p string) (string, error) {
	if p == "" {
		return "", nil
	}
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("%w: expanding %s: %v", ErrInvalidConfig, p, err)
	}
	if filepath.IsAbs(expanded) {
		return filepath.Clean(expanded), nil
	}
	return filepath.Join(c.Root, expanded), nil
}

// FrontendCommand splits the configured frontend command into argv.
func (c *Config) FrontendCommand() []string {
	return strings.Fields(c.Frontend.Command)
}

// Toolchains returns the built-in toolchain table with configured overrides
// applied.
func (c *Config) Toolchains() *platform.Toolchains {
	tcs := platform.DefaultToolchains(c.Toolchain.SDKRoot)
	for key, o := range c.Toolchain.Overrides {
		tcs = tcs.With(key, platform.Toolchain{
			CC:          o.CC,
			CXX:         o.CXX,
			SDKRoot:     o.SDKRoot,
			Description: "configured",
		})
	}
	return tcs
}

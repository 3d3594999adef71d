package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchellh/go-homedir"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName())
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	root, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.File != "" {
		t.Errorf("File = %q, want none", cfg.File)
	}

	tests := []struct {
		name, got, want string
	}{
		{"frontend.dir", cfg.Frontend.Dir, filepath.Join(root, "frontend")},
		{"frontend.dist", cfg.Frontend.Dist, filepath.Join(root, "frontend", "dist")},
		{"stage.dir", cfg.Stage.Dir, filepath.Join(root, "goend", "cmd", "api", "static")},
		{"stage.subdir", cfg.Stage.Subdir, "dist"},
		{"stage.placeholder", cfg.Stage.Placeholder, "placeholder.txt"},
		{"release.dir", cfg.Release.Dir, filepath.Join(root, "release")},
		{"release.binary", cfg.Release.Binary, "aiflow"},
		{"build.dir", cfg.Build.Dir, filepath.Join(root, "goend")},
		{"build.package", cfg.Build.Package, "./cmd/api"},
		{"build.version_var", cfg.Build.VersionVar, "main.version"},
		{"resource.tool", cfg.Resource.Tool, "rsrc"},
		{"resource.icon", cfg.Resource.Icon, filepath.Join(root, "goend", "app.ico")},
		{"resource.object", cfg.Resource.Object, filepath.Join(root, "goend", "cmd", "api", "rsrc.syso")},
		{"toolchain.sdk_root", cfg.Toolchain.SDKRoot, DefaultWindowsSDK},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %q, want %q", tt.name, tt.got, tt.want)
		}
	}

	if len(cfg.Release.Extras) != 1 || cfg.Release.Extras[0] != filepath.Join(root, "config.yml") {
		t.Errorf("release.extras = %v", cfg.Release.Extras)
	}
	if got := strings.Join(cfg.FrontendCommand(), " "); got != "yarn build" {
		t.Errorf("FrontendCommand = %q", got)
	}
}

func TestLoadFileResolvesAgainstItsDirectory(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `
frontend:
  command: npm run build
release:
  dir: out
  binary: server
  extras: []
build:
  dir: /abs/backend
`)
	t.Chdir(t.TempDir())

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	base := filepath.Dir(cfg.File)
	if cfg.Release.Dir != filepath.Join(base, "out") {
		t.Errorf("release.dir = %q", cfg.Release.Dir)
	}
	if cfg.Release.Binary != "server" {
		t.Errorf("release.binary = %q", cfg.Release.Binary)
	}
	if len(cfg.Release.Extras) != 0 {
		t.Errorf("release.extras = %v, want empty", cfg.Release.Extras)
	}
	if cfg.Build.Dir != filepath.Clean("/abs/backend") {
		t.Errorf("build.dir = %q", cfg.Build.Dir)
	}
	if got := strings.Join(cfg.FrontendCommand(), " "); got != "npm run build" {
		t.Errorf("FrontendCommand = %q", got)
	}
	if cfg.Frontend.Dir != filepath.Join(base, "frontend") {
		t.Errorf("unset keys should keep defaults, frontend.dir = %q", cfg.Frontend.Dir)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RELBUILD_RELEASE_BINARY", "fromenv")
	t.Setenv("RELBUILD_STAGE_SUBDIR", "assets")

	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Release.Binary != "fromenv" {
		t.Errorf("release.binary = %q, want env override", cfg.Release.Binary)
	}
	if cfg.Stage.Subdir != "assets" {
		t.Errorf("stage.subdir = %q, want env override", cfg.Stage.Subdir)
	}
}

func TestLoadHomeExpansion(t *testing.T) {
	homedir.DisableCache = true
	t.Cleanup(func() { homedir.DisableCache = false })
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	dir := t.TempDir()
	path := writeConfig(t, dir, "release:\n  dir: ~/releases\n")

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Release.Dir != filepath.Join(home, "releases") {
		t.Errorf("release.dir = %q, want under %q", cfg.Release.Dir, home)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing explicit config")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want not-exist", err)
	}
}

func TestLoadRejectsInvalidFile(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"unknown section", "deploy:\n  target: prod\n", "deploy"},
		{"wrong type", "release:\n  extras: config.yml\n", "/release/extras"},
		{"bad binary name", "release:\n  binary: \"my app/x\"\n", "/release/binary"},
		{"override without cc", "toolchain:\n  overrides:\n    linux-amd64:\n      cxx: g++\n", "/toolchain/overrides/linux-amd64"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, t.TempDir(), tt.content)
			_, err := Load(path)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("err = %v, want ErrInvalidConfig", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q does not mention %q", err, tt.want)
			}
		})
	}
}

func TestToolchainsOverride(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `
toolchain:
  sdk_root: /opt/mingw
  overrides:
    linux-arm64:
      cc: zig-cc
      cxx: zig-c++
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	tcs := cfg.Toolchains()
	tc, ok := tcs.Lookup("linux-arm64")
	if !ok || tc.CC != "zig-cc" || tc.CXX != "zig-c++" {
		t.Errorf("linux-arm64 toolchain = %+v, want override", tc)
	}
	win, ok := tcs.Lookup("windows-amd64")
	if !ok || win.SDKRoot != "/opt/mingw" {
		t.Errorf("windows-amd64 SDK root = %q, want /opt/mingw", win.SDKRoot)
	}
}

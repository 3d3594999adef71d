package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/aiflow-labs/relbuild/internal/config"
	"github.com/aiflow-labs/relbuild/internal/platform"
	"github.com/aiflow-labs/relbuild/internal/runner/runnertest"
)

func TestPrintPlatforms(t *testing.T) {
	var buf bytes.Buffer
	if err := printPlatforms(&buf, platform.DefaultCatalog(), platform.DefaultToolchains("")); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, key := range platform.DefaultCatalog().Keys() {
		if !strings.Contains(out, key) {
			t.Errorf("listing missing %s:\n%s", key, out)
		}
	}
	for _, want := range []string{".exe", "x86_64-linux-gnu-gcc", "oa64-clang"} {
		if !strings.Contains(out, want) {
			t.Errorf("listing missing %q:\n%s", want, out)
		}
	}
}

func TestNewLoggerLevel(t *testing.T) {
	tests := []struct {
		name           string
		verbose, quiet bool
		want           log.Level
	}{
		{"default", false, false, log.InfoLevel},
		{"verbose", true, false, log.DebugLevel},
		{"quiet", false, true, log.WarnLevel},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := newLogger(tt.verbose, tt.quiet).GetLevel(); got != tt.want {
				t.Errorf("level = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNewPipelineWiresConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	p := newPipeline(cfg, platform.DefaultCatalog(), runnertest.New(), log.New(&bytes.Buffer{}))

	if p.Stager.Root != cfg.Stage.Dir || p.Release.Root != cfg.Release.Dir {
		t.Errorf("stager root %q, release root %q", p.Stager.Root, p.Release.Root)
	}
	if p.Dist != cfg.Frontend.Dist || p.Binary != cfg.Release.Binary {
		t.Errorf("dist %q, binary %q", p.Dist, p.Binary)
	}
	if p.Embedder.Object != cfg.Resource.Object || p.Embedder.Dir != cfg.Build.Dir {
		t.Errorf("embedder object %q dir %q", p.Embedder.Object, p.Embedder.Dir)
	}
	if p.Compiler.Dir != cfg.Build.Dir || p.Compiler.VersionVar != "main.version" {
		t.Errorf("compiler dir %q version var %q", p.Compiler.Dir, p.Compiler.VersionVar)
	}
	if strings.Join(p.Frontend.Command, " ") != "yarn build" {
		t.Errorf("frontend command = %q", p.Frontend.Command)
	}
	if filepath.Base(p.Release.Extras[0]) != "config.yml" {
		t.Errorf("extras = %v", p.Release.Extras)
	}
}

func TestNewDoctorUsesFrontendTool(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("RELBUILD_FRONTEND_COMMAND", "pnpm build")
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}

	d := newDoctor(cfg, runnertest.New())
	if d.FrontendTool != "pnpm" {
		t.Errorf("FrontendTool = %q, want pnpm", d.FrontendTool)
	}
	if d.ResourceTool != "rsrc" || d.Go != "go" {
		t.Errorf("tools = %q %q", d.ResourceTool, d.Go)
	}
}

func TestListingToolchainsIgnoresInvalidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName())
	if err := os.WriteFile(path, []byte("unknown_key: 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	tcs := listingToolchains(path)
	tc, ok := tcs.Lookup("windows-amd64")
	if !ok || tc.SDKRoot != config.DefaultWindowsSDK {
		t.Errorf("windows-amd64 toolchain = %+v, want built-in default", tc)
	}

	var buf bytes.Buffer
	if err := printPlatforms(&buf, platform.DefaultCatalog(), tcs); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "linux-arm64") {
		t.Errorf("listing incomplete:\n%s", buf.String())
	}
}

func TestListingToolchainsUsesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName())
	content := "toolchain:\n  overrides:\n    linux-amd64:\n      cc: zig-cc\n      cxx: zig-c++\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	if tc, _ := listingToolchains(path).Lookup("linux-amd64"); tc.CC != "zig-cc" {
		t.Errorf("linux-amd64 CC = %q, want zig-cc", tc.CC)
	}
}

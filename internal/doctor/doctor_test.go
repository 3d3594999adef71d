package doctor

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aiflow-labs/relbuild/internal/platform"
	"github.com/aiflow-labs/relbuild/internal/runner/runnertest"
)

func newDoctor(t *testing.T) (*Doctor, *runnertest.Fake) {
	t.Helper()
	dir := t.TempDir()
	icon := filepath.Join(dir, "app.ico")
	if err := os.WriteFile(icon, []byte("ico"), 0o644); err != nil {
		t.Fatal(err)
	}
	dist := filepath.Join(dir, "dist")
	if err := os.MkdirAll(dist, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dist, "index.html"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	fake := runnertest.New()
	return &Doctor{
		Runner:       fake,
		Catalog:      platform.DefaultCatalog(),
		Toolchains:   platform.DefaultToolchains(""),
		Go:           "go",
		FrontendTool: "yarn",
		ResourceTool: "rsrc",
		Icon:         icon,
		Dist:         dist,
	}, fake
}

func find(checks []Check, name string) (Check, bool) {
	for _, c := range checks {
		if c.Name == name {
			return c, true
		}
	}
	return Check{}, false
}

func TestRunAllPresent(t *testing.T) {
	d, _ := newDoctor(t)

	checks := d.Run(false)
	for _, c := range checks {
		if c.Status != OK {
			t.Errorf("%s: %s %s", c.Name, c.Status, c.Detail)
		}
	}
	if _, ok := find(checks, "cgo linux-amd64"); ok {
		t.Error("toolchain checks included without cgo")
	}
	if !Healthy(checks) {
		t.Error("expected healthy")
	}
}

func TestRunMissingGoIsUnhealthy(t *testing.T) {
	d, fake := newDoctor(t)
	fake.SetAvailable("go", false)
	fake.SetAvailable("rsrc", false)

	checks := d.Run(false)
	if c, _ := find(checks, "go"); c.Status != Miss {
		t.Errorf("go status = %s", c.Status)
	}
	if c, _ := find(checks, "resource compiler"); c.Status != Miss {
		t.Errorf("rsrc status = %s", c.Status)
	}
	if Healthy(checks) {
		t.Error("missing go should be unhealthy")
	}
}

func TestRunOptionalMissesStayHealthy(t *testing.T) {
	d, fake := newDoctor(t)
	fake.SetAvailable("rsrc", false)
	d.Icon = filepath.Join(t.TempDir(), "none.ico")
	d.Dist = filepath.Join(t.TempDir(), "nodist")

	checks := d.Run(false)
	if c, _ := find(checks, "icon"); c.Status != Miss {
		t.Errorf("icon status = %s", c.Status)
	}
	if c, _ := find(checks, "frontend artifacts"); c.Status != Warn || !strings.Contains(c.Detail, "does not exist") {
		t.Errorf("dist check = %+v", c)
	}
	if !Healthy(checks) {
		t.Error("optional misses should not make the environment unhealthy")
	}
}

func TestRunToolchains(t *testing.T) {
	d, fake := newDoctor(t)
	fake.SetAvailable("o64-clang", false)

	checks := d.Run(true)
	for _, key := range d.Catalog.Keys() {
		if _, ok := find(checks, "cgo "+key); !ok {
			t.Errorf("no toolchain check for %s", key)
		}
	}
	if c, _ := find(checks, "cgo darwin-amd64"); c.Status != Miss {
		t.Errorf("darwin-amd64 = %+v, want miss", c)
	}
	if c, _ := find(checks, "cgo linux-arm64"); c.Status != OK {
		t.Errorf("linux-arm64 = %+v, want ok", c)
	}
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	err := Print(&buf, []Check{
		{Name: "go", Status: OK, Detail: "go"},
		{Name: "icon", Status: Miss, Detail: "app.ico does not exist"},
	})
	if err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"[ OK ]", "[MISS]", "app.ico does not exist"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

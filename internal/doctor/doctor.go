package doctor

import (
	"fmt"
	"io"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/aiflow-labs/relbuild/internal/platform"
	"github.com/aiflow-labs/relbuild/internal/runner"
	"github.com/aiflow-labs/relbuild/internal/stage"
)

// Status labels, matching the bracketed markers used in console output.
const (
	OK   = "[ OK ]"
	Miss = "[MISS]"
	Warn = "[WARN]"
	Fail = "[FAIL]"
)

// Check is one diagnostic line.
type Check struct {
	Name     string
	Status   string
	Detail   string
	Required bool // a Miss or Fail here makes the environment unhealthy
}

// Doctor inspects the build prerequisites.
type Doctor struct {
	Runner     runner.Runner
	Catalog    *platform.Catalog
	Toolchains *platform.Toolchains

	Go           string // go executable
	FrontendTool string // first word of the frontend command
	ResourceTool string
	Icon         string
	Dist         string
	ConfigFile   string // config file in use, empty when running on defaults
}

// Run performs every check. Native compiler checks are only included when
// cgo is set.
func (d *Doctor) Run(cgo bool) []Check {
	var checks []Check

	if d.ConfigFile != "" {
		checks = append(checks, Check{Name: "config", Status: OK, Detail: d.ConfigFile})
	} else {
		checks = append(checks, Check{Name: "config", Status: OK, Detail: "built-in defaults"})
	}

	checks = append(checks,
		d.tool("go", d.Go, true),
		d.tool("frontend", d.FrontendTool, false),
		d.tool("resource compiler", d.ResourceTool, false),
		fileCheck("icon", d.Icon),
		d.distCheck(),
	)

	if cgo {
		checks = append(checks, d.toolchainChecks()...)
	}
	return checks
}

func (d *Doctor) tool(name, bin string, required bool) Check {
	c := Check{Name: name, Required: required}
	if bin == "" {
		c.Status, c.Detail = Warn, "not configured"
		return c
	}
	if d.Runner.Available(bin) {
		c.Status, c.Detail = OK, bin
		return c
	}
	c.Status, c.Detail = Miss, bin+" not found"
	return c
}

func fileCheck(name, path string) Check {
	c := Check{Name: name}
	info, err := os.Stat(path)
	switch {
	case err != nil:
		c.Status, c.Detail = Miss, path+" does not exist"
	case info.IsDir():
		c.Status, c.Detail = Warn, path+" is a directory"
	default:
		c.Status, c.Detail = OK, path
	}
	return c
}

// distCheck reports stale or missing frontend artifacts. They are only
// required when the frontend build is skipped, so a miss is a warning.
func (d *Doctor) distCheck() Check {
	c := Check{Name: "frontend artifacts"}
	if err := stage.CheckSource(d.Dist); err != nil {
		c.Status, c.Detail = Warn, err.Error()
		return c
	}
	c.Status, c.Detail = OK, d.Dist
	return c
}

func (d *Doctor) toolchainChecks() []Check {
	var checks []Check
	for _, e := range d.Catalog.Entries() {
		name := "cgo " + e.Key
		tc, ok := d.Toolchains.Lookup(e.Key)
		if !ok {
			checks = append(checks, Check{Name: name, Status: Warn, Detail: "no toolchain registered"})
			continue
		}
		c := Check{Name: name, Status: OK, Detail: tc.CC}
		if !d.Runner.Available(tc.CC) {
			c.Status, c.Detail = Miss, tc.CC+" not found"
		}
		if tc.SDKRoot != "" {
			if _, err := os.Stat(tc.SDKRoot); err != nil {
				c.Status = Miss
				c.Detail += fmt.Sprintf(" (SDK root %s missing)", tc.SDKRoot)
			}
		}
		checks = append(checks, c)
	}
	return checks
}

// Healthy reports whether no required check failed.
func Healthy(checks []Check) bool {
	for _, c := range checks {
		if c.Required && (c.Status == Miss || c.Status == Fail) {
			return false
		}
	}
	return true
}

// Print renders checks as a table.
func Print(w io.Writer, checks []Check) error {
	tbl := tablewriter.NewTable(
		w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders:  tw.BorderNone,
			Settings: tw.Settings{Separators: tw.Separators{BetweenColumns: tw.On}},
		})),
	)
	tbl.Header([]string{"Status", "Check", "Detail"})

	rows := make([][]any, 0, len(checks))
	for _, c := range checks {
		rows = append(rows, []any{c.Status, c.Name, c.Detail})
	}
	if err := tbl.Bulk(rows); err != nil {
		return err
	}
	return tbl.Render()
}

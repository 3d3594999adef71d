package cli

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/aiflow-labs/relbuild/internal/platform"
)

// printPlatforms renders the catalog with each entry's cgo toolchain.
func printPlatforms(w io.Writer, catalog *platform.Catalog, toolchains *platform.Toolchains) error {
	tbl := tablewriter.NewTable(
		w,
		tablewriter.WithRenderer(renderer.NewBlueprint(tw.Rendition{
			Borders:  tw.BorderNone,
			Settings: tw.Settings{Separators: tw.Separators{BetweenColumns: tw.On}},
		})),
	)
	tbl.Header([]string{"Platform", "OS", "Arch", "Ext", "CGO Toolchain"})

	entries := catalog.Entries()
	rows := make([][]any, 0, len(entries))
	for _, e := range entries {
		cc := "-"
		if tc, ok := toolchains.Lookup(e.Key); ok {
			cc = tc.CC
			if tc.Description != "" {
				cc += " (" + tc.Description + ")"
			}
		}
		ext := e.Spec.Ext
		if ext == "" {
			ext = "-"
		}
		rows = append(rows, []any{e.Key, e.Spec.OS, e.Spec.Arch, ext, cc})
	}
	if err := tbl.Bulk(rows); err != nil {
		return err
	}
	return tbl.Render()
}

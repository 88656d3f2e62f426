package cmd

import (
	"github.com/spf13/cobra"
)

type sectionRow struct {
	Name       string   `json:"name"`
	Section    string   `json:"section"`
	Path       string   `json:"path"`
	Version    string   `json:"version"`
	Operations []string `json:"operations"`
	Paginated  []string `json:"paginated,omitempty"`
}

func newSectionRow(name string, g group) sectionRow {
	row := sectionRow{
		Name:       name,
		Section:    g.section.Name,
		Path:       g.section.Path,
		Version:    g.section.Version,
		Operations: g.operationNames(),
	}
	for _, action := range row.Operations {
		if g.operations[action].paginated() {
			row.Paginated = append(row.Paginated, action)
		}
	}
	return row
}

func sectionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "sections [section]",
		Short:   "List API sections or the operations of one section",
		Args:    cobra.MaximumNArgs(1),
		Example: `  mws sections
  mws sections reports
  mws sections orders --output json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 0 {
				rows := make([]sectionRow, 0, len(sections))
				for _, name := range sectionNames() {
					rows = append(rows, newSectionRow(name, sections[name]))
				}
				if jsonOutput() {
					return outputJSON(w, rows)
				}
				tw := newTabWriter(w)
				tw.writef("NAME\tSECTION\tPATH\tOPERATIONS\n")
				for _, r := range rows {
					tw.writef("%s\t%s\t%s\t%d\n", r.Name, r.Section, r.Path, len(r.Operations))
				}
				return tw.finish()
			}

			g, err := lookupSection(args[0])
			if err != nil {
				return err
			}
			row := newSectionRow(args[0], g)
			if jsonOutput() {
				return outputJSON(w, row)
			}
			tw := newTabWriter(w)
			tw.writef("OPERATION\tBY NEXT TOKEN\n")
			for _, action := range row.Operations {
				next := "-"
				if g.operations[action].paginated() {
					next = "yes"
				}
				tw.writef("%s\t%s\n", action, next)
			}
			return tw.finish()
		},
	}
}

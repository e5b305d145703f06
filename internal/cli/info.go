package cli

import (
	"os"

	"github.com/dustin/go-humanize"
	"github.com/forgekit/forge/internal/remote"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewInfoCmd creates the info command
func NewInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <recipe>",
		Short: "Show recipe metadata and its resolved dependencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(cmd, args[0])
			if err != nil {
				return err
			}
			rec := env.recipe

			meta := table.NewWriter()
			meta.SetOutputMirror(os.Stdout)
			meta.AppendRows([]table.Row{
				{"Name", rec.Name},
				{"Version", rec.Version},
				{"License", rec.License},
				{"URL", rec.URL},
				{"Description", rec.Description},
			})
			if rec.Source != nil {
				src := rec.Source.Git
				if src == "" {
					src = rec.Source.Archive
				}
				meta.AppendRow(table.Row{"Source", src})
			}
			if rec.Build != nil {
				meta.AppendRow(table.Row{"Build tool", rec.Build.Tool})
			}
			if len(rec.Info.Libs) > 0 {
				meta.AppendRow(table.Row{"Exported libs", rec.Info.Libs})
			}
			meta.Render()

			if len(rec.Requires) == 0 {
				return nil
			}

			deps := table.NewWriter()
			deps.SetOutputMirror(os.Stdout)
			deps.AppendHeader(table.Row{"Require", "Version", "Channel", "Size"})

			for _, row := range resolveForInfo(cmd, env) {
				deps.AppendRow(row)
			}
			deps.Render()
			return nil
		},
	}
}

// resolveForInfo resolves each require for display. Resolution
// failures degrade to a dash instead of failing the command: info is
// for inspection, not verification.
func resolveForInfo(cmd *cobra.Command, env *runEnv) []table.Row {
	resolver := remote.NewResolver(env.cfg.Remotes)

	var rows []table.Row
	for _, req := range env.recipe.Requires {
		version, size := "-", "-"
		if res, err := resolver.Resolve(cmd.Context(), req); err == nil {
			version = res.Version
			if res.Size > 0 {
				size = humanize.Bytes(uint64(res.Size))
			}
		}
		rows = append(rows, table.Row{req.Name, version, req.Channel, size})
	}
	return rows
}

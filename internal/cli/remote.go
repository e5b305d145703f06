package cli

import (
	"os"

	"github.com/fatih/color"
	"github.com/forgekit/forge/internal/config"
	"github.com/forgekit/forge/internal/models"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewRemoteCmd creates the remote command group
func NewRemoteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Manage the configured package channels",
	}

	cmd.AddCommand(newRemoteAddCmd())
	cmd.AddCommand(newRemoteListCmd())
	cmd.AddCommand(newRemoteRemoveCmd())

	return cmd
}

func newRemoteAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <url>",
		Short: "Register a package channel",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			home, _ := cmd.Flags().GetString("home")
			cfg, err := config.Load(home)
			if err != nil {
				return err
			}

			_, err = config.AddRemote(home, cfg.Remotes, models.Remote{
				Name: args[0],
				URL:  args[1],
			})
			if err != nil {
				return err
			}

			color.Green("Added remote %s", args[0])
			return nil
		},
	}
}

func newRemoteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the configured package channels",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			home, _ := cmd.Flags().GetString("home")
			cfg, err := config.Load(home)
			if err != nil {
				return err
			}

			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Name", "URL"})
			for _, r := range cfg.Remotes {
				t.AppendRow(table.Row{r.Name, r.URL})
			}
			t.Render()
			return nil
		},
	}
}

func newRemoteRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <name>",
		Short: "Drop a package channel",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			home, _ := cmd.Flags().GetString("home")
			cfg, err := config.Load(home)
			if err != nil {
				return err
			}

			_, err = config.RemoveRemote(home, cfg.Remotes, args[0])
			if err != nil {
				return err
			}

			color.Yellow("Removed remote %s", args[0])
			return nil
		},
	}
}

// Package rootcmd wires the root cobra.Command for the prefixbot binary.
package rootcmd

import (
	"github.com/spf13/cobra"

	commandscmd "github.com/oklahomer/go-sarah-prefixbot/cmd/prefixbot/commands"
	runcmd "github.com/oklahomer/go-sarah-prefixbot/cmd/prefixbot/run"
	"github.com/oklahomer/go-sarah-prefixbot/cmd/prefixbot/shared"
)

// New creates and returns the root cobra.Command for the prefixbot CLI.
func New() *cobra.Command {
	ctx := &shared.Context{}

	root := &cobra.Command{
		Use:           "prefixbot",
		Short:         "Discord bot with a configurable command prefix",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          func(cmd *cobra.Command, _ []string) error { return cmd.Help() },
	}

	f := root.PersistentFlags()
	f.StringVar(&ctx.ConfigPath, "config", "config.yaml", "YAML configuration file")
	f.StringVar(&ctx.EnvFile, "env-file", ".env", "File with environment variables such as DISCORD_TOKEN")

	root.AddCommand(
		runcmd.New(ctx).Cmd(),
		commandscmd.New(ctx).Cmd(),
	)

	return root
}

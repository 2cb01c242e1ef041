// Package runcmd implements the `prefixbot run` command.
package runcmd

import (
	"fmt"

	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"
	"github.com/spf13/cobra"

	discord "github.com/oklahomer/go-sarah-prefixbot"
	"github.com/oklahomer/go-sarah-prefixbot/cmd/prefixbot/shared"
	"github.com/oklahomer/go-sarah-prefixbot/internal/bot"
	"github.com/oklahomer/go-sarah-prefixbot/internal/config"
)

// Command implements `prefixbot run`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the run command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "run",
		Short: "Connect to Discord and serve commands until interrupted",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Resolve(c.ctx.ConfigPath, c.ctx.EnvFile)
	if err != nil {
		return err
	}

	data := bot.NewData(
		bot.WithDefaultPrefix(cfg.Prefix.Default),
		bot.WithFollowState(cfg.Prefix.FollowState),
	)
	commands := bot.Commands(data)

	adapter, err := discord.NewAdapter(cfg.Discord,
		discord.WithPrefixResolver(data.ResolvePrefix),
		discord.WithApplicationCommands(discord.ApplicationCommands(commands)),
	)
	if err != nil {
		return fmt.Errorf("failed to create adapter: %w", err)
	}

	// In-memory user context storage for conversational state management.
	storage := sarah.NewUserContextStorage(sarah.NewCacheConfig())
	sarah.RegisterBot(sarah.NewBot(adapter, sarah.BotWithStorage(storage)))

	if err := discord.RegisterCommands(commands, cfg.Discord.CaseInsensitiveCommands); err != nil {
		return err
	}

	ctx := cmd.Context()
	if err := sarah.Run(ctx, cfg.Sarah); err != nil {
		return fmt.Errorf("failed to run: %w", err)
	}

	logger.Infof("Bot is running. Press Ctrl+C to stop.")

	// Block until shutdown signal.
	<-ctx.Done()

	logger.Infof("Shutting down...")
	return nil
}

// Command prefixbot runs a Discord bot with the hello, wood and prefix commands.
//
// Usage:
//
//	export DISCORD_TOKEN="your-bot-token"
//	prefixbot run --config config.yaml
//
// Then, in a Discord channel where the bot is present, type:
//
//	my_prefix hello
//	@bot wood
//	/prefix prefix:!
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	rootcmd "github.com/oklahomer/go-sarah-prefixbot/cmd/prefixbot/root"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	return rootcmd.New().ExecuteContext(ctx)
}

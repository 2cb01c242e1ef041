// Package commandscmd implements the `prefixbot commands` command.
package commandscmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	discord "github.com/oklahomer/go-sarah-prefixbot"
	"github.com/oklahomer/go-sarah-prefixbot/cmd/prefixbot/shared"
	"github.com/oklahomer/go-sarah-prefixbot/internal/bot"
)

type option struct {
	Name     string `yaml:"name"`
	Required bool   `yaml:"required"`
}

type entry struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Kinds       []string `yaml:"kinds"`
	Options     []option `yaml:"options,omitempty"`
}

// Command implements `prefixbot commands`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the commands command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "commands",
		Short: "Print the command table as YAML",
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	commands := bot.Commands(bot.NewData())

	entries := make([]entry, 0, len(commands))
	for _, command := range commands {
		e := entry{
			Name:        command.Name,
			Description: command.Description,
			Kinds:       kindNames(command.Kinds),
		}
		for _, opt := range command.Options {
			e.Options = append(e.Options, option{Name: opt.Name, Required: opt.Required})
		}
		entries = append(entries, e)
	}

	b, err := yaml.Marshal(entries)
	if err != nil {
		return err
	}
	fmt.Fprint(cmd.OutOrStdout(), string(b))
	return nil
}

func kindNames(kinds discord.Kind) []string {
	names := []string{}
	if kinds.Has(discord.KindPrefix) {
		names = append(names, "prefix")
	}
	if kinds.Has(discord.KindSlash) {
		names = append(names, "slash")
	}
	return names
}

package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-sarah/v4"
)

// CommandFunc handles one invocation of a Command.
// Return a response built with NewResponse to reply, or nil to stay silent.
type CommandFunc func(ctx context.Context, input *Input) (*sarah.CommandResponse, error)

// Command describes a command that can be invoked with a prefix, as a slash command, or both.
type Command struct {
	// Name is the command name. Slash command names must be lower case.
	Name string

	// Description is shown in Discord's command menu and in the help output.
	Description string

	// Kinds declares how the command can be invoked.
	Kinds Kind

	// Options declares slash command options. Their values are passed as Invocation.Args in this order.
	Options []*discordgo.ApplicationCommandOption

	// Func handles the invocation.
	Func CommandFunc
}

// Match reports whether the given input invokes this command.
func (c *Command) Match(input sarah.Input, caseInsensitive bool) bool {
	in, ok := input.(*Input)
	if !ok || in.Invocation == nil {
		return false
	}

	if !c.Kinds.Has(in.Invocation.Kind) {
		return false
	}

	if caseInsensitive {
		return strings.EqualFold(in.Invocation.Name, c.Name)
	}
	return in.Invocation.Name == c.Name
}

// Props converts the Command to *sarah.CommandProps for the Discord bot.
func (c *Command) Props(caseInsensitive bool) (*sarah.CommandProps, error) {
	return sarah.NewCommandPropsBuilder().
		BotType(DISCORD).
		Identifier(c.Name).
		MatchFunc(func(input sarah.Input) bool {
			return c.Match(input, caseInsensitive)
		}).
		Func(func(ctx context.Context, input sarah.Input) (*sarah.CommandResponse, error) {
			in, ok := input.(*Input)
			if !ok {
				return nil, fmt.Errorf("%T is not a *discord.Input", input)
			}
			return c.Func(ctx, in)
		}).
		Instruction(c.instruction()).
		Build()
}

func (c *Command) instruction() string {
	if c.Description != "" {
		return c.Description
	}
	return fmt.Sprintf("Input %s.", c.Name)
}

// RegisterCommands registers the given commands with go-sarah.
func RegisterCommands(commands []*Command, caseInsensitive bool) error {
	for _, c := range commands {
		props, err := c.Props(caseInsensitive)
		if err != nil {
			return fmt.Errorf("failed to build command %q: %w", c.Name, err)
		}
		sarah.RegisterCommandProps(props)
	}
	return nil
}

// ApplicationCommands returns the slash command descriptors to publish for the given commands.
// Commands that cannot be invoked as slash commands are skipped.
func ApplicationCommands(commands []*Command) []*discordgo.ApplicationCommand {
	appCommands := make([]*discordgo.ApplicationCommand, 0, len(commands))
	for _, c := range commands {
		if !c.Kinds.Has(KindSlash) {
			continue
		}
		appCommands = append(appCommands, &discordgo.ApplicationCommand{
			Name:        c.Name,
			Description: c.Description,
			Options:     c.Options,
		})
	}
	return appCommands
}

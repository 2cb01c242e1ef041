package bot

import (
	"context"
	"fmt"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"

	discord "github.com/oklahomer/go-sarah-prefixbot"
)

const worldReply = "world!"

// Commands returns the command table bound to the given application context.
func Commands(data *Data) []*discord.Command {
	return []*discord.Command{
		{
			Name:        "hello",
			Description: `Responds with "world!"`,
			Kinds:       discord.KindPrefix | discord.KindSlash,
			Func:        world,
		},
		{
			Name:        "wood",
			Description: `Responds with "world!"`,
			Kinds:       discord.KindPrefix | discord.KindSlash,
			Func:        world,
		},
		{
			Name:        "prefix",
			Description: "Sets the command prefix",
			Kinds:       discord.KindPrefix | discord.KindSlash,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "prefix",
					Description: "New command prefix",
					Required:    true,
				},
			},
			Func: data.setPrefix,
		},
	}
}

func world(_ context.Context, input *discord.Input) (*sarah.CommandResponse, error) {
	return discord.NewResponse(input, worldReply)
}

// setPrefix stores the first argument as is. It does not reply.
func (d *Data) setPrefix(_ context.Context, input *discord.Input) (*sarah.CommandResponse, error) {
	prefix, ok := input.Invocation.Arg(0)
	if !ok {
		return nil, fmt.Errorf("prefix: %w", discord.ErrMissingArgument)
	}

	d.Prefix.SetPrefix(prefix)
	logger.Infof("Command prefix set to %q by %s", prefix, input.SenderKey())

	return nil, nil
}

package discord

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-sarah/v4"
)

// ChannelID represents a Discord channel as sarah.OutputDestination.
type ChannelID string

var _ sarah.OutputDestination = ChannelID("")

// MessageTarget is a sarah.OutputDestination that replies to a received message.
// Replies to an edit-tracked message edit the earlier reply instead of sending a new one.
type MessageTarget struct {
	ChannelID ChannelID
	MessageID string
}

var _ sarah.OutputDestination = (*MessageTarget)(nil)

// InteractionTarget is a sarah.OutputDestination that responds to an application command interaction.
type InteractionTarget struct {
	Interaction *discordgo.Interaction
}

var _ sarah.OutputDestination = (*InteractionTarget)(nil)

// Input is a sarah.Input implementation that represents a received Discord message or application command.
type Input struct {
	// Event is the received message. Nil for application commands.
	Event *discordgo.MessageCreate

	// Interaction is the received application command. Nil for messages.
	Interaction *discordgo.InteractionCreate

	// Invocation is the parsed command. Nil when the message carries no command.
	Invocation *Invocation

	senderKey string
	text      string
	sentAt    time.Time
	replyTo   sarah.OutputDestination
}

var _ sarah.Input = (*Input)(nil)

// SenderKey returns a unique key representing the sender in the channel.
func (i *Input) SenderKey() string {
	return i.senderKey
}

// Message returns the received text.
func (i *Input) Message() string {
	return i.text
}

// SentAt returns when the message was sent.
func (i *Input) SentAt() time.Time {
	return i.sentAt
}

// ReplyTo returns where the response to this input is delivered.
func (i *Input) ReplyTo() sarah.OutputDestination {
	return i.replyTo
}

// MessageToInput converts a *discordgo.MessageCreate event to *Input.
// The returned Input carries no Invocation; the Adapter sets it after prefix resolution.
func MessageToInput(m *discordgo.MessageCreate) (*Input, error) {
	if m.Author == nil {
		return nil, ErrNoAuthor
	}

	sentAt := m.Timestamp
	if m.EditedTimestamp != nil {
		sentAt = *m.EditedTimestamp
	}

	return &Input{
		Event:     m,
		senderKey: fmt.Sprintf("%s_%s", m.ChannelID, m.Author.ID),
		text:      m.Content,
		sentAt:    sentAt,
		replyTo: &MessageTarget{
			ChannelID: ChannelID(m.ChannelID),
			MessageID: m.ID,
		},
	}, nil
}

// InteractionToInput converts an application command interaction to *Input with a slash Invocation.
// Option values become the Invocation's arguments in the order they were given.
func InteractionToInput(i *discordgo.InteractionCreate) (*Input, error) {
	if i.Interaction == nil || i.Type != discordgo.InteractionApplicationCommand {
		return nil, ErrNotApplicationCommand
	}

	var author *discordgo.User
	if i.Member != nil && i.Member.User != nil {
		author = i.Member.User
	} else {
		author = i.User
	}
	if author == nil {
		return nil, ErrNoAuthor
	}

	data := i.ApplicationCommandData()
	args := make([]string, 0, len(data.Options))
	for _, opt := range data.Options {
		args = append(args, optionValue(opt))
	}

	sentAt, err := discordgo.SnowflakeTimestamp(i.ID)
	if err != nil {
		sentAt = time.Now()
	}

	return &Input{
		Interaction: i,
		Invocation: &Invocation{
			Kind: KindSlash,
			Name: data.Name,
			Args: args,
		},
		senderKey: fmt.Sprintf("%s_%s", i.ChannelID, author.ID),
		text:      strings.TrimSpace("/" + data.Name + " " + strings.Join(args, " ")),
		sentAt:    sentAt,
		replyTo:   &InteractionTarget{Interaction: i.Interaction},
	}, nil
}

func optionValue(opt *discordgo.ApplicationCommandInteractionDataOption) string {
	switch opt.Type {
	case discordgo.ApplicationCommandOptionString:
		return opt.StringValue()
	case discordgo.ApplicationCommandOptionInteger:
		return strconv.FormatInt(opt.IntValue(), 10)
	case discordgo.ApplicationCommandOptionNumber:
		return strconv.FormatFloat(opt.FloatValue(), 'f', -1, 64)
	case discordgo.ApplicationCommandOptionBoolean:
		return strconv.FormatBool(opt.BoolValue())
	default:
		return fmt.Sprint(opt.Value)
	}
}

// NewResponse creates a *sarah.CommandResponse with the given content.
// The content is either a string or a *discordgo.MessageSend.
// Pass RespOption values to customize the response.
func NewResponse(input sarah.Input, content interface{}, options ...RespOption) (*sarah.CommandResponse, error) {
	if _, ok := input.(*Input); !ok {
		return nil, fmt.Errorf("%T is not a *discord.Input", input)
	}

	stash := &respOptions{}
	for _, opt := range options {
		opt(stash)
	}

	return &sarah.CommandResponse{
		Content:     content,
		UserContext: stash.userContext,
	}, nil
}

// RespOption defines a function signature that NewResponse's functional options must satisfy.
type RespOption func(*respOptions)

type respOptions struct {
	userContext *sarah.UserContext
}

// RespWithNext sets a given function as part of the response's *sarah.UserContext.
// The next input from the same user is passed to this function.
func RespWithNext(fnc sarah.ContextualFunc) RespOption {
	return func(options *respOptions) {
		options.userContext = &sarah.UserContext{
			Next: fnc,
		}
	}
}

// RespWithNextSerializable sets the given argument as part of the response's *sarah.UserContext.
func RespWithNextSerializable(arg *sarah.SerializableArgument) RespOption {
	return func(options *respOptions) {
		options.userContext = &sarah.UserContext{
			Serializable: arg,
		}
	}
}

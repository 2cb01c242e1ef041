package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/oklahomer/go-kasumi/logger"
	"github.com/oklahomer/go-sarah/v4"
)

const (
	// DISCORD is a designated sarah.BotType for Discord integration.
	DISCORD sarah.BotType = "discord"
)

// session is an internal interface that abstracts the discordgo.Session methods
// used by the Adapter. This allows mocking the session in tests.
// *discordgo.Session satisfies this interface.
type session interface {
	AddHandler(handler interface{}) func()
	Open() error
	Close() error
	ChannelMessageSend(channelID string, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEdit(channelID, messageID, content string, options ...discordgo.RequestOption) (*discordgo.Message, error)
	ChannelMessageEditComplex(m *discordgo.MessageEdit, options ...discordgo.RequestOption) (*discordgo.Message, error)
	InteractionRespond(interaction *discordgo.Interaction, resp *discordgo.InteractionResponse, options ...discordgo.RequestOption) error
	ApplicationCommandBulkOverwrite(appID string, guildID string, commands []*discordgo.ApplicationCommand, options ...discordgo.RequestOption) ([]*discordgo.ApplicationCommand, error)
}

var _ session = (*discordgo.Session)(nil)

// AdapterOption defines a function signature for Adapter's functional options.
type AdapterOption func(adapter *Adapter)

// WithSession creates an AdapterOption with the given *discordgo.Session.
// Use this to inject a pre-configured session.
// If this option is not given, NewAdapter creates a new session from Config.Token.
func WithSession(session *discordgo.Session) AdapterOption {
	return func(adapter *Adapter) {
		adapter.session = session
	}
}

// WithPrefixResolver creates an AdapterOption that sets the per-message dynamic prefix hook.
func WithPrefixResolver(resolver PrefixResolver) AdapterOption {
	return func(adapter *Adapter) {
		adapter.resolvePrefix = resolver
	}
}

// WithApplicationCommands creates an AdapterOption with the slash commands to publish once connected.
// See ApplicationCommands to build them from a Command table.
func WithApplicationCommands(commands []*discordgo.ApplicationCommand) AdapterOption {
	return func(adapter *Adapter) {
		adapter.applicationCommands = commands
	}
}

// Adapter is a sarah.Adapter implementation for Discord.
type Adapter struct {
	config              *Config
	session             session
	resolvePrefix       PrefixResolver
	applicationCommands []*discordgo.ApplicationCommand
	edits               *editTracker
}

var _ sarah.Adapter = (*Adapter)(nil)

// NewAdapter creates a new Adapter with the given Config and options.
func NewAdapter(config *Config, options ...AdapterOption) (*Adapter, error) {
	adapter := &Adapter{
		config: config,
	}

	for _, opt := range options {
		opt(adapter)
	}

	if adapter.session == nil {
		if config.Token == "" {
			return nil, ErrEmptyToken
		}

		s, err := discordgo.New("Bot " + config.Token)
		if err != nil {
			return nil, fmt.Errorf("failed to create Discord session: %w", err)
		}
		s.Identify.Intents = config.Intents
		adapter.session = s
	}

	if config.EditTrackWindow > 0 {
		adapter.edits = newEditTracker(config.EditTrackWindow)
	}

	return adapter, nil
}

// BotType returns a designated BotType for Discord integration.
func (a *Adapter) BotType() sarah.BotType {
	return DISCORD
}

// Run establishes a connection with Discord and blocks until the context is canceled.
// Slash commands are published on every Ready event; a failure to publish stops the bot.
func (a *Adapter) Run(ctx context.Context, enqueueInput func(sarah.Input) error, notifyErr func(error)) {
	a.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageCreate) {
		a.handleMessage(ctx, s, m, enqueueInput)
	})
	a.session.AddHandler(func(s *discordgo.Session, m *discordgo.MessageUpdate) {
		a.handleMessageUpdate(ctx, s, m, enqueueInput)
	})
	a.session.AddHandler(func(_ *discordgo.Session, i *discordgo.InteractionCreate) {
		a.handleInteraction(i, enqueueInput)
	})
	a.session.AddHandler(func(_ *discordgo.Session, r *discordgo.Ready) {
		if r.User == nil {
			return
		}
		if err := a.publishCommands(r.User.ID); err != nil {
			notifyErr(sarah.NewBotNonContinuableError(err.Error()))
		}
	})

	err := a.session.Open()
	if err != nil {
		notifyErr(sarah.NewBotNonContinuableError(fmt.Sprintf("failed to open Discord session: %s", err.Error())))
		return
	}

	// Block until the context is canceled.
	<-ctx.Done()

	if closeErr := a.session.Close(); closeErr != nil {
		logger.Errorf("Failed to close Discord session: %+v", closeErr)
	}
}

func (a *Adapter) publishCommands(appID string) error {
	if len(a.applicationCommands) == 0 {
		return nil
	}

	created, err := a.session.ApplicationCommandBulkOverwrite(appID, a.config.GuildID, a.applicationCommands)
	if err != nil {
		return fmt.Errorf("failed to publish application commands: %w", err)
	}

	scope := "globally"
	if a.config.GuildID != "" {
		scope = "to guild " + a.config.GuildID
	}
	logger.Infof("Published %d application command(s) %s", len(created), scope)
	return nil
}

// handleMessage processes an incoming Discord message and routes it to enqueueInput.
func (a *Adapter) handleMessage(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, enqueueInput func(sarah.Input) error) {
	a.processMessage(ctx, s, m, false, enqueueInput)
}

// handleMessageUpdate processes an edit of a tracked message as a new invocation.
func (a *Adapter) handleMessageUpdate(ctx context.Context, s *discordgo.Session, m *discordgo.MessageUpdate, enqueueInput func(sarah.Input) error) {
	// Partial updates such as embed unfurls carry no author; they must not overwrite the tracked content.
	if m.Message == nil || m.Author == nil || !a.edits.edited(m.Message) {
		return
	}
	a.processMessage(ctx, s, &discordgo.MessageCreate{Message: m.Message}, true, enqueueInput)
}

func (a *Adapter) processMessage(ctx context.Context, s *discordgo.Session, m *discordgo.MessageCreate, edited bool, enqueueInput func(sarah.Input) error) {
	input, err := MessageToInput(m)
	if err != nil {
		// MessageToInput returns ErrNoAuthor for system messages with no author.
		logger.Debugf("Skipping message: %+v", err)
		return
	}

	// Ignore messages from the bot itself.
	var botID string
	if s != nil && s.State != nil && s.State.User != nil {
		botID = s.State.User.ID
		if m.Author.ID == botID {
			return
		}
	}

	a.edits.track(m.Message)

	input.Invocation = ParseInvocation(m.Content, a.prefixes(ctx, m.Message, botID)...)
	if input.Invocation != nil {
		input.Invocation.Edited = edited
	}

	a.enqueue(input, enqueueInput)
}

// prefixes returns the prefixes to try for the given message, in order:
// the static prefix, the dynamic prefix, then the bot's mention.
func (a *Adapter) prefixes(ctx context.Context, m *discordgo.Message, botID string) []string {
	prefixes := make([]string, 0, 4)

	if a.config.Prefix != "" {
		prefixes = append(prefixes, a.config.Prefix)
	}

	if a.resolvePrefix != nil {
		prefix, ok, err := a.resolvePrefix(ctx, m)
		if err != nil {
			logger.Errorf("Failed to resolve dynamic prefix for message %s: %+v", m.ID, err)
		} else if ok {
			prefixes = append(prefixes, prefix)
		}
	}

	if a.config.MentionAsPrefix && botID != "" {
		prefixes = append(prefixes, mentionPrefixes(botID)...)
	}

	return prefixes
}

// handleInteraction processes an application command interaction and routes it to enqueueInput.
func (a *Adapter) handleInteraction(i *discordgo.InteractionCreate, enqueueInput func(sarah.Input) error) {
	input, err := InteractionToInput(i)
	if err != nil {
		logger.Debugf("Skipping interaction: %+v", err)
		return
	}

	a.enqueue(input, enqueueInput)
}

func (a *Adapter) enqueue(input *Input, enqueueInput func(sarah.Input) error) {
	var enqueueErr error
	switch {
	case a.isCommand(input.Invocation, a.config.HelpCommand):
		enqueueErr = enqueueInput(sarah.NewHelpInput(input))
	case a.isCommand(input.Invocation, a.config.AbortCommand):
		enqueueErr = enqueueInput(sarah.NewAbortInput(input))
	default:
		enqueueErr = enqueueInput(input)
	}
	if enqueueErr != nil {
		logger.Errorf("Failed to enqueue input: %+v", enqueueErr)
	}
}

func (a *Adapter) isCommand(inv *Invocation, name string) bool {
	if inv == nil || name == "" {
		return false
	}
	if a.config.CaseInsensitiveCommands {
		return strings.EqualFold(inv.Name, name)
	}
	return inv.Name == name
}

// SendMessage sends the given message to Discord.
func (a *Adapter) SendMessage(_ context.Context, output sarah.Output) {
	content := output.Content()
	switch content.(type) {
	case string, *discordgo.MessageSend, *sarah.CommandHelps:
		// Supported
	default:
		logger.Warnf("Unexpected output %#v", output)
		return
	}

	switch destination := output.Destination().(type) {
	case ChannelID:
		channelID := string(destination)
		if _, err := a.send(channelID, content); err != nil {
			logger.Errorf("Failed to send message to %s: %+v", channelID, err)
		}

	case *MessageTarget:
		a.reply(destination, content)

	case *InteractionTarget:
		err := a.session.InteractionRespond(destination.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseChannelMessageWithSource,
			Data: interactionResponseData(content),
		})
		if err != nil {
			logger.Errorf("Failed to respond to interaction %s: %+v", destination.Interaction.ID, err)
		}

	default:
		logger.Errorf("Destination is not a supported type. %#v.", output.Destination())
	}
}

// reply sends content in reply to a received message.
// When the message is edit-tracked and was already replied to, the earlier reply is edited instead.
func (a *Adapter) reply(target *MessageTarget, content interface{}) {
	channelID := string(target.ChannelID)

	if responseID, ok := a.edits.response(target.MessageID); ok {
		if _, err := a.edit(channelID, responseID, content); err != nil {
			logger.Errorf("Failed to edit message %s in %s: %+v", responseID, channelID, err)
		}
		return
	}

	sent, err := a.send(channelID, content)
	if err != nil {
		logger.Errorf("Failed to send message to %s: %+v", channelID, err)
		return
	}
	if sent != nil && sent.ID != "" {
		a.edits.setResponse(target.MessageID, sent.ID)
	}
}

func (a *Adapter) send(channelID string, content interface{}) (*discordgo.Message, error) {
	switch c := content.(type) {
	case *discordgo.MessageSend:
		return a.session.ChannelMessageSendComplex(channelID, c)
	case *sarah.CommandHelps:
		return a.session.ChannelMessageSend(channelID, formatHelps(c))
	default:
		return a.session.ChannelMessageSend(channelID, fmt.Sprint(c))
	}
}

func (a *Adapter) edit(channelID, messageID string, content interface{}) (*discordgo.Message, error) {
	switch c := content.(type) {
	case *discordgo.MessageSend:
		edit := discordgo.NewMessageEdit(channelID, messageID).
			SetContent(c.Content).
			SetEmbeds(c.Embeds)
		if c.Components != nil {
			edit.Components = &c.Components
		}
		return a.session.ChannelMessageEditComplex(edit)
	case *sarah.CommandHelps:
		return a.session.ChannelMessageEdit(channelID, messageID, formatHelps(c))
	default:
		return a.session.ChannelMessageEdit(channelID, messageID, fmt.Sprint(c))
	}
}

func interactionResponseData(content interface{}) *discordgo.InteractionResponseData {
	switch c := content.(type) {
	case *discordgo.MessageSend:
		return &discordgo.InteractionResponseData{
			Content:    c.Content,
			Embeds:     c.Embeds,
			Components: c.Components,
		}
	case *sarah.CommandHelps:
		return &discordgo.InteractionResponseData{Content: formatHelps(c)}
	default:
		return &discordgo.InteractionResponseData{Content: fmt.Sprint(c)}
	}
}

func formatHelps(helps *sarah.CommandHelps) string {
	lines := make([]string, 0, len(*helps))
	for _, h := range *helps {
		lines = append(lines, fmt.Sprintf("**%s**: %s", h.Identifier, h.Instruction))
	}
	return strings.Join(lines, "\n")
}

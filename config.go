package discord

import (
	"time"

	"github.com/bwmarrin/discordgo"
)

// Config contains configuration variables for the Discord Adapter.
type Config struct {
	// Token is the Discord bot token used for authentication.
	Token string `json:"token" yaml:"token"`

	// GuildID limits slash command publication to a single guild.
	// Commands are published globally when this is empty.
	GuildID string `json:"guild_id" yaml:"guild_id"`

	// Prefix is a static command prefix checked before the dynamic prefix hook.
	// Leave empty to rely on the hook given via WithPrefixResolver.
	Prefix string `json:"prefix" yaml:"prefix"`

	// HelpCommand is the command name that triggers help.
	// When a user invokes this command, the input is converted to sarah.HelpInput.
	HelpCommand string `json:"help_command" yaml:"help_command"`

	// AbortCommand is the command name that triggers context cancellation.
	// When a user invokes this command, the input is converted to sarah.AbortInput.
	AbortCommand string `json:"abort_command" yaml:"abort_command"`

	// EditTrackWindow is how long an edited message is still processed again.
	// Zero disables edit tracking. In YAML it is written as a duration string such as "10m" or "0s";
	// a bare integer is rejected.
	EditTrackWindow time.Duration `json:"edit_track_window" yaml:"edit_track_window"`

	// CaseInsensitiveCommands lets "HELLO" invoke the command named "hello".
	CaseInsensitiveCommands bool `json:"case_insensitive_commands" yaml:"case_insensitive_commands"`

	// MentionAsPrefix lets a mention of the bot act as a command prefix.
	MentionAsPrefix bool `json:"mention_as_prefix" yaml:"mention_as_prefix"`

	// Intents declares the Gateway Intents the bot requires.
	Intents discordgo.Intent `json:"intents" yaml:"intents"`
}

// NewConfig creates and returns a new Config instance with default settings.
// Token is empty and must be set before use.
func NewConfig() *Config {
	return &Config{
		Token:                   "",
		GuildID:                 "",
		Prefix:                  "",
		HelpCommand:             "help",
		AbortCommand:            "abort",
		EditTrackWindow:         time.Hour,
		CaseInsensitiveCommands: true,
		MentionAsPrefix:         true,
		Intents:                 discordgo.IntentsGuildMessages | discordgo.IntentsDirectMessages | discordgo.IntentsMessageContent,
	}
}

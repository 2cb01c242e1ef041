package discord

import (
	"context"
	"strings"
	"unicode"

	"github.com/bwmarrin/discordgo"
)

// Kind is a set of ways a command can be invoked.
type Kind uint8

const (
	// KindPrefix is a command typed in a message after a prefix or mention.
	KindPrefix Kind = 1 << iota
	// KindSlash is a command invoked through Discord's application command menu.
	KindSlash
)

// Has reports whether k contains every kind in other.
func (k Kind) Has(other Kind) bool {
	return other != 0 && k&other == other
}

// PrefixResolver returns the command prefix in effect for the given message.
// The second return value is false when no dynamic prefix applies.
// It is called once per incoming message before the command is parsed.
type PrefixResolver func(ctx context.Context, message *discordgo.Message) (string, bool, error)

// Invocation is a command call parsed from a message or an interaction.
type Invocation struct {
	// Kind is either KindPrefix or KindSlash.
	Kind Kind

	// Prefix is the prefix stripped from the message. Empty for slash commands.
	Prefix string

	// Name is the command name as typed by the user.
	Name string

	// Args are the command arguments in order.
	Args []string

	// Edited is true when the invocation comes from an edited message.
	Edited bool
}

// Arg returns the n-th argument.
func (i *Invocation) Arg(n int) (string, bool) {
	if i == nil || n < 0 || n >= len(i.Args) {
		return "", false
	}
	return i.Args[n], true
}

// ParseInvocation strips the first matching prefix from content and parses what follows.
// It returns nil when no prefix matches or no command name follows the prefix.
func ParseInvocation(content string, prefixes ...string) *Invocation {
	for _, prefix := range prefixes {
		rest, ok := strings.CutPrefix(content, prefix)
		if !ok {
			continue
		}

		rest = strings.TrimLeftFunc(rest, unicode.IsSpace)
		if rest == "" {
			continue
		}

		name, remainder := rest, ""
		if end := strings.IndexFunc(rest, unicode.IsSpace); end >= 0 {
			name, remainder = rest[:end], rest[end:]
		}

		return &Invocation{
			Kind:   KindPrefix,
			Prefix: prefix,
			Name:   name,
			Args:   splitArgs(remainder),
		}
	}

	return nil
}

// splitArgs splits s on white space. A double-quoted run is kept as one argument without the quotes.
func splitArgs(s string) []string {
	args := []string{}
	for {
		s = strings.TrimLeftFunc(s, unicode.IsSpace)
		if s == "" {
			return args
		}

		if s[0] == '"' {
			if end := strings.IndexByte(s[1:], '"'); end >= 0 {
				args = append(args, s[1:end+1])
				s = s[end+2:]
				continue
			}
		}

		end := strings.IndexFunc(s, unicode.IsSpace)
		if end < 0 {
			return append(args, s)
		}
		args = append(args, s[:end])
		s = s[end:]
	}
}

// mentionPrefixes returns both mention forms Discord uses for the given user.
func mentionPrefixes(userID string) []string {
	return []string{"<@" + userID + ">", "<@!" + userID + ">"}
}

// Package bot holds the application: its shared state, the prefix hook and the command table.
package bot

import (
	"context"

	"github.com/bwmarrin/discordgo"

	discord "github.com/oklahomer/go-sarah-prefixbot"
)

// DefaultPrefix is the prefix returned by Data.ResolvePrefix.
const DefaultPrefix = "my_prefix"

// Data is the application context. One instance is created at startup and
// shared by every command invocation and by the prefix hook.
type Data struct {
	// Prefix is written by the prefix command.
	Prefix *PrefixState

	defaultPrefix string
	followState   bool
}

// DataOption defines a function signature for Data's functional options.
type DataOption func(*Data)

// WithDefaultPrefix overrides DefaultPrefix.
func WithDefaultPrefix(prefix string) DataOption {
	return func(d *Data) {
		d.defaultPrefix = prefix
	}
}

// WithFollowState makes ResolvePrefix return the prefix set by the prefix command, when there is one.
func WithFollowState(follow bool) DataOption {
	return func(d *Data) {
		d.followState = follow
	}
}

// NewData creates the application context with no prefix set.
func NewData(options ...DataOption) *Data {
	d := &Data{
		Prefix:        NewPrefixState(),
		defaultPrefix: DefaultPrefix,
	}
	for _, opt := range options {
		opt(d)
	}
	return d
}

var _ discord.PrefixResolver = (&Data{}).ResolvePrefix

// ResolvePrefix is the per-message dynamic prefix hook.
// It returns the default prefix. With WithFollowState(true), a prefix set by
// the prefix command takes its place.
func (d *Data) ResolvePrefix(_ context.Context, _ *discordgo.Message) (string, bool, error) {
	if d.followState {
		if prefix, ok := d.Prefix.Prefix(); ok {
			return prefix, true, nil
		}
	}
	return d.defaultPrefix, true, nil
}

// Package discord provides a sarah.Adapter implementation for Discord with
// prefix and slash command support.
//
// This package bridges go-sarah's bot framework with Discord using discordgo
// for the underlying API integration. Incoming messages are checked against a
// static prefix, a per-message dynamic prefix hook and the bot's own mention;
// the remainder is parsed into an Invocation and handed to go-sarah as
// sarah.Input. Application command interactions are converted the same way,
// so one Command table serves both invocation kinds.
//
// Messages that were processed are tracked for a configurable window, and an
// edit within that window is processed again, with the reply edited in place.
package discord

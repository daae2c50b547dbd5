package handlers

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"sero/bot"
)

const defaultPrefix = "!"

// HandleMessage is the prefix-command hot path. It only reads the in-memory
// guild cache; a cold cache is warmed once per guild and never on every
// message.
func HandleMessage(s *discordgo.Session, m *discordgo.MessageCreate, b *bot.Bot) {
	if m.Author == nil || m.Author.Bot || m.GuildID == "" {
		return
	}

	prefix, ok := b.Cache.GetPrefix(m.GuildID)
	if !ok {
		if err := b.Cache.LoadPrefix(m.GuildID); err != nil {
			b.Log.Warn().Err(err).Str("guild_id", m.GuildID).Msg("failed to warm prefix cache")
			return
		}
		prefix, _ = b.Cache.GetPrefix(m.GuildID)
	}
	if prefix == "" {
		prefix = defaultPrefix
	}
	if !strings.HasPrefix(m.Content, prefix) {
		return
	}
	name := strings.Fields(strings.TrimPrefix(m.Content, prefix))
	if len(name) == 0 {
		return
	}

	if _, ok := b.Cache.GetCustomCommands(m.GuildID); !ok {
		if err := b.Cache.LoadCustomCommands(m.GuildID); err != nil {
			b.Log.Warn().Err(err).Str("guild_id", m.GuildID).Msg("failed to warm command cache")
			return
		}
	}
	cmd, ok := b.Cache.GetCustomCommand(m.GuildID, name[0])
	if !ok {
		return
	}

	if _, err := s.ChannelMessageSend(m.ChannelID, cmd.Reply); err != nil {
		b.Log.Warn().Err(err).Str("guild_id", m.GuildID).Str("command", cmd.Name).
			Msg("failed to send custom command reply")
	}
}

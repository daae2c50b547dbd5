package handlers

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"sero/bot"
	"sero/database"
	"sero/model"
)

// HandleCustomCommand manages a guild's custom commands. Every mutation is
// followed by an explicit cache reload; that reload is the only thing
// bounding the staleness window of the message hot path.
func HandleCustomCommand(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	options := i.ApplicationCommandData().Options
	if len(options) == 0 {
		return
	}
	sub := options[0]

	subOpts := make(map[string]*discordgo.ApplicationCommandInteractionDataOption, len(sub.Options))
	for _, opt := range sub.Options {
		subOpts[opt.Name] = opt
	}

	switch sub.Name {
	case "add":
		cmd := model.CustomCommand{
			GuildID: i.GuildID,
			Name:    subOpts["name"].StringValue(),
			Reply:   subOpts["reply"].StringValue(),
		}
		if err := database.AddCustomCommand(b.DB, cmd); err != nil {
			b.Log.Error().Err(err).Str("guild_id", i.GuildID).Msg("failed to add custom command")
			respond(s, i, "Could not save the command.")
			return
		}
		if err := b.Cache.LoadCustomCommands(i.GuildID); err != nil {
			b.Log.Warn().Err(err).Str("guild_id", i.GuildID).Msg("failed to reload command cache")
		}
		respond(s, i, fmt.Sprintf("Custom command `%s` saved.", cmd.Name))

	case "remove":
		name := subOpts["name"].StringValue()
		if err := database.DeleteCustomCommand(b.DB, i.GuildID, name); err != nil {
			b.Log.Error().Err(err).Str("guild_id", i.GuildID).Msg("failed to delete custom command")
			respond(s, i, "Could not delete the command.")
			return
		}
		if err := b.Cache.LoadCustomCommands(i.GuildID); err != nil {
			b.Log.Warn().Err(err).Str("guild_id", i.GuildID).Msg("failed to reload command cache")
		}
		respond(s, i, fmt.Sprintf("Custom command `%s` deleted.", name))
	}
}

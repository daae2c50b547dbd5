package handlers

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"sero/bot"
	"sero/cooldown"
	"sero/database"
	"sero/model"
)

// HandleTempBan bans a member for a limited time and records the grant so the
// expiration scanner can lift it.
func HandleTempBan(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	key := cooldown.Key{GuildID: i.GuildID, UserID: i.Member.User.ID, Tag: "tempban"}
	if !b.Cooldowns.Set(key, moderationCooldown) {
		respond(s, i, fmt.Sprintf("Slow down, try again in %d seconds.", b.Cooldowns.TimeLeft(key)))
		return
	}

	opts := optionMap(i)
	user := opts["user"].UserValue(s)
	duration := int(opts["duration"].IntValue())
	reason := ""
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}
	if duration <= 0 {
		respond(s, i, "Duration must be at least one minute.")
		return
	}

	if err := s.GuildBanCreateWithReason(i.GuildID, user.ID, reason, 0); err != nil {
		b.Log.Error().Err(err).Str("guild_id", i.GuildID).Str("user_id", user.ID).
			Msg("failed to ban member")
		respond(s, i, "Could not ban the member.")
		return
	}

	grant := model.NewTemporaryGrant(i.GuildID, user.ID, model.GrantKindBan, "", reason, duration)
	if err := database.AddGrant(b.DB, grant); err != nil {
		b.Log.Error().Err(err).Str("guild_id", i.GuildID).Str("user_id", user.ID).
			Msg("failed to record temporary ban")
		respond(s, i, "Member banned, but the expiry could not be recorded.")
		return
	}

	respond(s, i, fmt.Sprintf("Banned %s for %d minutes.", user.Username, duration))
}

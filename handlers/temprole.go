package handlers

import (
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"

	"sero/bot"
	"sero/cooldown"
	"sero/database"
	"sero/model"
)

const moderationCooldown = 10 * time.Second

// HandleTempRole grants a role for a limited time and records the grant so
// the expiration scanner can revert it.
func HandleTempRole(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	key := cooldown.Key{GuildID: i.GuildID, UserID: i.Member.User.ID, Tag: "temprole"}
	if !b.Cooldowns.Set(key, moderationCooldown) {
		respond(s, i, fmt.Sprintf("Slow down, try again in %d seconds.", b.Cooldowns.TimeLeft(key)))
		return
	}

	opts := optionMap(i)
	user := opts["user"].UserValue(s)
	role := opts["role"].RoleValue(s, i.GuildID)
	duration := int(opts["duration"].IntValue())
	reason := ""
	if opt, ok := opts["reason"]; ok {
		reason = opt.StringValue()
	}
	if duration <= 0 {
		respond(s, i, "Duration must be at least one minute.")
		return
	}

	if err := s.GuildMemberRoleAdd(i.GuildID, user.ID, role.ID); err != nil {
		b.Log.Error().Err(err).Str("guild_id", i.GuildID).Str("user_id", user.ID).
			Str("role_id", role.ID).Msg("failed to add temporary role")
		respond(s, i, "Could not assign the role.")
		return
	}

	grant := model.NewTemporaryGrant(i.GuildID, user.ID, model.GrantKindRole, role.ID, reason, duration)
	if err := database.AddGrant(b.DB, grant); err != nil {
		b.Log.Error().Err(err).Str("guild_id", i.GuildID).Str("user_id", user.ID).
			Msg("failed to record temporary role grant")
		respond(s, i, "Role assigned, but the expiry could not be recorded.")
		return
	}

	respond(s, i, fmt.Sprintf("Gave %s the %s role for %d minutes.", user.Username, role.Name, duration))
}

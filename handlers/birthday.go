package handlers

import (
	"fmt"

	"github.com/bwmarrin/discordgo"

	"sero/bot"
	"sero/database"
	"sero/model"
)

// HandleBirthday stores the calling member's birthday.
func HandleBirthday(s *discordgo.Session, i *discordgo.InteractionCreate, b *bot.Bot) {
	opts := optionMap(i)
	month := int(opts["month"].IntValue())
	day := int(opts["day"].IntValue())
	if month < 1 || month > 12 || day < 1 || day > 31 {
		respond(s, i, "That is not a valid date.")
		return
	}

	birthday := model.Birthday{
		GuildID: i.GuildID,
		UserID:  i.Member.User.ID,
		Month:   month,
		Day:     day,
	}
	if err := database.SetBirthday(b.DB, birthday); err != nil {
		b.Log.Error().Err(err).Str("guild_id", i.GuildID).Str("user_id", birthday.UserID).
			Msg("failed to store birthday")
		respond(s, i, "Could not save your birthday.")
		return
	}
	respond(s, i, fmt.Sprintf("Saved! You will be celebrated every %02d-%02d.", month, day))
}

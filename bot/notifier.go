package bot

import (
	"context"
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"sero/database"
	"sero/model"
	"sero/pubsub"
)

// Notifier consumes the distribution channels and posts announcements. The
// messages are idempotent only in effect (a duplicate event means a duplicate
// congratulation), which is acceptable for announcements.
type Notifier struct {
	session *discordgo.Session
	db      *sqlx.DB
	log     zerolog.Logger
}

func NewNotifier(session *discordgo.Session, db *sqlx.DB, log zerolog.Logger) *Notifier {
	return &Notifier{session: session, db: db, log: log}
}

func (n *Notifier) Register(sub *pubsub.Subscriber) {
	sub.OnBirthdayDue(n.handleBirthdayDue)
	sub.OnRewardDrop(n.handleRewardDrop)
	sub.OnLevelChanged(n.handleLevelChanged)
}

func (n *Notifier) handleBirthdayDue(ctx context.Context, ev model.BirthdayDue) error {
	mentions := make([]string, len(ev.UserIDs))
	for i, id := range ev.UserIDs {
		mentions[i] = fmt.Sprintf("<@%s>", id)
	}
	msg := fmt.Sprintf("🎂 Happy birthday %s!", strings.Join(mentions, ", "))
	return n.send(ctx, ev.ChannelID, ev.GuildID, msg)
}

func (n *Notifier) handleRewardDrop(ctx context.Context, ev model.RewardDrop) error {
	return n.send(ctx, ev.ChannelID, ev.GuildID, "🎁 A reward drop has appeared! Claim it while it lasts.")
}

func (n *Notifier) handleLevelChanged(ctx context.Context, ev model.LevelChanged) error {
	msg := fmt.Sprintf("<@%s> reached level %d, congrats!", ev.UserID, ev.Level)
	// level-changed carries no channel; look up the guild's configured level
	// channel and drop the event when there is none.
	setting, err := database.GetGuildSetting(n.db, ev.GuildID, model.SettingLevelChannel)
	if err != nil {
		n.log.Warn().Err(err).Str("guild_id", ev.GuildID).Msg("failed to load level channel setting")
		return err
	}
	if setting == nil {
		n.log.Debug().Str("guild_id", ev.GuildID).Msg("no level channel configured, dropping")
		return nil
	}
	return n.send(ctx, setting.TargetID, ev.GuildID, msg)
}

func (n *Notifier) send(ctx context.Context, channelID, guildID, msg string) error {
	if _, err := n.session.ChannelMessageSend(channelID, msg, discordgo.WithContext(ctx)); err != nil {
		n.log.Warn().Err(err).Str("guild_id", guildID).Str("channel_id", channelID).
			Msg("failed to send announcement")
		return err
	}
	return nil
}

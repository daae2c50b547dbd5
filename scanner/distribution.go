package scanner

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"sero/database"
	"sero/model"
	"sero/pubsub"
)

// BirthdayScanner publishes one birthday-due event per guild that has a
// birthday channel configured and at least one member celebrating today.
type BirthdayScanner struct {
	db  *sqlx.DB
	pub pubsub.Publisher
	log zerolog.Logger
}

func NewBirthdayScanner(db *sqlx.DB, pub pubsub.Publisher, log zerolog.Logger) *BirthdayScanner {
	return &BirthdayScanner{db: db, pub: pub, log: log}
}

func (b *BirthdayScanner) Run() {
	settings, err := database.GetSettingsByType(b.db, model.SettingBirthdayChannel)
	if err != nil {
		b.log.Error().Err(err).Msg("failed to load birthday channel settings")
		return
	}
	if len(settings) == 0 {
		return
	}

	birthdays, err := database.GetBirthdaysOn(b.db, time.Now().UTC())
	if err != nil {
		b.log.Error().Err(err).Msg("failed to load due birthdays")
		return
	}

	byGuild := make(map[string][]string)
	for _, bd := range birthdays {
		byGuild[bd.GuildID] = append(byGuild[bd.GuildID], bd.UserID)
	}

	ctx := context.Background()
	for _, setting := range settings {
		userIDs, ok := byGuild[setting.GuildID]
		if !ok {
			continue
		}
		ev := model.BirthdayDue{GuildID: setting.GuildID, ChannelID: setting.TargetID, UserIDs: userIDs}
		if err := b.pub.Publish(ctx, pubsub.ChannelBirthdayDue, ev); err != nil {
			b.log.Warn().Err(err).Str("guild_id", setting.GuildID).Msg("failed to publish birthday event")
		}
	}
}

// RewardDropScanner publishes one reward-drop-due event per guild with a
// reward channel configured.
type RewardDropScanner struct {
	db  *sqlx.DB
	pub pubsub.Publisher
	log zerolog.Logger
}

func NewRewardDropScanner(db *sqlx.DB, pub pubsub.Publisher, log zerolog.Logger) *RewardDropScanner {
	return &RewardDropScanner{db: db, pub: pub, log: log}
}

func (r *RewardDropScanner) Run() {
	settings, err := database.GetSettingsByType(r.db, model.SettingRewardChannel)
	if err != nil {
		r.log.Error().Err(err).Msg("failed to load reward channel settings")
		return
	}

	ctx := context.Background()
	for _, setting := range settings {
		ev := model.RewardDrop{GuildID: setting.GuildID, ChannelID: setting.TargetID}
		if err := r.pub.Publish(ctx, pubsub.ChannelRewardDropDue, ev); err != nil {
			r.log.Warn().Err(err).Str("guild_id", setting.GuildID).Msg("failed to publish reward drop event")
		}
	}
}

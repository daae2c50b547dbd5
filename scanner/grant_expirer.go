package scanner

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"sero/database"
	"sero/model"
	"sero/pubsub"
)

// GrantExpirer detects expired temporary grants of one kind and publishes an
// event per hit. It never deletes records: retirement is the reconciler's job
// after the compensating action is confirmed, so a tick that runs twice (or
// whose publishes partially fail) just re-emits the same facts.
type GrantExpirer struct {
	db   *sqlx.DB
	pub  pubsub.Publisher
	log  zerolog.Logger
	kind model.GrantKind
}

func NewGrantExpirer(db *sqlx.DB, pub pubsub.Publisher, log zerolog.Logger, kind model.GrantKind) *GrantExpirer {
	return &GrantExpirer{db: db, pub: pub, log: log, kind: kind}
}

func (e *GrantExpirer) channel() pubsub.Channel {
	if e.kind == model.GrantKindBan {
		return pubsub.ChannelBanExpired
	}
	return pubsub.ChannelRoleGrantExpired
}

// Run performs one tick. A publish failure for one record is logged and does
// not abort the rest of the batch.
func (e *GrantExpirer) Run() {
	grants, err := database.GetDueGrants(e.db, e.kind)
	if err != nil {
		e.log.Error().Err(err).Str("kind", string(e.kind)).Msg("failed to select due grants")
		return
	}
	if len(grants) == 0 {
		return
	}

	ctx := context.Background()
	published := 0
	for _, g := range grants {
		ev := model.GrantExpired{GuildID: g.GuildID, UserID: g.UserID, RoleID: g.RoleID}
		if err := e.pub.Publish(ctx, e.channel(), ev); err != nil {
			e.log.Warn().Err(err).
				Str("channel", e.channel().String()).
				Str("guild_id", g.GuildID).
				Str("user_id", g.UserID).
				Msg("failed to publish expired grant")
			continue
		}
		published++
	}
	e.log.Info().Str("kind", string(e.kind)).Int("due", len(grants)).Int("published", published).
		Msg("expiration scan complete")
}

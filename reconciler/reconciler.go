package reconciler

import (
	"context"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"sero/database"
	"sero/model"
	"sero/pubsub"
)

const defaultTimeout = 10 * time.Second

// Reconciler consumes expired-grant events, reverts the granted state through
// the directory, and retires the originating record. Delivery is
// at-least-once, so every step tolerates having already happened: a vanished
// subject counts as success and retiring a missing record is a no-op.
type Reconciler struct {
	db      *sqlx.DB
	dir     Directory
	log     zerolog.Logger
	timeout time.Duration
}

func New(db *sqlx.DB, dir Directory, log zerolog.Logger) *Reconciler {
	return &Reconciler{db: db, dir: dir, log: log, timeout: defaultTimeout}
}

// Register wires the reconciler onto the subscriber's grant channels.
func (r *Reconciler) Register(sub *pubsub.Subscriber) {
	sub.OnGrantExpired(pubsub.ChannelRoleGrantExpired, r.HandleRoleExpired)
	sub.OnGrantExpired(pubsub.ChannelBanExpired, r.HandleBanExpired)
}

// HandleRoleExpired removes the expired role and retires the grant record.
func (r *Reconciler) HandleRoleExpired(ctx context.Context, ev model.GrantExpired) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	log := r.log.With().
		Str("channel", pubsub.ChannelRoleGrantExpired.String()).
		Str("guild_id", ev.GuildID).
		Str("user_id", ev.UserID).
		Str("role_id", ev.RoleID).
		Logger()

	if err := r.resolve(ctx, ev, true); err != nil {
		return r.finish(log, ev, model.GrantKindRole, err)
	}
	err := r.dir.RemoveRole(ctx, ev.GuildID, ev.UserID, ev.RoleID)
	return r.finish(log, ev, model.GrantKindRole, err)
}

// HandleBanExpired lifts the expired ban and retires the grant record.
func (r *Reconciler) HandleBanExpired(ctx context.Context, ev model.GrantExpired) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	log := r.log.With().
		Str("channel", pubsub.ChannelBanExpired.String()).
		Str("guild_id", ev.GuildID).
		Str("user_id", ev.UserID).
		Logger()

	if err := r.dir.FetchGuild(ctx, ev.GuildID); err != nil {
		return r.finish(log, ev, model.GrantKindBan, err)
	}
	err := r.dir.Unban(ctx, ev.GuildID, ev.UserID)
	return r.finish(log, ev, model.GrantKindBan, err)
}

// resolve checks that the guild (and, for roles, the member) still exists.
func (r *Reconciler) resolve(ctx context.Context, ev model.GrantExpired, member bool) error {
	if err := r.dir.FetchGuild(ctx, ev.GuildID); err != nil {
		return err
	}
	if member {
		return r.dir.FetchMember(ctx, ev.GuildID, ev.UserID)
	}
	return nil
}

// finish classifies the revoke outcome and, when it is terminal, retires the
// record. NotFound is a success-equivalent terminal state; any other error
// leaves the record in place so the scanner's next tick retries it.
func (r *Reconciler) finish(log zerolog.Logger, ev model.GrantExpired, kind model.GrantKind, err error) error {
	switch {
	case err == nil:
		log.Info().Msg("revoked expired grant")
	case errors.Is(err, ErrNotFound):
		log.Info().Msg("subject gone, nothing to revoke")
	case errors.Is(err, ErrPermission):
		log.Error().Err(err).Msg("missing permission, grant retained for operator")
		return nil
	default:
		log.Warn().Err(err).Msg("revoke failed, grant retained until next scan")
		return err
	}

	if err := database.RetireGrantByDetails(r.db, ev.GuildID, ev.UserID, kind, ev.RoleID); err != nil {
		log.Error().Err(err).Msg("failed to retire grant record")
		return err
	}
	return nil
}

package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"sero/model"
)

// AddGrant inserts a new temporary grant. The partial unique indexes reject a
// second live grant for the same (guild, user, role) or (guild, user) ban.
func AddGrant(db *sqlx.DB, grant model.TemporaryGrant) error {
	query := `INSERT INTO temporary_grants
              (guild_id, user_id, grant_kind, role_id, reason, duration_minutes, expire_at, created_at)
              VALUES (:guild_id, :user_id, :grant_kind, :role_id, :reason, :duration_minutes, :expire_at, :created_at)`
	if _, err := db.NamedExec(query, grant); err != nil {
		return fmt.Errorf("failed to insert temporary grant: %w", err)
	}
	return nil
}

// GetDueGrants retrieves all live grants of the given kind whose expiry has
// passed. The selection is stable across ticks until the reconciler retires
// the record, so re-running it is safe.
func GetDueGrants(db *sqlx.DB, kind model.GrantKind) ([]model.TemporaryGrant, error) {
	var grants []model.TemporaryGrant
	query := `SELECT * FROM temporary_grants
              WHERE grant_kind = ? AND expire_at <= ? AND deleted_at IS NULL`
	if err := db.Select(&grants, query, kind, time.Now().UTC()); err != nil {
		return nil, fmt.Errorf("failed to get due grants: %w", err)
	}
	return grants, nil
}

// GetGrantsByGuild lists all live grants for one guild.
func GetGrantsByGuild(db *sqlx.DB, guildID string) ([]model.TemporaryGrant, error) {
	var grants []model.TemporaryGrant
	query := `SELECT * FROM temporary_grants WHERE guild_id = ? AND deleted_at IS NULL`
	if err := db.Select(&grants, query, guildID); err != nil {
		return nil, fmt.Errorf("failed to get grants for guild %s: %w", guildID, err)
	}
	return grants, nil
}

// RetireGrant soft-deletes a grant by id. Retiring an already-retired or
// missing grant is a no-op, not an error; the reconciler may process the same
// logical event more than once.
func RetireGrant(db *sqlx.DB, id int64) error {
	query := `UPDATE temporary_grants SET deleted_at = ? WHERE id = ? AND deleted_at IS NULL`
	if _, err := db.Exec(query, time.Now().UTC(), id); err != nil {
		return fmt.Errorf("failed to retire grant %d: %w", id, err)
	}
	return nil
}

// RetireGrantByDetails soft-deletes the live grant matching the event
// coordinates. Role grants match on role_id as well; bans ignore it. Zero
// matched rows is a no-op for the same reason as RetireGrant.
func RetireGrantByDetails(db *sqlx.DB, guildID, userID string, kind model.GrantKind, roleID string) error {
	var err error
	if kind == model.GrantKindRole {
		query := `UPDATE temporary_grants SET deleted_at = ?
                  WHERE guild_id = ? AND user_id = ? AND grant_kind = ? AND role_id = ? AND deleted_at IS NULL`
		_, err = db.Exec(query, time.Now().UTC(), guildID, userID, kind, roleID)
	} else {
		query := `UPDATE temporary_grants SET deleted_at = ?
                  WHERE guild_id = ? AND user_id = ? AND grant_kind = ? AND deleted_at IS NULL`
		_, err = db.Exec(query, time.Now().UTC(), guildID, userID, kind)
	}
	if err != nil {
		return fmt.Errorf("failed to retire grant for user %s in guild %s: %w", userID, guildID, err)
	}
	return nil
}

package database

import (
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"sero/model"
)

// SetBirthday creates or replaces a member's birthday.
func SetBirthday(db *sqlx.DB, b model.Birthday) error {
	query := `INSERT INTO birthdays (guild_id, user_id, month, day) VALUES (:guild_id, :user_id, :month, :day)
              ON CONFLICT(guild_id, user_id) DO UPDATE SET month = excluded.month, day = excluded.day`
	if _, err := db.NamedExec(query, b); err != nil {
		return fmt.Errorf("failed to set birthday for user %s in guild %s: %w", b.UserID, b.GuildID, err)
	}
	return nil
}

// GetBirthdaysOn returns every stored birthday falling on the given date.
func GetBirthdaysOn(db *sqlx.DB, t time.Time) ([]model.Birthday, error) {
	var birthdays []model.Birthday
	query := `SELECT * FROM birthdays WHERE month = ? AND day = ?`
	if err := db.Select(&birthdays, query, int(t.Month()), t.Day()); err != nil {
		return nil, fmt.Errorf("failed to get birthdays on %02d-%02d: %w", int(t.Month()), t.Day(), err)
	}
	return birthdays, nil
}

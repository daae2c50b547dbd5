package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sero/model"
)

// GetPrefix returns a guild's configured command prefix, or "" when the guild
// has no row yet.
func GetPrefix(db *sqlx.DB, guildID string) (string, error) {
	var prefix string
	err := db.Get(&prefix, `SELECT prefix FROM guild_configs WHERE guild_id = ?`, guildID)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get prefix for guild %s: %w", guildID, err)
	}
	return prefix, nil
}

// SetPrefix creates or replaces a guild's command prefix.
func SetPrefix(db *sqlx.DB, guildID, prefix string) error {
	query := `INSERT INTO guild_configs (guild_id, prefix) VALUES (?, ?)
              ON CONFLICT(guild_id) DO UPDATE SET prefix = excluded.prefix`
	if _, err := db.Exec(query, guildID, prefix); err != nil {
		return fmt.Errorf("failed to set prefix for guild %s: %w", guildID, err)
	}
	return nil
}

// ListCustomCommands returns all custom commands defined in one guild.
func ListCustomCommands(db *sqlx.DB, guildID string) ([]model.CustomCommand, error) {
	var cmds []model.CustomCommand
	query := `SELECT * FROM custom_commands WHERE guild_id = ?`
	if err := db.Select(&cmds, query, guildID); err != nil {
		return nil, fmt.Errorf("failed to list custom commands for guild %s: %w", guildID, err)
	}
	return cmds, nil
}

// AddCustomCommand creates or replaces a custom command.
func AddCustomCommand(db *sqlx.DB, cmd model.CustomCommand) error {
	query := `INSERT INTO custom_commands (guild_id, name, reply) VALUES (:guild_id, :name, :reply)
              ON CONFLICT(guild_id, name) DO UPDATE SET reply = excluded.reply`
	if _, err := db.NamedExec(query, cmd); err != nil {
		return fmt.Errorf("failed to add custom command %s in guild %s: %w", cmd.Name, cmd.GuildID, err)
	}
	return nil
}

// DeleteCustomCommand removes a custom command by name.
func DeleteCustomCommand(db *sqlx.DB, guildID, name string) error {
	query := `DELETE FROM custom_commands WHERE guild_id = ? AND name = ?`
	if _, err := db.Exec(query, guildID, name); err != nil {
		return fmt.Errorf("failed to delete custom command %s in guild %s: %w", name, guildID, err)
	}
	return nil
}

package database

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"sero/model"
)

// GetSettingsByType returns every guild's setting of one type, i.e. the set
// of guilds the distribution scanners should notify.
func GetSettingsByType(db *sqlx.DB, settingType model.SettingType) ([]model.GuildSetting, error) {
	var settings []model.GuildSetting
	query := `SELECT * FROM guild_settings WHERE type = ?`
	if err := db.Select(&settings, query, settingType); err != nil {
		return nil, fmt.Errorf("failed to get settings of type %s: %w", settingType, err)
	}
	return settings, nil
}

// GetGuildSetting returns one guild's setting of the given type, or
// (nil, nil) when the guild has none configured.
func GetGuildSetting(db *sqlx.DB, guildID string, settingType model.SettingType) (*model.GuildSetting, error) {
	var setting model.GuildSetting
	query := `SELECT * FROM guild_settings WHERE guild_id = ? AND type = ?`
	err := db.Get(&setting, query, guildID, settingType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get setting %s for guild %s: %w", settingType, guildID, err)
	}
	return &setting, nil
}

// UpsertGuildSetting creates or replaces a guild's setting of one type.
func UpsertGuildSetting(db *sqlx.DB, setting model.GuildSetting) error {
	query := `INSERT INTO guild_settings (guild_id, type, target_id) VALUES (:guild_id, :type, :target_id)
              ON CONFLICT(guild_id, type) DO UPDATE SET target_id = excluded.target_id`
	if _, err := db.NamedExec(query, setting); err != nil {
		return fmt.Errorf("failed to upsert setting %s for guild %s: %w", setting.Type, setting.GuildID, err)
	}
	return nil
}

package database

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// Init opens the sqlite database and ensures all tables exist.
func Init(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	schema := `
    CREATE TABLE IF NOT EXISTS temporary_grants (
        id INTEGER PRIMARY KEY AUTOINCREMENT,
        guild_id TEXT NOT NULL,
        user_id TEXT NOT NULL,
        grant_kind TEXT NOT NULL,
        role_id TEXT NOT NULL DEFAULT '',
        reason TEXT NOT NULL DEFAULT '',
        duration_minutes INTEGER NOT NULL,
        expire_at DATETIME NOT NULL,
        created_at DATETIME NOT NULL,
        deleted_at DATETIME
    );
    CREATE UNIQUE INDEX IF NOT EXISTS idx_grants_role
        ON temporary_grants(guild_id, user_id, role_id)
        WHERE grant_kind = 'role' AND deleted_at IS NULL;
    CREATE UNIQUE INDEX IF NOT EXISTS idx_grants_ban
        ON temporary_grants(guild_id, user_id)
        WHERE grant_kind = 'ban' AND deleted_at IS NULL;

    CREATE TABLE IF NOT EXISTS guild_settings (
        guild_id TEXT NOT NULL,
        type TEXT NOT NULL,
        target_id TEXT NOT NULL,
        PRIMARY KEY (guild_id, type)
    );

    CREATE TABLE IF NOT EXISTS guild_configs (
        guild_id TEXT NOT NULL PRIMARY KEY,
        prefix TEXT NOT NULL DEFAULT '!'
    );

    CREATE TABLE IF NOT EXISTS custom_commands (
        guild_id TEXT NOT NULL,
        name TEXT NOT NULL,
        reply TEXT NOT NULL,
        PRIMARY KEY (guild_id, name)
    );

    CREATE TABLE IF NOT EXISTS birthdays (
        guild_id TEXT NOT NULL,
        user_id TEXT NOT NULL,
        month INTEGER NOT NULL,
        day INTEGER NOT NULL,
        PRIMARY KEY (guild_id, user_id)
    );`

	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return db, nil
}

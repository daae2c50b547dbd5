package guildcache

import (
	"sync"

	"github.com/jmoiron/sqlx"

	"sero/database"
	"sero/model"
)

type entry struct {
	prefix    string
	hasPrefix bool
	commands  []model.CustomCommand
	hasCmds   bool
}

// Cache is the bot process's materialized view of mutable guild config. Each
// Load performs a full read from the database and replaces that guild's
// cached value wholesale; a miss means "not yet warmed", never an error.
// Reloading one guild is invisible to every other guild.
type Cache struct {
	db *sqlx.DB

	mu     sync.RWMutex
	guilds map[string]entry
}

func New(db *sqlx.DB) *Cache {
	return &Cache{db: db, guilds: make(map[string]entry)}
}

// LoadPrefix reads the guild's prefix from the database into the cache.
func (c *Cache) LoadPrefix(guildID string) error {
	prefix, err := database.GetPrefix(c.db, guildID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.guilds[guildID]
	e.prefix = prefix
	e.hasPrefix = true
	c.guilds[guildID] = e
	return nil
}

// LoadCustomCommands reads the guild's custom commands from the database into
// the cache, replacing whatever set was cached before.
func (c *Cache) LoadCustomCommands(guildID string) error {
	cmds, err := database.ListCustomCommands(c.db, guildID)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	e := c.guilds[guildID]
	e.commands = cmds
	e.hasCmds = true
	c.guilds[guildID] = e
	return nil
}

// GetPrefix returns the cached prefix; ok is false on a cold cache.
func (c *Cache) GetPrefix(guildID string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.guilds[guildID]
	if !ok || !e.hasPrefix {
		return "", false
	}
	return e.prefix, true
}

// GetCustomCommands returns the cached command set; ok is false on a cold
// cache.
func (c *Cache) GetCustomCommands(guildID string) ([]model.CustomCommand, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.guilds[guildID]
	if !ok || !e.hasCmds {
		return nil, false
	}
	return e.commands, true
}

// GetCustomCommand looks up one cached command by name.
func (c *Cache) GetCustomCommand(guildID, name string) (model.CustomCommand, bool) {
	cmds, ok := c.GetCustomCommands(guildID)
	if !ok {
		return model.CustomCommand{}, false
	}
	for _, cmd := range cmds {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return model.CustomCommand{}, false
}

package guildcache

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sero/database"
	"sero/model"
)

func testCache(t *testing.T) (*Cache, *sqlx.DB) {
	t.Helper()
	db, err := database.Init(":memory:")
	require.NoError(t, err)
	// a second pool connection would see a fresh empty :memory: database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return New(db), db
}

func TestColdCacheMisses(t *testing.T) {
	c, _ := testCache(t)

	_, ok := c.GetPrefix("g1")
	assert.False(t, ok)
	_, ok = c.GetCustomCommands("g1")
	assert.False(t, ok)
	_, ok = c.GetCustomCommand("g1", "hello")
	assert.False(t, ok)
}

func TestLoadReturnsMostRecentSet(t *testing.T) {
	c, db := testCache(t)
	require.NoError(t, database.AddCustomCommand(db, model.CustomCommand{GuildID: "g1", Name: "hello", Reply: "hi"}))
	require.NoError(t, c.LoadCustomCommands("g1"))

	cmds, ok := c.GetCustomCommands("g1")
	require.True(t, ok)
	require.Len(t, cmds, 1)
	assert.Equal(t, "hello", cmds[0].Name)

	// the cache stays stale until the next explicit reload
	require.NoError(t, database.AddCustomCommand(db, model.CustomCommand{GuildID: "g1", Name: "bye", Reply: "cya"}))
	cmds, _ = c.GetCustomCommands("g1")
	assert.Len(t, cmds, 1)

	require.NoError(t, c.LoadCustomCommands("g1"))
	cmds, _ = c.GetCustomCommands("g1")
	assert.Len(t, cmds, 2)
}

func TestGuildIsolation(t *testing.T) {
	c, db := testCache(t)
	require.NoError(t, database.AddCustomCommand(db, model.CustomCommand{GuildID: "gA", Name: "a", Reply: "1"}))
	require.NoError(t, database.AddCustomCommand(db, model.CustomCommand{GuildID: "gB", Name: "b", Reply: "2"}))
	require.NoError(t, c.LoadCustomCommands("gA"))
	require.NoError(t, c.LoadCustomCommands("gB"))

	require.NoError(t, database.DeleteCustomCommand(db, "gA", "a"))
	require.NoError(t, c.LoadCustomCommands("gA"))

	cmds, ok := c.GetCustomCommands("gA")
	require.True(t, ok)
	assert.Empty(t, cmds)

	// reloading gA must be invisible to gB
	cmds, ok = c.GetCustomCommands("gB")
	require.True(t, ok)
	require.Len(t, cmds, 1)
	assert.Equal(t, "b", cmds[0].Name)
}

func TestPrefixLoad(t *testing.T) {
	c, db := testCache(t)
	require.NoError(t, database.SetPrefix(db, "g1", "?"))
	require.NoError(t, c.LoadPrefix("g1"))

	prefix, ok := c.GetPrefix("g1")
	require.True(t, ok)
	assert.Equal(t, "?", prefix)

	// prefix load does not warm the command side of the entry
	_, ok = c.GetCustomCommands("g1")
	assert.False(t, ok)
}

func TestGetCustomCommandByName(t *testing.T) {
	c, db := testCache(t)
	require.NoError(t, database.AddCustomCommand(db, model.CustomCommand{GuildID: "g1", Name: "hello", Reply: "hi"}))
	require.NoError(t, c.LoadCustomCommands("g1"))

	cmd, ok := c.GetCustomCommand("g1", "hello")
	require.True(t, ok)
	assert.Equal(t, "hi", cmd.Reply)

	_, ok = c.GetCustomCommand("g1", "missing")
	assert.False(t, ok)
}

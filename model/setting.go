package model

// SettingType names a guild-scoped distribution target setting.
type SettingType string

const (
	SettingBirthdayChannel SettingType = "birthday-channel"
	SettingRewardChannel   SettingType = "reward-channel"
	SettingLevelChannel    SettingType = "level-channel"
)

// GuildSetting maps a setting type to a target channel for one guild. The
// distribution scanners read these to decide which guilds to notify; nothing
// in the scanners or consumers ever writes them.
type GuildSetting struct {
	GuildID  string      `db:"guild_id"`
	Type     SettingType `db:"type"`
	TargetID string      `db:"target_id"`
}

// CustomCommand is a guild-defined prefix command with a canned reply.
type CustomCommand struct {
	GuildID string `db:"guild_id"`
	Name    string `db:"name"`
	Reply   string `db:"reply"`
}

// Birthday records the month/day a guild member celebrates on.
type Birthday struct {
	GuildID string `db:"guild_id"`
	UserID  string `db:"user_id"`
	Month   int    `db:"month"`
	Day     int    `db:"day"`
}

package model

// Event payloads carried over the broker, one concrete type per channel so
// consumers never shape-sniff a decoded map.

// GrantExpired is published on role-grant-expired and ban-expired. RoleID is
// only set for role grants.
type GrantExpired struct {
	GuildID string `json:"guildId"`
	UserID  string `json:"userId"`
	RoleID  string `json:"roleId,omitempty"`
}

// BirthdayDue is published once per guild whose members celebrate today.
type BirthdayDue struct {
	GuildID   string   `json:"guildId"`
	ChannelID string   `json:"channelId"`
	UserIDs   []string `json:"userIds"`
}

// RewardDrop announces a reward drop in a guild's configured channel.
type RewardDrop struct {
	GuildID   string `json:"guildId"`
	ChannelID string `json:"channelId"`
}

// LevelChanged announces a member reaching a new level.
type LevelChanged struct {
	GuildID string `json:"guildId"`
	UserID  string `json:"userId"`
	Level   int    `json:"level"`
}

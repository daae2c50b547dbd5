package model

import "time"

// GrantKind distinguishes the two revocable grant types.
type GrantKind string

const (
	GrantKindRole GrantKind = "role"
	GrantKindBan  GrantKind = "ban"
)

// TemporaryGrant is a time-bounded state change (role grant or ban) that has
// already been applied to Discord and must be reverted once ExpireAt passes.
// RoleID is empty for ban grants.
type TemporaryGrant struct {
	ID              int64      `db:"id"`
	GuildID         string     `db:"guild_id"`
	UserID          string     `db:"user_id"`
	Kind            GrantKind  `db:"grant_kind"`
	RoleID          string     `db:"role_id"`
	Reason          string     `db:"reason"`
	DurationMinutes int        `db:"duration_minutes"`
	ExpireAt        time.Time  `db:"expire_at"`
	CreatedAt       time.Time  `db:"created_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

// NewTemporaryGrant builds a grant whose expiry is derived from its duration.
func NewTemporaryGrant(guildID, userID string, kind GrantKind, roleID, reason string, durationMinutes int) TemporaryGrant {
	now := time.Now().UTC()
	return TemporaryGrant{
		GuildID:         guildID,
		UserID:          userID,
		Kind:            kind,
		RoleID:          roleID,
		Reason:          reason,
		DurationMinutes: durationMinutes,
		ExpireAt:        now.Add(time.Duration(durationMinutes) * time.Minute),
		CreatedAt:       now,
	}
}

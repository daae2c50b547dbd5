package reconciler

import (
	"context"
	"errors"
	"fmt"

	"github.com/bwmarrin/discordgo"
)

var (
	// ErrNotFound means the guild, member, ban, or role no longer exists.
	// The reconciler treats it as "nothing left to revoke", not a failure.
	ErrNotFound = errors.New("reconciler: not found")
	// ErrPermission means the bot lacks the permission for the compensating
	// action. The record is retained for operator follow-up.
	ErrPermission = errors.New("reconciler: missing permission")
)

// Directory is the external API the reconciler resolves subjects through and
// issues compensating actions against. Implementations map their NotFound and
// permission failures onto the sentinels above.
type Directory interface {
	FetchGuild(ctx context.Context, guildID string) error
	FetchMember(ctx context.Context, guildID, userID string) error
	AddRole(ctx context.Context, guildID, userID, roleID string) error
	RemoveRole(ctx context.Context, guildID, userID, roleID string) error
	Unban(ctx context.Context, guildID, userID string) error
}

// DiscordDirectory implements Directory on a discordgo session.
type DiscordDirectory struct {
	session *discordgo.Session
}

func NewDiscordDirectory(session *discordgo.Session) *DiscordDirectory {
	return &DiscordDirectory{session: session}
}

func (d *DiscordDirectory) FetchGuild(ctx context.Context, guildID string) error {
	_, err := d.session.Guild(guildID, discordgo.WithContext(ctx))
	return mapError(err)
}

func (d *DiscordDirectory) FetchMember(ctx context.Context, guildID, userID string) error {
	_, err := d.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	return mapError(err)
}

func (d *DiscordDirectory) AddRole(ctx context.Context, guildID, userID, roleID string) error {
	return mapError(d.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)))
}

func (d *DiscordDirectory) RemoveRole(ctx context.Context, guildID, userID, roleID string) error {
	return mapError(d.session.GuildMemberRoleRemove(guildID, userID, roleID, discordgo.WithContext(ctx)))
}

func (d *DiscordDirectory) Unban(ctx context.Context, guildID, userID string) error {
	return mapError(d.session.GuildBanDelete(guildID, userID, discordgo.WithContext(ctx)))
}

func mapError(err error) error {
	if err == nil {
		return nil
	}
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Message != nil {
		switch restErr.Message.Code {
		case discordgo.ErrCodeUnknownGuild, discordgo.ErrCodeUnknownMember,
			discordgo.ErrCodeUnknownUser, discordgo.ErrCodeUnknownRole,
			discordgo.ErrCodeUnknownBan:
			return fmt.Errorf("%w: %v", ErrNotFound, err)
		case discordgo.ErrCodeMissingPermissions, discordgo.ErrCodeMissingAccess:
			return fmt.Errorf("%w: %v", ErrPermission, err)
		}
	}
	return err
}

package pubsub

import "errors"

// Channel names the broker channels this platform publishes on. The set is
// closed: Publish rejects anything else.
type Channel string

const (
	ChannelRoleGrantExpired Channel = "role-grant-expired"
	ChannelBanExpired       Channel = "ban-expired"
	ChannelBirthdayDue      Channel = "birthday-due"
	ChannelRewardDropDue    Channel = "reward-drop-due"
	ChannelLevelChanged     Channel = "level-changed"
)

var (
	ErrUnknownChannel    = errors.New("pubsub: unknown channel")
	ErrMalformedEnvelope = errors.New("pubsub: malformed envelope")
)

func (c Channel) String() string {
	return string(c)
}

// Valid reports whether c belongs to the closed channel set.
func (c Channel) Valid() bool {
	switch c {
	case ChannelRoleGrantExpired, ChannelBanExpired, ChannelBirthdayDue,
		ChannelRewardDropDue, ChannelLevelChanged:
		return true
	}
	return false
}

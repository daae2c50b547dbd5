package cooldown

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetRejectsLiveEntry(t *testing.T) {
	s := New()
	k := Key{GuildID: "g1", UserID: "u1", Tag: "temprole"}

	require.True(t, s.Set(k, 60*time.Second))
	first := s.TimeLeft(k)

	assert.False(t, s.Set(k, 60*time.Second), "second Set within the window must be rejected")
	assert.LessOrEqual(t, s.TimeLeft(k), first, "rejected Set must not extend the expiry")
}

func TestTimeLeftNonIncreasing(t *testing.T) {
	s := New()
	k := Key{GuildID: "g1", UserID: "u1", Tag: "tempban"}

	require.True(t, s.Set(k, 30*time.Second))
	a := s.TimeLeft(k)
	time.Sleep(10 * time.Millisecond)
	b := s.TimeLeft(k)
	assert.LessOrEqual(t, b, a)
}

func TestTimeLeftRoundsUp(t *testing.T) {
	s := New()
	k := Key{GuildID: "g1", UserID: "u1", Tag: "x"}

	require.True(t, s.Set(k, 1500*time.Millisecond))
	assert.Equal(t, 2, s.TimeLeft(k))
}

func TestExpiry(t *testing.T) {
	s := New()
	k := Key{GuildID: "g1", UserID: "u1", Tag: "x"}

	require.True(t, s.Set(k, 10*time.Millisecond))
	require.True(t, s.OnCooldown(k))

	time.Sleep(20 * time.Millisecond)
	assert.False(t, s.OnCooldown(k))
	assert.Zero(t, s.TimeLeft(k))
	assert.True(t, s.Set(k, time.Minute), "expired entry must be replaceable")
}

func TestKeysAreIndependent(t *testing.T) {
	s := New()
	require.True(t, s.Set(Key{"g1", "u1", "a"}, time.Minute))

	assert.False(t, s.OnCooldown(Key{"g1", "u1", "b"}))
	assert.False(t, s.OnCooldown(Key{"g1", "u2", "a"}))
	assert.False(t, s.OnCooldown(Key{"g2", "u1", "a"}))
}

func TestSweepDropsOnlyExpired(t *testing.T) {
	s := New()
	expired := Key{"g1", "u1", "a"}
	live := Key{"g1", "u1", "b"}
	require.True(t, s.Set(expired, time.Millisecond))
	require.True(t, s.Set(live, time.Minute))

	time.Sleep(5 * time.Millisecond)
	s.Sweep()

	s.mu.Lock()
	defer s.mu.Unlock()
	assert.NotContains(t, s.entries, expired)
	assert.Contains(t, s.entries, live)
}

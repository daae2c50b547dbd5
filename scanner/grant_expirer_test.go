package scanner

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sero/database"
	"sero/model"
	"sero/pubsub"
)

// recordingPublisher captures publishes and can fail the first n of them.
type recordingPublisher struct {
	mu       sync.Mutex
	events   map[pubsub.Channel][]any
	failNext int
}

func newRecordingPublisher() *recordingPublisher {
	return &recordingPublisher{events: make(map[pubsub.Channel][]any)}
}

func (p *recordingPublisher) Publish(ctx context.Context, ch pubsub.Channel, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failNext > 0 {
		p.failNext--
		return errors.New("broker unavailable")
	}
	p.events[ch] = append(p.events[ch], payload)
	return nil
}

func (p *recordingPublisher) published(ch pubsub.Channel) []any {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.events[ch]
}

func testDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := database.Init(":memory:")
	require.NoError(t, err)
	// a second pool connection would see a fresh empty :memory: database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func addExpired(t *testing.T, db *sqlx.DB, guildID, userID string, kind model.GrantKind, roleID string) {
	t.Helper()
	g := model.NewTemporaryGrant(guildID, userID, kind, roleID, "test", 60)
	g.ExpireAt = time.Now().UTC().Add(-time.Second)
	require.NoError(t, database.AddGrant(db, g))
}

func TestTickPublishesOneEventPerDueGrant(t *testing.T) {
	db := testDB(t)
	pub := newRecordingPublisher()
	e := NewGrantExpirer(db, pub, zerolog.Nop(), model.GrantKindRole)

	addExpired(t, db, "G1", "U1", model.GrantKindRole, "R1")
	addExpired(t, db, "G1", "U2", model.GrantKindRole, "R2")
	// not due yet
	require.NoError(t, database.AddGrant(db, model.NewTemporaryGrant("G1", "U3", model.GrantKindRole, "R3", "", 60)))
	// wrong kind
	addExpired(t, db, "G1", "U4", model.GrantKindBan, "")

	e.Run()

	events := pub.published(pubsub.ChannelRoleGrantExpired)
	require.Len(t, events, 2)
	assert.Contains(t, events, model.GrantExpired{GuildID: "G1", UserID: "U1", RoleID: "R1"})
	assert.Contains(t, events, model.GrantExpired{GuildID: "G1", UserID: "U2", RoleID: "R2"})
	assert.Empty(t, pub.published(pubsub.ChannelBanExpired))
}

func TestTickAfterReconciliationPublishesNothing(t *testing.T) {
	db := testDB(t)
	pub := newRecordingPublisher()
	e := NewGrantExpirer(db, pub, zerolog.Nop(), model.GrantKindRole)

	addExpired(t, db, "G1", "U1", model.GrantKindRole, "R1")
	e.Run()
	require.Len(t, pub.published(pubsub.ChannelRoleGrantExpired), 1)

	// the reconciler retires the record, the next tick finds nothing
	require.NoError(t, database.RetireGrantByDetails(db, "G1", "U1", model.GrantKindRole, "R1"))
	e.Run()
	assert.Len(t, pub.published(pubsub.ChannelRoleGrantExpired), 1)
}

func TestOverlappingTicksReEmit(t *testing.T) {
	db := testDB(t)
	pub := newRecordingPublisher()
	e := NewGrantExpirer(db, pub, zerolog.Nop(), model.GrantKindBan)

	addExpired(t, db, "G1", "U1", model.GrantKindBan, "")
	e.Run()
	e.Run()

	// duplicate events are the accepted cost of idempotent re-scanning
	assert.Len(t, pub.published(pubsub.ChannelBanExpired), 2)
}

func TestPublishFailureDoesNotAbortBatch(t *testing.T) {
	db := testDB(t)
	pub := newRecordingPublisher()
	pub.failNext = 1
	e := NewGrantExpirer(db, pub, zerolog.Nop(), model.GrantKindRole)

	addExpired(t, db, "G1", "U1", model.GrantKindRole, "R1")
	addExpired(t, db, "G1", "U2", model.GrantKindRole, "R2")

	e.Run()
	require.Len(t, pub.published(pubsub.ChannelRoleGrantExpired), 1, "remaining records still publish")

	// the failed record is still due, so the next tick re-emits it
	e.Run()
	assert.Len(t, pub.published(pubsub.ChannelRoleGrantExpired), 3)
}

func TestBirthdayScanner(t *testing.T) {
	db := testDB(t)
	pub := newRecordingPublisher()
	s := NewBirthdayScanner(db, pub, zerolog.Nop())

	today := time.Now().UTC()
	require.NoError(t, database.SetBirthday(db, model.Birthday{GuildID: "G1", UserID: "U1", Month: int(today.Month()), Day: today.Day()}))
	require.NoError(t, database.SetBirthday(db, model.Birthday{GuildID: "G2", UserID: "U2", Month: int(today.Month()), Day: today.Day()}))
	// only G1 has a birthday channel configured
	require.NoError(t, database.UpsertGuildSetting(db, model.GuildSetting{GuildID: "G1", Type: model.SettingBirthdayChannel, TargetID: "C1"}))

	s.Run()

	events := pub.published(pubsub.ChannelBirthdayDue)
	require.Len(t, events, 1)
	assert.Equal(t, model.BirthdayDue{GuildID: "G1", ChannelID: "C1", UserIDs: []string{"U1"}}, events[0])
}

func TestRewardDropScanner(t *testing.T) {
	db := testDB(t)
	pub := newRecordingPublisher()
	s := NewRewardDropScanner(db, pub, zerolog.Nop())

	require.NoError(t, database.UpsertGuildSetting(db, model.GuildSetting{GuildID: "G1", Type: model.SettingRewardChannel, TargetID: "C1"}))
	require.NoError(t, database.UpsertGuildSetting(db, model.GuildSetting{GuildID: "G2", Type: model.SettingBirthdayChannel, TargetID: "C2"}))

	s.Run()

	events := pub.published(pubsub.ChannelRewardDropDue)
	require.Len(t, events, 1)
	assert.Equal(t, model.RewardDrop{GuildID: "G1", ChannelID: "C1"}, events[0])
}

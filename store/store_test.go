package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gissleh/ircstate"
	"github.com/gissleh/ircstate/store"
)

func openStore(t *testing.T) *store.Store {
	t.Helper()

	s, err := store.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s
}

func testSnapshot(t *testing.T, taken time.Time) *ircstate.Snapshot {
	t.Helper()

	server := ircstate.NewServer(ircstate.Config{
		Name:  "Example",
		Clock: func() time.Time { return taken },
	})

	lines := []string{
		"CAP * LS :away-notify extended-join",
		"CAP * ACK :away-notify extended-join",
		"001 Test768",
		"005 Test768 NETWORK=ExampleNet PREFIX=(qaohv)~&@%+ :are supported",
		":Test768!~test@127.0.0.1 JOIN #Test * :Test User",
		"353 Test768 = #Test :Test768 @Op!op@example.com +Voice",
		"MODE #Test +ntkl secret 50",
		"332 Test768 #Test :Welcome",
		":Op!op@example.com AWAY :brb",
	}
	for _, line := range lines {
		_, err := server.DispatchLine(line)
		require.NoError(t, err, line)
	}

	return server.Snapshot()
}

func TestStore_SaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	taken := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	snapshot := testSnapshot(t, taken)

	id, err := s.Save(ctx, snapshot)
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	loaded, err := s.Load(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, loaded.ID)
	assert.Equal(t, "Test768", loaded.Nick)
	assert.Equal(t, []string{"away-notify", "extended-join"}, loaded.Caps)
	require.Len(t, loaded.Channels, 1)
	assert.Equal(t, "Welcome", loaded.Channels[0].Topic)
	assert.Equal(t, "secret", loaded.Channels[0].Modes["k"])
	assert.Len(t, loaded.Users, 3)

	record, err := s.Latest(ctx, "Example")
	require.NoError(t, err)
	assert.Equal(t, id, record.ID)
	assert.Equal(t, "ExampleNet", record.Network)
	assert.Equal(t, "~test", record.Username)
	assert.Equal(t, "Test User", record.Realname)
	assert.Equal(t, "away-notify extended-join", record.Caps)
	assert.True(t, record.Registered)
	assert.True(t, taken.Equal(record.Taken))

	_, err = s.Load(ctx, "nope")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestStore_Rows(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	taken := time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC)
	id, err := s.Save(ctx, testSnapshot(t, taken))
	require.NoError(t, err)

	channels, err := s.Channels(ctx, id)
	require.NoError(t, err)
	require.Len(t, channels, 1)
	assert.Equal(t, "#Test", channels[0].Name)
	assert.Equal(t, "+klnt secret 50", channels[0].Modes)
	assert.Equal(t, 3, channels[0].MemberCount)

	members, err := s.Members(ctx, id, "#Test")
	require.NoError(t, err)
	require.Len(t, members, 3)
	assert.Equal(t, "Op", members[0].Nick)
	assert.Equal(t, "o", members[0].Modes)
	assert.Equal(t, "Voice", members[1].Nick)
	assert.Equal(t, "Test768", members[2].Nick)
	assert.True(t, taken.Equal(members[2].Joined))
	assert.True(t, members[0].Joined.IsZero())

	users, err := s.Users(ctx, id)
	require.NoError(t, err)
	require.Len(t, users, 3)
	assert.Equal(t, "Op", users[0].Nick)
	assert.True(t, users[0].Away)
	assert.Equal(t, "brb", users[0].AwayMessage)
	assert.Equal(t, "op", users[0].Username)
}

func TestStore_Replace(t *testing.T) {
	ctx := context.Background()
	s := openStore(t)

	first := testSnapshot(t, time.Date(2021, 6, 1, 12, 0, 0, 0, time.UTC))
	first.ID = "session-1"
	_, err := s.Save(ctx, first)
	require.NoError(t, err)

	second := testSnapshot(t, time.Date(2021, 6, 1, 13, 0, 0, 0, time.UTC))
	second.ID = "session-1"
	second.Channels = nil
	id, err := s.Save(ctx, second)
	require.NoError(t, err)
	assert.Equal(t, "session-1", id)

	snapshots, err := s.Snapshots(ctx, "Example")
	require.NoError(t, err)
	require.Len(t, snapshots, 1)

	channels, err := s.Channels(ctx, id)
	require.NoError(t, err)
	assert.Empty(t, channels)

	require.NoError(t, s.Delete(ctx, id))
	_, err = s.Latest(ctx, "Example")
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestFormatModes(t *testing.T) {
	assert.Equal(t, "", store.FormatModes(nil))
	assert.Equal(t, "+i", store.FormatModes(map[string]string{"i": ""}))
	assert.Equal(t, "+ikl key 10", store.FormatModes(map[string]string{"l": "10", "i": "", "k": "key"}))
}

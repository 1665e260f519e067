// Package store keeps snapshots in a SQLite database, so that the state of
// a session can be looked at after the tracker is gone.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"

	"github.com/gissleh/ircstate"
)

// ErrNotFound is returned when there is no snapshot by the ID.
var ErrNotFound = errors.New("store: snapshot not found")

// Store handles database operations
type Store struct {
	db     *sqlx.DB
	logger zerolog.Logger
}

// Open opens the database and runs the migrations. The DSN is a file path,
// or ":memory:" for a database that's gone when the store is closed.
func Open(dsn string, logger zerolog.Logger) (*Store, error) {
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection, since every connection to :memory: is its own database.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	return &Store{db: db, logger: logger}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save stores the snapshot, replacing any snapshot with the same ID. A
// snapshot without an ID gets a new one. It returns the ID.
func (s *Store) Save(ctx context.Context, snapshot *ircstate.Snapshot) (string, error) {
	id := snapshot.ID
	if id == "" {
		id = uuid.NewString()
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}

	record := SnapshotRecord{
		ID:          id,
		Name:        snapshot.Name,
		Nick:        snapshot.Nick,
		Username:    snapshot.User,
		Hostname:    snapshot.Host,
		Realname:    snapshot.Realname,
		Account:     snapshot.Account,
		Away:        snapshot.Away,
		AwayMessage: snapshot.AwayMessage,
		IsOper:      snapshot.IsOper,
		Registered:  snapshot.Registered,
		Modes:       snapshot.Modes,
		Caps:        strings.Join(snapshot.Caps, " "),
		Taken:       snapshot.Taken,
		Data:        string(data),
	}
	if snapshot.ISupport != nil {
		record.Network = snapshot.ISupport.Network
	}

	channels := make([]ChannelRecord, 0, len(snapshot.Channels))
	members := make([]MemberRecord, 0, 64)
	for _, channel := range snapshot.Channels {
		channels = append(channels, ChannelRecord{
			SnapshotID:  id,
			Name:        channel.Name,
			Topic:       channel.Topic,
			TopicSetter: channel.TopicSetter,
			TopicTime:   channel.TopicTime,
			Created:     channel.Created,
			Modes:       FormatModes(channel.Modes),
			MemberCount: len(channel.Members),
		})

		for i, member := range channel.Members {
			members = append(members, MemberRecord{
				SnapshotID: id,
				Channel:    channel.Name,
				Nick:       member.Nick,
				Modes:      member.Modes,
				Position:   i,
				Since:      member.Since,
				Joined:     member.Joined,
			})
		}
	}

	users := make([]UserRecord, 0, len(snapshot.Users))
	for _, user := range snapshot.Users {
		users = append(users, UserRecord{
			SnapshotID:  id,
			Nick:        user.Name.Normal,
			Username:    user.Username,
			Hostname:    user.Hostname,
			Realname:    user.Realname,
			Account:     user.Account,
			Server:      user.Server,
			Away:        user.Away,
			AwayMessage: user.AwayMessage,
			IP:          user.IP,
			IsOper:      user.IsOper,
		})
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteSnapshot(ctx, tx, id); err != nil {
		return "", err
	}

	query := `INSERT INTO snapshots (id, name, network, nick, username, hostname, realname, account, away, away_message, is_oper, registered, modes, caps, taken, data)
	          VALUES (:id, :name, :network, :nick, :username, :hostname, :realname, :account, :away, :away_message, :is_oper, :registered, :modes, :caps, :taken, :data)`
	if _, err := tx.NamedExecContext(ctx, query, record); err != nil {
		return "", fmt.Errorf("failed to insert snapshot: %w", err)
	}

	// Batch inserts fail on empty slices.
	if len(channels) > 0 {
		query := `INSERT INTO channels (snapshot_id, name, topic, topic_setter, topic_time, created, modes, member_count)
		          VALUES (:snapshot_id, :name, :topic, :topic_setter, :topic_time, :created, :modes, :member_count)`
		if _, err := tx.NamedExecContext(ctx, query, channels); err != nil {
			return "", fmt.Errorf("failed to insert channels: %w", err)
		}
	}
	if len(members) > 0 {
		query := `INSERT INTO members (snapshot_id, channel, nick, modes, position, since, joined)
		          VALUES (:snapshot_id, :channel, :nick, :modes, :position, :since, :joined)`
		if _, err := tx.NamedExecContext(ctx, query, members); err != nil {
			return "", fmt.Errorf("failed to insert members: %w", err)
		}
	}
	if len(users) > 0 {
		query := `INSERT INTO users (snapshot_id, nick, username, hostname, realname, account, server, away, away_message, ip, is_oper)
		          VALUES (:snapshot_id, :nick, :username, :hostname, :realname, :account, :server, :away, :away_message, :ip, :is_oper)`
		if _, err := tx.NamedExecContext(ctx, query, users); err != nil {
			return "", fmt.Errorf("failed to insert users: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}

	s.logger.Debug().
		Str("snapshot", id).
		Int("channels", len(channels)).
		Int("users", len(users)).
		Msg("Saved snapshot")

	return id, nil
}

// Load gets a saved snapshot as it was saved.
func (s *Store) Load(ctx context.Context, id string) (*ircstate.Snapshot, error) {
	var data string
	err := s.db.GetContext(ctx, &data, "SELECT data FROM snapshots WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	snapshot := &ircstate.Snapshot{}
	if err := json.Unmarshal([]byte(data), snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot %s: %w", id, err)
	}
	snapshot.ID = id

	return snapshot, nil
}

// Snapshots lists the saved snapshots of a session, newest first.
func (s *Store) Snapshots(ctx context.Context, name string) ([]SnapshotRecord, error) {
	var snapshots []SnapshotRecord
	err := s.db.SelectContext(ctx, &snapshots, "SELECT * FROM snapshots WHERE name = ? ORDER BY taken DESC", name)
	return snapshots, err
}

// Latest gets the newest snapshot of a session.
func (s *Store) Latest(ctx context.Context, name string) (*SnapshotRecord, error) {
	var snapshot SnapshotRecord
	err := s.db.GetContext(ctx, &snapshot, "SELECT * FROM snapshots WHERE name = ? ORDER BY taken DESC LIMIT 1", name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, err
	}

	return &snapshot, nil
}

// Channels gets the channels of a snapshot, ordered by name.
func (s *Store) Channels(ctx context.Context, id string) ([]ChannelRecord, error) {
	var channels []ChannelRecord
	err := s.db.SelectContext(ctx, &channels, "SELECT * FROM channels WHERE snapshot_id = ? ORDER BY name", id)
	return channels, err
}

// Members gets the members of a channel in a snapshot, in member list order.
func (s *Store) Members(ctx context.Context, id, channel string) ([]MemberRecord, error) {
	var members []MemberRecord
	err := s.db.SelectContext(ctx, &members,
		"SELECT * FROM members WHERE snapshot_id = ? AND channel = ? ORDER BY position", id, channel)
	return members, err
}

// Users gets the users of a snapshot, ordered by nick.
func (s *Store) Users(ctx context.Context, id string) ([]UserRecord, error) {
	var users []UserRecord
	err := s.db.SelectContext(ctx, &users, "SELECT * FROM users WHERE snapshot_id = ? ORDER BY nick", id)
	return users, err
}

// Delete removes a snapshot. Deleting a missing snapshot is not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if err := deleteSnapshot(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit()
}

func deleteSnapshot(ctx context.Context, tx *sqlx.Tx, id string) error {
	for _, table := range []string{"members", "users", "channels"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE snapshot_id = ?", id); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	_, err := tx.ExecContext(ctx, "DELETE FROM snapshots WHERE id = ?", id)
	return err
}

// FormatModes formats channel modes as a mode string followed by the
// arguments, e.g. "+ikl key 10". Modes are sorted by letter.
func FormatModes(modes map[string]string) string {
	if len(modes) == 0 {
		return ""
	}

	letters := make([]string, 0, len(modes))
	for mode := range modes {
		letters = append(letters, mode)
	}
	sort.Strings(letters)

	result := "+" + strings.Join(letters, "")
	for _, mode := range letters {
		if arg := modes[mode]; arg != "" {
			result += " " + arg
		}
	}

	return result
}

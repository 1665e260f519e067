package store

import (
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Migrate creates the tables if they don't exist.
func Migrate(db *sqlx.DB) error {
	migrations := []string{
		createSnapshotsTable,
		createChannelsTable,
		createMembersTable,
		createUsersTable,
		createIndexes,
	}

	for i, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	return nil
}

const createSnapshotsTable = `
CREATE TABLE IF NOT EXISTS snapshots (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    network TEXT NOT NULL DEFAULT '',
    nick TEXT NOT NULL DEFAULT '',
    username TEXT NOT NULL DEFAULT '',
    hostname TEXT NOT NULL DEFAULT '',
    realname TEXT NOT NULL DEFAULT '',
    account TEXT NOT NULL DEFAULT '',
    away BOOLEAN NOT NULL DEFAULT 0,
    away_message TEXT NOT NULL DEFAULT '',
    is_oper BOOLEAN NOT NULL DEFAULT 0,
    registered BOOLEAN NOT NULL DEFAULT 0,
    modes TEXT NOT NULL DEFAULT '',
    caps TEXT NOT NULL DEFAULT '',
    taken TIMESTAMP NOT NULL,
    data TEXT NOT NULL
);
`

const createChannelsTable = `
CREATE TABLE IF NOT EXISTS channels (
    snapshot_id TEXT NOT NULL,
    name TEXT NOT NULL,
    topic TEXT NOT NULL DEFAULT '',
    topic_setter TEXT NOT NULL DEFAULT '',
    topic_time TIMESTAMP,
    created TIMESTAMP,
    modes TEXT NOT NULL DEFAULT '',
    member_count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (snapshot_id, name),
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);
`

const createMembersTable = `
CREATE TABLE IF NOT EXISTS members (
    snapshot_id TEXT NOT NULL,
    channel TEXT NOT NULL,
    nick TEXT NOT NULL,
    modes TEXT NOT NULL DEFAULT '',
    position INTEGER NOT NULL,
    since TIMESTAMP,
    joined TIMESTAMP,
    PRIMARY KEY (snapshot_id, channel, nick),
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);
`

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    snapshot_id TEXT NOT NULL,
    nick TEXT NOT NULL,
    username TEXT NOT NULL DEFAULT '',
    hostname TEXT NOT NULL DEFAULT '',
    realname TEXT NOT NULL DEFAULT '',
    account TEXT NOT NULL DEFAULT '',
    server TEXT NOT NULL DEFAULT '',
    away BOOLEAN NOT NULL DEFAULT 0,
    away_message TEXT NOT NULL DEFAULT '',
    ip TEXT NOT NULL DEFAULT '',
    is_oper BOOLEAN NOT NULL DEFAULT 0,
    PRIMARY KEY (snapshot_id, nick),
    FOREIGN KEY (snapshot_id) REFERENCES snapshots(id) ON DELETE CASCADE
);
`

const createIndexes = `
CREATE INDEX IF NOT EXISTS idx_snapshots_name_taken ON snapshots(name, taken);
CREATE INDEX IF NOT EXISTS idx_members_nick ON members(snapshot_id, nick);
`

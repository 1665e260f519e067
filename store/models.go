package store

import "time"

// SnapshotRecord is the summary row of a saved snapshot.
type SnapshotRecord struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Network     string    `db:"network" json:"network"`
	Nick        string    `db:"nick" json:"nick"`
	Username    string    `db:"username" json:"username"`
	Hostname    string    `db:"hostname" json:"hostname"`
	Realname    string    `db:"realname" json:"realname"`
	Account     string    `db:"account" json:"account"`
	Away        bool      `db:"away" json:"away"`
	AwayMessage string    `db:"away_message" json:"away_message"`
	IsOper      bool      `db:"is_oper" json:"is_oper"`
	Registered  bool      `db:"registered" json:"registered"`
	Modes       string    `db:"modes" json:"modes"`
	Caps        string    `db:"caps" json:"caps"` // Space separated
	Taken       time.Time `db:"taken" json:"taken"`
	Data        string    `db:"data" json:"-"`
}

// ChannelRecord is a channel of a saved snapshot.
type ChannelRecord struct {
	SnapshotID  string    `db:"snapshot_id" json:"snapshot_id"`
	Name        string    `db:"name" json:"name"`
	Topic       string    `db:"topic" json:"topic"`
	TopicSetter string    `db:"topic_setter" json:"topic_setter"`
	TopicTime   time.Time `db:"topic_time" json:"topic_time"`
	Created     time.Time `db:"created" json:"created"`
	Modes       string    `db:"modes" json:"modes"` // e.g. "+kl key 10"
	MemberCount int       `db:"member_count" json:"member_count"`
}

// MemberRecord is a user's membership of a channel in a saved snapshot.
type MemberRecord struct {
	SnapshotID string    `db:"snapshot_id" json:"snapshot_id"`
	Channel    string    `db:"channel" json:"channel"`
	Nick       string    `db:"nick" json:"nick"`
	Modes      string    `db:"modes" json:"modes"`
	Position   int       `db:"position" json:"position"`
	Since      time.Time `db:"since" json:"since"`
	Joined     time.Time `db:"joined" json:"joined"`
}

// UserRecord is a user of a saved snapshot.
type UserRecord struct {
	SnapshotID  string `db:"snapshot_id" json:"snapshot_id"`
	Nick        string `db:"nick" json:"nick"`
	Username    string `db:"username" json:"username"`
	Hostname    string `db:"hostname" json:"hostname"`
	Realname    string `db:"realname" json:"realname"`
	Account     string `db:"account" json:"account"`
	Server      string `db:"server" json:"server"`
	Away        bool   `db:"away" json:"away"`
	AwayMessage string `db:"away_message" json:"away_message"`
	IP          string `db:"ip" json:"ip"`
	IsOper      bool   `db:"is_oper" json:"is_oper"`
}

package ircstate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gissleh/ircstate"
)

type messageTestRow struct {
	Data    string
	Source  string
	Command string
	Params  []string
	Tags    map[string]string
}

var messageTestTable = []messageTestRow{
	{":test.server PING Test", "test.server", "PING", []string{"Test"}, nil},
	{":test.server PING :Test", "test.server", "PING", []string{"Test"}, nil},
	{":test.server 001 Tester :Welcome to the network\r\n", "test.server", "001", []string{"Tester", "Welcome to the network"}, nil},
	{"privmsg #Test :lower case", "", "PRIVMSG", []string{"#Test", "lower case"}, nil},
	{":Test2!test@test.example.com PRIVMSG Tester :\x01ACTION hello to you.\x01", "Test2!test@test.example.com", "PRIVMSG", []string{"Tester", "\x01ACTION hello to you.\x01"}, nil},
	{"@account=Hunter2;solanum.chat/oper=derg :Hunter2!~test2@172.17.37.1 PRIVMSG #Test :Hello World.", "Hunter2!~test2@172.17.37.1", "PRIVMSG", []string{"#Test", "Hello World."}, map[string]string{"account": "Hunter2", "solanum.chat/oper": "derg"}},
	{":Beans!beans@beans.example.com PRIVMSG Stuff :((Remove :01 goofs!*))", "Beans!beans@beans.example.com", "PRIVMSG", []string{"Stuff", "((Remove :01 goofs!*))"}, nil},
}

func TestParseMessage(t *testing.T) {
	for _, row := range messageTestTable {
		t.Run(row.Data, func(t *testing.T) {
			msg, err := ircstate.ParseMessage(row.Data)
			require.NoError(t, err)

			assert.Equal(t, row.Source, msg.Source, "source")
			assert.Equal(t, row.Command, msg.Command, "command")
			assert.Equal(t, row.Params, msg.Params, "params")
			if row.Tags == nil {
				assert.Empty(t, msg.Tags, "tags")
			} else {
				assert.Equal(t, row.Tags, msg.Tags, "tags")
			}
		})
	}
}

func TestParseMessage_Empty(t *testing.T) {
	_, err := ircstate.ParseMessage("")
	assert.Error(t, err)
}

func TestMessage_Hostmask(t *testing.T) {
	msg, err := ircstate.ParseMessage(":Test768!~Tester@127.0.0.1 JOIN #Test")
	require.NoError(t, err)

	hostmask := msg.Hostmask()
	assert.Equal(t, "Test768", hostmask.Name)
	assert.Equal(t, "~Tester", hostmask.User)
	assert.Equal(t, "127.0.0.1", hostmask.Host)
	assert.Equal(t, "Test768", msg.Nick())
	assert.Equal(t, "#Test", msg.Param(0))
	assert.Equal(t, "", msg.Param(1))
	assert.Equal(t, "", msg.Param(-1))
}

func TestMessage_HostmaskForms(t *testing.T) {
	table := []struct {
		Source string
		Nick   string
		User   string
		Host   string
	}{
		{"nick!user@host", "nick", "user", "host"},
		{"nick@host", "nick", "", "host"},
		{"nick!user", "nick", "user", ""},
		{"nick", "nick", "", ""},
		{"irc.example.com", "irc.example.com", "", ""},
		{"nick!~user@2001:db8::1", "nick", "~user", "2001:db8::1"},
		{"", "", "", ""},
	}

	for _, row := range table {
		t.Run(row.Source, func(t *testing.T) {
			msg := ircstate.Message{Source: row.Source, Command: "PRIVMSG"}
			hostmask := msg.Hostmask()

			assert.Equal(t, row.Nick, hostmask.Name)
			assert.Equal(t, row.User, hostmask.User)
			assert.Equal(t, row.Host, hostmask.Host)
			assert.Equal(t, row.Source, hostmask.Canonical())
			assert.Equal(t, row.Nick, msg.Nick())
		})
	}
}

func TestMessage_Line(t *testing.T) {
	msg := ircstate.NewMessage("PRIVMSG", "#Test", "Hello, World")
	line, err := msg.Line()
	require.NoError(t, err)
	assert.Equal(t, "PRIVMSG #Test :Hello, World", line)

	msg = ircstate.NewMessage("JOIN", "#Test")
	line, err = msg.Line()
	require.NoError(t, err)
	assert.Equal(t, "JOIN #Test", line)
}

func TestNumericName(t *testing.T) {
	assert.Equal(t, "RPL_WELCOME", ircstate.NumericName("001"))
	assert.Equal(t, "RPL_WHOSPCRPL", ircstate.NumericName("354"))
	assert.Equal(t, "999", ircstate.NumericName("999"))
}

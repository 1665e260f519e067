package irctest

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gissleh/ircstate"
)

// AssertMemberlist compares the channel's members to a list of prefixed nicks
func AssertMemberlist(t *testing.T, channel *ircstate.Channel, assertedOrder ...string) error {
	members := channel.Members()
	order := make([]string, 0, len(members))
	for _, member := range members {
		order = append(order, member.PrefixedNick)
	}

	orderA := strings.Join(order, ", ")
	orderB := strings.Join(assertedOrder, ", ")

	if !assert.Equal(t, orderB, orderA, "member list") {
		return errors.New("member lists do not match")
	}

	return nil
}

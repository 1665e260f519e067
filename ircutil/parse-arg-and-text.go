package ircutil

import (
	"strings"
)

// ParseArgAndText parses a text like "#Channel stuff and things" into "#Channel"
// and "stuff and things". WHO replies use this layout for the hop count and
// realname in their last parameter.
func ParseArgAndText(s string) (arg, text string) {
	spaceIndex := strings.Index(s, " ")
	if spaceIndex == -1 {
		return s, ""
	}

	return s[:spaceIndex], s[spaceIndex+1:]
}

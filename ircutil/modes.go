package ircutil

// A ModeChange is a single letter from a mode string along with the
// modifier in effect for it.
type ModeChange struct {
	Add  bool
	Mode rune
}

// ParseModeString splits a mode string like "+im-k" into changes. Letters
// before any modifier count as added.
func ParseModeString(s string) []ModeChange {
	changes := make([]ModeChange, 0, len(s))
	add := true

	for _, ch := range s {
		switch ch {
		case '+':
			add = true
		case '-':
			add = false
		default:
			changes = append(changes, ModeChange{Add: add, Mode: ch})
		}
	}

	return changes
}

// String formats the change as its modifier and letter, e.g. "-k".
func (change ModeChange) String() string {
	if change.Add {
		return "+" + string(change.Mode)
	}

	return "-" + string(change.Mode)
}

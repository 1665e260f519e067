package list

import (
	"sort"
	"strings"
	"sync"

	"github.com/gissleh/ircstate/isupport"
)

// The List of members in a channel. Members are keyed by their folded nick,
// using the casemapping of the ISupport, and are kept sorted by rank and then
// by nick.
type List struct {
	mutex    sync.RWMutex
	isupport *isupport.ISupport
	members  []*Member
	index    map[string]*Member
	autosort bool
}

// New creates a new list with the ISupport.
func New(isupport *isupport.ISupport) *List {
	return &List{
		isupport: isupport,
		members:  make([]*Member, 0, 16),
		index:    make(map[string]*Member, 16),
		autosort: true,
	}
}

// Insert a member. Modes and prefixes will be cleaned up before insertion,
// and the key is computed from the nick if it is not set.
func (list *List) Insert(member Member) (ok bool) {
	if member.Key == "" {
		member.Key = list.isupport.Fold(member.Nick)
	}
	list.normalize(&member)

	list.mutex.Lock()
	defer list.mutex.Unlock()

	if list.index[member.Key] != nil {
		return false
	}

	list.members = append(list.members, &member)
	list.index[member.Key] = &member

	if list.autosort {
		list.sort()
	}

	return true
}

// AddMode adds a mode to a member. Redundant modes will be ignored. It returns true if
// the member can be found, even if the mode was redundant.
func (list *List) AddMode(nick string, mode rune) (ok bool) {
	if !list.isupport.IsPermissionMode(mode) {
		return false
	}

	list.mutex.Lock()
	defer list.mutex.Unlock()

	member := list.index[list.isupport.Fold(nick)]
	if member == nil {
		return false
	}
	if strings.ContainsRune(member.Modes, mode) {
		return true
	}

	prevHighest := member.HighestMode()
	member.Modes = list.isupport.SortModes(member.Modes + string(mode))
	member.Prefixes = list.isupport.Prefixes(member.Modes)
	member.updatePrefixedNick()

	// Only sort if the new mode changed the highest mode.
	if list.autosort && prevHighest != member.HighestMode() {
		list.sort()
	}

	return true
}

// RemoveMode removes a mode from a member. It returns true if
// the member can be found, even if the mode was not there.
func (list *List) RemoveMode(nick string, mode rune) (ok bool) {
	if !list.isupport.IsPermissionMode(mode) {
		return false
	}

	list.mutex.Lock()
	defer list.mutex.Unlock()

	member := list.index[list.isupport.Fold(nick)]
	if member == nil {
		return false
	}
	if !strings.ContainsRune(member.Modes, mode) {
		return true
	}

	prevHighest := member.HighestMode()
	member.Modes = strings.Replace(member.Modes, string(mode), "", 1)
	member.Prefixes = list.isupport.Prefixes(member.Modes)
	member.updatePrefixedNick()

	if list.autosort && prevHighest != member.HighestMode() {
		list.sort()
	}

	return true
}

// Rename renames a member. It will return true if member by `from` exists, or if member by `to` does not exist.
func (list *List) Rename(from, to string) (ok bool) {
	return list.RenameKey(list.isupport.Fold(from), to, list.isupport.Fold(to))
}

// RenameKey is like Rename, but with the keys given by the caller.
func (list *List) RenameKey(fromKey, to, toKey string) (ok bool) {
	list.mutex.Lock()
	defer list.mutex.Unlock()

	member := list.index[fromKey]
	if member == nil {
		return false
	}
	if fromKey != toKey && list.index[toKey] != nil {
		return false
	}

	member.Nick = to
	member.Key = toKey
	member.updatePrefixedNick()

	delete(list.index, fromKey)
	list.index[toKey] = member

	if list.autosort {
		list.sort()
	}

	return true
}

// Remove a member from the list.
func (list *List) Remove(nick string) (ok bool) {
	return list.RemoveKey(list.isupport.Fold(nick))
}

// RemoveKey removes a member by the key it was stored under.
func (list *List) RemoveKey(key string) (ok bool) {
	list.mutex.Lock()
	defer list.mutex.Unlock()

	member := list.index[key]
	if member == nil {
		return false
	}

	for i := range list.members {
		if list.members[i] == member {
			list.members = append(list.members[:i], list.members[i+1:]...)
			break
		}
	}
	delete(list.index, key)

	return true
}

// Member gets a copy of the member by nick.
func (list *List) Member(nick string) (m Member, ok bool) {
	return list.MemberByKey(list.isupport.Fold(nick))
}

// MemberByKey gets a copy of the member by the key it was stored under.
func (list *List) MemberByKey(key string) (m Member, ok bool) {
	list.mutex.RLock()
	defer list.mutex.RUnlock()

	member := list.index[key]
	if member == nil {
		return Member{}, false
	}

	return *member, true
}

// Has returns true if the key is in the list.
func (list *List) Has(key string) bool {
	list.mutex.RLock()
	defer list.mutex.RUnlock()

	return list.index[key] != nil
}

// Members gets a copy of the members in the list's current state.
func (list *List) Members() []Member {
	list.mutex.RLock()
	defer list.mutex.RUnlock()

	result := make([]Member, len(list.members))
	for i := range list.members {
		result[i] = *list.members[i]
	}

	return result
}

// Keys gets the keys of all members, in list order.
func (list *List) Keys() []string {
	list.mutex.RLock()
	defer list.mutex.RUnlock()

	result := make([]string, len(list.members))
	for i := range list.members {
		result[i] = list.members[i].Key
	}

	return result
}

// Len returns the number of members.
func (list *List) Len() int {
	list.mutex.RLock()
	defer list.mutex.RUnlock()

	return len(list.members)
}

// SetAutoSort enables or disables automatic sorting, which by default is enabled.
// Dislabing it makes sense when doing a massive operation, like applying a large
// NAMES reply. Enabling it will trigger a sort.
func (list *List) SetAutoSort(autosort bool) {
	list.mutex.Lock()
	list.autosort = autosort
	list.sort()
	list.mutex.Unlock()
}

// Clear removes all members in a list.
func (list *List) Clear() {
	list.mutex.Lock()

	list.members = list.members[:0]
	for key := range list.index {
		delete(list.index, key)
	}

	list.mutex.Unlock()
}

func (list *List) normalize(member *Member) {
	if len(member.Modes) > 0 {
		// IRCv3 promises they'll be ordered by rank in WHO and NAMES replies,
		// but one can never be too sure with IRC.
		member.Modes = list.isupport.SortModes(member.Modes)
		member.Prefixes = list.isupport.Prefixes(member.Modes)
	} else {
		member.Prefixes = ""
	}

	member.updatePrefixedNick()
}

func (list *List) sort() {
	sort.SliceStable(list.members, func(i, j int) bool {
		a := list.members[i]
		b := list.members[j]

		aMode := a.HighestMode()
		bMode := b.HighestMode()

		if aMode != bMode {
			return list.isupport.IsModeHigher(aMode, bMode)
		}

		return a.Key < b.Key
	})
}

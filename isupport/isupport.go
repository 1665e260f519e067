package isupport

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/gissleh/ircstate/casemap"
)

// ErrMalformed is wrapped by every ParseError.
var ErrMalformed = errors.New("isupport: malformed token")

// A ParseError is returned when a token's value can't be understood. The
// previous value of the setting is kept when that happens.
type ParseError struct {
	Key   string
	Value string
	Err   error
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("isupport: invalid %s value %q: %v", err.Key, err.Value, err.Err)
}

func (err *ParseError) Unwrap() error {
	return err.Err
}

var defaultState = DefaultState()

// ISupport is a data structure containing server instructions about
// supported modes, encodings, lengths, prefixes, and so on. It is built
// from the 005 numeric's data, and has helper methods that makes sense
// of it. The zero value is ready to use and reports the defaults until
// the first token is set.
type ISupport struct {
	lock  sync.RWMutex
	state State
}

// New returns an ISupport holding the defaults.
func New() *ISupport {
	return &ISupport{state: DefaultState()}
}

// view must be called with the lock held.
func (isupport *ISupport) view() *State {
	if isupport.state.Raw == nil {
		return &defaultState
	}

	return &isupport.state
}

// Get gets an isupport key. This is unprocessed data, and a helper should
// be used if available.
func (isupport *ISupport) Get(key string) (value string, ok bool) {
	isupport.lock.RLock()
	value, ok = isupport.view().Raw[key]
	isupport.lock.RUnlock()
	return
}

// Number gets a key and converts it to a number.
func (isupport *ISupport) Number(key string) (value int, ok bool) {
	strValue, ok := isupport.Get(key)
	if !ok {
		return 0, ok
	}

	value, err := strconv.Atoi(strValue)
	if err != nil {
		return value, false
	}

	return value, ok
}

// ChanModes gets the four CHANMODES classes: list modes, modes that always
// take a parameter, modes that take one only when set and flag modes.
func (isupport *ISupport) ChanModes() [4]string {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().ChannelModes
}

// PrefixModes gets the status modes in rank order, e.g. "ov".
func (isupport *ISupport) PrefixModes() string {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().ModeOrder
}

// PrefixSymbols gets the status prefixes in rank order, e.g. "@+".
func (isupport *ISupport) PrefixSymbols() string {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().PrefixOrder
}

// Modes gets the maximum number of parameterized modes per MODE command,
// or -1 if there is no limit.
func (isupport *ISupport) Modes() int {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().Modes
}

func (isupport *ISupport) CaseMapping() casemap.CaseMapping {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().CaseMapping
}

func (isupport *ISupport) ChanTypes() string {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().ChanTypes
}

func (isupport *ISupport) StatusMsg() string {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().StatusMsg
}

func (isupport *ISupport) Network() string {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().Network
}

// CallerID gets the user mode used for caller-id, or "" if unsupported.
func (isupport *ISupport) CallerID() string {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().CallerID
}

// Excepts gets the channel mode for ban exceptions, or "" if unsupported.
func (isupport *ISupport) Excepts() string {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().Excepts
}

// Invex gets the channel mode for invite exceptions, or "" if unsupported.
func (isupport *ISupport) Invex() string {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().Invex
}

// Monitor gets the MONITOR limit. It's 0 if MONITOR isn't supported and
// -1 if it has no limit.
func (isupport *ISupport) Monitor() int {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().Monitor
}

// Watch is like Monitor, but for WATCH.
func (isupport *ISupport) Watch() int {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().Watch
}

func (isupport *ISupport) WHOX() bool {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().WHOX
}

// Fold folds the name with the current casemapping.
func (isupport *ISupport) Fold(name string) string {
	return isupport.CaseMapping().Fold(name)
}

// ParsePrefixedNick parses a full nick into its components.
// Example: "@+HammerTime62" -> `"HammerTime62", "ov", "@+"`
func (isupport *ISupport) ParsePrefixedNick(fullnick string) (nick, modes, prefixes string) {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	state := isupport.view()
	if fullnick == "" || len(state.Prefixes) == 0 {
		return fullnick, "", ""
	}

	for i, ch := range fullnick {
		if mode, ok := state.Prefixes[ch]; ok {
			modes += string(mode)
			prefixes += string(ch)
		} else {
			return fullnick[i:], modes, prefixes
		}
	}

	return "", modes, prefixes
}

// IsModeHigher returns true if `current` is a higher mode than `other`.
func (isupport *ISupport) IsModeHigher(current rune, other rune) bool {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	if current == other {
		return false
	}
	if current == 0 {
		return false
	}
	if other == 0 {
		return true
	}

	for _, mode := range isupport.view().ModeOrder {
		if mode == current {
			return true
		} else if mode == other {
			return false
		}
	}

	return false
}

// SortModes returns the modes in order. Any unknown modes will be omitted.
func (isupport *ISupport) SortModes(modes string) string {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	result := ""
	for _, ch := range isupport.view().ModeOrder {
		if strings.ContainsRune(modes, ch) {
			result += string(ch)
		}
	}

	return result
}

// Mode gets the mode for the prefix.
func (isupport *ISupport) Mode(prefix rune) rune {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().Prefixes[prefix]
}

// Prefix gets the prefix for the mode. It's a bit slower
// than the other way around, but is a far less frequently
// used.
func (isupport *ISupport) Prefix(mode rune) rune {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	for prefix, mappedMode := range isupport.view().Prefixes {
		if mappedMode == mode {
			return prefix
		}
	}

	return rune(0)
}

// Prefixes gets the prefixes in the order of the modes, skipping any
// invalid modes.
func (isupport *ISupport) Prefixes(modes string) string {
	result := ""

	for _, mode := range modes {
		prefix := isupport.Prefix(mode)
		if prefix != 0 {
			result += string(prefix)
		}
	}

	return result
}

// IsChannel returns whether the target name is a channel.
func (isupport *ISupport) IsChannel(targetName string) bool {
	if targetName == "" {
		return false
	}

	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return strings.IndexByte(isupport.view().ChanTypes, targetName[0]) != -1
}

// StripStatusMsg removes the STATUSMSG prefixes of a message target, like
// the @ in "@#channel".
func (isupport *ISupport) StripStatusMsg(target string) (stripped, prefixes string) {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	statusMsg := isupport.view().StatusMsg
	i := 0
	for i < len(target) && strings.IndexByte(statusMsg, target[i]) != -1 {
		i++
	}

	return target[i:], target[:i]
}

// IsPermissionMode returns whether the flag is a permission mode
func (isupport *ISupport) IsPermissionMode(flag rune) bool {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return strings.ContainsRune(isupport.view().ModeOrder, flag)
}

// ModeTakesArgument returns true if the mode takes an argument
func (isupport *ISupport) ModeTakesArgument(flag rune, plus bool) bool {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	state := isupport.view()

	// Permission modes always take an argument.
	if strings.ContainsRune(state.ModeOrder, flag) {
		return true
	}

	// Modes in category A and B always takes an argument
	if strings.ContainsRune(state.ChannelModes[0], flag) || strings.ContainsRune(state.ChannelModes[1], flag) {
		return true
	}

	// Modes in category C only takes one when added
	if plus && strings.ContainsRune(state.ChannelModes[2], flag) {
		return true
	}

	// Modes in category D and outside never does
	return false
}

// ChannelModeType returns a number from 0 to 3 based on what block of mode
// in the CHANMODES variable it fits into. If it's not found at all, it will
// return -1
func (isupport *ISupport) ChannelModeType(mode rune) int {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	state := isupport.view()

	// User permission modes function exactly like the first block
	// when it comes to add/remove
	if strings.ContainsRune(state.ModeOrder, mode) {
		return 0
	}

	for i, block := range state.ChannelModes {
		if strings.ContainsRune(block, mode) {
			return i
		}
	}

	return -1
}

// Tokens applies the tokens from a 005 reply in order, excluding the
// nickname in front and the trailing text. A bad token doesn't stop the
// rest from being applied.
func (isupport *ISupport) Tokens(tokens []string) error {
	var errs []error

	for _, token := range tokens {
		if token == "" {
			continue
		}

		if strings.HasPrefix(token, "-") {
			isupport.Unset(token[1:])
			continue
		}

		key, value, _ := strings.Cut(token, "=")
		if err := isupport.Set(key, value); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// Set sets an isupport key, and related structs. This should only be used
// if a 005 packet contains the Key-Value pair or if it can be "polyfilled"
// in some other way. A token without a value should be set with an empty
// value.
func (isupport *ISupport) Set(key, value string) error {
	key = strings.ToUpper(key)

	isupport.lock.Lock()
	defer isupport.lock.Unlock()

	if isupport.state.Raw == nil {
		isupport.state = DefaultState()
	}
	state := &isupport.state

	switch key {
	case "PREFIX": // PREFIX=(ov)@+
		{
			if value == "" {
				state.ModeOrder = ""
				state.PrefixOrder = ""
				state.Prefixes = make(map[rune]rune)
				break
			}

			modes, prefixes, ok := strings.Cut(strings.TrimPrefix(value, "("), ")")
			if !ok || value[0] != '(' || len(modes) != len(prefixes) {
				return &ParseError{Key: key, Value: value, Err: ErrMalformed}
			}

			state.PrefixOrder = prefixes
			state.ModeOrder = modes
			state.Prefixes = make(map[rune]rune, len(modes))
			for i, ch := range modes {
				state.Prefixes[rune(prefixes[i])] = ch
			}
		}
	case "CHANMODES": // CHANMODES=eIbq,k,flj,CFLNPQcgimnprstz
		{
			split := strings.Split(value, ",")
			if len(split) < 4 {
				return &ParseError{Key: key, Value: value, Err: ErrMalformed}
			}

			copy(state.ChannelModes[:], split[:4])
		}
	case "MODES", "MONITOR", "WATCH":
		{
			n := -1
			if value != "" {
				var err error
				n, err = strconv.Atoi(value)
				if err != nil {
					return &ParseError{Key: key, Value: value, Err: err}
				}
			}

			switch key {
			case "MODES":
				state.Modes = n
			case "MONITOR":
				state.Monitor = n
			case "WATCH":
				state.Watch = n
			}
		}
	case "CASEMAPPING":
		{
			// Unknown casemappings are ignored, not an error.
			if cm, ok := casemap.Parse(value); ok {
				state.CaseMapping = cm
			}
		}
	case "CHANTYPES":
		state.ChanTypes = value
	case "STATUSMSG":
		state.StatusMsg = value
	case "NETWORK":
		state.Network = value
	case "CALLERID":
		state.CallerID = valueOr(value, "g")
	case "EXCEPTS":
		state.Excepts = valueOr(value, "e")
	case "INVEX":
		state.Invex = valueOr(value, "I")
	case "WHOX":
		state.WHOX = true
	}

	// Rejected values return above, so Raw only holds tokens that applied.
	state.Raw[key] = value

	return nil
}

// Unset handles a negated token, removing it and restoring the default.
func (isupport *ISupport) Unset(key string) {
	key = strings.ToUpper(key)

	isupport.lock.Lock()
	defer isupport.lock.Unlock()

	if isupport.state.Raw == nil {
		isupport.state = DefaultState()
	}
	state := &isupport.state

	delete(state.Raw, key)

	switch key {
	case "PREFIX":
		state.Prefixes = defaultState.Copy().Prefixes
		state.ModeOrder = defaultState.ModeOrder
		state.PrefixOrder = defaultState.PrefixOrder
	case "CHANMODES":
		state.ChannelModes = defaultState.ChannelModes
	case "MODES":
		state.Modes = defaultState.Modes
	case "MONITOR":
		state.Monitor = 0
	case "WATCH":
		state.Watch = 0
	case "CASEMAPPING":
		state.CaseMapping = defaultState.CaseMapping
	case "CHANTYPES":
		state.ChanTypes = defaultState.ChanTypes
	case "STATUSMSG":
		state.StatusMsg = ""
	case "NETWORK":
		state.Network = ""
	case "CALLERID":
		state.CallerID = ""
	case "EXCEPTS":
		state.Excepts = ""
	case "INVEX":
		state.Invex = ""
	case "WHOX":
		state.WHOX = false
	}
}

// State gets a copy of the isupport state.
func (isupport *ISupport) State() *State {
	isupport.lock.RLock()
	defer isupport.lock.RUnlock()

	return isupport.view().Copy()
}

// Reset restores the defaults.
func (isupport *ISupport) Reset() {
	isupport.lock.Lock()
	isupport.state = DefaultState()
	isupport.lock.Unlock()
}

func valueOr(value, fallback string) string {
	if value == "" {
		return fallback
	}

	return value
}

package isupport_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/gissleh/ircstate/casemap"
	"github.com/gissleh/ircstate/isupport"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var isupportMessages = "FNC SAFELIST ELIST=CTU MONITOR=100 WHOX ETRACE KNOCK CHANTYPES=#& EXCEPTS INVEX CHANMODES=eIbq,k,flj,CFLNPQcgimnprstz CHANLIMIT=#&:15 PREFIX=(aovh)~@+% MAXLIST=bqeI:100 MODES=4 NETWORK=TestServer STATUSMSG=@+% CALLERID=g CASEMAPPING=rfc1459 NICKLEN=30 MAXNICKLEN=31 CHANNELLEN=50 TOPICLEN=390 DEAF=D TARGMAX=NAMES:1,LIST:1,KICK:1,WHOIS:1,PRIVMSG:4,NOTICE:4,ACCEPT:,MONITOR: EXTBAN=$,&acjmorsuxz| CLIENTVER=3.0"

var is isupport.ISupport

func init() {
	if err := is.Tokens(strings.Split(isupportMessages, " ")); err != nil {
		panic(err)
	}
}

func TestISupport_ParsePrefixedNick(t *testing.T) {
	table := []struct {
		Full     string
		Prefixes string
		Modes    string
		Nick     string
	}{
		{"User", "", "", "User"},
		{"+User", "+", "v", "User"},
		{"@%+User", "@%+", "ohv", "User"},
		{"~User", "~", "a", "User"},
	}

	for _, row := range table {
		t.Run(row.Full, func(t *testing.T) {
			nick, modes, prefixes := is.ParsePrefixedNick(row.Full)

			assert.Equal(t, row.Nick, nick)
			assert.Equal(t, row.Modes, modes)
			assert.Equal(t, row.Prefixes, prefixes)
		})
	}
}

func TestISupport_IsChannel(t *testing.T) {
	table := map[string]bool{
		"#Test":        true,
		"&Test":        true,
		"User":         false,
		"+Stuff":       false,
		"#TestAndSuch": true,
		"@astrwef":     false,
		"":             false,
	}

	for channelName, isChannel := range table {
		t.Run(channelName, func(t *testing.T) {
			assert.Equal(t, isChannel, is.IsChannel(channelName))
		})
	}
}

func TestISupport_IsPermissionMode(t *testing.T) {
	table := map[rune]bool{
		'#': false,
		'+': false,
		'o': true,
		'v': true,
		'h': true,
		'a': true,
		'g': false,
		'p': false,
	}

	for flag, expected := range table {
		t.Run(string(flag), func(t *testing.T) {
			assert.Equal(t, expected, is.IsPermissionMode(flag))
		})
	}
}

func TestISupport_ModeTakesArgument(t *testing.T) {
	table := []struct {
		Mode     rune
		Plus     bool
		Expected bool
	}{
		{'o', true, true},
		{'o', false, true},
		{'b', false, true},
		{'k', false, true},
		{'f', true, true},
		{'f', false, false},
		{'m', true, false},
		{'X', true, false},
	}

	for _, row := range table {
		t.Run(string(row.Mode), func(t *testing.T) {
			assert.Equal(t, row.Expected, is.ModeTakesArgument(row.Mode, row.Plus))
		})
	}
}

func TestISupport_Parsed(t *testing.T) {
	assert.Equal(t, [4]string{"eIbq", "k", "flj", "CFLNPQcgimnprstz"}, is.ChanModes())
	assert.Equal(t, "aovh", is.PrefixModes())
	assert.Equal(t, "~@+%", is.PrefixSymbols())
	assert.Equal(t, 4, is.Modes())
	assert.Equal(t, casemap.RFC1459, is.CaseMapping())
	assert.Equal(t, "#&", is.ChanTypes())
	assert.Equal(t, "@+%", is.StatusMsg())
	assert.Equal(t, "TestServer", is.Network())
	assert.Equal(t, "g", is.CallerID())
	assert.Equal(t, "e", is.Excepts())
	assert.Equal(t, "I", is.Invex())
	assert.Equal(t, 100, is.Monitor())
	assert.Equal(t, 0, is.Watch())
	assert.True(t, is.WHOX())

	value, ok := is.Get("TARGMAX")
	assert.True(t, ok)
	assert.Equal(t, "NAMES:1,LIST:1,KICK:1,WHOIS:1,PRIVMSG:4,NOTICE:4,ACCEPT:,MONITOR:", value)

	value, ok = is.Get("FNC")
	assert.True(t, ok)
	assert.Equal(t, "", value)

	n, ok := is.Number("NICKLEN")
	assert.True(t, ok)
	assert.Equal(t, 30, n)
}

func TestISupport_Defaults(t *testing.T) {
	var zero isupport.ISupport

	for _, is := range []*isupport.ISupport{&zero, isupport.New()} {
		assert.Equal(t, [4]string{"b", "k", "l", "imnpst"}, is.ChanModes())
		assert.Equal(t, "ov", is.PrefixModes())
		assert.Equal(t, "@+", is.PrefixSymbols())
		assert.Equal(t, 3, is.Modes())
		assert.Equal(t, casemap.RFC1459, is.CaseMapping())
		assert.Equal(t, "#", is.ChanTypes())
		assert.Equal(t, "", is.StatusMsg())
		assert.Equal(t, "", is.Excepts())
		assert.Equal(t, 0, is.Monitor())
		assert.False(t, is.WHOX())
		assert.Equal(t, 'o', is.Mode('@'))
	}
}

func TestISupport_Set(t *testing.T) {
	t.Run("EmptyValues", func(t *testing.T) {
		is := isupport.New()
		require.NoError(t, is.Tokens([]string{"MODES", "MONITOR", "WATCH=", "CALLERID", "EXCEPTS", "INVEX"}))

		assert.Equal(t, -1, is.Modes())
		assert.Equal(t, -1, is.Monitor())
		assert.Equal(t, -1, is.Watch())
		assert.Equal(t, "g", is.CallerID())
		assert.Equal(t, "e", is.Excepts())
		assert.Equal(t, "I", is.Invex())
	})

	t.Run("CustomValues", func(t *testing.T) {
		is := isupport.New()
		require.NoError(t, is.Tokens([]string{"CALLERID=X", "EXCEPTS=Z", "INVEX=Y", "CASEMAPPING=ascii"}))

		assert.Equal(t, "X", is.CallerID())
		assert.Equal(t, "Z", is.Excepts())
		assert.Equal(t, "Y", is.Invex())
		assert.Equal(t, casemap.ASCII, is.CaseMapping())
	})

	t.Run("BogusCasemapping", func(t *testing.T) {
		is := isupport.New()
		require.NoError(t, is.Set("CASEMAPPING", "bogus"))

		assert.Equal(t, casemap.RFC1459, is.CaseMapping())
		value, _ := is.Get("CASEMAPPING")
		assert.Equal(t, "bogus", value)
	})

	t.Run("MalformedKeepsPrior", func(t *testing.T) {
		is := isupport.New()
		err := is.Tokens([]string{"CHANMODES=a,b", "PREFIX=(ov)@", "PREFIX=ov@+", "MODES=many", "NETWORK=Net"})

		require.Error(t, err)
		var parseErr *isupport.ParseError
		assert.True(t, errors.As(err, &parseErr))
		assert.Equal(t, [4]string{"b", "k", "l", "imnpst"}, is.ChanModes())
		assert.Equal(t, "ov", is.PrefixModes())
		assert.Equal(t, 3, is.Modes())
		assert.Equal(t, "Net", is.Network())

		for _, key := range []string{"CHANMODES", "PREFIX", "MODES"} {
			_, ok := is.Get(key)
			assert.False(t, ok, key)
		}
	})

	t.Run("MalformedKeepsPriorRaw", func(t *testing.T) {
		is := isupport.New()
		require.NoError(t, is.Tokens([]string{"MODES=4", "PREFIX=(qov)~@+"}))
		require.Error(t, is.Tokens([]string{"MODES=many", "PREFIX=(qov)~@"}))

		value, _ := is.Get("MODES")
		assert.Equal(t, "4", value)
		assert.Equal(t, 4, is.Modes())
		value, _ = is.Get("PREFIX")
		assert.Equal(t, "(qov)~@+", value)
		assert.Equal(t, "qov", is.PrefixModes())
	})

	t.Run("Negation", func(t *testing.T) {
		is := isupport.New()
		require.NoError(t, is.Tokens([]string{"WHOX", "EXCEPTS", "CHANTYPES=&"}))
		require.NoError(t, is.Tokens([]string{"-WHOX", "-EXCEPTS", "-CHANTYPES"}))

		assert.False(t, is.WHOX())
		assert.Equal(t, "", is.Excepts())
		assert.Equal(t, "#", is.ChanTypes())
		_, ok := is.Get("WHOX")
		assert.False(t, ok)
	})

	t.Run("ExtraChanmodesClass", func(t *testing.T) {
		is := isupport.New()
		require.NoError(t, is.Set("CHANMODES", "a,b,c,d,e"))

		assert.Equal(t, [4]string{"a", "b", "c", "d"}, is.ChanModes())
	})
}

func TestISupport_StripStatusMsg(t *testing.T) {
	stripped, prefixes := is.StripStatusMsg("@+#chan")
	assert.Equal(t, "#chan", stripped)
	assert.Equal(t, "@+", prefixes)

	stripped, prefixes = is.StripStatusMsg("#chan")
	assert.Equal(t, "#chan", stripped)
	assert.Equal(t, "", prefixes)
}

func TestISupport_Reset(t *testing.T) {
	is := isupport.New()
	require.NoError(t, is.Tokens([]string{"PREFIX=(qaohv)~&@%+", "NETWORK=Foo"}))
	is.Reset()

	assert.Equal(t, "ov", is.PrefixModes())
	assert.Equal(t, "", is.Network())
	assert.Empty(t, is.State().Raw)
}

package list_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/gissleh/ircstate/isupport"
	"github.com/gissleh/ircstate/list"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func prefixedNicks(l *list.List) []string {
	order := make([]string, 0, 16)
	for _, member := range l.Members() {
		order = append(order, member.PrefixedNick)
	}

	return order
}

func TestList(t *testing.T) {
	is := isupport.New()
	require.NoError(t, is.Tokens(strings.Split("CHANTYPES=#& CHANMODES=eIbq,k,flj,CFLNPQcgimnprstz PREFIX=(ov)@+ CASEMAPPING=rfc1459", " ")))

	since := time.Date(2020, 4, 1, 12, 0, 0, 0, time.UTC)

	table := []struct {
		member       list.Member
		shouldInsert bool
		expected     list.Member
		order        []string
	}{
		{
			list.Member{Nick: "Test", Modes: "vo", Since: since}, true,
			list.Member{Nick: "Test", Key: "test", Modes: "ov", Prefixes: "@+", PrefixedNick: "@Test", Since: since},
			[]string{"@Test"},
		},
		{
			list.Member{Nick: "Test2", Modes: "ov"}, true,
			list.Member{Nick: "Test2", Key: "test2", Modes: "ov", Prefixes: "@+", PrefixedNick: "@Test2"},
			[]string{"@Test", "@Test2"},
		},
		{
			list.Member{Nick: "Gissleh", Modes: "v"}, true,
			list.Member{Nick: "Gissleh", Key: "gissleh", Modes: "v", Prefixes: "+", PrefixedNick: "+Gissleh"},
			[]string{"@Test", "@Test2", "+Gissleh"},
		},
		{
			list.Member{Nick: "Guest"}, true,
			list.Member{Nick: "Guest", Key: "guest", PrefixedNick: "Guest"},
			[]string{"@Test", "@Test2", "+Gissleh", "Guest"},
		},
		{
			list.Member{Nick: "AOP", Modes: "o"}, true,
			list.Member{Nick: "AOP", Key: "aop", Modes: "o", Prefixes: "@", PrefixedNick: "@AOP"},
			[]string{"@AOP", "@Test", "@Test2", "+Gissleh", "Guest"},
		},
		{
			list.Member{Nick: "ZOP", Modes: "o"}, true,
			list.Member{Nick: "ZOP", Key: "zop", Modes: "o", Prefixes: "@", PrefixedNick: "@ZOP"},
			[]string{"@AOP", "@Test", "@Test2", "@ZOP", "+Gissleh", "Guest"},
		},
		{
			list.Member{Nick: "ZVoice", Modes: "v"}, true,
			list.Member{Nick: "ZVoice", Key: "zvoice", Modes: "v", Prefixes: "+", PrefixedNick: "+ZVoice"},
			[]string{"@AOP", "@Test", "@Test2", "@ZOP", "+Gissleh", "+ZVoice", "Guest"},
		},
		{
			list.Member{Nick: "zvoice", Modes: "v"}, false,
			list.Member{},
			[]string{"@AOP", "@Test", "@Test2", "@ZOP", "+Gissleh", "+ZVoice", "Guest"},
		},
	}

	l := list.New(is)

	for _, row := range table {
		t.Run("Insert_"+row.member.Nick, func(t *testing.T) {
			ok := l.Insert(row.member)
			assert.Equal(t, row.shouldInsert, ok)

			if row.shouldInsert {
				member, ok := l.Member(row.member.Nick)
				assert.True(t, ok)
				assert.Equal(t, row.expected, member)
			}

			assert.Equal(t, row.order, prefixedNicks(l))
		})
	}

	modeTable := []struct {
		add   bool
		mode  rune
		nick  string
		ok    bool
		order []string
	}{
		{
			true, 'o', "Gissleh", true,
			[]string{"@AOP", "@Gissleh", "@Test", "@Test2", "@ZOP", "+ZVoice", "Guest"},
		},
		{
			false, 'o', "Gissleh", true,
			[]string{"@AOP", "@Test", "@Test2", "@ZOP", "+Gissleh", "+ZVoice", "Guest"},
		},
		{
			true, 'o', "InvalidNick", false,
			[]string{"@AOP", "@Test", "@Test2", "@ZOP", "+Gissleh", "+ZVoice", "Guest"},
		},
		{
			true, 'v', "AOP", true,
			[]string{"@AOP", "@Test", "@Test2", "@ZOP", "+Gissleh", "+ZVoice", "Guest"},
		},
		{
			true, 'v', "guest", true,
			[]string{"@AOP", "@Test", "@Test2", "@ZOP", "+Gissleh", "+Guest", "+ZVoice"},
		},
		{
			false, 'o', "Test", true,
			[]string{"@AOP", "@Test2", "@ZOP", "+Gissleh", "+Guest", "+Test", "+ZVoice"},
		},
		{
			false, 'v', "Test", true,
			[]string{"@AOP", "@Test2", "@ZOP", "+Gissleh", "+Guest", "+ZVoice", "Test"},
		},
		{
			false, 'o', "AOP", true,
			[]string{"@Test2", "@ZOP", "+AOP", "+Gissleh", "+Guest", "+ZVoice", "Test"},
		},
		{
			true, 'x', "AOP", false,
			[]string{"@Test2", "@ZOP", "+AOP", "+Gissleh", "+Guest", "+ZVoice", "Test"},
		},
		{
			false, 'x', "ZOP", false,
			[]string{"@Test2", "@ZOP", "+AOP", "+Gissleh", "+Guest", "+ZVoice", "Test"},
		},
	}

	for i, row := range modeTable {
		t.Run(fmt.Sprintf("Mode_%d_%s", i, row.nick), func(t *testing.T) {
			var ok bool
			if row.add {
				ok = l.AddMode(row.nick, row.mode)
			} else {
				ok = l.RemoveMode(row.nick, row.mode)
			}

			assert.Equal(t, row.ok, ok)
			assert.Equal(t, row.order, prefixedNicks(l))
		})
	}

	renameTable := []struct {
		from  string
		to    string
		ok    bool
		order []string
	}{
		{
			"ZOP", "AAOP", true,
			[]string{"@AAOP", "@Test2", "+AOP", "+Gissleh", "+Guest", "+ZVoice", "Test"},
		},
		{
			"AOP", "ZOP", true,
			[]string{"@AAOP", "@Test2", "+Gissleh", "+Guest", "+ZOP", "+ZVoice", "Test"},
		},
		{
			"AOP", "ZOP", false,
			[]string{"@AAOP", "@Test2", "+Gissleh", "+Guest", "+ZOP", "+ZVoice", "Test"},
		},
		{
			"ZOP", "Test", false,
			[]string{"@AAOP", "@Test2", "+Gissleh", "+Guest", "+ZOP", "+ZVoice", "Test"},
		},
		{
			"Test", "TEST", true,
			[]string{"@AAOP", "@Test2", "+Gissleh", "+Guest", "+ZOP", "+ZVoice", "TEST"},
		},
		{
			"Gissleh", "Gissleh[m]", true,
			[]string{"@AAOP", "@Test2", "+Gissleh[m]", "+Guest", "+ZOP", "+ZVoice", "TEST"},
		},
	}

	for i, row := range renameTable {
		t.Run(fmt.Sprintf("Rename_%d_%s_%s", i, row.from, row.to), func(t *testing.T) {
			ok := l.Rename(row.from, row.to)

			assert.Equal(t, row.ok, ok)
			assert.Equal(t, row.order, prefixedNicks(l))
		})
	}

	t.Run("FoldedLookup", func(t *testing.T) {
		member, ok := l.Member("gissleh{M}")
		assert.True(t, ok)
		assert.Equal(t, "Gissleh[m]", member.Nick)
		assert.Equal(t, "gissleh{m}", member.Key)
		assert.True(t, l.Has("gissleh{m}"))
	})

	removeTable := []struct {
		nick  string
		ok    bool
		order []string
	}{
		{"AAOP", true, []string{"@Test2", "+Gissleh[m]", "+Guest", "+ZOP", "+ZVoice", "TEST"}},
		{"AAOP", false, []string{"@Test2", "+Gissleh[m]", "+Guest", "+ZOP", "+ZVoice", "TEST"}},
		{"Guest", true, []string{"@Test2", "+Gissleh[m]", "+ZOP", "+ZVoice", "TEST"}},
		{"test", true, []string{"@Test2", "+Gissleh[m]", "+ZOP", "+ZVoice"}},
	}

	for i, row := range removeTable {
		t.Run(fmt.Sprintf("Remove_%d_%s", i, row.nick), func(t *testing.T) {
			ok := l.Remove(row.nick)

			assert.Equal(t, row.ok, ok)
			_, found := l.Member(row.nick)
			assert.False(t, found)
			assert.Equal(t, row.order, prefixedNicks(l))
		})
	}

	t.Run("AutoSort", func(t *testing.T) {
		l.SetAutoSort(false)

		require.True(t, l.Insert(list.Member{Nick: "AAAAAAAAA", Modes: "ov"}))

		members := l.Members()
		assert.Equal(t, "@AAAAAAAAA", members[len(members)-1].PrefixedNick)

		l.SetAutoSort(true)

		members = l.Members()
		assert.Equal(t, "@AAAAAAAAA", members[0].PrefixedNick)
		assert.Equal(t, "zvoice", l.Keys()[len(members)-1])
	})

	t.Run("Clear", func(t *testing.T) {
		l.Clear()

		assert.Empty(t, l.Members())
		assert.Equal(t, 0, l.Len())
	})
}

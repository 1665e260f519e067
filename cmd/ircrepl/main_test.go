package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gissleh/ircstate"
	"github.com/gissleh/ircstate/store"
)

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"config.toml": "database = \"state.db\"\nformat = \"yaml\"\n\n[session]\nname = \"Libera\"\nwhox_token = \"123\"\nstrict_casemapping = true\n",
		"config.yaml": "database: state.db\nformat: yaml\nsession:\n  name: Libera\n  whoxToken: \"123\"\n  strictCasemapping: true\n",
		"config.json": `{"database": "state.db", "format": "yaml", "session": {"name": "Libera", "whoxToken": "123", "strictCasemapping": true}}`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

			cfg := defaultConfig()
			require.NoError(t, loadConfig(path, &cfg))

			assert.Equal(t, "state.db", cfg.Database)
			assert.Equal(t, "yaml", cfg.Format)
			assert.Equal(t, "Libera", cfg.Session.Name)
			assert.Equal(t, "123", cfg.Session.WHOXToken)
			assert.True(t, cfg.Session.StrictCasemapping)
			assert.Equal(t, "info", cfg.LogLevel)
		})
	}

	cfg := defaultConfig()
	assert.Error(t, loadConfig(filepath.Join(dir, "missing.yaml"), &cfg))
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("IRCREPL_NAME", "OFTC")
	t.Setenv("IRCREPL_STRICT_CASEMAPPING", "true")
	t.Setenv("IRCREPL_BUFFER", "8")
	t.Setenv("IRCREPL_BUFFER_TYPO", "9")

	cfg := defaultConfig()
	applyEnvOverrides(&cfg)

	assert.Equal(t, "OFTC", cfg.Session.Name)
	assert.True(t, cfg.Session.StrictCasemapping)
	assert.Equal(t, 8, cfg.Session.Buffer)
	assert.Equal(t, "json", cfg.Format)
}

func TestRepl_Interactive(t *testing.T) {
	ctx := context.Background()

	tracker := ircstate.NewTracker(ctx, ircstate.Config{Name: "test"})
	defer tracker.Destroy()

	s, err := store.Open(":memory:", zerolog.Nop())
	require.NoError(t, err)
	defer s.Close()

	out := bytes.Buffer{}
	r := &repl{tracker: tracker, store: s, format: "json", out: &out, log: zerolog.Nop()}

	input := strings.Join([]string{
		"001 Test768",
		":Test768 JOIN #Test",
		"353 Test768 = #Test :Test768 @Op",
		"",
		"/channel #test",
		"/user op",
		"/save",
		"/quit",
		":Op PART #Test",
	}, "\n")
	require.NoError(t, r.interactive(ctx, strings.NewReader(input)))

	assert.Contains(t, out.String(), `"prefixedNick": "@Op"`)
	assert.Contains(t, out.String(), `"normal": "Op"`)

	// The line after /quit is never read.
	tracker.Read(func(server *ircstate.Server) {
		assert.True(t, server.HasUser("Op"))
	})

	snapshots, err := s.Snapshots(ctx, "test")
	require.NoError(t, err)
	assert.Len(t, snapshots, 1)
}

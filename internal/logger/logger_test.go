package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gissleh/ircstate/internal/logger"
)

func TestNew(t *testing.T) {
	buffer := bytes.Buffer{}

	log, err := logger.New(&buffer, "warn", false)
	require.NoError(t, err)

	log.Info().Msg("hidden")
	log.Warn().Str("session", "test").Msg("shown")

	assert.NotContains(t, buffer.String(), "hidden")
	assert.Contains(t, buffer.String(), "shown")
	assert.Contains(t, buffer.String(), "session=test")

	_, err = logger.New(&buffer, "loud", false)
	assert.Error(t, err)
}

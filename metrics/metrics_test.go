package metrics_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gissleh/ircstate"
	"github.com/gissleh/ircstate/metrics"
)

func TestCollector(t *testing.T) {
	collector := metrics.New("test")

	tracker := ircstate.NewTracker(context.Background(), ircstate.Config{Name: "test"})
	defer tracker.Destroy()
	tracker.SetObserver(collector)

	lines := []string{
		"001 nickname",
		":nickname JOIN #a",
		":nickname JOIN #b",
		":other JOIN #a",
		"PING :irc.example.com",
	}
	for _, line := range lines {
		require.NoError(t, tracker.PushLine(context.Background(), line))
	}
	assert.Error(t, tracker.PushLine(context.Background(), "329 * #a never"))

	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Dispatches.WithLabelValues("RPL_WELCOME", "true")))
	assert.Equal(t, 3.0, testutil.ToFloat64(collector.Dispatches.WithLabelValues("JOIN", "true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Dispatches.WithLabelValues("PING", "false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Errors.WithLabelValues("RPL_CREATIONTIME")))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.Users))
	assert.Equal(t, 2.0, testutil.ToFloat64(collector.Channels))

	require.NoError(t, tracker.PushLine(context.Background(), ":nickname PART #a"))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Users))
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.Channels))
}

func TestCollector_Handler(t *testing.T) {
	collector := metrics.New("test")
	collector.ObserveDispatch("JOIN", true, nil)
	collector.ObserveState(4, 2)

	recorder := httptest.NewRecorder()
	collector.Handler().ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	body := recorder.Body.String()
	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.True(t, strings.Contains(body, `ircstate_dispatches_total{command="JOIN",handled="true",session="test"} 1`), body)
	assert.Contains(t, body, `ircstate_users{session="test"} 4`)
}

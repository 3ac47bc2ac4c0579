package metrics

import (
	"io"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCounters(t *testing.T) {
	FetchesTotal.WithLabelValues("/chart_data", OutcomeOK).Inc()
	PollSkippedTotal.WithLabelValues("assets").Inc()

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := srv.Client().Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Contains(t, string(body), "dashboard_fetch_total")
	assert.Contains(t, string(body), "dashboard_poll_skipped_total")
}

func TestCountersIncrement(t *testing.T) {
	before := testutil.ToFloat64(RendersTotal.WithLabelValues("coin", "chart"))
	RendersTotal.WithLabelValues("coin", "chart").Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(RendersTotal.WithLabelValues("coin", "chart")))
}

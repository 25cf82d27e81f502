package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNilMetricsAreNoops(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ActionInvoked("x")
		m.ActionSkipped("x")
		m.ConfigSave("ok")
		m.HookFire("interval", true)
		m.HookAttached()
		m.HookReleased()
	})
	assert.Nil(t, m.Registry())
}

func TestCounters(t *testing.T) {
	m := New()
	m.ActionInvoked("create-password")
	m.ActionInvoked("create-password")
	m.ActionSkipped("open-sample-modal-complex")
	m.HookFire("interval", false)
	m.HookAttached()
	m.HookAttached()
	m.HookReleased()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.actionsInvoked.WithLabelValues("create-password")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.actionsSkipped.WithLabelValues("open-sample-modal-complex")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.hookFires.WithLabelValues("interval", "dropped")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.hooksAttached))
}

func TestHandler(t *testing.T) {
	m := New()
	m.ConfigSave("ok")

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), `amytools_config_saves_total{result="ok"} 1`))
}

// Package metrics exposes Prometheus counters for the extension lifecycle:
// command invocations, configuration saves and hook activity.
//
// All methods are safe on a nil *Metrics, so components can take an optional
// collector without nil checks at every call site.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "amytools"

// Metrics owns a private registry and the lifecycle collectors.
type Metrics struct {
	registry *prometheus.Registry

	actionsInvoked *prometheus.CounterVec
	actionsSkipped *prometheus.CounterVec
	configSaves    *prometheus.CounterVec
	hookFires      *prometheus.CounterVec
	hooksAttached  prometheus.Gauge
}

// New creates and registers all collectors.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		actionsInvoked: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_invoked_total",
			Help:      "Commands that ran.",
		}, []string{"action"}),
		actionsSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_skipped_total",
			Help:      "Invocations skipped because the availability check failed.",
		}, []string{"action"}),
		configSaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "config_saves_total",
			Help:      "Configuration saves by result (ok, error, superseded).",
		}, []string{"result"}),
		hookFires: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hook_fires_total",
			Help:      "Hook callbacks by kind and outcome (run, dropped).",
		}, []string{"kind", "outcome"}),
		hooksAttached: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "hooks_attached",
			Help:      "Hooks currently attached.",
		}),
	}
	m.registry.MustRegister(m.actionsInvoked, m.actionsSkipped, m.configSaves, m.hookFires, m.hooksAttached)
	return m
}

// Registry returns the registry backing this collector set.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) ActionInvoked(id string) {
	if m == nil {
		return
	}
	m.actionsInvoked.WithLabelValues(id).Inc()
}

func (m *Metrics) ActionSkipped(id string) {
	if m == nil {
		return
	}
	m.actionsSkipped.WithLabelValues(id).Inc()
}

// ConfigSave records a save outcome: "ok", "error" or "superseded".
func (m *Metrics) ConfigSave(result string) {
	if m == nil {
		return
	}
	m.configSaves.WithLabelValues(result).Inc()
}

// HookFire records a hook callback. ran is false when the liveness check
// dropped the callback.
func (m *Metrics) HookFire(kind string, ran bool) {
	if m == nil {
		return
	}
	outcome := "run"
	if !ran {
		outcome = "dropped"
	}
	m.hookFires.WithLabelValues(kind, outcome).Inc()
}

func (m *Metrics) HookAttached() {
	if m == nil {
		return
	}
	m.hooksAttached.Inc()
}

func (m *Metrics) HookReleased() {
	if m == nil {
		return
	}
	m.hooksAttached.Dec()
}

// Package metrics exports the result of the latest run in Prometheus text
// format, for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all watchdog metrics on a private prometheus registry.
type Registry struct {
	reg *prometheus.Registry

	// Probe metrics
	ProbesTotal *prometheus.CounterVec

	// Remediation metrics
	CyclesTotal *prometheus.CounterVec

	// Run metrics
	RunOutcome   *prometheus.GaugeVec
	RunDuration  prometheus.Gauge
	LastRun      prometheus.Gauge
	RunsTotal    *prometheus.CounterVec
	ControlFails *prometheus.CounterVec

	// WAN device metrics
	DeviceRxBytes *prometheus.GaugeVec
	DeviceTxBytes *prometheus.GaugeVec
	DeviceErrors  *prometheus.GaugeVec
	DeviceUp      *prometheus.GaugeVec
}

// outcomes are pre-created so the one-hot gauge always carries every label.
var outcomes = []string{"HEALTHY", "RECOVERED", "DEGRADED", "RESOLUTION_FAILED"}

// NewRegistry creates a Registry with every metric registered.
func NewRegistry() *Registry {
	r := &Registry{reg: prometheus.NewRegistry()}
	f := promauto.With(r.reg)

	r.ProbesTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "wanwatch_probe_total",
		Help: "Echo probes sent, by target and result",
	}, []string{"target", "result"})

	r.CyclesTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "wanwatch_cycle_total",
		Help: "Interface down/up cycles, by control path",
	}, []string{"path"})

	r.RunOutcome = f.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wanwatch_run_outcome",
		Help: "Outcome of the latest run (1 for the current outcome, 0 otherwise)",
	}, []string{"outcome"})

	r.RunDuration = f.NewGauge(prometheus.GaugeOpts{
		Name: "wanwatch_run_duration_seconds",
		Help: "Wall time of the latest run",
	})

	r.LastRun = f.NewGauge(prometheus.GaugeOpts{
		Name: "wanwatch_last_run_timestamp_seconds",
		Help: "Unix time the latest run finished",
	})

	r.RunsTotal = f.NewCounterVec(prometheus.CounterOpts{
		Name: "wanwatch_runs_total",
		Help: "Runs completed by this process, by outcome",
	}, []string{"outcome"})

	r.ControlFails = f.NewCounterVec(prometheus.CounterOpts{
		Name: "wanwatch_control_errors_total",
		Help: "Interface control steps that failed",
	}, []string{"step"})

	r.DeviceRxBytes = f.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wanwatch_device_rx_bytes",
		Help: "Received bytes on the WAN device at the end of the run",
	}, []string{"device"})

	r.DeviceTxBytes = f.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wanwatch_device_tx_bytes",
		Help: "Transmitted bytes on the WAN device at the end of the run",
	}, []string{"device"})

	r.DeviceErrors = f.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wanwatch_device_errors",
		Help: "Interface errors on the WAN device",
	}, []string{"device", "direction"})

	r.DeviceUp = f.NewGaugeVec(prometheus.GaugeOpts{
		Name: "wanwatch_device_up",
		Help: "Operational state of the WAN device (1 = up)",
	}, []string{"device"})

	for _, o := range outcomes {
		r.RunOutcome.WithLabelValues(o).Set(0)
	}

	return r
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// ObserveProbe records one probe result.
func (r *Registry) ObserveProbe(target string, ok bool) {
	r.ProbesTotal.WithLabelValues(target, resultLabel(ok)).Inc()
}

// ObserveCycle records one remediation cycle.
func (r *Registry) ObserveCycle(path string) {
	r.CyclesTotal.WithLabelValues(path).Inc()
}

// ObserveRun records the end of a run.
func (r *Registry) ObserveRun(outcome string, duration time.Duration, finished time.Time) {
	for _, o := range outcomes {
		v := 0.0
		if o == outcome {
			v = 1
		}
		r.RunOutcome.WithLabelValues(o).Set(v)
	}
	r.RunsTotal.WithLabelValues(outcome).Inc()
	r.RunDuration.Set(duration.Seconds())
	r.LastRun.Set(float64(finished.Unix()))
}

// RecordControlError counts a failed down or up step.
func (r *Registry) RecordControlError(step string) {
	r.ControlFails.WithLabelValues(step).Inc()
}

// WriteTextfile writes the current state to path. The file is replaced
// atomically so the textfile collector never reads a partial snapshot.
func (r *Registry) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}

func resultLabel(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}

package wan

import (
	"grimm.is/wanwatch/internal/logging"
	"grimm.is/wanwatch/internal/probe"
)

// HealthChecker decides whether the internet is reachable through a WAN.
type HealthChecker struct {
	prober   probe.Prober
	observer Observer
	logger   *logging.Logger
}

// NewHealthChecker creates a checker. observer may be nil.
func NewHealthChecker(prober probe.Prober, observer Observer, logger *logging.Logger) *HealthChecker {
	if observer == nil {
		observer = nopObserver{}
	}
	if logger == nil {
		logger = logging.WithComponent("health")
	}
	return &HealthChecker{prober: prober, observer: observer, logger: logger}
}

// CheckInternet probes targets in order through id's current device and
// returns true at the first target that replies. Later targets are not probed.
func (h *HealthChecker) CheckInternet(id *Identity, targets []probe.Target, cfg probe.Config) bool {
	for _, t := range targets {
		res := h.prober.Check(t, id.Device(), cfg)
		h.observer.ObserveProbe(t.Host, res.OK)
		if res.OK {
			h.logger.Info("target reachable", "target", t.Host, "device", id.Device(),
				"received", res.Received, "sent", res.Sent, "rtt", res.RTT)
			return true
		}
		h.logger.Warn("target unreachable", "target", t.Host, "device", id.Device(), "error", res.Err)
	}
	return false
}

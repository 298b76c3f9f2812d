package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// DeviceStats are the kernel counters of one network device.
type DeviceStats struct {
	Name     string
	RxBytes  uint64
	TxBytes  uint64
	RxErrors uint64
	TxErrors uint64
	LinkUp   bool
}

// Collector reads device counters from sysfs into a Registry.
type Collector struct {
	registry *Registry
	sysRoot  string
}

// NewCollector creates a collector reading /sys/class/net.
func NewCollector(registry *Registry) *Collector {
	return &Collector{registry: registry, sysRoot: "/sys/class/net"}
}

// CollectDevice updates the device gauges for name.
func (c *Collector) CollectDevice(name string) (*DeviceStats, error) {
	if name == "" {
		return nil, fmt.Errorf("no device")
	}
	base := filepath.Join(c.sysRoot, name)
	if _, err := os.Stat(base); err != nil {
		return nil, fmt.Errorf("device %s: %w", name, err)
	}

	statsPath := filepath.Join(base, "statistics")
	stats := &DeviceStats{
		Name:     name,
		RxBytes:  readSysUint64(filepath.Join(statsPath, "rx_bytes")),
		TxBytes:  readSysUint64(filepath.Join(statsPath, "tx_bytes")),
		RxErrors: readSysUint64(filepath.Join(statsPath, "rx_errors")),
		TxErrors: readSysUint64(filepath.Join(statsPath, "tx_errors")),
	}

	// ppp and tun devices report "unknown" while passing traffic
	operstate, _ := os.ReadFile(filepath.Join(base, "operstate"))
	switch strings.TrimSpace(string(operstate)) {
	case "up", "unknown":
		stats.LinkUp = true
	}

	r := c.registry
	r.DeviceRxBytes.WithLabelValues(name).Set(float64(stats.RxBytes))
	r.DeviceTxBytes.WithLabelValues(name).Set(float64(stats.TxBytes))
	r.DeviceErrors.WithLabelValues(name, "rx").Set(float64(stats.RxErrors))
	r.DeviceErrors.WithLabelValues(name, "tx").Set(float64(stats.TxErrors))
	up := 0.0
	if stats.LinkUp {
		up = 1
	}
	r.DeviceUp.WithLabelValues(name).Set(up)

	return stats, nil
}

// readSysUint64 reads a uint64 value from a sysfs file.
func readSysUint64(path string) uint64 {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0
	}
	val, _ := strconv.ParseUint(strings.TrimSpace(string(data)), 10, 64)
	return val
}

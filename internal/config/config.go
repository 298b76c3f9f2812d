// Package config holds the watchdog's runtime parameters.
//
// There is no configuration file: every value has a compiled-in default in
// Default, and a deployment can override individual values through
// WANWATCH_* environment variables (ApplyEnv) or command-line flags.
package config

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"grimm.is/wanwatch/internal/brand"
)

// Interface management backends.
const (
	BackendAuto   = "auto"
	BackendNetifd = "netifd"
	BackendKernel = "kernel"
)

// Echo probe implementations.
const (
	ProberICMP    = "icmp"
	ProberCommand = "command"
)

// Compiled-in policy defaults.
const (
	DefaultProbeCount       = 3
	DefaultProbeTimeout     = 2 * time.Second
	DefaultSettleDown       = 5 * time.Second
	DefaultSettleUp         = 15 * time.Second
	DefaultInterval         = 60 * time.Second
	DefaultDegradedExitCode = 0
)

// DefaultTargets are probed in order; the first reply wins.
var DefaultTargets = []string{"8.8.8.8", "1.1.1.1"}

// Config is the complete parameter set for one process.
type Config struct {
	Targets      []string
	ProbeCount   int
	ProbeTimeout time.Duration

	// SettleDown is the wait between bringing the WAN down and up again,
	// SettleUp the wait after it is back up before verification.
	SettleDown time.Duration
	SettleUp   time.Duration

	// DegradedExitCode is the process exit status when remediation ran
	// but connectivity did not come back.
	DegradedExitCode int

	Backend    string
	Prober     string
	Privileged bool

	LogFile     string
	LogLevel    string
	JSONLogs    bool
	SyslogHost  string
	MetricsFile string

	// Interval between runs in watch mode.
	Interval time.Duration

	DryRun bool
}

// Default returns the compiled-in configuration.
func Default() *Config {
	targets := make([]string, len(DefaultTargets))
	copy(targets, DefaultTargets)
	return &Config{
		Targets:          targets,
		ProbeCount:       DefaultProbeCount,
		ProbeTimeout:     DefaultProbeTimeout,
		SettleDown:       DefaultSettleDown,
		SettleUp:         DefaultSettleUp,
		DegradedExitCode: DefaultDegradedExitCode,
		Backend:          BackendAuto,
		Prober:           ProberICMP,
		Privileged:       true,
		LogFile:          brand.DefaultLogFile(),
		LogLevel:         "info",
		Interval:         DefaultInterval,
	}
}

// ApplyEnv overrides fields from WANWATCH_* variables. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	get := func(name string) (string, bool) {
		v := strings.TrimSpace(getenv(brand.EnvVar(name)))
		return v, v != ""
	}

	if v, ok := get("TARGETS"); ok {
		c.Targets = SplitList(v)
	}
	if v, ok := get("PROBE_COUNT"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", brand.EnvVar("PROBE_COUNT"), err)
		}
		c.ProbeCount = n
	}
	durations := []struct {
		name string
		dst  *time.Duration
	}{
		{"PROBE_TIMEOUT", &c.ProbeTimeout},
		{"SETTLE_DOWN", &c.SettleDown},
		{"SETTLE_UP", &c.SettleUp},
		{"INTERVAL", &c.Interval},
	}
	for _, d := range durations {
		if v, ok := get(d.name); ok {
			parsed, err := ParseDuration(v)
			if err != nil {
				return fmt.Errorf("%s: %w", brand.EnvVar(d.name), err)
			}
			*d.dst = parsed
		}
	}
	if v, ok := get("DEGRADED_EXIT_CODE"); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %w", brand.EnvVar("DEGRADED_EXIT_CODE"), err)
		}
		c.DegradedExitCode = n
	}
	if v, ok := get("PRIVILEGED"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", brand.EnvVar("PRIVILEGED"), err)
		}
		c.Privileged = b
	}
	if v, ok := get("JSON_LOGS"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", brand.EnvVar("JSON_LOGS"), err)
		}
		c.JSONLogs = b
	}

	strs := []struct {
		name string
		dst  *string
	}{
		{"BACKEND", &c.Backend},
		{"PROBER", &c.Prober},
		{"LOG_FILE", &c.LogFile},
		{"LOG_LEVEL", &c.LogLevel},
		{"SYSLOG_HOST", &c.SyslogHost},
		{"METRICS_FILE", &c.MetricsFile},
	}
	for _, s := range strs {
		if v, ok := get(s.name); ok {
			*s.dst = v
		}
	}
	return nil
}

// Validate checks invariants the run depends on.
func (c *Config) Validate() error {
	if len(c.Targets) == 0 {
		return fmt.Errorf("at least one probe target is required")
	}
	for i, t := range c.Targets {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("probe target %d is empty", i)
		}
	}
	if c.ProbeCount <= 0 {
		return fmt.Errorf("probe count must be positive, got %d", c.ProbeCount)
	}
	if c.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout must be positive, got %s", c.ProbeTimeout)
	}
	if c.SettleDown < 0 || c.SettleUp < 0 {
		return fmt.Errorf("settle intervals must not be negative")
	}
	if c.DegradedExitCode < 0 || c.DegradedExitCode > 255 {
		return fmt.Errorf("degraded exit code must be 0-255, got %d", c.DegradedExitCode)
	}
	switch c.Backend {
	case BackendAuto, BackendNetifd, BackendKernel:
	default:
		return fmt.Errorf("unknown backend %q (want %s, %s or %s)", c.Backend, BackendAuto, BackendNetifd, BackendKernel)
	}
	switch c.Prober {
	case ProberICMP, ProberCommand:
	default:
		return fmt.Errorf("unknown prober %q (want %s or %s)", c.Prober, ProberICMP, ProberCommand)
	}
	return nil
}

// ResolveBackend turns BackendAuto into a concrete backend: netifd when the
// ubus CLI is installed (OpenWrt), the kernel link table otherwise.
func (c *Config) ResolveBackend() string {
	return resolveBackend(c.Backend, exec.LookPath)
}

func resolveBackend(backend string, lookPath func(string) (string, error)) string {
	if backend != BackendAuto {
		return backend
	}
	if _, err := lookPath("ubus"); err == nil {
		return BackendNetifd
	}
	return BackendKernel
}

// SplitList splits a comma or whitespace separated list, dropping empties.
func SplitList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// ParseDuration accepts Go duration syntax ("2s", "500ms") or a bare
// integer number of seconds.
func ParseDuration(s string) (time.Duration, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

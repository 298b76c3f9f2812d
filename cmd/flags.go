package cmd

import (
	"errors"
	"flag"
	"fmt"
	"strings"

	"grimm.is/wanwatch/internal/config"
)

// errUsage marks configuration errors that map to exit status 2.
var errUsage = errors.New("usage")

// newFlagSet defines the flags every subcommand shares. Defaults are taken
// from cfg, so environment overrides already applied to cfg show up as
// defaults and flags win over both.
func newFlagSet(name string, cfg *config.Config) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)

	fs.Func("targets", fmt.Sprintf("Comma separated probe targets, in order (default %q)", strings.Join(cfg.Targets, ",")), func(s string) error {
		cfg.Targets = config.SplitList(s)
		return nil
	})
	fs.IntVar(&cfg.ProbeCount, "count", cfg.ProbeCount, "Echo requests per target")
	fs.IntVar(&cfg.ProbeCount, "c", cfg.ProbeCount, "Alias for -count")
	fs.DurationVar(&cfg.ProbeTimeout, "timeout", cfg.ProbeTimeout, "Wait for each echo reply")
	fs.DurationVar(&cfg.ProbeTimeout, "W", cfg.ProbeTimeout, "Alias for -timeout")

	fs.StringVar(&cfg.Backend, "backend", cfg.Backend, "Interface backend: auto, netifd or kernel")
	fs.StringVar(&cfg.Prober, "prober", cfg.Prober, "Echo implementation: icmp or command")
	fs.BoolFunc("unprivileged", "Use unprivileged ICMP (UDP ping sockets)", func(string) error {
		cfg.Privileged = false
		return nil
	})

	fs.StringVar(&cfg.LogFile, "log-file", cfg.LogFile, "Persistent log file (empty disables)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.BoolVar(&cfg.JSONLogs, "json", cfg.JSONLogs, "Log as JSON")
	fs.StringVar(&cfg.SyslogHost, "syslog", cfg.SyslogHost, "Remote syslog host (empty disables)")
	fs.StringVar(&cfg.MetricsFile, "metrics-file", cfg.MetricsFile, "Prometheus textfile to write after each run (empty disables)")
	return fs
}

// addRemediationFlags defines flags for subcommands that may cycle the WAN.
func addRemediationFlags(fs *flag.FlagSet, cfg *config.Config) {
	fs.DurationVar(&cfg.SettleDown, "settle-down", cfg.SettleDown, "Wait between interface down and up")
	fs.DurationVar(&cfg.SettleUp, "settle-up", cfg.SettleUp, "Wait after interface up before verifying")
	fs.IntVar(&cfg.DegradedExitCode, "degraded-exit", cfg.DegradedExitCode, "Exit status when remediation did not restore connectivity")
	fs.BoolVar(&cfg.DryRun, "dry-run", cfg.DryRun, "Log interface control instead of executing it")
	fs.BoolVar(&cfg.DryRun, "n", cfg.DryRun, "Alias for -dry-run")
}

// loadConfig builds the configuration for one subcommand: compiled-in
// defaults, then WANWATCH_* variables, then flags.
func loadConfig(env *Env, name string, args []string, setup func(fs *flag.FlagSet, cfg *config.Config)) (*config.Config, error) {
	cfg := config.Default()
	if err := cfg.ApplyEnv(env.Getenv); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}

	fs := newFlagSet(name, cfg)
	fs.SetOutput(env.Stderr)
	if setup != nil {
		setup(fs, cfg)
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("%w: unexpected arguments: %s", errUsage, strings.Join(fs.Args(), " "))
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", errUsage, err)
	}
	return cfg, nil
}

// configExitCode reports a loadConfig failure and returns the exit status.
func configExitCode(env *Env, name string, err error) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	Printer.Fprintf(env.Stderr, "%s: %v\n", name, err)
	return 2
}

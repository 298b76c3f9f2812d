package cmd

import (
	"fmt"
	"time"

	"grimm.is/wanwatch/internal/config"
	"grimm.is/wanwatch/internal/i18n"
	"grimm.is/wanwatch/internal/logging"
	"grimm.is/wanwatch/internal/metrics"
	"grimm.is/wanwatch/internal/network"
	"grimm.is/wanwatch/internal/probe"
	"grimm.is/wanwatch/internal/wan"
)

// runtime is everything one process needs to execute runs.
type runtime struct {
	env       *Env
	cfg       *config.Config
	logger    *logging.Logger
	sinks     *logging.Sinks
	backend   *network.Backend
	ctrl      *wan.Controller
	metrics   *metrics.Registry
	collector *metrics.Collector
}

// setupLogging sends logs to stderr, the persistent log file and, when
// configured, a remote syslog server. Sink failures only cost that sink.
func setupLogging(env *Env, cfg *config.Config) (*logging.Logger, *logging.Sinks) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	var warnings []string
	if err != nil {
		warnings = append(warnings, err.Error())
	}

	sinks := &logging.Sinks{}
	sinks.Add(env.Stderr)

	if cfg.LogFile != "" {
		f, err := logging.OpenFileSink(cfg.LogFile)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("log file disabled: %v", err))
		} else {
			sinks.Add(f)
		}
	}

	if cfg.SyslogHost != "" {
		sc := logging.DefaultSyslogConfig()
		sc.Host = cfg.SyslogHost
		w, err := logging.NewSyslogWriter(sc)
		if err != nil {
			warnings = append(warnings, fmt.Sprintf("remote syslog disabled: %v", err))
		} else {
			sinks.Add(w)
		}
	}

	logger := logging.New(logging.Config{
		Level:      level,
		Output:     sinks.Writer(),
		JSON:       cfg.JSONLogs,
		TimeFormat: time.RFC3339,
	})
	logging.SetDefault(logger)
	logging.RedirectStdLog()

	for _, w := range warnings {
		logger.Warn(w)
	}
	return logger, sinks
}

func newRuntime(env *Env, cfg *config.Config) (*runtime, error) {
	logger, sinks := setupLogging(env, cfg)
	rt := &runtime{env: env, cfg: cfg, logger: logger, sinks: sinks}

	backendName := cfg.ResolveBackend()
	backend, err := network.NewBackend(network.BackendOptions{
		Name:      backendName,
		Netlinker: env.Netlinker,
		Executor:  env.Executor,
		DryRun:    cfg.DryRun,
	})
	if err != nil {
		sinks.Close()
		return nil, err
	}
	rt.backend = backend

	prober := env.Prober
	if prober == nil {
		switch cfg.Prober {
		case config.ProberCommand:
			prober = probe.NewCommand(env.Executor)
		default:
			prober = probe.NewICMP(cfg.Privileged, logger.WithComponent("probe"))
		}
	}

	var observer wan.Observer
	if cfg.MetricsFile != "" {
		rt.metrics = metrics.NewRegistry()
		rt.collector = metrics.NewCollector(rt.metrics)
		observer = rt.metrics
	}

	ctrl, err := wan.NewController(wan.Deps{
		Interfaces: backend.Interfaces,
		Routes:     backend.Routes,
		Links:      backend.Links,
		Prober:     prober,
		Loopback:   backend.Loopback,
		Clock:      env.Clock,
		Observer:   observer,
		Logger:     logger.WithComponent("wanwatch"),
	}, wan.Policy{
		Targets:    probe.Targets(cfg.Targets),
		Probe:      probe.Config{Count: cfg.ProbeCount, Timeout: cfg.ProbeTimeout},
		SettleDown: cfg.SettleDown,
		SettleUp:   cfg.SettleUp,
	})
	if err != nil {
		sinks.Close()
		return nil, err
	}
	rt.ctrl = ctrl

	logger.Debug("runtime ready", "backend", backendName, "prober", cfg.Prober, "dry_run", cfg.DryRun)
	return rt, nil
}

// run executes one pass and publishes its side outputs.
func (rt *runtime) run() *wan.Run {
	run := rt.ctrl.Run()

	if rt.cfg.DryRun {
		rt.reportDryRun()
	}
	rt.writeMetrics(run)
	return run
}

func (rt *runtime) reportDryRun() {
	ops := rt.backend.DryRunOps()
	if len(ops) == 0 {
		return
	}
	Printer.Fprintf(rt.env.Stdout, i18n.MsgDryRun)
	for _, op := range ops {
		rt.logger.Info("dry run", "command", op)
		Printer.Fprintf(rt.env.Stdout, "  %s\n", op)
	}
}

func (rt *runtime) writeMetrics(run *wan.Run) {
	if rt.metrics == nil {
		return
	}
	for _, e := range run.ControlErrors {
		rt.metrics.RecordControlError(e.Step)
	}
	if run.Identity != nil && run.Identity.Device() != "" {
		if _, err := rt.collector.CollectDevice(run.Identity.Device()); err != nil {
			rt.logger.Debug("device counters unavailable", "error", err)
		}
	}
	if err := rt.metrics.WriteTextfile(rt.cfg.MetricsFile); err != nil {
		rt.logger.Warn("metrics not written", "error", err)
	}
}

func (rt *runtime) Close() {
	_ = rt.sinks.Close()
}

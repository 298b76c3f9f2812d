package cmd

import (
	"context"
	"flag"
	"fmt"
	"time"

	"grimm.is/wanwatch/internal/config"
)

// RunWatch performs runs back to back, Interval apart, until ctx is
// cancelled. A run in progress always completes; cancellation is only
// checked between runs. Returns the exit status of the last run.
func RunWatch(ctx context.Context, env *Env, args []string) int {
	cfg, err := loadConfig(env, "watch", args, func(fs *flag.FlagSet, cfg *config.Config) {
		addRemediationFlags(fs, cfg)
		fs.DurationVar(&cfg.Interval, "interval", cfg.Interval, "Time between the end of one run and the start of the next")
		fs.DurationVar(&cfg.Interval, "i", cfg.Interval, "Alias for -interval")
	})
	if err != nil {
		return configExitCode(env, "watch", err)
	}
	if cfg.Interval <= 0 {
		return configExitCode(env, "watch", fmt.Errorf("%w: interval must be positive", errUsage))
	}

	rt, err := newRuntime(env, cfg)
	if err != nil {
		Printer.Fprintf(env.Stderr, "Watch failed: %v\n", err)
		return 1
	}
	defer rt.Close()

	rt.logger.Info("watching", "interval", cfg.Interval.String())
	code := watchLoop(ctx, cfg.Interval, func() int {
		return rt.run().ExitCode(cfg.DegradedExitCode)
	})
	rt.logger.Info("watch stopped")
	return code
}

// watchLoop calls runOnce until ctx is done, waiting interval between calls.
func watchLoop(ctx context.Context, interval time.Duration, runOnce func() int) int {
	code := 0
	for {
		code = runOnce()

		timer := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return code
		case <-timer.C:
		}
	}
}

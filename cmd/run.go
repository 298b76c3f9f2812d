package cmd

import (
	"grimm.is/wanwatch/internal/i18n"
	"grimm.is/wanwatch/internal/wan"
)

// RunOnce performs one monitor run and returns the process exit status:
// 0 for HEALTHY and RECOVERED, the configured code for DEGRADED,
// 1 for RESOLUTION_FAILED and 2 for invalid configuration.
func RunOnce(env *Env, args []string) int {
	cfg, err := loadConfig(env, "run", args, addRemediationFlags)
	if err != nil {
		return configExitCode(env, "run", err)
	}

	rt, err := newRuntime(env, cfg)
	if err != nil {
		Printer.Fprintf(env.Stderr, "Run failed: %v\n", err)
		return 1
	}
	defer rt.Close()

	run := rt.run()
	printRun(env, run)
	return run.ExitCode(cfg.DegradedExitCode)
}

func printRun(env *Env, run *wan.Run) {
	Printer.Fprintf(env.Stdout, i18n.MsgOutcome, run.Outcome.String())
	if run.Identity != nil {
		printIdentity(env, run.Identity)
	}
	for _, e := range run.ControlErrors {
		Printer.Fprintf(env.Stdout, i18n.MsgControlError, e.Error())
	}
	if run.Err != nil {
		Printer.Fprintf(env.Stdout, i18n.MsgNoWan, run.Err)
	}
}

func printIdentity(env *Env, id *wan.Identity) {
	Printer.Fprintf(env.Stdout, i18n.MsgWAN, id.Name())
	Printer.Fprintf(env.Stdout, i18n.MsgKind, id.Kind().String())
	if id.Device() == "" {
		Printer.Fprintf(env.Stdout, i18n.MsgNoDevice)
	} else {
		Printer.Fprintf(env.Stdout, i18n.MsgDevice, id.Device())
	}
}

package cmd

import (
	"grimm.is/wanwatch/internal/i18n"
)

// RunCheck resolves the WAN and probes the targets without remediation.
// Exit status is 0 when reachable and 1 otherwise.
func RunCheck(env *Env, args []string) int {
	cfg, err := loadConfig(env, "check", args, nil)
	if err != nil {
		return configExitCode(env, "check", err)
	}

	rt, err := newRuntime(env, cfg)
	if err != nil {
		Printer.Fprintf(env.Stderr, "Check failed: %v\n", err)
		return 1
	}
	defer rt.Close()

	id, ok, err := rt.ctrl.Check()
	if err != nil {
		Printer.Fprintf(env.Stdout, i18n.MsgNoWan, err)
		return 1
	}
	printIdentity(env, id)
	if !ok {
		Printer.Fprintf(env.Stdout, i18n.MsgUnhealthy, id.Name())
		return 1
	}
	Printer.Fprintf(env.Stdout, i18n.MsgHealthy, id.Name())
	return 0
}

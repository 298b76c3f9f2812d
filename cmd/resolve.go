package cmd

import (
	"grimm.is/wanwatch/internal/i18n"
)

// RunResolve runs discovery only and prints the identity it finds.
func RunResolve(env *Env, args []string) int {
	cfg, err := loadConfig(env, "resolve", args, nil)
	if err != nil {
		return configExitCode(env, "resolve", err)
	}

	rt, err := newRuntime(env, cfg)
	if err != nil {
		Printer.Fprintf(env.Stderr, "Resolve failed: %v\n", err)
		return 1
	}
	defer rt.Close()

	id, err := rt.ctrl.Resolve()
	if err != nil {
		Printer.Fprintf(env.Stdout, i18n.MsgNoWan, err)
		return 1
	}
	printIdentity(env, id)
	return 0
}

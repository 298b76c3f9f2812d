package cmd

import (
	"io"
	"os"

	"grimm.is/wanwatch/internal/clock"
	"grimm.is/wanwatch/internal/i18n"
	"grimm.is/wanwatch/internal/network"
	"grimm.is/wanwatch/internal/probe"
)

// Printer renders user-facing CLI output in the caller's locale.
var Printer = i18n.NewCLIPrinter()

// Env is the process environment a command runs against. Nil seams use the
// real system.
type Env struct {
	Getenv func(string) string
	Stdout io.Writer
	Stderr io.Writer

	Netlinker network.Netlinker
	Executor  network.CommandExecutor
	Prober    probe.Prober
	Clock     clock.Clock
}

// DefaultEnv is the environment of the running process.
func DefaultEnv() *Env {
	return &Env{
		Getenv: os.Getenv,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

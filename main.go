package main

import (
	"context"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"grimm.is/wanwatch/cmd"
	"grimm.is/wanwatch/internal/brand"
	"grimm.is/wanwatch/internal/i18n"
)

var printer = i18n.NewCLIPrinter()

func main() {
	env := cmd.DefaultEnv()

	// No subcommand (or only flags) means a single run, for cron.
	if len(os.Args) < 2 || strings.HasPrefix(os.Args[1], "-") && !isHelp(os.Args[1]) {
		os.Exit(cmd.RunOnce(env, os.Args[1:]))
	}

	args := os.Args[2:]
	switch os.Args[1] {
	case "run":
		os.Exit(cmd.RunOnce(env, args))

	case "resolve":
		os.Exit(cmd.RunResolve(env, args))

	case "check":
		os.Exit(cmd.RunCheck(env, args))

	case "watch":
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		code := cmd.RunWatch(ctx, env, args)
		stop()
		os.Exit(code)

	case "version":
		os.Exit(cmd.RunVersion(env))

	case "help", "-h", "--help":
		printUsage()

	default:
		printer.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(2)
	}
}

func isHelp(arg string) bool {
	return arg == "-h" || arg == "--help" || arg == "-help"
}

func printUsage() {
	printer.Printf(`%s - %s

Usage:
  %s [command] [options]

Commands:
  run       Resolve the WAN, check it and cycle it on failure (default)
            Options: --dry-run (-n), --degraded-exit <code>,
                     --settle-down <dur>, --settle-up <dur>
  resolve   Print the interface that would be monitored
  check     Resolve and probe without remediation (exit 1 when unreachable)
  watch     Repeat runs until interrupted
            Options: --interval (-i) <dur>
  version   Show version

Common options:
  --targets <a,b>       Probe targets in order
  --count (-c) <n>      Echo requests per target
  --timeout (-W) <dur>  Wait for each reply
  --backend <name>      auto, netifd or kernel
  --prober <name>       icmp or command
  --unprivileged        Use UDP ping sockets
  --log-file <path>     Persistent log (default %s)
  --log-level <level>   debug, info, warn, error
  --json                JSON log lines
  --syslog <host>       Remote syslog server
  --metrics-file <path> Prometheus textfile output

Every option can also be set with a %s_* environment variable,
e.g. %s_TARGETS=9.9.9.9,1.1.1.1.

Examples:
  %s                           # One run, suitable for cron
  %s run -n                    # Show what would be cycled
  %s watch -i 2m               # Run every two minutes
`, brand.Name, brand.Description,
		brand.BinaryName,
		brand.DefaultLogFile(),
		brand.ConfigEnvPrefix, brand.ConfigEnvPrefix,
		brand.BinaryName, brand.BinaryName, brand.BinaryName)
}

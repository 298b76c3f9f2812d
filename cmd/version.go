package cmd

import (
	"grimm.is/wanwatch/internal/brand"
)

// RunVersion prints the version banner.
func RunVersion(env *Env) int {
	Printer.Fprintf(env.Stdout, "%s\n", brand.VersionString())
	return 0
}

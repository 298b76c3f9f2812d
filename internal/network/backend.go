package network

import (
	"fmt"
)

// Backend names accepted by NewBackend.
const (
	BackendNetifd = "netifd"
	BackendKernel = "kernel"
)

// Backend bundles the capabilities the watchdog consumes for one kind of host.
type Backend struct {
	Name string
	// Loopback is excluded from interface enumeration.
	Loopback   string
	Interfaces InterfaceManager
	Routes     RouteQuerier
	Links      LinkController

	dryExec *DryRunExecutor
	dryNL   *DryRunNetlinker
}

// BackendOptions selects and wires a Backend.
type BackendOptions struct {
	Name      string
	Netlinker Netlinker
	Executor  CommandExecutor
	// DryRun records state-changing calls instead of executing them.
	// Queries still hit the real system.
	DryRun bool
}

// NewBackend builds the named backend. Nil seams default to the real implementations.
func NewBackend(opts BackendOptions) (*Backend, error) {
	nl := opts.Netlinker
	if nl == nil {
		nl = DefaultNetlinker
	}
	exec := opts.Executor
	if exec == nil {
		exec = DefaultCommandExecutor
	}

	b := &Backend{Name: opts.Name}

	controlNL := nl
	controlExec := exec
	if opts.DryRun {
		b.dryNL = &DryRunNetlinker{}
		b.dryExec = NewDryRunExecutor()
		controlNL = b.dryNL
		controlExec = b.dryExec
	}

	b.Routes = NewRouteTable(nl)
	b.Links = NewLinkControl(controlNL)

	switch opts.Name {
	case BackendNetifd:
		b.Loopback = "loopback"
		b.Interfaces = NewNetifd(exec, controlExec)
	case BackendKernel:
		b.Loopback = "lo"
		b.Interfaces = NewKernelInterfaces(nl, b.Links)
	default:
		return nil, fmt.Errorf("unknown network backend %q", opts.Name)
	}
	return b, nil
}

// DryRunOps returns the state changes recorded in dry-run mode since the
// previous call, in order per seam.
func (b *Backend) DryRunOps() []string {
	var ops []string
	if b.dryExec != nil {
		ops = append(ops, b.dryExec.Drain()...)
	}
	if b.dryNL != nil {
		ops = append(ops, b.dryNL.Drain()...)
	}
	return ops
}

package wan

import (
	"fmt"
	"time"

	"grimm.is/wanwatch/internal/clock"
	"grimm.is/wanwatch/internal/logging"
	"grimm.is/wanwatch/internal/network"
	"grimm.is/wanwatch/internal/probe"
)

// Policy is the fixed configuration of a controller.
type Policy struct {
	Targets []probe.Target
	Probe   probe.Config
	// SettleDown is slept between down and up, SettleUp after up.
	SettleDown time.Duration
	SettleUp   time.Duration
}

// Validate checks the policy invariants.
func (p Policy) Validate() error {
	if len(p.Targets) == 0 {
		return fmt.Errorf("at least one probe target is required")
	}
	if err := p.Probe.Validate(); err != nil {
		return err
	}
	if p.SettleDown < 0 || p.SettleUp < 0 {
		return fmt.Errorf("settle intervals must not be negative")
	}
	return nil
}

// Deps are the capabilities a controller drives.
type Deps struct {
	Interfaces network.InterfaceManager
	Routes     network.RouteQuerier
	Links      network.LinkController
	Prober     probe.Prober
	// Loopback is excluded from discovery.
	Loopback string
	// Optional.
	Clock    clock.Clock
	Observer Observer
	Logger   *logging.Logger
}

// Controller runs the resolve, check, cycle and verify sequence.
type Controller struct {
	interfaces network.InterfaceManager
	links      network.LinkController
	discovery  *Discovery
	resolver   *DeviceResolver
	health     *HealthChecker
	clock      clock.Clock
	observer   Observer
	policy     Policy
	logger     *logging.Logger
}

// NewController wires a controller from deps.
func NewController(deps Deps, policy Policy) (*Controller, error) {
	if deps.Interfaces == nil || deps.Routes == nil || deps.Links == nil || deps.Prober == nil {
		return nil, fmt.Errorf("controller requires interfaces, routes, links and prober")
	}
	if err := policy.Validate(); err != nil {
		return nil, fmt.Errorf("invalid policy: %w", err)
	}
	if deps.Clock == nil {
		deps.Clock = clock.Default()
	}
	if deps.Observer == nil {
		deps.Observer = nopObserver{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.WithComponent("wanwatch")
	}

	return &Controller{
		interfaces: deps.Interfaces,
		links:      deps.Links,
		discovery:  NewDiscovery(deps.Interfaces, deps.Routes, deps.Loopback, deps.Logger.WithComponent("discovery")),
		resolver:   NewDeviceResolver(deps.Interfaces, deps.Logger.WithComponent("resolver")),
		health:     NewHealthChecker(deps.Prober, deps.Observer, deps.Logger.WithComponent("health")),
		clock:      deps.Clock,
		observer:   deps.Observer,
		policy:     policy,
		logger:     deps.Logger,
	}, nil
}

// Resolve runs discovery alone.
func (c *Controller) Resolve() (*Identity, error) {
	return c.discovery.Resolve()
}

// Check resolves the WAN and probes the targets without remediation.
func (c *Controller) Check() (*Identity, bool, error) {
	id, err := c.discovery.Resolve()
	if err != nil {
		return nil, false, err
	}
	c.refreshDevice(id)
	return id, c.health.CheckInternet(id, c.policy.Targets, c.policy.Probe), nil
}

// Run performs one complete pass. It never returns early on control
// failures; only resolution failure skips probing.
func (c *Controller) Run() *Run {
	run := newRun(c.clock.Now())

	c.transition(run, StateResolving)
	id, err := c.discovery.Resolve()
	if err != nil {
		run.Err = err
		return c.finish(run, StateResolutionFailed, OutcomeResolutionFailed)
	}
	run.Identity = id

	c.transition(run, StateChecking)
	c.refreshDevice(id)
	if c.health.CheckInternet(id, c.policy.Targets, c.policy.Probe) {
		return c.finish(run, StateHealthy, OutcomeHealthy)
	}

	c.transition(run, StateCycling)
	c.cycle(run)

	c.transition(run, StateVerifying)
	c.refreshDevice(id)
	if c.health.CheckInternet(id, c.policy.Targets, c.policy.Probe) {
		return c.finish(run, StateRecovered, OutcomeRecovered)
	}
	return c.finish(run, StateDegraded, OutcomeDegraded)
}

// refreshDevice re-reads the device of a logical identity. A physical-only
// identity is its own device.
func (c *Controller) refreshDevice(id *Identity) {
	if id.Kind() != KindLogical {
		return
	}
	dev := c.resolver.PhysicalDeviceFor(id.Name())
	if dev != id.Device() {
		c.logger.Info("WAN device changed", "interface", id.Name(), "old", id.Device(), "new", dev)
	}
	id.setDevice(dev)
}

func (c *Controller) cycle(run *Run) {
	id := run.Identity
	run.Cycled = true

	var down, up func() error
	target := id.Name()
	switch id.Kind() {
	case KindLogical:
		down = func() error { return c.interfaces.Down(target) }
		up = func() error { return c.interfaces.Up(target) }
	default:
		target = id.Device()
		down = func() error { return c.links.SetLinkDown(target) }
		up = func() error { return c.links.SetLinkUp(target) }
	}
	c.observer.ObserveCycle(id.Kind().String())

	c.logger.Info("bringing WAN down", "target", target, "path", id.Kind().String())
	c.step(run, "down", target, down)
	c.clock.Sleep(c.policy.SettleDown)

	c.logger.Info("bringing WAN up", "target", target, "path", id.Kind().String())
	c.step(run, "up", target, up)
	c.clock.Sleep(c.policy.SettleUp)
}

// step runs one control action. Failures are logged and recorded; the cycle
// continues into the settle sleep and verification regardless.
func (c *Controller) step(run *Run, name, target string, fn func() error) {
	if err := fn(); err != nil {
		c.logger.Warn("interface control failed, continuing", "step", name, "target", target, "error", err)
		run.ControlErrors = append(run.ControlErrors, StepError{Step: name, Target: target, Err: err})
	}
}

func (c *Controller) transition(run *Run, to State) {
	t := run.advance(to, c.clock.Now())
	c.logger.Info("state transition", "from", t.From.String(), "to", t.To.String())
}

func (c *Controller) finish(run *Run, terminal State, outcome Outcome) *Run {
	c.transition(run, terminal)
	run.Outcome = outcome
	run.Finished = c.clock.Now()
	c.observer.ObserveRun(outcome.String(), run.Duration(), run.Finished)

	switch outcome {
	case OutcomeHealthy, OutcomeRecovered:
		c.logger.Info("run complete", "summary", run.Summary())
	case OutcomeDegraded:
		c.logger.Warn("run complete", "summary", run.Summary())
	default:
		c.logger.Error("run complete", "summary", run.Summary())
	}
	return run
}
